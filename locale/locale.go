// Package locale holds the static UI string bundles for each supported
// language and the capture-engine locale tag each language maps to.
package locale

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales.yaml
var defaultLocales []byte

// Code identifies a supported UI language ("hi", "en", ...).
type Code string

// Key names a UI string inside a bundle.
type Key string

const (
	KeyReady          Key = "micReady"
	KeyListening      Key = "listening"
	KeyProcessing     Key = "processing"
	KeyMicPress       Key = "micPress"
	KeySend           Key = "send"
	KeyPlaceholder    Key = "placeholder"
	KeyMicUnavailable Key = "micUnavailable"

	KeyActionRates     Key = "actionRates"
	KeyActionTransport Key = "actionTransport"
	KeyActionPayment   Key = "actionPayment"
	KeyActionContacts  Key = "actionContacts"
)

// Bundle maps string keys to localized text. A language may carry a partial
// bundle or none at all; missing keys resolve through the default language.
type Bundle map[Key]string

type Language struct {
	Code    Code   `yaml:"code" validate:"required"`
	Tag     string `yaml:"tag" validate:"required"`
	Name    string `yaml:"name" validate:"required"`
	Strings Bundle `yaml:"strings"`
}

type file struct {
	Default   Code       `yaml:"default" validate:"required"`
	Languages []Language `yaml:"languages" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Table is immutable once loaded.
type Table struct {
	langs map[Code]Language
	order []Code
	def   Code
}

// Default returns the table compiled into the binary.
func Default() *Table {
	t, err := Load(bytes.NewReader(defaultLocales))
	if err != nil {
		panic(fmt.Sprintf("locale: embedded table invalid: %v", err))
	}
	return t
}

// LoadFile reads a table from path. An empty path yields the embedded table.
func LoadFile(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open locales: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Table, error) {
	var raw file
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode locales: %w", err)
	}
	if err := validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("invalid locales: %w", err)
	}

	t := &Table{langs: make(map[Code]Language, len(raw.Languages)), def: raw.Default}
	for _, l := range raw.Languages {
		if _, dup := t.langs[l.Code]; dup {
			return nil, fmt.Errorf("duplicate language %q", l.Code)
		}
		if _, err := language.Parse(l.Tag); err != nil {
			return nil, fmt.Errorf("language %q: bad locale tag %q: %w", l.Code, l.Tag, err)
		}
		t.langs[l.Code] = l
		t.order = append(t.order, l.Code)
	}

	d, ok := t.langs[t.def]
	if !ok {
		return nil, fmt.Errorf("default language %q not defined", t.def)
	}
	if len(d.Strings) == 0 {
		return nil, fmt.Errorf("default language %q has no strings", t.def)
	}
	return t, nil
}

// DefaultCode is the language whose bundle backs every other one.
func (t *Table) DefaultCode() Code { return t.def }

// Codes lists supported languages in file order.
func (t *Table) Codes() []Code {
	return append([]Code(nil), t.order...)
}

func (t *Table) Lookup(code Code) (Language, bool) {
	l, ok := t.langs[code]
	return l, ok
}

func (t *Table) Supports(code Code) bool {
	_, ok := t.langs[code]
	return ok
}

// Tag returns the capture-engine locale tag for code, or the default
// language's tag when code is unknown.
func (t *Table) Tag(code Code) string {
	if l, ok := t.langs[code]; ok {
		return l.Tag
	}
	return t.langs[t.def].Tag
}

// String resolves key for code, falling back to the default bundle and
// finally to the key itself.
func (t *Table) String(code Code, key Key) string {
	if l, ok := t.langs[code]; ok {
		if s, ok := l.Strings[key]; ok {
			return s
		}
	}
	if s, ok := t.langs[t.def].Strings[key]; ok {
		return s
	}
	return string(key)
}
