// Package translate is the phrase-table translator used by the chat demo.
// There is no machine translation: known phrases map to their counterpart,
// everything else comes back wrapped in a visible marker.
package translate

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed phrases.yaml
var defaultPhrases []byte

// FallbackFormat wraps text that has no entry in the table.
const FallbackFormat = "[Translated: %s]"

type Pair struct {
	From string `yaml:"from" validate:"required"`
	To   string `yaml:"to" validate:"required"`
}

type file struct {
	Pairs []Pair `yaml:"pairs" validate:"dive"`
}

var validate = validator.New()

type Table struct {
	index map[string]string
	pairs []Pair
}

// New indexes every pair in both directions. A phrase may not map to two
// different counterparts.
func New(pairs []Pair) (*Table, error) {
	t := &Table{index: make(map[string]string, 2*len(pairs))}
	for i, p := range pairs {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		if err := t.put(p.From, p.To); err != nil {
			return nil, err
		}
		if err := t.put(p.To, p.From); err != nil {
			return nil, err
		}
		t.pairs = append(t.pairs, p)
	}
	return t, nil
}

func (t *Table) put(from, to string) error {
	if prev, ok := t.index[from]; ok && prev != to {
		return fmt.Errorf("phrase %q maps to both %q and %q", from, prev, to)
	}
	t.index[from] = to
	return nil
}

func Default() *Table {
	t, err := Load(bytes.NewReader(defaultPhrases))
	if err != nil {
		panic(fmt.Sprintf("translate: embedded table invalid: %v", err))
	}
	return t
}

// LoadFile reads pairs from path. An empty path yields the embedded table.
func LoadFile(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open phrases: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Table, error) {
	var raw file
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode phrases: %w", err)
	}
	return New(raw.Pairs)
}

// Translate looks text up exactly as given.
func (t *Table) Translate(text string) string {
	if out, ok := t.index[text]; ok {
		return out
	}
	return Fallback(text)
}

func (t *Table) Known(text string) bool {
	_, ok := t.index[text]
	return ok
}

// Phrases returns the source side of every pair, in file order.
func (t *Table) Phrases() []string {
	return lo.Map(t.pairs, func(p Pair, _ int) string { return p.From })
}

func (t *Table) Len() int { return len(t.pairs) }

func Fallback(text string) string {
	return fmt.Sprintf(FallbackFormat, text)
}
