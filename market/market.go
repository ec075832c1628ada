// Package market drives the two ambient displays beside the chat: a board
// of mandi prices that drift randomly and a rotating news ticker. Neither
// shares state with the capture session.
package market

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed market.yaml
var defaultData []byte

type Trend int

const (
	Steady Trend = iota
	Up
	Down
)

func (t Trend) String() string {
	switch t {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "steady"
}

type Quote struct {
	Market string `yaml:"market" validate:"required"`
	Crop   string `yaml:"crop" validate:"required"`
	Unit   string `yaml:"unit" validate:"required"`
	Price  int    `yaml:"price" validate:"gt=0"`
	Trend  Trend  `yaml:"-"`
}

// Text renders the price the way the board shows it, e.g. "₹2,400/quintal".
func (q Quote) Text() string {
	return FormatPrice(q.Price) + "/" + q.Unit
}

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatPrice groups digits the Indian way (₹1,00,000).
func FormatPrice(p int) string {
	return printer.Sprintf("₹%d", p)
}

type Data struct {
	Quotes []Quote  `yaml:"quotes" validate:"min=1,dive"`
	News   []string `yaml:"news" validate:"min=1,dive,required"`
}

var validate = validator.New()

func DefaultData() Data {
	d, err := LoadData(bytes.NewReader(defaultData))
	if err != nil {
		panic(fmt.Sprintf("market: embedded data invalid: %v", err))
	}
	return d
}

// LoadDataFile reads board and ticker data. An empty path yields the
// embedded data.
func LoadDataFile(path string) (Data, error) {
	if path == "" {
		return DefaultData(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("open market data: %w", err)
	}
	defer f.Close()
	return LoadData(f)
}

func LoadData(r io.Reader) (Data, error) {
	var d Data
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, fmt.Errorf("decode market data: %w", err)
	}
	if err := validate.Struct(d); err != nil {
		return Data{}, fmt.Errorf("invalid market data: %w", err)
	}
	return d, nil
}
