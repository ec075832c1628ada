package market

import (
	"time"

	"mandi/clock"
)

const (
	NewsInterval  = 10 * time.Second
	DefaultWindow = 3
)

type TickerDisplay interface {
	Ticker(items []string)
}

// Ticker shows a fixed-size window over a circular list of headlines.
type Ticker struct {
	items    []string
	idx      int
	window   int
	interval time.Duration
	clk      clock.Clock
	display  TickerDisplay
	every    clock.Timer
}

func NewTicker(items []string, window int, interval time.Duration, clk clock.Clock, display TickerDisplay) *Ticker {
	if window <= 0 {
		window = DefaultWindow
	}
	if interval <= 0 {
		interval = NewsInterval
	}
	return &Ticker{
		items:    append([]string(nil), items...),
		window:   window,
		interval: interval,
		clk:      clk,
		display:  display,
	}
}

func (t *Ticker) Index() int { return t.idx }

// Window returns the headlines currently on screen, wrapping around the
// end of the list.
func (t *Ticker) Window() []string {
	n := len(t.items)
	if n == 0 {
		return nil
	}
	out := make([]string, t.window)
	for i := range out {
		out[i] = t.items[(t.idx+i)%n]
	}
	return out
}

// Advance moves one headline forward and renders the new window.
func (t *Ticker) Advance() []string {
	if len(t.items) == 0 {
		return nil
	}
	t.idx = (t.idx + 1) % len(t.items)
	w := t.Window()
	t.display.Ticker(w)
	return w
}

// Start renders the first window and rotates every interval.
func (t *Ticker) Start() {
	if w := t.Window(); w != nil {
		t.display.Ticker(w)
	}
	t.every = t.clk.Every(t.interval, func() { t.Advance() })
}

func (t *Ticker) Stop() {
	if t.every != nil {
		t.every.Stop()
		t.every = nil
	}
}
