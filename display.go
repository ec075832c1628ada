package main

import (
	"fmt"
	"io"
	"strings"

	"mandi/chat"
	"mandi/market"
	"mandi/session"
)

// Display abstracts the presentation layer so both the Bubble Tea TUI and
// the line printer used by script mode receive the same events.
type Display interface {
	session.Display
	chat.Sink
	market.PriceDisplay
	market.TickerDisplay
}

// lineDisplay prints one line per display event.
type lineDisplay struct {
	w       io.Writer
	quotes  map[int]market.Quote
	verbose bool
}

func newLineDisplay(w io.Writer, verbose bool) *lineDisplay {
	return &lineDisplay{w: w, quotes: map[int]market.Quote{}, verbose: verbose}
}

func (d *lineDisplay) printf(format string, args ...any) {
	fmt.Fprintf(d.w, format+"\n", args...)
}

func (d *lineDisplay) Status(text string) { d.printf("status: %s", text) }

func (d *lineDisplay) MicLabel(text string) {
	if d.verbose {
		d.printf("mic: %s", text)
	}
}

func (d *lineDisplay) SendLabel(text string) {
	if d.verbose {
		d.printf("send: %s", text)
	}
}

func (d *lineDisplay) Placeholder(text string) {
	if d.verbose {
		d.printf("placeholder: %s", text)
	}
}

func (d *lineDisplay) Input(text string) { d.printf("input: %s", text) }

func (d *lineDisplay) Recording(on bool) {
	if d.verbose {
		d.printf("recording: %t", on)
	}
}

func (d *lineDisplay) Notify(text string) { d.printf("notice: %s", text) }

func (d *lineDisplay) Message(m chat.Message) {
	d.printf("chat: #%d %s | %s | %s", m.Seq, m.Sender, m.Original, m.Translated)
}

func (d *lineDisplay) Price(i int, q market.Quote) {
	prev, seen := d.quotes[i]
	d.quotes[i] = q
	// emphasis clearing only changes styling
	if seen && prev.Price == q.Price && q.Trend == market.Steady && !d.verbose {
		return
	}
	d.printf("price: %s %s %s %s", q.Market, q.Crop, q.Text(), q.Trend)
}

func (d *lineDisplay) Updated(minutesAgo int) {
	if d.verbose {
		d.printf("updated: %d min ago", minutesAgo)
	}
}

func (d *lineDisplay) Ticker(items []string) {
	d.printf("ticker: %s", strings.Join(items, " | "))
}
