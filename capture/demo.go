package capture

import (
	"time"

	"mandi/clock"
)

// Demo simulates a recognizer: each capture "hears" the next scripted
// utterance after a fixed latency, then ends.
type Demo struct {
	clk        clock.Clock
	latency    time.Duration
	utterances []string
	next       int
	pending    clock.Timer
	locale     string
}

func NewDemo(clk clock.Clock, latency time.Duration, utterances []string) *Demo {
	return &Demo{clk: clk, latency: latency, utterances: utterances}
}

func (d *Demo) Name() string { return "demo" }

func (d *Demo) Start(locale string, h Handler) error {
	d.Stop()
	d.locale = locale
	d.pending = d.clk.AfterFunc(d.latency, func() {
		d.pending = nil
		if len(d.utterances) == 0 {
			h.OnError(ErrCodeNoSpeech)
			h.OnEnd()
			return
		}
		u := d.utterances[d.next%len(d.utterances)]
		d.next++
		h.OnResult(u)
		h.OnEnd()
	})
	return nil
}

func (d *Demo) Stop() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}

// Locale is the tag of the most recent capture.
func (d *Demo) Locale() string { return d.locale }
