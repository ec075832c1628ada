package market

import (
	"time"

	"mandi/clock"
	"mandi/log"
)

const (
	PriceInterval = 2 * time.Minute
	EmphasisDelay = 2 * time.Second
	DefaultBound  = 10
	DefaultFloor  = 10
)

// Rand is the slice of math/rand/v2 the board needs.
type Rand interface {
	IntN(n int) int
}

type PriceDisplay interface {
	Price(index int, q Quote)
	Updated(minutesAgo int)
}

type BoardConfig struct {
	Interval time.Duration
	Emphasis time.Duration
	Bound    int
	Floor    int
}

func (c BoardConfig) withDefaults() BoardConfig {
	if c.Interval <= 0 {
		c.Interval = PriceInterval
	}
	if c.Emphasis <= 0 {
		c.Emphasis = EmphasisDelay
	}
	if c.Bound <= 0 {
		c.Bound = DefaultBound
	}
	if c.Floor <= 0 {
		c.Floor = DefaultFloor
	}
	return c
}

type Board struct {
	quotes  []Quote
	cfg     BoardConfig
	rnd     Rand
	clk     clock.Clock
	display PriceDisplay
	every   clock.Timer
	clear   []clock.Timer
}

func NewBoard(quotes []Quote, cfg BoardConfig, rnd Rand, clk clock.Clock, display PriceDisplay) *Board {
	return &Board{
		quotes:  append([]Quote(nil), quotes...),
		cfg:     cfg.withDefaults(),
		rnd:     rnd,
		clk:     clk,
		display: display,
		clear:   make([]clock.Timer, len(quotes)),
	}
}

// Jitter applies delta to price without going below floor.
func Jitter(price, delta, floor int) int {
	return max(price+delta, floor)
}

// Start ticks once and then every interval.
func (b *Board) Start() {
	b.Tick()
	b.every = b.clk.Every(b.cfg.Interval, b.Tick)
}

func (b *Board) Stop() {
	if b.every != nil {
		b.every.Stop()
		b.every = nil
	}
	for i, t := range b.clear {
		if t != nil {
			t.Stop()
			b.clear[i] = nil
		}
	}
}

// Tick moves every quote by a uniform delta in [-Bound, Bound].
func (b *Board) Tick() {
	for i := range b.quotes {
		q := &b.quotes[i]
		delta := b.rnd.IntN(2*b.cfg.Bound+1) - b.cfg.Bound
		old := q.Price
		q.Price = Jitter(old, delta, b.cfg.Floor)
		log.PriceTick(q.Market, old, q.Price)

		switch {
		case q.Price > old:
			q.Trend = Up
		case q.Price < old:
			q.Trend = Down
		default:
			q.Trend = Steady
		}
		b.display.Price(i, *q)
		if q.Trend != Steady {
			b.scheduleClear(i)
		}
	}
	b.display.Updated(1 + b.rnd.IntN(5))
}

func (b *Board) scheduleClear(i int) {
	if t := b.clear[i]; t != nil {
		t.Stop()
	}
	b.clear[i] = b.clk.AfterFunc(b.cfg.Emphasis, func() {
		b.clear[i] = nil
		b.quotes[i].Trend = Steady
		b.display.Price(i, b.quotes[i])
	})
}

func (b *Board) Quotes() []Quote {
	return append([]Quote(nil), b.quotes...)
}
