package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"mandi/capture"
	"mandi/chat"
	"mandi/clock"
	"mandi/locale"
	"mandi/log"
	"mandi/market"
	"mandi/session"
	"mandi/translate"
)

// Opening exchange shown shortly after startup.
var greetings = []struct {
	sender chat.Sender
	text   string
	delay  time.Duration
}{
	{chat.Buyer, "नमस्ते! मुझे टमाटर चाहिए", 2 * time.Second},
	{chat.Farmer, "Hello! I need tomatoes", 4 * time.Second},
}

type tables struct {
	locales *locale.Table
	phrases *translate.Table
	market  market.Data
}

func loadTables(cfg Config) (tables, error) {
	t := tables{
		locales: locale.Default(),
		phrases: translate.Default(),
		market:  market.DefaultData(),
	}
	var err error
	if cfg.LocalesFile != "" {
		if t.locales, err = locale.LoadFile(cfg.LocalesFile); err != nil {
			return tables{}, err
		}
	}
	if cfg.PhrasesFile != "" {
		if t.phrases, err = translate.LoadFile(cfg.PhrasesFile); err != nil {
			return tables{}, err
		}
	}
	if cfg.MarketFile != "" {
		if t.market, err = market.LoadDataFile(cfg.MarketFile); err != nil {
			return tables{}, err
		}
	}
	return t, nil
}

// newEngine returns the configured capture engine, or nil when capture is
// switched off.
func newEngine(cfg Config, clk clock.Clock, phrases *translate.Table) capture.Engine {
	if cfg.Capture == "off" {
		return nil
	}
	return capture.NewDemo(clk, cfg.CaptureLatency, phrases.Phrases())
}

func newRand(seed int) market.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// App wires the chat, capture session and market drivers onto one clock.
// Like the controller, it must only be touched from the clock's dispatch
// goroutine once started.
type App struct {
	cfg      Config
	tables   tables
	engine   capture.Engine
	exchange *chat.Exchange
	ctrl     *session.Controller
	board    *market.Board
	ticker   *market.Ticker
}

func newApp(cfg Config, t tables, clk clock.Clock, engine capture.Engine, display Display, rnd market.Rand) (*App, error) {
	x := chat.NewExchange(chat.NewLog(), t.phrases, clk, display, chat.WithReplyDelay(cfg.ReplyDelay))
	ctrl, err := session.New(session.Config{
		Language:        locale.Code(cfg.Language),
		ProcessingDelay: cfg.ProcessingDelay,
	}, t.locales, engine, clk, display, x)
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:      cfg,
		tables:   t,
		engine:   engine,
		exchange: x,
		ctrl:     ctrl,
	}
	if cfg.Market {
		a.board = market.NewBoard(t.market.Quotes, market.BoardConfig{Interval: cfg.PriceInterval}, rnd, clk, display)
		a.ticker = market.NewTicker(t.market.News, market.DefaultWindow, cfg.NewsInterval, clk, display)
	}
	return a, nil
}

func (a *App) Controller() *session.Controller { return a.ctrl }

func (a *App) engineName() string {
	if a.engine == nil {
		return "none"
	}
	return a.engine.Name()
}

func (a *App) Start() {
	log.SessionStart(string(a.ctrl.Session().Language), a.engineName())
	a.ctrl.Render()
	if a.board != nil {
		a.board.Start()
		a.ticker.Start()
	}
	if a.cfg.Greeting {
		for _, g := range greetings {
			a.exchange.Seed(g.sender, g.text, g.delay)
		}
	}
}

// Close cancels every pending timer and stops an active capture.
func (a *App) Close() {
	a.ctrl.Close()
	if n := a.exchange.Close(); n > 0 {
		log.Info(fmt.Sprintf("dropped %d pending replies", n))
	}
	if a.board != nil {
		a.board.Stop()
		a.ticker.Stop()
	}
	log.SessionEnd(a.exchange.Log().Len())
}
