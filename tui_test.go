package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"mandi/chat"
	"mandi/clock"
	"mandi/locale"
	"mandi/market"
)

func TestTUIModelAppliesDisplayMessages(t *testing.T) {
	var model tea.Model = newTUIModel(&tuiControls{})
	for _, msg := range []tea.Msg{
		tea.WindowSizeMsg{Width: 100, Height: 30},
		StatusMsg{"Listening..."},
		RecordingMsg{true},
		InputMsg{"Deal!"},
		SendLabelMsg{"Send"},
		PriceMsg{Index: 1, Quote: market.Quote{Market: "Indore", Crop: "Wheat", Unit: "quintal", Price: 2275, Trend: market.Up}},
		UpdatedMsg{3},
		TickerMsg{[]string{"Rain expected", "Onion arrivals up"}},
		NoticeMsg{"Opening contact list..."},
		ChatMsg{chat.Message{Seq: 1, Sender: chat.Farmer, Original: "Deal!", Translated: "सौदा पक्का!"}},
	} {
		model, _ = model.Update(msg)
	}

	m := model.(tuiModel)
	require.Equal(t, "Listening...", m.status)
	require.True(t, m.recording)
	require.Equal(t, "Deal!", m.input)
	require.Len(t, m.quotes, 2)
	require.Len(t, m.messages, 1)

	view := m.View()
	for _, want := range []string{"Listening...", "Indore", "₹2,275/quintal", "updated 3 min ago", "Rain expected", "Opening contact list...", "सौदा पक्का!"} {
		require.Contains(t, view, want)
	}
}

func TestTUINoticeExpires(t *testing.T) {
	var model tea.Model = newTUIModel(&tuiControls{})
	model, _ = model.Update(NoticeMsg{"Fetching today's rates..."})
	model, _ = model.Update(tickMsg(time.Now()))
	require.Equal(t, "Fetching today's rates...", model.(tuiModel).notice)

	model, _ = model.Update(tickMsg(time.Now().Add(noticeTTL + time.Second)))
	require.Empty(t, model.(tuiModel).notice)
}

func TestTUIViewBeforeResize(t *testing.T) {
	require.Equal(t, "Loading...", newTUIModel(&tuiControls{}).View())
}

func TestTUIKeysDriveController(t *testing.T) {
	cfg := testConfig()
	tbl, err := loadTables(cfg)
	require.NoError(t, err)

	loop := clock.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	var out bytes.Buffer
	app, err := newApp(cfg, tbl, loop, nil, newLineDisplay(&out, false), newRand(1))
	require.NoError(t, err)
	ctl := &tuiControls{loop: loop, app: app, codes: tbl.locales.Codes()}
	m := newTUIModel(ctl)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Dea")})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l!x")})
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	var input string
	require.True(t, loop.Call(func() { input = app.Controller().Input() }))
	require.Equal(t, "Deal!", input)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	var lang locale.Code
	var sent int
	require.True(t, loop.Call(func() {
		lang = app.Controller().Session().Language
		sent = app.exchange.Log().Len()
		input = app.Controller().Input()
	}))
	require.Equal(t, locale.Code("ta"), lang)
	require.Equal(t, 1, sent)
	require.Empty(t, input)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.True(t, loop.Call(app.Close))
}
