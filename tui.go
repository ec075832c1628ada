package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"mandi/chat"
	"mandi/clock"
	"mandi/locale"
	"mandi/market"
	"mandi/session"
)

// TUI message types
type StatusMsg struct{ Text string }
type MicLabelMsg struct{ Text string }
type SendLabelMsg struct{ Text string }
type PlaceholderMsg struct{ Text string }
type InputMsg struct{ Text string }
type RecordingMsg struct{ On bool }
type NoticeMsg struct{ Text string }
type ChatMsg struct{ Message chat.Message }
type PriceMsg struct {
	Index int
	Quote market.Quote
}
type UpdatedMsg struct{ MinutesAgo int }
type TickerMsg struct{ Items []string }
type tickMsg time.Time

const noticeTTL = 3 * time.Second

// tuiDisplay forwards display events from the dispatch goroutine to the
// Bubble Tea program.
type tuiDisplay struct{ p *tea.Program }

func (d tuiDisplay) Status(text string) { d.p.Send(StatusMsg{text}) }
func (d tuiDisplay) MicLabel(text string) { d.p.Send(MicLabelMsg{text}) }
func (d tuiDisplay) SendLabel(text string) { d.p.Send(SendLabelMsg{text}) }
func (d tuiDisplay) Placeholder(text string) { d.p.Send(PlaceholderMsg{text}) }
func (d tuiDisplay) Input(text string) { d.p.Send(InputMsg{text}) }
func (d tuiDisplay) Recording(on bool) { d.p.Send(RecordingMsg{on}) }
func (d tuiDisplay) Notify(text string) { d.p.Send(NoticeMsg{text}) }
func (d tuiDisplay) Message(m chat.Message) { d.p.Send(ChatMsg{m}) }
func (d tuiDisplay) Price(i int, q market.Quote) { d.p.Send(PriceMsg{i, q}) }
func (d tuiDisplay) Updated(minutesAgo int) { d.p.Send(UpdatedMsg{minutesAgo}) }
func (d tuiDisplay) Ticker(items []string) { d.p.Send(TickerMsg{items}) }

// tuiControls hands key presses to the dispatch goroutine. The model never
// touches the controller directly.
type tuiControls struct {
	loop  *clock.Loop
	app   *App
	codes []locale.Code
}

func (c *tuiControls) post(f func(ctrl *session.Controller)) {
	c.loop.Post(func() { f(c.app.Controller()) })
}

type tuiModel struct {
	ctl           *tuiControls
	width, height int
	frame         int
	status        string
	micLabel      string
	sendLabel     string
	placeholder   string
	input         string
	recording     bool
	notice        string
	noticeAt      time.Time
	messages      []chat.Message
	quotes        []market.Quote
	updated       int
	ticker        []string
}

func newTUIModel(ctl *tuiControls) tuiModel {
	return tuiModel{ctl: ctl}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	helpKeyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Bold(true)
	upStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	downStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
	recStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	farmerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	buyerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	inputStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("241")).Padding(0, 1)
	sendStyle    = lipgloss.NewStyle().Background(lipgloss.Color("28")).Foreground(lipgloss.Color("231")).Padding(0, 1)
)

func tuiTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m tuiModel) Init() tea.Cmd {
	return tuiTick()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tickMsg:
		m.frame++
		if m.notice != "" && time.Time(msg).Sub(m.noticeAt) > noticeTTL {
			m.notice = ""
		}
		return m, tuiTick()

	case StatusMsg:
		m.status = msg.Text
	case MicLabelMsg:
		m.micLabel = msg.Text
	case SendLabelMsg:
		m.sendLabel = msg.Text
	case PlaceholderMsg:
		m.placeholder = msg.Text
	case InputMsg:
		m.input = msg.Text
	case RecordingMsg:
		m.recording = msg.On
	case NoticeMsg:
		m.notice = msg.Text
		m.noticeAt = time.Now()
	case ChatMsg:
		m.messages = append(m.messages, msg.Message)
	case PriceMsg:
		for len(m.quotes) <= msg.Index {
			m.quotes = append(m.quotes, market.Quote{})
		}
		m.quotes[msg.Index] = msg.Quote
	case UpdatedMsg:
		m.updated = msg.MinutesAgo
	case TickerMsg:
		m.ticker = msg.Items
	}
	return m, nil
}

// handleKey maps keys onto controller calls. Edits to the input buffer are
// computed on the dispatch goroutine and come back as InputMsg.
func (m tuiModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		typed := string(msg.Runes)
		if msg.Type == tea.KeySpace {
			typed = " "
		}
		m.ctl.post(func(c *session.Controller) { c.SetInput(c.Input() + typed) })
		return nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "ctrl+t":
		m.ctl.post(func(c *session.Controller) { _ = c.Toggle() })
	case "tab":
		codes := m.ctl.codes
		m.ctl.post(func(c *session.Controller) {
			i := lo.IndexOf(codes, c.Session().Language)
			_ = c.SetLanguage(codes[(i+1)%len(codes)])
		})
	case "enter":
		m.ctl.post(func(c *session.Controller) { c.Submit() })
	case "backspace":
		m.ctl.post(func(c *session.Controller) {
			r := []rune(c.Input())
			if len(r) > 0 {
				c.SetInput(string(r[:len(r)-1]))
			}
		})
	case "ctrl+u":
		m.ctl.post(func(c *session.Controller) { c.SetInput("") })
	case "f1", "f2", "f3", "f4":
		name := session.QuickActions()[msg.String()[1]-'1']
		m.ctl.post(func(c *session.Controller) { c.QuickAction(name) })
	}
	return nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	width := m.width - 2

	var top []string
	top = append(top, titleStyle.Render("Mandi")+dimStyle.Render(" · farmer ⇄ buyer"))
	top = append(top, m.renderPrices()...)
	if m.updated > 0 {
		top = append(top, dimStyle.Render(fmt.Sprintf("updated %d min ago", m.updated)))
	}
	if len(m.ticker) > 0 {
		top = append(top, noticeStyle.Render("📰 "+strings.Join(m.ticker, "  •  ")))
	}
	top = append(top, dimStyle.Render(strings.Repeat("─", max(width, 1))))

	var bottom []string
	status := dimStyle.Render("○ " + m.status)
	if m.recording {
		dot := "●"
		if m.frame%4 >= 2 {
			dot = " "
		}
		status = recStyle.Render(dot + " " + m.status)
	}
	bottom = append(bottom, status)

	text := m.input
	if text == "" {
		text = dimStyle.Render(m.placeholder)
	}
	mic := dimStyle.Render("[" + m.micLabel + "]")
	if m.recording {
		mic = recStyle.Render("[● " + m.micLabel + "]")
	}
	box := inputStyle.Width(max(width-lipgloss.Width(m.sendLabel)-lipgloss.Width(mic)-6, 10)).Render(text)
	bottom = append(bottom, strings.Split(lipgloss.JoinHorizontal(lipgloss.Center, box, " ", sendStyle.Render(m.sendLabel), " ", mic), "\n")...)
	if m.notice != "" {
		bottom = append(bottom, noticeStyle.Render(m.notice))
	} else {
		bottom = append(bottom, "")
	}
	bottom = append(bottom, helpKeyStyle.Render("ctrl+t")+helpStyle.Render(" mic  ")+
		helpKeyStyle.Render("tab")+helpStyle.Render(" language  ")+
		helpKeyStyle.Render("enter")+helpStyle.Render(" send  ")+
		helpKeyStyle.Render("f1-f4")+helpStyle.Render(" "+strings.Join(session.QuickActions(), "/")+"  ")+
		helpKeyStyle.Render("esc")+helpStyle.Render(" quit"))

	room := m.height - len(top) - len(bottom)
	chatLines := m.renderChat(width)
	if len(chatLines) > room {
		chatLines = chatLines[len(chatLines)-max(room, 0):]
	}
	for len(chatLines) < room {
		chatLines = append(chatLines, "")
	}

	lines := append(append(top, chatLines...), bottom...)
	return strings.Join(lines, "\n")
}

func (m tuiModel) renderPrices() []string {
	var out []string
	for _, q := range m.quotes {
		if q.Market == "" {
			continue
		}
		price := q.Text()
		switch q.Trend {
		case market.Up:
			price = upStyle.Render(price + " ▲")
		case market.Down:
			price = downStyle.Render(price + " ▼")
		}
		out = append(out, fmt.Sprintf("%-22s %-8s %s", q.Market, q.Crop, price))
	}
	return out
}

func (m tuiModel) renderChat(width int) []string {
	var lines []string
	body := lipgloss.NewStyle().Width(max(width-4, 10))
	for _, msg := range m.messages {
		name := farmerStyle.Render(msg.Sender.String())
		if msg.Sender == chat.Buyer {
			name = buyerStyle.Render(msg.Sender.String())
		}
		lines = append(lines, name+dimStyle.Render(fmt.Sprintf(" #%d", msg.Seq)))
		for _, l := range strings.Split(body.Render(msg.Original), "\n") {
			lines = append(lines, "  "+l)
		}
		for _, l := range strings.Split(body.Render("↳ "+msg.Translated), "\n") {
			lines = append(lines, "  "+dimStyle.Render(l))
		}
	}
	return lines
}
