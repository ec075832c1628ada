package session

import (
	"fmt"
	"time"

	"mandi/capture"
	"mandi/chat"
	"mandi/clock"
	"mandi/locale"
	"mandi/log"
)

type Config struct {
	Language        locale.Code
	ProcessingDelay time.Duration
}

// Controller owns the Session. All methods must be called from the clock's
// dispatch goroutine.
type Controller struct {
	sess    Session
	delay   time.Duration
	locales *locale.Table
	engine  capture.Engine
	clk     clock.Clock
	display Display
	chat    *chat.Exchange
	input   string
	gen     uint64
	timers  clock.Group
	lastErr *CaptureError
}

// New builds a controller in Idle. A nil engine means speech capture is not
// available on this host; toggling then only notifies the operator.
func New(cfg Config, locales *locale.Table, engine capture.Engine, clk clock.Clock, display Display, x *chat.Exchange) (*Controller, error) {
	lang := cfg.Language
	if lang == "" {
		lang = locales.DefaultCode()
	}
	if !locales.Supports(lang) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLanguage, lang)
	}
	delay := cfg.ProcessingDelay
	if delay <= 0 {
		delay = ProcessingDelay
	}
	return &Controller{
		sess:    Session{Language: lang},
		delay:   delay,
		locales: locales,
		engine:  engine,
		clk:     clk,
		display: display,
		chat:    x,
	}, nil
}

func (c *Controller) Session() Session { return c.sess }

func (c *Controller) Input() string { return c.input }

// CaptureAvailable reports whether an engine was provided.
func (c *Controller) CaptureAvailable() bool { return c.engine != nil }

// LastCaptureError is the most recent engine failure, if any.
func (c *Controller) LastCaptureError() error {
	if c.lastErr == nil {
		return nil
	}
	return c.lastErr
}

func (c *Controller) text(key locale.Key) string {
	return c.locales.String(c.sess.Language, key)
}

// Render pushes every piece of static UI text for the current language.
func (c *Controller) Render() {
	c.display.Status(c.text(c.sess.Phase.statusKey()))
	c.display.MicLabel(c.text(locale.KeyMicPress))
	c.display.SendLabel(c.text(locale.KeySend))
	c.display.Placeholder(c.text(locale.KeyPlaceholder))
	c.display.Recording(c.sess.Capturing)
}

func (c *Controller) setPhase(p Phase, cause string) {
	log.Transition(c.sess.Phase.String(), p.String(), cause)
	c.sess.Phase = p
	c.display.Status(c.text(p.statusKey()))
	if p == Idle {
		c.display.MicLabel(c.text(locale.KeyMicPress))
	}
	c.display.Recording(c.sess.Capturing)
}

// Toggle starts capture from Idle or stops it while Listening.
func (c *Controller) Toggle() error {
	if c.engine == nil {
		log.Warn("capture_unavailable")
		c.display.Notify(c.text(locale.KeyMicUnavailable))
		return ErrCaptureUnavailable
	}

	switch c.sess.Phase {
	case Idle:
		return c.startCapture()
	case Listening:
		c.engine.Stop()
		c.sess.Capturing = false
		c.setPhase(Idle, "toggle")
		return nil
	default:
		log.Warn("toggle_while_processing")
		return ErrBusy
	}
}

func (c *Controller) startCapture() error {
	c.gen++
	tag := c.locales.Tag(c.sess.Language)
	if err := c.engine.Start(tag, captureEvents{c: c, gen: c.gen}); err != nil {
		log.Errorf("capture start (%s): %v", tag, err)
		c.display.Notify(c.text(locale.KeyMicUnavailable))
		return fmt.Errorf("start capture: %w", err)
	}
	c.sess.Capturing = true
	c.setPhase(Listening, "toggle")
	return nil
}

// captureEvents binds engine callbacks to one capture. Events from a
// capture that was stopped or superseded are dropped.
type captureEvents struct {
	c   *Controller
	gen uint64
}

func (e captureEvents) live() bool {
	return e.gen == e.c.gen && e.c.sess.Phase == Listening
}

func (e captureEvents) OnResult(utterance string) {
	if e.live() {
		e.c.onResult(utterance)
	}
}

func (e captureEvents) OnError(code string) {
	if e.live() {
		e.c.onError(code)
	}
}

func (e captureEvents) OnEnd() {
	if e.live() {
		e.c.sess.Capturing = false
		e.c.setPhase(Idle, "end")
	}
}

func (c *Controller) onResult(utterance string) {
	c.engine.Stop()
	c.sess.Capturing = false
	c.SetInput(utterance)
	c.setPhase(Processing, "result")
	c.timers.AfterFunc(c.clk, c.delay, func() {
		c.Submit()
		c.setPhase(Idle, "sent")
	})
}

func (c *Controller) onError(code string) {
	tag := c.locales.Tag(c.sess.Language)
	c.lastErr = &CaptureError{Code: code, Locale: tag}
	log.CaptureError(code, tag)
	c.engine.Stop()
	c.sess.Capturing = false
	c.setPhase(Idle, "error")
}

// SetLanguage switches the UI language and the locale used by the next
// capture. A capture already in progress keeps its locale.
func (c *Controller) SetLanguage(code locale.Code) error {
	if !c.locales.Supports(code) {
		log.Warnf("unsupported language %q", code)
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	log.LanguageChange(string(c.sess.Language), string(code))
	c.sess.Language = code
	c.Render()
	return nil
}

// SetInput replaces the pending input buffer.
func (c *Controller) SetInput(text string) {
	c.input = text
	c.display.Input(text)
}

// Send posts text as the operator. Blank text is ignored and leaves the
// input buffer alone.
func (c *Controller) Send(text string) bool {
	if _, ok := c.chat.Send(text); !ok {
		return false
	}
	c.SetInput("")
	return true
}

// Submit sends whatever is in the input buffer.
func (c *Controller) Submit() bool {
	return c.Send(c.input)
}

var quickActions = map[string]locale.Key{
	"rates":     locale.KeyActionRates,
	"transport": locale.KeyActionTransport,
	"payment":   locale.KeyActionPayment,
	"contacts":  locale.KeyActionContacts,
}

// QuickActions lists the shortcut names accepted by QuickAction.
func QuickActions() []string {
	return []string{"rates", "transport", "payment", "contacts"}
}

// QuickAction shows the placeholder notice for a marketplace shortcut.
func (c *Controller) QuickAction(name string) bool {
	key, ok := quickActions[name]
	if !ok {
		return false
	}
	c.display.Notify(c.text(key))
	return true
}

// Close cancels the pending send and stops an active capture.
func (c *Controller) Close() {
	c.timers.StopAll()
	if c.sess.Phase == Listening && c.engine != nil {
		c.engine.Stop()
	}
	c.gen++
	c.sess.Capturing = false
	c.sess.Phase = Idle
}
