package chat

import (
	"strings"
	"time"

	"mandi/clock"
	"mandi/log"
)

// ReplyDelay is how long the buyer takes to answer.
const ReplyDelay = 1500 * time.Millisecond

type Translator interface {
	Translate(text string) string
}

// Sink renders appended messages.
type Sink interface {
	Message(m Message)
}

// Exchange is the send pathway. Every accepted message from the local side
// is appended with its translation, and the counterpart answers after
// ReplyDelay with the translation round-tripped in the opposite direction.
type Exchange struct {
	log        *Log
	tr         Translator
	clk        clock.Clock
	sink       Sink
	local      Sender
	replyDelay time.Duration
	timers     clock.Group
}

type Option func(*Exchange)

func WithReplyDelay(d time.Duration) Option {
	return func(x *Exchange) { x.replyDelay = d }
}

// WithLocal sets which side the operator plays. Defaults to Farmer.
func WithLocal(s Sender) Option {
	return func(x *Exchange) { x.local = s }
}

func NewExchange(l *Log, tr Translator, clk clock.Clock, sink Sink, opts ...Option) *Exchange {
	x := &Exchange{
		log:        l,
		tr:         tr,
		clk:        clk,
		sink:       sink,
		local:      Farmer,
		replyDelay: ReplyDelay,
	}
	for _, o := range opts {
		o(x)
	}
	return x
}

func (x *Exchange) Log() *Log { return x.log }

func (x *Exchange) Local() Sender { return x.local }

// Send appends text from the local side and schedules the reply. Blank
// input is ignored and reported as false.
func (x *Exchange) Send(text string) (Message, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, false
	}
	m := x.post(x.local, text)

	reply := x.tr.Translate(text)
	x.timers.AfterFunc(x.clk, x.replyDelay, func() {
		x.post(x.local.Counterpart(), reply)
	})
	return m, true
}

// Seed schedules a standalone message, used for the opening lines of the
// conversation.
func (x *Exchange) Seed(sender Sender, text string, delay time.Duration) {
	x.timers.AfterFunc(x.clk, delay, func() {
		x.post(sender, text)
	})
}

// Pending counts replies and seeds not yet delivered.
func (x *Exchange) Pending() int { return x.timers.Len() }

// Close drops every undelivered reply and seed.
func (x *Exchange) Close() int {
	return x.timers.StopAll()
}

func (x *Exchange) post(sender Sender, text string) Message {
	m := x.log.Append(sender, text, x.tr.Translate(text))
	log.ChatMessage(log.ChatEntry{
		Seq:        m.Seq,
		Sender:     m.Sender.String(),
		Lang:       m.Lang,
		Original:   m.Original,
		Translated: m.Translated,
	})
	if x.sink != nil {
		x.sink.Message(m)
	}
	return m
}
