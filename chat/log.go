// Package chat keeps the farmer/buyer conversation: an append-only log and
// the exchange that answers every farmer message with a delayed buyer reply.
package chat

import (
	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type Sender int

const (
	Farmer Sender = iota
	Buyer
)

func (s Sender) String() string {
	switch s {
	case Farmer:
		return "farmer"
	case Buyer:
		return "buyer"
	}
	return "unknown"
}

// Counterpart is the other side of the conversation.
func (s Sender) Counterpart() Sender {
	if s == Farmer {
		return Buyer
	}
	return Farmer
}

// Message is immutable once appended.
type Message struct {
	ID         uuid.UUID
	Seq        uint64
	Sender     Sender
	Original   string
	Translated string
	Lang       string // ISO 639-1 guess for Original, "" when undetected
}

// Log is append-only; Seq starts at 1 and strictly increases.
type Log struct {
	msgs []Message
	seq  uint64
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(sender Sender, original, translated string) Message {
	l.seq++
	m := Message{
		ID:         uuid.New(),
		Seq:        l.seq,
		Sender:     sender,
		Original:   original,
		Translated: translated,
		Lang:       detectLang(original),
	}
	l.msgs = append(l.msgs, m)
	return m
}

func detectLang(text string) string {
	info := whatlanggo.Detect(text)
	if info.Lang == -1 {
		return ""
	}
	return info.Lang.Iso6391()
}

func (l *Log) Len() int { return len(l.msgs) }

// Messages returns a copy in display order.
func (l *Log) Messages() []Message {
	return append([]Message(nil), l.msgs...)
}

func (l *Log) Last() (Message, bool) {
	if len(l.msgs) == 0 {
		return Message{}, false
	}
	return l.msgs[len(l.msgs)-1], true
}

func (l *Log) BySender(s Sender) []Message {
	return lo.Filter(l.msgs, func(m Message, _ int) bool { return m.Sender == s })
}

func (l *Log) Get(seq uint64) (Message, bool) {
	return lo.Find(l.msgs, func(m Message) bool { return m.Seq == seq })
}
