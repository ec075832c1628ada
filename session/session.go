// Package session runs the capture lifecycle: toggling speech capture,
// turning a recognized utterance into a chat message, and keeping the
// status line and static UI text in the operator's language.
package session

import (
	"errors"
	"time"

	"mandi/locale"
)

// ProcessingDelay is the pause between recognizing an utterance and sending
// it, so the operator can see what was heard.
const ProcessingDelay = time.Second

type Phase int

const (
	Idle Phase = iota
	Listening
	Processing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Listening:
		return "listening"
	case Processing:
		return "processing"
	}
	return "unknown"
}

// statusKey is the status-line string shown in each phase.
func (p Phase) statusKey() locale.Key {
	switch p {
	case Listening:
		return locale.KeyListening
	case Processing:
		return locale.KeyProcessing
	}
	return locale.KeyReady
}

type Session struct {
	Capturing bool
	Language  locale.Code
	Phase     Phase
}

// Display is implemented by the presentation layer.
type Display interface {
	Status(text string)
	MicLabel(text string)
	SendLabel(text string)
	Placeholder(text string)
	Input(text string)
	Recording(on bool)
	Notify(text string)
}

var (
	ErrCaptureUnavailable = errors.New("speech capture unavailable")
	ErrInvalidLanguage    = errors.New("unsupported language")
	ErrBusy               = errors.New("previous utterance still processing")
)

// CaptureError is an engine-reported recognition failure. It is logged and
// recovered from, never surfaced to the operator.
type CaptureError struct {
	Code   string
	Locale string
}

func (e *CaptureError) Error() string {
	return "capture failed (" + e.Locale + "): " + e.Code
}
