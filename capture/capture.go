// Package capture defines the speech-capture boundary. An Engine listens in
// a given locale and reports back through a Handler: one recognized
// utterance, an error, or the end of capture.
package capture

//go:generate mockgen -source=capture.go -destination=mock_capture.go -package=capture

// Handler receives engine events. Calls arrive on the caller's dispatch
// goroutine.
type Handler interface {
	OnResult(utterance string)
	OnError(code string)
	OnEnd()
}

type Engine interface {
	Name() string
	// Start begins a single capture in locale (e.g. "hi-IN").
	Start(locale string, h Handler) error
	// Stop ends the active capture. Stopping an idle engine is a no-op.
	Stop()
}

// Error codes reported through Handler.OnError.
const (
	ErrCodeNoSpeech = "no-speech"
	ErrCodeAborted  = "aborted"
	ErrCodeNetwork  = "network"
)
