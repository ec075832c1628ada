package capture

import "fmt"

// Fake is an engine driven by hand. It records each Start and Stop and
// forwards simulated events to the active handler.
type Fake struct {
	starts   []string
	stops    int
	active   Handler
	startErr error
}

func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) Start(locale string, h Handler) error {
	if f.startErr != nil {
		return f.startErr
	}
	if f.active != nil {
		return fmt.Errorf("fake capture already active")
	}
	f.starts = append(f.starts, locale)
	f.active = h
	return nil
}

func (f *Fake) Stop() {
	f.stops++
	f.active = nil
}

// FailStart makes subsequent Start calls return err.
func (f *Fake) FailStart(err error) { f.startErr = err }

func (f *Fake) Active() bool { return f.active != nil }

// Starts returns the locale of every Start call so far.
func (f *Fake) Starts() []string { return append([]string(nil), f.starts...) }

func (f *Fake) Stops() int { return f.stops }

// SimResult delivers a recognized utterance followed by end of capture,
// the way a single-shot recognizer does.
func (f *Fake) SimResult(utterance string) bool {
	h := f.active
	if h == nil {
		return false
	}
	h.OnResult(utterance)
	h.OnEnd()
	f.active = nil
	return true
}

func (f *Fake) SimError(code string) bool {
	h := f.active
	if h == nil {
		return false
	}
	h.OnError(code)
	h.OnEnd()
	f.active = nil
	return true
}

// SimEnd ends capture without a result.
func (f *Fake) SimEnd() bool {
	h := f.active
	if h == nil {
		return false
	}
	h.OnEnd()
	f.active = nil
	return true
}
