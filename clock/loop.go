package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// Loop is the wall-clock dispatcher. Timers, periodic jobs and anything
// handed to Post are queued and executed one at a time by Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
	cron  *cron.Cron
}

func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
		cron:  cron.New(),
	}
}

// Run dispatches until ctx is cancelled. Callbacks posted afterwards are
// dropped.
func (l *Loop) Run(ctx context.Context) error {
	l.cron.Start()
	defer func() {
		l.once.Do(func() { close(l.done) })
		l.cron.Stop()
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.tasks:
			f()
		}
	}
}

// Post queues f for the dispatch goroutine. It is safe to call from any
// goroutine and reports false once the loop has stopped.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- f:
		return true
	case <-l.done:
		return false
	}
}

// Call runs f on the dispatch goroutine and waits for it to finish.
func (l *Loop) Call(f func()) bool {
	ran := make(chan struct{})
	if !l.Post(func() {
		defer close(ran)
		f()
	}) {
		return false
	}
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

type loopTimer struct {
	stopped atomic.Bool
	fired   atomic.Bool
	timer   *time.Timer
}

func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped.Load() {
				return
			}
			t.fired.Store(true)
			f()
		})
	})
	return t
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	if t.stopped.Swap(true) {
		return false
	}
	return !t.fired.Load()
}

type cronTimer struct {
	l       *Loop
	id      cron.EntryID
	stopped atomic.Bool
}

// Every registers f as a cron job. cron schedules at whole-second
// granularity, so d is rounded up to at least one second.
func (l *Loop) Every(d time.Duration, f func()) Timer {
	t := &cronTimer{l: l}
	t.id = l.cron.Schedule(cron.Every(d), cron.FuncJob(func() {
		l.Post(func() {
			if t.stopped.Load() {
				return
			}
			f()
		})
	}))
	return t
}

func (t *cronTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.l.cron.Remove(t.id)
	return true
}
