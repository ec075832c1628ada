// Package clock provides the timers every component schedules against.
//
// All callbacks run on a single dispatch goroutine, so code driven by a
// Clock never needs locks. Loop is the wall-clock implementation; Manual
// is a virtual clock advanced explicitly by tests and the script driver.
package clock

import "time"

// Timer cancels a scheduled callback. Stop reports whether the call
// prevented a pending run.
type Timer interface {
	Stop() bool
}

type Clock interface {
	// AfterFunc runs f once, d from now.
	AfterFunc(d time.Duration, f func()) Timer
	// Every runs f each d until the returned Timer is stopped.
	Every(d time.Duration, f func()) Timer
}

// Group tracks timers so an owner can cancel everything it scheduled.
// Not safe for concurrent use; it lives on the dispatch goroutine like
// its owner.
type Group struct {
	timers map[Timer]struct{}
}

func (g *Group) Add(t Timer) Timer {
	if g.timers == nil {
		g.timers = make(map[Timer]struct{})
	}
	g.timers[t] = struct{}{}
	return t
}

// AfterFunc schedules f on c and tracks the timer until it fires.
func (g *Group) AfterFunc(c Clock, d time.Duration, f func()) Timer {
	var t Timer
	t = g.Add(c.AfterFunc(d, func() {
		g.Done(t)
		f()
	}))
	return t
}

// Done forgets a timer that has fired.
func (g *Group) Done(t Timer) {
	delete(g.timers, t)
}

func (g *Group) Len() int { return len(g.timers) }

// StopAll cancels every tracked timer and returns how many were pending.
func (g *Group) StopAll() int {
	n := 0
	for t := range g.timers {
		if t.Stop() {
			n++
		}
	}
	g.timers = nil
	return n
}
