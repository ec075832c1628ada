package clock

import "time"

// Manual is a virtual clock. Nothing runs until Advance is called; due
// callbacks then run on the caller's goroutine in deadline order, ties
// broken by scheduling order.
type Manual struct {
	now   time.Duration
	seq   uint64
	queue []*manualTimer
}

type manualTimer struct {
	m      *Manual
	due    time.Duration
	seq    uint64
	period time.Duration
	f      func()
	queued bool
}

func NewManual() *Manual {
	return &Manual{}
}

// Now is the virtual time elapsed since the clock was created.
func (m *Manual) Now() time.Duration { return m.now }

// Pending counts scheduled callbacks, periodic ones included.
func (m *Manual) Pending() int { return len(m.queue) }

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	return m.push(&manualTimer{m: m, due: m.now + d, f: f})
}

func (m *Manual) Every(d time.Duration, f func()) Timer {
	if d <= 0 {
		panic("clock: non-positive interval for Every")
	}
	return m.push(&manualTimer{m: m, due: m.now + d, period: d, f: f})
}

func (m *Manual) push(t *manualTimer) *manualTimer {
	m.seq++
	t.seq = m.seq
	t.queued = true
	m.queue = append(m.queue, t)
	return t
}

// Advance moves virtual time forward by d, running everything that falls
// due, including callbacks scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		i := m.next(target)
		if i < 0 {
			break
		}
		t := m.queue[i]
		m.remove(i)
		m.now = t.due
		if t.period > 0 {
			t.due += t.period
			m.push(t)
		}
		t.f()
	}
	m.now = target
}

func (m *Manual) next(target time.Duration) int {
	best := -1
	for i, t := range m.queue {
		if t.due > target {
			continue
		}
		if best < 0 || t.due < m.queue[best].due || (t.due == m.queue[best].due && t.seq < m.queue[best].seq) {
			best = i
		}
	}
	return best
}

func (m *Manual) remove(i int) {
	m.queue[i].queued = false
	m.queue = append(m.queue[:i], m.queue[i+1:]...)
}

func (t *manualTimer) Stop() bool {
	if !t.queued {
		return false
	}
	for i, q := range t.m.queue {
		if q == t {
			t.m.remove(i)
			return true
		}
	}
	return false
}
