package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualRunsInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.AfterFunc(300*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(100*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(200*time.Millisecond, func() { got = append(got, "b1") })
	m.AfterFunc(200*time.Millisecond, func() { got = append(got, "b2") })

	m.Advance(250 * time.Millisecond)
	require.Equal(t, []string{"a", "b1", "b2"}, got)
	require.Equal(t, 250*time.Millisecond, m.Now())

	m.Advance(50 * time.Millisecond)
	require.Equal(t, []string{"a", "b1", "b2", "c"}, got)
	require.Zero(t, m.Pending())
}

func TestManualNestedScheduling(t *testing.T) {
	m := NewManual()
	var at []time.Duration
	m.AfterFunc(time.Second, func() {
		at = append(at, m.Now())
		m.AfterFunc(500*time.Millisecond, func() { at = append(at, m.Now()) })
	})

	m.Advance(2 * time.Second)
	require.Equal(t, []time.Duration{time.Second, 1500 * time.Millisecond}, at)
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	ran := false
	tm := m.AfterFunc(time.Second, func() { ran = true })

	require.True(t, tm.Stop())
	require.False(t, tm.Stop())
	m.Advance(time.Minute)
	require.False(t, ran)
}

func TestManualStopAfterFire(t *testing.T) {
	m := NewManual()
	tm := m.AfterFunc(time.Second, func() {})
	m.Advance(time.Second)
	require.False(t, tm.Stop())
}

func TestManualEvery(t *testing.T) {
	m := NewManual()
	n := 0
	tm := m.Every(10*time.Second, func() { n++ })

	m.Advance(35 * time.Second)
	require.Equal(t, 3, n)

	require.True(t, tm.Stop())
	m.Advance(time.Minute)
	require.Equal(t, 3, n)
}

func TestManualEveryStopFromCallback(t *testing.T) {
	m := NewManual()
	n := 0
	var tm Timer
	tm = m.Every(time.Second, func() {
		n++
		if n == 2 {
			tm.Stop()
		}
	})
	m.Advance(10 * time.Second)
	require.Equal(t, 2, n)
}

func TestGroupStopAll(t *testing.T) {
	m := NewManual()
	var g Group
	ran := 0
	g.AfterFunc(m, time.Second, func() { ran++ })
	g.AfterFunc(m, 2*time.Second, func() { ran++ })
	g.AfterFunc(m, 3*time.Second, func() { ran++ })

	m.Advance(time.Second)
	require.Equal(t, 1, ran)
	require.Equal(t, 2, g.Len())

	require.Equal(t, 2, g.StopAll())
	m.Advance(time.Minute)
	require.Equal(t, 1, ran)
	require.Zero(t, g.Len())
}

func runLoop(t *testing.T) *Loop {
	t.Helper()
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = l.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return l
}

func TestLoopAfterFunc(t *testing.T) {
	l := runLoop(t)
	fired := make(chan struct{})
	l.AfterFunc(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for timer")
	}
}

func TestLoopAfterFuncStop(t *testing.T) {
	l := runLoop(t)
	fired := make(chan struct{}, 1)
	tm := l.AfterFunc(50*time.Millisecond, func() { fired <- struct{}{} })
	require.True(t, tm.Stop())
	require.False(t, tm.Stop())

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestLoopEvery(t *testing.T) {
	l := runLoop(t)
	ticks := make(chan struct{}, 4)
	tm := l.Every(time.Second, func() {
		select {
		case ticks <- struct{}{}:
		default:
		}
	})
	defer tm.Stop()

	select {
	case <-ticks:
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for periodic job")
	}
}

func TestLoopSerializesCallbacks(t *testing.T) {
	l := runLoop(t)
	counter := 0
	const n = 200
	for range n {
		go l.Post(func() { counter++ })
	}
	require.Eventually(t, func() bool {
		var c int
		l.Call(func() { c = counter })
		return c == n
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLoopPostAfterStop(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, l.Run(ctx), context.Canceled)
	require.False(t, l.Post(func() {}))
	require.False(t, l.Call(func() {}))
}
