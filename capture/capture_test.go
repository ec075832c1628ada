package capture

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mandi/clock"
)

func TestFakeRecordsStartsAndStops(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	h := NewMockHandler(ctrl)
	f := NewFake()

	req.NoError(f.Start("hi-IN", h))
	req.True(f.Active())
	req.Error(f.Start("en-IN", h), "second start while active")

	f.Stop()
	f.Stop()
	req.False(f.Active())
	req.Equal([]string{"hi-IN"}, f.Starts())
	req.Equal(2, f.Stops())
}

func TestFakeSimResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewMockHandler(ctrl)
	gomock.InOrder(
		h.EXPECT().OnResult("Deal!"),
		h.EXPECT().OnEnd(),
	)

	f := NewFake()
	require.NoError(t, f.Start("en-IN", h))
	require.True(t, f.SimResult("Deal!"))
	require.False(t, f.Active())
	require.False(t, f.SimResult("again"), "no active capture")
}

func TestFakeSimError(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewMockHandler(ctrl)
	gomock.InOrder(
		h.EXPECT().OnError(ErrCodeNetwork),
		h.EXPECT().OnEnd(),
	)

	f := NewFake()
	require.NoError(t, f.Start("en-IN", h))
	require.True(t, f.SimError(ErrCodeNetwork))
}

func TestFakeFailStart(t *testing.T) {
	f := NewFake()
	boom := errors.New("boom")
	f.FailStart(boom)
	require.ErrorIs(t, f.Start("hi-IN", NewMockHandler(gomock.NewController(t))), boom)
	require.Empty(t, f.Starts())
}

func TestDemoCyclesUtterances(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewMockHandler(ctrl)
	gomock.InOrder(
		h.EXPECT().OnResult("one"),
		h.EXPECT().OnEnd(),
		h.EXPECT().OnResult("two"),
		h.EXPECT().OnEnd(),
		h.EXPECT().OnResult("one"),
		h.EXPECT().OnEnd(),
	)

	clk := clock.NewManual()
	d := NewDemo(clk, 800*time.Millisecond, []string{"one", "two"})
	for range 3 {
		require.NoError(t, d.Start("ta-IN", h))
		clk.Advance(799 * time.Millisecond)
		clk.Advance(time.Millisecond)
	}
	require.Equal(t, "ta-IN", d.Locale())
}

func TestDemoStopCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewMockHandler(ctrl) // no calls expected

	clk := clock.NewManual()
	d := NewDemo(clk, time.Second, []string{"one"})
	require.NoError(t, d.Start("hi-IN", h))
	d.Stop()
	clk.Advance(time.Minute)
	require.Zero(t, clk.Pending())
}

func TestDemoWithoutUtterancesReportsNoSpeech(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewMockHandler(ctrl)
	gomock.InOrder(
		h.EXPECT().OnError(ErrCodeNoSpeech),
		h.EXPECT().OnEnd(),
	)

	clk := clock.NewManual()
	d := NewDemo(clk, time.Second, nil)
	require.NoError(t, d.Start("hi-IN", h))
	clk.Advance(time.Second)
}
