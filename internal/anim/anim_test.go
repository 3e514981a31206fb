package anim

import (
	"testing"
	"testing/quick"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

func newTestChannel() *Channel {
	return NewChannel("test", zerolog.Nop())
}

func TestTimelineInterpolatesFromCurrentValue(t *testing.T) {
	p := NewFloat(10)
	c := newTestChannel()
	c.Start(NewTimeline(At(100*ms, Set(p, 20.0))), 0)

	c.Advance(50 * ms)
	assert.InDelta(t, 15.0, p.Get(), 1e-9)

	c.Advance(100 * ms)
	assert.InDelta(t, 20.0, p.Get(), 1e-9)
	assert.False(t, c.Active())
}

func TestTimelineExplicitZeroFrameJumps(t *testing.T) {
	p := NewFloat(10)
	c := newTestChannel()
	c.Start(NewTimeline(
		At(0, Set(p, 0.0)),
		At(200*ms, Set(p, 100.0)),
	), 0)

	assert.InDelta(t, 0.0, p.Get(), 1e-9, "zero frame applies on start")
	c.Advance(50 * ms)
	assert.InDelta(t, 25.0, p.Get(), 1e-9)
}

func TestTimelineFramesAreSorted(t *testing.T) {
	p := NewFloat(0)
	tl := NewTimeline(
		At(300*ms, Set(p, 3.0)),
		At(100*ms, Set(p, 1.0)),
	)
	assert.Equal(t, 300*ms, tl.Duration())

	c := newTestChannel()
	c.Start(tl, 0)
	c.Advance(100 * ms)
	assert.InDelta(t, 1.0, p.Get(), 1e-9)
	c.Advance(200 * ms)
	assert.InDelta(t, 2.0, p.Get(), 1e-9)
}

func TestChannelDelay(t *testing.T) {
	p := NewFloat(5)
	c := newTestChannel()
	tl := NewTimeline(At(100*ms, Set(p, 15.0))).WithDelay(200 * ms)
	assert.Equal(t, 300*ms, tl.Total())
	c.Start(tl, 0)

	c.Advance(150 * ms)
	assert.InDelta(t, 5.0, p.Get(), 1e-9, "nothing moves during the delay")

	p.Set(9)
	c.Advance(250 * ms)
	assert.InDelta(t, 12.0, p.Get(), 1e-9, "start value captured after the delay")
}

func TestChannelReplaceDiscardsCallback(t *testing.T) {
	p := NewFloat(0)
	c := newTestChannel()
	firstDone := false
	c.Start(NewTimeline(At(100*ms, Set(p, 1.0))).OnFinished(func() { firstDone = true }), 0)
	c.Start(NewTimeline(At(100*ms, Set(p, 2.0))), 10*ms)

	c.Advance(500 * ms)
	assert.False(t, firstDone)
	assert.InDelta(t, 2.0, p.Get(), 1e-9)
}

func TestChannelCallbackMayRearm(t *testing.T) {
	p := NewFloat(0)
	c := newTestChannel()
	cycles := 0
	var arm func(now time.Duration)
	arm = func(now time.Duration) {
		c.Start(NewTimeline(At(100*ms, Set(p, float64(cycles+1)))).OnFinished(func() {
			cycles++
			arm(now + 100*ms)
		}), now)
	}
	arm(0)

	for now := 10 * ms; now <= 1000*ms; now += 10 * ms {
		c.Advance(now)
	}
	assert.Equal(t, 10, cycles)
	assert.True(t, c.Active())
}

func TestChannelHoldAndRelease(t *testing.T) {
	p := NewFloat(0)
	c := newTestChannel()
	c.Start(NewTimeline(At(100*ms, Set(p, 100.0))), 0)

	c.Advance(40 * ms)
	c.Hold(40 * ms)
	c.Advance(500 * ms)
	assert.InDelta(t, 40.0, p.Get(), 1e-9, "held channel does not advance")

	c.Release(500 * ms)
	c.Advance(520 * ms)
	assert.InDelta(t, 60.0, p.Get(), 1e-9)
}

func TestChannelStartWhileHeld(t *testing.T) {
	p := NewFloat(0)
	c := newTestChannel()
	c.Hold(0)
	c.Start(NewTimeline(At(0, Set(p, 7.0)), At(100*ms, Set(p, 8.0))), 50*ms)
	assert.InDelta(t, 0.0, p.Get(), 1e-9)

	c.Release(300 * ms)
	c.Advance(300 * ms)
	assert.InDelta(t, 7.0, p.Get(), 1e-9)
}

func TestPropertyOnChange(t *testing.T) {
	p := NewFloat(0)
	var seen []float64
	p.OnChange(func(v float64) { seen = append(seen, v) })
	c := newTestChannel()
	c.Start(NewTimeline(At(10*ms, Set(p, 1.0))), 0)
	c.Advance(10 * ms)

	require.NotEmpty(t, seen)
	assert.Equal(t, 1.0, seen[len(seen)-1])
}

// TestInterpolationStaysBetweenEndpoints checks that linear tracks never overshoot.
func TestInterpolationStaysBetweenEndpoints(t *testing.T) {
	property := func(from32, to32 float32, at uint16) bool {
		from, to := float64(from32), float64(to32)
		p := NewFloat(from)
		c := newTestChannel()
		c.Start(NewTimeline(At(1000*ms, Set(p, to))), 0)
		c.Advance(time.Duration(at%1000) * ms)
		lo, hi := from, to
		if lo > hi {
			lo, hi = hi, lo
		}
		v := p.Get()
		const eps = 1e-6
		return v >= lo-eps*(1+abs(lo)) && v <= hi+eps*(1+abs(hi))
	}
	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
