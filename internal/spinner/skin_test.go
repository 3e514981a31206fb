package spinner

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = time.Millisecond

// newAttachedSkin builds a showing control, lets setup adjust it and binds a skin.
func newAttachedSkin(t *testing.T, setup func(c *Control)) (*Control, *Skin) {
	t.Helper()
	c := NewControl()
	c.Attach()
	if setup != nil {
		setup(c)
	}
	s := NewSkin(c)
	t.Cleanup(s.Dispose)
	return c, s
}

// tickTo advances s to end in steps of step.
func tickTo(s *Skin, end, step time.Duration) {
	for now := s.Now() + step; now < end; now += step {
		s.Tick(now)
	}
	s.Tick(end)
}

func sameAngle(t *testing.T, want, got float64, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, 0, math.Remainder(got-want, 360), 1e-6, msgAndArgs...)
}

func TestStaticProgressScenarios(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) { c.Progress.Set(0.4) })

	f := s.Frame()
	assert.InDelta(t, -144, f.Length, 1e-9)
	assert.Equal(t, "40%", f.Text.Value)
	assert.Equal(t, ModeStatic, s.Mode())

	c.Progress.Set(-0.4)
	f = s.Frame()
	assert.InDelta(t, 144, f.Length, 1e-9)
	assert.Equal(t, "40%", f.Text.Value)
	assert.Equal(t, 1.0, ComputeDeflateParams(c.Progress.Get()).RotationFactor)

	c.Progress.Set(4)
	assert.InDelta(t, -360, s.Frame().Length, 1e-9, "progress is clamped")
	assert.Equal(t, "100%", s.Frame().Text.Value)
}

// TestStaticLengthSign verifies the static arc always sweeps against the progress sign.
func TestStaticLengthSign(t *testing.T) {
	c, s := newAttachedSkin(t, nil)
	for _, p := range []float64{-1, -0.73, -0.01, 0, 0.01, 0.5, 1} {
		c.Progress.Set(p)
		length := s.Frame().Length
		switch {
		case p > 0:
			assert.Less(t, length, 0.0, "progress %v", p)
		case p < 0:
			assert.Greater(t, length, 0.0, "progress %v", p)
		default:
			assert.Zero(t, length)
		}
	}
}

func TestIndeterminateLengthFollowsInflateStrength(t *testing.T) {
	_, s := newAttachedSkin(t, func(c *Control) { c.Indeterminate.Set(true) })
	assert.Equal(t, ModeIndeterminate, s.Mode())
	assert.InDelta(t, 5, s.Frame().Length, 1e-9, "cycle starts deflated")

	steps := planIndeterminateCycle(0, ComputeDeflateParams(0))
	s.Tick(steps[1].at)
	assert.InDelta(t, 240, s.Frame().Length, 1e-9, "fully inflated after the first step")
	sameAngle(t, steps[1].startAngle, s.Frame().StartAngle)
}

// TestIndeterminateCycleIsPeriodic verifies that cycles join seamlessly and that four
// of them bring the arc back to its initial phase.
func TestIndeterminateCycleIsPeriodic(t *testing.T) {
	for _, progress := range []float64{0, 0.3, -0.9} {
		d := ComputeDeflateParams(progress)
		for c := 0; c < indeterminateCycleCount; c++ {
			steps := planIndeterminateCycle(c, d)
			next := planIndeterminateCycle((c+1)%indeterminateCycleCount, d)
			sameAngle(t, steps[len(steps)-1].startAngle, next[0].startAngle, "cycle %d ends where %d starts", c, c+1)
			assert.Zero(t, steps[len(steps)-1].strength)
		}
	}

	c, s := newAttachedSkin(t, func(c *Control) {
		c.Progress.Set(0.3)
		c.Indeterminate.Set(true)
	})
	d := ComputeDeflateParams(c.Progress.Get())
	initial := s.Frame().StartAngle

	now := time.Duration(0)
	for cycle := 0; cycle < indeterminateCycleCount; cycle++ {
		steps := planIndeterminateCycle(cycle, d)
		now += steps[len(steps)-1].at
		s.Tick(now)
	}
	assert.Equal(t, 0, s.cycleIndex)
	sameAngle(t, initial, s.Frame().StartAngle)
	assert.InDelta(t, 5*d.RotationFactor, s.Frame().Length, 1e-9)
}

func TestIndeterminateOffResetsToStatic(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Progress.Set(0.5)
		c.Indeterminate.Set(true)
	})
	tickTo(s, 700*ms, 10*ms)

	c.Indeterminate.Set(false)
	assert.False(t, s.indeterminateChannel.Active())
	assert.Zero(t, s.Frame().StartAngle)
	assert.InDelta(t, -180, s.Frame().Length, 1e-9)

	tickTo(s, 1400*ms, 10*ms)
	assert.InDelta(t, -180, s.Frame().Length, 1e-9, "no animation touches the static arc")
}

// TestPaintSequencerVisitsEveryKeyframeInOrder verifies that the sequencer loops
// through the keyframes in list order, cross-fading between neighbours.
func TestPaintSequencerVisitsEveryKeyframeInOrder(t *testing.T) {
	paints := []PaintKeyframe{
		{Paint: MustHex("#ff0000"), BlendIn: 100 * ms, Hold: 200 * ms, BlendOut: 50 * ms},
		{Paint: MustHex("#00ff00"), BlendIn: 80 * ms, Hold: 300 * ms, BlendOut: 120 * ms},
		{Paint: MustHex("#0000ff"), BlendIn: 60 * ms, Hold: 100 * ms, BlendOut: 40 * ms},
	}
	_, s := newAttachedSkin(t, func(c *Control) {
		for _, p := range paints {
			c.Paints.Append(p)
		}
	})

	s.Tick(paints[0].BlendIn)
	assert.Equal(t, "#ff0000", s.Frame().Stroke.Hex())

	end := paints[0].BlendIn + paints[0].Hold
	for i := 0; i < 2*len(paints); i++ {
		current := paints[i%len(paints)]
		next := paints[(i+1)%len(paints)]

		s.Tick(end)
		assert.Equal(t, (i+1)%len(paints), s.paintIndex)

		blend := current.BlendOut + next.BlendIn
		s.Tick(end + blend/2)
		mid := s.Frame().Stroke.Hex()
		assert.NotEqual(t, current.Paint.Hex(), mid, "cross-fading")
		assert.NotEqual(t, next.Paint.Hex(), mid, "cross-fading")

		s.Tick(end + blend)
		assert.Equal(t, next.Paint.Hex(), s.Frame().Stroke.Hex())
		assert.Equal(t, next.Paint.Hex(), s.iconStroke.Get().Hex(), "icon stroke follows")

		end += blend + next.Hold
	}
}

func TestPaintSequencerSingleKeyframeRearms(t *testing.T) {
	p1 := PaintKeyframe{Paint: MustHex("#123456"), BlendIn: 250 * ms, Hold: 900 * ms, BlendOut: 250 * ms}
	_, s := newAttachedSkin(t, func(c *Control) { c.Paints.Append(p1) })

	end := p1.BlendIn + p1.Hold
	s.Tick(end)
	for i := 0; i < 5; i++ {
		require.True(t, s.paintChannel.Active(), "cycle %d re-armed", i)
		assert.Equal(t, 0, s.paintIndex)
		end += p1.BlendOut + p1.BlendIn + p1.Hold
		s.Tick(end - p1.Hold/2)
		assert.Equal(t, "#123456", s.Frame().Stroke.Hex())
		s.Tick(end)
	}
}

func TestPaintSequencerDefaultsAndEmptyList(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) { c.Paints.Append(PaintKeyframe{}) })
	s.Tick(DefaultBlendIn)
	assert.Equal(t, DefaultPaint.Hex(), s.Frame().Stroke.Hex())

	c.Paints.Clear()
	assert.True(t, s.Frame().Stroke.IsTransparent())
	assert.False(t, s.paintChannel.Active())
}

func TestPaintSequencerToleratesShrunkList(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Paints.Append(NewPaintKeyframe(MustHex("#ff0000")))
		c.Paints.Append(NewPaintKeyframe(MustHex("#00ff00")))
		c.Paints.Append(NewPaintKeyframe(MustHex("#0000ff")))
	})
	tickTo(s, 3*time.Second, 10*ms)
	c.Paints.RemoveAt(2)
	c.Paints.RemoveAt(1)

	assert.NotPanics(t, func() { tickTo(s, 8*time.Second, 10*ms) })
	assert.Equal(t, "#ff0000", s.Frame().Stroke.Hex())

	c.Paints.Clear()
	assert.NotPanics(t, func() { tickTo(s, 10*time.Second, 10*ms) })
	assert.True(t, s.Frame().Stroke.IsTransparent())
}

// TestVisibilityHoldsPerpetualCycles verifies that paint and indeterminate cycles
// pause while the control is not showing and resume where they left off.
func TestVisibilityHoldsPerpetualCycles(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Paints.Append(NewPaintKeyframe(MustHex("#ff0000")))
		c.Paints.Append(NewPaintKeyframe(MustHex("#0000ff")))
		c.Indeterminate.Set(true)
	})
	tickTo(s, 400*ms, 10*ms)

	c.Visible.Set(false)
	frozen := s.Frame()
	tickTo(s, 2*time.Second, 10*ms)
	assert.Equal(t, frozen, s.Frame())

	c.Visible.Set(true)
	s.Tick(2*time.Second + 100*ms)
	assert.NotEqual(t, frozen.StartAngle, s.Frame().StartAngle)
}

func TestCyclesStartedWhileHiddenStartPaused(t *testing.T) {
	c := NewControl()
	c.Indeterminate.Set(true)
	c.Paints.Append(NewPaintKeyframe(MustHex("#ff0000")))
	s := NewSkin(c)
	defer s.Dispose()

	tickTo(s, time.Second, 10*ms)
	assert.Zero(t, s.Frame().StartAngle)
	assert.True(t, s.Frame().Stroke.IsTransparent())

	c.Attach()
	tickTo(s, 1500*ms, 10*ms)
	assert.NotZero(t, s.Frame().StartAngle)
	assert.Equal(t, "#ff0000", s.Frame().Stroke.Hex())
}

// TestProgressTextFade verifies the text fades out after binding a control with the
// text disabled and fades back in on demand.
func TestProgressTextFade(t *testing.T) {
	c, s := newAttachedSkin(t, nil)

	s.Tick(150 * ms)
	text := s.Frame().Text
	assert.True(t, text.Visible, "visible while fading out")
	assert.InDelta(t, 0.5, text.Opacity, 1e-9)

	s.Tick(300 * ms)
	assert.False(t, s.Frame().Text.Visible)
	assert.Zero(t, s.Frame().Text.Opacity)

	c.ProgressText.Set(true)
	assert.True(t, s.Frame().Text.Visible, "visible before fading in")
	s.Tick(375 * ms)
	assert.InDelta(t, 0.25, s.Frame().Text.Opacity, 1e-9)

	// reversing mid-fade takes time proportional to the remaining change
	c.ProgressText.Set(false)
	s.Tick(450 * ms)
	assert.False(t, s.Frame().Text.Visible)

	c.ProgressText.Set(false)
	assert.False(t, s.textFadeChannel.Active(), "unchanged visibility is a no-op")
}

func TestLayout(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Radius.Set(10)
		c.Thickness.Set(2)
	})
	l := s.Layout(100, 50)
	assert.Equal(t, 24.0, l.ArcSize)
	assert.Equal(t, 10.0, l.ArcRadius)
	assert.Equal(t, 1.0, l.IconScale)

	gen := s.LayoutGeneration()
	c.Radius.Set(UseComputedSize)
	assert.Greater(t, s.LayoutGeneration(), gen)
	l = s.Layout(100, 50)
	assert.Equal(t, 50.0, l.ArcSize)
	assert.Equal(t, 23.0, l.ArcRadius)

	c.Icons.Set(BuiltinIcons()...)
	c.DisplayIconByIndex(0)
	l = s.Layout(100, 50)
	assert.InDelta(t, 1.0, l.IconScale, 1e-9, "reference radius 23")
	assert.InDelta(t, 8.0, l.IconOffsetX, 1e-9)
	assert.InDelta(t, -5.0, l.IconOffsetY, 1e-9)
	assert.InDelta(t, 2.0, l.IconStrokeWidth, 1e-9)
	assert.InDelta(t, (21.0*2*12/16)/1.75, l.TextSize, 1e-9)
}

func TestDisposeStopsEverything(t *testing.T) {
	c := NewControl()
	c.Attach()
	c.Indeterminate.Set(true)
	c.Paints.Append(NewPaintKeyframe(MustHex("#ff0000")))
	s := NewSkin(c)
	s.Dispose()

	for _, ch := range s.channels() {
		assert.False(t, ch.Active(), ch.Name())
	}
	before := s.Frame()
	c.Indeterminate.Set(false)
	c.Progress.Set(0.5)
	s.Tick(time.Second)
	assert.Equal(t, before, s.Frame())
	assert.NotPanics(t, s.Dispose)
}
