package spinner

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTransition(t *testing.T) {
	a := GreenCheckMark
	b := RedCross

	tests := []struct {
		name     string
		shown    *AnimatedIcon
		target   *AnimatedIcon
		selected *AnimatedIcon
		leaving  bool
		want     iconTransition
	}{
		{name: "no icon stays", want: transitionNone},
		{name: "no icon to A", selected: a, want: transitionEnter},
		{name: "A stays", shown: a, target: a, selected: a, want: transitionNone},
		{name: "A to no icon", shown: a, target: a, want: transitionExit},
		{name: "A to B", shown: a, target: a, selected: b, want: transitionSwap},
		{name: "leaving A, pick B", shown: a, selected: b, leaving: true, want: transitionRetarget},
		{name: "leaving A, pick A", shown: a, selected: a, leaving: true, want: transitionRetarget},
		{name: "leaving A for B, pick none", shown: a, target: b, leaving: true, want: transitionRetarget},
		{name: "exit tween running, pick A", selected: a, want: transitionEnter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTransition(tt.shown, tt.target, tt.selected, tt.leaving)
			assert.Equal(t, tt.want, got, "got %s", got)
		})
	}
}

// TestTransitionCompleteness drives every pair of selections from every settled
// state and checks the skin always settles on the selected icon.
func TestTransitionCompleteness(t *testing.T) {
	a, b := GreenCheckMark, RedCross
	keys := map[string]*AnimatedIcon{"none": nil, "A": a, "B": b}
	selectKey := func(c *Control, name string) {
		if icon := keys[name]; icon != nil {
			c.DisplayIconByKey(icon.Key())
			return
		}
		c.HideIcon()
	}

	for _, from := range []string{"none", "A"} {
		for _, to := range []string{"none", "A", "B"} {
			for _, indeterminate := range []bool{false, true} {
				t.Run(from+"->"+to, func(t *testing.T) {
					c, s := newAttachedSkin(t, func(c *Control) {
						c.Icons.Set(BuiltinIcons()...)
						c.Progress.Set(0.6)
						c.Indeterminate.Set(indeterminate)
					})
					selectKey(c, from)
					tickTo(s, 3*time.Second, 10*ms)
					require.Same(t, keys[from], s.shownIcon)

					selectKey(c, to)
					tickTo(s, 8*time.Second, 10*ms)
					assert.Same(t, keys[to], s.shownIcon)
					assert.False(t, s.leaving)
					assert.False(t, s.iconAngleChannel.Active(), "tween settled")
					if keys[to] == nil {
						want := ModeStatic
						if indeterminate {
							want = ModeIndeterminate
						}
						assert.Equal(t, want, s.Mode())
						assert.Equal(t, indeterminate, s.indeterminateChannel.Active())
					} else {
						assert.Equal(t, ModeShowingIcon, s.Mode())
						assert.Zero(t, s.Frame().Icon.DashOffset)
						assert.False(t, s.indeterminateChannel.Active())
					}
				})
			}
		}
	}
}

func TestEnterIconScenario(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Icons.Set(BuiltinIcons()...)
		c.Paints.Append(NewPaintKeyframe(MustHex("#4285f4")))
		c.Progress.Set(0.4)
	})

	c.DisplayIconByKey("redCross")
	assert.Equal(t, ModeShowingIcon, s.Mode(), "never passes through an icon-to-icon path")
	assert.False(t, s.paintChannel.Active(), "paint override suppresses the sequencer")

	f := s.Frame()
	require.True(t, f.Icon.Visible)
	assert.Same(t, RedCross, f.Icon.Icon)
	assert.Equal(t, 28.0, f.Icon.DashOffset, "path starts hidden")
	assert.Equal(t, "#da3737", f.Icon.Stroke.Hex())

	tickTo(s, 3*time.Second, 10*ms)
	f = s.Frame()
	assert.Zero(t, f.Icon.DashOffset)
	assert.InDelta(t, -360, f.Length, 1e-6, "no gap for the cross")
	assert.Equal(t, "#da3737", f.Stroke.Hex())

	// progress changes update the text but leave the arc to the icon
	c.Progress.Set(0.8)
	assert.InDelta(t, -360, s.Frame().Length, 1e-6)
	assert.Equal(t, "80%", s.Frame().Text.Value)
}

func TestExitIconReturnsToProgress(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Icons.Set(BuiltinIcons()...)
		c.Paints.Append(NewPaintKeyframe(MustHex("#4285f4")))
		c.Progress.Set(0.4)
		c.DisplayIconByIndex(0)
	})
	tickTo(s, 3*time.Second, 10*ms)

	c.HideIcon()
	assert.Equal(t, ModeShowingIcon, s.Mode(), "icon fades out first")
	s.Tick(3*time.Second + iconStrokeDuration/2)
	assert.InDelta(t, -23, s.Frame().Icon.DashOffset, 1e-9, "erase continues in drawing direction")

	s.Tick(3*time.Second + iconStrokeDuration)
	assert.Equal(t, ModeStatic, s.Mode())
	assert.True(t, s.iconAngleChannel.Active())
	assert.True(t, s.paintChannel.Active(), "paint sequencer resumed")

	tickTo(s, 6*time.Second, 10*ms)
	assert.InDelta(t, -144, s.Frame().Length, 1e-6)
	assert.Equal(t, "#4285f4", s.Frame().Stroke.Hex())
}

// TestIconRoundTrip verifies that leaving an icon and selecting it again replays the
// same entry animation.
func TestIconRoundTrip(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Icons.Set(BuiltinIcons()...)
		c.Progress.Set(0.4)
	})

	record := func() []Frame {
		start := s.Now()
		c.DisplayIconByKey("yellowExclamationMark")
		frames := []Frame{s.Frame()}
		for offset := 50 * ms; offset <= 2*time.Second; offset += 50 * ms {
			s.Tick(start + offset)
			frames = append(frames, s.Frame())
		}
		return frames
	}

	first := record()
	c.HideIcon()
	tickTo(s, s.Now()+4*time.Second, 10*ms)
	require.Equal(t, ModeStatic, s.Mode())
	second := record()

	require.Len(t, second, len(first))
	for i := range first {
		sameAngle(t, first[i].StartAngle, second[i].StartAngle, "frame %d", i)
		assert.InDelta(t, first[i].Length, second[i].Length, 1e-6, "frame %d", i)
		assert.InDelta(t, first[i].Icon.DashOffset, second[i].Icon.DashOffset, 1e-6, "frame %d", i)
	}
}

func TestSwapFadesOutBeforeEntering(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Icons.Set(BuiltinIcons()...)
		c.DisplayIconByIndex(0)
	})
	tickTo(s, 3*time.Second, 10*ms)

	c.DisplayIconByIndex(2)
	s.Tick(3*time.Second + iconStrokeDuration/2)
	assert.Same(t, GreenCheckMark, s.Frame().Icon.Icon, "old icon is erased first")

	s.Tick(3*time.Second + iconStrokeDuration)
	assert.Same(t, RedCross, s.Frame().Icon.Icon)
	assert.Equal(t, RedCross.PathLength(), s.Frame().Icon.DashOffset)
}

func TestReselectWhileLeaving(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Icons.Set(BuiltinIcons()...)
		c.DisplayIconByIndex(1)
	})
	tickTo(s, 3*time.Second, 10*ms)

	c.HideIcon()
	s.Tick(3*time.Second + 50*ms)
	c.DisplayIconByIndex(1)
	assert.True(t, s.leaving)

	tickTo(s, 6*time.Second, 10*ms)
	assert.Same(t, YellowExclamationMark, s.shownIcon)
	assert.Zero(t, s.Frame().Icon.DashOffset)
	assert.False(t, s.leaving)
}

func TestIconWithoutPaintKeepsSequencer(t *testing.T) {
	plain := MustAnimatedIcon("M 0 0 l 10 0", WithKey("plain"), WithPathLength(10))
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Icons.Set(RedCross, plain)
		c.Paints.Append(NewPaintKeyframe(MustHex("#00ff00")))
		c.DisplayIconByKey("redCross")
	})
	tickTo(s, 3*time.Second, 10*ms)
	assert.False(t, s.paintChannel.Active())

	c.DisplayIconByKey("plain")
	tickTo(s, 6*time.Second, 10*ms)
	assert.True(t, s.paintChannel.Active(), "override color does not stick")
	assert.Equal(t, "#00ff00", s.Frame().Stroke.Hex())
}

// TestOverrideIconResumesPaintCycle checks that an icon with its own paint pauses
// the paint cycle without rewinding it.
func TestOverrideIconResumesPaintCycle(t *testing.T) {
	paints := []PaintKeyframe{
		{Paint: MustHex("#ff0000"), BlendIn: 100 * ms, Hold: 200 * ms, BlendOut: 50 * ms},
		{Paint: MustHex("#00ff00"), BlendIn: 80 * ms, Hold: 300 * ms, BlendOut: 120 * ms},
		{Paint: MustHex("#0000ff"), BlendIn: 60 * ms, Hold: 100 * ms, BlendOut: 40 * ms},
	}
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Icons.Set(BuiltinIcons()...)
		for _, p := range paints {
			c.Paints.Append(p)
		}
	})

	tickTo(s, 400*ms, 10*ms)
	require.Equal(t, 1, s.paintIndex)

	c.DisplayIconByKey("redCross")
	tickTo(s, 3*time.Second, 10*ms)
	require.Same(t, RedCross, s.shownIcon)
	assert.False(t, s.paintChannel.Active())

	c.HideIcon()
	for limit := s.Now() + 5*time.Second; !s.paintChannel.Active() && s.Now() < limit; {
		s.Tick(s.Now() + 10*ms)
	}
	require.True(t, s.paintChannel.Active(), "paint cycle resumes after the icon leaves")
	assert.Equal(t, 1, s.paintIndex, "cycle is not rewound")

	tickTo(s, s.Now()+paints[1].BlendIn+10*ms, 10*ms)
	assert.Equal(t, "#00ff00", s.Frame().Stroke.Hex())
}

func TestIconListChangeRetriggers(t *testing.T) {
	c, s := newAttachedSkin(t, func(c *Control) {
		c.Icons.Set(BuiltinIcons()...)
		c.DisplayIconByIndex(2)
	})
	tickTo(s, 3*time.Second, 10*ms)

	c.Icons.RemoveAt(2)
	assert.True(t, s.leaving, "selection no longer resolves")
	tickTo(s, 6*time.Second, 10*ms)
	assert.Nil(t, s.shownIcon)
}

// TestTweenSweep sweeps the target angle and checks the tween lands on it modulo
// 360 after spinning at least the minimum change in the rotation direction.
func TestTweenSweep(t *testing.T) {
	for _, progress := range []float64{0, -0.5, 0.5} {
		d := ComputeDeflateParams(progress)
		for _, minChange := range []float64{0, 120, 180, 400} {
			for _, startAngle := range []float64{0, 37, -200} {
				for target := -360.0; target <= 360; target += 7.5 {
					p := planTween(startAngle, 100, 0, d, target, minChange, 200)

					sameAngle(t, target, p.inflateAngle, "target %v", target)
					sameAngle(t, startAngle, p.startAngle)

					floor := math.Max(tweenMinSpin, minChange)
					assert.GreaterOrEqual(t, p.spin, floor)
					assert.Less(t, p.spin, floor+360+1e-9)
					assert.InDelta(t, p.spin*d.RotationFactor, p.spinAngle-p.deflateAngle, 1e-9)

					assert.InDelta(t, 5*d.RotationFactor, p.deflateLength, 1e-9)
					assert.InDelta(t, 200*d.RotationFactor, p.inflateLength, 1e-9)
					assert.LessOrEqual(t, p.deflateAt, p.spinAt)
					assert.LessOrEqual(t, p.spinAt, p.inflateAt)
				}
			}
		}
	}
}

// TestTweenCompensatesRotation verifies that the arc's own rotation is accounted for
// when rotating counter-clockwise, and that short targets keep the head in place.
func TestTweenCompensatesRotation(t *testing.T) {
	d := ComputeDeflateParams(0)
	for _, rotation := range []float64{0, 45, -90, 270} {
		for _, length := range []float64{0, 3, 5, 90} {
			p := planTween(10, 200, rotation, d, 100, 180, length)
			sameAngle(t, 100-rotation, p.inflateAngle, "rotation %v length %v", rotation, length)
		}
	}
}

func TestTweenDurations(t *testing.T) {
	d := ComputeDeflateParams(0)
	p := planTween(0, 5, 0, d, 90, 0, 5)
	assert.Zero(t, p.deflateAt)
	assert.Equal(t, p.spinAt, p.inflateAt)
	assert.InDelta(t, p.spin/tweenSpeed, p.spinAt.Seconds(), 1e-6)
}
