package spinner

import (
	"time"

	"arcspin/internal/anim"
)

// onPaintSequenceChanged arms the paint cycle if it is idle. A running cycle picks
// up list changes when its current hold ends.
func (s *Skin) onPaintSequenceChanged() {
	if s.paintSuppressed() {
		return
	}

	paints := s.control.Paints.Items()
	if len(paints) == 0 {
		s.stroke.Set(Transparent)
		s.paintChannel.Stop()
		return
	}
	if s.paintChannel.Active() {
		return
	}

	s.paintIndex %= len(paints)
	target := paints[s.paintIndex].WithDefaults()
	blend := target.BlendIn
	hold := blend + target.Hold
	s.startPaintTimeline(target.Paint, blend, hold)
}

// onPaintHoldEnd cross-fades into the next keyframe. The fade-out of the current
// keyframe and the fade-in of the next one share the blend window.
func (s *Skin) onPaintHoldEnd() {
	paints := s.control.Paints.Items()
	if len(paints) == 0 {
		s.stroke.Set(Transparent)
		return
	}

	current := paints[s.paintIndex%len(paints)].WithDefaults()
	s.paintIndex = (s.paintIndex + 1) % len(paints)
	next := paints[s.paintIndex].WithDefaults()

	blend := current.BlendOut + next.BlendIn
	hold := blend + next.Hold
	s.startPaintTimeline(next.Paint, blend, hold)
}

func (s *Skin) startPaintTimeline(p Paint, blend, hold time.Duration) {
	tl := anim.NewTimeline(
		anim.At(blend, anim.Set(s.stroke, p), anim.Set(s.iconStroke, p)),
		anim.At(hold, anim.Set(s.stroke, p), anim.Set(s.iconStroke, p)),
	).OnFinished(s.onPaintHoldEnd)
	s.paintChannel.Start(tl, s.now)
}

// paintSuppressed reports whether the shown icon overrides the stroke paint.
func (s *Skin) paintSuppressed() bool {
	if s.shownIcon == nil {
		return false
	}
	_, ok := s.shownIcon.Paint()
	return ok
}

// cycleStep is one keyframe of an indeterminate cycle.
type cycleStep struct {
	at         time.Duration
	startAngle float64
	strength   float64
}

// planIndeterminateCycle computes the keyframes of cycle c. The arc inflates while
// rotating, spins, deflates while its head stays in place, then spins again. Every
// cycle ends a quarter turn past its start so that the next one continues seamlessly.
func planIndeterminateCycle(c int, d DeflateParams) []cycleStep {
	const offsetPerCycle = 360.0 / indeterminateCycleCount

	start := offsetPerCycle * float64(c)
	end := start + 360 + offsetPerCycle

	deflateGain := d.InflateLength - d.DeflateLength
	stepGain := ((end - start) - deflateGain) / 4

	deflateSeconds := deflateGain / indeterminateInflateSpeed
	stepSeconds := stepGain / indeterminateRotationSpeed
	pulseSeconds := max(deflateSeconds, stepSeconds)

	t1 := pulseSeconds
	t2 := t1 + stepSeconds
	t3 := t2 + pulseSeconds
	t4 := t3 + stepSeconds

	a1 := start + stepGain
	a2 := a1 + stepGain
	a3 := a2 + stepGain + deflateGain
	a4 := a3 + stepGain

	rf := d.RotationFactor
	return []cycleStep{
		{at: 0, startAngle: start * rf, strength: 0},
		{at: seconds(t1), startAngle: a1 * rf, strength: 1},
		{at: seconds(t2), startAngle: a2 * rf, strength: 1},
		{at: seconds(t3), startAngle: a3 * rf, strength: 0},
		{at: seconds(t4), startAngle: a4 * rf, strength: 0},
	}
}

func (s *Skin) startIndeterminate() {
	s.cycleIndex = -1
	s.onIndeterminateCycleEnd()
}

// onIndeterminateCycleEnd runs the next cycle. It is only reached when the previous
// cycle finished on its own, so the arc is deflated at the end angle of that cycle.
func (s *Skin) onIndeterminateCycleEnd() {
	s.cycleIndex = (s.cycleIndex + 1) % indeterminateCycleCount

	steps := planIndeterminateCycle(s.cycleIndex, s.deflateParams())
	frames := make([]anim.KeyFrame, 0, len(steps))
	for _, step := range steps {
		frames = append(frames, anim.At(step.at,
			anim.Set(s.startAngle, step.startAngle),
			anim.Set(s.inflateStrength, step.strength),
		))
	}
	tl := anim.NewTimeline(frames...).OnFinished(s.onIndeterminateCycleEnd)
	s.indeterminateChannel.Start(tl, s.now)
}
