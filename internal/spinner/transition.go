package spinner

import (
	"math"
	"time"

	"arcspin/internal/anim"
)

// iconTransition is the reaction to a change of the selected icon.
type iconTransition int

const (
	transitionNone     iconTransition = iota
	transitionEnter                   // no icon -> icon
	transitionExit                    // icon -> no icon
	transitionSwap                    // icon -> other icon, through a fade-out
	transitionRetarget                // a fade-out is running; its completion picks the target
)

func (t iconTransition) String() string {
	switch t {
	case transitionEnter:
		return "enter"
	case transitionExit:
		return "exit"
	case transitionSwap:
		return "swap"
	case transitionRetarget:
		return "retarget"
	default:
		return "none"
	}
}

// classifyTransition decides how to move from the drawn icon towards selected.
// target is the icon the running transition is heading to.
func classifyTransition(shown, target, selected *AnimatedIcon, leaving bool) iconTransition {
	switch {
	case selected == target:
		return transitionNone
	case shown == nil && selected == nil:
		return transitionNone
	case shown == nil:
		return transitionEnter
	case leaving:
		return transitionRetarget
	case selected == nil:
		return transitionExit
	default:
		return transitionSwap
	}
}

// checkForIconChange reacts to changes of the icon list or the selected key.
func (s *Skin) checkForIconChange() {
	selected := s.control.SelectedIcon()
	transition := classifyTransition(s.shownIcon, s.targetIcon, selected, s.leaving)
	if transition == transitionNone {
		return
	}

	s.log.Debug().
		Stringer("transition", transition).
		Stringer("key", s.control.DisplayedIcon.Get()).
		Msg("icon selection changed")

	s.targetIcon = selected
	switch transition {
	case transitionEnter:
		s.enterIcon(selected)
	case transitionExit, transitionSwap:
		s.leaveIcon()
	}
}

// enterIcon spins the arc to the icon's gap and then draws the icon path.
func (s *Skin) enterIcon(icon *AnimatedIcon) {
	s.shownIcon = icon
	s.targetIcon = icon
	s.leaving = false
	s.indeterminateChannel.Stop()

	d := s.deflateParams()
	gapAngle := icon.GapWidth()/2 - icon.GapAngle()
	if d.Clockwise() {
		gapAngle -= icon.GapWidth()
	}
	tweenEnd := s.tween(gapAngle, iconEnterMinAngleChange, 360-icon.GapWidth(), 0, nil)

	s.iconColorChannel.Stop()
	if override, ok := icon.Paint(); ok {
		s.paintChannel.Stop()
		tl := anim.NewTimeline(anim.At(tweenEnd, anim.Set(s.stroke, override)))
		s.iconColorChannel.Start(tl, s.now)
		s.iconStroke.Set(override)
	} else {
		s.onPaintSequenceChanged()
	}

	s.iconDash = icon.PathLength()
	s.iconDashOffset.Set(icon.PathLength())
	s.animateCurrentIcon(true, tweenEnd, nil)
	s.requestLayout()
}

// leaveIcon erases the drawn icon. What follows is decided when the erase ends.
func (s *Skin) leaveIcon() {
	s.leaving = true
	s.animateCurrentIcon(false, 0, s.onIconHidden)
}

func (s *Skin) onIconHidden() {
	s.leaving = false
	s.shownIcon = nil
	s.iconColorChannel.Stop()
	s.requestLayout()

	if s.targetIcon != nil {
		s.enterIcon(s.targetIcon)
		return
	}

	s.onPaintSequenceChanged()
	length := 360 * math.Min(1, math.Abs(ClampProgress(s.control.Progress.Get())))
	if s.control.Indeterminate.Get() {
		length = s.deflateParams().DeflateLength
	}
	s.tween(-s.rotation, iconExitMinAngleChange, length, 0, s.settleAfterIcon)
}

// settleAfterIcon hands the arc back to the progress or indeterminate driver.
func (s *Skin) settleAfterIcon() {
	if s.shownIcon != nil {
		return
	}
	if s.control.Indeterminate.Get() {
		s.startIndeterminate()
		return
	}
	s.updateProgress(s.control.Progress.Get())
}

// animateCurrentIcon reveals (fadeIn) or erases the icon path by sliding its dash.
// An erase continues in the drawing direction so the stroke recedes rather than
// rewinding.
func (s *Skin) animateCurrentIcon(fadeIn bool, delay time.Duration, onFinished func()) time.Duration {
	var tl *anim.Timeline
	if fadeIn {
		tl = anim.NewTimeline(anim.At(iconStrokeDuration, anim.Set(s.iconDashOffset, 0.0)))
	} else {
		s.iconDashOffset.Set(-math.Abs(s.iconDashOffset.Get()))
		tl = anim.NewTimeline(anim.At(iconStrokeDuration, anim.Set(s.iconDashOffset, -s.shownIcon.PathLength())))
	}
	tl.WithDelay(delay).OnFinished(onFinished)
	s.iconStrokeChannel.Start(tl, s.now)
	return iconStrokeDuration
}

// tweenPlan holds the waypoints of an angle/length tween. Durations are cumulative
// offsets from the tween start, excluding the delay.
type tweenPlan struct {
	startAngle  float64
	startLength float64

	deflateAt     time.Duration
	deflateAngle  float64
	deflateLength float64

	spinAt    time.Duration
	spinAngle float64
	spin      float64 // unsigned rotation of the spin phase

	inflateAt     time.Duration
	inflateAngle  float64
	inflateLength float64
}

// planTween computes a deflate, spin and inflate sequence from the arc's current
// angle and length to targetAngle and targetLength. The spin phase always turns at
// least max(tweenMinSpin, minAngleChange) degrees in the rotation direction.
// rotation is the clockwise rotation applied to the whole arc.
func planTween(angle, length, rotation float64, d DeflateParams, targetAngle, minAngleChange, targetLength float64) tweenPlan {
	rf := d.RotationFactor

	normalized := NormalizeAngle(angle)
	if d.Clockwise() {
		normalized -= 360
	}

	startLength := math.Abs(length) * rf
	inflateLength := targetLength * rf

	inflateGain := 0.0
	if targetLength < d.DeflateLength {
		inflateGain = d.DeflateLength - targetLength
	}

	deflateLength := d.DeflateLength * rf
	deflateDifference := math.Abs(deflateLength - startLength)
	deflateAt := seconds(deflateDifference / tweenSpeed)
	deflateAngle := normalized + deflateDifference*rf

	spin := math.Max(tweenMinSpin, minAngleChange)
	spinAngle := deflateAngle + spin*rf
	gain := math.Mod(targetAngle-spinAngle-inflateGain-rotation*rf, 360)
	if gain < 0 {
		gain += 360
	}
	if d.Clockwise() {
		spin += 360 - gain
		spinAngle += gain - 360
	} else {
		spin += gain
		spinAngle += gain
	}
	spinAt := seconds(spin/tweenSpeed) + deflateAt

	inflateDifference := math.Abs(targetLength - d.DeflateLength)
	inflateAt := seconds(inflateDifference/tweenSpeed) + spinAt

	return tweenPlan{
		startAngle:    normalized,
		startLength:   startLength,
		deflateAt:     deflateAt,
		deflateAngle:  deflateAngle,
		deflateLength: deflateLength,
		spinAt:        spinAt,
		spinAngle:     spinAngle,
		spin:          spin,
		inflateAt:     inflateAt,
		inflateAngle:  spinAngle + inflateGain*rf,
		inflateLength: inflateLength,
	}
}

// tween runs planTween on the icon-angle channel and returns its end time,
// including delay, so dependent animations can be scheduled to start with it.
func (s *Skin) tween(targetAngle, minAngleChange, targetLength float64, delay time.Duration, onFinished func()) time.Duration {
	p := planTween(s.startAngle.Get(), s.length.Get(), s.rotation, s.deflateParams(),
		targetAngle, minAngleChange, targetLength)

	tl := anim.NewTimeline(
		anim.At(0, anim.Set(s.length, p.startLength), anim.Set(s.startAngle, p.startAngle)),
		anim.At(p.deflateAt, anim.Set(s.length, p.deflateLength), anim.Set(s.startAngle, p.deflateAngle)),
		anim.At(p.spinAt, anim.Set(s.length, p.deflateLength), anim.Set(s.startAngle, p.spinAngle)),
		anim.At(p.inflateAt, anim.Set(s.length, p.inflateLength), anim.Set(s.startAngle, p.inflateAngle)),
	).WithDelay(delay).OnFinished(onFinished)
	s.iconAngleChannel.Start(tl, s.now)
	return p.inflateAt + delay
}
