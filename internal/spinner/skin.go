// Package spinner implements the animation engine of a circular progress indicator.
//
// A Control holds the host-owned configuration. A Skin subscribes to it and turns
// property changes into timed animations on six independent channels: stroke paint
// cycle, indeterminate cycle, icon angle/length tween, icon color override, icon
// stroke reveal and progress text fade. Skin.Tick advances all channels to a given
// time and Skin.Frame reports what a renderer should draw.
//
// A Skin is not safe for concurrent use. Drive it from a single goroutine, such as
// the one owned by an Animator.
package spinner

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"arcspin/internal/anim"
)

// DisplayMode is the derived state of the spinner.
type DisplayMode int

const (
	// ModeStatic shows the progress value as a fixed arc.
	ModeStatic DisplayMode = iota
	// ModeIndeterminate plays the rotating inflate/deflate cycle.
	ModeIndeterminate
	// ModeShowingIcon shows an animated icon inside the arc.
	ModeShowingIcon
)

// String returns a human-readable representation of the mode.
func (m DisplayMode) String() string {
	switch m {
	case ModeStatic:
		return "static"
	case ModeIndeterminate:
		return "indeterminate"
	case ModeShowingIcon:
		return "icon"
	default:
		return "unknown"
	}
}

// Frame is a snapshot of everything a renderer draws.
type Frame struct {
	StartAngle float64 // degrees, counter-clockwise from 3 o'clock
	Length     float64 // degrees, signed; negative sweeps clockwise
	Rotation   float64 // degrees clockwise applied to the whole arc
	Stroke     Paint
	Icon       IconFrame
	Text       TextFrame
}

// IconFrame describes the icon overlay.
type IconFrame struct {
	Visible    bool
	Icon       *AnimatedIcon
	DashLength float64 // 0 draws the whole path
	DashOffset float64
	Stroke     Paint
}

// TextFrame describes the progress text.
type TextFrame struct {
	Visible bool
	Opacity float64
	Value   string
}

// Option configures a Skin.
type Option func(*Skin)

// WithLogger sets the logger used for transition and channel debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Skin) { s.log = log }
}

// WithStartTime sets the clock value the skin starts at.
func WithStartTime(now time.Duration) Option {
	return func(s *Skin) { s.now = now }
}

// Skin animates a Control.
type Skin struct {
	id      string
	control *Control
	log     zerolog.Logger
	now     time.Duration

	startAngle      *anim.Property[float64]
	length          *anim.Property[float64]
	stroke          *anim.Property[Paint]
	iconStroke      *anim.Property[Paint]
	iconDashOffset  *anim.Property[float64]
	inflateStrength *anim.Property[float64]
	textOpacity     *anim.Property[float64]

	rotation    float64
	text        string
	textVisible bool
	textShown   bool
	iconDash    float64

	paintIndex int
	cycleIndex int

	shownIcon  *AnimatedIcon // icon currently drawn, kept until its fade-out ends
	targetIcon *AnimatedIcon // icon the state machine is heading to
	leaving    bool          // shownIcon is being erased

	layoutGeneration int

	paintChannel         *anim.Channel
	indeterminateChannel *anim.Channel
	iconAngleChannel     *anim.Channel
	iconColorChannel     *anim.Channel
	iconStrokeChannel    *anim.Channel
	textFadeChannel      *anim.Channel

	unsubscribe []func()
	disposed    bool
}

// NewSkin creates a skin and binds it to control. Every reaction runs once
// immediately so the skin reflects the control's current state.
func NewSkin(control *Control, opts ...Option) *Skin {
	s := &Skin{
		id:              uuid.NewString(),
		control:         control,
		log:             zerolog.Nop(),
		startAngle:      anim.NewFloat(0),
		length:          anim.NewFloat(0),
		stroke:          anim.NewProperty(Transparent, BlendPaint),
		iconStroke:      anim.NewProperty(Transparent, BlendPaint),
		iconDashOffset:  anim.NewFloat(0),
		inflateStrength: anim.NewFloat(0),
		textOpacity:     anim.NewFloat(1),
		textVisible:     true,
		textShown:       true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("skin", s.id).Logger()

	s.paintChannel = anim.NewChannel("paint", s.log)
	s.indeterminateChannel = anim.NewChannel("indeterminate", s.log)
	s.iconAngleChannel = anim.NewChannel("icon-angle", s.log)
	s.iconColorChannel = anim.NewChannel("icon-color", s.log)
	s.iconStrokeChannel = anim.NewChannel("icon-stroke", s.log)
	s.textFadeChannel = anim.NewChannel("text-fade", s.log)

	s.bind()
	return s
}

func (s *Skin) bind() {
	c := s.control
	onVisibility := func(bool) { s.checkVisibility() }
	s.unsubscribe = append(s.unsubscribe,
		c.Parent.Observe(onVisibility),
		c.Scene.Observe(onVisibility),
		c.Visible.Observe(onVisibility),
	)

	s.inflateStrength.OnChange(func(float64) { s.checkIndeterminateBarLength() })
	s.checkIndeterminateBarLength()

	s.unsubscribe = append(s.unsubscribe,
		c.Progress.Observe(s.updateProgress),
		c.ProgressText.Observe(s.animateProgressText),
		c.Indeterminate.Observe(s.onIndeterminateChanged),
		c.StartAngle.Observe(func(angle float64) { s.rotation = angle }),
		c.Radius.Observe(func(float64) { s.requestLayout() }),
		c.Thickness.Observe(func(float64) { s.requestLayout() }),
		c.Paints.Observe(s.onPaintSequenceChanged),
		c.Icons.Observe(s.checkForIconChange),
		c.DisplayedIcon.Observe(func(IconKey) { s.checkForIconChange() }),
	)
}

// ID returns the unique id of this skin, used in log output.
func (s *Skin) ID() string {
	return s.id
}

// Now returns the clock value of the last Tick.
func (s *Skin) Now() time.Duration {
	return s.now
}

// Tick advances every channel to now. Times earlier than the last tick are ignored.
func (s *Skin) Tick(now time.Duration) {
	if s.disposed || now < s.now {
		return
	}
	s.now = now
	for _, ch := range s.channels() {
		ch.Advance(now)
	}
}

// Mode reports the current display mode.
func (s *Skin) Mode() DisplayMode {
	switch {
	case s.shownIcon != nil:
		return ModeShowingIcon
	case s.control.Indeterminate.Get():
		return ModeIndeterminate
	default:
		return ModeStatic
	}
}

// Frame returns the current render state.
func (s *Skin) Frame() Frame {
	f := Frame{
		StartAngle: s.startAngle.Get(),
		Length:     s.length.Get(),
		Rotation:   s.rotation,
		Stroke:     s.stroke.Get(),
		Text: TextFrame{
			Visible: s.textVisible,
			Opacity: s.textOpacity.Get(),
			Value:   s.text,
		},
	}
	if s.shownIcon != nil {
		f.Icon = IconFrame{
			Visible:    true,
			Icon:       s.shownIcon,
			DashLength: s.iconDash,
			DashOffset: s.iconDashOffset.Get(),
			Stroke:     s.iconStroke.Get(),
		}
	}
	return f
}

// LayoutGeneration increments whenever radius, thickness or the shown icon change.
func (s *Skin) LayoutGeneration() int {
	return s.layoutGeneration
}

// Dispose stops every channel and unsubscribes from the control.
func (s *Skin) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.unsubscribe = nil
	s.inflateStrength.OnChange(nil)
	for _, ch := range s.channels() {
		ch.Stop()
	}
	s.log.Debug().Msg("skin disposed")
}

func (s *Skin) channels() []*anim.Channel {
	return []*anim.Channel{
		s.paintChannel,
		s.indeterminateChannel,
		s.iconAngleChannel,
		s.iconColorChannel,
		s.iconStrokeChannel,
		s.textFadeChannel,
	}
}

func (s *Skin) deflateParams() DeflateParams {
	return ComputeDeflateParams(s.control.Progress.Get())
}

func (s *Skin) requestLayout() {
	s.layoutGeneration++
}

// checkVisibility holds the perpetual cycles while the spinner is off screen.
func (s *Skin) checkVisibility() {
	showing := s.control.Showing()
	for _, ch := range []*anim.Channel{s.paintChannel, s.indeterminateChannel} {
		if showing {
			ch.Release(s.now)
		} else {
			ch.Hold(s.now)
		}
	}
}

// checkIndeterminateBarLength maps the inflate strength onto the arc length.
func (s *Skin) checkIndeterminateBarLength() {
	if !s.control.Indeterminate.Get() {
		return
	}
	d := s.deflateParams()
	length := d.DeflateLength + (d.InflateLength-d.DeflateLength)*s.inflateStrength.Get()
	s.length.Set(length * d.RotationFactor)
}

// arcOwnedByIcon reports whether an icon or an icon transition controls the arc.
func (s *Skin) arcOwnedByIcon() bool {
	return s.shownIcon != nil || s.iconAngleChannel.Active()
}

func (s *Skin) updateProgress(raw float64) {
	progress := ClampProgress(raw)
	s.text = ProgressText(progress)
	if s.arcOwnedByIcon() {
		return
	}
	if s.control.Indeterminate.Get() {
		s.checkIndeterminateBarLength()
		return
	}
	s.length.Set(-360 * progress)
}

func (s *Skin) onIndeterminateChanged(indeterminate bool) {
	if s.arcOwnedByIcon() {
		return
	}
	if indeterminate {
		s.startIndeterminate()
		return
	}
	s.indeterminateChannel.Stop()
	s.startAngle.Set(0)
	s.updateProgress(s.control.Progress.Get())
}

// animateProgressText fades the progress text in or out.
func (s *Skin) animateProgressText(show bool) {
	if show == s.textShown {
		return
	}
	s.textShown = show
	if show {
		// visible before the fade so the fade-in can be seen
		s.textVisible = true
	}

	current := s.textOpacity.Get()
	target := 0.0
	if show {
		target = 1
	}
	duration := time.Duration(math.Abs(target-current) * float64(textFadeFullDuration))
	tl := anim.NewTimeline(anim.At(duration, anim.Set(s.textOpacity, target)))
	if !show {
		tl.OnFinished(func() { s.textVisible = false })
	}
	s.textFadeChannel.Start(tl, s.now)
}
