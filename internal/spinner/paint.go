package spinner

import (
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Paint is a stroke color with opacity. The zero Paint is transparent.
type Paint struct {
	Color colorful.Color
	Alpha float64
}

// Transparent is the paint of an arc with nothing to draw.
var Transparent = Paint{}

// NewPaint returns an opaque paint.
func NewPaint(c colorful.Color) Paint {
	return Paint{Color: c, Alpha: 1}
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque paint.
func ParseHex(s string) (Paint, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Transparent, fmt.Errorf("invalid paint %q: %w", s, err)
	}
	return NewPaint(c), nil
}

// MustHex is like ParseHex but panics on malformed input. Use it for constants.
func MustHex(s string) Paint {
	p, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsTransparent reports whether the paint draws nothing.
func (p Paint) IsTransparent() bool {
	return p.Alpha <= 0
}

// Hex returns the color as "#rrggbb", or "transparent".
func (p Paint) Hex() string {
	if p.IsTransparent() {
		return "transparent"
	}
	return p.Color.Clamped().Hex()
}

// String implements fmt.Stringer.
func (p Paint) String() string {
	if p.IsTransparent() || p.Alpha >= 1 {
		return p.Hex()
	}
	return fmt.Sprintf("%s@%.2f", p.Hex(), p.Alpha)
}

// BlendPaint cross-fades from a to b. Fading from or to transparent keeps the
// visible color and only interpolates opacity.
func BlendPaint(a, b Paint, t float64) Paint {
	switch {
	case a.IsTransparent() && b.IsTransparent():
		return Transparent
	case a.IsTransparent():
		return Paint{Color: b.Color, Alpha: b.Alpha * t}
	case b.IsTransparent():
		return Paint{Color: a.Color, Alpha: a.Alpha * (1 - t)}
	}
	return Paint{
		Color: a.Color.BlendRgb(b.Color, t).Clamped(),
		Alpha: a.Alpha + (b.Alpha-a.Alpha)*t,
	}
}

// Default paint keyframe values.
const (
	DefaultBlendIn  = 250 * time.Millisecond
	DefaultHold     = 900 * time.Millisecond
	DefaultBlendOut = 250 * time.Millisecond
)

// DefaultPaint is the stroke used when a keyframe leaves its paint unset.
var DefaultPaint = MustHex("#4285f4")

// PaintKeyframe is one entry of the cyclic stroke color sequence.
type PaintKeyframe struct {
	Paint    Paint
	BlendIn  time.Duration // until fully faded in; the previous BlendOut is added
	Hold     time.Duration // until fading out starts
	BlendOut time.Duration // until fully faded out; the next BlendIn is added
}

// NewPaintKeyframe returns a keyframe for p with default timings.
func NewPaintKeyframe(p Paint) PaintKeyframe {
	return PaintKeyframe{Paint: p}.WithDefaults()
}

// WithDefaults fills unset fields: a transparent paint becomes DefaultPaint and
// non-positive durations take the package defaults.
func (k PaintKeyframe) WithDefaults() PaintKeyframe {
	if k.Paint.IsTransparent() {
		k.Paint = DefaultPaint
	}
	if k.BlendIn <= 0 {
		k.BlendIn = DefaultBlendIn
	}
	if k.Hold <= 0 {
		k.Hold = DefaultHold
	}
	if k.BlendOut <= 0 {
		k.BlendOut = DefaultBlendOut
	}
	return k
}
