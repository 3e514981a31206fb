package spinner

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrMissingPath is returned when an AnimatedIcon is built without path data.
var ErrMissingPath = errors.New("animated icon requires a path")

// Defaults for optional AnimatedIcon fields.
const (
	DefaultReferenceRadius = 10.0
	DefaultGapAngle        = -45.0
)

// AnimatedIcon is a stroked vector path drawn inside the arc, with an optional gap
// opened in the arc around it. Icons are immutable; the spinner compares them by
// pointer identity.
type AnimatedIcon struct {
	key             string
	path            string
	pathLength      float64
	referenceRadius float64
	paint           Paint
	hasPaint        bool
	gapWidth        float64
	gapAngle        float64
	offsetX         float64
	offsetY         float64
}

// IconOption configures an AnimatedIcon.
type IconOption func(*AnimatedIcon)

// WithKey makes the icon addressable by a string key.
func WithKey(key string) IconOption {
	return func(i *AnimatedIcon) { i.key = key }
}

// WithPathLength sets the stroke length used for the dash reveal. Zero disables it.
func WithPathLength(length float64) IconOption {
	return func(i *AnimatedIcon) { i.pathLength = length }
}

// WithReferenceRadius sets the arc radius the path was designed for.
// A radius <= 0 disables scaling.
func WithReferenceRadius(radius float64) IconOption {
	return func(i *AnimatedIcon) { i.referenceRadius = radius }
}

// WithPaint overrides the arc and icon stroke while the icon is shown.
func WithPaint(p Paint) IconOption {
	return func(i *AnimatedIcon) {
		i.paint = p
		i.hasPaint = true
	}
}

// WithGap opens a gap of width degrees in the arc, centered at angle degrees
// (measured clockwise from 3 o'clock).
func WithGap(width, angle float64) IconOption {
	return func(i *AnimatedIcon) {
		i.gapWidth = width
		i.gapAngle = angle
	}
}

// WithOffset shifts the icon from the center, in path units.
func WithOffset(x, y float64) IconOption {
	return func(i *AnimatedIcon) {
		i.offsetX = x
		i.offsetY = y
	}
}

// NewAnimatedIcon creates an icon for the given SVG path data.
func NewAnimatedIcon(path string, opts ...IconOption) (*AnimatedIcon, error) {
	if path == "" {
		return nil, ErrMissingPath
	}
	icon := &AnimatedIcon{
		path:            path,
		referenceRadius: DefaultReferenceRadius,
		gapAngle:        DefaultGapAngle,
	}
	for _, opt := range opts {
		opt(icon)
	}
	icon.pathLength = math.Max(0, icon.pathLength)
	icon.gapWidth = math.Max(0, math.Min(360, icon.gapWidth))
	icon.gapAngle = math.Max(-360, math.Min(360, icon.gapAngle))
	return icon, nil
}

// MustAnimatedIcon is like NewAnimatedIcon but panics on error.
func MustAnimatedIcon(path string, opts ...IconOption) *AnimatedIcon {
	icon, err := NewAnimatedIcon(path, opts...)
	if err != nil {
		panic(err)
	}
	return icon
}

func (i *AnimatedIcon) Key() string              { return i.key }
func (i *AnimatedIcon) Path() string             { return i.path }
func (i *AnimatedIcon) PathLength() float64      { return i.pathLength }
func (i *AnimatedIcon) ReferenceRadius() float64 { return i.referenceRadius }
func (i *AnimatedIcon) GapWidth() float64        { return i.gapWidth }
func (i *AnimatedIcon) GapAngle() float64        { return i.gapAngle }
func (i *AnimatedIcon) OffsetX() float64         { return i.offsetX }
func (i *AnimatedIcon) OffsetY() float64         { return i.offsetY }

// Paint returns the override paint and whether one is set.
func (i *AnimatedIcon) Paint() (Paint, bool) {
	return i.paint, i.hasPaint
}

// String implements fmt.Stringer.
func (i *AnimatedIcon) String() string {
	paint := "none"
	if i.hasPaint {
		paint = i.paint.String()
	}
	return fmt.Sprintf("AnimatedIcon{key: %q, path: %q, pathLength: %g, referenceRadius: %g, paint: %s, gap: %g@%g, offset: %g,%g}",
		i.key, i.path, i.pathLength, i.referenceRadius, paint, i.gapWidth, i.gapAngle, i.offsetX, i.offsetY)
}

// Built-in status icons.
var (
	// GreenCheckMark indicates success.
	GreenCheckMark = MustAnimatedIcon("M 0 0 q 5 6 8 10 q 12 -18 20 -24",
		WithKey("greenCheckMark"),
		WithPathLength(46),
		WithReferenceRadius(23),
		WithPaint(MustHex("#47da37")),
		WithGap(60, -38),
		WithOffset(8, -5),
	)

	// YellowExclamationMark indicates a warning.
	YellowExclamationMark = MustAnimatedIcon("M 0 0 l -2 -30 m 2 30 l 2 -30 m -2 40 l 0 -6",
		WithKey("yellowExclamationMark"),
		WithPathLength(40),
		WithReferenceRadius(23),
		WithPaint(MustHex("#f3d513")),
		WithGap(70, -90),
		WithOffset(0, -5),
	)

	// RedCross indicates an error.
	RedCross = MustAnimatedIcon("M 0 0 m 0 18 l 18 -18 m 0 18 l -18 -18",
		WithKey("redCross"),
		WithPathLength(28),
		WithReferenceRadius(23),
		WithPaint(MustHex("#da3737")),
		WithGap(0, -45),
	)
)

// BuiltinIcons returns the built-in icons in their canonical order.
func BuiltinIcons() []*AnimatedIcon {
	return []*AnimatedIcon{GreenCheckMark, YellowExclamationMark, RedCross}
}

type iconKeyKind uint8

const (
	iconKeyNone iconKeyKind = iota
	iconKeyIndex
	iconKeyName
)

// IconKey selects an icon from the control's icon list, by position or by key.
// The zero IconKey selects no icon.
type IconKey struct {
	kind  iconKeyKind
	index int
	key   string
}

// NoIcon selects no icon.
var NoIcon = IconKey{}

// IconByIndex selects the icon at position i.
func IconByIndex(i int) IconKey {
	return IconKey{kind: iconKeyIndex, index: i}
}

// IconByKey selects the first icon whose key equals key.
func IconByKey(key string) IconKey {
	return IconKey{kind: iconKeyName, key: key}
}

// IsNone reports whether k selects no icon.
func (k IconKey) IsNone() bool {
	return k.kind == iconKeyNone
}

// String implements fmt.Stringer.
func (k IconKey) String() string {
	switch k.kind {
	case iconKeyIndex:
		return "#" + strconv.Itoa(k.index)
	case iconKeyName:
		return strconv.Quote(k.key)
	default:
		return "none"
	}
}

// ResolveIcon looks k up in icons. Out-of-range indexes and unmatched keys
// resolve to nil.
func ResolveIcon(icons []*AnimatedIcon, k IconKey) *AnimatedIcon {
	switch k.kind {
	case iconKeyIndex:
		if k.index >= 0 && k.index < len(icons) {
			return icons[k.index]
		}
	case iconKeyName:
		for _, icon := range icons {
			if icon != nil && icon.key == k.key {
				return icon
			}
		}
	}
	return nil
}
