package spinner

import "math"

// Layout holds the sizes a renderer needs for a given content area.
type Layout struct {
	ArcSize         float64 // diameter of the arc including its stroke
	ArcRadius       float64 // radius of the arc stroke center line
	Thickness       float64
	IconScale       float64 // path units to pixels
	IconStrokeWidth float64 // in path units, so the scaled stroke matches Thickness
	IconOffsetX     float64 // in pixels
	IconOffsetY     float64
	TextSize        float64 // font height in pixels
}

// ArcSize returns the preferred diameter for the control's radius and thickness,
// or fallback when the radius is computed from the available space.
func (c *Control) ArcSize(fallback float64) float64 {
	if c.Radius.Get() == UseComputedSize {
		return fallback
	}
	return (c.Radius.Get() + c.Thickness.Get()) * 2
}

// Layout computes the sizes for a content area of width by height pixels.
func (s *Skin) Layout(width, height float64) Layout {
	arcSize := s.control.ArcSize(math.Min(width, height))
	thickness := s.control.Thickness.Get()
	l := Layout{
		ArcSize:         arcSize,
		ArcRadius:       arcSize/2 - thickness,
		Thickness:       thickness,
		IconScale:       1,
		IconStrokeWidth: thickness,
	}

	if icon := s.shownIcon; icon != nil {
		reference := icon.ReferenceRadius()
		if reference <= 0 {
			reference = l.ArcRadius
		}
		if scale := l.ArcRadius / reference; scale > 0 && !math.IsInf(scale, 0) {
			l.IconScale = scale
		}
		l.IconStrokeWidth = thickness / l.IconScale
		l.IconOffsetX = icon.OffsetX() * l.IconScale
		l.IconOffsetY = icon.OffsetY() * l.IconScale
	}

	// three digits plus a quarter character of padding on each side
	inner := l.ArcRadius - thickness
	l.TextSize = math.Max(1, inner*2*12/16/1.75)
	return l
}
