// Package render rasterizes spinner frames onto braille canvases.
package render

import (
	"strings"

	"github.com/rs/zerolog"

	"arcspin/internal/canvas"
	"arcspin/internal/spinner"
	"arcspin/internal/svgpath"
)

const (
	// hiddenAlpha is the opacity under which a paint is not drawn at all.
	hiddenAlpha = 0.1
	// faintAlpha is the opacity under which a paint is drawn faint.
	faintAlpha = 0.5
	// sampleStep is the sampling distance along icon paths, in pixels.
	sampleStep = 0.5
)

// Colorizer styles a run of characters drawn with paint p.
type Colorizer func(p spinner.Paint, s string) string

// Plain is a Colorizer that drops all color.
func Plain(_ spinner.Paint, s string) string {
	return s
}

// Faint reports whether a paint should be drawn dimmed.
func Faint(p spinner.Paint) bool {
	return p.Alpha < faintAlpha
}

// Renderer draws frames for a fixed pixel size. Parsed icon paths are cached per icon.
type Renderer struct {
	width, height int
	log           zerolog.Logger
	paths         map[*spinner.AnimatedIcon]*svgpath.Path
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used to report icon paths that fail to parse.
func WithLogger(log zerolog.Logger) RendererOption {
	return func(r *Renderer) { r.log = log }
}

// New creates a renderer for a canvas of width by height braille pixels.
func New(width, height int, opts ...RendererOption) *Renderer {
	r := &Renderer{
		width:  width,
		height: height,
		log:    zerolog.Nop(),
		paths:  make(map[*spinner.AnimatedIcon]*svgpath.Path),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Size returns the canvas size in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Raster is a drawn frame: the arc and the icon on separate canvases so each keeps
// its own paint.
type Raster struct {
	Arc       *canvas.Canvas
	Icon      *canvas.Canvas
	ArcPaint  spinner.Paint
	IconPaint spinner.Paint
	Text      spinner.TextFrame
	TextPaint spinner.Paint
}

// Draw rasterizes f using the sizes in l.
func (r *Renderer) Draw(f spinner.Frame, l spinner.Layout) *Raster {
	out := &Raster{
		Arc:       canvas.New(r.width, r.height),
		Icon:      canvas.New(r.width, r.height),
		ArcPaint:  f.Stroke,
		IconPaint: f.Icon.Stroke,
		Text:      f.Text,
		TextPaint: textPaint(f),
	}
	cx, cy := float64(r.width)/2, float64(r.height)/2

	if f.Stroke.Alpha >= hiddenAlpha {
		out.Arc.Arc(cx, cy, l.ArcRadius, f.StartAngle-f.Rotation, f.Length, l.Thickness)
	}

	if f.Icon.Visible && f.Icon.Stroke.Alpha >= hiddenAlpha {
		if path := r.path(f.Icon.Icon); path != nil {
			drawIcon(out.Icon, path, f.Icon, l, cx+l.IconOffsetX, cy+l.IconOffsetY)
		}
	}
	return out
}

// drawIcon strokes path centered on (x, y), skipping the parts hidden by the dash.
func drawIcon(c *canvas.Canvas, path *svgpath.Path, icon spinner.IconFrame, l spinner.Layout, x, y float64) {
	center := path.Center()
	scale := l.IconScale
	width := l.IconStrokeWidth * scale
	for _, sub := range path.Subpaths {
		sub.Walk(sampleStep/scale, func(p svgpath.Point, at float64) {
			if svgpath.DashVisible(at, icon.DashOffset, icon.DashLength) {
				c.Dot(x+(p.X-center.X)*scale, y+(p.Y-center.Y)*scale, width)
			}
		})
	}
}

func (r *Renderer) path(icon *spinner.AnimatedIcon) *svgpath.Path {
	if icon == nil {
		return nil
	}
	if p, ok := r.paths[icon]; ok {
		return p
	}
	p, err := svgpath.Parse(icon.Path())
	if err != nil {
		r.log.Warn().Err(err).Str("icon", icon.Key()).Msg("icon path not drawable")
	}
	r.paths[icon] = p
	return p
}

// textPaint is the stroke color at the text opacity.
func textPaint(f spinner.Frame) spinner.Paint {
	p := f.Stroke
	if p.IsTransparent() {
		p = spinner.DefaultPaint
	}
	p.Alpha = f.Text.Opacity
	return p
}

// Lines renders the raster as braille rows. Icon dots take the icon paint for the
// whole cell they share with the arc.
func (r *Raster) Lines(colorize Colorizer) []string {
	lines := make([]string, r.Arc.Rows())
	for cy := range lines {
		var sb strings.Builder
		var run []rune
		kind := cellBlank
		flush := func() {
			if len(run) == 0 {
				return
			}
			switch kind {
			case cellArc:
				sb.WriteString(colorize(r.ArcPaint, string(run)))
			case cellIcon:
				sb.WriteString(colorize(r.IconPaint, string(run)))
			default:
				sb.WriteString(string(run))
			}
			run = run[:0]
		}

		for cx := 0; cx < r.Arc.Cols(); cx++ {
			arc, icon := r.Arc.Dots(cx, cy), r.Icon.Dots(cx, cy)
			k := cellBlank
			switch {
			case icon != 0:
				k = cellIcon
			case arc != 0:
				k = cellArc
			}
			if k != kind {
				flush()
				kind = k
			}
			run = append(run, canvas.Glyph(arc|icon))
		}
		flush()
		lines[cy] = sb.String()
	}
	return lines
}

// TextLine returns the styled progress text, or "" while it is hidden.
func (r *Raster) TextLine(colorize Colorizer) string {
	if !r.Text.Visible || r.Text.Opacity < hiddenAlpha || r.Text.Value == "" {
		return ""
	}
	return colorize(r.TextPaint, r.Text.Value)
}

type cellKind int

const (
	cellBlank cellKind = iota
	cellArc
	cellIcon
)
