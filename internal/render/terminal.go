package render

import (
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"arcspin/internal/spinner"
)

// Terminal is a spinner.Animation that redraws a skin in place on a terminal.
// Each frame moves the cursor back to the first row of the previous frame.
type Terminal struct {
	out      *termenv.Output
	outOpts  []termenv.OutputOption
	control  *spinner.Control
	skin     *spinner.Skin
	renderer *Renderer
	label    string
	base     time.Duration // skin clock when the animation started
	lines    int           // rows printed by the previous frame
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithProfile forces a color profile instead of detecting one from the writer.
func WithProfile(p termenv.Profile) TerminalOption {
	return func(t *Terminal) {
		t.outOpts = append(t.outOpts, termenv.WithProfile(p))
	}
}

// WithLabel prints a label next to the spinner.
func WithLabel(label string) TerminalOption {
	return func(t *Terminal) { t.label = label }
}

// NewTerminal creates a terminal animation for skin, which must be bound to control.
func NewTerminal(w io.Writer, control *spinner.Control, skin *spinner.Skin, renderer *Renderer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		control:  control,
		skin:     skin,
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.out = termenv.NewOutput(w, t.outOpts...)
	return t
}

// SetLabel replaces the label. Call it from the animation goroutine.
func (t *Terminal) SetLabel(label string) {
	t.label = label
}

// Start attaches the control, hides the cursor and prints the initial frame.
func (t *Terminal) Start() {
	t.base = t.skin.Now()
	t.out.HideCursor()
	t.control.Attach()
	t.Render(0)
}

// Stop detaches the control, erases the last frame and shows the cursor.
func (t *Terminal) Stop() {
	t.control.Detach()
	t.rewind()
	for i := 0; i < t.lines; i++ {
		t.out.ClearLine()
		_, _ = io.WriteString(t.out, "\n")
	}
	t.rewind()
	t.lines = 0
	t.out.ShowCursor()
}

// Render advances the skin and reprints the frame.
func (t *Terminal) Render(now time.Duration) {
	t.skin.Tick(t.base + now)

	width, height := t.renderer.Size()
	raster := t.renderer.Draw(t.skin.Frame(), t.skin.Layout(float64(width), float64(height)))
	lines := raster.Lines(t.colorize)

	var side []string
	if text := raster.TextLine(t.colorize); text != "" {
		side = append(side, text)
	}
	if t.label != "" {
		side = append(side, t.label)
	}
	if len(side) > 0 {
		mid := len(lines) / 2
		lines[mid] += "  " + strings.Join(side, "  ")
	}

	t.rewind()
	for _, line := range lines {
		t.out.ClearLine()
		_, _ = io.WriteString(t.out, line+"\n")
	}
	t.lines = len(lines)
}

// rewind moves the cursor to the first row of the previous frame.
func (t *Terminal) rewind() {
	if t.lines > 0 {
		t.out.CursorPrevLine(t.lines)
	}
}

func (t *Terminal) colorize(p spinner.Paint, s string) string {
	if p.IsTransparent() {
		return s
	}
	style := t.out.String(s).Foreground(t.out.Color(p.Hex()))
	if Faint(p) {
		style = style.Faint()
	}
	return style.String()
}

var _ spinner.Animation = (*Terminal)(nil)
