// Package tui runs the spinner as an interactive bubbletea program.
package tui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"arcspin/internal/config"
	"arcspin/internal/render"
	"arcspin/internal/spinner"
)

const (
	// progressStep is the change per key press.
	progressStep = 0.05

	springAngularFrequency = 6.0
	springDampingRatio     = 1.0
	// settleEpsilon snaps the smoothed progress to its target.
	settleEpsilon = 1e-4
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	boxStyle   = lipgloss.NewStyle().Padding(1, 2)
)

type tickMsg time.Time

// ConfigMsg applies a reloaded configuration to the running model.
type ConfigMsg struct {
	Config *config.Config
}

// Model is the bubbletea model of the interactive spinner. Progress changes from
// the keyboard are smoothed by a critically damped spring before they reach the
// control, so the arc glides instead of jumping.
type Model struct {
	control  *spinner.Control
	skin     *spinner.Skin
	renderer *render.Renderer
	log      zerolog.Logger

	keys KeyMap
	help help.Model

	interval time.Duration
	start    time.Time
	spring   harmonica.Spring
	shown    float64
	velocity float64
	target   float64

	width    int
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithFrameInterval sets the redraw interval.
func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Model) { m.log = log }
}

// WithStartTime sets the wall time that maps to the start of the skin clock.
func WithStartTime(t time.Time) Option {
	return func(m *Model) { m.start = t }
}

// New creates a model for control and its skin.
func New(control *spinner.Control, skin *spinner.Skin, renderer *render.Renderer, opts ...Option) *Model {
	m := &Model{
		control:  control,
		skin:     skin,
		renderer: renderer,
		log:      zerolog.Nop(),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		interval: spinner.DefaultFrameInterval,
		start:    time.Now(),
		shown:    control.Progress.Get(),
		target:   control.Progress.Get(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.spring = newSpring(m.interval)
	return m
}

func newSpring(interval time.Duration) harmonica.Spring {
	fps := max(1, int(time.Second/interval))
	return harmonica.NewSpring(harmonica.FPS(fps), springAngularFrequency, springDampingRatio)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init attaches the control and starts the frame clock.
func (m *Model) Init() tea.Cmd {
	m.control.Attach()
	return m.tick()
}

// Update handles key presses, focus changes, frames and configuration reloads.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.step()
		now := time.Time(msg).Sub(m.start)
		m.skin.Tick(now)
		if m.quitting {
			return m, nil
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.FocusMsg:
		m.control.Visible.Set(true)

	case tea.BlurMsg:
		m.control.Visible.Set(false)

	case ConfigMsg:
		m.applyConfig(msg.Config)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.control.Detach()
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.setTarget(m.target + progressStep)

	case key.Matches(msg, m.keys.Down):
		m.setTarget(m.target - progressStep)

	case key.Matches(msg, m.keys.Reverse):
		m.setTarget(-m.target)

	case key.Matches(msg, m.keys.Indeterminate):
		m.control.Indeterminate.Set(!m.control.Indeterminate.Get())

	case key.Matches(msg, m.keys.Text):
		m.control.ProgressText.Set(!m.control.ProgressText.Get())

	case key.Matches(msg, m.keys.Icon):
		i := int(msg.Runes[0] - '1')
		m.control.DisplayIconByIndex(i)

	case key.Matches(msg, m.keys.HideIcon):
		m.control.HideIcon()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) setTarget(p float64) {
	m.target = spinner.ClampProgress(math.Round(p*100) / 100)
}

// step advances the spring one frame and pushes the result to the control.
func (m *Model) step() {
	if m.shown == m.target && m.velocity == 0 {
		return
	}
	m.shown, m.velocity = m.spring.Update(m.shown, m.velocity, m.target)
	if math.Abs(m.shown-m.target) < settleEpsilon && math.Abs(m.velocity) < settleEpsilon {
		m.shown, m.velocity = m.target, 0
	}
	m.control.Progress.Set(spinner.ClampProgress(m.shown))
}

func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if err := cfg.Apply(m.control); err != nil {
		m.log.Warn().Err(err).Msg("failed to apply configuration")
		return
	}
	m.shown, m.velocity, m.target = cfg.Spinner.Progress, 0, cfg.Spinner.Progress
	if d := cfg.Spinner.FrameInterval.Std(); d > 0 && d != m.interval {
		m.interval = d
		m.spring = newSpring(d)
	}
	m.log.Info().Msg("configuration applied")
}

// Target returns the progress the spring is moving towards.
func (m *Model) Target() float64 {
	return m.target
}

// View draws the spinner, a status panel and the key help.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	width, height := m.renderer.Size()
	raster := m.renderer.Draw(m.skin.Frame(), m.skin.Layout(float64(width), float64(height)))
	arc := strings.Join(raster.Lines(colorize), "\n")

	status := []string{
		labelStyle.Render("mode      ") + m.skin.Mode().String(),
		labelStyle.Render("progress  ") + spinner.ProgressText(m.target),
		labelStyle.Render("icon      ") + m.iconName(),
	}
	if text := raster.TextLine(colorize); text != "" {
		status = append(status, labelStyle.Render("text      ")+text)
	}
	if !m.control.Visible.Get() {
		status = append(status, dimStyle.Render("paused while unfocused"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Center,
		boxStyle.Render(arc),
		boxStyle.Render(strings.Join(status, "\n")),
	)
	return body + "\n" + m.help.View(m.keys) + "\n"
}

func (m *Model) iconName() string {
	icon := m.control.SelectedIcon()
	if icon == nil {
		return dimStyle.Render("none")
	}
	if icon.Key() != "" {
		return icon.Key()
	}
	return m.control.DisplayedIcon.Get().String()
}

func colorize(p spinner.Paint, s string) string {
	if p.IsTransparent() {
		return s
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Hex())).
		Faint(render.Faint(p)).
		Render(s)
}
