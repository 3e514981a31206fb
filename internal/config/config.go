// Package config provides configuration loading and validation for the spinner.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"arcspin/internal/logging"
	"arcspin/internal/spinner"
	"arcspin/internal/svgpath"
)

// Config represents the application configuration.
type Config struct {
	Spinner SpinnerConfig `json:"spinner" yaml:"spinner" toml:"spinner"`
	Paints  []PaintConfig `json:"paints" yaml:"paints" toml:"paints"`
	Icons   []IconConfig  `json:"icons" yaml:"icons" toml:"icons"`
	Log     LogConfig     `json:"log" yaml:"log" toml:"log"`
}

// SpinnerConfig contains the initial control values and canvas settings.
type SpinnerConfig struct {
	Progress      float64  `json:"progress" yaml:"progress" toml:"progress"`
	Indeterminate bool     `json:"indeterminate" yaml:"indeterminate" toml:"indeterminate"`
	ProgressText  bool     `json:"progress_text" yaml:"progress_text" toml:"progress_text"`
	StartAngle    float64  `json:"start_angle" yaml:"start_angle" toml:"start_angle"`
	Radius        float64  `json:"radius" yaml:"radius" toml:"radius"`
	Thickness     float64  `json:"thickness" yaml:"thickness" toml:"thickness"`
	Size          int      `json:"size" yaml:"size" toml:"size"`
	FrameInterval Duration `json:"frame_interval" yaml:"frame_interval" toml:"frame_interval"`
}

// PaintConfig is one entry of the stroke color cycle.
type PaintConfig struct {
	Color    string   `json:"color" yaml:"color" toml:"color"`
	BlendIn  Duration `json:"blend_in" yaml:"blend_in" toml:"blend_in"`
	Hold     Duration `json:"hold" yaml:"hold" toml:"hold"`
	BlendOut Duration `json:"blend_out" yaml:"blend_out" toml:"blend_out"`
}

// IconConfig describes an animated icon. Nil pointers take the icon defaults.
type IconConfig struct {
	Key             string   `json:"key" yaml:"key" toml:"key"`
	Path            string   `json:"path" yaml:"path" toml:"path"`
	PathLength      float64  `json:"path_length" yaml:"path_length" toml:"path_length"`
	ReferenceRadius *float64 `json:"reference_radius,omitempty" yaml:"reference_radius,omitempty" toml:"reference_radius,omitempty"`
	Paint           string   `json:"paint,omitempty" yaml:"paint,omitempty" toml:"paint,omitempty"`
	GapWidth        float64  `json:"gap_width" yaml:"gap_width" toml:"gap_width"`
	GapAngle        *float64 `json:"gap_angle,omitempty" yaml:"gap_angle,omitempty" toml:"gap_angle,omitempty"`
	OffsetX         float64  `json:"offset_x" yaml:"offset_x" toml:"offset_x"`
	OffsetY         float64  `json:"offset_y" yaml:"offset_y" toml:"offset_y"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `json:"level" yaml:"level" toml:"level"`
	File  string `json:"file" yaml:"file" toml:"file"`
}

// DefaultConfigPath is the default path to look for the configuration file.
const DefaultConfigPath = "arcspin.yaml"

// Default values for optional configuration fields.
const (
	DefaultThickness     = 1.5
	DefaultSize          = 16
	DefaultFrameInterval = spinner.DefaultFrameInterval
	DefaultLogLevel      = "warn"

	// MaxSize bounds the canvas so a frame always fits a terminal.
	MaxSize = 256
)

// Duration is a time.Duration written as a string such as "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Spinner: SpinnerConfig{Indeterminate: true}}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the configuration from the specified file path.
// The format follows the extension: .yaml/.yml, .toml or .json.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := unmarshal(path, data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for optional fields
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDefault loads configuration from the default path (arcspin.yaml), falling
// back to Default when the file does not exist.
func LoadDefault() (*Config, error) {
	cfg, err := Load(DefaultConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func unmarshal(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".json":
		return json.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config extension: %q", ext)
	}
}

// applyDefaults sets default values for optional configuration fields.
func (c *Config) applyDefaults() {
	if c.Spinner.Radius == 0 {
		c.Spinner.Radius = spinner.UseComputedSize
	}
	if c.Spinner.Thickness <= 0 {
		c.Spinner.Thickness = DefaultThickness
	}
	if c.Spinner.Size <= 0 {
		c.Spinner.Size = DefaultSize
	}
	if c.Spinner.FrameInterval <= 0 {
		c.Spinner.FrameInterval = Duration(DefaultFrameInterval)
	}

	if len(c.Paints) == 0 {
		c.Paints = []PaintConfig{{}}
	}
	for i := range c.Paints {
		p := &c.Paints[i]
		if p.Color == "" {
			p.Color = spinner.DefaultPaint.Hex()
		}
		if p.BlendIn <= 0 {
			p.BlendIn = Duration(spinner.DefaultBlendIn)
		}
		if p.Hold <= 0 {
			p.Hold = Duration(spinner.DefaultHold)
		}
		if p.BlendOut <= 0 {
			p.BlendOut = Duration(spinner.DefaultBlendOut)
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// validate checks the values that cannot be corrected at runtime.
func (c *Config) validate() error {
	if c.Spinner.Size > MaxSize {
		return fmt.Errorf("spinner.size must be at most %d, got %d", MaxSize, c.Spinner.Size)
	}
	for i, p := range c.Paints {
		if _, err := spinner.ParseHex(p.Color); err != nil {
			return fmt.Errorf("paints[%d].color: %w", i, err)
		}
	}
	for i, icon := range c.Icons {
		if icon.Path == "" {
			return fmt.Errorf("icons[%d].path is required in configuration", i)
		}
		if _, err := svgpath.Parse(icon.Path); err != nil {
			return fmt.Errorf("icons[%d].path: %w", i, err)
		}
		if icon.Paint != "" {
			if _, err := spinner.ParseHex(icon.Paint); err != nil {
				return fmt.Errorf("icons[%d].paint: %w", i, err)
			}
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// PaintKeyframes converts the paint cycle.
func (c *Config) PaintKeyframes() ([]spinner.PaintKeyframe, error) {
	frames := make([]spinner.PaintKeyframe, 0, len(c.Paints))
	for i, p := range c.Paints {
		paint, err := spinner.ParseHex(p.Color)
		if err != nil {
			return nil, fmt.Errorf("paints[%d].color: %w", i, err)
		}
		frames = append(frames, spinner.PaintKeyframe{
			Paint:    paint,
			BlendIn:  p.BlendIn.Std(),
			Hold:     p.Hold.Std(),
			BlendOut: p.BlendOut.Std(),
		}.WithDefaults())
	}
	return frames, nil
}

// AnimatedIcons converts the icon list. An empty list yields the built-in icons.
func (c *Config) AnimatedIcons() ([]*spinner.AnimatedIcon, error) {
	if len(c.Icons) == 0 {
		return spinner.BuiltinIcons(), nil
	}
	icons := make([]*spinner.AnimatedIcon, 0, len(c.Icons))
	for i, ic := range c.Icons {
		icon, err := ic.animatedIcon()
		if err != nil {
			return nil, fmt.Errorf("icons[%d]: %w", i, err)
		}
		icons = append(icons, icon)
	}
	return icons, nil
}

func (ic IconConfig) animatedIcon() (*spinner.AnimatedIcon, error) {
	gapAngle := spinner.DefaultGapAngle
	if ic.GapAngle != nil {
		gapAngle = *ic.GapAngle
	}
	opts := []spinner.IconOption{
		spinner.WithKey(ic.Key),
		spinner.WithPathLength(ic.PathLength),
		spinner.WithGap(ic.GapWidth, gapAngle),
		spinner.WithOffset(ic.OffsetX, ic.OffsetY),
	}
	if ic.ReferenceRadius != nil {
		opts = append(opts, spinner.WithReferenceRadius(*ic.ReferenceRadius))
	}
	if ic.Paint != "" {
		p, err := spinner.ParseHex(ic.Paint)
		if err != nil {
			return nil, err
		}
		opts = append(opts, spinner.WithPaint(p))
	}
	return spinner.NewAnimatedIcon(ic.Path, opts...)
}

// Apply sets every configured value on the control. Unchanged values do not
// notify, so applying a reloaded file only animates what changed.
func (c *Config) Apply(ctl *spinner.Control) error {
	paints, err := c.PaintKeyframes()
	if err != nil {
		return err
	}
	icons, err := c.AnimatedIcons()
	if err != nil {
		return err
	}

	ctl.Radius.Set(c.Spinner.Radius)
	ctl.Thickness.Set(c.Spinner.Thickness)
	ctl.StartAngle.Set(c.Spinner.StartAngle)
	ctl.Progress.Set(c.Spinner.Progress)
	ctl.Indeterminate.Set(c.Spinner.Indeterminate)
	ctl.ProgressText.Set(c.Spinner.ProgressText)
	if !samePaints(ctl.Paints.Items(), paints) {
		ctl.Paints.Set(paints...)
	}
	if !sameIcons(ctl.Icons.Items(), icons) {
		ctl.Icons.Set(icons...)
	}
	return nil
}

func samePaints(a, b []spinner.PaintKeyframe) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameIcons compares by content: a reload builds new icons for an unchanged file.
func sameIcons(a, b []*spinner.AnimatedIcon) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] == nil || b[i] == nil {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		if a[i].String() != b[i].String() {
			return false
		}
	}
	return true
}
