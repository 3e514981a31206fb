package spinner

import "arcspin/internal/observable"

// UseComputedSize as a radius makes the arc fill the available area.
const UseComputedSize = -1.0

// Control is the host side of a spinner: every field is observable and owned by the
// host. A Skin subscribes to these fields and never writes them.
type Control struct {
	// Progress is the signed fill rate in [-1, 1]. Negative values fill
	// counter-clockwise from the start angle, positive values clockwise.
	Progress *observable.Value[float64]

	// ProgressText shows the progress as a percentage.
	ProgressText *observable.Value[bool]

	// Indeterminate plays the rotating inflate/deflate animation. A non-zero Progress
	// picks its direction and maximum length.
	Indeterminate *observable.Value[bool]

	// StartAngle rotates the whole arc, in degrees clockwise from 3 o'clock.
	StartAngle *observable.Value[float64]

	// Radius of the arc, or UseComputedSize.
	Radius *observable.Value[float64]

	// Thickness of the arc stroke. Also the stroke width of icons.
	Thickness *observable.Value[float64]

	// Paints is the cyclic stroke color sequence.
	Paints *observable.List[PaintKeyframe]

	// Icons holds the icons DisplayedIcon can select.
	Icons *observable.List[*AnimatedIcon]

	// DisplayedIcon selects the icon to show; the spinner animates any change.
	DisplayedIcon *observable.Value[IconKey]

	// Parent, Scene and Visible together decide whether the spinner is on screen.
	Parent  *observable.Value[bool]
	Scene   *observable.Value[bool]
	Visible *observable.Value[bool]
}

// NewControl creates a control with default values. It starts detached: call
// Attach once the spinner is actually drawn.
func NewControl() *Control {
	return &Control{
		Progress:      observable.NewValue(0.0),
		ProgressText:  observable.NewValue(false),
		Indeterminate: observable.NewValue(false),
		StartAngle:    observable.NewValue(0.0),
		Radius:        observable.NewValue(UseComputedSize),
		Thickness:     observable.NewValue(1.0),
		Paints:        observable.NewList[PaintKeyframe](),
		Icons:         observable.NewList[*AnimatedIcon](),
		DisplayedIcon: observable.NewValue(NoIcon),
		Parent:        observable.NewValue(false),
		Scene:         observable.NewValue(false),
		Visible:       observable.NewValue(true),
	}
}

// Attach marks the control as placed in a live scene.
func (c *Control) Attach() {
	c.Parent.Set(true)
	c.Scene.Set(true)
}

// Detach marks the control as removed from its scene.
func (c *Control) Detach() {
	c.Scene.Set(false)
	c.Parent.Set(false)
}

// Showing reports whether the control is attached and visible.
func (c *Control) Showing() bool {
	return c.Parent.Get() && c.Scene.Get() && c.Visible.Get()
}

// DisplayIconByIndex selects the icon at position i of Icons.
func (c *Control) DisplayIconByIndex(i int) {
	c.DisplayedIcon.Set(IconByIndex(i))
}

// DisplayIconByKey selects the first icon of Icons with the given key.
func (c *Control) DisplayIconByKey(key string) {
	c.DisplayedIcon.Set(IconByKey(key))
}

// HideIcon deselects any icon.
func (c *Control) HideIcon() {
	c.DisplayedIcon.Set(NoIcon)
}

// AnimatedIcon resolves key against the current icon list.
func (c *Control) AnimatedIcon(key IconKey) *AnimatedIcon {
	return ResolveIcon(c.Icons.Items(), key)
}

// SelectedIcon resolves DisplayedIcon against the current icon list.
func (c *Control) SelectedIcon() *AnimatedIcon {
	return c.AnimatedIcon(c.DisplayedIcon.Get())
}
