// Package mcp exposes a running spinner as Model Context Protocol tools, so an
// agent can report progress and outcomes through it.
package mcp

import (
	"context"

	"arcspin/internal/spinner"
)

// Host gives tools access to a spinner that is owned by another goroutine.
type Host interface {
	// Update runs fn against the control on the spinner goroutine.
	Update(ctx context.Context, fn func(*spinner.Control)) error
	// Status returns a snapshot of the spinner state.
	Status(ctx context.Context) (Status, error)
}

// Status is the spinner state reported to clients.
type Status struct {
	Mode          string  `json:"mode"`
	Progress      float64 `json:"progress"`
	Indeterminate bool    `json:"indeterminate"`
	ProgressText  bool    `json:"progress_text"`
	Icon          string  `json:"icon,omitempty"`
	Text          string  `json:"text,omitempty"`
}

// AnimatorHost is a Host for a skin driven by a spinner.Animator.
type AnimatorHost struct {
	animator *spinner.Animator
	control  *spinner.Control
	skin     *spinner.Skin
}

// NewAnimatorHost creates a host. Every access goes through animator.Do.
func NewAnimatorHost(animator *spinner.Animator, control *spinner.Control, skin *spinner.Skin) *AnimatorHost {
	return &AnimatorHost{animator: animator, control: control, skin: skin}
}

// Update implements Host.
func (h *AnimatorHost) Update(ctx context.Context, fn func(*spinner.Control)) error {
	return h.animator.Do(ctx, func() { fn(h.control) })
}

// Status implements Host.
func (h *AnimatorHost) Status(ctx context.Context) (Status, error) {
	var st Status
	err := h.animator.Do(ctx, func() {
		st = Snapshot(h.control, h.skin)
	})
	return st, err
}

// Snapshot reads the status of control and skin. It must run on the goroutine
// that owns them.
func Snapshot(control *spinner.Control, skin *spinner.Skin) Status {
	st := Status{
		Mode:          skin.Mode().String(),
		Progress:      control.Progress.Get(),
		Indeterminate: control.Indeterminate.Get(),
		ProgressText:  control.ProgressText.Get(),
	}
	if icon := control.SelectedIcon(); icon != nil {
		st.Icon = icon.Key()
		if st.Icon == "" {
			st.Icon = control.DisplayedIcon.Get().String()
		}
	}
	if text := skin.Frame().Text; text.Visible {
		st.Text = text.Value
	}
	return st
}
