package source

import (
	"context"
	"time"

	"arcspin/internal/spinner"
)

// Step is an event emitted after a wait.
type Step struct {
	Wait time.Duration
	Event
}

// Script emits a fixed sequence of steps.
type Script struct {
	Steps []Step
	Loop  bool
}

// Run emits every step in order, forever when Loop is set.
func (s *Script) Run(ctx context.Context, emit func(Event)) error {
	for {
		for _, step := range s.Steps {
			if !sleep(ctx, step.Wait) {
				return nil
			}
			emit(step.Event)
		}
		if !s.Loop || len(s.Steps) == 0 {
			return nil
		}
	}
}

// Fixed returns a script that sets the given state once.
func Fixed(progress float64, indeterminate bool, icon spinner.IconKey) *Script {
	return &Script{Steps: []Step{{Event: Event{Apply: func(c *spinner.Control) {
		c.Progress.Set(progress)
		c.Indeterminate.Set(indeterminate)
		c.DisplayedIcon.Set(icon)
	}}}}}
}

// Demo returns a looping script that walks through every display mode: an
// indeterminate wait, a clockwise download, the three built-in icons and a
// counter-clockwise indeterminate phase.
func Demo() *Script {
	s := &Script{Loop: true}
	add := func(wait time.Duration, label string, apply func(c *spinner.Control)) {
		s.Steps = append(s.Steps, Step{Wait: wait, Event: Event{Label: label, Apply: apply}})
	}

	add(0, "connecting", func(c *spinner.Control) {
		c.HideIcon()
		c.Progress.Set(0)
		c.Indeterminate.Set(true)
	})
	add(2500*time.Millisecond, "downloading", func(c *spinner.Control) {
		c.Indeterminate.Set(false)
		c.ProgressText.Set(true)
	})
	const ramp = 20
	for i := 1; i <= ramp; i++ {
		progress := float64(i) / ramp
		add(150*time.Millisecond, "", func(c *spinner.Control) { c.Progress.Set(progress) })
	}
	add(300*time.Millisecond, "done", func(c *spinner.Control) {
		c.DisplayIconByKey(spinner.GreenCheckMark.Key())
	})
	add(2500*time.Millisecond, "verifying", func(c *spinner.Control) {
		c.HideIcon()
		c.ProgressText.Set(false)
		c.Progress.Set(-0.6)
		c.Indeterminate.Set(true)
	})
	add(3*time.Second, "slow mirror", func(c *spinner.Control) {
		c.DisplayIconByKey(spinner.YellowExclamationMark.Key())
	})
	add(2500*time.Millisecond, "retrying", func(c *spinner.Control) {
		c.HideIcon()
		c.Indeterminate.Set(false)
		c.Progress.Set(0.3)
	})
	add(2*time.Second, "failed", func(c *spinner.Control) {
		c.DisplayIconByKey(spinner.RedCross.Key())
	})
	add(2500*time.Millisecond, "", func(c *spinner.Control) { c.HideIcon() })
	add(time.Second, "", nil)
	return s
}
