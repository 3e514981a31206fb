// Package source produces progress updates for a spinner: scripted demos and live
// system load.
package source

import (
	"context"
	"time"

	"arcspin/internal/spinner"
)

// Event is one update from a source. Apply, when set, runs on the goroutine that
// owns the control. Label, when set, replaces the text shown next to the spinner.
type Event struct {
	Label string
	Apply func(c *spinner.Control)
}

// Source emits events until its work is done or ctx ends.
type Source interface {
	Run(ctx context.Context, emit func(Event)) error
}

// sleep waits for d or until ctx ends, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// ApplyTo runs e on c and returns the label to show, if any.
func (e Event) ApplyTo(c *spinner.Control) string {
	if e.Apply != nil {
		e.Apply(c)
	}
	return e.Label
}
