package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"arcspin/internal/spinner"
)

// DefaultCPUInterval is the sampling window of the CPU source.
const DefaultCPUInterval = time.Second

// CPU reports total CPU utilization as clockwise progress. Above Threshold the
// warning icon is shown.
type CPU struct {
	Interval  time.Duration
	Threshold float64 // in [0, 1]; 0 never warns

	sample func(ctx context.Context, interval time.Duration) (float64, error)
}

// NewCPU creates a CPU source sampling over interval.
func NewCPU(interval time.Duration, threshold float64) *CPU {
	if interval <= 0 {
		interval = DefaultCPUInterval
	}
	return &CPU{Interval: interval, Threshold: threshold, sample: samplePercent}
}

func samplePercent(ctx context.Context, interval time.Duration) (float64, error) {
	percent, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(percent) == 0 {
		return 0, errors.New("no cpu statistics")
	}
	return percent[0] / 100, nil
}

// Run samples until ctx ends. Sampling errors stop the source.
func (s *CPU) Run(ctx context.Context, emit func(Event)) error {
	emit(Event{Label: "cpu", Apply: func(c *spinner.Control) {
		c.Indeterminate.Set(true)
		c.ProgressText.Set(true)
	}})

	for {
		load, err := s.sample(ctx, s.Interval)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to sample cpu: %w", err)
		}

		warn := s.Threshold > 0 && load >= s.Threshold
		emit(Event{
			Label: fmt.Sprintf("cpu %3.0f%%", load*100),
			Apply: func(c *spinner.Control) {
				c.Indeterminate.Set(false)
				c.Progress.Set(load)
				if warn {
					c.DisplayIconByKey(spinner.YellowExclamationMark.Key())
				} else {
					c.HideIcon()
				}
			},
		})
	}
}
