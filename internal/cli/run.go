package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"arcspin/internal/config"
	"arcspin/internal/render"
	"arcspin/internal/source"
	"arcspin/internal/spinner"
	"arcspin/internal/watch"
)

type runOptions struct {
	source        string
	progress      float64
	indeterminate bool
	icon          string
	label         string
	duration      time.Duration
	watch         bool
	cpuInterval   time.Duration
	cpuThreshold  float64
}

func newRunCmd(a *app) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Draw the spinner inline, driven by a demo script, CPU load or fixed values",
		Example: "  arcspin run\n" +
			"  arcspin run --source cpu --cpu-threshold 0.8\n" +
			"  arcspin run --source fixed --progress -0.4 --icon greenCheckMark --duration 5s",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := opts.newSource()
			if err != nil {
				return err
			}
			return a.run(cmd, src, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.source, "source", "s", "demo", "Progress source: demo|cpu|fixed")
	f.Float64Var(&opts.progress, "progress", 0, "Progress for --source fixed, in [-1, 1]")
	f.BoolVar(&opts.indeterminate, "indeterminate", false, "Indeterminate animation for --source fixed")
	f.StringVar(&opts.icon, "icon", "", "Icon key to show for --source fixed")
	f.StringVarP(&opts.label, "label", "l", "", "Text printed next to the spinner")
	f.DurationVarP(&opts.duration, "duration", "d", 0, "Stop after this long (0 runs until interrupted)")
	f.BoolVarP(&opts.watch, "watch", "w", false, "Reload the config file when it changes")
	f.DurationVar(&opts.cpuInterval, "cpu-interval", source.DefaultCPUInterval, "Sampling window for --source cpu")
	f.Float64Var(&opts.cpuThreshold, "cpu-threshold", 0.9, "Load from which --source cpu shows the warning icon (0 disables)")
	return cmd
}

func (o *runOptions) newSource() (source.Source, error) {
	switch o.source {
	case "demo":
		return source.Demo(), nil
	case "cpu":
		return source.NewCPU(o.cpuInterval, o.cpuThreshold), nil
	case "fixed":
		icon := spinner.NoIcon
		if o.icon != "" {
			icon = spinner.IconByKey(o.icon)
		}
		return source.Fixed(o.progress, o.indeterminate, icon), nil
	default:
		return nil, fmt.Errorf("unknown source %q: want demo, cpu or fixed", o.source)
	}
}

// run animates the spinner on stdout until ctx ends or the duration elapses. Source
// events and config reloads are applied on the animation goroutine.
func (a *app) run(cmd *cobra.Command, src source.Source, opts *runOptions) error {
	control, skin, renderer, err := a.newSpinner()
	if err != nil {
		return err
	}
	defer skin.Dispose()

	var w *watch.Watcher
	if opts.watch {
		if w, err = watch.New(a.watchPath(), watch.WithLogger(a.log)); err != nil {
			return err
		}
	}

	term := render.NewTerminal(cmd.OutOrStdout(), control, skin, renderer, render.WithLabel(opts.label))
	animator := spinner.NewAnimator(term, spinner.WithFrameInterval(a.cfg.Spinner.FrameInterval.Std()))

	ctx := cmd.Context()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	animator.Start()
	defer animator.Stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := src.Run(ctx, func(e source.Event) {
			_ = animator.Do(ctx, func() {
				if label := e.ApplyTo(control); label != "" {
					term.SetLabel(label)
				}
			})
		})
		if err != nil {
			return err
		}
		// Keep showing the final state until interrupted.
		<-ctx.Done()
		return nil
	})

	if w != nil {
		g.Go(func() error {
			return w.Run(ctx, func(cfg *config.Config) {
				_ = animator.Do(ctx, func() {
					if err := cfg.Apply(control); err != nil {
						a.log.Warn().Err(err).Msg("failed to apply configuration")
					}
				})
			})
		})
	}

	return g.Wait()
}
