package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"arcspin/internal/config"
	"arcspin/internal/tui"
	"arcspin/internal/watch"
)

func newTUICmd(a *app) *cobra.Command {
	var watchConfig bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Control the spinner interactively from the keyboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			control, skin, renderer, err := a.newSpinner()
			if err != nil {
				return err
			}
			defer skin.Dispose()

			model := tui.New(control, skin, renderer,
				tui.WithFrameInterval(a.cfg.Spinner.FrameInterval.Std()),
				tui.WithLogger(a.log),
			)

			ctx := cmd.Context()
			p := tea.NewProgram(model,
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithReportFocus(),
			)

			if watchConfig {
				w, err := watch.New(a.watchPath(), watch.WithLogger(a.log))
				if err != nil {
					return err
				}
				go func() {
					_ = w.Run(ctx, func(cfg *config.Config) {
						p.Send(tui.ConfigMsg{Config: cfg})
					})
				}()
			}

			_, err = p.Run()
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return err
		},
	}
	cmd.Flags().BoolVarP(&watchConfig, "watch", "w", false, "Reload the config file when it changes")
	return cmd
}
