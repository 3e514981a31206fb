package cli

import (
	"io"

	"github.com/spf13/cobra"

	"arcspin/internal/mcp"
	_ "arcspin/internal/mcp/builtin" // registers the spinner tools
	"arcspin/internal/render"
	"arcspin/internal/spinner"
)

func newMCPCmd(a *app) *cobra.Command {
	var (
		quiet bool
		label string
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the spinner as MCP tools over stdio",
		Long: "Serve the spinner as Model Context Protocol tools over stdin and stdout.\n" +
			"The spinner is drawn on stderr so agents can report progress through it.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			control, skin, renderer, err := a.newSpinner()
			if err != nil {
				return err
			}
			defer skin.Dispose()

			var out io.Writer = cmd.ErrOrStderr()
			if quiet {
				out = io.Discard
			}
			term := render.NewTerminal(out, control, skin, renderer, render.WithLabel(label))
			animator := spinner.NewAnimator(term, spinner.WithFrameInterval(a.cfg.Spinner.FrameInterval.Std()))
			animator.Start()
			defer animator.Stop()

			host := mcp.NewAnimatorHost(animator, control, skin)
			srv := mcp.NewServer(Version, mcp.DefaultToolRegistry, host)
			a.log.Info().Strs("tools", mcp.DefaultToolRegistry.Names()).Msg("serving mcp over stdio")
			return mcp.ServeStdio(cmd.Context(), srv, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not draw the spinner")
	cmd.Flags().StringVarP(&label, "label", "l", "", "Text printed next to the spinner")
	return cmd
}
