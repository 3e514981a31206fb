// Package cli implements the arcspin command tree.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"arcspin/internal/config"
	"arcspin/internal/logging"
	"arcspin/internal/render"
	"arcspin/internal/spinner"
)

// Version is reported by the MCP server and --version.
var Version = "dev"

// app is the state shared by every subcommand, filled in by the root pre-run hook.
type app struct {
	configPath string
	logLevel   string

	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
}

// Execute runs the command tree with ctx, which is cancelled on shutdown signals.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "arcspin",
		Short:         "Animated circular progress spinner for the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (.yaml, .toml or .json; defaults to "+config.DefaultConfigPath+" if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (overrides the config file)")

	root.AddCommand(
		newRunCmd(a),
		newTUICmd(a),
		newMCPCmd(a),
		newIconsCmd(a),
	)
	return root
}

// setup loads the configuration and opens the logger.
func (a *app) setup() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}

	level := a.cfg.Log.Level
	if a.logLevel != "" {
		level = a.logLevel
	}
	a.log, a.logCloser, err = logging.Open(level, a.cfg.Log.File)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	a.log.Debug().Str("config", a.configPath).Str("level", level).Msg("configuration loaded")
	return nil
}

// watchPath returns the file to watch for reloads, or "" when none was loaded.
func (a *app) watchPath() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultConfigPath
}

// newSpinner builds a control from the configuration and binds a skin and renderer to it.
func (a *app) newSpinner() (*spinner.Control, *spinner.Skin, *render.Renderer, error) {
	control := spinner.NewControl()
	if err := a.cfg.Apply(control); err != nil {
		return nil, nil, nil, err
	}
	skin := spinner.NewSkin(control, spinner.WithLogger(a.log))
	size := a.cfg.Spinner.Size
	renderer := render.New(size, size, render.WithLogger(a.log))
	return control, skin, renderer, nil
}
