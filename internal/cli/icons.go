package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"arcspin/internal/table"
)

func newIconsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List the configured icons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			icons, err := a.cfg.AnimatedIcons()
			if err != nil {
				return err
			}

			t := table.New(
				table.Column{Header: "#", Align: table.AlignRight},
				table.Column{Header: "Key", MinWidth: 8},
				table.Column{Header: "Paint", MinWidth: 10},
				table.Column{Header: "Length", Align: table.AlignRight},
				table.Column{Header: "Gap", Align: table.AlignRight},
				table.Column{Header: "Path", MaxWidth: 40},
			)
			for i, icon := range icons {
				paint := table.Cell{Value: "arc color"}
				if p, ok := icon.Paint(); ok {
					paint = table.Styled("● "+p.Hex(), lipgloss.NewStyle().Foreground(lipgloss.Color(p.Hex())))
				}
				t.AddCells(
					table.Cell{Value: strconv.Itoa(i + 1)},
					table.Cell{Value: icon.Key()},
					paint,
					table.Cell{Value: fmt.Sprintf("%g", icon.PathLength())},
					table.Cell{Value: fmt.Sprintf("%g°@%g°", icon.GapWidth(), icon.GapAngle())},
					table.Cell{Value: icon.Path()},
				)
			}

			opts := table.DefaultPrintOptions()
			opts.Writer = cmd.OutOrStdout()
			opts.Highlight = &table.Highlight{Column: 1, Style: lipgloss.NewStyle().Bold(true)}
			t.Print(opts)
			return nil
		},
	}
}
