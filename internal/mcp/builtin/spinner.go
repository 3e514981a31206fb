// Package builtin provides the in-process MCP tools that drive the spinner.
// Tools are registered with the DefaultToolRegistry and run within the arcspin process.
package builtin

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"arcspin/internal/mcp"
	"arcspin/internal/spinner"
)

func init() {
	mcp.DefaultToolRegistry.Register(
		mcplib.NewTool("set_progress",
			mcplib.WithDescription("Sets the progress shown by the spinner. Positive values fill clockwise, negative values counter-clockwise."),
			mcplib.WithNumber("progress",
				mcplib.Required(),
				mcplib.Min(-1),
				mcplib.Max(1),
				mcplib.Description("Signed fill rate between -1 and 1"),
			),
		),
		func(host mcp.Host) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				args, err := GetArgs(req)
				if err != nil {
					return nil, err
				}
				progress, err := GetNumberArg(args, "progress")
				if err != nil {
					return nil, err
				}
				if math.IsNaN(progress) || progress < -1 || progress > 1 {
					return mcplib.NewToolResultError(fmt.Sprintf("progress must be between -1 and 1, got %g", progress)), nil
				}
				if err := host.Update(ctx, func(c *spinner.Control) { c.Progress.Set(progress) }); err != nil {
					return nil, err
				}
				return mcplib.NewToolResultText("Progress set to " + spinner.ProgressText(progress)), nil
			}
		},
	)

	mcp.DefaultToolRegistry.Register(
		mcplib.NewTool("set_indeterminate",
			mcplib.WithDescription("Starts or stops the indeterminate busy animation"),
			mcplib.WithBoolean("indeterminate",
				mcplib.Required(),
				mcplib.Description("True while the amount of remaining work is unknown"),
			),
		),
		func(host mcp.Host) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				args, err := GetArgs(req)
				if err != nil {
					return nil, err
				}
				on, err := GetBoolArg(args, "indeterminate")
				if err != nil {
					return nil, err
				}
				if err := host.Update(ctx, func(c *spinner.Control) { c.Indeterminate.Set(on) }); err != nil {
					return nil, err
				}
				return mcplib.NewToolResultText(fmt.Sprintf("Indeterminate: %t", on)), nil
			}
		},
	)

	mcp.DefaultToolRegistry.Register(
		mcplib.NewTool("show_icon",
			mcplib.WithDescription("Shows an animated status icon inside the spinner. Built-in keys: greenCheckMark, yellowExclamationMark, redCross."),
			mcplib.WithString("key",
				mcplib.Description("Key of the icon to show"),
			),
			mcplib.WithNumber("index",
				mcplib.Min(0),
				mcplib.Description("Position of the icon in the icon list, used when no key is given"),
			),
		),
		func(host mcp.Host) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				args, err := GetArgs(req)
				if err != nil {
					return nil, err
				}
				var selection spinner.IconKey
				if key := GetOptionalStringArg(args, "key", ""); key != "" {
					selection = spinner.IconByKey(key)
				} else if index, ok := GetOptionalNumberArg(args, "index"); ok {
					selection = spinner.IconByIndex(int(index))
				} else {
					return mcplib.NewToolResultError("either key or index is required"), nil
				}

				var found bool
				err = host.Update(ctx, func(c *spinner.Control) {
					found = c.AnimatedIcon(selection) != nil
					if found {
						c.DisplayedIcon.Set(selection)
					}
				})
				if err != nil {
					return nil, err
				}
				if !found {
					return mcplib.NewToolResultError(fmt.Sprintf("no icon matches %s", selection)), nil
				}
				return mcplib.NewToolResultText(fmt.Sprintf("Showing icon %s", selection)), nil
			}
		},
	)

	mcp.DefaultToolRegistry.Register(
		mcplib.NewTool("hide_icon",
			mcplib.WithDescription("Hides the status icon and returns to the progress arc"),
		),
		func(host mcp.Host) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				if err := host.Update(ctx, (*spinner.Control).HideIcon); err != nil {
					return nil, err
				}
				return mcplib.NewToolResultText("Icon hidden"), nil
			}
		},
	)

	mcp.DefaultToolRegistry.Register(
		mcplib.NewTool("set_progress_text",
			mcplib.WithDescription("Shows or hides the progress percentage"),
			mcplib.WithBoolean("visible",
				mcplib.Required(),
				mcplib.Description("Whether the percentage is shown"),
			),
		),
		func(host mcp.Host) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				args, err := GetArgs(req)
				if err != nil {
					return nil, err
				}
				visible, err := GetBoolArg(args, "visible")
				if err != nil {
					return nil, err
				}
				if err := host.Update(ctx, func(c *spinner.Control) { c.ProgressText.Set(visible) }); err != nil {
					return nil, err
				}
				return mcplib.NewToolResultText(fmt.Sprintf("Progress text: %t", visible)), nil
			}
		},
	)

	mcp.DefaultToolRegistry.Register(
		mcplib.NewTool("spinner_status",
			mcplib.WithDescription("Returns the current spinner state as JSON"),
		),
		func(host mcp.Host) mcp.ToolHandler {
			return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
				st, err := host.Status(ctx)
				if err != nil {
					return nil, err
				}
				data, err := json.Marshal(st)
				if err != nil {
					return nil, fmt.Errorf("failed to encode status: %w", err)
				}
				return mcplib.NewToolResultText(string(data)), nil
			}
		},
	)
}
