package mcp

import (
	"context"
	"io"

	"github.com/mark3labs/mcp-go/server"
)

// ServerName identifies this server to MCP clients.
const ServerName = "arcspin"

// NewServer creates an MCP server exposing every tool of registry.
func NewServer(version string, registry *ToolRegistry, host Host) *server.MCPServer {
	srv := server.NewMCPServer(ServerName, version,
		server.WithToolCapabilities(false),
	)
	Setup(srv, registry, host)
	return srv
}

// ServeStdio serves srv over in and out until ctx is done or in is closed.
func ServeStdio(ctx context.Context, srv *server.MCPServer, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(srv).Listen(ctx, in, out)
}
