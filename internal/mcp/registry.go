package mcp

import (
	"context"
	"slices"
	"sync"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolHandler is the function signature for MCP tool handlers.
type ToolHandler func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error)

// ToolHandlerFactory binds a tool to the spinner host. Tools register at init
// time, before any spinner exists.
type ToolHandlerFactory func(host Host) ToolHandler

// ToolRegistration holds a tool definition and its handler factory.
type ToolRegistration struct {
	Tool           mcplib.Tool
	HandlerFactory ToolHandlerFactory
}

// ToolRegistry holds the tools a server exposes, keyed by name.
type ToolRegistry struct {
	mu    sync.RWMutex
	names []string // sorted
	tools map[string]ToolRegistration
}

// NewToolRegistry creates a new empty tool registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]ToolRegistration)}
}

// Register adds a tool. A tool with the same name is replaced.
func (r *ToolRegistry) Register(tool mcplib.Tool, handlerFactory ToolHandlerFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, found := slices.BinarySearch(r.names, tool.Name); !found {
		r.names = slices.Insert(r.names, i, tool.Name)
	}
	r.tools[tool.Name] = ToolRegistration{Tool: tool, HandlerFactory: handlerFactory}
}

// Get returns a tool registration by name.
func (r *ToolRegistry) Get(name string) (ToolRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.tools[name]
	return reg, ok
}

// All returns every registration ordered by tool name.
func (r *ToolRegistry) All() []ToolRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	regs := make([]ToolRegistration, len(r.names))
	for i, name := range r.names {
		regs[i] = r.tools[name]
	}
	return regs
}

// Names returns the sorted tool names.
func (r *ToolRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.names)
}

// Count returns the number of registered tools.
func (r *ToolRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// DefaultToolRegistry is the global tool registry instance.
// Builtin tools register themselves here from init functions.
var DefaultToolRegistry = NewToolRegistry()

// Setup adds every tool of registry to srv, bound to host.
func Setup(srv *server.MCPServer, registry *ToolRegistry, host Host) {
	for _, reg := range registry.All() {
		srv.AddTool(reg.Tool, server.ToolHandlerFunc(reg.HandlerFactory(host)))
	}
}
