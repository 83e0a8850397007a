// Package mcp serves the annotation engine over the Model Context Protocol.
//
// The server process is the long-lived host for navigation: one engine and
// one result cursor live for the whole session, so todo_next and friends
// observe the cursor left behind by earlier calls.
package mcp

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/todoview/internal/debug"
	"github.com/standardbeagle/todoview/internal/engine"
	"github.com/standardbeagle/todoview/internal/version"
)

// Server exposes annotation queries and navigation as MCP tools.
type Server struct {
	engine *engine.Engine
	root   string
	server *mcp.Server
}

// NewServer creates an MCP server around a configured engine. root anchors
// the relative paths reported in results.
func NewServer(eng *engine.Engine, root string) *Server {
	s := &Server{engine: eng, root: root}

	s.server = mcp.NewServer(&mcp.Implementation{
		Name:    "todoview-mcp-server",
		Version: version.Version,
	}, nil)

	s.registerTools()
	return s
}

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "todo_search",
		Description: "Scan the project for annotation comments (TODO, NOTE, FIXME, ...) matching a scope:types:assignees query and load the results into the session cursor. Empty query matches everything.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "Filter in scope:types:assignees form, e.g. '*:TODO,FIXME:alice'. Scope: 'f'/'file' = active file, 'o'/'open' = open files, anything else = whole project. '*' or omitted segments match everything.",
				},
			},
		},
	}, s.handleSearch)

	s.server.AddTool(&mcp.Tool{
		Name:        "todo_next",
		Description: "Advance the session cursor to the next matched annotation, wrapping from the last back to the first, and return it.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleNext)

	s.server.AddTool(&mcp.Tool{
		Name:        "todo_previous",
		Description: "Move the session cursor to the previous matched annotation, wrapping from the first back to the last, and return it.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handlePrevious)

	s.server.AddTool(&mcp.Tool{
		Name:        "todo_current",
		Description: "Return the annotation under the session cursor without moving it.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleCurrent)

	s.server.AddTool(&mcp.Tool{
		Name:        "todo_jump",
		Description: "Place the session cursor on a result by 0-based index (wrapped modulo the result count) and return it.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"index": {
					Type:        "integer",
					Description: "0-based result index; out-of-range values wrap around",
				},
			},
			Required: []string{"index"},
		},
	}, s.handleJump)
}

// Start runs the server over stdio until the context is canceled.
func (s *Server) Start(ctx context.Context) error {
	debug.LogMCP("starting MCP server with stdio transport\n")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
