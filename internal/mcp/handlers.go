package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/todoview/internal/types"
	"github.com/standardbeagle/todoview/pkg/pathutil"
)

var errNoMatches = errors.New("no matches loaded; run todo_search first")

// SearchParams are the arguments for the todo_search tool
type SearchParams struct {
	Query string `json:"query"`
}

// JumpParams are the arguments for the todo_jump tool
type JumpParams struct {
	Index *int `json:"index"`
}

func (s *Server) handleSearch(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// Manual deserialization so unknown fields are tolerated
	var params SearchParams
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return createErrorResponse("todo_search", fmt.Errorf("invalid parameters: %w", err))
		}
	}

	ms, err := s.engine.Search(params.Query)
	if err != nil {
		return createErrorResponse("todo_search", err)
	}

	results := pathutil.ToRelativeOccurrences(ms.Occurrences, s.root)
	if results == nil {
		results = []types.Occurrence{}
	}

	return createJSONResponse(map[string]interface{}{
		"query":   ms.Query.String(),
		"time_ms": float64(ms.Stats.Elapsed.Microseconds()) / 1000.0,
		"count":   ms.Len(),
		"results": results,
		"stats":   ms.Stats,
	})
}

func (s *Server) handleNext(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	occ, ok := s.engine.Next()
	if !ok {
		return createErrorResponse("todo_next", errNoMatches)
	}
	return s.cursorResponse(occ)
}

func (s *Server) handlePrevious(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	occ, ok := s.engine.Previous()
	if !ok {
		return createErrorResponse("todo_previous", errNoMatches)
	}
	return s.cursorResponse(occ)
}

func (s *Server) handleCurrent(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	occ, ok := s.engine.Current()
	if !ok {
		return createErrorResponse("todo_current", errNoMatches)
	}
	return s.cursorResponse(occ)
}

func (s *Server) handleJump(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params JumpParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("todo_jump", fmt.Errorf("invalid parameters: %w", err))
	}
	if params.Index == nil {
		return createErrorResponse("todo_jump", errors.New("index is required"))
	}

	occ, ok := s.engine.JumpTo(*params.Index)
	if !ok {
		return createErrorResponse("todo_jump", errNoMatches)
	}
	return s.cursorResponse(occ)
}

// cursorResponse renders the occurrence under the cursor with its position.
func (s *Server) cursorResponse(occ types.Occurrence) (*mcp.CallToolResult, error) {
	index, total, _ := s.engine.Position()

	rel := occ
	rel.Buffer = types.BufferID(pathutil.ToRelative(string(occ.Buffer), s.root))

	return createJSONResponse(map[string]interface{}{
		"index":      index,
		"total":      total,
		"occurrence": rel,
	})
}
