package gateway

import (
	"context"

	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
	serverproto "github.com/viant/mcp-protocol/server"

	"github.com/qwed-ai/qwed-mcp/internal/matcher"
)

// Tools returns the MCP tool entries for the full catalogue in registration
// order.
func (s *Service) Tools() serverproto.Tools {
	result := make(serverproto.Tools, 0, len(s.toolOrder))
	for _, name := range s.toolOrder {
		entry := s.tools.Get(name)
		if entry == nil {
			continue
		}
		result = append(result, s.toolServerEntry(entry))
	}
	return result
}

// MatchTools returns the names of registered tools satisfying pattern.
func (s *Service) MatchTools(pattern string) []string {
	var out []string
	for _, name := range s.toolOrder {
		if matcher.Match(pattern, name) {
			out = append(out, name)
		}
	}
	return out
}

// toolServerEntry adapts one catalogue row to the server protocol: the
// handler dispatches, renders the response as text and never returns a
// transport-level error for verification outcomes.
func (s *Service) toolServerEntry(entry *toolEntry) *serverproto.ToolEntry {
	return &serverproto.ToolEntry{
		Metadata: entry.metadata,
		Handler: func(ctx context.Context, request *mcpschema.CallToolRequest) (*mcpschema.CallToolResult, *jsonrpc.Error) {
			resp := s.Dispatch(ctx, request.Params.Name, request.Params.Arguments)
			res := &mcpschema.CallToolResult{}
			res.Content = append(res.Content, mcpschema.CallToolResultContentElem{
				Type: "text",
				Text: Render(resp),
			})
			return res, nil
		},
	}
}
