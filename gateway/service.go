package gateway

import (
	"context"
	"log/slog"

	"github.com/qwed-ai/qwed-mcp/gateway/capability"
	"github.com/qwed-ai/qwed-mcp/gateway/config"
	"github.com/qwed-ai/qwed-mcp/internal/syncmap"
	serverproto "github.com/viant/mcp-protocol/server"
)

// Service bundles configuration, the resolved capability table and the tool
// catalogue behind the MCP server adapter. All heavy lifting during
// instantiation lives in bootstrap.go to keep this file focused on the public
// surface.
type Service struct {
	config       *config.Config
	logger       *slog.Logger
	capabilities *capability.Table
	signer       toolSigner

	// Tool catalogue, registered once at bootstrap and shared by every
	// connection.
	tools     *syncmap.Map[*toolEntry]
	toolOrder []string
}

// Config returns the effective configuration instance passed to the service
// at construction time. Callers must treat the returned object as read-only.
func (s *Service) Config() *config.Config { return s.config }

// Capabilities returns the immutable capability table resolved at startup.
func (s *Service) Capabilities() *capability.Table { return s.capabilities }

// ToolNames returns all registered tool identifiers in catalogue order. The
// slice is a copy and therefore safe for callers to modify.
func (s *Service) ToolNames() []string {
	names := make([]string, len(s.toolOrder))
	copy(names, s.toolOrder)
	return names
}

// ToolDescriptors returns basic metadata for every tool (name & description)
// without invoking any backend.
func (s *Service) ToolDescriptors() []struct{ Name, Description string } {
	out := make([]struct{ Name, Description string }, 0, len(s.toolOrder))
	for _, name := range s.toolOrder {
		entry := s.tools.Get(name)
		if entry == nil {
			continue
		}
		description := ""
		if entry.metadata.Description != nil {
			description = *entry.metadata.Description
		}
		out = append(out, struct{ Name, Description string }{name, description})
	}
	return out
}

// ToolMetadata returns description and input schema for a named tool when
// present. The second return value is false when the tool does not exist.
func (s *Service) ToolMetadata(name string) (string, interface{}, bool) {
	entry := s.tools.Get(name)
	if entry == nil {
		return "", nil, false
	}
	description := ""
	if entry.metadata.Description != nil {
		description = *entry.metadata.Description
	}
	return description, entry.metadata.InputSchema, true
}

// LookupTool returns the MCP tool entry with the given name for server
// registration and CLI inspection.
func (s *Service) LookupTool(name string) (*serverproto.ToolEntry, bool) {
	entry := s.tools.Get(name)
	if entry == nil {
		return nil, false
	}
	return s.toolServerEntry(entry), true
}

// Option modifies a service instance before it is initialised. Users can pass
// an arbitrary number of options to New.
type Option func(*Service)

// WithConfig sets a custom configuration instance. When omitted a zero value
// config is assumed.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithLogger overrides the default slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New constructs a new service instance. The actual bootstrap is handled by
// init() in bootstrap.go so that callers do not need to care about the
// internal initialisation sequence.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
