package gateway

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/afs"

	"github.com/qwed-ai/qwed-mcp/attest"
	"github.com/qwed-ai/qwed-mcp/gateway/capability"
	"github.com/qwed-ai/qwed-mcp/gateway/config"
	"github.com/qwed-ai/qwed-mcp/guard/codeguard"
	"github.com/qwed-ai/qwed-mcp/guard/commerce"
	"github.com/qwed-ai/qwed-mcp/guard/finance"
	"github.com/qwed-ai/qwed-mcp/guard/legal"
	"github.com/qwed-ai/qwed-mcp/guard/sqlguard"
	"github.com/qwed-ai/qwed-mcp/internal/syncmap"
)

// financeBackend groups the two finance guards behind one capability handle.
type financeBackend struct {
	compliance *finance.Verifier
	iso        *finance.ISOGuard
}

// init is the main bootstrap routine invoked by New once all options have
// been applied. It orchestrates the individual preparation steps so that the
// logic stays easy to read and to maintain.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.resolveCapabilities(ctx)
	return s.registerTools()
}

// initDefaults applies fall-back values for optional dependencies that were
// not supplied through options.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.tools = syncmap.NewRegistry[*toolEntry]()
}

// resolveCapabilities probes every optional backend group exactly once and
// freezes the outcome. A disabled or failed group leaves its tools registered
// but never invoked.
func (s *Service) resolveCapabilities(ctx context.Context) {
	probes := []capability.Probe{
		{ID: capability.CodeSafety, Acquire: func(context.Context) (any, error) {
			if s.config.Guards.IsDisabled(string(capability.CodeSafety)) {
				return nil, fmt.Errorf("disabled by configuration")
			}
			return codeguard.New()
		}},
		{ID: capability.SQLSafety, Acquire: func(context.Context) (any, error) {
			if s.config.Guards.IsDisabled(string(capability.SQLSafety)) {
				return nil, fmt.Errorf("disabled by configuration")
			}
			return sqlguard.New()
		}},
		{ID: capability.Finance, Acquire: func(context.Context) (any, error) {
			if s.config.Guards.IsDisabled(string(capability.Finance)) {
				return nil, fmt.Errorf("disabled by configuration")
			}
			iso, err := finance.NewISOGuard()
			if err != nil {
				return nil, err
			}
			return &financeBackend{compliance: finance.NewVerifier(), iso: iso}, nil
		}},
		{ID: capability.Commerce, Acquire: func(context.Context) (any, error) {
			if s.config.Guards.IsDisabled(string(capability.Commerce)) {
				return nil, fmt.Errorf("disabled by configuration")
			}
			return commerce.NewVerifier(), nil
		}},
		{ID: capability.Legal, Acquire: func(context.Context) (any, error) {
			if s.config.Guards.IsDisabled(string(capability.Legal)) {
				return nil, fmt.Errorf("disabled by configuration")
			}
			return legal.New()
		}},
		{ID: capability.Attestation, Acquire: s.acquireSigner},
	}
	s.capabilities = capability.Resolve(ctx, probes, s.logger)
	if handle, ok := s.capabilities.Handle(capability.Attestation); ok {
		s.signer = handle.(*attest.Signer)
	}
}

// acquireSigner builds the attestation signer: ephemeral key by default, or
// key material fetched from any URL scheme viant/afs understands.
func (s *Service) acquireSigner(ctx context.Context) (any, error) {
	cfg := s.config.Attestation
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("disabled by configuration")
	}
	if cfg == nil || cfg.KeyURL == "" {
		return attest.New("")
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, cfg.KeyURL)
	if err != nil {
		return nil, fmt.Errorf("download attestation key %q: %w", cfg.KeyURL, err)
	}
	return attest.FromKeyData(data)
}
