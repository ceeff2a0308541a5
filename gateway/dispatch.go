package gateway

import (
	"context"
	"fmt"
)

// toolSigner is the slice of the attestation signer the dispatcher needs;
// narrowed to an interface so a failing signer can stand in during tests.
type toolSigner interface {
	Sign(tool string, verified bool, payload any) (string, error)
}

// Response is the complete outcome of one dispatched call: the normalized
// result plus the optional attestation token or the inline note explaining
// why signing failed.
type Response struct {
	Tool        string `json:"tool"`
	Result      Result `json:"result"`
	Attestation string `json:"attestation,omitempty"`
	SigningNote string `json:"signingNote,omitempty"`
}

// Dispatch routes one verification request. Checks run in order: unknown
// tool, invalid arguments, missing capability, then backend invocation. Every
// path yields exactly one normalized result; backend panics are folded into
// the response rather than surfaced as faults.
func (s *Service) Dispatch(ctx context.Context, name string, args map[string]any) Response {
	resp := Response{Tool: name}

	entry := s.tools.Get(name)
	if entry == nil {
		resp.Result = Result{Message: fmt.Sprintf("unknown tool: %s", name)}
		return resp
	}
	if err := validateArgs(entry.metadata.InputSchema, args); err != nil {
		resp.Result = Result{Message: fmt.Sprintf("invalid arguments: %v", err)}
		return resp
	}
	if entry.requires != "" && !s.capabilities.Available(entry.requires) {
		resp.Result = Result{Message: fmt.Sprintf("verification backend %q is not available on this gateway", entry.requires)}
		return resp
	}

	raw, err := s.safeInvoke(ctx, entry, args)
	if err != nil {
		resp.Result = Result{Message: fmt.Sprintf("verification failed: %v", err)}
		return resp
	}
	resp.Result = Normalize(raw)
	s.sign(&resp)
	return resp
}

// safeInvoke runs the backend with a failure boundary: a panicking backend is
// reported as an error instead of taking the gateway down.
func (s *Service) safeInvoke(ctx context.Context, entry *toolEntry, args map[string]any) (raw any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("verification backend panicked", "tool", entry.metadata.Name, "panic", r)
			raw, err = nil, fmt.Errorf("backend failure: %v", r)
		}
	}()
	return entry.invoke(ctx, args)
}

// sign attaches an attestation token when the signer capability is available.
// Signing failure is reported inline and never discards the verdict.
func (s *Service) sign(resp *Response) {
	if s.signer == nil {
		return
	}
	token, err := s.signer.Sign(resp.Tool, resp.Result.Verified, resp.Result)
	if err != nil {
		s.logger.Warn("attestation signing failed", "tool", resp.Tool, "error", err)
		resp.SigningNote = fmt.Sprintf("attestation unavailable: %v", err)
		return
	}
	resp.Attestation = token
}
