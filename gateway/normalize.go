package gateway

import (
	"github.com/qwed-ai/qwed-mcp/internal/conv"
)

// noDetails is the placeholder message when a backend reported neither a
// message nor an error.
const noDetails = "no additional details provided"

// Result is the canonical verification outcome. Backends disagree on field
// names and on which diagnostic collections they populate; Normalize folds
// all of them into this one shape. A diagnostic slice is only ever present
// when non-empty.
type Result struct {
	Verified       bool     `json:"verified"`
	Message        string   `json:"message"`
	Issues         []string `json:"issues,omitempty"`
	Conflicts      []string `json:"conflicts,omitempty"`
	Violations     []string `json:"violations,omitempty"`
	NormalizedForm string   `json:"normalizedForm,omitempty"`
}

// Normalize maps a raw backend result onto the canonical shape. Priority
// rules: verified comes from "verified", else "valid", else false; message
// comes from the first non-empty of "message" and "error", else a fixed
// placeholder. Diagnostic collections are copied through only when non-empty.
func Normalize(raw any) Result {
	m, err := conv.ToMap(raw)
	if err != nil || m == nil {
		return Result{Message: noDetails}
	}
	out := Result{Message: noDetails}
	if v, ok := m["verified"].(bool); ok {
		out.Verified = v
	} else if v, ok := m["valid"].(bool); ok {
		out.Verified = v
	}
	if msg, ok := m["message"].(string); ok && msg != "" {
		out.Message = msg
	} else if msg, ok := m["error"].(string); ok && msg != "" {
		out.Message = msg
	}
	out.Issues = stringList(m["issues"])
	out.Conflicts = stringList(m["conflicts"])
	out.Violations = stringList(m["violations"])
	if form, ok := m["normalized_query"].(string); ok && form != "" {
		out.NormalizedForm = form
	} else if form, ok := m["normalizedForm"].(string); ok && form != "" {
		out.NormalizedForm = form
	}
	return out
}

func stringList(raw any) []string {
	switch actual := raw.(type) {
	case []string:
		if len(actual) == 0 {
			return nil
		}
		out := make([]string, len(actual))
		copy(out, actual)
		return out
	case []any:
		var out []string
		for _, item := range actual {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
