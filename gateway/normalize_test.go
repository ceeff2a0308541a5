package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qwed-ai/qwed-mcp/guard/sqlguard"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		description string
		raw         any
		expect      Result
	}{
		{
			description: "verified and message pass through",
			raw:         map[string]any{"verified": true, "message": "ok"},
			expect:      Result{Verified: true, Message: "ok"},
		},
		{
			description: "valid substitutes for verified",
			raw:         map[string]any{"valid": true, "message": "ok"},
			expect:      Result{Verified: true, Message: "ok"},
		},
		{
			description: "verified wins over valid",
			raw:         map[string]any{"verified": false, "valid": true, "message": "ok"},
			expect:      Result{Verified: false, Message: "ok"},
		},
		{
			description: "error substitutes for message",
			raw:         map[string]any{"valid": false, "error": "boom"},
			expect:      Result{Verified: false, Message: "boom"},
		},
		{
			description: "neither flag nor text yields placeholder",
			raw:         map[string]any{},
			expect:      Result{Verified: false, Message: noDetails},
		},
		{
			description: "empty message falls back to error",
			raw:         map[string]any{"verified": false, "message": "", "error": "bad input"},
			expect:      Result{Verified: false, Message: "bad input"},
		},
		{
			description: "collections copied only when non-empty",
			raw: map[string]any{
				"verified":   false,
				"message":    "unsafe",
				"issues":     []any{"a"},
				"conflicts":  []any{},
				"violations": []any{"b", "c"},
			},
			expect: Result{Verified: false, Message: "unsafe", Issues: []string{"a"}, Violations: []string{"b", "c"}},
		},
		{
			description: "normalized query maps to normalized form",
			raw:         sqlguard.Result{Valid: true, NormalizedQuery: "SELECT 1"},
			expect:      Result{Verified: true, Message: noDetails, NormalizedForm: "SELECT 1"},
		},
		{
			description: "backend struct with typed slices",
			raw:         struct {
				Verified   bool     `json:"verified"`
				Message    string   `json:"message"`
				Violations []string `json:"violations,omitempty"`
			}{false, "denied", []string{"eval"}},
			expect: Result{Verified: false, Message: "denied", Violations: []string{"eval"}},
		},
	}

	for _, testCase := range testCases {
		actual := Normalize(testCase.raw)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestNormalizeNilRaw(t *testing.T) {
	actual := Normalize(nil)
	assert.False(t, actual.Verified)
	assert.EqualValues(t, noDetails, actual.Message)
	assert.Nil(t, actual.Issues)
}
