package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwed-ai/qwed-mcp/attest"
	"github.com/qwed-ai/qwed-mcp/gateway/config"
	"github.com/qwed-ai/qwed-mcp/internal/conv"
)

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	svc, err := New(context.Background(), opts...)
	require.NoError(t, err)
	return svc
}

func TestDispatchVerificationScenarios(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		description string
		tool        string
		args        map[string]any
		verified    bool
		hasIssues   bool
	}{
		{
			description: "correct derivative",
			tool:        "verify_math",
			args:        map[string]any{"expression": "x**2", "claimed_result": "2*x", "operation": "derivative"},
			verified:    true,
		},
		{
			description: "wrong derivative",
			tool:        "verify_math",
			args:        map[string]any{"expression": "x**2", "claimed_result": "3*x", "operation": "derivative"},
			verified:    false,
		},
		{
			description: "modus ponens",
			tool:        "verify_logic",
			args:        map[string]any{"premises": []any{"A implies B", "A"}, "conclusion": "B"},
			verified:    true,
		},
		{
			description: "tautology injection",
			tool:        "verify_sql",
			args:        map[string]any{"query": "SELECT * FROM users WHERE id = '1' OR '1'='1'"},
			verified:    false,
			hasIssues:   true,
		},
		{
			description: "parameterized query",
			tool:        "verify_sql",
			args:        map[string]any{"query": "SELECT name, email FROM users WHERE id = ?"},
			verified:    true,
		},
		{
			description: "safe python snippet",
			tool:        "verify_code",
			args:        map[string]any{"code": "print('hello')", "language": "python"},
			verified:    true,
		},
		{
			description: "valid citation",
			tool:        "verify_legal_citation",
			args:        map[string]any{"citation": "410 U.S. 113 (1973)"},
			verified:    true,
		},
	}

	for _, testCase := range testCases {
		resp := svc.Dispatch(ctx, testCase.tool, testCase.args)
		assert.EqualValues(t, testCase.verified, resp.Result.Verified, testCase.description)
		if testCase.hasIssues {
			assert.NotEmpty(t, resp.Result.Issues, testCase.description)
		}
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	svc := newTestService(t)
	resp := svc.Dispatch(context.Background(), "verify_quantum", map[string]any{})
	assert.False(t, resp.Result.Verified)
	assert.Contains(t, resp.Result.Message, "unknown tool")
	assert.Empty(t, resp.Attestation)
}

func TestDispatchArgumentValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		description string
		tool        string
		args        map[string]any
		fragment    string
	}{
		{
			description: "missing required field",
			tool:        "verify_math",
			args:        map[string]any{"expression": "x**2"},
			fragment:    `missing required field "claimed_result"`,
		},
		{
			description: "wrong type",
			tool:        "verify_math",
			args:        map[string]any{"expression": 42, "claimed_result": "2*x"},
			fragment:    `field "expression" must be a string`,
		},
		{
			description: "enum violation",
			tool:        "verify_math",
			args:        map[string]any{"expression": "x**2", "claimed_result": "2*x", "operation": "differentiate"},
			fragment:    `field "operation" must be one of`,
		},
		{
			description: "array expected",
			tool:        "verify_logic",
			args:        map[string]any{"premises": "A implies B", "conclusion": "B"},
			fragment:    `field "premises" must be an array`,
		},
	}

	for _, testCase := range testCases {
		resp := svc.Dispatch(ctx, testCase.tool, testCase.args)
		assert.False(t, resp.Result.Verified, testCase.description)
		assert.Contains(t, resp.Result.Message, testCase.fragment, testCase.description)
	}
}

func TestDispatchMissingCapabilitySkipsBackend(t *testing.T) {
	cfg := &config.Config{Guards: &config.Guards{Disabled: []string{"sql_safety"}}}
	svc := newTestService(t, WithConfig(cfg))

	// Wrap the registered invocation to count backend calls.
	var invocations int
	entry := svc.tools.Get("verify_sql")
	require.NotNil(t, entry)
	original := entry.invoke
	entry.invoke = func(ctx context.Context, args map[string]any) (any, error) {
		invocations++
		return original(ctx, args)
	}

	resp := svc.Dispatch(context.Background(), "verify_sql", map[string]any{"query": "SELECT 1"})
	assert.False(t, resp.Result.Verified)
	assert.Contains(t, resp.Result.Message, "not available")
	assert.EqualValues(t, 0, invocations)

	// Argument validation precedes the capability gate, so a malformed
	// request is reported as such even when the backend is absent.
	resp = svc.Dispatch(context.Background(), "verify_sql", map[string]any{})
	assert.False(t, resp.Result.Verified)
	assert.Contains(t, resp.Result.Message, `missing required field "query"`)
	assert.EqualValues(t, 0, invocations)

	// Listing still includes the tool even though it cannot be invoked.
	assert.Contains(t, svc.ToolNames(), "verify_sql")
}

func TestDispatchRecoversBackendPanic(t *testing.T) {
	svc := newTestService(t)
	entry := svc.tools.Get("verify_math")
	entry.invoke = func(ctx context.Context, args map[string]any) (any, error) {
		panic("backend exploded")
	}

	resp := svc.Dispatch(context.Background(), "verify_math",
		map[string]any{"expression": "x", "claimed_result": "1"})
	assert.False(t, resp.Result.Verified)
	assert.Contains(t, resp.Result.Message, "backend exploded")
}

func TestDispatchAttestation(t *testing.T) {
	svc := newTestService(t)
	resp := svc.Dispatch(context.Background(), "verify_math",
		map[string]any{"expression": "x**2", "claimed_result": "2*x", "operation": "derivative"})
	require.True(t, strings.HasPrefix(resp.Attestation, "qwed1."), "token %q", resp.Attestation)

	signer, ok := svc.signer.(*attest.Signer)
	require.True(t, ok)
	assert.True(t, signer.Verify(resp.Attestation, "verify_math", true, resp.Result))
	assert.False(t, signer.Verify(resp.Attestation, "verify_math", false, resp.Result))
}

// failingSigner simulates a key that was present at startup but unusable at
// sign time.
type failingSigner struct{}

func (failingSigner) Sign(string, bool, any) (string, error) {
	return "", fmt.Errorf("key handle revoked")
}

func TestDispatchSigningFailureKeepsVerdict(t *testing.T) {
	svc := newTestService(t)
	svc.signer = failingSigner{}

	resp := svc.Dispatch(context.Background(), "verify_math",
		map[string]any{"expression": "x**2", "claimed_result": "2*x", "operation": "derivative"})
	assert.True(t, resp.Result.Verified)
	assert.Empty(t, resp.Attestation)
	assert.Contains(t, resp.SigningNote, "key handle revoked")
	assert.Contains(t, Render(resp), "Attestation: attestation unavailable: key handle revoked")
}

func TestDispatchAttestationDisabled(t *testing.T) {
	cfg := &config.Config{Attestation: &config.Attestation{Enabled: conv.Pointer(false)}}
	svc := newTestService(t, WithConfig(cfg))

	resp := svc.Dispatch(context.Background(), "verify_math",
		map[string]any{"expression": "x**2", "claimed_result": "2*x", "operation": "derivative"})
	assert.True(t, resp.Result.Verified)
	assert.Empty(t, resp.Attestation)
	assert.Empty(t, resp.SigningNote)
}

func TestDispatchConcurrent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	const calls = 24
	results := make([]Response, calls)
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Alternate correct and incorrect claims.
			claimed := "2*x"
			if i%2 == 1 {
				claimed = fmt.Sprintf("%d*x", i+10)
			}
			results[i] = svc.Dispatch(ctx, "verify_math",
				map[string]any{"expression": "x**2", "claimed_result": claimed, "operation": "derivative"})
		}(i)
	}
	wg.Wait()

	for i, resp := range results {
		assert.EqualValues(t, i%2 == 0, resp.Result.Verified, "call %d", i)
	}
}
