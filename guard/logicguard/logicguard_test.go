package logicguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyEntailment(t *testing.T) {
	testCases := []struct {
		name       string
		premises   []string
		conclusion string
		verified   bool
	}{
		{
			name:       "modus ponens",
			premises:   []string{"A implies B", "A"},
			conclusion: "B",
			verified:   true,
		},
		{
			name:       "affirming the consequent",
			premises:   []string{"A implies B", "B"},
			conclusion: "A",
			verified:   false,
		},
		{
			name:       "modus tollens",
			premises:   []string{"A implies B", "not B"},
			conclusion: "not A",
			verified:   true,
		},
		{
			name:       "hypothetical syllogism",
			premises:   []string{"A -> B", "B -> C"},
			conclusion: "A -> C",
			verified:   true,
		},
		{
			name:       "disjunctive syllogism",
			premises:   []string{"A or B", "not A"},
			conclusion: "B",
			verified:   true,
		},
		{
			name:       "symbolic connectives",
			premises:   []string{"A & B"},
			conclusion: "A | C",
			verified:   true,
		},
		{
			name:       "irrelevant conclusion",
			premises:   []string{"A"},
			conclusion: "C",
			verified:   false,
		},
	}

	engine := New()
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := engine.Verify(tc.premises, tc.conclusion)
			assert.EqualValues(t, tc.verified, res.Verified, res.Message)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestVerifyCounterexampleIsReported(t *testing.T) {
	res := New().Verify([]string{"A or B"}, "A")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "counterexample")
}

func TestVerifyRejectsMalformedFormula(t *testing.T) {
	engine := New()

	res := engine.Verify([]string{"A implies"}, "B")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "premise 1")

	res = engine.Verify([]string{"A"}, "B and")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "conclusion")

	res = engine.Verify(nil, "A")
	assert.False(t, res.Verified)
}
