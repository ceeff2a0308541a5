package codeguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySafety(t *testing.T) {
	guard, err := New()
	require.NoError(t, err)

	testCases := []struct {
		name     string
		code     string
		language string
		verified bool
	}{
		{name: "python eval", code: "eval(input())", language: "python", verified: false},
		{name: "python safe function", code: "def add(a, b): return a + b", language: "python", verified: true},
		{name: "python subprocess", code: "import subprocess\nsubprocess.run(cmd)", language: "python", verified: false},
		{name: "python pickle", code: "pickle.loads(payload)", language: "python", verified: false},
		{name: "javascript eval", code: "eval(userInput)", language: "javascript", verified: false},
		{name: "unknown language falls back to generic rules", code: "eval(x)", language: "ruby", verified: false},
		{name: "generic safe", code: "x = 1 + 2", language: "ruby", verified: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := guard.VerifySafety(tc.code, tc.language)
			assert.EqualValues(t, tc.verified, res.Verified, res.Message)
			if tc.verified {
				assert.Empty(t, res.Violations)
			} else {
				assert.NotEmpty(t, res.Violations)
			}
		})
	}
}
