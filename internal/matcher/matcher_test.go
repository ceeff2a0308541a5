package matcher

import "testing"

func TestMatch(t *testing.T) {
	var testCases = []struct {
		pattern   string
		candidate string
		matched   bool
	}{
		{"*", "anything", true},
		{"", "anything", false},

		// Exact matches
		{"verify_sql", "verify_sql", true},

		// Prefix matches
		{"verify_legal", "verify_legal_statute", true},
		{"verify_legal_", "verify_legal_citation", true},
		{"verify_math", "verify_logic", false},
	}

	for i, tc := range testCases {
		if got := Match(tc.pattern, tc.candidate); got != tc.matched {
			t.Fatalf("[%d] Match(%q, %q) = %v; expected %v", i, tc.pattern, tc.candidate, got, tc.matched)
		}
	}
}
