package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineGuard(t *testing.T) {
	guard := &DeadlineGuard{}

	testCases := []struct {
		name     string
		signing  string
		term     string
		claimed  string
		verified bool
	}{
		{name: "30 days", signing: "2026-01-15", term: "30 days", claimed: "2026-02-14", verified: true},
		{name: "30 days wrong", signing: "2026-01-15", term: "30 days", claimed: "2026-02-15", verified: false},
		{name: "3 months", signing: "2026-01-31", term: "3 months", claimed: "2026-05-01", verified: true},
		{name: "1 year", signing: "2026-02-28", term: "1 year", claimed: "2027-02-28", verified: true},
		{name: "2 weeks", signing: "2026-01-01", term: "2 weeks", claimed: "2026-01-15", verified: true},
		{name: "bad term", signing: "2026-01-01", term: "a fortnight", claimed: "2026-01-15", verified: false},
		{name: "bad date", signing: "01/15/2026", term: "30 days", claimed: "2026-02-14", verified: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := guard.Verify(tc.signing, tc.term, tc.claimed)
			assert.EqualValues(t, tc.verified, res.Verified, res.Message)
		})
	}
}

func TestCitationGuard(t *testing.T) {
	guard, err := NewCitationGuard()
	require.NoError(t, err)

	res := guard.Verify("410 U.S. 113 (1973)")
	assert.True(t, res.Valid, res.Issues)
	assert.Empty(t, res.Issues)

	res = guard.Verify("999 Imaginary Rep. 1 (1990)")
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Issues)
	assert.Contains(t, res.Issues[0], "unknown reporter")

	res = guard.Verify("410 U.S. 113 (3050)")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Issues[0], "implausible decision year")

	res = guard.Verify("Roe v. Wade")
	assert.False(t, res.Valid)
	assert.Contains(t, res.Issues[0], "does not match")
}

func TestLiabilityGuard(t *testing.T) {
	guard := &LiabilityGuard{}

	res := guard.VerifyCap(1000000, 15, 150000)
	assert.True(t, res.Verified, res.Message)

	res = guard.VerifyCap(1000000, 15, 200000)
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "mismatch")

	res = guard.VerifyCap(-5, 15, 0)
	assert.False(t, res.Verified)

	res = guard.VerifyCap(1000, 150, 1500)
	assert.False(t, res.Verified)
}

func TestJurisdictionGuard(t *testing.T) {
	guard := NewJurisdictionGuard()

	res := guard.VerifyChoiceOfLaw([]string{"US", "US"}, "Delaware", "New York")
	assert.True(t, res.Verified, res.Conflicts)
	assert.Empty(t, res.Conflicts)

	// US governing law with a London forum and no UK party.
	res = guard.VerifyChoiceOfLaw([]string{"US", "DE"}, "Delaware", "London")
	assert.False(t, res.Verified)
	assert.Len(t, res.Conflicts, 1)

	// No party connected to the governing law either.
	res = guard.VerifyChoiceOfLaw([]string{"FR", "DE"}, "Delaware", "London")
	assert.False(t, res.Verified)
	assert.Len(t, res.Conflicts, 2)

	res = guard.VerifyChoiceOfLaw([]string{"US"}, "Atlantis", "New York")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "unknown governing law")

	// Forum is optional.
	res = guard.VerifyChoiceOfLaw([]string{"SG"}, "Singapore", "")
	assert.True(t, res.Verified, res.Conflicts)
}

func TestStatuteGuard(t *testing.T) {
	guard := NewStatuteGuard()

	res := guard.Verify("breach_of_contract", "California", "2022-06-01", "2025-05-30")
	assert.True(t, res.Verified, res.Message)

	res = guard.Verify("personal_injury", "California", "2022-06-01", "2025-05-30")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "Time-barred")

	res = guard.Verify("breach_of_contract", "Narnia", "2022-06-01", "2023-01-01")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "unknown jurisdiction")

	res = guard.Verify("jaywalking", "California", "2022-06-01", "2023-01-01")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "unknown claim type")

	res = guard.Verify("fraud", "California", "2022-06-01", "2021-01-01")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "predates")
}

func TestNewBundlesAllGuards(t *testing.T) {
	guards, err := New()
	require.NoError(t, err)
	assert.NotNil(t, guards.Deadline)
	assert.NotNil(t, guards.Citation)
	assert.NotNil(t, guards.Liability)
	assert.NotNil(t, guards.Jurisdiction)
	assert.NotNil(t, guards.Statute)
}
