package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyCompliance(t *testing.T) {
	verifier := NewVerifier()

	// The senior-citizen trap: the model quoted the 0.5 discount multiplier
	// as if it were the premium rate.
	res := verifier.VerifyCompliance(
		"Senior Citizen applies for life insurance premium quote",
		"The premium rate is 0.5",
	)
	assert.False(t, res.Verified)
	assert.Contains(t, res.Message, "Logic Trap")

	res = verifier.VerifyCompliance("Standard loan application", "Approved at 4.2% APR")
	assert.True(t, res.Verified)
	assert.Contains(t, res.Message, "Approved at 4.2% APR")

	// Same verdict on every call for the same arguments.
	again := verifier.VerifyCompliance("Standard loan application", "Approved at 4.2% APR")
	assert.EqualValues(t, res, again)
}

func TestVerifyPaymentMessage(t *testing.T) {
	guard, err := NewISOGuard()
	require.NoError(t, err)

	valid := `{"msg_id":"MSG-1","creation_date":"2026-01-15","amount":250.00,"currency":"EUR","debtor":"ACME Corp","creditor":"Globex Inc"}`

	testCases := []struct {
		name       string
		message    string
		msgType    string
		verified   bool
		violations int
	}{
		{name: "valid pacs.008", message: valid, msgType: "pacs.008", verified: true},
		{
			name:       "missing creditor",
			message:    `{"msg_id":"MSG-2","creation_date":"2026-01-15","amount":100,"currency":"EUR","debtor":"ACME Corp"}`,
			msgType:    "pacs.008",
			violations: 1,
		},
		{
			name:       "negative amount and bad currency",
			message:    `{"msg_id":"MSG-3","creation_date":"2026-01-15","amount":-5,"currency":"euro","debtor":"A","creditor":"B"}`,
			msgType:    "pacs.008",
			violations: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := guard.VerifyPaymentMessage(tc.message, tc.msgType)
			assert.EqualValues(t, tc.verified, res.Verified, res.Error)
			assert.Len(t, res.Violations, tc.violations)
		})
	}
}

func TestVerifyPaymentMessageRejectsUnknownTypeAndBadJSON(t *testing.T) {
	guard, err := NewISOGuard()
	require.NoError(t, err)

	res := guard.VerifyPaymentMessage(`{}`, "pacs.999")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Error, "unsupported message type")

	res = guard.VerifyPaymentMessage(`{not json`, "pacs.008")
	assert.False(t, res.Verified)
	assert.Contains(t, res.Error, "invalid message JSON")
}
