package attest

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, err := New("")
	require.NoError(t, err)

	payload := map[string]any{"verified": true, "message": "ok"}
	token, err := signer.Sign("verify_math", true, payload)
	require.NoError(t, err)
	assert.True(t, signer.Verify(token, "verify_math", true, payload))

	// Any change to the bound fields must invalidate the token.
	assert.False(t, signer.Verify(token, "verify_math", false, payload))
	assert.False(t, signer.Verify(token, "verify_sql", true, payload))
	assert.False(t, signer.Verify(token, "verify_math", true, map[string]any{"verified": true, "message": "tampered"}))
	assert.False(t, signer.Verify("qwed1.bogus.AAAA", "verify_math", true, payload))
}

func TestSummaryIsCanonical(t *testing.T) {
	a, err := Summary("verify_math", true, map[string]any{"b": 1, "a": map[string]any{"y": 2, "x": 3}})
	require.NoError(t, err)
	b, err := Summary("verify_math", true, map[string]any{"a": map[string]any{"x": 3, "y": 2}, "b": 1})
	require.NoError(t, err)
	assert.EqualValues(t, a, b)
	assert.Contains(t, a, "tool:verify_math,result:true,digest:")
}

func TestNewFromKeyFile(t *testing.T) {
	_, private, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "attest.key")
	require.NoError(t, os.WriteFile(keyFile, []byte(hex.EncodeToString(private)), 0o600))

	signer, err := New(keyFile)
	require.NoError(t, err)

	// Key ID derived from the public key is stable across restarts.
	again, err := New(keyFile)
	require.NoError(t, err)
	assert.EqualValues(t, signer.KeyID(), again.KeyID())

	token, err := signer.Sign("verify_logic", true, "payload")
	require.NoError(t, err)
	assert.True(t, again.Verify(token, "verify_logic", true, "payload"))
}

func TestSignRejectsUnmarshalablePayload(t *testing.T) {
	signer, err := New("")
	require.NoError(t, err)
	_, err = signer.Sign("verify_math", true, func() {})
	assert.Error(t, err)
}

func TestNewRejectsBadKeyFile(t *testing.T) {
	_, err := New("/nonexistent/attest.key")
	assert.Error(t, err)

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "short.key")
	require.NoError(t, os.WriteFile(keyFile, []byte("abcd"), 0o600))
	_, err = New(keyFile)
	assert.Error(t, err)
}
