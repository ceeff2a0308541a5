// Package attest produces and verifies attestation tokens: Ed25519
// signatures over a canonical summary of a tool call and its verdict. Tokens
// bind (tool identifier, verified flag, result digest) so that downstream
// consumers can check that a verdict was produced by this gateway.
package attest

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// tokenPrefix versions the token format.
const tokenPrefix = "qwed1"

// Signer holds the gateway's attestation key pair.
type Signer struct {
	keyID      string
	privateKey ed25519.PrivateKey
	publicKey  ed25519.PublicKey
}

// New creates a signer. When keyFile is empty an ephemeral key pair is
// generated; otherwise the file must contain a 64-byte Ed25519 private key
// seed+public concatenation encoded as hex.
func New(keyFile string) (*Signer, error) {
	if keyFile == "" {
		public, private, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("generate attestation key: %w", err)
		}
		return &Signer{keyID: uuid.NewString(), privateKey: private, publicKey: public}, nil
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read attestation key %q: %w", keyFile, err)
	}
	signer, err := FromKeyData(data)
	if err != nil {
		return nil, fmt.Errorf("attestation key %q: %w", keyFile, err)
	}
	return signer, nil
}

// FromKeyData builds a signer from hex-encoded Ed25519 private key material,
// regardless of where the bytes came from (file, URL, secret store).
func FromKeyData(data []byte) (*Signer, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("decode attestation key: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("attestation key must be %d bytes, got %d", ed25519.PrivateKeySize, len(raw))
	}
	private := ed25519.PrivateKey(raw)
	return &Signer{
		// key ID derived from the public key so restarts keep it stable
		keyID:      hex.EncodeToString(private.Public().(ed25519.PublicKey))[:8],
		privateKey: private,
		publicKey:  private.Public().(ed25519.PublicKey),
	}, nil
}

// KeyID identifies the signing key inside tokens.
func (s *Signer) KeyID() string { return s.keyID }

// PublicKey returns the verification key.
func (s *Signer) PublicKey() ed25519.PublicKey { return s.publicKey }

// Sign produces a token over the tool identifier, the verified flag and the
// digest of the full result payload.
func (s *Signer) Sign(tool string, verified bool, payload any) (string, error) {
	summary, err := Summary(tool, verified, payload)
	if err != nil {
		return "", err
	}
	sig := ed25519.Sign(s.privateKey, []byte(summary))
	return fmt.Sprintf("%s.%s.%s", tokenPrefix, s.keyID, base64.RawURLEncoding.EncodeToString(sig)), nil
}

// Verify checks a token against the summary it should have been signed over.
func (s *Signer) Verify(token, tool string, verified bool, payload any) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 || parts[0] != tokenPrefix || parts[1] != s.keyID {
		return false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	summary, err := Summary(tool, verified, payload)
	if err != nil {
		return false
	}
	return ed25519.Verify(s.publicKey, []byte(summary), sig)
}

// Summary builds the canonical string that gets signed:
// "tool:<id>,result:<bool>,digest:<sha256 of canonical payload JSON>".
func Summary(tool string, verified bool, payload any) (string, error) {
	digest, err := digestPayload(payload)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("tool:%s,result:%t,digest:%s", tool, verified, digest), nil
}

func digestPayload(payload any) (string, error) {
	canonical, err := canonicalJSON(payload)
	if err != nil {
		return "", fmt.Errorf("canonicalize payload: %w", err)
	}
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:]), nil
}

// canonicalJSON serializes with lexicographically sorted object keys at every
// nesting level so that the digest is independent of field order.
func canonicalJSON(value any) (string, error) {
	// round-trip through generic JSON to get maps we can sort
	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", err
	}
	out, err := json.Marshal(sortKeys(generic))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func sortKeys(value any) any {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sorted := make(orderedMap, 0, len(keys))
		for _, k := range keys {
			sorted = append(sorted, orderedEntry{key: k, value: sortKeys(v[k])})
		}
		return sorted
	case []any:
		for i := range v {
			v[i] = sortKeys(v[i])
		}
		return v
	default:
		return value
	}
}

type orderedEntry struct {
	key   string
	value any
}

// orderedMap marshals entries in slice order, preserving the sorted keys.
type orderedMap []orderedEntry

func (m orderedMap) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, entry := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(entry.key)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		value, err := json.Marshal(entry.value)
		if err != nil {
			return nil, err
		}
		b.Write(value)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}
