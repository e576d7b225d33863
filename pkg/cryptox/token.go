package cryptox

import (
	"encoding/base64"

	"golang.org/x/crypto/blake2b"
)

// FingerprintKeySize is the largest key blake2b accepts; longer keys are truncated.
const FingerprintKeySize = blake2b.Size

// FingerprintToken returns a deterministic blake2b-256 fingerprint of a token,
// keyed with key (which may be nil). It lets diagnostics tell two tokens apart
// without ever printing one.
//
// The fingerprint is returned as a base64url-encoded string (43 chars).
func FingerprintToken(token string, key []byte) string {
	if len(key) > FingerprintKeySize {
		key = key[:FingerprintKeySize]
	}

	// New256 only fails for keys longer than 64 bytes, guarded above.
	h, _ := blake2b.New256(key)
	_, _ = h.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}
