package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFingerprintToken(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		require.Equal(t, FingerprintToken("abc", nil), FingerprintToken("abc", nil))
	})

	t.Run("url safe and fixed length", func(t *testing.T) {
		fp := FingerprintToken("abc", nil)
		require.Len(t, fp, 43)
		require.NotContains(t, fp, "+")
		require.NotContains(t, fp, "/")
		require.NotContains(t, fp, "=")
	})

	t.Run("different tokens differ", func(t *testing.T) {
		require.NotEqual(t, FingerprintToken("abc", nil), FingerprintToken("abd", nil))
	})

	t.Run("key changes fingerprint", func(t *testing.T) {
		require.NotEqual(t,
			FingerprintToken("abc", []byte("k1")),
			FingerprintToken("abc", []byte("k2")),
		)
	})

	t.Run("oversized key is truncated", func(t *testing.T) {
		long := []byte(strings.Repeat("k", 100))
		require.Equal(t,
			FingerprintToken("abc", long[:FingerprintKeySize]),
			FingerprintToken("abc", long),
		)
	})

	t.Run("does not contain the token", func(t *testing.T) {
		require.NotContains(t, FingerprintToken("secret-token", nil), "secret-token")
	})
}
