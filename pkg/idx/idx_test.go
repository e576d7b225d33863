package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/sessionprobe/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEqual(t, idx.Zero, id)

	parsed, err := idx.Parse(" " + id.String() + " ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-ulid", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z"} {
		_, err := idx.Parse(s)
		require.ErrorIs(t, err, idx.ErrInvalid, s)
	}
}

func TestMonotonic(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()

	a := idx.NewAt(at)
	b := idx.NewAt(at)

	// Same millisecond, still ordered.
	require.Less(t, a.String(), b.String())
}

func TestFromHeader(t *testing.T) {
	known := idx.New()
	require.Equal(t, known, idx.FromHeader(known.String()))

	fresh := idx.FromHeader("client-supplied-junk")
	require.NotEqual(t, idx.Zero, fresh)
	require.NotEqual(t, idx.ID("client-supplied-junk"), fresh)
}
