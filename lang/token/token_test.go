package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		require.NotEmpty(t, tok.String(), "token %d has no string form", tok)
	}
}

func TestLookup(t *testing.T) {
	for lit, tok := range keywords {
		require.Equal(t, tok, Lookup(lit))
	}
	require.Equal(t, IDENT, Lookup("notAKeyword"))
	require.Equal(t, IDENT, Lookup("printer")) // must not prefix-match "print"
}

func TestSyncPoints(t *testing.T) {
	for tok := range SyncPoints {
		require.True(t, tok < maxToken)
	}
}
