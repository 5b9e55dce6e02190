package pwdhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVerify(t *testing.T) {
	h := Hash("password")
	require.NotEmpty(t, h)
	require.True(t, Verify("password", h))
	require.False(t, Verify("Password", h))
	require.False(t, Verify("", h))

	// Same password, different salt
	require.NotEqual(t, h, Hash("password"))
}

func TestVerifyGarbage(t *testing.T) {
	require.False(t, Verify("password", ""))
	require.False(t, Verify("password", "not-base64!!!"))
	require.False(t, Verify("password", "AAAA"))
}

func TestTokenKey(t *testing.T) {
	k1 := TokenKey("abc")
	k2 := TokenKey("abc")
	require.Equal(t, k1, k2)
	require.NotEqual(t, k1, TokenKey("abd"))
	require.NotEqual(t, k1, "abc")
}
