package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", "operator-1", "admin", 1)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, "operator-1", claims["sub"])
	require.Equal(t, "admin", claims["role"])
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", "operator-1", "admin", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "other")
	require.Error(t, err)
}

func TestParse_MissingHeader(t *testing.T) {
	_, err := ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer ", "secret")
	require.Error(t, err)
}
