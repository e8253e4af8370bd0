package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	tok, err := Issue("secret", 7, "librarian", 1)
	require.NoError(t, err)

	claims, err := ParseAuth("Bearer "+tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(7), claims["sub"])
	require.Equal(t, "librarian", claims["role"])
}

func TestParse_BareTokenWithoutBearerPrefix(t *testing.T) {
	tok, err := Issue("secret", 7, "member", 1)
	require.NoError(t, err)

	claims, err := ParseAuth(tok, "secret")
	require.NoError(t, err)
	require.Equal(t, float64(7), claims["sub"])
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := Issue("secret", 7, "member", 1)
	require.NoError(t, err)

	_, err = ParseAuth("Bearer "+tok, "other")
	require.Error(t, err)
}

func TestParse_MissingHeader(t *testing.T) {
	_, err := ParseAuth("", "secret")
	require.Error(t, err)

	_, err = ParseAuth("Bearer   ", "secret")
	require.Error(t, err)
}
