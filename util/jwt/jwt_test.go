package jwt

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestIssue_Claims(t *testing.T) {
	tok, err := Issue("secret", "S-1", "student", 1)
	require.NoError(t, err)

	parsed, err := gojwt.Parse(tok, func(tk *gojwt.Token) (any, error) {
		return []byte("secret"), nil
	}, gojwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(gojwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "S-1", claims["sub"])
	require.Equal(t, "student", claims["role"])
	require.NotZero(t, claims["exp"])
}

func TestIssue_WrongSecretRejected(t *testing.T) {
	tok, err := Issue("secret", "S-1", "student", 1)
	require.NoError(t, err)

	_, err = gojwt.Parse(tok, func(tk *gojwt.Token) (any, error) {
		return []byte("other-secret"), nil
	}, gojwt.WithValidMethods([]string{"HS256"}))
	require.Error(t, err)
}

func TestIssue_ExpiredRejected(t *testing.T) {
	tok, err := Issue("secret", "S-1", "student", -1)
	require.NoError(t, err)

	_, err = gojwt.Parse(tok, func(tk *gojwt.Token) (any, error) {
		return []byte("secret"), nil
	}, gojwt.WithValidMethods([]string{"HS256"}))
	require.Error(t, err)
}
