package jwt_test

import (
	"campus-discover/internal/global/jwt"
	"campus-discover/test"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	test.Setup(t)

	token := jwt.CreateToken(42)
	require.NotEmpty(t, token)

	claims, valid := jwt.ParseToken(token)
	require.True(t, valid)
	require.Equal(t, uint(42), claims.UserID)
}

func TestParseTokenRejectsTampered(t *testing.T) {
	test.Setup(t)

	token := jwt.CreateToken(7)
	_, valid := jwt.ParseToken(token + "x")
	require.False(t, valid)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	test.Setup(t)

	_, valid := jwt.ParseToken("not-a-token")
	require.False(t, valid)
}
