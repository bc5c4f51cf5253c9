package tools

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash := PasswordEncrypt("password123")
	require.NotEqual(t, "password123", hash)
	require.True(t, PasswordCompare("password123", hash))
	require.False(t, PasswordCompare("password124", hash))
}
