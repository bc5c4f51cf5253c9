package test

import (
	"campus-discover/internal/global/response"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// ErrorEqual asserts that the response carries the given status and
// error message.
func ErrorEqual(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	require.Equal(t, status, w.Code)

	var body response.ResponseBody
	Decode(t, w, &body)
	require.Equal(t, message, body.Error.Message)
}
