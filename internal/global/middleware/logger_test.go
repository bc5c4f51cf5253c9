package middleware

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestResponseBodyWriterCapsCapture(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	w := &responseBodyWriter{ResponseWriter: c.Writer, body: bytes.NewBufferString("")}
	payload := strings.Repeat("a", maxResponseLogSize+100)

	n, err := w.Write([]byte(payload))
	require.NoError(t, err)
	require.Equal(t, len(payload), n)

	require.Equal(t, maxResponseLogSize, w.body.Len())
	require.True(t, w.truncated)
	// The full payload still reaches the client untouched.
	require.Equal(t, payload, rec.Body.String())
}

func TestResponseBodyWriterSmallBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	w := &responseBodyWriter{ResponseWriter: c.Writer, body: bytes.NewBufferString("")}
	_, err := w.Write([]byte(`{"message":"pong"}`))
	require.NoError(t, err)

	require.False(t, w.truncated)
	require.Equal(t, `{"message":"pong"}`, w.body.String())
}
