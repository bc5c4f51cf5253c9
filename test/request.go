package test

import (
	"bytes"
	"campus-discover/internal/module"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// NewEngine builds a router with every module mounted under /api,
// mirroring the production route table.
func NewEngine(t *testing.T) *gin.Engine {
	t.Helper()
	r := gin.New()
	api := r.Group("/api")
	for _, m := range module.Modules {
		m.Init()
		m.InitRouter(api)
	}
	return r
}

// DoRequest performs an HTTP request against the engine. A non-nil
// body is JSON-encoded; a non-empty token is sent as a Bearer header.
func DoRequest(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Decode unmarshals the recorded response body into out.
func Decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
