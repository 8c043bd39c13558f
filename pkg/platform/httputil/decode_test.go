package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "notarium/pkg/domain-errors"
)

type plainRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type validatingRequest struct {
	Name       string `json:"name"`
	normalized bool
}

func (r *validatingRequest) Normalize() {
	r.normalized = true
}

func (r *validatingRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDecodeJSON(t *testing.T) {
	body := bytes.NewBufferString(`{"name":"Ada","count":3}`)
	r := httptest.NewRequest(http.MethodPost, "/", body)
	w := httptest.NewRecorder()

	req, ok := DecodeJSON[plainRequest](w, r, discardLogger(), r.Context(), "req-1")
	require.True(t, ok)
	assert.Equal(t, "Ada", req.Name)
	assert.Equal(t, 3, req.Count)
}

func TestDecodeJSONRejectsMalformedBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":`))
	w := httptest.NewRecorder()

	_, ok := DecodeJSON[plainRequest](w, r, discardLogger(), r.Context(), "req-1")
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDecodeAndPrepareRunsNormalizeAndValidate(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"name":"Ada"}`))
	w := httptest.NewRecorder()

	req, ok := DecodeAndPrepare[validatingRequest](w, r, discardLogger(), r.Context(), "req-1")
	require.True(t, ok)
	assert.True(t, req.normalized)
}

func TestDecodeAndPrepareWritesValidationError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	_, ok := DecodeAndPrepare[validatingRequest](w, r, discardLogger(), r.Context(), "req-1")
	require.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(dErrors.CodeValidation), resp["error"])
}

func TestWriteErrorMapsDomainCodes(t *testing.T) {
	cases := []struct {
		code   dErrors.Code
		status int
	}{
		{dErrors.CodeNotFound, http.StatusNotFound},
		{dErrors.CodeValidation, http.StatusBadRequest},
		{dErrors.CodeConflict, http.StatusConflict},
		{dErrors.CodeUnauthorized, http.StatusUnauthorized},
		{dErrors.CodeForbidden, http.StatusForbidden},
		{dErrors.CodeUnavailable, http.StatusServiceUnavailable},
		{dErrors.CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(tc.code, "boom"))
		assert.Equal(t, tc.status, w.Code, "code %s", tc.code)
	}
}

func TestWriteErrorFallbackForPlainErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
