package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/mentorship/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleGlobalError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/missing", nil), rec)
	c.Set(LoggerKey, &logger)

	NewGlobalMiddlewares(newTestServer()).GlobalErrorHandler(err, c)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	return rec, entry
}

func TestGlobalErrorHandlerRouteNotFound(t *testing.T) {
	rec, entry := handleGlobalError(t, echo.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "NOT_FOUND", entry["error_code"])

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body.Message)
}

func TestGlobalErrorHandlerRateLimited(t *testing.T) {
	rec, entry := handleGlobalError(t, echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "warn", entry["level"])
}

func TestGlobalErrorHandlerUnexpectedError(t *testing.T) {
	rec, entry := handleGlobalError(t, errors.New("pool closed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "pool closed", entry["error"])
	assert.NotContains(t, rec.Body.String(), "pool closed")
}
