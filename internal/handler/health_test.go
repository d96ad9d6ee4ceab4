package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/mentorship/internal/config"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHealthHandler(checks map[string]func(ctx context.Context) error) *HealthHandler {
	s := &server.Server{Config: &config.Config{Primary: config.Primary{Env: "test"}}}
	return &HealthHandler{Handler: NewHandler(s), checks: checks, timeout: time.Second}
}

func checkHealth(t *testing.T, h *HealthHandler) (int, map[string]any) {
	t.Helper()
	var logs bytes.Buffer
	c, rec := newTestContext(echo.New(), httptest.NewRequest(http.MethodGet, "/status", nil), &logs)

	require.NoError(t, h.CheckHealth(c))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestCheckHealthHealthy(t *testing.T) {
	status, body := checkHealth(t, newTestHealthHandler(map[string]func(ctx context.Context) error{
		"database": func(context.Context) error { return nil },
	}))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
}

func TestCheckHealthUnhealthy(t *testing.T) {
	status, body := checkHealth(t, newTestHealthHandler(map[string]func(ctx context.Context) error{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])

	checks := body["checks"].(map[string]any)
	assert.Equal(t, "healthy", checks["database"].(map[string]any)["status"])
	assert.Equal(t, "connection refused", checks["redis"].(map[string]any)["error"])
}
