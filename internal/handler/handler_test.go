package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/deppfellow/mentorship/internal/middleware"
	"github.com/deppfellow/mentorship/internal/repository"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// fakeDispatcher decodes like the real service, then answers with canned
// rows or error.
type fakeDispatcher struct {
	rows     []map[string]any
	err      error
	payloads []repository.Payload
	skills   []*repository.SetSkills
}

func (f *fakeDispatcher) Dispatch(_ context.Context, payload repository.Payload) ([]map[string]any, error) {
	f.payloads = append(f.payloads, payload)
	if _, err := repository.Decode(payload); err != nil {
		return nil, err
	}
	return f.rows, f.err
}

func (f *fakeDispatcher) SetSkills(_ context.Context, req *repository.SetSkills) ([]map[string]any, error) {
	f.skills = append(f.skills, req)
	return f.rows, f.err
}

// newTestContext builds an Echo context whose request logger writes to logs.
func newTestContext(e *echo.Echo, req *http.Request, logs *bytes.Buffer) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	logger := zerolog.New(logs)
	c.Set(middleware.LoggerKey, &logger)
	return c, rec
}

func newTestDBHandler(db Dispatcher) *DBHandler {
	return NewDBHandler(&server.Server{}, db)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}
