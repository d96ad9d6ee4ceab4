package handler

import (
	"errors"
	"net/http"

	"github.com/deppfellow/mentorship/internal/database"
	"github.com/deppfellow/mentorship/internal/errs"
	"github.com/deppfellow/mentorship/internal/middleware"
	"github.com/deppfellow/mentorship/internal/repository"
	"github.com/deppfellow/mentorship/internal/sqlerr"
	"github.com/labstack/echo/v4"
)

// SuccessResponse answers a statement that ran. Rows is [] rather than null
// when nothing matched.
type SuccessResponse struct {
	Success bool             `json:"success"`
	Rows    []map[string]any `json:"rows"`
}

// FailureResponse answers a request whose reqType selected no statement.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ErrorResponse answers a request that was rejected or whose statement
// failed. Error is the store's message, unchanged.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Errors []errs.FieldError `json:"errors,omitempty"`
}

// send writes status and body as JSON unless a response has already been
// written for this request, in which case it only logs a warning.
func send(c echo.Context, status int, body any) error {
	if c.Response().Committed {
		middleware.GetLogger(c).Warn().
			Int("status", status).
			Int("sent_status", c.Response().Status).
			Msg("stopped a response since the response was already sent")
		return nil
	}
	return c.JSON(status, body)
}

func sendRows(c echo.Context, rows []map[string]any) error {
	if rows == nil {
		rows = []map[string]any{}
	}
	return send(c, http.StatusOK, SuccessResponse{Success: true, Rows: rows})
}

// sendError maps a service error onto the API error bodies.
func sendError(c echo.Context, err error) error {
	logger := middleware.GetLogger(c)

	if errors.Is(err, repository.ErrUnknownRequestType) {
		return send(c, http.StatusOK, FailureResponse{Success: false, Error: err.Error()})
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return send(c, httpErr.Status, ErrorResponse{
			Error:  httpErr.Message,
			Code:   httpErr.Code,
			Errors: httpErr.Errors,
		})
	}

	var acquireErr *database.AcquireError
	if errors.As(err, &acquireErr) {
		return send(c, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	code, hint := sqlerr.Describe(err)
	if hint != "" {
		logger.Info().Str("error_code", code).Msg(hint)
	}
	return send(c, http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: code})
}
