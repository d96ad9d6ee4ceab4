package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/deppfellow/mentorship/internal/errs"
	"github.com/deppfellow/mentorship/internal/repository"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/labstack/echo/v4"
)

// Dispatcher runs one catalog request. *service.DBService implements it.
type Dispatcher interface {
	Dispatch(ctx context.Context, payload repository.Payload) ([]map[string]any, error)
	SetSkills(ctx context.Context, req *repository.SetSkills) ([]map[string]any, error)
}

type DBHandler struct {
	Handler
	db Dispatcher
}

func NewDBHandler(s *server.Server, db Dispatcher) *DBHandler {
	return &DBHandler{
		Handler: NewHandler(s),
		db:      db,
	}
}

// Dispatch serves /api/db. POST carries the payload in the body, GET in the
// query string; any other method has no payload and gets the unknown
// request type answer.
func (h *DBHandler) Dispatch(c echo.Context) error {
	return handleAPI(c, "db", func(c echo.Context) ([]map[string]any, error) {
		payload, err := extractPayload(c)
		if err != nil {
			return nil, err
		}
		return h.db.Dispatch(c.Request().Context(), payload)
	})
}

// SetSkills serves POST /api/user/set-skills.
func (h *DBHandler) SetSkills(c echo.Context) error {
	return handleAPI(c, "set_skills", func(c echo.Context) ([]map[string]any, error) {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return nil, errs.NewInvalidPayloadError("Invalid payload: could not read body", nil)
		}

		req, err := repository.DecodeSetSkills(body)
		if err != nil {
			return nil, err
		}
		return h.db.SetSkills(c.Request().Context(), req)
	})
}

func extractPayload(c echo.Context) (repository.Payload, error) {
	switch c.Request().Method {
	case http.MethodPost:
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return nil, errs.NewInvalidPayloadError("Invalid payload: could not read body", nil)
		}
		return repository.PayloadFromJSON(body)
	case http.MethodGet:
		return repository.PayloadFromQuery(c.QueryParams()), nil
	default:
		return nil, nil
	}
}
