package handler

import (
	"time"

	"github.com/deppfellow/mentorship/internal/middleware"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler holds shared application dependencies for concrete handlers.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// APIFunc does the work of one JSON API endpoint and returns the rows of
// the statement it ran.
type APIFunc func(c echo.Context) ([]map[string]any, error)

// handleAPI runs fn with logging, New Relic attributes and timing, then
// writes the result through the response writer. Errors are answered here
// and never returned to Echo.
func handleAPI(c echo.Context, operation string, fn APIFunc) error {
	start := time.Now()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", c.Path())
		txn.AddAttribute("handler.operation", operation)
	}

	logger := middleware.GetLogger(c).With().
		Str("operation", operation).
		Str("route", c.Path()).
		Logger()

	logger.Debug().Msg("handling request")

	rows, err := fn(c)
	duration := time.Since(start)

	if err != nil {
		logger.Warn().
			Err(err).
			Dur("handler_duration", duration).
			Msg("request failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
		}
		return sendError(c, err)
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
		txn.AddAttribute("handler.rows", len(rows))
	}

	logger.Info().
		Dur("handler_duration", duration).
		Int("rows", len(rows)).
		Msg("request completed successfully")

	return sendRows(c, rows)
}
