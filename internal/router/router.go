// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/deppfellow/mentorship/internal/handler"
	"github.com/deppfellow/mentorship/internal/middleware"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance.
//
// Middleware order matters: the request id and the New Relic transaction
// must exist before the context logger copies them, and rejected requests
// (rate limit) still get a request log line.
func NewRouter(s *server.Server, h *handler.Handlers, mw *middleware.Middlewares) *echo.Echo {
	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	router.Renderer = handler.NewRenderer()

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	api.Any("/db", h.DB.Dispatch)
	api.POST("/user/set-skills", h.DB.SetSkills)

	app := router.Group("/app", mw.Auth.LoadIdentity)
	app.GET("/profile", h.Profile.ShowProfile)

	return router
}
