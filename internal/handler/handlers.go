package handler

import (
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/deppfellow/mentorship/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one object.
type Handlers struct {
	DB      *DBHandler
	Profile *ProfileHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		DB:      NewDBHandler(s, services.DB),
		Profile: NewProfileHandler(s, services.Profile),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
