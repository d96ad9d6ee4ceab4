// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/mentorship/internal/lib/job"
	"github.com/deppfellow/mentorship/internal/repository"
	"github.com/deppfellow/mentorship/internal/server"
)

type Services struct {
	Auth    *AuthService
	DB      *DBService
	Profile *ProfileService
	Job     *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth:    NewAuthService(s),
		DB:      NewDBService(s),
		Profile: NewProfileService(repos.User),
		Job:     s.Job,
	}, nil
}
