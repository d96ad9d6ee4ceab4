package service

import (
	"context"

	"github.com/deppfellow/mentorship/internal/repository"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/rs/zerolog"
)

// Notifier queues notification emails. *job.JobService implements it.
type Notifier interface {
	EnqueueWelcomeEmail(ctx context.Context, to, firstName string) error
	EnqueueMentorAssigned(ctx context.Context, menteeID, mentorID string) error
}

// DBService runs catalog requests: it resolves the payload to one catalog
// entry, executes its statement, and queues notifications for the requests
// that have one.
type DBService struct {
	runner   repository.Runner
	notifier Notifier
}

func NewDBService(s *server.Server) *DBService {
	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}
	return newDBService(s.DB.Executor, notifier)
}

func newDBService(runner repository.Runner, notifier Notifier) *DBService {
	return &DBService{
		runner:   runner,
		notifier: notifier,
	}
}

// Dispatch decodes payload into its catalog request and runs it.
//
// Errors are returned unwrapped: repository.ErrUnknownRequestType, an
// INVALID_PAYLOAD *errs.HTTPError, a *database.AcquireError, or the store
// error itself.
func (d *DBService) Dispatch(ctx context.Context, payload repository.Payload) ([]map[string]any, error) {
	req, err := repository.Decode(payload)
	if err != nil {
		return nil, err
	}

	rows, err := d.runner.Run(ctx, req.Statement())
	if err != nil {
		return nil, err
	}

	d.notify(ctx, req, rows)
	return rows, nil
}

// SetSkills replaces a user's skills.
func (d *DBService) SetSkills(ctx context.Context, req *repository.SetSkills) ([]map[string]any, error) {
	return d.runner.Run(ctx, req.Statement())
}

// notify never fails the request: enqueue errors are only logged. rows is
// what the request's statement returned; a setMentor that matched no mentee
// returns none and queues nothing.
func (d *DBService) notify(ctx context.Context, req repository.Request, rows []map[string]any) {
	if d.notifier == nil {
		return
	}

	var err error
	switch r := req.(type) {
	case *repository.AddUser:
		err = d.notifier.EnqueueWelcomeEmail(ctx, r.Email, r.FirstName)
	case *repository.SetMentor:
		if len(rows) == 0 {
			zerolog.Ctx(ctx).Debug().
				Str("mentee_id", r.MenteeID).
				Msg("setMentor matched no mentee, no notification queued")
			return
		}
		err = d.notifier.EnqueueMentorAssigned(ctx, r.MenteeID, r.MentorID)
	default:
		return
	}

	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to enqueue notification")
	}
}
