package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/mentorship/internal/config"
	"github.com/deppfellow/mentorship/internal/lib/email"
	"github.com/deppfellow/mentorship/internal/repository"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends the notification emails. *email.Client implements it.
type Mailer interface {
	SendWelcomeEmail(to, firstName string) error
	SendMentorAssignedEmail(to, menteeFirstName, mentorName, mentorEmail string) error
}

// ContactLookup resolves a user id to its contact details.
// *repository.UserRepository implements it.
type ContactLookup interface {
	GetContact(ctx context.Context, userID string) (repository.Contact, error)
}

// InitHandlers builds the dependencies task handlers need: the Resend
// email client and the contact lookup. It must run before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, contacts ContactLookup) {
	j.mailer = email.NewClient(cfg, logger)
	j.contacts = contacts
}

// handleWelcomeEmailTask processes the welcome email task.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("Failed to send welcome email")
		// returning err makes Asynq mark it failed and schedule retry
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("Successfully sent welcome email")

	return nil
}

// handleMentorAssignedTask looks up both users and mails the mentee.
func (j *JobService) handleMentorAssignedTask(ctx context.Context, t *asynq.Task) error {
	var p MentorAssignedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal mentor assigned payload: %w", err)
	}

	log := j.logger.With().
		Str("type", "mentor_assigned").
		Str("mentee_id", p.MenteeID).
		Str("mentor_id", p.MentorID).
		Logger()

	mentee, err := j.contacts.GetContact(ctx, p.MenteeID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up mentee")
		return lookupError(err)
	}
	mentor, err := j.contacts.GetContact(ctx, p.MentorID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up mentor")
		return lookupError(err)
	}

	if mentee.Email == "" {
		log.Warn().Msg("Mentee has no email address, skipping notification")
		return nil
	}

	if err := j.mailer.SendMentorAssignedEmail(mentee.Email, mentee.FirstName, displayName(mentor), mentor.Email); err != nil {
		log.Error().Err(err).Msg("Failed to send mentor assigned email")
		return err
	}

	log.Info().Msg("Successfully sent mentor assigned email")
	return nil
}

// lookupError marks a missing user as permanent so Asynq archives the task
// instead of retrying it. Store errors are returned as is and retried.
func lookupError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	return err
}

func displayName(c repository.Contact) string {
	if name := strings.TrimSpace(c.DisplayName); name != "" {
		return name
	}
	return c.FirstName
}
