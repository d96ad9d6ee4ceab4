package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/deppfellow/mentorship/internal/repository"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentEmail struct {
	template string
	to       string
	args     []string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) SendWelcomeEmail(to, firstName string) error {
	m.sent = append(m.sent, sentEmail{template: "welcome", to: to, args: []string{firstName}})
	return m.err
}

func (m *fakeMailer) SendMentorAssignedEmail(to, menteeFirstName, mentorName, mentorEmail string) error {
	m.sent = append(m.sent, sentEmail{
		template: "mentor_assigned",
		to:       to,
		args:     []string{menteeFirstName, mentorName, mentorEmail},
	})
	return m.err
}

type fakeContacts map[string]repository.Contact

func (f fakeContacts) GetContact(_ context.Context, userID string) (repository.Contact, error) {
	c, ok := f[userID]
	if !ok {
		return repository.Contact{}, repository.ErrNotFound
	}
	return c, nil
}

func newTestJobService(mailer Mailer, contacts ContactLookup) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, mailer: mailer, contacts: contacts}
}

func TestWelcomeTaskPayload(t *testing.T) {
	task, err := NewWelcomeEmailTask("ada@x.com", "Ada")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "ada@x.com", FirstName: "Ada"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer, fakeContacts{})

	task, err := NewWelcomeEmailTask("ada@x.com", "Ada")
	require.NoError(t, err)

	require.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, sentEmail{template: "welcome", to: "ada@x.com", args: []string{"Ada"}}, mailer.sent[0])
}

func TestHandleWelcomeEmailTaskSendFailureRetries(t *testing.T) {
	j := newTestJobService(&fakeMailer{err: errors.New("resend down")}, fakeContacts{})

	task, err := NewWelcomeEmailTask("ada@x.com", "Ada")
	require.NoError(t, err)
	assert.Error(t, j.handleWelcomeEmailTask(context.Background(), task))
}

func TestHandleMentorAssignedTask(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer, fakeContacts{
		"u1": {ID: "u1", Email: "ada@x.com", FirstName: "Ada", DisplayName: "ada"},
		"u2": {ID: "u2", Email: "grace@x.com", FirstName: "Grace", DisplayName: "Grace Hopper"},
	})

	task, err := NewMentorAssignedTask("u1", "u2")
	require.NoError(t, err)

	require.NoError(t, j.handleMentorAssignedTask(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, sentEmail{
		template: "mentor_assigned",
		to:       "ada@x.com",
		args:     []string{"Ada", "Grace Hopper", "grace@x.com"},
	}, mailer.sent[0])
}

func TestHandleMentorAssignedTaskUnknownMentor(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer, fakeContacts{
		"u1": {ID: "u1", Email: "ada@x.com"},
	})

	task, err := NewMentorAssignedTask("u1", "ghost")
	require.NoError(t, err)

	err = j.handleMentorAssignedTask(context.Background(), task)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, mailer.sent)
}

func TestHandleMentorAssignedTaskUnknownMenteeSkipsRetry(t *testing.T) {
	mailer := &fakeMailer{}
	j := newTestJobService(mailer, fakeContacts{
		"m1": {ID: "m1", Email: "grace@x.com"},
	})

	task, err := NewMentorAssignedTask("ghost", "m1")
	require.NoError(t, err)

	err = j.handleMentorAssignedTask(context.Background(), task)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, mailer.sent)
}

type failingContacts struct{ err error }

func (f failingContacts) GetContact(context.Context, string) (repository.Contact, error) {
	return repository.Contact{}, f.err
}

func TestHandleMentorAssignedTaskStoreErrorRetries(t *testing.T) {
	storeErr := errors.New("connection refused")
	j := newTestJobService(&fakeMailer{}, failingContacts{err: storeErr})

	task, err := NewMentorAssignedTask("u1", "u2")
	require.NoError(t, err)

	err = j.handleMentorAssignedTask(context.Background(), task)
	assert.ErrorIs(t, err, storeErr)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleMentorAssignedTaskBadPayload(t *testing.T) {
	j := newTestJobService(&fakeMailer{}, fakeContacts{})
	assert.Error(t, j.handleMentorAssignedTask(context.Background(), asynq.NewTask(TaskMentorAssigned, []byte("{"))))
}
