package service

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/mentorship/internal/database"
	"github.com/deppfellow/mentorship/internal/errs"
	"github.com/deppfellow/mentorship/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	rows  []map[string]any
	err   error
	calls []database.Statement
}

func (f *fakeRunner) Run(_ context.Context, stmt database.Statement) ([]map[string]any, error) {
	f.calls = append(f.calls, stmt)
	if f.err != nil {
		return nil, f.err
	}
	if f.rows == nil {
		return []map[string]any{}, nil
	}
	return f.rows, nil
}

type fakeNotifier struct {
	welcomes []string
	assigned [][2]string
	err      error
}

func (f *fakeNotifier) EnqueueWelcomeEmail(_ context.Context, to, _ string) error {
	f.welcomes = append(f.welcomes, to)
	return f.err
}

func (f *fakeNotifier) EnqueueMentorAssigned(_ context.Context, menteeID, mentorID string) error {
	f.assigned = append(f.assigned, [2]string{menteeID, mentorID})
	return f.err
}

func payload(t *testing.T, body string) repository.Payload {
	t.Helper()
	p, err := repository.PayloadFromJSON([]byte(body))
	require.NoError(t, err)
	return p
}

func newTestDBService(runner repository.Runner, notifier Notifier) *DBService {
	return newDBService(runner, notifier)
}

func TestDispatchRunsExactlyOneStatement(t *testing.T) {
	runner := &fakeRunner{rows: []map[string]any{{"id": "o1", "org_name": "Acme"}}}
	svc := newTestDBService(runner, nil)

	rows, err := svc.Dispatch(context.Background(), payload(t, `{"reqType":"getOrg","id":"o1"}`))
	require.NoError(t, err)
	assert.Equal(t, runner.rows, rows)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []any{"o1"}, runner.calls[0].Args)
}

func TestDispatchUnknownTypeRunsNothing(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestDBService(runner, nil)

	_, err := svc.Dispatch(context.Background(), payload(t, `{"reqType":"bogus"}`))
	assert.ErrorIs(t, err, repository.ErrUnknownRequestType)
	assert.Empty(t, runner.calls)
}

func TestDispatchInvalidPayloadRunsNothing(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestDBService(runner, nil)

	_, err := svc.Dispatch(context.Background(), payload(t, `{"reqType":"setMentor","mentor_id":"u2"}`))
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, errs.CodeInvalidPayload, httpErr.Code)
	assert.Empty(t, runner.calls)
}

func TestDispatchReturnsStoreErrorUntouched(t *testing.T) {
	storeErr := errors.New(`duplicate key value violates unique constraint "org_pkey"`)
	notifier := &fakeNotifier{}
	svc := newTestDBService(&fakeRunner{err: storeErr}, notifier)

	_, err := svc.Dispatch(context.Background(),
		payload(t, `{"reqType":"addUser","id":"u1","firstName":"A","lastName":"B","displayName":"ab","email":"a@x.com"}`))
	assert.Same(t, storeErr, err)
	assert.Empty(t, notifier.welcomes)
}

func TestDispatchNotifies(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestDBService(&fakeRunner{rows: []map[string]any{{"id": "u1"}}}, notifier)
	ctx := context.Background()

	_, err := svc.Dispatch(ctx,
		payload(t, `{"reqType":"addUser","id":"u1","firstName":"A","lastName":"B","displayName":"ab","email":"a@x.com"}`))
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, payload(t, `{"reqType":"setMentor","mentor_id":"u2","mentee_id":"u1"}`))
	require.NoError(t, err)
	_, err = svc.Dispatch(ctx, payload(t, `{"reqType":"getOrg","id":"o1"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a@x.com"}, notifier.welcomes)
	assert.Equal(t, [][2]string{{"u1", "u2"}}, notifier.assigned)
}

func TestDispatchIgnoresNotifierFailure(t *testing.T) {
	svc := newTestDBService(&fakeRunner{rows: []map[string]any{{"id": "u1"}}}, &fakeNotifier{err: errors.New("redis down")})

	rows, err := svc.Dispatch(context.Background(), payload(t, `{"reqType":"setMentor","mentor_id":"u2","mentee_id":"u1"}`))
	require.NoError(t, err)
	assert.NotNil(t, rows)
}

func TestDispatchSetMentorWithoutMenteeQueuesNothing(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := newTestDBService(&fakeRunner{}, notifier)

	rows, err := svc.Dispatch(context.Background(),
		payload(t, `{"reqType":"setMentor","mentor_id":"m1","mentee_id":"ghost"}`))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
	assert.Empty(t, notifier.assigned)
}

func TestSetSkills(t *testing.T) {
	runner := &fakeRunner{}
	svc := newTestDBService(runner, nil)

	_, err := svc.SetSkills(context.Background(), &repository.SetSkills{ID: "u1", Skills: repository.Skills{"go"}})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []any{[]string{"go"}, "u1"}, runner.calls[0].Args)
}
