package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileLookup struct {
	userType string
	typeErr  error
	orgErr   error
	calls    []string
}

func (f *fakeProfileLookup) GetUserType(_ context.Context, _ string) (string, error) {
	f.calls = append(f.calls, "type")
	return f.userType, f.typeErr
}

func (f *fakeProfileLookup) GetUser(_ context.Context, userID, userType string) (map[string]any, error) {
	f.calls = append(f.calls, "user:"+userType)
	return map[string]any{"id": userID}, nil
}

func (f *fakeProfileLookup) GetOrg(_ context.Context, _ string) (map[string]any, error) {
	f.calls = append(f.calls, "org")
	if f.orgErr != nil {
		return nil, f.orgErr
	}
	return map[string]any{"org_name": "Acme"}, nil
}

func TestProfileLoadRunsLookupsInOrder(t *testing.T) {
	lookup := &fakeProfileLookup{userType: "mentor"}

	profile, err := NewProfileService(lookup).Load(context.Background(), "u2")
	require.NoError(t, err)

	assert.Equal(t, []string{"type", "user:mentor", "org"}, lookup.calls)
	assert.Equal(t, "mentor", profile.UserType)
	assert.Equal(t, "u2", profile.User["id"])
	assert.Equal(t, "Acme", profile.Org["org_name"])
}

func TestProfileLoadStopsAtFirstFailure(t *testing.T) {
	lookup := &fakeProfileLookup{typeErr: errors.New("user u9: not found")}

	_, err := NewProfileService(lookup).Load(context.Background(), "u9")
	assert.Error(t, err)
	assert.Equal(t, []string{"type"}, lookup.calls)
}

func TestProfileLoadOrgFailure(t *testing.T) {
	lookup := &fakeProfileLookup{userType: "mentee", orgErr: errors.New("boom")}

	profile, err := NewProfileService(lookup).Load(context.Background(), "u1")
	assert.Error(t, err)
	assert.Nil(t, profile)
}
