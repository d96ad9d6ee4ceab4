package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/mentorship/internal/middleware"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/deppfellow/mentorship/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileLoader struct {
	profile *service.Profile
	err     error
	loaded  []string
}

func (f *fakeProfileLoader) Load(_ context.Context, userID string) (*service.Profile, error) {
	f.loaded = append(f.loaded, userID)
	return f.profile, f.err
}

func showProfile(t *testing.T, loader *fakeProfileLoader, userID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Renderer = NewRenderer()

	var logs bytes.Buffer
	c, rec := newTestContext(e, httptest.NewRequest(http.MethodGet, "/app/profile", nil), &logs)
	if userID != "" {
		c.Set(middleware.UserIDKey, userID)
	}

	require.NoError(t, NewProfileHandler(&server.Server{}, loader).ShowProfile(c))
	return rec
}

func TestShowProfileAnonymous(t *testing.T) {
	loader := &fakeProfileLoader{}
	rec := showProfile(t, loader, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authenticated")
	assert.Empty(t, loader.loaded)
}

func TestShowProfileLoadFailureDegrades(t *testing.T) {
	rec := showProfile(t, &fakeProfileLoader{err: errors.New("user u1: not found")}, "u1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authenticated")
}

func TestShowProfile(t *testing.T) {
	loader := &fakeProfileLoader{profile: &service.Profile{
		UserID:   "u2",
		UserType: "mentor",
		User: map[string]any{
			"displayname": "Grace Hopper",
			"email":       "grace@x.com",
			"timezone":    "America/New_York",
			"skills":      []any{"cobol", "compilers"},
		},
		Org: map[string]any{"org_name": "Acme & Co"},
	}}

	rec := showProfile(t, loader, "u2")
	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"u2"}, loader.loaded)
	assert.Contains(t, body, "Grace Hopper")
	assert.Contains(t, body, "Acme &amp; Co")
	assert.Contains(t, body, "<span>compilers</span>")
	assert.NotContains(t, body, "Not authenticated")
}

func TestNewProfileViewFallsBackToUserID(t *testing.T) {
	view := newProfileView(&service.Profile{UserID: "u7", UserType: "mentee", User: map[string]any{}, Org: map[string]any{}})

	assert.Equal(t, "u7", view.DisplayName)
	assert.Nil(t, view.Skills)
}

func TestNewProfileViewSkills(t *testing.T) {
	user := map[string]any{
		"skills":      []any{"rust"},
		"role_skills": []any{"go"},
	}
	view := newProfileView(&service.Profile{UserID: "u1", User: user})
	assert.Equal(t, []string{"rust"}, view.Skills)

	user["skills"] = nil
	view = newProfileView(&service.Profile{UserID: "u1", User: user})
	assert.Equal(t, []string{"go"}, view.Skills)
}
