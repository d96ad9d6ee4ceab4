package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/deppfellow/mentorship/internal/middleware"
	"github.com/deppfellow/mentorship/internal/server"
	"github.com/deppfellow/mentorship/internal/service"
	"github.com/labstack/echo/v4"
)

// ProfileLoader loads the signed-in user's profile.
// *service.ProfileService implements it.
type ProfileLoader interface {
	Load(ctx context.Context, userID string) (*service.Profile, error)
}

type ProfileHandler struct {
	Handler
	profiles ProfileLoader
}

func NewProfileHandler(s *server.Server, profiles ProfileLoader) *ProfileHandler {
	return &ProfileHandler{
		Handler:  NewHandler(s),
		profiles: profiles,
	}
}

// ProfileView is the data behind profile.html.
type ProfileView struct {
	DisplayName string
	Email       string
	UserType    string
	Timezone    string
	Skills      []string
	OrgName     string
}

// ShowProfile serves GET /app/profile. Anonymous callers, and callers whose
// profile cannot be loaded, get the not authenticated card with 200.
func (h *ProfileHandler) ShowProfile(c echo.Context) error {
	logger := middleware.GetLogger(c)

	userID := middleware.GetUserID(c)
	if userID == "" {
		return h.notAuthenticated(c)
	}

	profile, err := h.profiles.Load(c.Request().Context(), userID)
	if err != nil {
		logger.Warn().Err(err).Msg("could not load profile, rendering as anonymous")
		return h.notAuthenticated(c)
	}

	return c.Render(http.StatusOK, "profile.html", newProfileView(profile))
}

func (h *ProfileHandler) notAuthenticated(c echo.Context) error {
	return c.Render(http.StatusOK, "not_authenticated.html", nil)
}

func newProfileView(p *service.Profile) ProfileView {
	view := ProfileView{
		DisplayName: text(p.User["displayname"]),
		Email:       text(p.User["email"]),
		UserType:    p.UserType,
		Timezone:    text(p.User["timezone"]),
		Skills:      textList(p.User["skills"]),
		OrgName:     text(p.Org["org_name"]),
	}
	if view.DisplayName == "" {
		view.DisplayName = p.UserID
	}
	if len(view.Skills) == 0 {
		view.Skills = textList(p.User["role_skills"])
	}
	return view
}

func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// textList reads a TEXT[] column, which pgx returns as []any when scanning
// into a map.
func textList(v any) []string {
	switch v := v.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := text(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
