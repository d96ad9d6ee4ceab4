package service

import "context"

// ProfileLookup is what the profile page reads. *repository.UserRepository
// implements it.
type ProfileLookup interface {
	GetUserType(ctx context.Context, userID string) (string, error)
	GetUser(ctx context.Context, userID, userType string) (map[string]any, error)
	GetOrg(ctx context.Context, userID string) (map[string]any, error)
}

// Profile is everything the profile card shows.
type Profile struct {
	UserID   string
	UserType string
	User     map[string]any
	Org      map[string]any
}

type ProfileService struct {
	users ProfileLookup
}

func NewProfileService(users ProfileLookup) *ProfileService {
	return &ProfileService{users: users}
}

// Load runs the three lookups in order; each one needs the previous to
// have succeeded.
func (p *ProfileService) Load(ctx context.Context, userID string) (*Profile, error) {
	userType, err := p.users.GetUserType(ctx, userID)
	if err != nil {
		return nil, err
	}

	user, err := p.users.GetUser(ctx, userID, userType)
	if err != nil {
		return nil, err
	}

	org, err := p.users.GetOrg(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		UserID:   userID,
		UserType: userType,
		User:     user,
		Org:      org,
	}, nil
}
