package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/mentorship/internal/database"
)

// Runner executes one statement. *database.Executor satisfies it.
type Runner interface {
	Run(ctx context.Context, stmt database.Statement) ([]map[string]any, error)
}

// Repositories is a container for all repository instances.
type Repositories struct {
	User *UserRepository
}

// NewRepositories constructs the repository container on top of the
// database executor.
func NewRepositories(db *database.Database) *Repositories {
	return &Repositories{
		User: NewUserRepository(db.Executor),
	}
}

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// Contact is what notification emails need to know about a user.
type Contact struct {
	ID          string
	Email       string
	FirstName   string
	DisplayName string
}

// UserRepository holds the per-user lookups outside the request catalog:
// the profile page's three reads and the contact read used by notifications.
type UserRepository struct {
	runner Runner
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(runner Runner) *UserRepository {
	return &UserRepository{runner: runner}
}

const (
	getUserTypeSQL = `SELECT userType AS usertype
FROM users
WHERE id = $1`

	// users.skills is set by /api/user/set-skills; the role table keeps the
	// skills given at registration as role_skills.
	getMenteeProfileSQL = `SELECT users.id, users.firstName AS firstname, users.lastName AS lastname,
    users.displayName AS displayname, users.email, users.userType AS usertype,
    users.skills AS skills, mentee.skills AS role_skills,
    mentee.org_id, mentee.timezone, mentee.mentor_id
FROM users
JOIN mentee ON mentee.id = users.id
WHERE users.id = $1`

	getMentorProfileSQL = `SELECT users.id, users.firstName AS firstname, users.lastName AS lastname,
    users.displayName AS displayname, users.email, users.userType AS usertype,
    users.skills AS skills, mentor.skills AS role_skills,
    mentor.org_id, mentor.timezone
FROM users
JOIN mentor ON mentor.id = users.id
WHERE users.id = $1`

	getMemberOrgSQL = `SELECT org.*
FROM org
JOIN (
    SELECT id, org_id FROM mentee
    UNION ALL
    SELECT id, org_id FROM mentor
) AS member ON member.org_id = org.id
WHERE member.id = $1
LIMIT 1`

	getContactSQL = `SELECT id, email, firstName AS firstname, displayName AS displayname
FROM users
WHERE id = $1`
)

// GetUserType returns the userType column ("mentee" or "mentor") of a user.
func (r *UserRepository) GetUserType(ctx context.Context, userID string) (string, error) {
	row, err := r.first(ctx, database.Statement{SQL: getUserTypeSQL, Args: []any{userID}}, "user", userID)
	if err != nil {
		return "", err
	}
	return stringValue(row["usertype"]), nil
}

// GetUser returns the user joined with its mentee or mentor row. The
// projection is explicit so role columns never shadow users columns.
func (r *UserRepository) GetUser(ctx context.Context, userID, userType string) (map[string]any, error) {
	var sql string
	switch userType {
	case "mentor":
		sql = getMentorProfileSQL
	case UserTypeMentee:
		sql = getMenteeProfileSQL
	default:
		return nil, fmt.Errorf("unknown user type %q for user %s", userType, userID)
	}
	return r.first(ctx, database.Statement{SQL: sql, Args: []any{userID}}, userType, userID)
}

// GetOrg returns the org the user belongs to as a mentee or mentor.
func (r *UserRepository) GetOrg(ctx context.Context, userID string) (map[string]any, error) {
	return r.first(ctx, database.Statement{SQL: getMemberOrgSQL, Args: []any{userID}}, "org of user", userID)
}

// GetContact returns the email and names of a user.
func (r *UserRepository) GetContact(ctx context.Context, userID string) (Contact, error) {
	row, err := r.first(ctx, database.Statement{SQL: getContactSQL, Args: []any{userID}}, "user", userID)
	if err != nil {
		return Contact{}, err
	}
	return Contact{
		ID:          stringValue(row["id"]),
		Email:       stringValue(row["email"]),
		FirstName:   stringValue(row["firstname"]),
		DisplayName: stringValue(row["displayname"]),
	}, nil
}

func (r *UserRepository) first(ctx context.Context, stmt database.Statement, entity, id string) (map[string]any, error) {
	rows, err := r.runner.Run(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %s: %w", entity, id, ErrNotFound)
	}
	return rows[0], nil
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
