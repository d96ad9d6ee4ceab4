package repository

import (
	"strings"

	"github.com/deppfellow/mentorship/internal/database"
	"github.com/deppfellow/mentorship/internal/validation"
)

// ReqType is the discriminator selecting which operation /api/db performs.
type ReqType string

const (
	ReqInit          ReqType = "init"
	ReqWipe          ReqType = "wipe"
	ReqAddUser       ReqType = "addUser"
	ReqAddMentee     ReqType = "addMentee"
	ReqAddMentor     ReqType = "addMentor"
	ReqAddOrg        ReqType = "addOrg"
	ReqGetMentee     ReqType = "getMentee"
	ReqGetMentor     ReqType = "getMentor"
	ReqGetOrg        ReqType = "getOrg"
	ReqGetOrgMentees ReqType = "getOrgMentees"
	ReqGetOrgMentors ReqType = "getOrgMentors"
	ReqSetMentor     ReqType = "setMentor"
)

// reqTypes lists every dispatchable request type.
var reqTypes = []ReqType{
	ReqInit, ReqWipe,
	ReqAddUser, ReqAddMentee, ReqAddMentor, ReqAddOrg,
	ReqGetMentee, ReqGetMentor, ReqGetOrg, ReqGetOrgMentees, ReqGetOrgMentors,
	ReqSetMentor,
}

// UserTypeMentee is the only user type addUser registers.
const UserTypeMentee = "mentee"

// Request is one catalog entry's typed payload.
//
// The set of implementations is closed: the unexported method keeps other
// packages from adding variants, and newRequest below must name every
// ReqType.
type Request interface {
	validation.Validatable

	// Statement builds the SQL template and its ordered parameters.
	// It is pure: no I/O, no validation.
	Statement() database.Statement

	catalogEntry()
}

// Init creates the schema by running the embedded bootstrap script.
type Init struct{}

// Wipe drops all four tables unconditionally.
type Wipe struct{}

// AddUser inserts a users row. userType is always 'mentee': mentor users
// cannot be registered through this request.
type AddUser struct {
	ID          string `json:"id" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}

// AddMentee inserts a mentee row for an existing user.
type AddMentee struct {
	ID       string `json:"id" validate:"required"`
	OrgID    string `json:"org_id" validate:"required"`
	Skills   Skills `json:"skills" validate:"required"`
	Timezone string `json:"timezone" validate:"required"`
}

// AddMentor inserts a mentor row for an existing user.
type AddMentor struct {
	ID       string `json:"id" validate:"required"`
	OrgID    string `json:"org_id" validate:"required"`
	Skills   Skills `json:"skills" validate:"required"`
	Timezone string `json:"timezone" validate:"required"`
}

// AddOrg inserts an org row.
type AddOrg struct {
	ID      string `json:"id" validate:"required"`
	OrgName string `json:"org_name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
}

// GetMentee joins users and mentee on the user id.
type GetMentee struct {
	ID string `json:"id" validate:"required"`
}

// GetMentor joins users and mentor on the user id.
type GetMentor struct {
	ID string `json:"id" validate:"required"`
}

// GetOrg selects an org by id.
type GetOrg struct {
	ID string `json:"id" validate:"required"`
}

// GetOrgMentees lists id, displayName and email of an org's mentees.
// ID is the org id.
type GetOrgMentees struct {
	ID string `json:"id" validate:"required"`
}

// GetOrgMentors lists id, displayName and email of an org's mentors.
// ID is the org id.
type GetOrgMentors struct {
	ID string `json:"id" validate:"required"`
}

// SetMentor assigns a mentor to a mentee.
type SetMentor struct {
	MentorID string `json:"mentor_id" validate:"required"`
	MenteeID string `json:"mentee_id" validate:"required"`
}

// SetSkills replaces a user's skills. It backs /api/user/set-skills and is
// not reachable through a reqType.
type SetSkills struct {
	ID     string `json:"id" validate:"required"`
	Skills Skills `json:"skills" validate:"required"`
}

// wipeSQL drops every schema table, dependents first.
var wipeSQL = dropTables(database.Tables)

func dropTables(tables []string) string {
	stmts := make([]string, len(tables))
	for i, table := range tables {
		stmts[i] = "DROP TABLE " + table + ";"
	}
	return strings.Join(stmts, "\n")
}

const (
	addUserSQL = `INSERT INTO users (id, firstName, lastName, displayName, email, userType)
VALUES ($1, $2, $3, $4, $5, 'mentee')`

	addMenteeSQL = `INSERT INTO mentee (id, org_id, skills, timezone)
VALUES ($1, $2, $3, $4)`

	addMentorSQL = `INSERT INTO mentor (id, org_id, skills, timezone)
VALUES ($1, $2, $3, $4)`

	addOrgSQL = `INSERT INTO org (id, org_name, email) VALUES ($1,$2,$3)`

	getMenteeSQL = `SELECT *
FROM users, mentee
WHERE users.id = $1 AND users.id = mentee.id`

	getMentorSQL = `SELECT *
FROM users, mentor
WHERE users.id = $1 AND users.id = mentor.id`

	getOrgSQL = `SELECT *
FROM org
WHERE org.id = $1`

	getOrgMenteesSQL = `SELECT users.id, users.displayName, users.email
FROM users, mentee
WHERE users.id = mentee.id AND mentee.org_id = $1`

	getOrgMentorsSQL = `SELECT users.id, users.displayName, users.email
FROM users, mentor
WHERE users.id = mentor.id AND mentor.org_id = $1`

	setMentorSQL = `UPDATE mentee
SET mentor_id = $1
WHERE id = $2
RETURNING id`

	setSkillsSQL = `UPDATE users
SET skills = $1
WHERE id = $2`
)

func (Init) Statement() database.Statement {
	return database.Statement{SQL: database.SchemaScript, Script: true}
}

func (Wipe) Statement() database.Statement {
	return database.Statement{SQL: wipeSQL, Script: true}
}

func (r AddUser) Statement() database.Statement {
	return database.Statement{
		SQL:  addUserSQL,
		Args: []any{r.ID, r.FirstName, r.LastName, r.DisplayName, r.Email},
	}
}

func (r AddMentee) Statement() database.Statement {
	return database.Statement{
		SQL:  addMenteeSQL,
		Args: []any{r.ID, r.OrgID, []string(r.Skills), r.Timezone},
	}
}

func (r AddMentor) Statement() database.Statement {
	return database.Statement{
		SQL:  addMentorSQL,
		Args: []any{r.ID, r.OrgID, []string(r.Skills), r.Timezone},
	}
}

func (r AddOrg) Statement() database.Statement {
	return database.Statement{SQL: addOrgSQL, Args: []any{r.ID, r.OrgName, r.Email}}
}

func (r GetMentee) Statement() database.Statement {
	return database.Statement{SQL: getMenteeSQL, Args: []any{r.ID}}
}

func (r GetMentor) Statement() database.Statement {
	return database.Statement{SQL: getMentorSQL, Args: []any{r.ID}}
}

func (r GetOrg) Statement() database.Statement {
	return database.Statement{SQL: getOrgSQL, Args: []any{r.ID}}
}

func (r GetOrgMentees) Statement() database.Statement {
	return database.Statement{SQL: getOrgMenteesSQL, Args: []any{r.ID}}
}

func (r GetOrgMentors) Statement() database.Statement {
	return database.Statement{SQL: getOrgMentorsSQL, Args: []any{r.ID}}
}

func (r SetMentor) Statement() database.Statement {
	return database.Statement{SQL: setMentorSQL, Args: []any{r.MentorID, r.MenteeID}}
}

func (r SetSkills) Statement() database.Statement {
	return database.Statement{SQL: setSkillsSQL, Args: []any{[]string(r.Skills), r.ID}}
}

func (Init) Validate() error             { return nil }
func (Wipe) Validate() error             { return nil }
func (r *AddUser) Validate() error       { return validation.Struct(r) }
func (r *AddMentee) Validate() error     { return validation.Struct(r) }
func (r *AddMentor) Validate() error     { return validation.Struct(r) }
func (r *AddOrg) Validate() error        { return validation.Struct(r) }
func (r *GetMentee) Validate() error     { return validation.Struct(r) }
func (r *GetMentor) Validate() error     { return validation.Struct(r) }
func (r *GetOrg) Validate() error        { return validation.Struct(r) }
func (r *GetOrgMentees) Validate() error { return validation.Struct(r) }
func (r *GetOrgMentors) Validate() error { return validation.Struct(r) }
func (r *SetMentor) Validate() error     { return validation.Struct(r) }
func (r *SetSkills) Validate() error     { return validation.Struct(r) }

func (Init) catalogEntry()          {}
func (Wipe) catalogEntry()          {}
func (AddUser) catalogEntry()       {}
func (AddMentee) catalogEntry()     {}
func (AddMentor) catalogEntry()     {}
func (AddOrg) catalogEntry()        {}
func (GetMentee) catalogEntry()     {}
func (GetMentor) catalogEntry()     {}
func (GetOrg) catalogEntry()        {}
func (GetOrgMentees) catalogEntry() {}
func (GetOrgMentors) catalogEntry() {}
func (SetMentor) catalogEntry()     {}
func (SetSkills) catalogEntry()     {}
