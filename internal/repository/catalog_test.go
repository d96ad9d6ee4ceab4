package repository

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/deppfellow/mentorship/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

// highestPlaceholder returns the largest $n in sql, or 0.
func highestPlaceholder(sql string) int {
	highest := 0
	for _, m := range placeholderRe.FindAllStringSubmatch(sql, -1) {
		var n int
		fmt.Sscanf(m[1], "%d", &n)
		if n > highest {
			highest = n
		}
	}
	return highest
}

func sampleRequests() map[string]Request {
	return map[string]Request{
		"init":          &Init{},
		"wipe":          &Wipe{},
		"addUser":       &AddUser{ID: "u1", FirstName: "Ada", LastName: "Lovelace", DisplayName: "ada", Email: "ada@x.com"},
		"addMentee":     &AddMentee{ID: "u1", OrgID: "o1", Skills: Skills{"go"}, Timezone: "UTC"},
		"addMentor":     &AddMentor{ID: "u2", OrgID: "o1", Skills: Skills{"sql", "go"}, Timezone: "Europe/Paris"},
		"addOrg":        &AddOrg{ID: "o1", OrgName: "Acme", Email: "a@x.com"},
		"getMentee":     &GetMentee{ID: "u1"},
		"getMentor":     &GetMentor{ID: "u2"},
		"getOrg":        &GetOrg{ID: "o1"},
		"getOrgMentees": &GetOrgMentees{ID: "o1"},
		"getOrgMentors": &GetOrgMentors{ID: "o1"},
		"setMentor":     &SetMentor{MentorID: "u2", MenteeID: "u1"},
		"setSkills":     &SetSkills{ID: "u1", Skills: Skills{"go"}},
	}
}

func TestStatementPlaceholdersMatchArgs(t *testing.T) {
	for name, req := range sampleRequests() {
		t.Run(name, func(t *testing.T) {
			stmt := req.Statement()
			assert.Equal(t, highestPlaceholder(stmt.SQL), len(stmt.Args))
			if stmt.Script {
				assert.Empty(t, stmt.Args)
			}
		})
	}
}

func TestStatementIsPure(t *testing.T) {
	req := &AddOrg{ID: "o1", OrgName: "Acme", Email: "a@x.com"}
	assert.Equal(t, req.Statement(), req.Statement())
}

func TestAddOrgStatement(t *testing.T) {
	stmt := AddOrg{ID: "o1", OrgName: "Acme", Email: "a@x.com"}.Statement()

	assert.Equal(t, "INSERT INTO org (id, org_name, email) VALUES ($1,$2,$3)", stmt.SQL)
	assert.Equal(t, []any{"o1", "Acme", "a@x.com"}, stmt.Args)
	assert.False(t, stmt.Script)
}

func TestAddUserAlwaysRegistersMentee(t *testing.T) {
	stmt := AddUser{ID: "u1", FirstName: "A", LastName: "B", DisplayName: "ab", Email: "a@x.com"}.Statement()

	assert.Contains(t, stmt.SQL, "'"+UserTypeMentee+"'")
	assert.Len(t, stmt.Args, 5)
	for _, arg := range stmt.Args {
		assert.NotEqual(t, "mentor", arg)
	}
}

func TestSetMentorArgumentOrder(t *testing.T) {
	stmt := SetMentor{MentorID: "m", MenteeID: "e"}.Statement()

	assert.Contains(t, stmt.SQL, "SET mentor_id = $1")
	assert.Contains(t, stmt.SQL, "WHERE id = $2")
	assert.Contains(t, stmt.SQL, "RETURNING id")
	assert.Equal(t, []any{"m", "e"}, stmt.Args)
}

func TestSkillsBoundAsTextArray(t *testing.T) {
	stmt := AddMentee{ID: "u1", OrgID: "o1", Skills: Skills{"go", "sql"}, Timezone: "UTC"}.Statement()
	assert.Equal(t, []string{"go", "sql"}, stmt.Args[2])

	stmt = SetSkills{ID: "u1", Skills: Skills{"rust"}}.Statement()
	assert.Equal(t, []any{[]string{"rust"}, "u1"}, stmt.Args)
}

func TestInitRunsSchemaScript(t *testing.T) {
	stmt := Init{}.Statement()

	assert.True(t, stmt.Script)
	assert.Equal(t, database.SchemaScript, stmt.SQL)
	for _, table := range database.Tables {
		assert.Contains(t, stmt.SQL, "CREATE TABLE IF NOT EXISTS "+table)
	}
}

func TestWipeDropsEveryTable(t *testing.T) {
	stmt := Wipe{}.Statement()

	assert.True(t, stmt.Script)
	for _, table := range database.Tables {
		assert.Contains(t, stmt.SQL, "DROP TABLE "+table+";")
	}
	// Dependents go first.
	assert.Less(t, strings.Index(stmt.SQL, "mentee"), strings.Index(stmt.SQL, "users"))
	assert.Less(t, strings.Index(stmt.SQL, "users"), strings.Index(stmt.SQL, "org"))
}

func TestWipeFollowsSchemaTables(t *testing.T) {
	assert.Equal(t, "DROP TABLE a;\nDROP TABLE b;", dropTables([]string{"a", "b"}))
	assert.Equal(t, dropTables(database.Tables), Wipe{}.Statement().SQL)
	assert.Equal(t, strings.Count(Wipe{}.Statement().SQL, "DROP TABLE"), len(database.Tables))
}

func TestEveryReqTypeHasExactlyOneEntry(t *testing.T) {
	seen := make(map[string]ReqType, len(reqTypes))
	for _, reqType := range reqTypes {
		req, ok := newRequest(reqType)
		require.True(t, ok, "reqType %q has no catalog entry", reqType)

		kind := fmt.Sprintf("%T", req)
		prev, dup := seen[kind]
		require.False(t, dup, "%q and %q share %s", prev, reqType, kind)
		seen[kind] = reqType
	}
	assert.Len(t, seen, 12)
}
