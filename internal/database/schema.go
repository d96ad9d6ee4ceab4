package database

import (
	_ "embed"
)

// SchemaScript is the schema bootstrap script executed verbatim by the
// `init` request type. It creates the four tables (users, mentee, mentor,
// org) and is idempotent.
//
// The script is embedded at compile time, so the binary does not depend on
// the working directory at runtime.
//
//go:embed schema/db_init.sql
var SchemaScript string

// Tables lists every table the schema script creates, in drop order
// (dependents first).
var Tables = []string{"mentee", "mentor", "users", "org"}
