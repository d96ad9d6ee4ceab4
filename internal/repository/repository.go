// Package repository handles all interactions with the database.
//
// It contains the request catalog: one typed request per reqType, each
// mapping its fields to a SQL statement template and the ordered parameters
// for its placeholders. It also holds the profile lookups the profile page
// composes. Nothing here performs I/O except ProfileRepository, which runs
// statements through the database Executor.
package repository
