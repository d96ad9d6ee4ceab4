package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Statement is one SQL statement template with positional placeholders
// ($1, $2, ...) and the ordered parameters that fill them.
//
// Script statements take no parameters and may hold several SQL commands;
// they run over the simple protocol and produce no rows.
type Statement struct {
	SQL    string
	Args   []any
	Script bool
}

// Conn is the part of a pooled connection the executor uses.
// *pgxpool.Conn satisfies it.
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Release()
}

// Pool hands out connections. Every acquired Conn must be released.
type Pool interface {
	Acquire(ctx context.Context) (Conn, error)
}

type pgxPool struct {
	pool *pgxpool.Pool
}

// NewPool adapts a pgxpool.Pool to Pool.
func NewPool(pool *pgxpool.Pool) Pool {
	return pgxPool{pool: pool}
}

func (p pgxPool) Acquire(ctx context.Context) (Conn, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// AcquireError reports a failure to obtain a connection from the pool.
// Its message is the pool's error text, unchanged.
type AcquireError struct {
	Err error
}

func (e *AcquireError) Error() string { return e.Err.Error() }

func (e *AcquireError) Unwrap() error { return e.Err }

// Executor runs one statement per call on its own pooled connection.
//
// The connection is released only after the result set has been fully read
// (or the statement has failed), so a connection never goes back to the pool
// while its query is still in flight.
type Executor struct {
	pool          Pool
	log           *zerolog.Logger
	slowThreshold time.Duration
}

// NewExecutor builds an Executor. A zero slowThreshold disables slow
// statement logging.
func NewExecutor(pool Pool, logger *zerolog.Logger, slowThreshold time.Duration) *Executor {
	return &Executor{
		pool:          pool,
		log:           logger,
		slowThreshold: slowThreshold,
	}
}

// Run acquires a connection, executes stmt and returns its rows as column
// name -> value maps. Rows is never nil on success.
//
// Store errors are returned untouched so their text can be forwarded to the
// caller verbatim.
func (e *Executor) Run(ctx context.Context, stmt Statement) ([]map[string]any, error) {
	start := time.Now()

	conn, err := e.pool.Acquire(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("failed to acquire database connection")
		return nil, &AcquireError{Err: err}
	}
	defer conn.Release()

	rows, err := e.run(ctx, conn, stmt)

	elapsed := time.Since(start)
	if e.slowThreshold > 0 && elapsed > e.slowThreshold {
		e.log.Warn().
			Dur("duration", elapsed).
			Dur("threshold", e.slowThreshold).
			Int("params", len(stmt.Args)).
			Msg("slow statement")
	}

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (e *Executor) run(ctx context.Context, conn Conn, stmt Statement) ([]map[string]any, error) {
	if stmt.Script {
		// No arguments: pgx uses the simple protocol, which accepts
		// multiple commands in one string.
		if _, err := conn.Exec(ctx, stmt.SQL); err != nil {
			return nil, err
		}
		return []map[string]any{}, nil
	}

	rows, err := conn.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, err
	}

	// CollectRows reads every row and closes rows before returning.
	result, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []map[string]any{}
	}
	return result, nil
}
