// Package postgres persists ledger snapshots and user accounts.
package postgres

import (
	"context"
	"fmt"

	"receipt-ledger/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Pool is the subset of pgxpool.Pool the stores use. pgxmock satisfies it,
// so store tests run without a database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// NewPool creates a PostgreSQL connection pool using pgx.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("dbname", cfg.DBName).
		Int32("max_conns", cfg.MaxConns).
		Msg("postgresql connection pool established")

	return pool, nil
}

// EnsureSchema creates the ledger tables when they do not exist yet. The
// service owns its schema; there is no external migration step.
func EnsureSchema(ctx context.Context, pool Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS receipts (
			id UUID PRIMARY KEY,
			merchant TEXT NOT NULL,
			location TEXT,
			amount TEXT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			category TEXT NOT NULL,
			payment TEXT NOT NULL,
			currency TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			items JSONB NOT NULL DEFAULT '[]',
			notes TEXT,
			added_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS receipts_added_at_idx ON receipts (added_at DESC)`,
		`CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			price TEXT NOT NULL,
			category TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS merchant_profile (
			id UUID PRIMARY KEY,
			merchant_name TEXT NOT NULL,
			location TEXT,
			address TEXT,
			logo BYTEA,
			default_currency TEXT NOT NULL,
			green_tags TEXT[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS challenge_progress (
			challenge_id TEXT PRIMARY KEY,
			current_count INT NOT NULL,
			is_completed BOOLEAN NOT NULL,
			last_updated TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}
