// Package db owns the PostgreSQL connection and schema migrations.
package db

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Connect opens a pgx-backed sqlx handle and verifies connectivity before
// returning. Pool sizing is tunable through DB_MAX_OPEN, DB_MAX_IDLE and
// DB_MAX_LIFETIME (seconds).
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse DSN: %w", err)
	}

	// Fail fast on startup if PG is unreachable
	cfg.ConnectTimeout = 5 * time.Second

	// pgx stdlib adapter wrapped in sqlx for struct scanning
	db := sqlx.NewDb(stdlib.OpenDB(*cfg), "pgx")

	db.SetMaxOpenConns(intenv("DB_MAX_OPEN", 25))
	db.SetMaxIdleConns(intenv("DB_MAX_IDLE", 25))
	db.SetConnMaxLifetime(time.Duration(intenv("DB_MAX_LIFETIME", 300)) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db: failed to connect to Postgres: %w", err)
	}

	return db, nil
}

func intenv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
