package db

import (
	"context"
	"database/sql"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // Register postgres driver
)

// MustOpen returns an open and verified database/sql connection.
func MustOpen(dsn string) *sql.DB {
	if dsn == "" {
		log.Fatal("STORE_DB_DSN not set")
	}

	conn, err := openDB(dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}

	if err := conn.Ping(); err != nil {
		log.Fatalf("ping db: %v", err)
	}

	return conn
}

// NewPool opens a pgx pool for the repositories that use pgx directly.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	return pgxpool.NewWithConfig(ctx, cfg)
}

// openDB opens a database connection without pinging.
func openDB(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}
