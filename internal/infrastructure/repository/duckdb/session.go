package duckdb

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/marcboeker/go-duckdb/v2"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Session owns one embedded engine handle. The engine is file-backed and
// single-writer; everything in a pipeline run shares this session and the
// caller closes it once at the end.
type Session struct {
	db *sqlx.DB
}

// Open opens (creating if necessary) the database file at path and verifies
// the connection.
func Open(ctx context.Context, path string) (*Session, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "create database directory")
		}
	}

	db, err := otelsqlx.Open("duckdb", path,
		otelsql.WithDBName(filepath.Base(path)),
		otelsql.WithDBSystem("duckdb"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "open duckdb database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping duckdb database")
	}

	return &Session{db: db}, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests.
func OpenInMemory(ctx context.Context) (*Session, error) {
	db, err := otelsqlx.Open("duckdb", "", otelsql.WithDBSystem("duckdb"))
	if err != nil {
		return nil, errors.Wrap(err, "open in-memory duckdb database")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping in-memory duckdb database")
	}
	return &Session{db: db}, nil
}

func (s *Session) DB() *sqlx.DB {
	return s.db
}

func (s *Session) Close() error {
	return s.db.Close()
}
