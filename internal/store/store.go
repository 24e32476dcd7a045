// Package store holds the demo's in-memory users database.
//
// The database is created and seeded once by Open and is read-only from
// then on. Caller-built statements run through a prepared statement, so only
// their leading SELECT executes, and the single pooled connection is also
// switched to query-only mode.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/arllen133/sqldemo"
	"github.com/arllen133/sqldemo/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

const (
	driverName = "sqlite3"
	memoryDSN  = ":memory:"
)

// SeedUsers returns the rows the users table is populated with, in
// insertion order.
func SeedUsers() []models.User {
	return []models.User{
		{Name: "John Doe", Email: "john@example.com", Age: 30},
		{Name: "Jane Smith", Email: "jane@example.com", Age: 25},
		{Name: "Bob Johnson", Email: "bob@example.com", Age: 35},
		{Name: "Alice Brown", Email: "alice@example.com", Age: 28},
	}
}

// Store is a long-lived read-only handle on the users database.
type Store struct {
	session *sqldemo.Session
	users   *sqldemo.Repository[models.User]
}

// Open creates the in-memory database, seeds it and locks it read-only.
// opts configure the session's logging, tracing and metrics.
func Open(ctx context.Context, opts ...sqldemo.SessionOption) (*Store, error) {
	db, err := sql.Open(driverName, memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// Every :memory: connection is its own empty database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	session := sqldemo.NewSession(db, sqldemo.SQLite, opts...)
	s := &Store{
		session: session,
		users:   sqldemo.NewRepository[models.User](session),
	}
	if err := s.init(ctx); err != nil {
		_ = session.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if err := s.users.CreateTable(ctx); err != nil {
		return fmt.Errorf("store: create table %s: %w", s.users.TableName(), err)
	}

	for _, u := range SeedUsers() {
		if err := s.users.Create(ctx, &u); err != nil {
			return fmt.Errorf("store: seed %q: %w", u.Name, err)
		}
	}

	var count int
	if err := s.session.Get(ctx, &count, "SELECT COUNT(*) FROM "+s.users.TableName()); err != nil {
		return fmt.Errorf("store: count %s: %w", s.users.TableName(), err)
	}
	if count != len(SeedUsers()) {
		return fmt.Errorf("store: seeded %d rows, want %d", count, len(SeedUsers()))
	}

	if stmt := s.session.Dialect().ReadOnlyClause(); stmt != "" {
		if _, err := s.session.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("store: lock read-only: %w", err)
		}
	}
	return nil
}

// ListUsers runs "SELECT * FROM users" and returns the statement with the
// rows it produced.
func (s *Store) ListUsers(ctx context.Context) (string, []*models.User, error) {
	return s.users.All(ctx)
}

// RunQuery builds a statement from the caller's table, column and condition
// with sqldemo.BuildSelect, which does no sanitization, and executes it.
// The statement text is returned even when execution fails.
func (s *Store) RunQuery(ctx context.Context, table, column, condition string) (string, []sqldemo.Record, error) {
	query := sqldemo.BuildSelect(table, column, condition)
	records, err := s.session.QueryRecords(ctx, query)
	return query, records, err
}

// Close releases the database. The data is gone afterwards.
func (s *Store) Close() error {
	return s.session.Close()
}
