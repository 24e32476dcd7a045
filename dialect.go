// Package sqldemo is the data access layer of the SQL query demo service.
// This file implements the database dialect abstraction.
//
// Dialect isolates the few places where SQL text depends on the engine:
//   - Database identification (driver name, metrics attribute)
//   - Placeholder format used by squirrel builders
//   - The statement that locks a connection against writes
//
// Only SQLite is shipped: the demo store lives in an in-memory SQLite
// database for the lifetime of the process.
//
// Usage example:
//
//	session := sqldemo.NewSession(db, sqldemo.SQLite)
package sqldemo

import (
	sq "github.com/Masterminds/squirrel"
)

var SQLite = &SQLiteDialect{}

// Dialect abstracts database-specific SQL features.
type Dialect interface {
	// Name returns the database driver name ("sqlite3").
	// Used for logging, metrics collection, and driver selection.
	Name() string

	// PlaceholderFormat returns the placeholder format squirrel uses
	// when it renders parameterized statements.
	PlaceholderFormat() sq.PlaceholderFormat

	// ReadOnlyClause returns the statement that turns the current
	// connection read-only. Empty if the engine has none.
	ReadOnlyClause() string
}

// SQLiteDialect implements the SQLite database dialect.
//
// SQLite features:
//   - Uses ? as placeholder
//   - query_only pragma rejects every write on the connection it is issued on
//
// Note:
//   - PRAGMA settings are per connection; pin the pool to a single
//     connection when relying on ReadOnlyClause.
type SQLiteDialect struct{}

// Name returns the SQLite dialect name.
func (d *SQLiteDialect) Name() string { return "sqlite3" }

// PlaceholderFormat returns SQLite's placeholder format (?).
func (d *SQLiteDialect) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

// ReadOnlyClause returns the SQLite query_only pragma.
func (d *SQLiteDialect) ReadOnlyClause() string {
	return "PRAGMA query_only = ON"
}
