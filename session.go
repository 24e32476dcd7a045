package sqldemo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Session wraps the database handle together with its dialect and
// observability settings. Every statement issued through a Session is
// traced, measured and logged according to its SessionOptions.
type Session struct {
	db      *sqlx.DB
	dialect Dialect
	obs     *ObservabilityConfig
}

func NewSession(db *sql.DB, dialect Dialect, opts ...SessionOption) *Session {
	s := &Session{
		db:      sqlx.NewDb(db, dialect.Name()),
		dialect: dialect,
		obs:     defaultObservabilityConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dialect returns the session's dialect.
func (s *Session) Dialect() Dialect { return s.dialect }

func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var result sql.Result
	err := s.instrument(ctx, "exec", query, func(ctx context.Context) error {
		var err error
		result, err = s.db.ExecContext(ctx, query, args...)
		return err
	})
	return result, err
}

func (s *Session) Select(ctx context.Context, dest any, query string, args ...any) error {
	return s.instrument(ctx, "select", query, func(ctx context.Context) error {
		return s.db.SelectContext(ctx, dest, query, args...)
	})
}

func (s *Session) Get(ctx context.Context, dest any, query string, args ...any) error {
	return s.instrument(ctx, "get", query, func(ctx context.Context) error {
		return s.db.GetContext(ctx, dest, query, args...)
	})
}

// QueryRecords runs the first statement of query and returns every row as a
// Record, keeping the column order of the result set. Anything after the
// first statement is never compiled. The result is never nil on success.
func (s *Session) QueryRecords(ctx context.Context, query string, args ...any) ([]Record, error) {
	records := []Record{}
	err := s.instrument(ctx, "query", query, func(ctx context.Context) error {
		stmt, err := s.db.PreparexContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		rows, err := stmt.QueryxContext(ctx, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			return err
		}
		for rows.Next() {
			values, err := rows.SliceScan()
			if err != nil {
				return err
			}
			records = append(records, NewRecord(columns, values))
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close closes the underlying database.
func (s *Session) Close() error {
	return s.db.Close()
}
