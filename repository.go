// Package sqldemo provides the data access layer of the SQL query demo.
// This file implements the Repository type for typed table access.
//
// Repository is deliberately small: the demo store is seeded once and then
// only read, so it offers table creation, inserts for seeding, and a full
// table read.
package sqldemo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Repository manages typed access to the table of model T.
//
// Usage example:
//
//	userRepo := sqldemo.NewRepository[models.User](session)
//
//	user := &models.User{Name: "John Doe", Email: "john@example.com", Age: 30}
//	if err := userRepo.Create(ctx, user); err != nil {
//	    return err
//	}
//	fmt.Println("Created user ID:", user.ID) // Auto-increment ID backfilled
//
//	query, users, err := userRepo.All(ctx)
type Repository[T any] struct {
	session *Session
	schema  Schema[T]
}

// NewRepository creates a new Repository instance.
//
// Note:
//   - Model T must be registered via RegisterSchema[T]()
//   - If not registered, LoadSchema[T]() will panic
func NewRepository[T any](session *Session) *Repository[T] {
	return &Repository[T]{
		session: session,
		schema:  LoadSchema[T](),
	}
}

// TableName returns the table backing T.
func (r *Repository[T]) TableName() string {
	return r.schema.TableName()
}

// CreateTable executes the schema's DDL.
func (r *Repository[T]) CreateTable(ctx context.Context) error {
	_, err := r.session.Exec(ctx, r.schema.CreateTableSQL())
	return err
}

// Create inserts a new record into the database.
//
// Operation flow:
//  1. Extract insert data from model (via schema.InsertRow)
//  2. Execute INSERT statement
//  3. If auto-increment primary key, backfill ID to model
func (r *Repository[T]) Create(ctx context.Context, model *T) error {
	cols, vals := r.schema.InsertRow(model)

	builder := sq.Insert(r.schema.TableName()).
		Columns(cols...).
		Values(vals...).
		PlaceholderFormat(r.session.dialect.PlaceholderFormat())

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("sqldemo: failed to build sql: %w", err)
	}

	result, err := r.session.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if r.schema.AutoIncrement() {
		id, err := result.LastInsertId()
		if err == nil {
			r.schema.SetPK(model, id)
		}
	}
	return nil
}

// All reads every row of the table with "SELECT * FROM <table>" and returns
// the statement text alongside the rows.
//
// Note:
//   - Returns empty slice (not nil) if the table is empty
//   - Execution errors are *QueryError values
func (r *Repository[T]) All(ctx context.Context) (string, []*T, error) {
	query, _, err := sq.Select("*").From(r.schema.TableName()).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("sqldemo: failed to build sql: %w", err)
	}

	results := []*T{}
	if err := r.session.Select(ctx, &results, query); err != nil {
		return query, nil, err
	}
	return query, results, nil
}
