package sqldemo

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	// DefaultTable is used by BuildSelect when no table is given.
	DefaultTable = "users"
	// DefaultColumn is used by BuildSelect when no column list is given.
	DefaultColumn = "*"
)

// BuildSelect renders "SELECT <column> FROM <table> [WHERE <condition>]".
//
// UNTRUSTED INPUT, NO SANITIZATION: the three arguments are copied into
// the statement text as they are. Nothing is quoted, escaped, bound as a
// parameter or checked against the schema, so a caller controls the whole
// statement (other tables, sub-selects, arbitrary predicates). Callers that
// expose this to the network must be aware the endpoint is injectable.
//
// Empty table and column fall back to DefaultTable and DefaultColumn; an
// empty condition omits the WHERE clause.
//
// Example:
//
//	sqldemo.BuildSelect("users", "name,email", "age>25")
//	// Returns: "SELECT name,email FROM users WHERE age>25"
func BuildSelect(table, column, condition string) string {
	if table == "" {
		table = DefaultTable
	}
	if column == "" {
		column = DefaultColumn
	}

	// Question format leaves any '?' in the raw text untouched.
	builder := sq.Select(column).From(table).PlaceholderFormat(sq.Question)
	if condition != "" {
		builder = builder.Where(condition)
	}

	query, _, err := builder.ToSql()
	if err != nil {
		// squirrel only fails on an empty column list, ruled out above.
		query = "SELECT " + column + " FROM " + table
		if condition != "" {
			query += " WHERE " + condition
		}
	}
	return query
}
