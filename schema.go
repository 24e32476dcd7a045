package sqldemo

import (
	"fmt"
	"reflect"
)

// Schema defines how to map a model to a table and back
type Schema[T any] interface {
	// Table Metadata
	TableName() string
	CreateTableSQL() string

	// Write Operations
	InsertRow(*T) ([]string, []any)

	// Primary Key
	SetPK(m *T, val int64)
	AutoIncrement() bool
}

var schemas = make(map[reflect.Type]any)

func RegisterSchema[T any](schema Schema[T]) {
	var t T
	typ := reflect.TypeOf(t)
	schemas[typ] = schema
}

func LoadSchema[T any]() Schema[T] {
	var t T
	typ := reflect.TypeOf(t)
	if s, ok := schemas[typ]; ok {
		return s.(Schema[T])
	}
	panic(fmt.Sprintf("sqldemo: schema not registered for type %v", typ))
}
