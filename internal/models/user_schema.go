package models

import (
	"github.com/arllen133/sqldemo"
)

// userSchema implements sqldemo.Schema[User].
type userSchema struct{}

func (userSchema) TableName() string { return "users" }

func (userSchema) CreateTableSQL() string {
	return `CREATE TABLE users (
	id INTEGER PRIMARY KEY,
	name TEXT,
	email TEXT,
	age INTEGER
)`
}

func (userSchema) InsertRow(m *User) ([]string, []any) {
	if m.ID != 0 {
		return []string{"id", "name", "email", "age"}, []any{m.ID, m.Name, m.Email, m.Age}
	}
	return []string{"name", "email", "age"}, []any{m.Name, m.Email, m.Age}
}

func (userSchema) SetPK(m *User, val int64) { m.ID = val }

func (userSchema) AutoIncrement() bool { return true }

// UserSchema is the registered schema of User.
var UserSchema = userSchema{}

func init() {
	sqldemo.RegisterSchema[User](UserSchema)
}
