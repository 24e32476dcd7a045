package sqldemo_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/arllen133/sqldemo"
	_ "github.com/mattn/go-sqlite3"
)

// Person is a small model used across the package tests.
type Person struct {
	ID   int64  `db:"id,primaryKey,autoIncrement"`
	Name string `db:"name"`
	Age  int    `db:"age"`
}

type personSchema struct{}

func (personSchema) TableName() string { return "people" }
func (personSchema) CreateTableSQL() string {
	return `CREATE TABLE people (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		age INTEGER
	)`
}
func (personSchema) InsertRow(m *Person) ([]string, []any) {
	if m.ID != 0 {
		return []string{"id", "name", "age"}, []any{m.ID, m.Name, m.Age}
	}
	return []string{"name", "age"}, []any{m.Name, m.Age}
}
func (personSchema) SetPK(m *Person, val int64) { m.ID = val }
func (personSchema) AutoIncrement() bool        { return true }

func init() {
	sqldemo.RegisterSchema[Person](personSchema{})
}

func setupTestDB(t *testing.T, opts ...sqldemo.SessionOption) (*sql.DB, *sqldemo.Session) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	// A second :memory: connection would be a different, empty database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	session := sqldemo.NewSession(db, sqldemo.SQLite, opts...)
	repo := sqldemo.NewRepository[Person](session)
	if err := repo.CreateTable(context.Background()); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	return db, session
}

func seedPeople(t *testing.T, session *sqldemo.Session) []*Person {
	t.Helper()
	repo := sqldemo.NewRepository[Person](session)
	people := []*Person{
		{Name: "Ann", Age: 41},
		{Name: "Ben", Age: 19},
		{Name: "Cy", Age: 33},
	}
	for _, p := range people {
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("Failed to create %s: %v", p.Name, err)
		}
	}
	return people
}
