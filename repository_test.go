package sqldemo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arllen133/sqldemo"
)

func TestRepository_CreateBackfillsID(t *testing.T) {
	_, session := setupTestDB(t)
	people := seedPeople(t, session)

	for i, p := range people {
		if p.ID != int64(i+1) {
			t.Errorf("%s: expected ID %d, got %d", p.Name, i+1, p.ID)
		}
	}
}

func TestRepository_CreateExplicitID(t *testing.T) {
	_, session := setupTestDB(t)
	repo := sqldemo.NewRepository[Person](session)

	p := &Person{ID: 42, Name: "Explicit", Age: 1}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != 42 {
		t.Errorf("expected ID 42, got %d", p.ID)
	}
}

func TestRepository_All(t *testing.T) {
	_, session := setupTestDB(t)
	seedPeople(t, session)
	repo := sqldemo.NewRepository[Person](session)

	query, people, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if query != "SELECT * FROM people" {
		t.Errorf("unexpected query %q", query)
	}
	if len(people) != 3 {
		t.Fatalf("expected 3 people, got %d", len(people))
	}
	if people[1].Name != "Ben" || people[1].Age != 19 || people[1].ID != 2 {
		t.Errorf("unexpected second row %+v", *people[1])
	}
}

func TestRepository_AllEmpty(t *testing.T) {
	_, session := setupTestDB(t)
	repo := sqldemo.NewRepository[Person](session)

	_, people, err := repo.All(context.Background())
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if people == nil || len(people) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", people)
	}
}

func TestRepository_AllMissingTable(t *testing.T) {
	db, err := openMemory(t)
	if err != nil {
		t.Fatal(err)
	}
	repo := sqldemo.NewRepository[Person](sqldemo.NewSession(db, sqldemo.SQLite))

	query, _, err := repo.All(context.Background())
	var qerr *sqldemo.QueryError
	if !errors.As(err, &qerr) {
		t.Fatalf("expected *QueryError, got %v", err)
	}
	if qerr.Query != "SELECT * FROM people" || query != qerr.Query {
		t.Errorf("unexpected query %q / %q", query, qerr.Query)
	}
	if qerr.Error() != "no such table: people" {
		t.Errorf("unexpected message %q", qerr.Error())
	}
}

func TestLoadSchema_Unregistered(t *testing.T) {
	type unregistered struct{}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unregistered schema")
		}
	}()
	sqldemo.LoadSchema[unregistered]()
}
