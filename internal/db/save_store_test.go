package db

import (
	"errors"
	"testing"
	"time"
)

func TestSaveRoundTrip(t *testing.T) {
	conn := newTestDB(t)
	store := NewSaveStore(conn)

	created, err := store.Create("escape-progress", `{"a":1}`)
	if err != nil {
		t.Fatalf("create save: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an id")
	}

	fetched, err := store.Get(created.ID)
	if err != nil {
		t.Fatalf("get save: %v", err)
	}
	if fetched.Type != "escape-progress" || fetched.Payload != `{"a":1}` {
		t.Fatalf("round trip mismatch: %+v", fetched)
	}
}

func TestSaveListFiltersAndBounds(t *testing.T) {
	conn := newTestDB(t)
	store := NewSaveStore(conn)

	for i := 0; i < 3; i++ {
		if _, err := store.Create("generator", "{}"); err != nil {
			t.Fatalf("create: %v", err)
		}
		// created_at has second precision on some engines; keep inserts ordered
		time.Sleep(5 * time.Millisecond)
	}
	last, err := store.Create("escape-progress", "{}")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := store.List("generator", 0)
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 generator saves, got %d", len(rows))
	}

	rows, err = store.List("", 2)
	if err != nil {
		t.Fatalf("bounded list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != last.ID {
		t.Fatalf("expected newest first, got id %d", rows[0].ID)
	}
}

func TestSaveUpdateReplaces(t *testing.T) {
	conn := newTestDB(t)
	store := NewSaveStore(conn)

	created, err := store.Create("generator", `{"labels":["A"]}`)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := store.Update(created.ID, "escape-progress", `{"stage":2}`)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Type != "escape-progress" || updated.Payload != `{"stage":2}` {
		t.Fatalf("update mismatch: %+v", updated)
	}
}

func TestSaveDeleteMissing(t *testing.T) {
	conn := newTestDB(t)
	store := NewSaveStore(conn)

	if err := store.Delete(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
