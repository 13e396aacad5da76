package db

import (
	"errors"
	"testing"
)

func TestCreateQuestionDuplicateSlugConflicts(t *testing.T) {
	conn := newTestDB(t)
	store := NewQuestionStore(conn)

	seedQuestion(t, store, "dup")
	_, err := store.Create(QuestionInput{Slug: "dup", Question: "again?"})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestUpsertUpdatesInPlace(t *testing.T) {
	conn := newTestDB(t)
	store := NewQuestionStore(conn)

	first, err := store.Upsert(QuestionInput{Slug: "greeting", Question: "Hi?", Answer: "Hello"})
	if err != nil {
		t.Fatalf("upsert create: %v", err)
	}

	second, err := store.Upsert(QuestionInput{Slug: "greeting", Question: "Hi there?", Answer: "Hey"})
	if err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same row, got ids %d and %d", first.ID, second.ID)
	}
	if second.Question != "Hi there?" || second.Answer != "Hey" {
		t.Fatalf("fields not updated: %+v", second)
	}

	var count int64
	if err := conn.Model(&Question{}).Where("slug = ?", "greeting").Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row for slug, got %d", count)
	}
}

func TestListFiltersCaseInsensitive(t *testing.T) {
	conn := newTestDB(t)
	store := NewQuestionStore(conn)

	if _, err := store.Create(QuestionInput{Slug: "math-sum", Question: "What is 2+2?", Answer: "4"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Create(QuestionInput{Slug: "capital", Question: "Capital of France?", Answer: "Paris"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := store.List("FRANCE")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].Slug != "capital" {
		t.Fatalf("expected only the capital question, got %+v", rows)
	}

	rows, err = store.List("")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	// answer field matches too
	rows, err = store.List("paris")
	if err != nil {
		t.Fatalf("list by answer: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected answer match, got %d rows", len(rows))
	}
}

func TestUpdatePatchesFields(t *testing.T) {
	conn := newTestDB(t)
	store := NewQuestionStore(conn)

	row := seedQuestion(t, store, "patchme")
	updated, err := store.Update(row.ID, QuestionPatch{Answer: strPtr("new answer")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Answer != "new answer" {
		t.Fatalf("answer not updated: %q", updated.Answer)
	}
	if updated.Slug != "patchme" || updated.Question != row.Question {
		t.Fatalf("unrelated fields changed: %+v", updated)
	}
}

func TestUpdateSlugCollision(t *testing.T) {
	conn := newTestDB(t)
	store := NewQuestionStore(conn)

	seedQuestion(t, store, "taken")
	row := seedQuestion(t, store, "mover")

	_, err := store.Update(row.ID, QuestionPatch{Slug: strPtr("taken")})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestDeleteReferencedQuestionNeedsForce(t *testing.T) {
	conn := newTestDB(t)
	store := NewQuestionStore(conn)
	games := NewGameStore(conn)

	row := seedQuestion(t, store, "used")
	if _, err := games.Create(GameInput{
		Title:  "Uses it twice",
		Stages: []StageInput{{QuestionID: row.ID}, {QuestionID: row.ID}},
	}); err != nil {
		t.Fatalf("create game: %v", err)
	}

	err := store.Delete(QuestionRef{ID: row.ID}, false)
	var inUse *QuestionInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("expected QuestionInUseError, got %v", err)
	}
	if inUse.Refs != 2 {
		t.Fatalf("expected 2 blocking references, got %d", inUse.Refs)
	}
	if _, err := store.Get(row.ID); err != nil {
		t.Fatalf("question should still exist: %v", err)
	}

	if err := store.Delete(QuestionRef{ID: row.ID}, true); err != nil {
		t.Fatalf("force delete: %v", err)
	}
	if _, err := store.Get(row.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected question gone, got %v", err)
	}
	var refs int64
	if err := conn.Model(&Stage{}).Where("question_id = ?", row.ID).Count(&refs).Error; err != nil {
		t.Fatalf("count stages: %v", err)
	}
	if refs != 0 {
		t.Fatalf("expected 0 referencing stages after force delete, got %d", refs)
	}
}

func TestDeleteBySlug(t *testing.T) {
	conn := newTestDB(t)
	store := NewQuestionStore(conn)

	seedQuestion(t, store, "by-slug")
	if err := store.Delete(QuestionRef{Slug: "by-slug"}, false); err != nil {
		t.Fatalf("delete by slug: %v", err)
	}
	if err := store.Delete(QuestionRef{Slug: "by-slug"}, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
