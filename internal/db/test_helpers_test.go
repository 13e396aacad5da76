package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database. A single connection
// keeps every query on the same memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return conn
}

func seedQuestion(t *testing.T, store *QuestionStore, slug string) *Question {
	t.Helper()
	row, err := store.Create(QuestionInput{
		Slug:     slug,
		Question: "question for " + slug,
		Answer:   "answer for " + slug,
	})
	if err != nil {
		t.Fatalf("seed question %s: %v", slug, err)
	}
	return row
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
