package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
)

var (
	// ErrNotFound means the requested id or slug did not resolve.
	ErrNotFound = errors.New("record not found")
	// ErrSlugExists means a question with the same slug already exists.
	ErrSlugExists = errors.New("slug already exists")
	// ErrQuestionMissing means a submitted stage referenced a question id
	// that does not exist; the surrounding transaction was rolled back.
	ErrQuestionMissing = errors.New("stage references a missing question")
)

// QuestionInUseError blocks a question delete while stages reference it.
type QuestionInUseError struct {
	Refs int64
}

func (e *QuestionInUseError) Error() string {
	return fmt.Sprintf("question is referenced by %d stage(s)", e.Refs)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
