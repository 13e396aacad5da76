package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// QuestionStore holds the reusable question/answer records the builder
// assembles games from.
type QuestionStore struct {
	conn *gorm.DB
}

func NewQuestionStore(conn *gorm.DB) *QuestionStore {
	return &QuestionStore{conn: conn}
}

type QuestionInput struct {
	Slug     string
	Question string
	Answer   string
}

// QuestionPatch updates only the fields that are non-nil.
type QuestionPatch struct {
	Slug     *string
	Question *string
	Answer   *string
}

// QuestionRef addresses a question by id or, failing that, by slug.
type QuestionRef struct {
	ID   uint
	Slug string
}

// List returns questions newest-first. A non-empty filter matches the
// slug, question, or answer case-insensitively as a substring.
func (s *QuestionStore) List(filter string) ([]Question, error) {
	query := s.conn.Order("created_at DESC")
	if trimmed := strings.TrimSpace(filter); trimmed != "" {
		pattern := "%" + strings.ToLower(trimmed) + "%"
		query = query.Where(
			"lower(slug) LIKE ? OR lower(question) LIKE ? OR lower(answer) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	var rows []Question
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *QuestionStore) Get(id uint) (*Question, error) {
	var row Question
	if err := s.conn.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// Create inserts a new question and fails with ErrSlugExists when the
// slug is already taken.
func (s *QuestionStore) Create(input QuestionInput) (*Question, error) {
	row := Question{
		Slug:     strings.TrimSpace(input.Slug),
		Question: input.Question,
		Answer:   input.Answer,
	}
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Question{}).Where("slug = ?", row.Slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugExists
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return &row, nil
}

// Upsert creates the question or, when the slug already exists, updates
// its text and answer in place. The row count per slug stays at one.
func (s *QuestionStore) Upsert(input QuestionInput) (*Question, error) {
	slug := strings.TrimSpace(input.Slug)
	var row Question
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("slug = ?", slug).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = Question{Slug: slug, Question: input.Question, Answer: input.Answer}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}
		row.Question = input.Question
		row.Answer = input.Answer
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Update patches the fields present in patch. Changing the slug onto an
// existing one fails with ErrSlugExists.
func (s *QuestionStore) Update(id uint, patch QuestionPatch) (*Question, error) {
	var row Question
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if patch.Slug != nil {
			slug := strings.TrimSpace(*patch.Slug)
			if slug == "" {
				return errors.New("slug must not be empty")
			}
			var count int64
			if err := tx.Model(&Question{}).
				Where("slug = ? AND id <> ?", slug, id).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrSlugExists
			}
			row.Slug = slug
		}
		if patch.Question != nil {
			row.Question = *patch.Question
		}
		if patch.Answer != nil {
			row.Answer = *patch.Answer
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return &row, nil
}

// Delete removes the question addressed by ref. Without force it fails
// with QuestionInUseError while any stage references the question; with
// force the referencing stages are deleted first, in the same
// transaction.
func (s *QuestionStore) Delete(ref QuestionRef, force bool) error {
	return s.conn.Transaction(func(tx *gorm.DB) error {
		var row Question
		query := tx
		switch {
		case ref.ID != 0:
			query = query.Where("id = ?", ref.ID)
		case strings.TrimSpace(ref.Slug) != "":
			query = query.Where("slug = ?", strings.TrimSpace(ref.Slug))
		default:
			return errors.New("id or slug is required")
		}
		if err := query.First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&Stage{}).Where("question_id = ?", row.ID).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			if !force {
				return &QuestionInUseError{Refs: refs}
			}
			if err := tx.Where("question_id = ?", row.ID).Delete(&Stage{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&row).Error
	})
}
