package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// SaveStore is an append/overwrite log of opaque snapshots. The payload
// is a string in and a string out; whoever wrote it owns its shape.
type SaveStore struct {
	conn *gorm.DB
}

func NewSaveStore(conn *gorm.DB) *SaveStore {
	return &SaveStore{conn: conn}
}

// List returns saves newest-first, optionally filtered by type tag and
// bounded by limit.
func (s *SaveStore) List(typeTag string, limit int) ([]Save, error) {
	query := s.conn.Order("created_at DESC, id DESC")
	if typeTag != "" {
		query = query.Where("type = ?", typeTag)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []Save
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SaveStore) Get(id uint) (*Save, error) {
	var row Save
	if err := s.conn.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

func (s *SaveStore) Create(typeTag, payload string) (*Save, error) {
	if strings.TrimSpace(typeTag) == "" {
		return nil, errors.New("type is required")
	}
	row := Save{Type: typeTag, Payload: payload}
	if err := s.conn.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Update replaces the type tag and payload of an existing save.
func (s *SaveStore) Update(id uint, typeTag, payload string) (*Save, error) {
	if strings.TrimSpace(typeTag) == "" {
		return nil, errors.New("type is required")
	}
	var row Save
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		row.Type = typeTag
		row.Payload = payload
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *SaveStore) Delete(id uint) error {
	result := s.conn.Delete(&Save{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
