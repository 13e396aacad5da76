package db

import (
	"time"

	"gorm.io/datatypes"
)

// Question is a reusable quiz item addressed by its slug.
type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// Game is an escape game: metadata plus an ordered list of stages.
// Images holds the backdrop URL list the builder submitted, in order.
type Game struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description *string        `gorm:"type:text" json:"description"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"`
	Backdrop    *string        `gorm:"size:500" json:"backdrop"`
	CreatedAt   time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updatedAt"`
	Stages      []Stage        `gorm:"constraint:OnDelete:CASCADE" json:"stages,omitempty"`
}

// Stage is one ordered step of a game. It references a question rather
// than owning it; many stages may share one question.
type Stage struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     uint      `gorm:"index;not null" json:"gameId"`
	OrderIndex int       `gorm:"not null" json:"orderIndex"`
	QuestionID uint      `gorm:"index;not null" json:"questionId"`
	TimerSecs  *int      `json:"timerSecs"`
	Hint       *string   `gorm:"size:500" json:"hint"`
	CreatedAt  time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"not null" json:"updatedAt"`
	Question   Question  `gorm:"constraint:OnDelete:RESTRICT" json:"question"`
}

// Save is an opaque snapshot record: a free-form type tag plus a payload
// string the store never parses. Consumers own the payload shape.
type Save struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:64;index;not null" json:"type"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
