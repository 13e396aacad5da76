package db

import (
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GameStore assembles games: every write that touches the stage list runs
// as one transaction so a game and its ordered stages stay consistent.
type GameStore struct {
	conn *gorm.DB
}

func NewGameStore(conn *gorm.DB) *GameStore {
	return &GameStore{conn: conn}
}

// StageInput is one submitted stage. OrderIndex nil means "use the
// position in the submitted list".
type StageInput struct {
	QuestionID uint
	OrderIndex *int
	TimerSecs  *int
	Hint       *string
}

type GameInput struct {
	Title       string
	Description *string
	Images      []string
	Backdrop    *string
	Stages      []StageInput
}

// GameUpdate carries partial-update fields for Replace. The Set flags
// distinguish "field absent, leave alone" from "field null, clear it".
type GameUpdate struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Images         []string
	ImagesSet      bool
	Backdrop       *string
	BackdropSet    bool
	Stages         []StageInput
	StagesSet      bool
}

// GameSummary is a list row: game metadata plus its stage count.
type GameSummary struct {
	Game
	StageCount int64 `json:"stageCount"`
}

// Create inserts the game and its stage list in one transaction. Stage
// order indices default to list position. If any referenced question is
// missing the whole transaction rolls back.
func (s *GameStore) Create(input GameInput) (*Game, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	if len(input.Stages) == 0 {
		return nil, errors.New("at least one stage is required")
	}

	var gameID uint
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		game := Game{
			Title:       title,
			Description: input.Description,
			Backdrop:    input.Backdrop,
		}
		if input.Images != nil {
			raw, err := json.Marshal(input.Images)
			if err != nil {
				return err
			}
			game.Images = datatypes.JSON(raw)
		}
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		if err := insertStages(tx, game.ID, input.Stages); err != nil {
			return err
		}
		gameID = game.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(gameID)
}

// Replace applies a partial update to the game's scalar fields and, when
// a stage list was submitted, discards every existing stage row and
// recreates the list from scratch. Stage ids never survive a replace.
func (s *GameStore) Replace(id uint, update GameUpdate) (*Game, error) {
	err := s.conn.Transaction(func(tx *gorm.DB) error {
		var game Game
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		fields := map[string]any{}
		if update.Title != nil {
			title := strings.TrimSpace(*update.Title)
			if title == "" {
				return errors.New("title must not be empty")
			}
			fields["title"] = title
		}
		if update.DescriptionSet {
			fields["description"] = update.Description
		}
		if update.BackdropSet {
			fields["backdrop"] = update.Backdrop
		}
		if update.ImagesSet {
			if update.Images == nil {
				fields["images"] = nil
			} else {
				raw, err := json.Marshal(update.Images)
				if err != nil {
					return err
				}
				fields["images"] = datatypes.JSON(raw)
			}
		}
		if len(fields) > 0 {
			if err := tx.Model(&game).Updates(fields).Error; err != nil {
				return err
			}
		}

		if update.StagesSet {
			if err := tx.Where("game_id = ?", id).Delete(&Stage{}).Error; err != nil {
				return err
			}
			if err := insertStages(tx, id, update.Stages); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// Get returns the game with stages ordered by order_index ascending and
// each stage's question attached.
func (s *GameStore) Get(id uint) (*Game, error) {
	var game Game
	err := s.conn.
		Preload("Stages", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index ASC")
		}).
		Preload("Stages.Question").
		First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// List returns games newest-edited first with their stage counts.
func (s *GameStore) List() ([]GameSummary, error) {
	var games []Game
	if err := s.conn.Order("updated_at DESC").Find(&games).Error; err != nil {
		return nil, err
	}
	summaries := make([]GameSummary, 0, len(games))
	for _, game := range games {
		var count int64
		if err := s.conn.Model(&Stage{}).Where("game_id = ?", game.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		summaries = append(summaries, GameSummary{Game: game, StageCount: count})
	}
	return summaries, nil
}

// Delete removes the game and its stages in one transaction.
func (s *GameStore) Delete(id uint) error {
	return s.conn.Transaction(func(tx *gorm.DB) error {
		var game Game
		if err := tx.First(&game, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("game_id = ?", id).Delete(&Stage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&game).Error
	})
}

func insertStages(tx *gorm.DB, gameID uint, inputs []StageInput) error {
	if len(inputs) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(inputs))
	seen := map[uint]bool{}
	for _, input := range inputs {
		if !seen[input.QuestionID] {
			seen[input.QuestionID] = true
			ids = append(ids, input.QuestionID)
		}
	}
	var count int64
	if err := tx.Model(&Question{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return ErrQuestionMissing
	}

	stages := make([]Stage, 0, len(inputs))
	for position, input := range inputs {
		orderIndex := position
		if input.OrderIndex != nil {
			orderIndex = *input.OrderIndex
		}
		stages = append(stages, Stage{
			GameID:     gameID,
			OrderIndex: orderIndex,
			QuestionID: input.QuestionID,
			TimerSecs:  input.TimerSecs,
			Hint:       input.Hint,
		})
	}
	return tx.Omit("Question").Create(&stages).Error
}
