package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/joelmarkovski/ltu-a2/internal/db"
)

type createGameRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Images      []string       `json:"images"`
	Backdrop    *string        `json:"backdrop"`
	Stages      []stageRequest `json:"stages"`
}

// updateGameRequest keeps every field raw so absent and null stay
// distinguishable (partial-update semantics).
type updateGameRequest struct {
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
	Images      json.RawMessage `json:"images"`
	Backdrop    json.RawMessage `json:"backdrop"`
	Stages      json.RawMessage `json:"stages"`
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.games.List()
	if err != nil {
		writeStoreError(w, err, "list games")
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if len(req.Stages) == 0 {
		writeError(w, http.StatusBadRequest, "at least one stage is required")
		return
	}
	stages, err := bindStages(req.Stages)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := s.games.Create(db.GameInput{
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Backdrop:    req.Backdrop,
		Stages:      stages,
	})
	if err != nil {
		writeStoreError(w, err, "create game")
		return
	}
	log.Printf("game created game_id=%d stages=%d", game.ID, len(game.Stages))
	writeJSON(w, http.StatusCreated, game)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	game, err := s.games.Get(id)
	if err != nil {
		writeStoreError(w, err, "get game")
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleUpdateGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req updateGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update, err := bindGameUpdate(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := s.games.Replace(id, update)
	if err != nil {
		writeStoreError(w, err, "update game")
		return
	}
	log.Printf("game updated game_id=%d stages=%d", game.ID, len(game.Stages))
	writeJSON(w, http.StatusOK, game)
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.games.Delete(id); err != nil {
		writeStoreError(w, err, "delete game")
		return
	}
	log.Printf("game deleted game_id=%d", id)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func bindGameUpdate(req updateGameRequest) (db.GameUpdate, error) {
	var update db.GameUpdate

	if present(req.Title) {
		if isJSONNull(req.Title) {
			return update, errors.New("title must not be null")
		}
		var title string
		if err := json.Unmarshal(req.Title, &title); err != nil {
			return update, errors.New("title must be a string")
		}
		if strings.TrimSpace(title) == "" {
			return update, errors.New("title must not be empty")
		}
		update.Title = &title
	}
	if present(req.Description) {
		value, err := bindNullableString(req.Description)
		if err != nil {
			return update, errors.New("description must be a string or null")
		}
		update.Description = value
		update.DescriptionSet = true
	}
	if present(req.Backdrop) {
		value, err := bindNullableString(req.Backdrop)
		if err != nil {
			return update, errors.New("backdrop must be a string or null")
		}
		update.Backdrop = value
		update.BackdropSet = true
	}
	if present(req.Images) {
		if isJSONNull(req.Images) {
			update.ImagesSet = true
		} else {
			var images []string
			if err := json.Unmarshal(req.Images, &images); err != nil {
				return update, errors.New("images must be a list of URLs or null")
			}
			update.Images = images
			update.ImagesSet = true
		}
	}
	// A non-array stages value is ignored, matching the builder contract:
	// only an explicit list (possibly empty) replaces the stage rows.
	if present(req.Stages) && !isJSONNull(req.Stages) {
		var requests []stageRequest
		if err := json.Unmarshal(req.Stages, &requests); err != nil {
			return update, errors.New("stages must be a list")
		}
		stages, err := bindStages(requests)
		if err != nil {
			return update, err
		}
		update.Stages = stages
		update.StagesSet = true
	}
	return update, nil
}
