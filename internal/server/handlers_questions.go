package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/joelmarkovski/ltu-a2/internal/db"
)

type questionRequest struct {
	Slug     string `json:"slug"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type questionPatchRequest struct {
	Slug     *string `json:"slug"`
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

type questionDeleteRequest struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Force bool   `json:"force"`
}

func (s *Server) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.questions.List(r.URL.Query().Get("q"))
	if err != nil {
		writeStoreError(w, err, "list questions")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	input, ok := s.bindQuestionInput(w, r)
	if !ok {
		return
	}
	row, err := s.questions.Create(input)
	if err != nil {
		writeStoreError(w, err, "create question")
		return
	}
	log.Printf("question created question_id=%d slug=%s", row.ID, row.Slug)
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleUpsertQuestion(w http.ResponseWriter, r *http.Request) {
	input, ok := s.bindQuestionInput(w, r)
	if !ok {
		return
	}
	row, err := s.questions.Upsert(input)
	if err != nil {
		writeStoreError(w, err, "upsert question")
		return
	}
	log.Printf("question upserted question_id=%d slug=%s", row.ID, row.Slug)
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	row, err := s.questions.Get(id)
	if err != nil {
		writeStoreError(w, err, "get question")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleUpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req questionPatchRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Slug == nil && req.Question == nil && req.Answer == nil {
		writeError(w, http.StatusBadRequest, "nothing to update")
		return
	}
	row, err := s.questions.Update(id, db.QuestionPatch{
		Slug:     req.Slug,
		Question: req.Question,
		Answer:   req.Answer,
	})
	if err != nil {
		writeStoreError(w, err, "update question")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	force := queryFlag(r, "force")
	if err := s.questions.Delete(db.QuestionRef{ID: id}, force); err != nil {
		writeStoreError(w, err, "delete question")
		return
	}
	log.Printf("question deleted question_id=%d force=%t", id, force)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleDeleteQuestionByRef deletes by ?id= or ?slug=; the editor also
// submits these in a JSON body, so both are accepted.
func (s *Server) handleDeleteQuestionByRef(w http.ResponseWriter, r *http.Request) {
	var ref db.QuestionRef
	force := queryFlag(r, "force")

	if raw := r.URL.Query().Get("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid id")
			return
		}
		ref.ID = uint(id)
	}
	ref.Slug = r.URL.Query().Get("slug")

	if ref.ID == 0 && ref.Slug == "" {
		var req questionDeleteRequest
		if err := readJSON(r.Body, &req); err == nil {
			ref.ID = req.ID
			ref.Slug = req.Slug
			force = force || req.Force
		}
	}
	if ref.ID == 0 && strings.TrimSpace(ref.Slug) == "" {
		writeError(w, http.StatusBadRequest, "provide id or slug")
		return
	}

	if err := s.questions.Delete(ref, force); err != nil {
		writeStoreError(w, err, "delete question")
		return
	}
	log.Printf("question deleted id=%d slug=%s force=%t", ref.ID, ref.Slug, force)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": 1})
}

func (s *Server) bindQuestionInput(w http.ResponseWriter, r *http.Request) (db.QuestionInput, bool) {
	var req questionRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return db.QuestionInput{}, false
	}
	if strings.TrimSpace(req.Slug) == "" || strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "slug and question are required")
		return db.QuestionInput{}, false
	}
	return db.QuestionInput{
		Slug:     req.Slug,
		Question: req.Question,
		Answer:   req.Answer,
	}, true
}

func queryFlag(r *http.Request, name string) bool {
	switch strings.ToLower(r.URL.Query().Get(name)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
