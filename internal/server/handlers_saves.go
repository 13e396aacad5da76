package server

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// saveRequest accepts payload as either a JSON string or any JSON
// value; non-strings are stored re-serialized, so the store only ever
// sees a string.
type saveRequest struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func (s *Server) handleListSaves(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.SaveListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 && value < limit {
			limit = value
		}
	}
	rows, err := s.saves.List(r.URL.Query().Get("type"), limit)
	if err != nil {
		writeStoreError(w, err, "list saves")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateSave(w http.ResponseWriter, r *http.Request) {
	typeTag, payload, ok := bindSave(w, r)
	if !ok {
		return
	}
	row, err := s.saves.Create(typeTag, payload)
	if err != nil {
		writeStoreError(w, err, "create save")
		return
	}
	log.Printf("save created save_id=%d type=%s", row.ID, row.Type)
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleGetSave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	row, err := s.saves.Get(id)
	if err != nil {
		writeStoreError(w, err, "get save")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleUpdateSave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	typeTag, payload, ok := bindSave(w, r)
	if !ok {
		return
	}
	row, err := s.saves.Update(id, typeTag, payload)
	if err != nil {
		writeStoreError(w, err, "update save")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleDeleteSave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := s.saves.Delete(id); err != nil {
		writeStoreError(w, err, "delete save")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func bindSave(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	var req saveRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", "", false
	}
	if strings.TrimSpace(req.Type) == "" || req.Payload == nil || isJSONNull(req.Payload) {
		writeError(w, http.StatusBadRequest, "type and payload are required")
		return "", "", false
	}

	var asString string
	if err := json.Unmarshal(req.Payload, &asString); err == nil {
		return req.Type, asString, true
	}
	var compacted bytes.Buffer
	if err := json.Compact(&compacted, req.Payload); err != nil {
		writeError(w, http.StatusBadRequest, "payload must be valid JSON")
		return "", "", false
	}
	return req.Type, compacted.String(), true
}
