package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/joelmarkovski/ltu-a2/internal/db"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeStoreError maps store failures onto the response taxonomy:
// not-found, slug conflict, referential block with a reference count,
// and everything else as an opaque logged 500.
func writeStoreError(w http.ResponseWriter, err error, context string) {
	var inUse *db.QuestionInUseError
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, db.ErrSlugExists):
		writeError(w, http.StatusConflict, "slug already exists")
	case errors.As(err, &inUse):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":      "question is referenced by existing stages",
			"references": inUse.Refs,
		})
	default:
		log.Printf("%s error=%v", context, err)
		writeError(w, http.StatusInternalServerError, context+" failed")
	}
}
