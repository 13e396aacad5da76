package server

import (
	"log"
	"net/http"

	"github.com/joelmarkovski/ltu-a2/internal/tabs"
)

type tabsRequest struct {
	Labels []string `json:"labels"`
	Active int      `json:"active"`
	Save   bool     `json:"save"`
}

type tabsResponse struct {
	HTML   string `json:"html"`
	SaveID uint   `json:"saveId,omitempty"`
}

// handleGenerateTabs renders the tabs snippet and, when asked,
// snapshots the generator inputs to the save store.
func (s *Server) handleGenerateTabs(w http.ResponseWriter, r *http.Request) {
	var req tabsRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	html, err := tabs.Generate(req.Labels, req.Active)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := tabsResponse{HTML: html}
	if req.Save {
		payload, err := tabs.Snapshot{Labels: req.Labels, Active: req.Active}.Encode()
		if err != nil {
			writeStoreError(w, err, "snapshot tabs")
			return
		}
		row, err := s.saves.Create(tabs.SaveType, payload)
		if err != nil {
			writeStoreError(w, err, "snapshot tabs")
			return
		}
		resp.SaveID = row.ID
		log.Printf("generator snapshot saved save_id=%d tabs=%d", row.ID, len(req.Labels))
	}
	writeJSON(w, http.StatusOK, resp)
}
