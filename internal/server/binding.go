package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/joelmarkovski/ltu-a2/internal/db"
)

func pathID(r *http.Request) (uint, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// present reports whether a JSON key appeared in the request at all;
// a key set to null is present with raw == "null". This is how PATCH
// tells "leave alone" apart from "clear".
func present(raw json.RawMessage) bool {
	return raw != nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

type stageRequest struct {
	QuestionID uint    `json:"questionId"`
	OrderIndex *int    `json:"orderIndex"`
	TimerSecs  *int    `json:"timerSecs"`
	Hint       *string `json:"hint"`
}

func bindStages(requests []stageRequest) ([]db.StageInput, error) {
	inputs := make([]db.StageInput, 0, len(requests))
	for _, req := range requests {
		if req.QuestionID == 0 {
			return nil, errors.New("each stage needs a questionId")
		}
		if req.TimerSecs != nil && *req.TimerSecs < 0 {
			return nil, errors.New("timerSecs must not be negative")
		}
		if req.OrderIndex != nil && *req.OrderIndex < 0 {
			return nil, errors.New("orderIndex must not be negative")
		}
		inputs = append(inputs, db.StageInput{
			QuestionID: req.QuestionID,
			OrderIndex: req.OrderIndex,
			TimerSecs:  req.TimerSecs,
			Hint:       req.Hint,
		})
	}
	return inputs, nil
}

// bindNullableString resolves a present raw value to either nil (JSON
// null) or the decoded string.
func bindNullableString(raw json.RawMessage) (*string, error) {
	if isJSONNull(raw) {
		return nil, nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errors.New("expected a string or null")
	}
	return &value, nil
}
