package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/joelmarkovski/ltu-a2/internal/config"
)

// publisher posts to the external publish function configured by URL.
// The collaborator answers either {url} directly or a function-envelope
// {statusCode, body:"{\"url\":...}"}; both shapes are tolerated.
type publisher struct {
	url    string
	client *http.Client
}

var errPublishUnconfigured = errors.New("publish URL is not configured")

func newPublisher(cfg config.Config) *publisher {
	return &publisher{
		url: cfg.PublishURL,
		client: &http.Client{
			Timeout: time.Duration(cfg.PublishTimeoutSeconds) * time.Second,
		},
	}
}

func (p *publisher) publish(ctx context.Context, payload any) (string, error) {
	if strings.TrimSpace(p.url) == "" {
		return "", errPublishUnconfigured
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to build publish request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build publish request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("publish request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read publish response")
	}

	url := extractPublishedURL(raw)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || url == "" {
		message := strings.TrimSpace(string(raw))
		if message == "" {
			message = "publish failed"
		}
		return "", fmt.Errorf("publish failed (%d): %s", resp.StatusCode, message)
	}
	return url, nil
}

// extractPublishedURL digs the published URL out of whichever response
// shape the function returned.
func extractPublishedURL(raw []byte) string {
	var direct struct {
		URL  string `json:"url"`
		Body string `json:"body"`
	}
	if err := json.Unmarshal(raw, &direct); err != nil {
		return ""
	}
	if direct.URL != "" {
		return direct.URL
	}
	if direct.Body != "" {
		var inner struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal([]byte(direct.Body), &inner); err == nil {
			return inner.URL
		}
	}
	return ""
}

func (s *Server) handlePublishGame(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if _, err := s.games.Get(id); err != nil {
		writeStoreError(w, err, "publish game")
		return
	}
	url, err := s.publisher.publish(r.Context(), map[string]uint{"gameId": id})
	if err != nil {
		writePublishError(w, err)
		return
	}
	log.Printf("game published game_id=%d url=%s", id, url)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (s *Server) handlePublishQuestion(w http.ResponseWriter, r *http.Request) {
	input, ok := s.bindQuestionInput(w, r)
	if !ok {
		return
	}
	url, err := s.publisher.publish(r.Context(), map[string]string{
		"slug":     input.Slug,
		"question": input.Question,
		"answer":   input.Answer,
	})
	if err != nil {
		writePublishError(w, err)
		return
	}
	log.Printf("question published slug=%s url=%s", input.Slug, url)
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func writePublishError(w http.ResponseWriter, err error) {
	if errors.Is(err, errPublishUnconfigured) {
		writeError(w, http.StatusServiceUnavailable, "publishing is not configured")
		return
	}
	log.Printf("publish error=%v", err)
	writeError(w, http.StatusBadGateway, err.Error())
}
