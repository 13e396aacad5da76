package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joelmarkovski/ltu-a2/internal/config"
	"github.com/joelmarkovski/ltu-a2/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	srv := New(conn, cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var body []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	return body
}

func wantStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func createQuestion(t *testing.T, ts *httptest.Server, slug string) uint {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/qa", map[string]string{
		"slug":     slug,
		"question": "question for " + slug,
		"answer":   "answer for " + slug,
	})
	wantStatus(t, resp, http.StatusCreated)
	body := decodeBody(t, resp)
	id, ok := body["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("expected numeric id, got %v", body["id"])
	}
	return uint(id)
}

func createGame(t *testing.T, ts *httptest.Server, title string, questionIDs ...uint) uint {
	t.Helper()
	stages := make([]map[string]any, 0, len(questionIDs))
	for _, id := range questionIDs {
		stages = append(stages, map[string]any{"questionId": id})
	}
	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"title":  title,
		"stages": stages,
	})
	wantStatus(t, resp, http.StatusCreated)
	body := decodeBody(t, resp)
	id, ok := body["id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("expected numeric game id, got %v", body["id"])
	}
	return uint(id)
}

func gamePath(id uint) string {
	return fmt.Sprintf("/api/games/%d", id)
}

func questionPath(id uint) string {
	return fmt.Sprintf("/api/qa/%d", id)
}

func savePath(id uint) string {
	return fmt.Sprintf("/api/saves/%d", id)
}
