package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/joelmarkovski/ltu-a2/internal/config"
	"github.com/joelmarkovski/ltu-a2/internal/tabs"
)

func TestGenerateTabs(t *testing.T) {
	ts := newTestServer(t, config.Default())

	resp := doRequest(t, ts, http.MethodPost, "/api/tabs", map[string]any{
		"labels": []string{"One", "Two"},
		"active": 1,
	})
	wantStatus(t, resp, http.StatusOK)
	body := decodeBody(t, resp)
	html, _ := body["html"].(string)
	if !strings.Contains(html, `role="tab"`) || !strings.Contains(html, "<h3>Two</h3>") {
		t.Fatalf("unexpected document: %.80s", html)
	}
	if _, present := body["saveId"]; present {
		t.Fatalf("saveId should be omitted without save, got %v", body["saveId"])
	}
}

func TestGenerateTabsValidation(t *testing.T) {
	ts := newTestServer(t, config.Default())

	resp := doRequest(t, ts, http.MethodPost, "/api/tabs", map[string]any{
		"labels": []string{},
	})
	wantStatus(t, resp, http.StatusBadRequest)

	resp = doRequest(t, ts, http.MethodPost, "/api/tabs", map[string]any{
		"labels": []string{"One"},
		"active": 3,
	})
	wantStatus(t, resp, http.StatusBadRequest)
}

func TestGenerateTabsWithSave(t *testing.T) {
	ts := newTestServer(t, config.Default())

	resp := doRequest(t, ts, http.MethodPost, "/api/tabs", map[string]any{
		"labels": []string{"A", "B", "C"},
		"active": 2,
		"save":   true,
	})
	wantStatus(t, resp, http.StatusOK)
	body := decodeBody(t, resp)
	saveID, ok := body["saveId"].(float64)
	if !ok || saveID <= 0 {
		t.Fatalf("expected a save id, got %v", body["saveId"])
	}

	resp = doRequest(t, ts, http.MethodGet, savePath(uint(saveID)), nil)
	wantStatus(t, resp, http.StatusOK)
	row := decodeBody(t, resp)
	if row["type"] != tabs.SaveType {
		t.Fatalf("expected save type %q, got %v", tabs.SaveType, row["type"])
	}

	snap, err := tabs.Decode(row["payload"].(string))
	if err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Labels) != 3 || snap.Active != 2 {
		t.Fatalf("snapshot mismatch: %+v", snap)
	}
}
