package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/uniajc/educadigital/internal/app/features/health"
	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	"github.com/uniajc/educadigital/internal/testutil"
	"go.uber.org/zap"
)

func TestServe_OK(t *testing.T) {
	subs := testutil.NewSubmissionStore(t)
	seed := catalogstore.NewSeedSource("", "", zap.NewNop())
	catalog := catalogstore.New(subs, seed, zap.NewNop())
	handler := health.NewHandler(catalog, subs, zap.NewNop())

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()

	handler.Serve(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	var response struct {
		Status      string `json:"status"`
		Slot        string `json:"slot"`
		Resources   int    `json:"resources"`
		Submissions int    `json:"submissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	if response.Status != "ok" {
		t.Errorf("status: got %q, want %q", response.Status, "ok")
	}
	if response.Slot != "writable" {
		t.Errorf("slot: got %q, want %q", response.Slot, "writable")
	}
	// The built-in seed backs the catalog when no seed source is set.
	if response.Resources != 2 {
		t.Errorf("resources: got %d, want 2", response.Resources)
	}
	if response.Submissions != 0 {
		t.Errorf("submissions: got %d, want 0", response.Submissions)
	}
}
