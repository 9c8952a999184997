package health

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	catalogstore "github.com/uniajc/educadigital/internal/app/store/catalog"
	submissionstore "github.com/uniajc/educadigital/internal/app/store/submissions"
	"github.com/uniajc/educadigital/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Catalog     *catalogstore.Store
	Submissions *submissionstore.Store
	Log         *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(catalog *catalogstore.Store, subs *submissionstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Catalog:     catalog,
		Submissions: subs,
		Log:         logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status      string `json:"status"`
	Slot        string `json:"slot"`
	Resources   int    `json:"resources"`
	Submissions int    `json:"submissions"`
	Error       string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "slot":"writable", "resources":12, "submissions":3 }
//
// A missing slot file is healthy (it reads as empty); an unwritable slot
// directory is not, since submissions would fail.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status: "ok",
		Slot:   "writable",
	}

	if err := checkWritableDir(h.Submissions.Path()); err != nil {
		h.Log.Error("health-check: submission slot not writable", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Slot = "unwritable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	resp.Submissions = len(h.Submissions.Load(ctx))
	resp.Resources = len(h.Catalog.Load(ctx))

	_ = json.NewEncoder(w).Encode(resp)
}

// checkWritableDir verifies the slot's directory exists or can be
// created, without touching the slot file itself.
func checkWritableDir(slotPath string) error {
	dir := filepath.Dir(slotPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".healthcheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
