package submissionstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	submissionstore "github.com/uniajc/educadigital/internal/app/store/submissions"
	"github.com/uniajc/educadigital/internal/domain/models"
	"github.com/uniajc/educadigital/internal/testutil"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) (*submissionstore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), submissionstore.SlotKey+".json")
	return submissionstore.New(path, zap.NewNop()), path
}

func TestLoad_MissingFile(t *testing.T) {
	store, _ := newTestStore(t)
	if got := store.Load(context.Background()); len(got) != 0 {
		t.Errorf("Load on missing file: got %d resources, want 0", len(got))
	}
}

func TestLoad_ParseFailureTreatedAsEmpty(t *testing.T) {
	store, path := newTestStore(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := store.Load(context.Background()); len(got) != 0 {
		t.Errorf("Load on corrupt slot: got %d resources, want 0", len(got))
	}
}

func TestAppend_ThenLoad(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := testutil.SampleResource("REC-A", "Primero")
	second := testutil.SampleResource("REC-B", "Segundo")

	if err := store.Append(ctx, first); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(ctx, second); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got := store.Load(ctx)
	if len(got) != 2 {
		t.Fatalf("Load: got %d resources, want 2", len(got))
	}
	if got[0].ID != "REC-A" || got[1].ID != "REC-B" {
		t.Errorf("order not preserved: got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestAppend_RejectsMalformed(t *testing.T) {
	store, _ := newTestStore(t)

	bad := testutil.SampleResource("", "Sin id")
	if err := store.Append(context.Background(), bad); !errors.Is(err, models.ErrMalformedResource) {
		t.Fatalf("expected ErrMalformedResource, got %v", err)
	}
	if got := store.Load(context.Background()); len(got) != 0 {
		t.Errorf("malformed append must not write: got %d resources", len(got))
	}
}

func TestLoad_QuarantinesMalformedRecords(t *testing.T) {
	store, path := newTestStore(t)

	records := []models.Resource{
		testutil.SampleResource("REC-OK", "Bueno"),
		{ID: "REC-BAD"}, // no title, no competencies
	}
	raw, err := json.Marshal(records)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	got := store.Load(context.Background())
	if len(got) != 1 || got[0].ID != "REC-OK" {
		t.Errorf("expected only the valid record to survive, got %v", got)
	}
}

func TestUpdateViews(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	r := testutil.SampleResource("REC-V", "Con visitas")
	if err := store.Append(ctx, r); err != nil {
		t.Fatal(err)
	}

	if err := store.UpdateViews(ctx, "REC-V", 7); err != nil {
		t.Fatalf("UpdateViews failed: %v", err)
	}
	got := store.Load(ctx)
	if got[0].Usage.Views != 7 {
		t.Errorf("Views: got %d, want 7", got[0].Usage.Views)
	}

	if err := store.UpdateViews(ctx, "REC-MISSING", 1); !errors.Is(err, submissionstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAppend_PreservesExistingSlot(t *testing.T) {
	// Seeding the slot out-of-band (as a second tab would) must survive a
	// subsequent append.
	store, path := newTestStore(t)
	ctx := context.Background()

	pre := []models.Resource{testutil.SampleResource("REC-PRE", "Preexistente")}
	raw, _ := json.Marshal(pre)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := store.Append(ctx, testutil.SampleResource("REC-NEW", "Nuevo")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got := store.Load(ctx)
	if len(got) != 2 || got[0].ID != "REC-PRE" || got[1].ID != "REC-NEW" {
		t.Errorf("slot merge wrong: got %v", got)
	}
}
