package uploads

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), zap.NewNop())
}

func TestSave_StoresUnderDatedPath(t *testing.T) {
	store := newStore(t)

	info, err := store.Save(context.Background(), "guía docente.pdf", "application/pdf", 11, strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(info.Path, "recursos/") {
		t.Errorf("path outside recursos/: %q", info.Path)
	}
	if !strings.HasSuffix(info.Path, ".pdf") {
		t.Errorf("extension lost: %q", info.Path)
	}
	if strings.Contains(info.Path, " ") {
		t.Errorf("unsanitized filename in path: %q", info.Path)
	}
	if info.Size != 11 {
		t.Errorf("Size: got %d, want 11", info.Size)
	}

	raw, err := os.ReadFile(filepath.Join(store.Root(), filepath.FromSlash(info.Path)))
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(raw) != "hello world" {
		t.Errorf("stored content: %q", raw)
	}
}

func TestSave_UniquePaths(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	a, err := store.Save(ctx, "video.mp4", "video/mp4", 1, strings.NewReader("a"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := store.Save(ctx, "video.mp4", "video/mp4", 1, strings.NewReader("b"))
	if err != nil {
		t.Fatal(err)
	}
	if a.Path == b.Path {
		t.Errorf("same-name uploads collided: %q", a.Path)
	}
}

func TestSave_RejectsDisallowedType(t *testing.T) {
	store := newStore(t)
	_, err := store.Save(context.Background(), "app.exe", "application/x-msdownload", 1, strings.NewReader("x"))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestSave_RejectsDeclaredOversize(t *testing.T) {
	store := newStore(t)
	_, err := store.Save(context.Background(), "big.mp4", "video/mp4", MaxFileSize+1, strings.NewReader("x"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestSave_RejectsActualOversize(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates the full size cap")
	}
	store := newStore(t)

	// Declared size lies; the byte count read is what must decide.
	payload := bytes.NewReader(make([]byte, MaxFileSize+1))
	_, err := store.Save(context.Background(), "big.mp4", "video/mp4", 1, payload)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestIsAllowedType(t *testing.T) {
	allowed := []string{
		"video/mp4",
		"application/pdf",
		"application/vnd.ms-powerpoint",
		"application/vnd.openxmlformats-officedocument.presentationml.presentation",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"image/jpeg",
		"image/png",
	}
	for _, ct := range allowed {
		if !IsAllowedType(ct) {
			t.Errorf("IsAllowedType(%q) = false, want true", ct)
		}
	}
	for _, ct := range []string{"", "text/html", "image/gif", "video/webm"} {
		if IsAllowedType(ct) {
			t.Errorf("IsAllowedType(%q) = true, want false", ct)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plan de aula.pdf", "plan_de_aula.pdf"},
		{"../../etc/passwd", "passwd"},
		{"", "file"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
