// Package uploads stores resource files submitted through the upload
// form on local disk, under a unique dated path, after checking the
// file against the type allow-list and the size cap.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxFileSize is the upload size cap, in bytes.
const MaxFileSize = 100 * 1024 * 1024

var (
	ErrFileTooLarge    = errors.New("file exceeds the 100MB limit")
	ErrUnsupportedType = errors.New("file type not allowed")
)

// allowedTypes is the content type allow-list for uploads.
var allowedTypes = map[string]struct{}{
	"video/mp4":       {},
	"application/pdf": {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"image/jpeg": {},
	"image/png":  {},
}

// IsAllowedType reports whether contentType may be uploaded.
func IsAllowedType(contentType string) bool {
	_, ok := allowedTypes[contentType]
	return ok
}

// AllowedTypesHint is the format list shown in upload error messages.
const AllowedTypesHint = "MP4, PDF, PPT, DOC, JPG o PNG"

// Info contains metadata about a stored upload.
type Info struct {
	Path        string
	FileName    string
	Size        int64
	ContentType string
}

// Store writes uploads under a root directory and serves them back by
// relative path.
type Store struct {
	root string
	log  *zap.Logger
}

// New builds a Store rooted at dir.
func New(dir string, logger *zap.Logger) *Store {
	return &Store{root: dir, log: logger}
}

// Save validates and stores one upload. The path is generated as
// recursos/YYYY/MM/uuid-filename, so repeated uploads of the same file
// never collide. The size cap is enforced on the actual bytes read,
// not the declared size.
func (s *Store) Save(ctx context.Context, filename, contentType string, declaredSize int64, r io.Reader) (Info, error) {
	if !IsAllowedType(contentType) {
		return Info{}, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	if declaredSize > MaxFileSize {
		return Info{}, ErrFileTooLarge
	}

	now := time.Now().UTC()
	dateDir := fmt.Sprintf("recursos/%04d/%02d", now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], sanitizeFilename(filename))
	relPath := filepath.ToSlash(filepath.Join(dateDir, uniqueName))

	absDir := filepath.Join(s.root, filepath.FromSlash(dateDir))
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return Info{}, fmt.Errorf("create upload directory: %w", err)
	}
	absPath := filepath.Join(s.root, filepath.FromSlash(relPath))

	f, err := os.Create(absPath)
	if err != nil {
		return Info{}, fmt.Errorf("create upload file: %w", err)
	}

	// Read one byte past the cap so oversized streams are detected even
	// when the declared size was wrong.
	written, err := io.Copy(f, io.LimitReader(r, MaxFileSize+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(absPath)
		return Info{}, fmt.Errorf("write upload: %w", err)
	}
	if written > MaxFileSize {
		os.Remove(absPath)
		return Info{}, ErrFileTooLarge
	}

	s.log.Info("stored upload",
		zap.String("path", relPath),
		zap.Int64("size", written),
		zap.String("content_type", contentType))

	return Info{
		Path:        relPath,
		FileName:    filename,
		Size:        written,
		ContentType: contentType,
	}, nil
}

// URL returns the public URL for a stored upload.
func (s *Store) URL(path string) string {
	return "/uploads/" + path
}

// Root returns the upload root directory.
func (s *Store) Root() string { return s.root }

// sanitizeFilename removes characters that could be problematic in
// filenames, keeping a recognizable name with its extension.
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	if filename == "." || filename == ".." || filename == string(filepath.Separator) {
		return "file"
	}

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}
