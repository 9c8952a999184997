// internal/app/store/submissions/submissionstore.go
package submissionstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// SlotKey is the name of the local submission cache slot. The slot holds
// one JSON-encoded array of resources, read in full at catalog load time
// and read-modify-written at submission time.
const SlotKey = "recursos_uniajc"

var (
	ErrNotFound = errors.New("submission not found")

	// ErrConflict is returned when the slot keeps changing under a
	// read-modify-write and the bounded retries are exhausted. Another
	// writer (a second browser tab, in the original deployment) won.
	ErrConflict = errors.New("submission slot changed concurrently")
)

const casRetries = 3

// Store is the local submission cache: user-submitted resources appended
// to a single JSON slot on disk. Appends use a compare-and-swap
// read-modify-write so a concurrent writer cannot be silently
// overwritten; the single-writer happy path is one read and one write.
type Store struct {
	path string
	log  *zap.Logger

	mu sync.Mutex // serializes in-process writers; cross-process races go through CAS
}

// New builds a Store over the slot file at path. The file may not exist
// yet; that reads as an empty slot.
func New(path string, logger *zap.Logger) *Store {
	return &Store{path: path, log: logger}
}

// Path returns the slot file location.
func (s *Store) Path() string { return s.path }

// Load returns every resource in the slot, in stored (submission) order.
// A missing file or a parse failure is treated as an empty slot, since
// the catalog load must never fail on cache trouble; the parse failure
// is logged so it is not silently lost.
func (s *Store) Load(ctx context.Context) []models.Resource {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("submission slot read failed, treating as empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}
	return s.decode(raw)
}

// Append adds one resource to the end of the slot.
//
// The write is a compare-and-swap read-modify-write: the raw bytes read
// at the start are compared against the slot just before the atomic
// replace, and the whole operation retries when another writer got in
// between. After the retries are exhausted it returns ErrConflict rather
// than clobbering someone else's submission.
func (s *Store) Append(ctx context.Context, r models.Resource) error {
	if err := r.Validate(); err != nil {
		return err
	}
	return s.rmw(ctx, func(existing []models.Resource) ([]models.Resource, error) {
		return append(existing, r), nil
	})
}

// UpdateViews persists a new view count for a submitted resource. Only
// records living in this slot can be updated; seed-sourced resources
// have no persistence path and their counters stay ephemeral.
func (s *Store) UpdateViews(ctx context.Context, id string, views int) error {
	return s.rmw(ctx, func(existing []models.Resource) ([]models.Resource, error) {
		for i := range existing {
			if existing[i].ID == id {
				existing[i].Usage.Views = views
				return existing, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	})
}

// rmw runs one compare-and-swap read-modify-write cycle over the slot.
func (s *Store) rmw(ctx context.Context, mutate func([]models.Resource) ([]models.Resource, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < casRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		before, err := os.ReadFile(s.path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read submission slot: %w", err)
		}

		next, err := mutate(s.decode(before))
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(next, "", "  ")
		if err != nil {
			return fmt.Errorf("encode submission slot: %w", err)
		}

		// Re-read just before the swap; retry if another writer moved the
		// slot since our read.
		current, err := os.ReadFile(s.path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("re-read submission slot: %w", err)
		}
		if !bytes.Equal(before, current) {
			s.log.Warn("submission slot changed during write, retrying",
				zap.Int("attempt", attempt+1))
			continue
		}

		if err := s.replace(encoded); err != nil {
			return err
		}
		return nil
	}
	return ErrConflict
}

// replace atomically swaps the slot contents via a temp file + rename.
func (s *Store) replace(encoded []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create slot directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, SlotKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("close temp slot: %w", err)
	}
	if err := os.Rename(name, s.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("swap submission slot: %w", err)
	}
	return nil
}

// decode parses slot bytes, quarantining malformed records instead of
// failing the whole slot. nil/empty input is an empty slot.
func (s *Store) decode(raw []byte) []models.Resource {
	if len(raw) == 0 {
		return nil
	}
	var all []models.Resource
	if err := json.Unmarshal(raw, &all); err != nil {
		s.log.Warn("submission slot parse failed, treating as empty",
			zap.String("path", s.path), zap.Error(err))
		return nil
	}
	valid := all[:0]
	for _, r := range all {
		if err := r.Validate(); err != nil {
			s.log.Warn("quarantined malformed submission", zap.Error(err))
			continue
		}
		valid = append(valid, r)
	}
	return valid
}
