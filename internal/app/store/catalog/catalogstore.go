// internal/app/store/catalog/catalogstore.go
package catalogstore

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dalemusser/waffle/pantry/text"
	submissionstore "github.com/uniajc/educadigital/internal/app/store/submissions"
	"github.com/uniajc/educadigital/internal/domain/models"
	"go.uber.org/zap"
)

// Store assembles the merged catalog: user submissions from the local
// slot first, then the seed catalog. Records are concatenated without
// deduplication; when the same ID appears in both sources, lookups
// return the local record because it sorts first.
type Store struct {
	subs *submissionstore.Store
	seed *SeedSource
	log  *zap.Logger

	loadSeq uint64 // issued to each Load before its fetch starts

	mu        sync.Mutex
	installed uint64
	current   []models.Resource
}

// New builds a catalog store over the submission slot and seed source.
func New(subs *submissionstore.Store, seed *SeedSource, logger *zap.Logger) *Store {
	return &Store{subs: subs, seed: seed, log: logger}
}

// Load returns the merged catalog in its canonical order: submission
// slot records in stored order, then seed records in seed order. It
// never fails; each source degrades to empty on its own.
//
// Concurrent loads race on the cached copy with latest-start-wins
// tokens, so a slow stale fetch cannot overwrite the result of a load
// that started after it.
func (s *Store) Load(ctx context.Context) []models.Resource {
	token := atomic.AddUint64(&s.loadSeq, 1)

	local := s.subs.Load(ctx)
	seed := s.seed.Fetch(ctx)

	merged := make([]models.Resource, 0, len(local)+len(seed))
	merged = append(merged, local...)
	merged = append(merged, seed...)

	s.mu.Lock()
	if token > s.installed {
		s.installed = token
		s.current = merged
	}
	s.mu.Unlock()
	return merged
}

// Get returns the resource with the given ID from a fresh load. With
// duplicate IDs across sources the local submission wins.
func (s *Store) Get(ctx context.Context, id string) (models.Resource, bool) {
	for _, r := range s.Load(ctx) {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resource{}, false
}

// BumpViews increments a resource's view counter and returns the new
// count. For slot-backed records the bump is persisted; for seed
// records only the cached copy is touched, so the count resets on the
// next load. An unknown ID returns 0.
func (s *Store) BumpViews(ctx context.Context, id string) int {
	for _, r := range s.subs.Load(ctx) {
		if r.ID == id {
			views := r.Usage.Views + 1
			if err := s.subs.UpdateViews(ctx, id, views); err != nil {
				s.log.Warn("persisting view count failed",
					zap.String("id", id), zap.Error(err))
			}
			return views
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.current {
		if s.current[i].ID == id {
			s.current[i].Usage.Views++
			return s.current[i].Usage.Views
		}
	}
	return 0
}

// Query is one catalog filter request. Zero-valued fields are inactive;
// active fields combine with AND.
type Query struct {
	Search  string // matched against title, objective description, and tags
	Faculty string // faculty filter code, not the display name
	Type    string // content type identifier
	Level   string // education level display name
}

// Filter applies q to rs, preserving order. Text matching is
// case-insensitive substring containment. An unknown faculty code
// matches nothing.
func Filter(rs []models.Resource, q Query) []models.Resource {
	var facultyName string
	if q.Faculty != "" {
		name, ok := models.FacultyName(q.Faculty)
		if !ok {
			return nil
		}
		facultyName = name
	}
	needle := text.Fold(strings.TrimSpace(q.Search))

	out := make([]models.Resource, 0, len(rs))
	for _, r := range rs {
		if needle != "" && !matchesSearch(r, needle) {
			continue
		}
		if facultyName != "" && r.Faculty != facultyName {
			continue
		}
		if q.Type != "" && r.Content.Type != q.Type {
			continue
		}
		if q.Level != "" && r.Level != q.Level {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r models.Resource, needle string) bool {
	if strings.Contains(text.Fold(r.Title), needle) {
		return true
	}
	if strings.Contains(text.Fold(r.Objective.Description), needle) {
		return true
	}
	for _, tag := range r.Usage.Tags {
		if strings.Contains(text.Fold(tag), needle) {
			return true
		}
	}
	return false
}
