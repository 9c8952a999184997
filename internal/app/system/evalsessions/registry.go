// Package evalsessions keeps live evaluation attempts in memory, keyed
// by an opaque ID carried in the browser session. Attempts are never
// persisted; they expire after a period of inactivity.
package evalsessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uniajc/educadigital/internal/domain/evaluation"
	"go.uber.org/zap"
)

// ErrNotFound is returned for unknown or expired attempt IDs.
var ErrNotFound = errors.New("evaluation session not found")

const sweepInterval = time.Minute

type entry struct {
	session  *evaluation.Session
	lastSeen time.Time
}

// Registry owns the live attempts. All access goes through the registry
// lock, which also serializes use of the underlying sessions.
type Registry struct {
	ttl time.Duration
	log *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

// New builds a registry whose attempts expire ttl after their last use.
func New(ttl time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		ttl:     ttl,
		log:     logger,
		entries: make(map[string]*entry),
	}
}

// Put registers a fresh attempt and returns its ID.
func (reg *Registry) Put(s *evaluation.Session) string {
	id := uuid.NewString()
	reg.mu.Lock()
	reg.entries[id] = &entry{session: s, lastSeen: time.Now()}
	reg.mu.Unlock()
	return id
}

// With runs fn against the attempt with the given ID, refreshing its
// expiry. The registry lock is held for the duration of fn.
func (reg *Registry) With(id string, fn func(*evaluation.Session) error) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.entries[id]
	if !ok {
		return ErrNotFound
	}
	e.lastSeen = time.Now()
	return fn(e.session)
}

// Drop removes an attempt, typically after a successful submit.
func (reg *Registry) Drop(id string) {
	reg.mu.Lock()
	delete(reg.entries, id)
	reg.mu.Unlock()
}

// Len returns the number of live attempts.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.entries)
}

// StartSweeper evicts idle attempts in the background until ctx ends.
func (reg *Registry) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				reg.sweep(time.Now())
			}
		}
	}()
}

func (reg *Registry) sweep(now time.Time) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for id, e := range reg.entries {
		if now.Sub(e.lastSeen) > reg.ttl {
			delete(reg.entries, id)
			reg.log.Debug("expired evaluation session", zap.String("id", id))
		}
	}
}
