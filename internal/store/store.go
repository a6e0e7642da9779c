// Package store is a minimal, in-memory stand-in for the key/value host
// spec.md §1 names as an external collaborator: it hosts wave objects by
// string key and dispatches the five named operations. It is not a wire
// protocol implementation — no RESP, no network listener — just the
// command surface a real host would sit behind.
package store

import (
	"sync"

	"github.com/golang/glog"

	"github.com/fooinha/wave/pkg/wave"
)

// entry pairs a wave with its host-tracked auto-expire deadline.
type entry struct {
	w          *wave.Wave
	expireAtMs int64 // 0 means no expiry armed
}

// Store is a mutex-protected map[string]*entry, grounded on the
// teacher's pkg/result.Table (mutex + collection, Add/Len style).
type Store struct {
	mu    sync.Mutex
	waves map[string]*entry
}

// New creates an empty store.
func New() *Store {
	return &Store{waves: make(map[string]*entry)}
}

// Len reports the number of keys currently hosted.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.waves)
}

// lookup returns the entry for key, or nil if absent. Caller must hold s.mu.
func (s *Store) lookup(key string) *entry {
	return s.waves[key]
}

// ExpireDeadline returns the armed auto-expire deadline (ms, spec §6) for
// key, or 0 if none is armed or the key is absent. A real host would wire
// this into its own expiry clock; Store only computes and exposes it, per
// spec §5's "no timers" rule.
func (s *Store) ExpireDeadline(key string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.waves[key]
	if e == nil {
		return 0
	}
	return e.expireAtMs
}

// Delete drops a key outright (used by tests and by admin tooling; not
// one of the five named ops).
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.waves, key)
	glog.Infof("store: deleted key %q", key)
}
