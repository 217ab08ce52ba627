package catalog

import (
	"sync"

	"github.com/atomicstack/tmux-quicklaunch/internal/launcher"
)

// Info summarises the indexed entries.
type Info struct {
	Total int
	Apps  int
	Files int
}

// Store holds the most recent crawl. It is read by search goroutines while
// the backend watcher replaces it, so access is guarded.
type Store struct {
	mu      sync.RWMutex
	entries []launcher.SearchResult
	version uint64
}

func NewStore() *Store {
	return &Store{}
}

// Entries returns a copy of the indexed entries.
func (s *Store) Entries() []launcher.SearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneEntries(s.entries)
}

// SetEntries replaces the indexed entries wholesale.
func (s *Store) SetEntries(entries []launcher.SearchResult) {
	s.mu.Lock()
	s.entries = cloneEntries(entries)
	s.version++
	s.mu.Unlock()
}

// Version increases on every SetEntries call.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info := Info{Total: len(s.entries)}
	for _, entry := range s.entries {
		if entry.Kind == KindApp {
			info.Apps++
		} else {
			info.Files++
		}
	}
	return info
}

func cloneEntries(entries []launcher.SearchResult) []launcher.SearchResult {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]launcher.SearchResult, len(entries))
	copy(dup, entries)
	return dup
}
