package snapshot

import (
	"sync"
	"time"
)

// Store holds the current snapshot. A reload swaps the whole document; readers never
// see a partially replaced snapshot and must not mutate what they get back.
type Store struct {
	mu       sync.RWMutex
	doc      *Document
	source   string
	loadedAt time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs a freshly loaded document.
func (s *Store) Replace(doc *Document, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	s.source = source
	s.loadedAt = time.Now()
}

// Current returns the active document, or nil before the first load.
func (s *Store) Current() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// Info describes the active snapshot.
type Info struct {
	Source    string `json:"source"`
	LoadedAt  string `json:"loadedAt,omitempty"`
	Actions   int    `json:"actions"`
	Incidents int    `json:"incidents"`
}

// Info returns a description of the active snapshot.
func (s *Store) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := Info{Source: s.source}
	if s.doc != nil {
		info.Actions = len(s.doc.SafetyActions)
		info.Incidents = len(s.doc.Incidents)
		info.LoadedAt = s.loadedAt.Format(time.RFC3339)
	}
	return info
}
