package memory

import (
	"sync"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
)

// TranscriptStore is the in-memory append-only message log, keyed by
// session. Reads observe entries in append order.
type TranscriptStore struct {
	mu      sync.RWMutex
	entries map[domain.SessionID][]*domain.TranscriptEntry
}

func NewTranscriptStore() *TranscriptStore {
	return &TranscriptStore{
		entries: make(map[domain.SessionID][]*domain.TranscriptEntry),
	}
}

func (s *TranscriptStore) Append(entry *domain.TranscriptEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.SessionID] = append(s.entries[entry.SessionID], entry)
	return nil
}

func (s *TranscriptStore) ReadAll(sessionID domain.SessionID) ([]*domain.TranscriptEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.entries[sessionID]
	out := make([]*domain.TranscriptEntry, len(entries))
	copy(out, entries)
	return out, nil
}
