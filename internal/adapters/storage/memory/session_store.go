package memory

import (
	"sync"
	"time"

	"github.com/Adithya-srikar/Ai-interview/internal/domain"
	"github.com/Adithya-srikar/Ai-interview/internal/observability"
)

// SessionStore keeps live sessions in process memory. A sweeper goroutine
// evicts sessions that have not been touched within the TTL, so finished and
// abandoned interviews do not accumulate forever.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session

	ttl     time.Duration
	now     func() time.Time
	onEvict func(domain.SessionID)
	stop    chan struct{}
	once    sync.Once
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// SetEvictHook registers a callback for every session the sweeper removes.
// Must be set before StartSweeper.
func (s *SessionStore) SetEvictHook(fn func(domain.SessionID)) {
	s.onEvict = fn
}

func (s *SessionStore) Put(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *SessionStore) Get(id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

func (s *SessionStore) Delete(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// StartSweeper runs the TTL sweep every interval until Close is called.
func (s *SessionStore) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := s.sweep(); n > 0 {
					observability.Logger().Info("swept stale sessions", "count", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *SessionStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

// sweep removes every session whose last update is older than the TTL and
// returns how many were evicted. A session stuck in the active state past
// its deadline stops being updated, so it ages out the same way terminal
// ones do.
func (s *SessionStore) sweep() int {
	now := s.now()

	s.mu.Lock()
	var evicted []domain.SessionID
	for id, session := range s.sessions {
		if now.Sub(session.UpdatedAt) > s.ttl {
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
	}
	s.mu.Unlock()

	if s.onEvict != nil {
		for _, id := range evicted {
			s.onEvict(id)
		}
	}
	return len(evicted)
}

// cloneSession copies the session and its question slice. Put and Get both
// clone, so the store never shares mutable state with callers and the sweeper
// only ever reads store-owned copies.
func cloneSession(session *domain.Session) *domain.Session {
	clone := *session
	clone.Questions = append([]string(nil), session.Questions...)
	return &clone
}
