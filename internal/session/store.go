// Package session holds per-user conversation state. Access is serialized per
// user: Store.With runs the caller's function under that user's lock, so two
// messages from one user can never interleave their field writes, while
// messages from different users proceed in parallel.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"otc-signal-bot/internal/domain"
)

// Persister is an optional write-behind snapshot of sessions, so a restart
// does not drop in-flight conversations. A nil persister disables it.
type Persister interface {
	Load(ctx context.Context, userID int64) (*domain.Session, error)
	Save(ctx context.Context, sess *domain.Session) error
	Delete(ctx context.Context, userID int64) error
}

type entry struct {
	mu   sync.Mutex
	sess *domain.Session
}

type Store struct {
	mu        sync.RWMutex
	entries   map[int64]*entry
	persister Persister
	now       func() time.Time
}

func NewStore(persister Persister) *Store {
	return &Store{
		entries:   make(map[int64]*entry),
		persister: persister,
		now:       time.Now,
	}
}

// With executes fn with the session for userID, creating a fresh session on
// first contact. The per-user lock is held for the whole call and released on
// every exit path.
func (s *Store) With(ctx context.Context, userID int64, fn func(*domain.Session)) {
	e := s.entry(userID)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.sess == nil {
		e.sess = s.restore(ctx, userID)
	}
	e.sess.LastActivity = s.now().UTC()

	fn(e.sess)

	if s.persister != nil {
		if err := s.persister.Save(ctx, e.sess); err != nil {
			log.Printf("session store: snapshot for user %d failed: %v", userID, err)
		}
	}
}

func (s *Store) entry(userID int64) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; ok {
		return e
	}
	e = &entry{}
	s.entries[userID] = e
	return e
}

func (s *Store) restore(ctx context.Context, userID int64) *domain.Session {
	if s.persister != nil {
		sess, err := s.persister.Load(ctx, userID)
		if err != nil {
			log.Printf("session store: restore for user %d failed: %v", userID, err)
		} else if sess != nil {
			return sess
		}
	}
	return domain.NewSession(userID)
}

// Count returns the number of sessions currently held in memory.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many were
// removed. Snapshots for swept sessions are deleted as well.
func (s *Store) Sweep(ctx context.Context, maxIdle time.Duration) int {
	cutoff := s.now().UTC().Add(-maxIdle)

	s.mu.RLock()
	candidates := make(map[int64]*entry, len(s.entries))
	for id, e := range s.entries {
		candidates[id] = e
	}
	s.mu.RUnlock()

	removed := 0
	for id, e := range candidates {
		e.mu.Lock()
		stale := e.sess != nil && e.sess.LastActivity.Before(cutoff)
		e.mu.Unlock()
		if !stale {
			continue
		}

		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		removed++

		if s.persister != nil {
			if err := s.persister.Delete(ctx, id); err != nil {
				log.Printf("session store: delete snapshot for user %d failed: %v", id, err)
			}
		}
	}
	return removed
}
