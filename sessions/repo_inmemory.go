package sessions

import (
	"sync"
	"time"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
)

var _ Repo = (*InMemorySessionRepo)(nil)

// InMemorySessionRepo is an in-memory implementation of Repo
type InMemorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewInMemorySessionRepo() *InMemorySessionRepo {
	return &InMemorySessionRepo{
		sessions: make(map[string]*Session),
	}
}

func (r *InMemorySessionRepo) Upsert(session *Session) error {
	if session == nil || session.ID == "" {
		return interrors.Wrapf(interrors.ErrInternal, "[InMemorySessionRepo.Upsert] session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *InMemorySessionRepo) Get(sessionID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, interrors.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, interrors.ErrSessionExpired
	}
	return session, nil
}

func (r *InMemorySessionRepo) Delete(sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

func (r *InMemorySessionRepo) DeleteExpired(cutoff time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, session := range r.sessions {
		if session.ExpiresAt.Before(cutoff) {
			delete(r.sessions, id)
		}
	}
	return nil
}
