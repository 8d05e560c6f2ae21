package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one browser's server-side session. Values is an opaque
// mapping owned by whoever set the keys; the social login handshake stash
// occupies a single fixed key in it. Sessions are short-lived and cleaned
// up regularly.
//
// The in-memory repo hands the same Session to every request carrying its
// cookie, so Values access is guarded. Pop in particular must stay single
// use across concurrent requests.
type Session struct {
	ID        string         // Unique session identifier (UUID)
	UserID    string         // Set once a local user has authenticated
	Values    map[string]any // Arbitrary per-session state
	CreatedAt time.Time      // When session was created
	ExpiresAt time.Time      // When session expires

	valuesLock sync.Mutex
}

func New(maxAge time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New().String(),
		Values:    make(map[string]any),
		CreatedAt: now,
		ExpiresAt: now.Add(maxAge),
	}
}

// Set stores a value under a key, replacing any previous value
func (s *Session) Set(key string, value any) {
	s.valuesLock.Lock()
	defer s.valuesLock.Unlock()

	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = value
}

// Get returns the value stored under a key
func (s *Session) Get(key string) (any, bool) {
	s.valuesLock.Lock()
	defer s.valuesLock.Unlock()

	v, ok := s.Values[key]
	return v, ok
}

// Pop removes and returns the value stored under a key. A missing key is a
// normal, checked condition.
func (s *Session) Pop(key string) (any, bool) {
	s.valuesLock.Lock()
	defer s.valuesLock.Unlock()

	v, ok := s.Values[key]
	if ok {
		delete(s.Values, key)
	}
	return v, ok
}

// Expired reports whether the session has passed its expiry
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Authenticated reports whether a local user is logged in on this session
func (s *Session) Authenticated() bool {
	return s.UserID != ""
}
