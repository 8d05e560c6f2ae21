package sessions

import "time"

// Repo defines the interface for server-side session storage.
type Repo interface {
	// Upsert creates or updates a session
	Upsert(session *Session) error

	// Get retrieves a session by ID. Returns
	// internal/errors.ErrSessionNotFound for unknown ids and
	// internal/errors.ErrSessionExpired for sessions past their expiry.
	Get(sessionID string) (*Session, error)

	// Delete removes a session by ID
	Delete(sessionID string) error

	// DeleteExpired removes sessions that expired before the given time
	DeleteExpired(cutoff time.Time) error
}
