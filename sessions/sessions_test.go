package sessions_test

import (
	"sync"
	"testing"
	"time"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/sessions"
	"github.com/stretchr/testify/require"
)

func TestSession_ValueLifecycle(t *testing.T) {
	session := sessions.New(30 * time.Minute)
	require.NotEmpty(t, session.ID)
	require.False(t, session.Authenticated())

	session.Set("key", "value")
	v, ok := session.Get("key")
	require.True(t, ok)
	require.Equal(t, "value", v)

	v, ok = session.Pop("key")
	require.True(t, ok)
	require.Equal(t, "value", v)

	_, ok = session.Pop("key")
	require.False(t, ok)
}

func TestSession_Expiry(t *testing.T) {
	session := sessions.New(30 * time.Minute)

	require.False(t, session.Expired(time.Now()))
	require.True(t, session.Expired(time.Now().Add(31*time.Minute)))
}

func TestInMemorySessionRepo_RoundTrip(t *testing.T) {
	repo := sessions.NewInMemorySessionRepo()
	session := sessions.New(30 * time.Minute)

	require.NoError(t, repo.Upsert(session))

	got, err := repo.Get(session.ID)
	require.NoError(t, err)
	require.Equal(t, session.ID, got.ID)

	require.NoError(t, repo.Delete(session.ID))
	_, err = repo.Get(session.ID)
	require.ErrorIs(t, err, interrors.ErrSessionNotFound)
}

func TestInMemorySessionRepo_ExpiredSession(t *testing.T) {
	repo := sessions.NewInMemorySessionRepo()
	session := sessions.New(-time.Minute)
	require.NoError(t, repo.Upsert(session))

	_, err := repo.Get(session.ID)
	require.ErrorIs(t, err, interrors.ErrSessionExpired)
}

func TestInMemorySessionRepo_DeleteExpired(t *testing.T) {
	repo := sessions.NewInMemorySessionRepo()
	stale := sessions.New(-time.Minute)
	fresh := sessions.New(30 * time.Minute)
	require.NoError(t, repo.Upsert(stale))
	require.NoError(t, repo.Upsert(fresh))

	require.NoError(t, repo.DeleteExpired(time.Now()))

	_, err := repo.Get(stale.ID)
	require.ErrorIs(t, err, interrors.ErrSessionNotFound)
	_, err = repo.Get(fresh.ID)
	require.NoError(t, err)
}

// Two requests carrying the same session cookie hit the same Session, so
// concurrent value access must be safe. Run with -race.
func TestSession_ConcurrentValueAccess(t *testing.T) {
	repo := sessions.NewInMemorySessionRepo()
	session := sessions.New(30 * time.Minute)
	require.NoError(t, repo.Upsert(session))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got, err := repo.Get(session.ID)
				if err != nil {
					t.Error(err)
					return
				}
				got.Set("key", i)
				got.Get("key")
				got.Pop("key")
			}
		}()
	}
	wg.Wait()
}

func TestSession_PopIsSingleUseUnderContention(t *testing.T) {
	session := sessions.New(30 * time.Minute)
	session.Set("key", "value")

	var wg sync.WaitGroup
	hits := make(chan any, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if v, ok := session.Pop("key"); ok {
				hits <- v
			}
		}()
	}
	wg.Wait()
	close(hits)

	var popped []any
	for v := range hits {
		popped = append(popped, v)
	}
	require.Len(t, popped, 1, "Exactly one concurrent pop may win")
}

func TestInMemorySessionRepo_RejectsUnidentifiedSession(t *testing.T) {
	repo := sessions.NewInMemorySessionRepo()

	err := repo.Upsert(&sessions.Session{})
	require.ErrorIs(t, err, interrors.ErrInternal)
}
