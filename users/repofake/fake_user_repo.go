package fakeuserrepo

import (
	"sync"
	"time"

	"github.com/google/uuid"
	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/users"
)

var _ users.UserRepo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	users    map[string]*users.User
	emailIds map[string]string // email to user id
	lock     sync.RWMutex
}

func NewFakeUserRepo() users.UserRepo {
	return &FakeUserRepo{
		users:    make(map[string]*users.User),
		emailIds: make(map[string]string),
	}
}

func (ur *FakeUserRepo) Create(user *users.User) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	// Uniqueness on email has to be checked and written under one lock:
	// two concurrent signups for the same address are a real race.
	if user.Email != "" {
		if _, ok := ur.emailIds[user.Email]; ok {
			return nil, interrors.ErrConflict
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	stored := *user
	ur.users[stored.ID] = &stored
	if stored.Email != "" {
		ur.emailIds[stored.Email] = stored.ID
	}
	return &stored, nil
}

func (ur *FakeUserRepo) Upsert(user *users.User) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	ur.users[user.ID] = user
	ur.emailIds[user.Email] = user.ID
	return nil
}

func (ur *FakeUserRepo) Delete(email string) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return interrors.ErrNotFound
	}
	delete(ur.emailIds, email)

	if _, ok := ur.users[userID]; !ok {
		return nil
	}

	delete(ur.users, userID)
	return nil
}

func (ur *FakeUserRepo) GetByEmail(email string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return nil, interrors.ErrNotFound
	}
	return ur.users[userID], nil
}

func (ur *FakeUserRepo) GetByID(ID string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	user, ok := ur.users[ID]
	if !ok {
		return nil, interrors.ErrNotFound
	}
	return user, nil
}

func (ur *FakeUserRepo) SetBlocked(email string, blocked bool) error {
	return ur.setFlag(email, func(u *users.User) { u.Blocked = blocked })
}

func (ur *FakeUserRepo) SetVerified(email string, verified bool) error {
	return ur.setFlag(email, func(u *users.User) { u.Verified = verified })
}

func (ur *FakeUserRepo) setFlag(email string, set func(*users.User)) error {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	userID, ok := ur.emailIds[email]
	if !ok {
		return interrors.ErrNotFound
	}
	set(ur.users[userID])
	return nil
}
