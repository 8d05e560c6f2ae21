package fakeemailrepo

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-social-login/emailaddress"
	interrors "github.com/jrsteele09/go-social-login/internal/errors"
)

var _ emailaddress.Repo = (*FakeEmailRepo)(nil)

type FakeEmailRepo struct {
	byUser map[string][]emailaddress.EmailAddress // userID -> addresses
	lock   sync.RWMutex
}

func NewFakeEmailRepo() emailaddress.Repo {
	return &FakeEmailRepo{
		byUser: make(map[string][]emailaddress.EmailAddress),
	}
}

func (er *FakeEmailRepo) Create(addr *emailaddress.EmailAddress) (*emailaddress.EmailAddress, error) {
	er.lock.Lock()
	defer er.lock.Unlock()

	for _, existing := range er.byUser[addr.UserID] {
		if existing.Matches(addr.Email) {
			return nil, interrors.ErrConflict
		}
	}
	stored := *addr
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	er.byUser[stored.UserID] = append(er.byUser[stored.UserID], stored)
	return &stored, nil
}

func (er *FakeEmailRepo) ListByUser(userID string) ([]emailaddress.EmailAddress, error) {
	er.lock.RLock()
	defer er.lock.RUnlock()

	addrs := er.byUser[userID]
	out := make([]emailaddress.EmailAddress, len(addrs))
	copy(out, addrs)
	return out, nil
}

func (er *FakeEmailRepo) SetPrimary(userID, email string) error {
	er.lock.Lock()
	defer er.lock.Unlock()

	addrs, ok := er.byUser[userID]
	if !ok {
		return interrors.ErrNotFound
	}
	found := false
	for i := range addrs {
		addrs[i].Primary = addrs[i].Matches(email)
		if addrs[i].Primary {
			found = true
		}
	}
	if !found {
		return interrors.ErrNotFound
	}
	return nil
}

func (er *FakeEmailRepo) Delete(userID, email string) error {
	er.lock.Lock()
	defer er.lock.Unlock()

	addrs := er.byUser[userID]
	for i, ea := range addrs {
		if strings.EqualFold(ea.Email, email) {
			er.byUser[userID] = append(addrs[:i], addrs[i+1:]...)
			return nil
		}
	}
	return interrors.ErrNotFound
}
