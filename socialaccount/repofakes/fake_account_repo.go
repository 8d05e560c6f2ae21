package fakesocialrepos

import (
	"sync"

	"github.com/google/uuid"
	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/socialaccount"
)

var _ socialaccount.AccountRepo = (*FakeAccountRepo)(nil)

type FakeAccountRepo struct {
	accounts    map[string]*socialaccount.SocialAccount
	providerIds map[providerUID]string // (provider, uid) to account id
	lock        sync.RWMutex
}

type providerUID struct {
	provider string
	uid      string
}

func NewFakeAccountRepo() *FakeAccountRepo {
	return &FakeAccountRepo{
		accounts:    make(map[string]*socialaccount.SocialAccount),
		providerIds: make(map[providerUID]string),
	}
}

func (ar *FakeAccountRepo) GetByProviderUID(provider, uid string) (*socialaccount.SocialAccount, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	accountID, ok := ar.providerIds[providerUID{provider, uid}]
	if !ok {
		return nil, interrors.ErrNotFound
	}
	// Return a copy so callers can reconcile without writing through
	stored := *ar.accounts[accountID]
	return &stored, nil
}

func (ar *FakeAccountRepo) Create(account *socialaccount.SocialAccount) (*socialaccount.SocialAccount, error) {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	// Check-and-write under one lock: the double-signup race must never
	// produce two accounts for the same (provider, uid) pair.
	key := providerUID{account.Provider, account.UID}
	if _, ok := ar.providerIds[key]; ok {
		return nil, interrors.ErrConflict
	}
	stored := *account
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	ar.accounts[stored.ID] = &stored
	ar.providerIds[key] = stored.ID

	ret := stored
	return &ret, nil
}

func (ar *FakeAccountRepo) Update(account *socialaccount.SocialAccount) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	stored, ok := ar.accounts[account.ID]
	if !ok {
		return interrors.ErrNotFound
	}
	// Provider and uid are immutable after creation
	updated := *account
	updated.Provider = stored.Provider
	updated.UID = stored.UID
	ar.accounts[account.ID] = &updated
	return nil
}

func (ar *FakeAccountRepo) ListByUser(userID string) ([]socialaccount.SocialAccount, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	var out []socialaccount.SocialAccount
	for _, a := range ar.accounts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (ar *FakeAccountRepo) Delete(id string) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	stored, ok := ar.accounts[id]
	if !ok {
		return interrors.ErrNotFound
	}
	delete(ar.providerIds, providerUID{stored.Provider, stored.UID})
	delete(ar.accounts, id)
	return nil
}

// Len reports the number of stored accounts (test helper)
func (ar *FakeAccountRepo) Len() int {
	ar.lock.RLock()
	defer ar.lock.RUnlock()
	return len(ar.accounts)
}
