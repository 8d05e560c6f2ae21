package fakesocialrepos

import (
	"sync"

	"github.com/google/uuid"
	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/socialaccount"
)

var _ socialaccount.TokenRepo = (*FakeTokenRepo)(nil)

type FakeTokenRepo struct {
	tokens  map[string]*socialaccount.SocialToken
	pairIds map[accountApp]string // (account, app) to token id
	lock    sync.RWMutex
}

type accountApp struct {
	accountID string
	appID     string
}

func NewFakeTokenRepo() *FakeTokenRepo {
	return &FakeTokenRepo{
		tokens:  make(map[string]*socialaccount.SocialToken),
		pairIds: make(map[accountApp]string),
	}
}

func (tr *FakeTokenRepo) GetByAccountApp(accountID, appID string) (*socialaccount.SocialToken, error) {
	tr.lock.RLock()
	defer tr.lock.RUnlock()

	tokenID, ok := tr.pairIds[accountApp{accountID, appID}]
	if !ok {
		return nil, interrors.ErrNotFound
	}
	stored := *tr.tokens[tokenID]
	return &stored, nil
}

func (tr *FakeTokenRepo) Create(token *socialaccount.SocialToken) (*socialaccount.SocialToken, error) {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	key := accountApp{token.AccountID, token.AppID}
	if _, ok := tr.pairIds[key]; ok {
		return nil, interrors.ErrConflict
	}
	stored := *token
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	tr.tokens[stored.ID] = &stored
	tr.pairIds[key] = stored.ID

	ret := stored
	return &ret, nil
}

func (tr *FakeTokenRepo) Update(token *socialaccount.SocialToken) error {
	tr.lock.Lock()
	defer tr.lock.Unlock()

	if _, ok := tr.tokens[token.ID]; !ok {
		return interrors.ErrNotFound
	}
	updated := *token
	tr.tokens[token.ID] = &updated
	return nil
}

// Len reports the number of stored tokens (test helper)
func (tr *FakeTokenRepo) Len() int {
	tr.lock.RLock()
	defer tr.lock.RUnlock()
	return len(tr.tokens)
}
