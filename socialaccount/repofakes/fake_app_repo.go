package fakesocialrepos

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/socialaccount"
)

var _ socialaccount.AppRepo = (*FakeAppRepo)(nil)

type FakeAppRepo struct {
	apps map[string]*socialaccount.SocialApp
	lock sync.RWMutex
}

func NewFakeAppRepo() *FakeAppRepo {
	return &FakeAppRepo{
		apps: make(map[string]*socialaccount.SocialApp),
	}
}

func (ar *FakeAppRepo) GetByProvider(site, provider string) (*socialaccount.SocialApp, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	for _, app := range ar.apps {
		if app.Provider == provider && app.AppliesToSite(site) {
			stored := *app
			return &stored, nil
		}
	}
	return nil, interrors.ErrAppNotFound
}

func (ar *FakeAppRepo) Upsert(app *socialaccount.SocialApp) error {
	ar.lock.Lock()
	defer ar.lock.Unlock()

	if app.ID == "" {
		app.ID = uuid.New().String()
	}
	stored := *app
	ar.apps[stored.ID] = &stored
	return nil
}

func (ar *FakeAppRepo) List() ([]socialaccount.SocialApp, error) {
	ar.lock.RLock()
	defer ar.lock.RUnlock()

	out := make([]socialaccount.SocialApp, 0, len(ar.apps))
	for _, app := range ar.apps {
		out = append(out, *app)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out, nil
}
