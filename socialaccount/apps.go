package socialaccount

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// AppResolver resolves the SocialApp configured for a provider on a site.
// Lookups are memoised in a short TTL cache so admin edits still take
// effect without a restart.
type AppResolver struct {
	repo  AppRepo
	cache *gocache.Cache
}

func NewAppResolver(repo AppRepo, ttl time.Duration) (*AppResolver, error) {
	if repo == nil {
		return nil, errors.New("[NewAppResolver] app repo is required")
	}
	return &AppResolver{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}, nil
}

// Current returns the app for a provider on a site
func (ar *AppResolver) Current(site, provider string) (*SocialApp, error) {
	key := site + "/" + provider
	if v, ok := ar.cache.Get(key); ok {
		return v.(*SocialApp), nil
	}
	app, err := ar.repo.GetByProvider(site, provider)
	if err != nil {
		return nil, errors.Wrap(err, "[AppResolver.Current] Apps.GetByProvider")
	}
	ar.cache.Set(key, app, gocache.DefaultExpiration)
	return app, nil
}

// ForRequest returns an explicit per-request view of app lookups for one
// site, keyed by provider kind. Handlers build one per incoming request and
// thread it into the calls that need the current app, instead of stashing
// lookups on ambient request state.
func (ar *AppResolver) ForRequest(site string) *RequestApps {
	return &RequestApps{
		site:       site,
		resolver:   ar,
		byProvider: make(map[string]*SocialApp),
	}
}

// RequestApps memoises app lookups within a single request
type RequestApps struct {
	site       string
	resolver   *AppResolver
	byProvider map[string]*SocialApp
}

func (ra *RequestApps) Get(provider string) (*SocialApp, error) {
	if app, ok := ra.byProvider[provider]; ok {
		return app, nil
	}
	app, err := ra.resolver.Current(ra.site, provider)
	if err != nil {
		return nil, err
	}
	ra.byProvider[provider] = app
	return app, nil
}

func (ra *RequestApps) Site() string {
	return ra.site
}
