package server

import (
	"context"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-social-login/providers"
	githubprovider "github.com/jrsteele09/go-social-login/providers/github"
	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"
)

// providerEndpoints maps provider kinds to their static OAuth2 endpoints.
// OIDC-capable providers are discovered from their issuer instead.
var providerEndpoints = map[string]oauth2.Endpoint{
	githubprovider.ProviderID: githubendpoint.Endpoint,
}

// oauthConfig builds the x/oauth2 configuration for one handshake from the
// site's app record and the state's scope override.
func (s *Server) oauthConfig(ctx context.Context, provider providers.Provider, app *socialaccount.SocialApp, state socialaccount.State) (*oauth2.Config, error) {
	scopes := provider.DefaultScopes()
	if state.Scope != "" {
		scopes = strings.Fields(state.Scope)
	}

	endpoint, err := s.providerEndpoint(ctx, provider)
	if err != nil {
		return nil, err
	}

	return &oauth2.Config{
		ClientID:     app.ClientID,
		ClientSecret: app.Secret,
		Endpoint:     endpoint,
		RedirectURL:  s.config.GetBaseURL() + socialCallbackPath(provider.ID()),
		Scopes:       scopes,
	}, nil
}

func (s *Server) providerEndpoint(ctx context.Context, provider providers.Provider) (oauth2.Endpoint, error) {
	if oidcCapable, ok := provider.(providers.OIDCCapable); ok {
		discovered, err := s.oidcProviderFor(ctx, oidcCapable.Issuer())
		if err != nil {
			return oauth2.Endpoint{}, err
		}
		return discovered.Endpoint(), nil
	}
	endpoint, ok := providerEndpoints[provider.ID()]
	if !ok {
		return oauth2.Endpoint{}, errors.Errorf("[providerEndpoint] no endpoint known for provider %q", provider.ID())
	}
	return endpoint, nil
}

// oidcProviderFor discovers an OIDC issuer once and caches the result
func (s *Server) oidcProviderFor(ctx context.Context, issuer string) (*oidc.Provider, error) {
	s.oidcProvidersLock.RLock()
	discovered, exists := s.oidcProviders[issuer]
	s.oidcProvidersLock.RUnlock()
	if exists {
		return discovered, nil
	}

	discovered, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, errors.Wrapf(err, "[oidcProviderFor] discovery failed for %q", issuer)
	}

	s.oidcProvidersLock.Lock()
	s.oidcProviders[issuer] = discovered
	s.oidcProvidersLock.Unlock()

	return discovered, nil
}
