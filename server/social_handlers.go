package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-social-login/emailaddress"
	"github.com/jrsteele09/go-social-login/internal/utils"
	"github.com/jrsteele09/go-social-login/providers"
	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/jrsteele09/go-social-login/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// SocialLoginHandler starts a handshake: it stashes the anti-forgery state
// in the caller's session and redirects to the provider, carrying the
// verifier as the OAuth state parameter.
func (s *Server) SocialLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, err := s.registry.ByID(r.PathValue("provider"))
		if err != nil {
			http.Error(w, "Unknown provider", http.StatusNotFound)
			return
		}

		session, err := s.ensureSession(w, r)
		if err != nil {
			log.Err(err).Msg("Failed to establish session")
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}

		state := socialaccount.StateFromRequest(r)
		if state.Process == socialaccount.ProcessConnect && !session.Authenticated() {
			http.Error(w, "Connect requires a logged in user", http.StatusUnauthorized)
			return
		}

		apps := s.appResolver.ForRequest(siteFromHost(r.Host))
		app, err := apps.Get(provider.ID())
		if err != nil {
			log.Err(err).Str("provider", provider.ID()).Msg("No app configured")
			http.Error(w, "Provider not configured for this site", http.StatusNotFound)
			return
		}

		conf, err := s.oauthConfig(r.Context(), provider, app, state)
		if err != nil {
			log.Err(err).Str("provider", provider.ID()).Msg("Failed to build oauth config")
			http.Error(w, "Provider not available", http.StatusBadGateway)
			return
		}

		// Only one pending handshake per session - a restash overwrites it
		verifier := socialaccount.StashState(session, r)
		if err := s.sessions.Upsert(session); err != nil {
			log.Err(err).Msg("Failed to persist session")
			http.Error(w, "Failed to persist session", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, conf.AuthCodeURL(verifier, authParamOptions(state.AuthParams)...), http.StatusFound)
	}
}

// SocialCallbackHandler finishes a handshake: it checks the returned state
// against the stashed verifier, exchanges the code, reconciles the login
// against the store, and completes either a login, a connect, or a signup
// continuation.
func (s *Server) SocialCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, err := s.registry.ByID(r.PathValue("provider"))
		if err != nil {
			http.Error(w, "Unknown provider", http.StatusNotFound)
			return
		}

		// r.FormValue works for both query params and POST form data
		if errorParam := r.FormValue("error"); errorParam != "" {
			http.Error(w, fmt.Sprintf("Authorization failed: %s - %s", errorParam, r.FormValue("error_description")), http.StatusBadRequest)
			return
		}
		code := r.FormValue("code")
		if code == "" {
			http.Error(w, "Missing code parameter", http.StatusBadRequest)
			return
		}

		session, err := s.currentSession(r)
		if err != nil {
			http.Error(w, "No pending handshake", http.StatusForbidden)
			return
		}

		// The stash is consumed exactly once, matched or not
		state, err := socialaccount.VerifyAndUnstashState(session, r.FormValue("state"))
		upsertErr := s.sessions.Upsert(session)
		if err != nil {
			log.Warn().Err(err).Str("provider", provider.ID()).Msg("Handshake state verification failed")
			http.Error(w, "Invalid state parameter", http.StatusForbidden)
			return
		}
		if upsertErr != nil {
			http.Error(w, "Failed to persist session", http.StatusInternalServerError)
			return
		}

		apps := s.appResolver.ForRequest(siteFromHost(r.Host))
		app, err := apps.Get(provider.ID())
		if err != nil {
			http.Error(w, "Provider not configured for this site", http.StatusNotFound)
			return
		}

		conf, err := s.oauthConfig(r.Context(), provider, app, state)
		if err != nil {
			http.Error(w, "Provider not available", http.StatusBadGateway)
			return
		}

		oauth2Token, err := conf.Exchange(r.Context(), code)
		if err != nil {
			log.Err(err).Str("provider", provider.ID()).Msg("Token exchange failed")
			http.Error(w, "Token exchange failed", http.StatusBadGateway)
			return
		}

		login, err := s.buildLogin(r, provider, app, conf, oauth2Token)
		if err != nil {
			log.Err(err).Str("provider", provider.ID()).Msg("Failed to build login from provider response")
			http.Error(w, "Failed to read provider profile", http.StatusBadGateway)
			return
		}
		login.State = state

		if err := s.logins.Lookup(login); err != nil {
			log.Err(err).Msg("Login reconciliation failed")
			http.Error(w, "Login failed", http.StatusInternalServerError)
			return
		}

		switch {
		// Connect is checked first: a handshake started to link an identity
		// must never switch the session to another user.
		case state.Process == socialaccount.ProcessConnect:
			s.completeConnect(w, r, session, login)
		case login.IsExisting():
			s.completeLogin(w, r, session, login)
		default:
			s.continueSignup(w, r, login)
		}
	}
}

// buildLogin turns the exchanged token into a fresh, unsaved login session
func (s *Server) buildLogin(r *http.Request, provider providers.Provider, app *socialaccount.SocialApp, conf *oauth2.Config, oauth2Token *oauth2.Token) (*socialaccount.Login, error) {
	var (
		uid       string
		extraData map[string]any
		emails    []emailaddress.EmailAddress
		err       error
	)

	switch p := provider.(type) {
	case providers.OIDCCapable:
		uid, extraData, emails, err = s.identityFromIDToken(r, p, app, oauth2Token)
	case providers.ProfileFetcher:
		uid, extraData, emails, err = p.FetchProfile(r.Context(), conf.Client(r.Context(), oauth2Token))
	default:
		return nil, fmt.Errorf("provider %q cannot supply an identity", provider.ID())
	}
	if err != nil {
		return nil, err
	}

	account := &socialaccount.SocialAccount{
		Provider:  provider.ID(),
		UID:       uid,
		ExtraData: extraData,
	}

	var token *socialaccount.SocialToken
	if s.config.GetStoreTokens() {
		token = &socialaccount.SocialToken{
			AppID:       app.ID,
			Active:      true,
			Token:       oauth2Token.AccessToken,
			TokenSecret: oauth2Token.RefreshToken,
		}
		if !oauth2Token.Expiry.IsZero() {
			token.ExpiresAt = utils.Ptr(oauth2Token.Expiry)
		}
	}

	return socialaccount.NewLogin(prefillUser(extraData, emails), account, token, emails)
}

// identityFromIDToken verifies the OIDC ID token and reads the identity
// from its claims. The claims map becomes the account's profile payload.
func (s *Server) identityFromIDToken(r *http.Request, provider providers.OIDCCapable, app *socialaccount.SocialApp, oauth2Token *oauth2.Token) (string, map[string]any, []emailaddress.EmailAddress, error) {
	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return "", nil, nil, fmt.Errorf("no ID token in response")
	}

	discovered, err := s.oidcProviderFor(r.Context(), provider.Issuer())
	if err != nil {
		return "", nil, nil, err
	}
	idToken, err := discovered.Verifier(&oidc.Config{ClientID: app.ClientID}).Verify(r.Context(), rawIDToken)
	if err != nil {
		return "", nil, nil, fmt.Errorf("ID token verification failed: %w", err)
	}

	claims := map[string]any{}
	if err := idToken.Claims(&claims); err != nil {
		return "", nil, nil, fmt.Errorf("failed to extract claims: %w", err)
	}

	emails := []emailaddress.EmailAddress{}
	if email, ok := claims["email"].(string); ok && email != "" {
		verified, _ := claims["email_verified"].(bool)
		emails = append(emails, emailaddress.EmailAddress{Email: email, Verified: verified, Primary: true})
	}

	return idToken.Subject, claims, emails, nil
}

// prefillUser builds a candidate local user from the provider's payload, a
// starting point for the signup continuation.
func prefillUser(extraData map[string]any, emails []emailaddress.EmailAddress) *users.User {
	str := func(key string) string {
		v, _ := extraData[key].(string)
		return v
	}

	email := str("email")
	verified, _ := extraData["email_verified"].(bool)
	for _, ea := range emails {
		if email != "" {
			break
		}
		email = ea.Email
		verified = ea.Verified
	}

	firstName := str("given_name")
	lastName := str("family_name")
	if firstName == "" && lastName == "" {
		parts := strings.SplitN(str("name"), " ", 2)
		firstName = parts[0]
		if len(parts) > 1 {
			lastName = parts[1]
		}
	}

	return &users.User{
		Email:     email,
		Username:  utils.FirstNonEmpty(str("login"), str("preferred_username")),
		FirstName: firstName,
		LastName:  lastName,
		Verified:  verified,
	}
}

// authParamOptions turns the state's auth_params pass-through (URL encoded
// key=value pairs) into authorization URL options.
func authParamOptions(authParams string) []oauth2.AuthCodeOption {
	if authParams == "" {
		return nil
	}
	values, err := url.ParseQuery(authParams)
	if err != nil {
		return nil
	}
	opts := make([]oauth2.AuthCodeOption, 0, len(values))
	for key := range values {
		opts = append(opts, oauth2.SetAuthURLParam(key, values.Get(key)))
	}
	return opts
}
