package socialaccount

import "time"

// SocialToken holds the credential material handed back by a provider for
// one (app, account) pair, unique together.
type SocialToken struct {
	ID        string `json:"id,omitempty"`
	AppID     string `json:"app_id"`
	AccountID string `json:"account_id,omitempty"`
	Active    bool   `json:"active"`

	// Token is the "oauth_token" (OAuth1) or access token (OAuth2)
	Token string `json:"token"`
	// TokenSecret is the "oauth_token_secret" (OAuth1) or refresh token
	// (OAuth2). Only overwritten when the provider resends a non-empty one.
	TokenSecret string     `json:"token_secret,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

// IsExisting reports whether the token is backed by a store record
func (t *SocialToken) IsExisting() bool {
	return t != nil && t.ID != ""
}

// Expired reports whether the access token has passed its expiry, if any
func (t *SocialToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
