package socialaccount

import (
	"time"

	"github.com/jrsteele09/go-social-login/providers"
)

// SocialAccount links a third-party identity to a local user. The
// (provider, uid) pair is unique and immutable after creation; ExtraData is
// the provider's latest profile snapshot, overwritten on every login.
type SocialAccount struct {
	ID         string         `json:"id,omitempty"` // Store-assigned identity, empty until persisted
	UserID     string         `json:"user_id,omitempty"`
	Provider   string         `json:"provider"` // Provider kind, e.g. "github"
	UID        string         `json:"uid"`      // Provider-assigned user id
	DateJoined time.Time      `json:"date_joined,omitempty"`
	LastLogin  time.Time      `json:"last_login,omitempty"`
	ExtraData  map[string]any `json:"extra_data,omitempty"` // Opaque provider profile payload
}

// IsExisting reports whether the account is backed by a store record
func (a *SocialAccount) IsExisting() bool {
	return a != nil && a.ID != ""
}

// ProviderAccount wraps the account in its provider's capability view
func (a *SocialAccount) ProviderAccount(registry *providers.Registry) (providers.Account, error) {
	provider, err := registry.ByID(a.Provider)
	if err != nil {
		return nil, err
	}
	return provider.WrapAccount(a.UID, a.ExtraData), nil
}
