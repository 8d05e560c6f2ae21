package google

import (
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-social-login/internal/utils"
	"github.com/jrsteele09/go-social-login/providers"
)

const (
	ProviderID = "google"

	// Issuer is Google's OIDC issuer URL, used by the server to discover
	// endpoints and verify ID tokens.
	Issuer = "https://accounts.google.com"
)

type Provider struct{}

var _ providers.Provider = Provider{}

func New() Provider { return Provider{} }

var _ providers.OIDCCapable = Provider{}

func (Provider) ID() string     { return ProviderID }
func (Provider) Name() string   { return "Google" }
func (Provider) Issuer() string { return Issuer }

func (Provider) DefaultScopes() []string {
	return []string{oidc.ScopeOpenID, "profile", "email"}
}

func (Provider) WrapAccount(uid string, extraData map[string]any) providers.Account {
	return account{uid: uid, data: extraData}
}

type account struct {
	uid  string
	data map[string]any
}

// ProfileURL is empty for Google: there is no public profile page to link to
func (a account) ProfileURL() string {
	return ""
}

func (a account) AvatarURL() string {
	s, _ := a.data["picture"].(string)
	return s
}

func (a account) String() string {
	name, _ := a.data["name"].(string)
	email, _ := a.data["email"].(string)
	return utils.FirstNonEmpty(name, email, a.uid)
}
