package socialaccount

// SocialApp is the admin-managed configuration for one provider
// integration, unique per (provider, site bindings).
type SocialApp struct {
	ID       string `json:"id,omitempty"`
	Provider string `json:"provider"`
	Name     string `json:"name"`
	ClientID string `json:"client_id"` // App ID, or consumer key
	Secret   string `json:"secret"`    // API secret, client secret, or consumer secret
	Key      string `json:"key,omitempty"`
	PEM      string `json:"pem,omitempty"` // Private key material for providers that sign requests

	// Sites the app applies to. An app with no site bindings is disabled
	// without having to be removed.
	Sites []string `json:"sites,omitempty"`
}

// AppliesToSite reports whether the app is enabled for the given site
func (app *SocialApp) AppliesToSite(site string) bool {
	for _, s := range app.Sites {
		if s == site {
			return true
		}
	}
	return false
}
