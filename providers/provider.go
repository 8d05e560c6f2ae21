package providers

// Account is the provider-specific view over a linked account's raw profile
// payload. Implementations read the opaque extra data a provider returned at
// handshake time; they never call back out to the provider.
type Account interface {
	// ProfileURL returns the URL of the user's public profile page, or ""
	ProfileURL() string
	// AvatarURL returns the URL of the user's avatar image, or ""
	AvatarURL() string
	// String returns a human readable label for the account
	String() string
}

// Provider describes one third-party identity provider integration.
type Provider interface {
	// ID is the provider kind key, e.g. "github"
	ID() string
	// Name is a display name, e.g. "GitHub"
	Name() string
	// DefaultScopes are the OAuth scopes requested when the login state
	// carries no explicit scope override
	DefaultScopes() []string
	// WrapAccount wraps a raw profile payload in the provider's Account view
	WrapAccount(uid string, extraData map[string]any) Account
}
