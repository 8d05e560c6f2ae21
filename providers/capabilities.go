package providers

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-social-login/emailaddress"
)

// OIDCCapable marks providers whose identity arrives in a verified OIDC ID
// token rather than a profile API call.
type OIDCCapable interface {
	Provider
	// Issuer returns the provider's OIDC issuer URL for discovery
	Issuer() string
}

// ProfileFetcher marks providers whose profile is fetched from a REST
// endpoint with the freshly exchanged access token.
type ProfileFetcher interface {
	Provider
	// FetchProfile returns the provider-assigned uid, the raw profile
	// payload, and any addresses the provider reports. The client is
	// already authorized with the handshake's access token.
	FetchProfile(ctx context.Context, client *http.Client) (uid string, extraData map[string]any, emails []emailaddress.EmailAddress, err error)
}
