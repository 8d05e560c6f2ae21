package server

import (
	"fmt"
	"net/url"

	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/rs/zerolog/log"
)

// InitialiseApps seeds an app record for every registered provider that has
// credentials configured in the environment, bound to the base URL's host.
// Deployments with an admin-managed app store can skip this and manage app
// records directly.
func (s *Server) InitialiseApps() error {
	site, err := siteFromBaseURL(s.config.GetBaseURL())
	if err != nil {
		return fmt.Errorf("[InitialiseApps] %w", err)
	}

	for _, providerID := range s.registry.IDs() {
		clientID := s.config.GetProviderClientID(providerID)
		if clientID == "" {
			log.Warn().Str("provider", providerID).Msg("No client id configured, provider disabled")
			continue
		}

		if existing, err := s.repos.Apps.GetByProvider(site, providerID); err == nil && existing != nil {
			continue // Admin-managed app wins over env seeding
		}

		app := &socialaccount.SocialApp{
			Provider: providerID,
			Name:     providerID,
			ClientID: clientID,
			Secret:   s.config.GetProviderClientSecret(providerID),
			Sites:    []string{site},
		}
		if err := s.repos.Apps.Upsert(app); err != nil {
			return fmt.Errorf("[InitialiseApps] Apps.Upsert %s: %w", providerID, err)
		}
		log.Info().Str("provider", providerID).Str("site", site).Msg("Provider app configured")
	}
	return nil
}

func siteFromBaseURL(baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	return parsed.Hostname(), nil
}
