package config

import (
	"strconv"
	"strings"
	"time"
)

type SocialConfig interface {
	// GetStoreTokens reports whether provider access/refresh tokens should
	// be persisted alongside the social account.
	GetStoreTokens() bool
	GetAppCacheTTL() time.Duration
	GetSignupCarrierSecret() []byte
	GetSignupCarrierTTL() time.Duration
	GetProviderClientID(provider string) string
	GetProviderClientSecret(provider string) string
}

type Social struct{}

var _ SocialConfig = Social{}

func (Social) GetStoreTokens() bool {
	v, err := strconv.ParseBool(GetEnv("SOCIAL_STORE_TOKENS", "true"))
	if err != nil {
		return true
	}
	return v
}

func (Social) GetAppCacheTTL() time.Duration {
	return 5 * time.Minute
}

// GetSignupCarrierSecret returns the HMAC secret used to sign the pending
// login carrier that survives the redirect to the signup page.
func (Social) GetSignupCarrierSecret() []byte {
	return []byte(GetEnv("SIGNUP_CARRIER_SECRET", "dev-only-carrier-secret"))
}

func (Social) GetSignupCarrierTTL() time.Duration {
	return 15 * time.Minute
}

// GetProviderClientID resolves the OAuth client id for a provider from the
// environment, e.g. GITHUB_CLIENT_ID for provider "github".
func (Social) GetProviderClientID(provider string) string {
	return GetEnv(strings.ToUpper(provider)+"_CLIENT_ID", "")
}

func (Social) GetProviderClientSecret(provider string) string {
	return GetEnv(strings.ToUpper(provider)+"_CLIENT_SECRET", "")
}
