package socialaccount

import "github.com/jrsteele09/go-social-login/users"

// AccountRepo is the credential-store view over social accounts. Uniqueness
// on (provider, uid) must be enforced atomically by the implementation: two
// concurrent callbacks for the same new provider identity are a real race,
// and at most one account may ever be created per pair.
type AccountRepo interface {
	// GetByProviderUID returns the account stored for the (provider, uid)
	// pair, or internal/errors.ErrNotFound.
	GetByProviderUID(provider, uid string) (*SocialAccount, error)
	// Create persists a new account, assigning an ID. Returns
	// internal/errors.ErrConflict if the (provider, uid) pair exists.
	Create(account *SocialAccount) (*SocialAccount, error)
	Update(account *SocialAccount) error
	ListByUser(userID string) ([]SocialAccount, error)
	Delete(id string) error
}

// TokenRepo stores provider token material, unique per (app, account).
type TokenRepo interface {
	// GetByAccountApp returns the token stored for the (account, app) pair,
	// or internal/errors.ErrNotFound.
	GetByAccountApp(accountID, appID string) (*SocialToken, error)
	Create(token *SocialToken) (*SocialToken, error)
	Update(token *SocialToken) error
}

// AppRepo stores provider app configurations.
type AppRepo interface {
	// GetByProvider returns the app configured for a provider on a site,
	// or internal/errors.ErrAppNotFound.
	GetByProvider(site, provider string) (*SocialApp, error)
	Upsert(app *SocialApp) error
	List() ([]SocialApp, error)
}

// Repos holds all repository dependencies for the login Service
type Repos struct {
	Accounts AccountRepo    // Linked provider identities
	Tokens   TokenRepo      // Provider token material
	Apps     AppRepo        // Provider app configuration
	Users    users.UserRepo // Local user records
}
