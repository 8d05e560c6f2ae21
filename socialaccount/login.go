package socialaccount

import (
	"time"

	"github.com/jrsteele09/go-social-login/emailaddress"
	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/users"
	"github.com/pkg/errors"
)

// Login represents a social user in the process of being logged in: the
// account a provider handed back (possibly new and unsaved), the local user
// it points at (possibly prefilled by provider data), optional token
// material, the addresses the provider reported, and the state carried
// through the handshake. A Login is built fresh per incoming callback,
// reconciled against the store, and either committed or discarded.
type Login struct {
	User           *users.User
	Account        *SocialAccount
	Token          *SocialToken
	EmailAddresses []emailaddress.EmailAddress
	State          State
}

// NewLogin builds a fresh login session. A token pre-bound to a different
// account than the candidate is rejected as a programming error.
func NewLogin(user *users.User, account *SocialAccount, token *SocialToken, emails []emailaddress.EmailAddress) (*Login, error) {
	if account == nil {
		return nil, errors.New("[NewLogin] account is required")
	}
	if token != nil && token.AccountID != "" && token.AccountID != account.ID {
		return nil, errors.Wrap(TokenAccountMismatchErr, "[NewLogin]")
	}
	// Always a fresh slice per login - candidates must never share one
	emailAddresses := make([]emailaddress.EmailAddress, len(emails))
	copy(emailAddresses, emails)

	return &Login{
		User:           user,
		Account:        account,
		Token:          token,
		EmailAddresses: emailAddresses,
		State:          State{Process: ProcessLogin},
	}, nil
}

// IsExisting reports whether the login's account is already backed by a
// store record. This is the sole definition of "existing": a login that is
// existing must never be committed via Save.
func (l *Login) IsExisting() bool {
	return l.Account.IsExisting()
}

// RedirectURL returns the post-login redirect target carried in the state
func (l *Login) RedirectURL() string {
	return l.State.Next
}

// EmailSetup is the external email-management collaborator consumed on
// commit. Implementations must be idempotent.
type EmailSetup interface {
	SetupUserEmails(user *users.User, candidates []emailaddress.EmailAddress) error
}

// Service owns reconciliation and persistence-on-completion for logins.
type Service struct {
	repos       Repos
	emails      EmailSetup
	storeTokens bool             // Whether provider tokens are persisted
	nowTime     func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithoutTokenStorage disables persistence of provider token material
func WithoutTokenStorage() ServiceOption {
	return func(s *Service) {
		s.storeTokens = false
	}
}

// NewService initializes a login Service with required dependencies.
func NewService(repos Repos, emails EmailSetup, options ...ServiceOption) (*Service, error) {
	if repos.Accounts == nil {
		return nil, errors.New("[NewService] Accounts repo is required")
	}
	if repos.Tokens == nil {
		return nil, errors.New("[NewService] Tokens repo is required")
	}
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if emails == nil {
		return nil, errors.New("[NewService] email collaborator is required")
	}

	service := &Service{
		repos:       repos,
		emails:      emails,
		storeTokens: true,
		nowTime:     time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Lookup reconciles a freshly built login against the store. When an
// account already exists for the (provider, uid) pair the login adopts it -
// with the candidate's profile payload winning over the stored snapshot -
// and the user reference is rebound to the stored account's owner. A miss
// is the expected first-login path and leaves the login untouched.
func (s *Service) Lookup(login *Login) error {
	if login.IsExisting() {
		return errors.Wrap(LoginAlreadyExistsErr, "[Service.Lookup]")
	}

	stored, err := s.repos.Accounts.GetByProviderUID(login.Account.Provider, login.Account.UID)
	if err != nil {
		if interrors.Is(err, interrors.ErrNotFound) {
			return nil // First login for this (provider, uid) - created later via Save
		}
		return errors.Wrap(err, "[Service.Lookup] Accounts.GetByProviderUID")
	}

	// The provider's latest snapshot wins over the stored payload
	stored.ExtraData = login.Account.ExtraData
	stored.LastLogin = s.nowTime()
	if err := s.repos.Accounts.Update(stored); err != nil {
		return errors.Wrap(err, "[Service.Lookup] Accounts.Update")
	}
	login.Account = stored

	// Rebind to the stored account's owner - this may differ from the
	// candidate user the provider prefilled.
	owner, err := s.repos.Users.GetByID(stored.UserID)
	if err != nil {
		return errors.Wrap(err, "[Service.Lookup] Users.GetByID")
	}
	login.User = owner

	if !s.storeTokens || login.Token == nil {
		return nil
	}
	if login.Token.IsExisting() {
		return errors.Wrap(TokenAccountMismatchErr, "[Service.Lookup] candidate token already persisted")
	}
	return s.reconcileToken(login, stored)
}

func (s *Service) reconcileToken(login *Login, account *SocialAccount) error {
	stored, err := s.repos.Tokens.GetByAccountApp(account.ID, login.Token.AppID)
	if err != nil {
		if !interrors.Is(err, interrors.ErrNotFound) {
			return errors.Wrap(err, "[Service.reconcileToken] Tokens.GetByAccountApp")
		}
		// No token on file yet - bind the candidate and persist it as new
		login.Token.AccountID = account.ID
		created, err := s.repos.Tokens.Create(login.Token)
		if err != nil {
			return errors.Wrap(err, "[Service.reconcileToken] Tokens.Create")
		}
		login.Token = created
		return nil
	}

	stored.Token = login.Token.Token
	if login.Token.TokenSecret != "" {
		// Only update the refresh token if we got one - many OAuth2
		// providers do not resend the refresh token
		stored.TokenSecret = login.Token.TokenSecret
	}
	stored.ExpiresAt = login.Token.ExpiresAt
	if err := s.repos.Tokens.Update(stored); err != nil {
		return errors.Wrap(err, "[Service.reconcileToken] Tokens.Update")
	}
	login.Token = stored
	return nil
}

// Save commits a new login: the (possibly new) user, then the account, then
// any token material. Note that while the account is new, the user may be
// an existing one (when connecting accounts).
func (s *Service) Save(login *Login) error {
	return s.save(login, false)
}

// Connect links the login's provider identity to an already authenticated
// local user. Provider addresses are not auto-trusted as verified local
// emails on connect, so email setup is skipped.
func (s *Service) Connect(login *Login, user *users.User) error {
	login.User = user
	return s.save(login, true)
}

func (s *Service) save(login *Login, connect bool) error {
	if login.IsExisting() {
		return errors.Wrap(LoginAlreadyExistsErr, "[Service.Save]")
	}
	if login.User == nil {
		return errors.New("[Service.Save] login has no user")
	}

	if login.User.IsExisting() {
		if err := s.repos.Users.Upsert(login.User); err != nil {
			return errors.Wrap(err, "[Service.Save] Users.Upsert")
		}
	} else {
		created, err := s.repos.Users.Create(login.User)
		if err != nil {
			return errors.Wrap(err, "[Service.Save] Users.Create")
		}
		login.User = created
	}

	login.Account.UserID = login.User.ID
	now := s.nowTime()
	login.Account.DateJoined = now
	login.Account.LastLogin = now
	account, err := s.repos.Accounts.Create(login.Account)
	if err != nil {
		// ErrConflict here is the double-signup race - the store has
		// guaranteed only one account exists for the pair
		return errors.Wrap(err, "[Service.Save] Accounts.Create")
	}
	login.Account = account

	if s.storeTokens && login.Token != nil {
		login.Token.AccountID = account.ID
		token, err := s.repos.Tokens.Create(login.Token)
		if err != nil {
			return errors.Wrap(err, "[Service.Save] Tokens.Create")
		}
		login.Token = token
	}

	if connect {
		return nil
	}
	if err := s.emails.SetupUserEmails(login.User, login.EmailAddresses); err != nil {
		return errors.Wrap(err, "[Service.Save] emails.SetupUserEmails")
	}
	return nil
}
