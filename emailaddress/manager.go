package emailaddress

import (
	"github.com/jrsteele09/go-social-login/users"
	"github.com/pkg/errors"
)

// Manager wires email bookkeeping to a repo. The social login flow hands it
// the addresses a provider reported for a freshly signed-up user.
type Manager struct {
	repo Repo
}

func NewManager(repo Repo) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] email repo is required")
	}
	return &Manager{repo: repo}, nil
}

// SetupUserEmails records the candidate addresses for a user. Idempotent:
// addresses already on file are skipped. The first verified candidate wins
// the primary slot unless the user already has a primary address.
func (m *Manager) SetupUserEmails(user *users.User, candidates []EmailAddress) error {
	if user == nil || user.ID == "" {
		return errors.New("[SetupUserEmails] user must be persisted first")
	}

	existing, err := m.repo.ListByUser(user.ID)
	if err != nil {
		return errors.Wrap(err, "[SetupUserEmails] repo.ListByUser")
	}

	hasPrimary := false
	for _, ea := range existing {
		if ea.Primary {
			hasPrimary = true
			break
		}
	}

	// The user's own address counts as a candidate too, so a provider that
	// reports no addresses still leaves the signup email on file.
	all := candidates
	if user.Email != "" && !containsEmail(candidates, user.Email) {
		all = append([]EmailAddress{{Email: user.Email, Verified: user.Verified}}, candidates...)
	}

	for _, candidate := range all {
		if candidate.Email == "" || containsEmail(existing, candidate.Email) {
			continue
		}
		primary := false
		if !hasPrimary && candidate.Verified {
			primary = true
			hasPrimary = true
		}
		created, err := m.repo.Create(&EmailAddress{
			UserID:   user.ID,
			Email:    candidate.Email,
			Verified: candidate.Verified,
			Primary:  primary,
		})
		if err != nil {
			return errors.Wrap(err, "[SetupUserEmails] repo.Create")
		}
		existing = append(existing, *created)
	}
	return nil
}

func containsEmail(addrs []EmailAddress, email string) bool {
	for _, ea := range addrs {
		if ea.Matches(email) {
			return true
		}
	}
	return false
}
