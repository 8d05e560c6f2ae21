package emailaddress_test

import (
	"testing"

	"github.com/jrsteele09/go-social-login/emailaddress"
	fakeemailrepo "github.com/jrsteele09/go-social-login/emailaddress/repofakes"
	"github.com/jrsteele09/go-social-login/users"
	"github.com/stretchr/testify/require"
)

func setupManager(t *testing.T) (*emailaddress.Manager, emailaddress.Repo) {
	t.Helper()

	repo := fakeemailrepo.NewFakeEmailRepo()
	manager, err := emailaddress.NewManager(repo)
	require.NoError(t, err)
	return manager, repo
}

func TestSetupUserEmails_FirstVerifiedWinsPrimary(t *testing.T) {
	manager, repo := setupManager(t)
	user := &users.User{ID: "user-1", Email: "john@example.com", Verified: true}

	err := manager.SetupUserEmails(user, []emailaddress.EmailAddress{
		{Email: "unverified@example.com"},
		{Email: "john@example.com", Verified: true},
		{Email: "alt@example.com", Verified: true},
	})
	require.NoError(t, err)

	addresses, err := repo.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, addresses, 3)

	var primary []string
	for _, ea := range addresses {
		if ea.Primary {
			primary = append(primary, ea.Email)
		}
	}
	require.Equal(t, []string{"john@example.com"}, primary)
}

func TestSetupUserEmails_Idempotent(t *testing.T) {
	manager, repo := setupManager(t)
	user := &users.User{ID: "user-1", Email: "john@example.com", Verified: true}
	candidates := []emailaddress.EmailAddress{{Email: "john@example.com", Verified: true}}

	require.NoError(t, manager.SetupUserEmails(user, candidates))
	require.NoError(t, manager.SetupUserEmails(user, candidates))

	addresses, err := repo.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, addresses, 1)
}

func TestSetupUserEmails_IncludesSignupEmail(t *testing.T) {
	manager, repo := setupManager(t)
	user := &users.User{ID: "user-1", Email: "john@example.com", Verified: true}

	// Provider reported no addresses at all
	require.NoError(t, manager.SetupUserEmails(user, nil))

	addresses, err := repo.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, addresses, 1)
	require.Equal(t, "john@example.com", addresses[0].Email)
	require.True(t, addresses[0].Primary)
}

func TestSetupUserEmails_MatchesCaseInsensitively(t *testing.T) {
	manager, repo := setupManager(t)
	user := &users.User{ID: "user-1", Email: "John@Example.com", Verified: true}

	err := manager.SetupUserEmails(user, []emailaddress.EmailAddress{
		{Email: "john@example.com", Verified: true},
	})
	require.NoError(t, err)

	addresses, err := repo.ListByUser("user-1")
	require.NoError(t, err)
	require.Len(t, addresses, 1)
}

func TestSetupUserEmails_RequiresPersistedUser(t *testing.T) {
	manager, _ := setupManager(t)

	err := manager.SetupUserEmails(&users.User{Email: "john@example.com"}, nil)
	require.Error(t, err)
}
