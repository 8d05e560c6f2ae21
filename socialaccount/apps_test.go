package socialaccount_test

import (
	"testing"
	"time"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/socialaccount"
	fakesocialrepos "github.com/jrsteele09/go-social-login/socialaccount/repofakes"
	"github.com/stretchr/testify/require"
)

func TestAppResolver_MissIsNotFoundClass(t *testing.T) {
	resolver, err := socialaccount.NewAppResolver(fakesocialrepos.NewFakeAppRepo(), time.Minute)
	require.NoError(t, err)

	_, err = resolver.Current("example.com", testProvider)
	require.ErrorIs(t, err, interrors.ErrAppNotFound)
	require.ErrorIs(t, err, interrors.ErrNotFound)
}

func TestAppResolver_ResolvesConfiguredApp(t *testing.T) {
	repo := fakesocialrepos.NewFakeAppRepo()
	require.NoError(t, repo.Upsert(&socialaccount.SocialApp{
		Provider: testProvider,
		Name:     "GitHub",
		ClientID: "client-1",
		Sites:    []string{"example.com"},
	}))

	resolver, err := socialaccount.NewAppResolver(repo, time.Minute)
	require.NoError(t, err)

	app, err := resolver.Current("example.com", testProvider)
	require.NoError(t, err)
	require.Equal(t, "client-1", app.ClientID)

	// Site binding is part of the lookup
	_, err = resolver.Current("other.example.com", testProvider)
	require.ErrorIs(t, err, interrors.ErrNotFound)
}

func TestRequestApps_MemoisesWithinRequest(t *testing.T) {
	repo := fakesocialrepos.NewFakeAppRepo()
	require.NoError(t, repo.Upsert(&socialaccount.SocialApp{
		Provider: testProvider,
		ClientID: "client-1",
		Sites:    []string{"example.com"},
	}))

	resolver, err := socialaccount.NewAppResolver(repo, time.Minute)
	require.NoError(t, err)
	apps := resolver.ForRequest("example.com")

	first, err := apps.Get(testProvider)
	require.NoError(t, err)
	second, err := apps.Get(testProvider)
	require.NoError(t, err)
	require.Same(t, first, second, "One request must observe one app config")
	require.Equal(t, "example.com", apps.Site())
}
