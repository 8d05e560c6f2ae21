package providers_test

import (
	"testing"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/providers"
	"github.com/jrsteele09/go-social-login/providers/github"
	"github.com/jrsteele09/go-social-login/providers/google"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ByID(t *testing.T) {
	registry := providers.NewRegistry(github.New(), google.New())

	p, err := registry.ByID("github")
	require.NoError(t, err)
	require.Equal(t, "GitHub", p.Name())
}

func TestRegistry_UnknownProvider(t *testing.T) {
	registry := providers.NewRegistry(github.New())

	_, err := registry.ByID("myspace")
	require.ErrorIs(t, err, interrors.ErrUnknownProvider)
}

func TestRegistry_StableOrdering(t *testing.T) {
	registry := providers.NewRegistry(google.New(), github.New())

	require.Equal(t, []string{"github", "google"}, registry.IDs())
	require.Equal(t, [][2]string{{"github", "GitHub"}, {"google", "Google"}}, registry.AsChoices())
}

func TestGitHubAccountView(t *testing.T) {
	p := github.New()

	a := p.WrapAccount("9001", map[string]any{
		"login":      "johndoe",
		"name":       "John Doe",
		"avatar_url": "https://avatars.githubusercontent.com/u/9001",
	})
	require.Equal(t, "John Doe", a.String())
	require.Equal(t, "https://github.com/johndoe", a.ProfileURL(), "Falls back to the login handle")
	require.Equal(t, "https://avatars.githubusercontent.com/u/9001", a.AvatarURL())

	bare := p.WrapAccount("9001", nil)
	require.Equal(t, "9001", bare.String(), "UID is the label of last resort")
	require.Empty(t, bare.ProfileURL())
}

func TestGoogleAccountView(t *testing.T) {
	p := google.New()

	a := p.WrapAccount("108", map[string]any{
		"email":   "john@example.com",
		"picture": "https://lh3.googleusercontent.com/a/pic",
	})
	require.Equal(t, "john@example.com", a.String())
	require.Equal(t, "https://lh3.googleusercontent.com/a/pic", a.AvatarURL())
	require.Empty(t, a.ProfileURL())
}
