package socialaccount_test

import (
	"net/http/httptest"
	"testing"
	"time"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/sessions"
	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/stretchr/testify/require"
)

func TestStateFromRequest_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/social/github/login", nil)

	state := socialaccount.StateFromRequest(r)

	require.Equal(t, socialaccount.ProcessLogin, state.Process)
	require.Empty(t, state.Next)
	require.Empty(t, state.Scope)
	require.Empty(t, state.AuthParams)
}

func TestStateFromRequest_QueryParameters(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/social/github/login?process=connect&next=%2Fdashboard&scope=read%3Auser&auth_params=prompt%3Dconsent", nil)

	state := socialaccount.StateFromRequest(r)

	require.Equal(t, socialaccount.ProcessConnect, state.Process)
	require.Equal(t, "/dashboard", state.Next)
	require.Equal(t, "read:user", state.Scope)
	require.Equal(t, "prompt=consent", state.AuthParams)
}

func TestStashAndVerifyRoundTrip(t *testing.T) {
	session := sessions.New(30 * time.Minute)
	r := httptest.NewRequest("GET", "/social/github/login?process=connect&next=%2Fhome", nil)

	verifier := socialaccount.StashState(session, r)
	require.NotEmpty(t, verifier)

	state, err := socialaccount.VerifyAndUnstashState(session, verifier)
	require.NoError(t, err)
	require.Equal(t, socialaccount.ProcessConnect, state.Process)
	require.Equal(t, "/home", state.Next)

	// The stash is single use
	_, err = socialaccount.VerifyAndUnstashState(session, verifier)
	require.ErrorIs(t, err, interrors.ErrAccessDenied)
}

func TestVerifyMismatchConsumesStash(t *testing.T) {
	session := sessions.New(30 * time.Minute)
	r := httptest.NewRequest("GET", "/social/github/login", nil)

	verifier := socialaccount.StashState(session, r)

	_, err := socialaccount.VerifyAndUnstashState(session, "forged-verifier")
	require.ErrorIs(t, err, interrors.ErrAccessDenied)

	// A failed check must consume the entry, so the real verifier cannot
	// be replayed afterwards
	_, err = socialaccount.VerifyAndUnstashState(session, verifier)
	require.ErrorIs(t, err, interrors.ErrAccessDenied)
}

func TestUnstashState(t *testing.T) {
	session := sessions.New(30 * time.Minute)
	r := httptest.NewRequest("GET", "/social/github/login?next=%2Fhome", nil)

	socialaccount.StashState(session, r)

	state, err := socialaccount.UnstashState(session)
	require.NoError(t, err)
	require.Equal(t, "/home", state.Next)

	_, err = socialaccount.UnstashState(session)
	require.ErrorIs(t, err, interrors.ErrAccessDenied)
}

func TestStashOverwritesPreviousHandshake(t *testing.T) {
	session := sessions.New(30 * time.Minute)
	first := socialaccount.StashState(session, httptest.NewRequest("GET", "/social/github/login", nil))
	second := socialaccount.StashState(session, httptest.NewRequest("GET", "/social/google/login", nil))
	require.NotEqual(t, first, second)

	_, err := socialaccount.VerifyAndUnstashState(session, first)
	require.ErrorIs(t, err, interrors.ErrAccessDenied, "Only the latest handshake may verify")

	session = sessions.New(30 * time.Minute)
	verifier := socialaccount.StashState(session, httptest.NewRequest("GET", "/social/google/login", nil))
	_, err = socialaccount.VerifyAndUnstashState(session, verifier)
	require.NoError(t, err)
}

func TestVerifyWithEmptySession(t *testing.T) {
	session := sessions.New(30 * time.Minute)

	_, err := socialaccount.VerifyAndUnstashState(session, "anything")
	require.ErrorIs(t, err, interrors.ErrAccessDenied)
}
