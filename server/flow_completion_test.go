package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-social-login/emailaddress"
	fakeemailrepo "github.com/jrsteele09/go-social-login/emailaddress/repofakes"
	"github.com/jrsteele09/go-social-login/internal/config"
	"github.com/jrsteele09/go-social-login/providers"
	"github.com/jrsteele09/go-social-login/providers/github"
	"github.com/jrsteele09/go-social-login/sessions"
	"github.com/jrsteele09/go-social-login/socialaccount"
	fakesocialrepos "github.com/jrsteele09/go-social-login/socialaccount/repofakes"
	"github.com/jrsteele09/go-social-login/users"
	fakeuserrepo "github.com/jrsteele09/go-social-login/users/repofake"
	"github.com/stretchr/testify/require"
)

type serverFixture struct {
	server      *Server
	accountRepo *fakesocialrepos.FakeAccountRepo
	userRepo    users.UserRepo
	sessionRepo sessions.Repo
}

func setupServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	repos := socialaccount.Repos{
		Accounts: fakesocialrepos.NewFakeAccountRepo(),
		Tokens:   fakesocialrepos.NewFakeTokenRepo(),
		Apps:     fakesocialrepos.NewFakeAppRepo(),
		Users:    fakeuserrepo.NewFakeUserRepo(),
	}
	emails, err := emailaddress.NewManager(fakeemailrepo.NewFakeEmailRepo())
	require.NoError(t, err)
	sessionRepo := sessions.NewInMemorySessionRepo()

	srv, err := New(config.New(), providers.NewRegistry(github.New()), repos, emails, sessionRepo)
	require.NoError(t, err)

	return &serverFixture{
		server:      srv,
		accountRepo: repos.Accounts.(*fakesocialrepos.FakeAccountRepo),
		userRepo:    repos.Users,
		sessionRepo: sessionRepo,
	}
}

func (f *serverFixture) authenticatedSession(t *testing.T, userID string) *sessions.Session {
	t.Helper()

	session := sessions.New(30 * time.Minute)
	session.UserID = userID
	require.NoError(t, f.sessionRepo.Upsert(session))
	return session
}

func connectLogin(account *socialaccount.SocialAccount) *socialaccount.Login {
	return &socialaccount.Login{
		User:    &users.User{Email: "provider@example.com"},
		Account: account,
		State:   socialaccount.State{Process: socialaccount.ProcessConnect},
	}
}

func TestCompleteConnect_RefusesForeignIdentity(t *testing.T) {
	f := setupServerFixture(t)

	other, err := f.userRepo.Create(&users.User{Email: "other@example.com"})
	require.NoError(t, err)
	stored, err := f.accountRepo.Create(&socialaccount.SocialAccount{
		UserID:   other.ID,
		Provider: "github",
		UID:      "9001",
	})
	require.NoError(t, err)

	me, err := f.userRepo.Create(&users.User{Email: "me@example.com"})
	require.NoError(t, err)
	session := f.authenticatedSession(t, me.ID)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/social/github/callback", nil)
	f.server.completeConnect(w, r, session, connectLogin(stored))

	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, me.ID, session.UserID, "Session user must not change")
}

func TestCompleteConnect_AlreadyConnectedToSameUser(t *testing.T) {
	f := setupServerFixture(t)

	me, err := f.userRepo.Create(&users.User{Email: "me@example.com"})
	require.NoError(t, err)
	stored, err := f.accountRepo.Create(&socialaccount.SocialAccount{
		UserID:   me.ID,
		Provider: "github",
		UID:      "9001",
	})
	require.NoError(t, err)
	session := f.authenticatedSession(t, me.ID)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/social/github/callback", nil)
	f.server.completeConnect(w, r, session, connectLogin(stored))

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, RouteSocialConnections, w.Header().Get("Location"))
	require.Equal(t, 1, f.accountRepo.Len(), "No second account may be written")
}

func TestCompleteConnect_LinksFreshIdentity(t *testing.T) {
	f := setupServerFixture(t)

	me, err := f.userRepo.Create(&users.User{Email: "me@example.com"})
	require.NoError(t, err)
	session := f.authenticatedSession(t, me.ID)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/social/github/callback", nil)
	f.server.completeConnect(w, r, session, connectLogin(&socialaccount.SocialAccount{
		Provider: "github",
		UID:      "9001",
	}))

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, 1, f.accountRepo.Len())

	stored, err := f.accountRepo.GetByProviderUID("github", "9001")
	require.NoError(t, err)
	require.Equal(t, me.ID, stored.UserID)
}

func TestCompleteConnect_RequiresAuthenticatedSession(t *testing.T) {
	f := setupServerFixture(t)
	session := sessions.New(30 * time.Minute)
	require.NoError(t, f.sessionRepo.Upsert(session))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/social/github/callback", nil)
	f.server.completeConnect(w, r, session, connectLogin(&socialaccount.SocialAccount{
		Provider: "github",
		UID:      "9001",
	}))

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
