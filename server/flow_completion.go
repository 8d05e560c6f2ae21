package server

import (
	"net/http"
	"time"

	"github.com/jrsteele09/go-social-login/sessions"
	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/rs/zerolog/log"
)

// completeLogin finishes the handshake for a returning user: the reconciled
// login already points at the stored account's owner.
func (s *Server) completeLogin(w http.ResponseWriter, r *http.Request, session *sessions.Session, login *socialaccount.Login) {
	if login.User.Blocked {
		http.Error(w, "Account blocked", http.StatusForbidden)
		return
	}

	session.UserID = login.User.ID
	if err := s.sessions.Upsert(session); err != nil {
		log.Err(err).Msg("Failed to persist session")
		http.Error(w, "Failed to persist session", http.StatusInternalServerError)
		return
	}

	login.User.LastLogin = time.Now()
	if err := s.repos.Users.Upsert(login.User); err != nil {
		log.Warn().Err(err).Msg("Failed to record last login")
	}

	log.Info().
		Str("provider", login.Account.Provider).
		Str("user_id", login.User.ID).
		Msg("Social login completed")
	http.Redirect(w, r, redirectTarget(login), http.StatusSeeOther)
}

// completeConnect links the new provider identity to the session's user
func (s *Server) completeConnect(w http.ResponseWriter, r *http.Request, session *sessions.Session, login *socialaccount.Login) {
	if !session.Authenticated() {
		http.Error(w, "Connect requires a logged in user", http.StatusUnauthorized)
		return
	}
	if login.IsExisting() {
		if login.Account.UserID == session.UserID {
			// Identity already linked to this very user, nothing to do
			target := login.RedirectURL()
			if target == "" {
				target = RouteSocialConnections
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		log.Warn().
			Str("provider", login.Account.Provider).
			Str("user_id", session.UserID).
			Msg("Connect refused, identity belongs to another user")
		http.Error(w, "Identity is already connected to another account", http.StatusConflict)
		return
	}
	owner, err := s.repos.Users.GetByID(session.UserID)
	if err != nil {
		log.Err(err).Str("user_id", session.UserID).Msg("Session user not found")
		http.Error(w, "Unknown user", http.StatusUnauthorized)
		return
	}

	if err := s.logins.Connect(login, owner); err != nil {
		log.Err(err).Str("provider", login.Account.Provider).Msg("Connect failed")
		http.Error(w, "Failed to connect account", http.StatusInternalServerError)
		return
	}

	log.Info().
		Str("provider", login.Account.Provider).
		Str("user_id", owner.ID).
		Msg("Provider identity connected")
	target := login.RedirectURL()
	if target == "" {
		target = RouteSocialConnections
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// continueSignup hands a brand-new identity over to the signup page,
// carrying the serialized login in a signed cookie.
func (s *Server) continueSignup(w http.ResponseWriter, r *http.Request, login *socialaccount.Login) {
	carrier, err := s.issuePendingLogin(login)
	if err != nil {
		log.Err(err).Msg("Failed to issue pending login carrier")
		http.Error(w, "Failed to continue signup", http.StatusInternalServerError)
		return
	}
	s.setPendingLoginCookie(w, r, carrier)
	http.Redirect(w, r, RouteSocialSignup, http.StatusSeeOther)
}

func redirectTarget(login *socialaccount.Login) string {
	if url := login.RedirectURL(); url != "" {
		return url
	}
	return "/"
}
