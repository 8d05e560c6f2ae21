package server

import (
	"net/http"

	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/rs/zerolog/log"
)

// SignupPageData is the pending signup information returned to the client
type SignupPageData struct {
	Provider  string `json:"provider"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (s *Server) pendingLoginFromRequest(r *http.Request) (*socialaccount.Login, error) {
	cookie, err := r.Cookie(pendingLoginCookieName)
	if err != nil || cookie.Value == "" {
		return nil, err
	}
	return s.parsePendingLogin(cookie.Value)
}

// SocialSignupGetHandler returns the prefilled signup data for the pending
// login (GET /social/signup)
func (s *Server) SocialSignupGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		login, err := s.pendingLoginFromRequest(r)
		if err != nil || login == nil {
			http.Error(w, "No signup in progress", http.StatusForbidden)
			return
		}

		writeJSON(w, http.StatusOK, SignupPageData{
			Provider:  login.Account.Provider,
			Email:     login.User.Email,
			Username:  login.User.Username,
			FirstName: login.User.FirstName,
			LastName:  login.User.LastName,
		})
	}
}

// SocialSignupPostHandler commits the pending login, applying any form
// overrides to the candidate user (POST /social/signup)
func (s *Server) SocialSignupPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		login, err := s.pendingLoginFromRequest(r)
		if err != nil || login == nil {
			http.Error(w, "No signup in progress", http.StatusForbidden)
			return
		}

		// The candidate user is only a starting point - the signup form
		// may override what the provider prefilled
		applyOverride(r, "email", &login.User.Email)
		applyOverride(r, "username", &login.User.Username)
		applyOverride(r, "first_name", &login.User.FirstName)
		applyOverride(r, "last_name", &login.User.LastName)

		if err := s.logins.Save(login); err != nil {
			log.Err(err).Str("provider", login.Account.Provider).Msg("Signup commit failed")
			http.Error(w, "Signup failed", http.StatusInternalServerError)
			return
		}
		s.clearCookie(w, pendingLoginCookieName, RouteSocialSignup)

		session, err := s.ensureSession(w, r)
		if err != nil {
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}
		session.UserID = login.User.ID
		if err := s.sessions.Upsert(session); err != nil {
			http.Error(w, "Failed to persist session", http.StatusInternalServerError)
			return
		}

		log.Info().
			Str("provider", login.Account.Provider).
			Str("user_id", login.User.ID).
			Msg("Social signup completed")
		http.Redirect(w, r, redirectTarget(login), http.StatusSeeOther)
	}
}

func applyOverride(r *http.Request, field string, target *string) {
	if v := r.FormValue(field); v != "" {
		*target = v
	}
}
