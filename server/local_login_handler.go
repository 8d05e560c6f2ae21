package server

import (
	"net/http"

	"github.com/jrsteele09/go-social-login/users"
	"github.com/rs/zerolog/log"
)

// LocalLoginHandler authenticates a local user with email and password
// (POST /auth/login). Connecting a provider identity requires a logged in
// local user, so the service keeps this minimal local flow alongside the
// social handshake.
func (s *Server) LocalLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.FormValue("email")
		password := r.FormValue("password")
		if email == "" || password == "" {
			http.Error(w, "Missing email or password", http.StatusBadRequest)
			return
		}

		user, err := s.repos.Users.GetByEmail(email)
		if err != nil || !users.CheckPasswordHash(password, user.PasswordHash) {
			// Same response for unknown user and wrong password
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		if user.Blocked {
			http.Error(w, "Account blocked", http.StatusForbidden)
			return
		}

		session, err := s.ensureSession(w, r)
		if err != nil {
			http.Error(w, "Failed to establish session", http.StatusInternalServerError)
			return
		}
		session.UserID = user.ID
		if err := s.sessions.Upsert(session); err != nil {
			http.Error(w, "Failed to persist session", http.StatusInternalServerError)
			return
		}

		log.Info().Str("user_id", user.ID).Msg("Local login completed")
		if next := r.FormValue("next"); next != "" {
			http.Redirect(w, r, next, http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// LogoutHandler drops the server-side session (GET /auth/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session, err := s.currentSession(r); err == nil {
			if err := s.sessions.Delete(session.ID); err != nil {
				log.Warn().Err(err).Msg("Failed to delete session")
			}
		}
		s.clearCookie(w, sessionCookieName, "/")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
