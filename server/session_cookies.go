package server

import (
	"net/http"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/sessions"
	"github.com/pkg/errors"
)

const (
	// sessionCookieName is the cookie carrying the server-side session id
	sessionCookieName = "session_id"
	// pendingLoginCookieName carries the signed pending login across the
	// redirect to the signup page
	pendingLoginCookieName = "pending_social_login"
)

// currentSession returns the live session for the request, if any
func (s *Server) currentSession(r *http.Request) (*sessions.Session, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, interrors.ErrSessionNotFound
	}
	session, err := s.sessions.Get(cookie.Value)
	if err != nil {
		return nil, errors.Wrap(err, "[currentSession] sessions.Get")
	}
	return session, nil
}

// ensureSession returns the live session for the request, creating a fresh
// one (and setting its cookie) when none exists.
func (s *Server) ensureSession(w http.ResponseWriter, r *http.Request) (*sessions.Session, error) {
	if session, err := s.currentSession(r); err == nil {
		return session, nil
	}

	session := sessions.New(s.config.GetMaxSessionAge())
	if err := s.sessions.Upsert(session); err != nil {
		return nil, errors.Wrap(err, "[ensureSession] sessions.Upsert")
	}
	s.setSessionCookie(w, r, session.ID)
	return session, nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetMaxSessionAge().Seconds()),
	})
}

func (s *Server) setPendingLoginCookie(w http.ResponseWriter, r *http.Request, carrier string) {
	http.SetCookie(w, &http.Cookie{
		Name:     pendingLoginCookieName,
		Value:    carrier,
		Path:     RouteSocialSignup,
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.config.GetSignupCarrierTTL().Seconds()),
	})
}

func (s *Server) clearCookie(w http.ResponseWriter, name, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   path,
		MaxAge: -1,
	})
}
