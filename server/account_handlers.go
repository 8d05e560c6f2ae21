package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// ProviderChoice is one registered provider in the listing
type ProviderChoice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProvidersHandler lists the registered providers (GET /social/providers)
func (s *Server) ProvidersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		choices := s.registry.AsChoices()
		out := make([]ProviderChoice, 0, len(choices))
		for _, c := range choices {
			out = append(out, ProviderChoice{ID: c[0], Name: c[1]})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// Connection is one linked provider identity of the session's user
type Connection struct {
	Provider   string `json:"provider"`
	UID        string `json:"uid"`
	Display    string `json:"display"`
	ProfileURL string `json:"profile_url,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
}

// ConnectionsHandler lists the linked identities of the logged in user
// (GET /social/connections)
func (s *Server) ConnectionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.currentSession(r)
		if err != nil || !session.Authenticated() {
			http.Error(w, "Not logged in", http.StatusUnauthorized)
			return
		}

		accounts, err := s.repos.Accounts.ListByUser(session.UserID)
		if err != nil {
			log.Err(err).Str("user_id", session.UserID).Msg("Failed to list accounts")
			http.Error(w, "Failed to list connections", http.StatusInternalServerError)
			return
		}

		out := make([]Connection, 0, len(accounts))
		for _, account := range accounts {
			conn := Connection{Provider: account.Provider, UID: account.UID, Display: account.UID}
			// Providers removed from the registry still list as bare ids
			if wrapped, err := account.ProviderAccount(s.registry); err == nil {
				conn.Display = wrapped.String()
				conn.ProfileURL = wrapped.ProfileURL()
				conn.AvatarURL = wrapped.AvatarURL()
			}
			out = append(out, conn)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("Failed to encode response")
	}
}
