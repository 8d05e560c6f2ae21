package socialaccount

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/pkg/errors"
)

// stateSessionKey is the single session slot a pending handshake occupies.
// Stashing again overwrites any previous pending handshake.
const stateSessionKey = "socialaccount_state"

const verifierLength = 32

// Process kinds carried through a handshake
const (
	ProcessLogin   = "login"
	ProcessConnect = "connect"
)

// State carries the transient handshake parameters across the redirect
// round-trip. Note that this state may end up in a URL - do not put any
// secrets in here.
type State struct {
	Next       string `json:"next,omitempty"` // Post-login redirect target
	Process    string `json:"process"`        // "login" or "connect"
	Scope      string `json:"scope"`          // Requested scope override, if any
	AuthParams string `json:"auth_params"`    // Extra provider auth parameters
}

// StateFromRequest derives the handshake state from the incoming request,
// with each parameter defaulting to its login value when absent.
func StateFromRequest(r *http.Request) State {
	return State{
		Next:       requestParam(r, "next", ""),
		Process:    requestParam(r, "process", ProcessLogin),
		Scope:      requestParam(r, "scope", ""),
		AuthParams: requestParam(r, "auth_params", ""),
	}
}

func requestParam(r *http.Request, key, defaultValue string) string {
	// FormValue covers both query params and POST form data
	if v := r.FormValue(key); v != "" {
		return v
	}
	return defaultValue
}

// SessionStore is the server-side session mapping the verifier stash lives
// in. Pop removes and returns the value stored under a key; a missing key
// is a normal, checked condition.
type SessionStore interface {
	Set(key string, value any)
	Pop(key string) (any, bool)
}

// stashedState is the (state, verifier) pair bound to one pending handshake
type stashedState struct {
	State    State
	Verifier string
}

// StashState derives the handshake state from the request, generates a
// random verifier, and stores the pair in the session. The verifier is
// round-tripped through the external provider and must come back intact.
func StashState(store SessionStore, r *http.Request) string {
	state := StateFromRequest(r)
	verifier := generateRandomString(verifierLength)
	store.Set(stateSessionKey, stashedState{State: state, Verifier: verifier})
	return verifier
}

// UnstashState pops the pending handshake state unconditionally. Fails with
// the AccessDenied class if nothing was stashed.
func UnstashState(store SessionStore) (State, error) {
	stash, ok := popStash(store)
	if !ok {
		return State{}, errors.Wrap(interrors.ErrAccessDenied, "[UnstashState] no pending handshake")
	}
	return stash.State, nil
}

// VerifyAndUnstashState pops the pending handshake state and checks the
// supplied verifier against the stashed one. The entry is consumed exactly
// once regardless of the outcome, so a failed verification cannot be
// replayed against the same stash.
func VerifyAndUnstashState(store SessionStore, verifier string) (State, error) {
	stash, ok := popStash(store)
	if !ok {
		return State{}, errors.Wrap(interrors.ErrAccessDenied, "[VerifyAndUnstashState] no pending handshake")
	}
	if stash.Verifier != verifier {
		return State{}, errors.Wrap(interrors.ErrAccessDenied, "[VerifyAndUnstashState] verifier mismatch")
	}
	return stash.State, nil
}

func popStash(store SessionStore) (stashedState, bool) {
	v, ok := store.Pop(stateSessionKey)
	if !ok {
		return stashedState{}, false
	}
	stash, ok := v.(stashedState)
	return stash, ok
}

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
