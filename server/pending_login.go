package server

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
	interrors "github.com/jrsteele09/go-social-login/internal/errors"
	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/pkg/errors"
)

// pendingLoginClaims wraps a serialized login in a signed carrier so the
// in-progress handshake can survive the redirect to the signup page without
// a server-held object.
type pendingLoginClaims struct {
	jwt.RegisteredClaims
	Login map[string]json.RawMessage `json:"login"`
}

func (s *Server) issuePendingLogin(login *socialaccount.Login) (string, error) {
	payload, err := login.Serialize(s.serializer)
	if err != nil {
		return "", errors.Wrap(err, "[issuePendingLogin] login.Serialize")
	}

	now := time.Now()
	claims := pendingLoginClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.GetSignupCarrierTTL())),
		},
		Login: payload,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.config.GetSignupCarrierSecret())
	if err != nil {
		return "", errors.Wrap(err, "[issuePendingLogin] SignedString")
	}
	return signed, nil
}

func (s *Server) parsePendingLogin(carrier string) (*socialaccount.Login, error) {
	claims := &pendingLoginClaims{}
	_, err := jwt.ParseWithClaims(carrier, claims,
		func(t *jwt.Token) (any, error) { return s.config.GetSignupCarrierSecret(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		// A tampered or expired carrier means the handshake is no longer
		// trustworthy - same class as a verifier mismatch
		return nil, errors.Wrap(interrors.ErrAccessDenied, "[parsePendingLogin] invalid carrier")
	}
	login, err := socialaccount.DeserializeLogin(s.serializer, claims.Login)
	if err != nil {
		return nil, errors.Wrap(err, "[parsePendingLogin] DeserializeLogin")
	}
	return login, nil
}
