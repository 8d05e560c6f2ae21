package socialaccount

import (
	"encoding/json"

	"github.com/jrsteele09/go-social-login/emailaddress"
	"github.com/jrsteele09/go-social-login/users"
	"github.com/pkg/errors"
)

// Serializer converts individual records to and from the opaque blobs used
// in the serialized handshake payload. Pluggable so deployments can swap in
// encrypted or versioned encodings.
type Serializer interface {
	MarshalInstance(v any) ([]byte, error)
	UnmarshalInstance(data []byte, v any) error
}

// JSONSerializer is the default instance serializer
type JSONSerializer struct{}

var _ Serializer = JSONSerializer{}

func (JSONSerializer) MarshalInstance(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONSerializer) UnmarshalInstance(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Serialized payload keys. The token key is omitted entirely when the login
// carries no token, so its absence survives the round trip.
const (
	payloadKeyAccount = "account"
	payloadKeyUser    = "user"
	payloadKeyState   = "state"
	payloadKeyEmails  = "email_addresses"
	payloadKeyToken   = "token"
)

// Serialize flattens the login into a transport-safe mapping so it can be
// carried across a redirect boundary without a server-held object.
func (l *Login) Serialize(s Serializer) (map[string]json.RawMessage, error) {
	account, err := s.MarshalInstance(l.Account)
	if err != nil {
		return nil, errors.Wrap(err, "[Login.Serialize] account")
	}
	user, err := s.MarshalInstance(l.User)
	if err != nil {
		return nil, errors.Wrap(err, "[Login.Serialize] user")
	}
	state, err := json.Marshal(l.State)
	if err != nil {
		return nil, errors.Wrap(err, "[Login.Serialize] state")
	}

	emails := make([]json.RawMessage, 0, len(l.EmailAddresses))
	for _, ea := range l.EmailAddresses {
		blob, err := s.MarshalInstance(ea)
		if err != nil {
			return nil, errors.Wrap(err, "[Login.Serialize] email address")
		}
		emails = append(emails, blob)
	}
	emailList, err := json.Marshal(emails)
	if err != nil {
		return nil, errors.Wrap(err, "[Login.Serialize] email addresses")
	}

	ret := map[string]json.RawMessage{
		payloadKeyAccount: account,
		payloadKeyUser:    user,
		payloadKeyState:   state,
		payloadKeyEmails:  emailList,
	}
	if l.Token != nil {
		token, err := s.MarshalInstance(l.Token)
		if err != nil {
			return nil, errors.Wrap(err, "[Login.Serialize] token")
		}
		ret[payloadKeyToken] = token
	}
	return ret, nil
}

// DeserializeLogin reconstructs a login from its serialized mapping. The
// token is restored if and only if the token key was present.
func DeserializeLogin(s Serializer, data map[string]json.RawMessage) (*Login, error) {
	account := &SocialAccount{}
	if err := s.UnmarshalInstance(data[payloadKeyAccount], account); err != nil {
		return nil, errors.Wrap(err, "[DeserializeLogin] account")
	}
	user := &users.User{}
	if err := s.UnmarshalInstance(data[payloadKeyUser], user); err != nil {
		return nil, errors.Wrap(err, "[DeserializeLogin] user")
	}
	var state State
	if err := json.Unmarshal(data[payloadKeyState], &state); err != nil {
		return nil, errors.Wrap(err, "[DeserializeLogin] state")
	}

	var token *SocialToken
	if blob, ok := data[payloadKeyToken]; ok {
		token = &SocialToken{}
		if err := s.UnmarshalInstance(blob, token); err != nil {
			return nil, errors.Wrap(err, "[DeserializeLogin] token")
		}
	}

	var emailBlobs []json.RawMessage
	if err := json.Unmarshal(data[payloadKeyEmails], &emailBlobs); err != nil {
		return nil, errors.Wrap(err, "[DeserializeLogin] email addresses")
	}
	emails := make([]emailaddress.EmailAddress, 0, len(emailBlobs))
	for _, blob := range emailBlobs {
		var ea emailaddress.EmailAddress
		if err := s.UnmarshalInstance(blob, &ea); err != nil {
			return nil, errors.Wrap(err, "[DeserializeLogin] email address")
		}
		emails = append(emails, ea)
	}

	return &Login{
		User:           user,
		Account:        account,
		Token:          token,
		EmailAddresses: emails,
		State:          state,
	}, nil
}
