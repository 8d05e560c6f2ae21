package socialaccount_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jrsteele09/go-social-login/emailaddress"
	"github.com/jrsteele09/go-social-login/internal/utils"
	"github.com/jrsteele09/go-social-login/socialaccount"
	"github.com/jrsteele09/go-social-login/users"
	"github.com/stretchr/testify/require"
)

func serializableLogin(t *testing.T, token *socialaccount.SocialToken) *socialaccount.Login {
	t.Helper()

	login, err := socialaccount.NewLogin(
		&users.User{Email: testUserEmail, FirstName: "John", LastName: "Doe", Verified: true},
		&socialaccount.SocialAccount{
			Provider:  testProvider,
			UID:       testUID,
			ExtraData: map[string]any{"login": "johndoe", "html_url": "https://github.com/johndoe"},
		},
		token,
		[]emailaddress.EmailAddress{
			{Email: testUserEmail, Verified: true},
			{Email: "alt@example.com"},
		},
	)
	require.NoError(t, err)

	login.State = socialaccount.State{
		Next:       "/dashboard",
		Process:    socialaccount.ProcessConnect,
		Scope:      "read:user user:email",
		AuthParams: "prompt=consent",
	}
	return login
}

func TestSerialize_RoundTripWithToken(t *testing.T) {
	serializer := socialaccount.JSONSerializer{}
	expiresAt := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	login := serializableLogin(t, &socialaccount.SocialToken{
		AppID:       testAppID,
		Token:       "a1",
		TokenSecret: "r1",
		ExpiresAt:   utils.Ptr(expiresAt),
	})

	payload, err := login.Serialize(serializer)
	require.NoError(t, err)

	// The mapping must survive a plain JSON transport hop
	wire, err := json.Marshal(payload)
	require.NoError(t, err)
	var transported map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(wire, &transported))

	restored, err := socialaccount.DeserializeLogin(serializer, transported)
	require.NoError(t, err)

	require.Equal(t, login.User, restored.User)
	require.Equal(t, login.Account, restored.Account)
	require.Equal(t, login.State, restored.State)
	require.Equal(t, login.EmailAddresses, restored.EmailAddresses)
	require.NotNil(t, restored.Token)
	require.Equal(t, "a1", restored.Token.Token)
	require.Equal(t, "r1", restored.Token.TokenSecret)
	require.NotNil(t, restored.Token.ExpiresAt)
	require.True(t, expiresAt.Equal(*restored.Token.ExpiresAt))
}

func TestSerialize_OmitsTokenKeyWhenAbsent(t *testing.T) {
	serializer := socialaccount.JSONSerializer{}
	login := serializableLogin(t, nil)

	payload, err := login.Serialize(serializer)
	require.NoError(t, err)

	_, hasToken := payload["token"]
	require.False(t, hasToken, "Token key must be absent, not null")

	restored, err := socialaccount.DeserializeLogin(serializer, payload)
	require.NoError(t, err)
	require.Nil(t, restored.Token)
}

func TestSerialize_NeverLeaksPasswordHash(t *testing.T) {
	serializer := socialaccount.JSONSerializer{}
	login := serializableLogin(t, nil)
	login.User.PasswordHash = "$2a$10$secret"

	payload, err := login.Serialize(serializer)
	require.NoError(t, err)
	require.NotContains(t, string(payload["user"]), "secret")
}
