package github

import (
	"fmt"

	"github.com/jrsteele09/go-social-login/internal/utils"
	"github.com/jrsteele09/go-social-login/providers"
)

const ProviderID = "github"

type Provider struct{}

var _ providers.Provider = Provider{}

func New() Provider { return Provider{} }

func (Provider) ID() string   { return ProviderID }
func (Provider) Name() string { return "GitHub" }

func (Provider) DefaultScopes() []string {
	return []string{"read:user", "user:email"}
}

func (Provider) WrapAccount(uid string, extraData map[string]any) providers.Account {
	return account{uid: uid, data: extraData}
}

type account struct {
	uid  string
	data map[string]any
}

func (a account) ProfileURL() string {
	if url := str(a.data, "html_url"); url != "" {
		return url
	}
	if login := str(a.data, "login"); login != "" {
		return fmt.Sprintf("https://github.com/%s", login)
	}
	return ""
}

func (a account) AvatarURL() string {
	return str(a.data, "avatar_url")
}

func (a account) String() string {
	return utils.FirstNonEmpty(str(a.data, "name"), str(a.data, "login"), a.uid)
}

func str(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}
