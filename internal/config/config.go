package config

type Config interface {
	EnvConfig
	SocialConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	Social
	Sessions
}

func New() Config {
	return mainConfig{}
}
