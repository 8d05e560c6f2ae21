package config_test

import (
	"testing"

	"github.com/jrsteele09/go-social-login/internal/config"
	"github.com/stretchr/testify/require"
)

func TestGetPort(t *testing.T) {
	c := config.New()

	t.Setenv("PORT", "9000")
	require.Equal(t, ":9000", c.GetPort())

	// Already prefixed values must not gain a second colon
	t.Setenv("PORT", ":9000")
	require.Equal(t, ":9000", c.GetPort())

	t.Setenv("PORT", "")
	require.Equal(t, ":8080", c.GetPort())
}
