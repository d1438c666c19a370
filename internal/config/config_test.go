package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/eventorbit")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/eventorbit")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, time.Hour, cfg.Auth.AccessExpiry)
	require.Equal(t, 168*time.Hour, cfg.Auth.RefreshExpiry)
	require.Equal(t, 30*time.Second, cfg.Generator.Timeout)
	require.Equal(t, "gpt-4o-mini", cfg.Generator.Model)
	require.Equal(t, 5, cfg.RateLimit.LoginPer15Minutes)
	require.Empty(t, cfg.RateLimit.TrustedProxies)
	require.Equal(t, "development", cfg.Environment)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/eventorbit")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_ACCESS_EXPIRY_MINUTES", "15")
	t.Setenv("GENERATOR_TIMEOUT_SECONDS", "5")
	t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 15*time.Minute, cfg.Auth.AccessExpiry)
	require.Equal(t, 5*time.Second, cfg.Generator.Timeout)
	require.Equal(t, []string{"10.0.0.0/8", "172.16.0.0/12"}, cfg.RateLimit.TrustedProxies)
}
