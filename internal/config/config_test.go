package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/goodlife")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("JWT_SECRET_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultMaxQueryLength, cfg.MaxQueryLength)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.True(t, cfg.Dev)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_QUERY_LENGTH", "250")
	t.Setenv("RESPONSE_TIMEOUT", "10s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 250, cfg.MaxQueryLength)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Dev)
}

func TestLoadMissingRequired(t *testing.T) {
	keys := []string{"DATABASE_URL", "OPENAI_API_KEY", "JWT_SECRET_KEY"}
	for _, missing := range keys {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	for env, value := range map[string]string{
		"MAX_QUERY_LENGTH": "lots",
		"RESPONSE_TIMEOUT": "-5s",
	} {
		t.Run(env, func(t *testing.T) {
			setRequired(t)
			t.Setenv(env, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
