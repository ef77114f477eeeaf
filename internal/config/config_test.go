package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSecret:  strings.Repeat("a", 32),
			BcryptCost: 10,
		}
	}

	t.Run("Valid config passes", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("Missing secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("Short secret", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "too-short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Bcrypt cost out of range", func(t *testing.T) {
		cfg := base()
		cfg.BcryptCost = 3
		assert.Error(t, cfg.Validate())

		cfg.BcryptCost = 32
		assert.Error(t, cfg.Validate())
	})
}

func TestEnvHelpers(t *testing.T) {
	t.Run("getEnv falls back when unset", func(t *testing.T) {
		assert.Equal(t, "default", getEnv("THIS_KEY_IS_NOT_SET_ANYWHERE", "default"))
	})

	t.Run("getEnv reads set values", func(t *testing.T) {
		t.Setenv("SOME_TEST_KEY", "value")
		assert.Equal(t, "value", getEnv("SOME_TEST_KEY", "default"))
	})

	t.Run("getEnvDuration rejects garbage", func(t *testing.T) {
		t.Setenv("SOME_TTL", "forever")
		assert.Equal(t, time.Hour, getEnvDuration("SOME_TTL", time.Hour))

		t.Setenv("SOME_TTL", "45m")
		assert.Equal(t, 45*time.Minute, getEnvDuration("SOME_TTL", time.Hour))
	})

	t.Run("getEnvInt rejects garbage", func(t *testing.T) {
		t.Setenv("SOME_COST", "ten")
		assert.Equal(t, 10, getEnvInt("SOME_COST", 10))

		t.Setenv("SOME_COST", "12")
		assert.Equal(t, 12, getEnvInt("SOME_COST", 10))
	})
}
