package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authkit/pkg/config"
)

type testConfig struct {
	BaseURL string        `env:"TEST_AUTH_BASE_URL" envDefault:"http://localhost:8080"`
	Timeout time.Duration `env:"TEST_AUTH_TIMEOUT" envDefault:"15s"`
	APIKey  string        `env:"TEST_AUTH_API_KEY"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.APIKey)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("TEST_AUTH_BASE_URL", "https://auth.example.com")
	t.Setenv("TEST_AUTH_TIMEOUT", "3s")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "https://auth.example.com", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoad_NilPointer(t *testing.T) {
	var cfg *testConfig
	err := config.Load(cfg)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("TEST_AUTH_TIMEOUT", "not-a-duration")

	var cfg testConfig
	err := config.Load(&cfg)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestMustLoad_PanicsOnFailure(t *testing.T) {
	t.Setenv("TEST_AUTH_TIMEOUT", "broken")

	assert.Panics(t, func() {
		var cfg testConfig
		config.MustLoad(&cfg)
	})
}
