package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	// Run from an empty directory so a developer's config.yaml is not read.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	t.Setenv("ELSA_API_URL", "https://elsa.example.test")
	t.Setenv("PAYMENT_PRIVATE_KEY", "0xdeadbeef")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://elsa.example.test", cfg.API.BaseURL)
	assert.Equal(t, "0xdeadbeef", cfg.Payment.PrivateKey)
	assert.Equal(t, 60, cfg.API.TimeoutSeconds)
	assert.Equal(t, "base", cfg.Payment.Network)
	assert.Equal(t, 10.0, cfg.Budget.DailyCapUSD)
	assert.Equal(t, 10, cfg.Budget.CallsPerMinute)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.API.BaseURL = "https://api.heyelsa.ai"
		cfg.API.TimeoutSeconds = 60
		cfg.Payment.PrivateKey = "0xabc"
		cfg.Budget.DailyCapUSD = 10
		cfg.Budget.CallsPerMinute = 10
		return cfg
	}

	assert.NoError(t, valid().Validate())

	missingKey := valid()
	missingKey.Payment.PrivateKey = ""
	assert.Error(t, missingKey.Validate())

	missingURL := valid()
	missingURL.API.BaseURL = ""
	assert.Error(t, missingURL.Validate())

	badCap := valid()
	badCap.Budget.DailyCapUSD = 0
	assert.Error(t, badCap.Validate())

	badPrice := valid()
	badPrice.Pricing.Endpoints = map[string]float64{"/api/search_token": -1}
	assert.Error(t, badPrice.Validate())
}
