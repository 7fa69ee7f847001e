package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("OFFICIAL_EMAIL", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "your_email@chitkara.edu.in", cfg.Identity.OfficialEmail)
	assert.False(t, cfg.HasGeminiKey())
	assert.Equal(t, "bfhl", cfg.Observability.ServiceName)
	assert.Equal(t, cfg.Primary.Env, cfg.Observability.Environment)
	assert.Equal(t, 30*time.Second, cfg.Integration.GeminiTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
}

func TestLoadConfig_LegacyVariables(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("OFFICIAL_EMAIL", "someone@example.com")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "someone@example.com", cfg.Identity.OfficialEmail)
	assert.True(t, cfg.HasGeminiKey())
}

func TestLoadConfig_PrefixedOverridesLegacy(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("BFHL_SERVER.PORT", "9090")
	t.Setenv("BFHL_PRIMARY.ENV", "production")
	t.Setenv("BFHL_SERVER.CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("BFHL_INTEGRATION.GEMINI_TIMEOUT", "5s")
	t.Setenv("BFHL_COMPUTE.MAX_FIBONACCI_TERMS", "50")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.IsProduction())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Integration.GeminiTimeout)
	assert.Equal(t, 50, cfg.Compute.MaxFibonacciTerms)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric port", "BFHL_SERVER.PORT", "http"},
		{"bad log level", "BFHL_OBSERVABILITY.LOGGING.LEVEL", "verbose"},
		{"zero fibonacci cap", "BFHL_COMPUTE.MAX_FIBONACCI_TERMS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_IdentityIsFreeForm(t *testing.T) {
	t.Setenv("OFFICIAL_EMAIL", "team-bfhl (roll 42)")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "team-bfhl (roll 42)", cfg.Identity.OfficialEmail)
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}
