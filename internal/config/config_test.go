package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("INSIGHT_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(10485760), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
	assert.Equal(t, 3, cfg.Analytics.TopK)
	assert.Equal(t, "local", cfg.Insights.Provider)
	assert.Equal(t, 900, cfg.Insights.MaxTokens)
	assert.Equal(t, 0.2, cfg.Insights.Temperature)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  port: 9090
analytics:
  top_k: 5
insights:
  provider: anthropic
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("INSIGHT_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Analytics.TopK)
	assert.Equal(t, "anthropic", cfg.Insights.Provider)
	// Values absent from the file keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o644))
	t.Setenv("INSIGHT_CONFIG_FILE", path)
	t.Setenv("INSIGHT_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  port: 0\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"bad top_k", "analytics:\n  top_k: -1\n"},
		{"bad provider", "insights:\n  provider: bard\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			t.Setenv("INSIGHT_CONFIG_FILE", path)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestInsightsConfig_APIKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")
	t.Setenv("CUSTOM_KEY", "custom-key")

	tests := []struct {
		name     string
		cfg      InsightsConfig
		provider string
		want     string
	}{
		{"explicit env var", InsightsConfig{APIKeyEnv: "CUSTOM_KEY"}, "anthropic", "custom-key"},
		{"anthropic default env", InsightsConfig{Provider: "anthropic"}, "anthropic", "anthropic-key"},
		{"openai default env unset", InsightsConfig{Provider: "openai"}, "openai", ""},
		{"local has no key", InsightsConfig{Provider: "local"}, "local", ""},
		// A request may name a provider the config does not; the key
		// follows the requested provider, not the configured one.
		{"requested overrides configured", InsightsConfig{Provider: "local"}, "anthropic", "anthropic-key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.APIKey(tt.provider))
		})
	}
}
