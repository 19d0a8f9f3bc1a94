package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies that Load fills the expected defaults when no
// environment variables are set.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err, "Load() should not return an error with default values")
	require.NotNil(t, cfg, "Load() should return a non-nil config")
	assert.Equal(t, 8080, cfg.Server.Port, "Default server port should be 8080")
	assert.Equal(t, "info", cfg.Server.LogLevel, "Default log level should be 'info'")
	assert.Equal(t, 20, cfg.Dojo.QuestionCap)
	assert.Equal(t, 5, cfg.Dojo.XPStreakInterval)
	assert.Empty(t, cfg.LLM.GeminiAPIKey, "Gemini key defaults to unset")
	assert.NotEmpty(t, cfg.LLM.ModelName)
	assert.Equal(t, 3, cfg.LLM.MaxRetries)
	assert.Equal(t, 2, cfg.LLM.RetryDelaySeconds)
}

// TestLoadFromEnvironment verifies that DOJO_-prefixed environment
// variables override defaults.
func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DOJO_SERVER_PORT", "9090")
	t.Setenv("DOJO_SERVER_LOG_LEVEL", "debug")
	t.Setenv("DOJO_DOJO_QUESTION_CAP", "10")
	t.Setenv("DOJO_DOJO_XP_STREAK_INTERVAL", "3")
	t.Setenv("DOJO_LLM_GEMINI_API_KEY", "test-api-key")
	t.Setenv("DOJO_LLM_MODEL_NAME", "gemini-2.5-pro")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, 10, cfg.Dojo.QuestionCap)
	assert.Equal(t, 3, cfg.Dojo.XPStreakInterval)
	assert.Equal(t, "test-api-key", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.ModelName)
}

// TestLoadRejectsInvalidValues verifies validation failures surface as
// errors instead of misconfigured servers.
func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "port out of range",
			env:  map[string]string{"DOJO_SERVER_PORT": "70000"},
		},
		{
			name: "unknown log level",
			env:  map[string]string{"DOJO_SERVER_LOG_LEVEL": "verbose"},
		},
		{
			name: "zero question cap",
			env:  map[string]string{"DOJO_DOJO_QUESTION_CAP": "0"},
		},
		{
			name: "negative retries",
			env:  map[string]string{"DOJO_LLM_MAX_RETRIES": "-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for name, value := range tt.env {
				t.Setenv(name, value)
			}

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}
