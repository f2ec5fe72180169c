package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name: "Success with minimal required config",
			envVars: map[string]string{
				"API_KEY": "test-api-key",
			},
			expectError: false,
		},
		{
			name: "Success with all config specified",
			envVars: map[string]string{
				"SERVER_HOST":      "localhost",
				"SERVER_PORT":      "9090",
				"BACKEND_BASE_URL": "http://erp.example.com",
				"BACKEND_API_KEY":  "backend-key",
				"BACKEND_TIMEOUT":  "20",
				"RATE_FRESHNESS":   "600",
				"RATE_FALLBACK":    "36.5",
				"LOG_LEVEL":        "debug",
				"LOG_FORMAT":       "console",
				"API_KEY":          "test-key-123",
			},
			expectError: false,
		},
		{
			name: "Error - missing API key",
			envVars: map[string]string{
				"API_KEY": "",
			},
			expectError: true,
			errorMsg:    "API key is required",
		},
		{
			name: "Error - invalid server port",
			envVars: map[string]string{
				"SERVER_PORT": "99999",
				"API_KEY":     "test-key",
			},
			expectError: true,
			errorMsg:    "invalid server port",
		},
		{
			name: "Error - invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL": "invalid",
				"API_KEY":   "test-key",
			},
			expectError: true,
			errorMsg:    "invalid log level",
		},
		{
			name: "Error - invalid log format",
			envVars: map[string]string{
				"LOG_FORMAT": "xml",
				"API_KEY":    "test-key",
			},
			expectError: true,
			errorMsg:    "invalid log format",
		},
		{
			name: "Error - negative rate freshness",
			envVars: map[string]string{
				"RATE_FRESHNESS": "-1",
				"API_KEY":        "test-key",
			},
			expectError: true,
			errorMsg:    "rate freshness window",
		},
		{
			name: "Error - non-positive rate fallback",
			envVars: map[string]string{
				"RATE_FALLBACK": "0",
				"API_KEY":       "test-key",
			},
			expectError: true,
			errorMsg:    "rate fallback must be positive",
		},
		{
			name: "Error - zero backend timeout",
			envVars: map[string]string{
				"BACKEND_TIMEOUT": "0",
				"API_KEY":         "test-key",
			},
			expectError: true,
			errorMsg:    "backend timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}

			cfg, err := Load()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:9090", cfg.Backend.BaseURL)
	assert.Equal(t, 300, cfg.Rate.FreshnessSeconds)
	assert.True(t, cfg.Rate.Fallback.Equal(decimal.NewFromInt(36)))
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_IgnoresUnparseableOverrides(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("RATE_FALLBACK", "not-a-decimal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Rate.Fallback.Equal(decimal.NewFromInt(36)))
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "localhost", Port: 9090}
	assert.Equal(t, "localhost:9090", cfg.Address())
}
