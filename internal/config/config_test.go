package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/generate-images/", cfg.Endpoint)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, 4, cfg.DecodeConcurrency)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("LENS_ENDPOINT", "https://lens.example.com/generate-images/")
	t.Setenv("LENS_TIMEOUT", "30s")
	t.Setenv("DECODE_CONCURRENCY", "8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://lens.example.com/generate-images/", cfg.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.DecodeConcurrency)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"relative endpoint", "LENS_ENDPOINT", "/generate-images/", `LENS_ENDPOINT must be an absolute URL, got "/generate-images/"`},
		{"zero timeout", "LENS_TIMEOUT", "0s", "LENS_TIMEOUT must be positive, got 0s"},
		{"zero concurrency", "DECODE_CONCURRENCY", "0", "DECODE_CONCURRENCY must be between 1 and 64, got 0"},
		{"too much concurrency", "DECODE_CONCURRENCY", "65", "DECODE_CONCURRENCY must be between 1 and 64, got 65"},
		{"unknown format", "LOG_FORMAT", "xml", `LOG_FORMAT must be text or json, got "xml"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestLoad_Unparsable(t *testing.T) {
	t.Setenv("LENS_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load environment variables")
}
