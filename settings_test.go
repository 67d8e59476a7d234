package evalcheck

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings_ValidWithEndpoint(t *testing.T) {
	s := DefaultSettings()
	s.Endpoint = "https://scoring.example.com"

	require.NoError(t, s.Validate())
	assert.Equal(t, 90*time.Second, s.HTTPTimeout)
	assert.Equal(t, 3, s.Retry.MaxAttempts)
	assert.True(t, s.Retry.UseJitter)
	assert.False(t, s.Cache.Enabled)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(s *Settings) {},
		},
		{
			name:    "missing endpoint",
			mutate:  func(s *Settings) { s.Endpoint = "" },
			wantErr: true,
		},
		{
			name:    "endpoint not a url",
			mutate:  func(s *Settings) { s.Endpoint = "not a url" },
			wantErr: true,
		},
		{
			name:    "zero retry attempts",
			mutate:  func(s *Settings) { s.Retry.MaxAttempts = 0 },
			wantErr: true,
		},
		{
			name:    "backoff multiplier below one",
			mutate:  func(s *Settings) { s.Retry.Multiplier = 0.5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			s.Endpoint = "https://scoring.example.com"
			tt.mutate(s)

			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	content := `
endpoint: https://scoring.example.com
http_timeout: 30s
retry:
  max_attempts: 5
  initial_interval: 1s
  max_interval: 20s
  multiplier: 1.5
cache:
  enabled: true
  addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("EVALCHECK_API_KEY", "sk-test")

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "https://scoring.example.com", s.Endpoint)
	assert.Equal(t, "sk-test", s.APIKey)
	assert.Equal(t, 30*time.Second, s.HTTPTimeout)
	assert.Equal(t, 5, s.Retry.MaxAttempts)
	assert.Equal(t, time.Second, s.Retry.InitialInterval)
	assert.Equal(t, 1.5, s.Retry.Multiplier)
	assert.True(t, s.Cache.Enabled)
	assert.Equal(t, "localhost:6379", s.Cache.Addr)
	// Fields the file omits keep their defaults.
	assert.Equal(t, time.Hour, s.Cache.TTL)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: [broken"), 0o600))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}
