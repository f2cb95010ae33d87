package orbit_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orbit "github.com/autonyze/orbit-go"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orbit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
base_url: https://api.orbit.example
session_file: /tmp/orbit/session.json
timeout: 30s
user_agent: orbit-cli-test
`)

	cfg, err := orbit.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.orbit.example", cfg.BaseURL)
	assert.Equal(t, "/tmp/orbit/session.json", cfg.SessionFile)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "orbit-cli-test", cfg.UserAgent)
}

func TestLoadConfigFileExpandsEnvironment(t *testing.T) {
	t.Setenv("ORBIT_TEST_HOST", "api.orbit.example")
	path := writeConfig(t, "base_url: https://${ORBIT_TEST_HOST}\n")

	cfg, err := orbit.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.orbit.example", cfg.BaseURL)
}

func TestLoadConfigFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing base_url", "session_file: /tmp/session.json\n"},
		{"invalid base_url", "base_url: not-a-url\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orbit.LoadConfigFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestNewClientFromConfig(t *testing.T) {
	client, err := orbit.NewClientFromConfig(&orbit.Config{
		BaseURL:     "https://api.orbit.example",
		SessionFile: filepath.Join(t.TempDir(), "session.json"),
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	assert.False(t, client.IsAuthenticated())
}
