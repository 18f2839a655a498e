package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `# dashboard service configuration
database:
  host: "db.internal"
  port: 5433
  user: dashboard
  password: 'secret'
  database: transit_admin

rabbitmq:
  host: mq.internal
  user: dashboard
  password: mqsecret

platform:
  base_url: "http://platform.internal:8080"

geocoding:
  base_url: "https://geo.example.com/v5"
  token: geo-token

dashboard:
  port: 3004

jwt:
  secret_key: "super-secret"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "transit_admin", cfg.Database.Name)

	assert.Equal(t, "http://platform.internal:8080", cfg.Platform.BaseURL)
	assert.Equal(t, "https://geo.example.com/v5", cfg.Geocoding.BaseURL)
	assert.Equal(t, "geo-token", cfg.Geocoding.Token)
	assert.Equal(t, "super-secret", cfg.JWT.SecretKey)

	// defaults applied for omitted values
	assert.Equal(t, 5672, cfg.RabbitMQ.Port)
	assert.Equal(t, 10, cfg.Platform.TimeoutSeconds)
	assert.Equal(t, 5, cfg.Geocoding.TimeoutSeconds)
	assert.Equal(t, 15, cfg.Dashboard.LiveRefreshSeconds)
}

func TestLoadFromFileEnvOverrides(t *testing.T) {
	t.Setenv("TRANSIT_JWT_SECRET", "env-secret")
	t.Setenv("TRANSIT_GEOCODING_TOKEN", "env-token")

	cfg, err := LoadFromFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.SecretKey)
	assert.Equal(t, "env-token", cfg.Geocoding.Token)
}

func TestLoadFromFileMissingRequired(t *testing.T) {
	minimal := `database:
  user: dashboard
`
	_, err := LoadFromFile(writeConfig(t, minimal))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database.password is required")
	assert.Contains(t, err.Error(), "platform.base_url is required")
	assert.Contains(t, err.Error(), "jwt.secret_key is required")
}

func TestLoadFromFileRejectsUnknownKeys(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "database:\n  hostname: nope\n"))
	assert.Error(t, err)

	_, err = LoadFromFile(writeConfig(t, "mystery:\n  key: value\n"))
	assert.Error(t, err)
}

func TestResolveScalar(t *testing.T) {
	assert.Equal(t, "localhost", resolveScalar(`"localhost"`))
	assert.Equal(t, "password123", resolveScalar(`'password123'`))
	assert.Equal(t, "plain", resolveScalar("  plain  "))
}
