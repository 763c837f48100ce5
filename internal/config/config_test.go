package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaultsAndFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: "9090"
database:
  uri: mongodb://localhost:27017
jwt:
  secret: test-secret
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	// defaults survive where the file is silent
	assert.Equal(t, "aau_lost_found", cfg.Database.Name)
	assert.Equal(t, "12h", cfg.JWT.TokenExpiration)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfigFile(t, `
database:
  uri: mongodb://localhost:27017
jwt:
  secret: test-secret
`)

	t.Setenv("MONGODB_DB_NAME", "campus_test")
	t.Setenv("SERVER_PORT", "3000")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "campus_test", cfg.Database.Name)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestLoadConfigMissingURI(t *testing.T) {
	path := writeConfigFile(t, `
jwt:
  secret: test-secret
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database URI is required")
}

func TestLoadConfigPlaceholderURI(t *testing.T) {
	path := writeConfigFile(t, `
database:
  uri: mongodb+srv://user:<password>@cluster0.mongodb.net
jwt:
  secret: test-secret
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "placeholder")
}

func TestLoadConfigMissingSecret(t *testing.T) {
	path := writeConfigFile(t, `
database:
  uri: mongodb://localhost:27017
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT secret")
}
