package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("STORAGE_TYPE", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("API_PORT", "")
	t.Setenv("API_HOST", "")
	t.Setenv("API_ENDPOINT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.StorageType)
	assert.Equal(t, "./pr_comments.db", cfg.SQLitePath)
	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, "localhost", cfg.APIHost)
	assert.Equal(t, "http://localhost:8080", cfg.APIEndpoint)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("STORAGE_TYPE", "postgres")
	t.Setenv("POSTGRES_URL", "postgres://localhost/prc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "ghp_test", cfg.GitHubToken)
	assert.Equal(t, "postgres", cfg.StorageType)
	assert.Equal(t, "postgres://localhost/prc", cfg.PostgresURL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{GitHubToken: "tok", StorageType: "sqlite"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{StorageType: "sqlite"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GITHUB_TOKEN")

	cfg = &Config{GitHubToken: "tok", StorageType: "redis"}
	require.Error(t, cfg.Validate())

	cfg = &Config{GitHubToken: "tok", StorageType: "postgres"}
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_URL")

	cfg = &Config{GitHubToken: "tok", StorageType: "postgres", PostgresURL: "postgres://x"}
	assert.NoError(t, cfg.Validate())
}
