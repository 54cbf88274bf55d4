package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "compass", cfg.DynamoDBTable)
	assert.Equal(t, "CreatedAtIndex", cfg.CreatedAtIndex)
	assert.Equal(t, 60*time.Second, cfg.GenerationTimeout)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadConfig_ProductionRequiresSecrets(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	t.Setenv("JWT_SECRET", "test-secret")
	_, err = LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	t.Setenv("OPENAI_API_KEY", "sk-test")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_InvalidTimeout(t *testing.T) {
	t.Setenv("GENERATION_TIMEOUT_SECONDS", "0")
	_, err := LoadConfig()
	require.Error(t, err)
}
