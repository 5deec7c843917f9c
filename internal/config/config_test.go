package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvRequiresCredentials(t *testing.T) {
	// t.Setenv registers restoration; the variables must be absent, not
	// merely empty, for envconfig's required check to fire.
	t.Setenv("TELEGRAM_API_TOKEN", "x")
	t.Setenv("COMPLETION_API_KEY", "x")
	os.Unsetenv("TELEGRAM_API_TOKEN")
	os.Unsetenv("COMPLETION_API_KEY")

	var cfg Config
	_, err := cfg.LoadEnv()
	assert.Error(t, err)
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "tg-token")
	t.Setenv("COMPLETION_API_KEY", "api-key")

	var cfg Config
	loaded, err := cfg.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.proxyapi.ru/openai/v1", loaded.BaseURL)
	assert.Equal(t, "gpt-3.5-turbo", loaded.Model)
	assert.Equal(t, 30*time.Second, loaded.GenerationTimeout)
	assert.Equal(t, 24*time.Hour, loaded.SessionTTL)
	assert.Equal(t, time.Hour, loaded.SessionSweepInterval)
}

func TestLoadFileUsesDefaultsWhenMissing(t *testing.T) {
	cfg := Config{ConfigFile: filepath.Join(t.TempDir(), "nope.toml")}

	require.NoError(t, cfg.LoadFile())
	assert.Equal(t, DefaultPrompts, cfg.Prompts)
}

func TestLoadFileOverridesPrompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[prompts]\nsystem = \"Ты строгий ассистент.\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := Config{ConfigFile: path}
	require.NoError(t, cfg.LoadFile())

	assert.Equal(t, "Ты строгий ассистент.", cfg.Prompts.System)
	// Prompts absent from the file keep their defaults.
	assert.Equal(t, DefaultPrompts.GoodDay, cfg.Prompts.GoodDay)
}
