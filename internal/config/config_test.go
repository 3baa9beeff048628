package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) (configHome, dataHome string) {
	t.Helper()
	configHome, dataHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	for _, key := range []string{"BIRDHOUSE_DEFAULT_GAME", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "") // restores the old value on cleanup
		os.Unsetenv(key)
	}
	return configHome, dataHome
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	configHome, _ := isolate(t)

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	assert.FileExists(t, filepath.Join(configHome, "birdhouse", "config.toml"))
}

func TestSetDefaultGame(t *testing.T) {
	isolate(t)

	require.NoError(t, SetDefaultGame("ravenloft"))
	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ravenloft", config.DefaultGame)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	require.NoError(t, SetDefaultGame("ravenloft"))

	t.Setenv("BIRDHOUSE_DEFAULT_GAME", "ashardalon")
	t.Setenv("LOG_LEVEL", "debug")
	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ashardalon", config.DefaultGame)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, "text", config.LogFormat)

	// overrides stay out of the file
	require.NoError(t, SetDefaultGame("drizzt"))
	config, err = loadFile()
	require.NoError(t, err)
	assert.Equal(t, "drizzt", config.DefaultGame)
	assert.Equal(t, "warn", config.LogLevel)
}

func TestGameLibrary(t *testing.T) {
	_, dataHome := isolate(t)
	library := filepath.Join(dataHome, "birdhouse", "games")

	games, err := ListGames()
	require.NoError(t, err)
	assert.Empty(t, games)

	for _, name := range []string{"ravenloft", "ashardalon"} {
		dir := filepath.Join(library, name)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "game.toml"), nil, 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(library, "empty"), 0755))

	games, err = ListGames()
	require.NoError(t, err)
	assert.Equal(t, []string{"ashardalon", "ravenloft"}, games)

	path, err := GetGamePath("ravenloft")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(library, "ravenloft"), path)

	_, err = GetGamePath("nowhere")
	assert.Error(t, err)

	_, err = ResolveGame("")
	assert.Error(t, err)

	require.NoError(t, SetDefaultGame("ashardalon"))
	path, err = ResolveGame("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(library, "ashardalon"), path)
}
