package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/AdamMil/BirdhouseManor/internal/document"
)

// Config represents the application configuration
type Config struct {
	DefaultGame string `toml:"default_game" env:"BIRDHOUSE_DEFAULT_GAME"`
	LogLevel    string `toml:"log_level" env:"LOG_LEVEL"`
	LogFormat   string `toml:"log_format" env:"LOG_FORMAT"`
}

// Default returns the configuration written on first use.
func Default() *Config {
	return &Config{
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetGameLibraryPath returns the directory holding installed games, one per subdirectory.
func GetGameLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "birdhouse", "games")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "birdhouse", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if it doesn't exist, then
// applies environment overrides.
func LoadConfig() (*Config, error) {
	config, err := loadFile()
	if err != nil {
		return nil, err
	}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("error reading environment: %w", err)
	}
	return config, nil
}

func loadFile() (*Config, error) {
	configPath := GetConfigFilePath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := Default()
		if err := writeConfig(config); err != nil {
			return nil, err
		}
		return config, nil
	}

	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// GetGamePath returns the path to a game, either in the game library or a path on disk
func GetGamePath(name string) (string, error) {
	libraryPath := filepath.Join(GetGameLibraryPath(), name)
	if _, err := os.Stat(libraryPath); err == nil {
		return libraryPath, nil
	}

	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	return "", fmt.Errorf("game not found: %s", name)
}

// ResolveGame picks the game to work on: the argument if given, otherwise the configured
// default.
func ResolveGame(arg string) (string, error) {
	if arg == "" {
		config, err := LoadConfig()
		if err != nil {
			return "", err
		}
		if config.DefaultGame == "" {
			return "", fmt.Errorf("no game given and no default game configured")
		}
		arg = config.DefaultGame
	}
	return GetGamePath(arg)
}

// ListGames returns the names of the library's subdirectories that hold a game file, sorted.
func ListGames() ([]string, error) {
	entries, err := os.ReadDir(GetGameLibraryPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading game library: %w", err)
	}

	var games []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := document.FindGameFile(filepath.Join(GetGameLibraryPath(), entry.Name())); err == nil {
			games = append(games, entry.Name())
		}
	}
	sort.Strings(games)
	return games, nil
}

// SetDefaultGame sets the default game in the config file
func SetDefaultGame(name string) error {
	// env overrides must not leak into the file
	config, err := loadFile()
	if err != nil {
		return err
	}
	config.DefaultGame = name
	return writeConfig(config)
}
