// Package config handles the configuration directory, credential paths and
// the settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	// AppName is the application directory name.
	AppName = "taskbox"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// SettingsName is the settings file name without extension.
	SettingsName = "config"

	// EnvPrefix prefixes environment overrides, e.g. TASKBOX_SOURCE.
	EnvPrefix = "TASKBOX"

	// TasksScope is the OAuth scope requested for Google Tasks.
	TasksScope = "https://www.googleapis.com/auth/tasks.readonly"
)

// Defaults for settings.
const (
	DefaultSource = "fixture"
	DefaultStory  = "Default"
)

// ErrInvalidSettings is returned when the settings file cannot be parsed.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings selects the data source.
type Settings struct {
	// Source is one of "fixture", "file" or "google".
	Source string

	// Story names the fixture story for the fixture source.
	Story string

	// File is the task file path for the file source.
	File string

	// GoogleList names the Google Tasks list. Empty selects the default list.
	GoogleList string
}

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings selects the data source.
	Settings Settings

	// Log receives debug logs. Nil means logging is disabled.
	Log *zap.Logger
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskbox or $HOME/.config/taskbox.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:      dir,
		Settings: Settings{Source: DefaultSource, Story: DefaultStory},
	}, nil
}

// Load creates a Config and reads config.yaml from its directory.
// A missing settings file is not an error.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName(SettingsName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cfg.Dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("source", DefaultSource)
	v.SetDefault("story", DefaultStory)
	v.SetDefault("file", "")
	v.SetDefault("google.list", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
		}
	}

	cfg.Settings = Settings{
		Source:     strings.ToLower(strings.TrimSpace(v.GetString("source"))),
		Story:      v.GetString("story"),
		File:       v.GetString("file"),
		GoogleList: v.GetString("google.list"),
	}
	return cfg, nil
}

// Logger returns the configured logger or a no-op logger.
func (c *Config) Logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
