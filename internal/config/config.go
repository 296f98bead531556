// Package config loads server configuration from defaults, an optional YAML
// file, and TODO_-prefixed environment variables, in that order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/yusuke-w/todo-mcp/internal/errors"
)

const (
	// DefaultConfigDir is the application data directory under the user's home.
	DefaultConfigDir = ".todo-mcp"

	// DefaultConfigFile is the config file name inside DefaultConfigDir.
	DefaultConfigFile = "config.yaml"

	// DefaultStorageFile is the todo file name inside DefaultConfigDir.
	DefaultStorageFile = "todos.json"

	envPrefix = "TODO_"
)

// Config holds the resolved server configuration.
type Config struct {
	Storage StorageConfig `koanf:"storage"`
	Log     LogConfig     `koanf:"log"`
	API     APIConfig     `koanf:"api"`
}

// StorageConfig configures the todo store.
type StorageConfig struct {
	// Path is the todo file location. Overridable via TODO_STORAGE_PATH.
	Path string `koanf:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Overridable via TODO_LOG_LEVEL.
	Level string `koanf:"level"`
}

// APIConfig holds the access credential forwarded to the transport layer.
// The store and tool layers never read it.
type APIConfig struct {
	Key string `koanf:"key"`
}

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage": map[string]interface{}{
			"path": "~/" + DefaultConfigDir + "/" + DefaultStorageFile,
		},
		"log": map[string]interface{}{
			"level": "info",
		},
		"api": map[string]interface{}{
			"key": "",
		},
	}
}

// Load builds the configuration from defaults, the config file at configPath
// (or ~/.todo-mcp/config.yaml when empty), and environment variables.
// A missing config file is not an error; an unreadable one is.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(DefaultConfig(), "."), nil); err != nil {
		return nil, apperrors.Wrap(err, "failed to load defaults")
	}

	if configPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configPath = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
		}
	}
	configPath = expandPath(configPath)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, apperrors.Wrap(err, "failed to load config file %s", configPath)
			}
		}
	}

	// TODO_STORAGE_PATH -> storage.path, TODO_LOG_LEVEL -> log.level, ...
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, "failed to load environment variables")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal config")
	}

	cfg.Storage.Path = expandPath(cfg.Storage.Path)

	return &cfg, nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
