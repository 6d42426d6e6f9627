// Package cliconfig loads the checklist CLI settings from a TOML file.
// Missing files are not an error; defaults apply.
package cliconfig

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseURL     = "http://127.0.0.1:8080/api"
	defaultStorageFile = "recent_formats.db"
)

// Settings is the on-disk CLI configuration.
type Settings struct {
	Backend BackendConfig `toml:"backend"`
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
}

// BackendConfig points the CLI at the back-office API.
type BackendConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

// StorageConfig locates the local cache database.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Backend: BackendConfig{BaseURL: defaultBaseURL},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads settings from path on top of the defaults. A missing or empty
// file yields the defaults.
func Load(path string) (Settings, error) {
	cfg := Default()
	if err := readTOML(path, &cfg); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// BaseURL returns the configured backend URL, falling back to the default.
func (s Settings) BaseURL() string {
	url := strings.TrimSpace(s.Backend.BaseURL)
	if url == "" {
		return defaultBaseURL
	}
	return strings.TrimRight(url, "/")
}

// Token returns the configured API token, possibly empty.
func (s Settings) Token() string {
	return strings.TrimSpace(s.Backend.Token)
}

// StoragePath resolves the cache database location. Relative paths land under
// the user config directory.
func (s Settings) StoragePath() (string, error) {
	path := strings.TrimSpace(s.Storage.Path)
	if path == "" {
		path = defaultStorageFile
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "checklist", path), nil
}

// LogLevel returns the configured level, defaulting to info.
func (s Settings) LogLevel() string {
	level := strings.TrimSpace(s.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("cliconfig: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
