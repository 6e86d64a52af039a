package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Backend names where the list is persisted.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// Config is the taskks.toml file.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// StorageConfig picks the backend and the directory its files live in.
type StorageConfig struct {
	Backend Backend `toml:"backend"`
	Dir     string  `toml:"dir"`
}

// UIConfig tunes list rendering.
type UIConfig struct {
	Theme         string `toml:"theme"` // classic | neon | mono
	Group         bool   `toml:"group"`
	ProgressWidth int    `toml:"progress_width"`
}

// LoggingConfig sets the log level and optional log file.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File is empty for stderr. The interactive view always logs to a file.
	File string `toml:"file"`
}

// DefaultDataDir is ~/.taskks, falling back to the working directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".taskks")
}

// DefaultPath is the config file inside the default data dir.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.toml")
}

// Default returns the built-in settings with storage under dataDir.
func Default(dataDir string) Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
			Dir:     dataDir,
		},
		UI: UIConfig{
			Theme:         "classic",
			ProgressWidth: 28,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load overlays the TOML file at path onto defaults. A missing or empty file
// yields the defaults unchanged.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Storage.Dir) == "" {
		return errors.New("storage.dir is required")
	}
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}
	switch strings.ToLower(strings.TrimSpace(c.UI.Theme)) {
	case "", "classic", "neon", "mono":
	default:
		return fmt.Errorf("invalid ui.theme: %q", c.UI.Theme)
	}
	if c.UI.ProgressWidth < 0 {
		return errors.New("ui.progress_width must be >= 0")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
