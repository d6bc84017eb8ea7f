package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "DUEDATE_CONFIG"

// Config holds user settings read from config.yaml.
type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file,omitempty"`

	// Seed is a task file loaded into the store when a session starts.
	Seed string `yaml:"seed,omitempty"`

	// StrictDeadlines makes Add reject deadlines the codec cannot decode.
	StrictDeadlines bool `yaml:"strict_deadlines"`

	// path is where the config was loaded from; relative Seed and LogFile
	// values resolve against its directory.
	path string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{LogLevel: "info"}
}

// Path resolves the config file location: explicit flag value first, then
// $DUEDATE_CONFIG, then DefaultDir()/config.yaml.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Load reads the config at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// SeedPath returns the seed file path, resolved relative to the config file.
func (c *Config) SeedPath() string {
	return c.resolve(c.Seed)
}

// LogPath returns the log file path, defaulting to duedate.log next to the
// config file.
func (c *Config) LogPath() string {
	if c.LogFile == "" {
		return filepath.Join(c.dir(), appName+".log")
	}
	return c.resolve(c.LogFile)
}

// Level returns the configured slog level.
func (c *Config) Level() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if strings.HasPrefix(p, "~"+string(filepath.Separator)) || p == "~" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, p[1:])
	}
	return filepath.Join(c.dir(), p)
}

func (c *Config) dir() string {
	if c.path == "" {
		return DefaultDir()
	}
	return filepath.Dir(c.path)
}

// ParseLevel maps debug|info|warn|error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
}
