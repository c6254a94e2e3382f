// Package config handles the XDG configuration directory, the config file,
// and credential file paths.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "gtodo"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.toml"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// LogFile is the default log filename used by the interactive view.
	LogFile = "gtodo.log"
)

// Backend names accepted in the config file and the --backend flag.
const (
	BackendGoogleTasks = "googletasks"
	BackendREST        = "rest"
	BackendMemory      = "memory"
)

// DefaultListID is the Google Tasks list used when none is configured.
const DefaultListID = "@default"

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `toml:"-"`

	// Debug enables debug logging.
	Debug bool `toml:"-"`

	// Quiet suppresses informational output.
	Quiet bool `toml:"-"`

	// Backend selects the remote task service.
	Backend string `toml:"backend"`

	// List is the Google Tasks list ID the googletasks backend works on.
	List string `toml:"list"`

	REST RESTConfig `toml:"rest"`
	Log  LogConfig  `toml:"log"`
}

// RESTConfig configures the rest backend.
type RESTConfig struct {
	BaseURL string `toml:"base_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"`
}

// Option overrides a setting after the file and environment are read.
type Option func(*Config)

// WithBackend overrides the backend name. An empty name keeps the loaded one.
func WithBackend(name string) Option {
	return func(c *Config) {
		if name != "" {
			c.Backend = name
		}
	}
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/gtodo or $HOME/.config/gtodo.
// Settings are read from config.toml in that directory when it exists,
// then overridden from the environment, then by opts. Validation runs last.
func New(configDir string, opts ...Option) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := &Config{Dir: dir}
	setDefaults(cfg)

	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	loadFromEnv(cfg)
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
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

func setDefaults(cfg *Config) {
	cfg.Backend = BackendGoogleTasks
	cfg.List = DefaultListID
	cfg.REST.BaseURL = "http://localhost:3000"
	cfg.Log.Level = "warn"
	cfg.Log.Format = "text"
}

func (c *Config) loadFile() error {
	path := c.ConfigPath()
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("GTODO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("GTODO_REST_URL"); v != "" {
		cfg.REST.BaseURL = v
	}
	if v := os.Getenv("GTODO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// Validate checks the backend name and the settings it depends on.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case BackendGoogleTasks:
		if strings.TrimSpace(c.List) == "" {
			c.List = DefaultListID
		}
	case BackendREST:
		if strings.TrimSpace(c.REST.BaseURL) == "" {
			return fmt.Errorf("rest backend requires rest.base_url")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend: %s", c.Backend)
	}
	return nil
}

// ConfigPath returns the path to the settings file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// LogPath returns the log file used by the interactive view.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.Dir, LogFile)
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

// NeedsAuth reports whether the selected backend needs OAuth credentials.
func (c *Config) NeedsAuth() bool {
	return c.Backend == BackendGoogleTasks
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
