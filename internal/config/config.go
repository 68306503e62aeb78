// Package config manages jargon client configuration
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/jargon-id/jargon/internal/errors"
	"github.com/jargon-id/jargon/internal/session"
)

// DefaultAPIURL points at the hosted backend; override per config file or
// JARGON_API_URL.
const DefaultAPIURL = "https://api.jargon.id/api/auth"

// Config represents the jargon client configuration
type Config struct {
	// APIURL is the base URL of the backend API.
	APIURL string `json:"api_url"`

	// Session is the persisted bearer credential, nil when logged out.
	Session *session.Session `json:"session,omitempty"`

	// Paths (not serialized)
	ConfigDir string `json:"-"`
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".jargon")
}

// Load loads configuration from the config directory
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	configPath := filepath.Join(configDir, "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotInitialized
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ConfigDir = configDir
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if env := os.Getenv("JARGON_API_URL"); env != "" {
		cfg.APIURL = env
	}
	return &cfg, nil
}

// LoadOrDefault returns the stored config, or a fresh default one when
// jargon has not been initialized yet.
func LoadOrDefault(configDir string) (*Config, error) {
	cfg, err := Load(configDir)
	if err == apperrors.ErrNotInitialized {
		if configDir == "" {
			configDir = DefaultConfigDir()
		}
		cfg = &Config{APIURL: DefaultAPIURL, ConfigDir: configDir}
		if env := os.Getenv("JARGON_API_URL"); env != "" {
			cfg.APIURL = env
		}
		return cfg, nil
	}
	return cfg, err
}

// Exists checks if a config exists
func Exists(configDir string) bool {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	configPath := filepath.Join(configDir, "config.json")
	_, err := os.Stat(configPath)
	return err == nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	if c.ConfigDir == "" {
		c.ConfigDir = DefaultConfigDir()
	}

	if err := os.MkdirAll(c.ConfigDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	configPath := filepath.Join(c.ConfigDir, "config.json")
	return os.WriteFile(configPath, data, 0600)
}

// --- Session lifecycle ---

// SetSession stores a freshly acquired credential.
func (c *Config) SetSession(s session.Session) error {
	c.Session = &s
	return c.Save()
}

// ClearSession drops the stored credential (logout or expiry).
func (c *Config) ClearSession() error {
	c.Session = nil
	return c.Save()
}
