package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	defaultRedirectPort = 8888
	defaultStaleDays    = 200
)

type Config struct {
	// ClientID is the Spotify application client id. The PKCE flow needs
	// no secret, so this is the only credential.
	ClientID string `koanf:"client_id"`

	// RedirectPort is the local port the OAuth callback server listens on.
	// It must match the redirect URI registered for the application.
	RedirectPort int `koanf:"redirect_port"`

	// StaleDays is the age in days at which a track counts as fully stale.
	StaleDays int `koanf:"stale_days"`
}

func Load() (*Config, error) {
	return loadFrom(configPaths())
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RedirectPort <= 0 || c.RedirectPort > 65535 {
		c.RedirectPort = defaultRedirectPort
	}
	if c.StaleDays <= 0 {
		c.StaleDays = defaultStaleDays
	}
}

func configPaths() []string {
	paths := []string{}

	// 1. ~/.config/mixcrew/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mixcrew", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

// HasClientID returns true when a Spotify client id is configured.
func (c *Config) HasClientID() bool {
	return c.ClientID != ""
}

// RedirectURL is the OAuth redirect URI for the configured port.
func (c *Config) RedirectURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d/callback", c.RedirectPort)
}

// StaleHorizon converts StaleDays to a duration.
func (c *Config) StaleHorizon() time.Duration {
	return time.Duration(c.StaleDays) * 24 * time.Hour
}
