// Package config loads client configuration. Precedence, lowest to highest:
// built-in defaults, the YAML config file, then GATHOR_* environment
// variables. A .env file in the working directory is folded into the
// environment first.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// APIBaseURL is the root of the platform REST API.
	APIBaseURL string `yaml:"apiBaseUrl"`
	// RealtimeURL is the chat bus endpoint.
	RealtimeURL string `yaml:"realtimeUrl"`
	// RealtimeToken authenticates against the chat bus. Optional.
	RealtimeToken string `yaml:"realtimeToken"`
	// StateDir is where the session envelope is persisted.
	StateDir string `yaml:"stateDir"`
	// SealSecret, when set, encrypts the session envelope at rest.
	SealSecret string `yaml:"sealSecret"`
	// HomeRoute is where a successful sign-in lands.
	HomeRoute string `yaml:"homeRoute"`
	// LoginRoute is where guarded routes and logout redirect to.
	LoginRoute string `yaml:"loginRoute"`
}

// Default returns the built-in configuration. StateDir falls back to a
// relative directory when the user config dir cannot be resolved.
func Default() Config {
	stateDir := ".gathorapp"
	if dir, err := os.UserConfigDir(); err == nil {
		stateDir = filepath.Join(dir, "gathorapp")
	}
	return Config{
		APIBaseURL:  "http://localhost:8080",
		RealtimeURL: "nats://localhost:4222",
		StateDir:    stateDir,
		HomeRoute:   "/events",
		LoginRoute:  "/auth/login",
	}
}

// Load assembles the effective configuration. path may be empty, in which
// case the default config file location is tried and silently skipped when
// absent; an explicit path that cannot be read is an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.StateDir, "config.yaml")
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case explicit:
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setFromEnv(&cfg.APIBaseURL, "GATHOR_API_URL")
	setFromEnv(&cfg.RealtimeURL, "GATHOR_REALTIME_URL")
	setFromEnv(&cfg.RealtimeToken, "GATHOR_REALTIME_TOKEN")
	setFromEnv(&cfg.StateDir, "GATHOR_STATE_DIR")
	setFromEnv(&cfg.SealSecret, "GATHOR_SEAL_SECRET")
	setFromEnv(&cfg.HomeRoute, "GATHOR_HOME_ROUTE")
	setFromEnv(&cfg.LoginRoute, "GATHOR_LOGIN_ROUTE")
}

func setFromEnv(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		*target = value
	}
}
