// Package cliconfig loads the bvc profile: server coordinates plus the
// OAuth consumer/token pairs. A credentials.local.yaml next to the profile
// overrides its oauth section, so token material can stay out of the main
// file.
package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerURL      string
	APIBase        string
	ConsumerKey    string
	ConsumerSecret string
	TokenKey       string
	TokenSecret    string
}

// CredentialsFile is merged over the profile when present.
const CredentialsFile = "credentials.local.yaml"

func Default() Config {
	return Config{APIBase: "/api"}
}

// DefaultPath is the profile location used when --profile is not given.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bvc", "config.yaml"), nil
}

type yamlOAuth struct {
	ConsumerKey    string `yaml:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret"`
	TokenKey       string `yaml:"token_key"`
	TokenSecret    string `yaml:"token_secret"`
}

type yamlConfig struct {
	BVC struct {
		ServerURL string    `yaml:"server_url"`
		APIBase   string    `yaml:"api_base"`
		OAuth     yamlOAuth `yaml:"oauth"`
	} `yaml:"bvc"`
}

// Load reads the profile at path and applies parsed values on top of
// defaults, then merges the optional local credentials file beside it.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read profile %s: %w", path, err)
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, fmt.Errorf("parse profile %s: %w", path, err)
	}

	if y.BVC.ServerURL != "" {
		cfg.ServerURL = y.BVC.ServerURL
	}
	if y.BVC.APIBase != "" {
		cfg.APIBase = y.BVC.APIBase
	}
	applyOAuth(&cfg, y.BVC.OAuth)

	creds, err := loadCredentials(filepath.Join(filepath.Dir(path), CredentialsFile))
	if err != nil {
		return cfg, err
	}
	applyOAuth(&cfg, creds)

	if cfg.ServerURL == "" {
		return cfg, fmt.Errorf("profile %s: server_url is required", path)
	}
	return cfg, nil
}

func applyOAuth(cfg *Config, o yamlOAuth) {
	if o.ConsumerKey != "" {
		cfg.ConsumerKey = o.ConsumerKey
	}
	if o.ConsumerSecret != "" {
		cfg.ConsumerSecret = o.ConsumerSecret
	}
	if o.TokenKey != "" {
		cfg.TokenKey = o.TokenKey
	}
	if o.TokenSecret != "" {
		cfg.TokenSecret = o.TokenSecret
	}
}

// loadCredentials reads the optional local credentials file.
func loadCredentials(path string) (yamlOAuth, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return yamlOAuth{}, nil
		}
		return yamlOAuth{}, fmt.Errorf("read credentials %s: %w", path, err)
	}

	var y struct {
		OAuth yamlOAuth `yaml:"oauth"`
	}
	if err := yaml.Unmarshal(b, &y); err != nil {
		return yamlOAuth{}, fmt.Errorf("parse credentials %s: %w", path, err)
	}
	return y.OAuth, nil
}
