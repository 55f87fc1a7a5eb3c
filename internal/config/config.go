// Package config loads the client configuration from the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// Config is the environment-driven client configuration.
type Config struct {
	// APIBaseURL is the root of the remote user-account API.
	APIBaseURL string `env:"API_URL,required"`
	// SiteName labels the client in banners and window titles.
	SiteName string `env:"SITENAME" envDefault:"Account"`
	// RecaptchaSiteKey identifies the CAPTCHA widget; the solved
	// challenge token travels with every public form submission.
	RecaptchaSiteKey string `env:"RECAPTCHA_SITE_KEY"`
	// DataDir is where the credential store keeps its file. Defaults to
	// a per-user config directory.
	DataDir string `env:"DATA_DIR"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "[config.Load] parse env")
	}
	if cfg.DataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, errors.Wrap(err, "[config.Load] user config dir")
		}
		cfg.DataDir = filepath.Join(dir, "go-account-client")
	}
	return cfg, nil
}
