package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingBaseURL = errors.New("API_BASE_URL is required")

type Config struct {
	API     APIConfig
	Log     LogConfig
	UI      UIConfig
	MockAPI MockAPIConfig
}

type APIConfig struct {
	BaseURL string
	// Timeout of zero leaves requests bounded only by the transport defaults.
	Timeout time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

type UIConfig struct {
	SplashDuration time.Duration
}

type MockAPIConfig struct {
	Port      int
	UploadDir string
	// SeedFile, when set, is a YAML file of products to start with.
	SeedFile string
}

// Load reads the configuration from the environment and, when path is not
// empty, from that config file. Environment values win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("API_BASE_URL", "")
	v.SetDefault("API_TIMEOUT", "0s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "reytech.log")
	v.SetDefault("SPLASH_DURATION", "3s")
	v.SetDefault("MOCKAPI_PORT", 3000)
	v.SetDefault("MOCKAPI_UPLOAD_DIR", "uploads")
	v.SetDefault("MOCKAPI_SEED_FILE", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	timeout, err := time.ParseDuration(v.GetString("API_TIMEOUT"))
	if err != nil {
		return nil, fmt.Errorf("parsing API_TIMEOUT: %w", err)
	}

	splash, err := time.ParseDuration(v.GetString("SPLASH_DURATION"))
	if err != nil {
		return nil, fmt.Errorf("parsing SPLASH_DURATION: %w", err)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			Timeout: timeout,
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
		UI: UIConfig{
			SplashDuration: splash,
		},
		MockAPI: MockAPIConfig{
			Port:      v.GetInt("MOCKAPI_PORT"),
			UploadDir: v.GetString("MOCKAPI_UPLOAD_DIR"),
			SeedFile:  v.GetString("MOCKAPI_SEED_FILE"),
		},
	}

	return cfg, nil
}

// Validate checks the settings the client cannot run without. There is no
// fallback host: an unset base URL is an error.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing API_BASE_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API_BASE_URL must be an http or https URL, got %q", c.API.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("API_BASE_URL has no host: %q", c.API.BaseURL)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("API_TIMEOUT must not be negative")
	}

	return nil
}
