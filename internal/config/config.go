package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the hosted workout API.
const DefaultBaseURL = "https://workout-tracker-rve4.onrender.com"

type Config struct {
	API        APIConfig        `yaml:"api"`
	UI         UIConfig         `yaml:"ui"`
	Log        LogConfig        `yaml:"log"`
	Tailscale  TailscaleConfig  `yaml:"tailscale"`
	FakeServer FakeServerConfig `yaml:"fake_server"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration `yaml:"timeout"`
}

type UIConfig struct {
	StatusDuration time.Duration `yaml:"status_duration"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// TailscaleConfig routes API traffic through an embedded tsnet node, for APIs
// only reachable on a tailnet.
type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type FakeServerConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		API:        APIConfig{BaseURL: DefaultBaseURL},
		UI:         UIConfig{StatusDuration: 3 * time.Second},
		Log:        LogConfig{Level: "info"},
		Tailscale:  TailscaleConfig{Hostname: "workoutlog"},
		FakeServer: FakeServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix WORKOUTLOG_:
//
//	WORKOUTLOG_API_URL, WORKOUTLOG_API_TIMEOUT,
//	WORKOUTLOG_STATUS_DURATION, WORKOUTLOG_LOG_LEVEL,
//	WORKOUTLOG_TAILSCALE_ENABLED, WORKOUTLOG_TAILSCALE_HOSTNAME,
//	WORKOUTLOG_TAILSCALE_STATE_DIR, WORKOUTLOG_FAKE_SERVER_ADDR
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WORKOUTLOG_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("WORKOUTLOG_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.API.Timeout = d
		}
	}
	if v := os.Getenv("WORKOUTLOG_STATUS_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.UI.StatusDuration = d
		}
	}
	if v := os.Getenv("WORKOUTLOG_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WORKOUTLOG_TAILSCALE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("WORKOUTLOG_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("WORKOUTLOG_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("WORKOUTLOG_FAKE_SERVER_ADDR"); v != "" {
		cfg.FakeServer.Addr = v
	}
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.base_url %q must be an absolute http(s) URL", c.API.BaseURL)
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.Timeout < 0 {
		return errors.New("api.timeout must not be negative")
	}
	if c.UI.StatusDuration <= 0 {
		return errors.New("ui.status_duration must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return errors.New("tailscale.hostname is required when tailscale is enabled")
	}
	return nil
}

// LogLevel parses log.level ("debug", "info", "warn", "error").
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", c.Log.Level, err)
	}
	return level, nil
}
