// Package config provides configuration management for ethos-login.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/videvian/log-in-with-ethos/internal/fileutil"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Home      string          `yaml:"home"`
	Ethos     EthosConfig     `yaml:"ethos"`
	Session   SessionConfig   `yaml:"session"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// EthosConfig defines how the Ethos API is reached.
type EthosConfig struct {
	APIURL         string  `yaml:"api_url"`
	ClientID       string  `yaml:"client_id"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RateLimit      float64 `yaml:"rate_limit"`
	Burst          int     `yaml:"burst"`
}

// SessionConfig defines identity provider session settings.
type SessionConfig struct {
	AppID      string `yaml:"app_id"`
	File       string `yaml:"file"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// TelemetryConfig defines OpenTelemetry trace export settings.
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ethoserr.WithDetails(ethoserr.ErrConfigNotFound, map[string]string{"path": path})
		}
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ethoserr.WithCause(ethoserr.ErrConfigInvalid, err)
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomicDir(path, data, 0o600, 0o750)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	if err := validateURL("ethos.api_url", c.Ethos.APIURL); err != nil {
		return err
	}
	if strings.TrimSpace(c.Ethos.ClientID) == "" {
		return invalid("ethos.client_id", "must not be empty")
	}
	if c.Ethos.TimeoutSeconds <= 0 {
		return invalid("ethos.timeout_seconds", "must be positive")
	}
	if c.Ethos.RateLimit <= 0 || c.Ethos.Burst <= 0 {
		return invalid("ethos.rate_limit", "rate and burst must be positive")
	}
	if c.Session.TTLMinutes < MinSessionTTLMinutes || c.Session.TTLMinutes > MaxSessionTTLMinutes {
		return invalid("session.ttl_minutes",
			fmt.Sprintf("must be between %d and %d", MinSessionTTLMinutes, MaxSessionTTLMinutes))
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint != "" {
		if err := validateURL("telemetry.endpoint", c.Telemetry.Endpoint); err != nil {
			return err
		}
	}
	return nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return invalid(key, "must be an absolute http(s) URL")
	}
	return nil
}

func invalid(key, reason string) error {
	return ethoserr.WithDetails(ethoserr.ErrConfigInvalid, map[string]string{
		"key":    key,
		"reason": reason,
	})
}

// GetHome returns the ethos-login home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetAPIURL returns the Ethos API base URL.
func (c *Config) GetAPIURL() string {
	return c.Ethos.APIURL
}

// GetClientID returns the X-Ethos-Client identifier.
func (c *Config) GetClientID() string {
	return c.Ethos.ClientID
}

// GetHTTPTimeout returns the Ethos API request timeout.
func (c *Config) GetHTTPTimeout() time.Duration {
	return time.Duration(c.Ethos.TimeoutSeconds) * time.Second
}

// GetSessionFile returns the session file path with the home directory expanded.
func (c *Config) GetSessionFile() string {
	if c.Session.File == "" {
		return filepath.Join(ExpandHome(c.Home), "session.json")
	}
	return ExpandHome(c.Session.File)
}

// GetSessionTTL returns how long an imported session stays valid.
func (c *Config) GetSessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// GetAppID returns the identity provider application ID.
func (c *Config) GetAppID() string {
	return c.Session.AppID
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the log file path, defaulting to ethos-login.log in
// the home directory.
func (c *Config) GetLoggingFile() string {
	if c.Logging.File == "" {
		return filepath.Join(ExpandHome(c.Home), "ethos-login.log")
	}
	return ExpandHome(c.Logging.File)
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// DefaultHome returns the default ethos-login home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ethos-login"
	}
	return filepath.Join(home, ".ethos-login")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
