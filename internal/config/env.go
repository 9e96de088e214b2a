package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Environment variable names.
const (
	EnvHome         = "ETHOS_LOGIN_HOME"
	EnvAppID        = "ETHOS_LOGIN_PRIVY_APP_ID"
	EnvAPIURL       = "ETHOS_LOGIN_API_URL"
	EnvClientID     = "ETHOS_LOGIN_CLIENT_ID"
	EnvOutputFormat = "ETHOS_LOGIN_OUTPUT_FORMAT"
	EnvVerbose      = "ETHOS_LOGIN_VERBOSE"
	EnvLogLevel     = "ETHOS_LOGIN_LOG_LEVEL"
	EnvSessionTTL   = "ETHOS_LOGIN_SESSION_TTL"
	EnvOTelEndpoint = "ETHOS_LOGIN_OTEL_ENDPOINT"
	EnvOTelEnabled  = "ETHOS_LOGIN_OTEL_ENABLED"
	EnvNoColor      = "NO_COLOR"
)

// envOverrides holds raw environment values; nil means unset.
type envOverrides struct {
	Home         *string `env:"ETHOS_LOGIN_HOME"`
	AppID        *string `env:"ETHOS_LOGIN_PRIVY_APP_ID"`
	APIURL       *string `env:"ETHOS_LOGIN_API_URL"`
	ClientID     *string `env:"ETHOS_LOGIN_CLIENT_ID"`
	OutputFormat *string `env:"ETHOS_LOGIN_OUTPUT_FORMAT"`
	Verbose      *bool   `env:"ETHOS_LOGIN_VERBOSE"`
	LogLevel     *string `env:"ETHOS_LOGIN_LOG_LEVEL"`
	SessionTTL   *int    `env:"ETHOS_LOGIN_SESSION_TTL"`
	OTelEndpoint *string `env:"ETHOS_LOGIN_OTEL_ENDPOINT"`
	OTelEnabled  *bool   `env:"ETHOS_LOGIN_OTEL_ENABLED"`
}

// ApplyEnvironment applies environment variable overrides to the configuration.
//
//nolint:gocognit,gocyclo // Environment variable overrides require sequential checks
func ApplyEnvironment(cfg *Config) error {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if raw.Home != nil && *raw.Home != "" {
		cfg.Home = *raw.Home
	}

	if raw.AppID != nil {
		cfg.Session.AppID = strings.TrimSpace(*raw.AppID)
	}

	if raw.APIURL != nil && *raw.APIURL != "" {
		cfg.Ethos.APIURL = SanitizeURL(*raw.APIURL)
	}

	if raw.ClientID != nil && *raw.ClientID != "" {
		cfg.Ethos.ClientID = strings.TrimSpace(*raw.ClientID)
	}

	if raw.OutputFormat != nil && *raw.OutputFormat != "" {
		cfg.Output.DefaultFormat = strings.ToLower(*raw.OutputFormat)
	}

	if raw.Verbose != nil {
		cfg.Output.Verbose = *raw.Verbose
	}

	if raw.LogLevel != nil && *raw.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(*raw.LogLevel)
	}

	// Session TTL is in minutes; non-positive values are ignored
	if raw.SessionTTL != nil && *raw.SessionTTL > 0 {
		cfg.Session.TTLMinutes = *raw.SessionTTL
	}

	if raw.OTelEndpoint != nil && *raw.OTelEndpoint != "" {
		cfg.Telemetry.Endpoint = SanitizeURL(*raw.OTelEndpoint)
		cfg.Telemetry.Enabled = true
	}

	if raw.OTelEnabled != nil {
		cfg.Telemetry.Enabled = *raw.OTelEnabled
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}

	return nil
}

// SanitizeURL trims whitespace and stray quotes or trailing slashes that
// tend to come along when URLs are copy-pasted into the environment.
func SanitizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"'`)
	return strings.TrimRight(s, "/")
}
