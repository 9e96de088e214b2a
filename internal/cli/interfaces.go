package cli

import (
	"time"

	"github.com/videvian/log-in-with-ethos/internal/config"
	"github.com/videvian/log-in-with-ethos/internal/output"
	"github.com/videvian/log-in-with-ethos/internal/profile"
	"github.com/videvian/log-in-with-ethos/internal/service/login"
)

// Compile-time interface checks.
var (
	_ ConfigProvider  = (*config.Config)(nil)
	_ LogWriter       = (*config.Logger)(nil)
	_ FormatProvider  = (*output.Formatter)(nil)
	_ login.LogWriter = (*config.Logger)(nil)
	_ profile.Logger  = (*config.Logger)(nil)
)

// ConfigProvider provides read access to configuration values.
// This interface enables mocking configuration in tests.
type ConfigProvider interface {
	// GetHome returns the ethos-login home directory path.
	GetHome() string

	// GetAPIURL returns the Ethos API base URL.
	GetAPIURL() string

	// GetClientID returns the X-Ethos-Client identifier.
	GetClientID() string

	// GetHTTPTimeout returns the Ethos API request timeout.
	GetHTTPTimeout() time.Duration

	// GetSessionFile returns the session file path.
	GetSessionFile() string

	// GetSessionTTL returns the session lifetime.
	GetSessionTTL() time.Duration

	// GetAppID returns the identity provider application ID.
	GetAppID() string

	// GetLoggingLevel returns the configured logging level.
	GetLoggingLevel() string

	// GetLoggingFile returns the configured log file path.
	GetLoggingFile() string

	// GetOutputFormat returns the default output format.
	GetOutputFormat() string

	// IsVerbose returns true if verbose output is enabled.
	IsVerbose() bool
}

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
	Close() error
}

// FormatProvider provides output format information.
type FormatProvider interface {
	Format() output.Format
}
