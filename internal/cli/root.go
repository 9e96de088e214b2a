// Package cli implements the ethos-login command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/videvian/log-in-with-ethos/internal/config"
	"github.com/videvian/log-in-with-ethos/internal/metrics"
	"github.com/videvian/log-in-with-ethos/internal/output"
	"github.com/videvian/log-in-with-ethos/internal/telemetry"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// telemetryShutdownTimeout bounds the span flush on exit.
const telemetryShutdownTimeout = 5 * time.Second

var (
	// Global flags
	homeDir      string
	outputFormat string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg               *config.Config
	logger            *config.Logger
	formatter         *output.Formatter
	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ethos-login",
	Short: "Log in with Ethos from the terminal",
	Long: `ethos-login resolves the Ethos Everywhere wallet of an identity provider
session and shows the Ethos profile and credibility score linked to it.

Sessions are imported from the provider's user export and kept under the
ethos-login home directory until they expire.`,
	Example: `  ethos-login login --from privy-user.json
  ethos-login whoami
  ethos-login profile 0x8ba1f109551bD432803012645Ac136ddd64DBA72
  ethos-login score 1650`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := initGlobals(cmd); err != nil {
			return err
		}
		SetCmdContext(cmd, NewCommandContext(cfg, logger, formatter))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		format := output.FormatText
		if formatter != nil {
			format = formatter.Format()
		}
		_ = output.FormatError(os.Stderr, err, format)
		cleanup()
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return ethoserr.ExitCode(err)
}

// initGlobals initializes global configuration, logger, formatter and tracing.
func initGlobals(cmd *cobra.Command) error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	var err error
	cfg, err = config.Load(config.Path(home))
	switch {
	case err == nil:
	case ethoserr.Is(err, ethoserr.ErrConfigNotFound):
		cfg = config.Defaults()
		cfg.Home = home
	default:
		return err
	}

	if err := config.ApplyEnvironment(cfg); err != nil {
		return ethoserr.WithCause(ethoserr.ErrConfigInvalid, err)
	}

	// Command-line flags win over file and environment
	if homeDir != "" {
		cfg.Home = homeDir
	}
	if verbose {
		cfg.Output.Verbose = true
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != string(output.FormatAuto) {
		cfg.Output.DefaultFormat = outputFormat
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = config.NewLogger(config.ParseLogLevel(cfg.GetLoggingLevel()), cfg.GetLoggingFile())
	if err != nil {
		// Logging must never block a command
		logger = config.NullLogger()
	}

	out := cmd.OutOrStdout()
	format := output.DetectFormat(out, output.ParseFormat(cfg.GetOutputFormat()))
	formatter = output.NewFormatter(format, out, cfg.Output.Color != "never")

	telemetryShutdown, err = telemetry.Setup(commandContext(cmd), cfg.Telemetry)
	if err != nil {
		logger.Error("telemetry disabled: %v", err)
	}

	logger.Debug("ethos-login home=%s api=%s format=%s", cfg.GetHome(), cfg.GetAPIURL(), format)
	return nil
}

// cleanup flushes spans and releases the logger. It is safe to call twice.
func cleanup() {
	if telemetryShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		if err := telemetryShutdown(ctx); err != nil && logger != nil {
			logger.Error("flushing traces: %v", err)
		}
		cancel()
		telemetryShutdown = nil
	}

	if logger != nil {
		m := metrics.Global.Snapshot()
		logger.Debug("metrics: api_calls=%d api_errors=%d avg_latency_ms=%.1f lookups=%d failed=%d discarded=%d",
			m.APICallsTotal, m.APIErrorsTotal, metrics.Global.APILatencyAvgMs(),
			m.LookupsStarted, m.LookupsFailed, m.LookupsDiscarded)
		_ = logger.Close()
		logger = nil
	}
}

// Config returns the global configuration.
func Config() *config.Config {
	return cfg
}

// Formatter returns the global output formatter.
func Formatter() *output.Formatter {
	return formatter
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "ethos-login data directory (default: ~/.ethos-login)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupSession, Title: "Session:"},
		&cobra.Group{ID: groupEthos, Title: "Ethos Reputation:"},
		&cobra.Group{ID: groupConfig, Title: "Configuration:"},
	)
	rootCmd.SetHelpCommandGroupID(groupConfig)
}
