package cli

import (
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/videvian/log-in-with-ethos/internal/config"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify ethos-login configuration settings.`,
}

// configInitCmd writes a default configuration file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.ethos-login/config.yaml.

An existing configuration file is only overwritten with --force.`,
	Example: `  ethos-login config init
  ethos-login config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// configShowCmd shows the effective configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after file, environment and flag overrides.`,
	Example: `  ethos-login config show
  ethos-login config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configPathCmd prints the configuration file path.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configPathCmd = &cobra.Command{
	Use:     "path",
	Short:   "Show the configuration file path",
	Long:    `Print the path of the configuration file ethos-login reads.`,
	Example: `  ethos-login config path`,
	Args:    cobra.NoArgs,
	RunE:    runConfigPath,
}

// configGetCmd gets a single configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by its dot-separated key, for example
ethos.api_url or session.ttl_minutes.`,
	Example: `  ethos-login config get ethos.api_url
  ethos-login config get session.app_id`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a single configuration value in the config file.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value by its dot-separated key. The configuration file
is validated and rewritten immediately.`,
	Example: `  ethos-login config set session.app_id cm5l76en107pt1lpl2ve2ocfy
  ethos-login config set output.default_format json
  ethos-login config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

// configKey binds a dot-separated key to its accessors.
type configKey struct {
	get func(*config.Config) string
	set func(*config.Config, string) error
}

//nolint:gochecknoglobals // static key table
var configKeys = map[string]configKey{
	"home": {
		get: func(c *config.Config) string { return c.Home },
		set: func(c *config.Config, v string) error { c.Home = v; return nil },
	},
	"ethos.api_url": {
		get: func(c *config.Config) string { return c.Ethos.APIURL },
		set: func(c *config.Config, v string) error { c.Ethos.APIURL = config.SanitizeURL(v); return nil },
	},
	"ethos.client_id": {
		get: func(c *config.Config) string { return c.Ethos.ClientID },
		set: func(c *config.Config, v string) error { c.Ethos.ClientID = strings.TrimSpace(v); return nil },
	},
	"ethos.timeout_seconds": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Ethos.TimeoutSeconds) },
		set: intSetter(func(c *config.Config, n int) { c.Ethos.TimeoutSeconds = n }),
	},
	"ethos.rate_limit": {
		get: func(c *config.Config) string { return strconv.FormatFloat(c.Ethos.RateLimit, 'f', -1, 64) },
		set: func(c *config.Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return invalidValue(v, "a number")
			}
			c.Ethos.RateLimit = f
			return nil
		},
	},
	"ethos.burst": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Ethos.Burst) },
		set: intSetter(func(c *config.Config, n int) { c.Ethos.Burst = n }),
	},
	"session.app_id": {
		get: func(c *config.Config) string { return c.Session.AppID },
		set: func(c *config.Config, v string) error { c.Session.AppID = strings.TrimSpace(v); return nil },
	},
	"session.file": {
		get: func(c *config.Config) string { return c.Session.File },
		set: func(c *config.Config, v string) error { c.Session.File = v; return nil },
	},
	"session.ttl_minutes": {
		get: func(c *config.Config) string { return strconv.Itoa(c.Session.TTLMinutes) },
		set: intSetter(func(c *config.Config, n int) { c.Session.TTLMinutes = n }),
	},
	"output.default_format": {
		get: func(c *config.Config) string { return c.Output.DefaultFormat },
		set: oneOf([]string{"text", "json", "auto"}, func(c *config.Config, v string) { c.Output.DefaultFormat = v }),
	},
	"output.color": {
		get: func(c *config.Config) string { return c.Output.Color },
		set: oneOf([]string{"auto", "always", "never"}, func(c *config.Config, v string) { c.Output.Color = v }),
	},
	"output.verbose": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Output.Verbose) },
		set: boolSetter(func(c *config.Config, b bool) { c.Output.Verbose = b }),
	},
	"logging.level": {
		get: func(c *config.Config) string { return c.Logging.Level },
		set: oneOf([]string{"off", "error", "debug"}, func(c *config.Config, v string) { c.Logging.Level = v }),
	},
	"logging.file": {
		get: func(c *config.Config) string { return c.Logging.File },
		set: func(c *config.Config, v string) error { c.Logging.File = v; return nil },
	},
	"telemetry.enabled": {
		get: func(c *config.Config) string { return strconv.FormatBool(c.Telemetry.Enabled) },
		set: boolSetter(func(c *config.Config, b bool) { c.Telemetry.Enabled = b }),
	},
	"telemetry.endpoint": {
		get: func(c *config.Config) string { return c.Telemetry.Endpoint },
		set: func(c *config.Config, v string) error { c.Telemetry.Endpoint = config.SanitizeURL(v); return nil },
	},
	"telemetry.service_name": {
		get: func(c *config.Config) string { return c.Telemetry.ServiceName },
		set: func(c *config.Config, v string) error { c.Telemetry.ServiceName = strings.TrimSpace(v); return nil },
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.GroupID = groupConfig
	configCmd.AddCommand(configInitCmd, configShowCmd, configPathCmd, configGetCmd, configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")

	enrichParentLong(configCmd)
}

// configFilePath returns the config file under the effective home directory.
func configFilePath(c *config.Config) string {
	return config.Path(config.ExpandHome(c.Home))
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	path := configFilePath(cc.Cfg)

	if _, err := os.Stat(path); err == nil && !configForce {
		return ethoserr.WithSuggestion(
			ethoserr.WithDetails(ethoserr.ErrInvalidInput, map[string]string{"path": path}),
			"configuration already exists; use --force to overwrite",
		)
	}

	defaults := config.Defaults()
	defaults.Home = cc.Cfg.Home
	if err := config.Save(defaults, path); err != nil {
		return ethoserr.Wrap(err, "writing config file")
	}
	cc.Log.Debug("wrote default configuration to %s", path)

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", path)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - session.app_id: Your identity provider app ID")
	outln(w, "  - ethos.client_id: The X-Ethos-Client value sent to the Ethos API")
	outln(w, "  - output.default_format: Output format (text/json/auto)")
	outln(w, "  - logging.level: Log level (off/error/debug)")
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	w := cmd.OutOrStdout()

	if cc.Fmt.IsJSON() {
		values := make(map[string]string, len(configKeys))
		for key, k := range configKeys {
			values[key] = k.get(cc.Cfg)
		}
		return writeJSON(w, values)
	}

	displayConfigText(w, cc.Cfg)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	outln(cmd.OutOrStdout(), configFilePath(GetCmdContext(cmd).Cfg))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)

	k, err := lookupConfigKey(args[0])
	if err != nil {
		return err
	}
	outln(cmd.OutOrStdout(), k.get(cc.Cfg))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	key, value := args[0], args[1]

	k, err := lookupConfigKey(key)
	if err != nil {
		return err
	}

	// Edit the file as written so environment and flag overrides are not persisted
	path := configFilePath(cc.Cfg)
	current, err := config.Load(path)
	if err != nil {
		if !ethoserr.Is(err, ethoserr.ErrConfigNotFound) {
			return err
		}
		current = config.Defaults()
		current.Home = cc.Cfg.Home
	}

	if err := k.set(current, value); err != nil {
		return err
	}
	if err := current.Validate(); err != nil {
		return err
	}
	if err := config.Save(current, path); err != nil {
		return ethoserr.Wrap(err, "saving config")
	}
	cc.Log.Debug("set %s in %s", key, path)

	out(cmd.OutOrStdout(), "Set %s = %s\n", key, k.get(current))
	return nil
}

func lookupConfigKey(key string) (configKey, error) {
	k, ok := configKeys[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return configKey{}, ethoserr.WithSuggestion(
			ethoserr.WithDetails(ethoserr.ErrUnknownConfigKey, map[string]string{"key": key}),
			"valid keys: "+strings.Join(configKeyNames(), ", "),
		)
	}
	return k, nil
}

func configKeyNames() []string {
	names := make([]string, 0, len(configKeys))
	for name := range configKeys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intSetter(apply func(*config.Config, int)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return invalidValue(v, "a whole number")
		}
		apply(c, n)
		return nil
	}
}

func boolSetter(apply func(*config.Config, bool)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return invalidValue(v, "true or false")
		}
		apply(c, b)
		return nil
	}
}

func oneOf(valid []string, apply func(*config.Config, string)) func(*config.Config, string) error {
	return func(c *config.Config, v string) error {
		v = strings.ToLower(strings.TrimSpace(v))
		for _, ok := range valid {
			if v == ok {
				apply(c, v)
				return nil
			}
		}
		return invalidValue(v, strings.Join(valid, ", "))
	}
}

func invalidValue(value, valid string) error {
	return ethoserr.WithDetails(ethoserr.ErrInvalidInput, map[string]string{
		"value": value,
		"valid": valid,
	})
}

// displayConfigText shows the config grouped by section.
func displayConfigText(w io.Writer, c *config.Config) {
	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)

	section := ""
	for _, name := range configKeyNames() {
		prefix, field, ok := strings.Cut(name, ".")
		if !ok {
			continue
		}
		if prefix != section {
			section = prefix
			outln(w)
			out(w, "  %s:\n", sectionTitle(prefix))
		}
		value := configKeys[name].get(c)
		if value == "" {
			value = "(not configured)"
		}
		out(w, "    %s: %s\n", field, value)
	}
}

func sectionTitle(section string) string {
	if section == "" {
		return section
	}
	return strings.ToUpper(section[:1]) + section[1:]
}
