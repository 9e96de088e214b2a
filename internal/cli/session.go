package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/videvian/log-in-with-ethos/internal/config"
	"github.com/videvian/log-in-with-ethos/internal/output"
	"github.com/videvian/log-in-with-ethos/internal/session"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// loginCmd imports a provider session and shows the resulting profile.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with an identity provider session",
	Long: `Import the identity provider's user export and log in with it.

The export is the provider's user object as JSON, with an "id" and the
"linkedAccounts" list. The first "cross_app" account's first embedded wallet
becomes the Ethos Everywhere wallet whose Ethos profile is shown.

Without --from, the previously imported session is reused.`,
	Example: `  ethos-login login --from privy-user.json
  cat privy-user.json | ethos-login login --from -
  ethos-login login`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

// logoutCmd removes the stored session.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored session",
	Long:  `Remove the stored identity provider session. Logging out twice is not an error.`,
	Example: `  ethos-login logout`,
	Args:    cobra.NoArgs,
	RunE:    runLogout,
}

// whoamiCmd shows the profile of the stored session.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the Ethos profile of the current session",
	Long: `Load the stored session, resolve its Ethos Everywhere wallet and show the
Ethos profile and credibility score linked to it.`,
	Example: `  ethos-login whoami
  ethos-login whoami -o json`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var loginFrom string

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	for _, c := range []*cobra.Command{loginCmd, logoutCmd, whoamiCmd} {
		c.GroupID = groupSession
	}

	loginCmd.Flags().StringVar(&loginFrom, "from", "", "provider user export to import (JSON file, or - for stdin)")
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)

	if cc.Cfg.GetAppID() == "" {
		return ethoserr.WithSuggestion(
			ethoserr.WithDetails(ethoserr.ErrConfigInvalid, map[string]string{
				"key":    "session.app_id",
				"reason": "identity provider app ID is not set",
			}),
			fmt.Sprintf("set %s or session.app_id in the config file", config.EnvAppID),
		)
	}

	if loginFrom != "" {
		if err := importSession(cmd, cc.Session, loginFrom); err != nil {
			return err
		}
		cc.Log.Debug("imported session from %s into %s", loginFrom, cc.Session.Path())
	}

	return showSession(cmd, cc)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)

	handle := session.NewHandle(cc.Session)
	if err := handle.Logout(commandContext(cmd)); err != nil {
		return err
	}
	cc.Log.Debug("removed session %s", cc.Session.Path())

	return output.FormatSuccess(cmd.OutOrStdout(), "Logged out", cc.Fmt.Format())
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	return showSession(cmd, GetCmdContext(cmd))
}

func showSession(cmd *cobra.Command, cc *CommandContext) error {
	view, err := resolveView(cmd, cc)
	if err != nil {
		return err
	}

	if err := renderView(cmd.OutOrStdout(), cc.Fmt, view); err != nil {
		return err
	}

	if !cc.Fmt.IsJSON() {
		if expires, ok := cc.Session.ExpiresAt(); ok {
			outln(cmd.OutOrStdout(), cc.Fmt.Palette().Faint(
				"Session expires "+expires.Local().Format(time.RFC1123)))
		}
	}
	return nil
}

// importSession reads a provider export from path ("-" reads stdin).
func importSession(cmd *cobra.Command, provider *session.FileProvider, path string) error {
	var r io.Reader
	if strings.TrimSpace(path) == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(config.ExpandHome(path)) //nolint:gosec // G304: path is the user's own export
		if err != nil {
			if os.IsNotExist(err) {
				return ethoserr.WithDetails(ethoserr.ErrNotFound, map[string]string{"path": path})
			}
			return ethoserr.Wrap(err, "opening session export")
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	return provider.Import(r)
}
