package cli

import (
	"github.com/spf13/cobra"

	"github.com/videvian/log-in-with-ethos/internal/version"
)

// versionCmd prints build information.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version information",
	Long:    `Show the ethos-login version, commit and Go toolchain it was built with.`,
	Example: `  ethos-login version
  ethos-login version -o json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cc := GetCmdContext(cmd)
		info := version.Get()
		if cc.Fmt.IsJSON() {
			return writeJSON(cmd.OutOrStdout(), info)
		}
		outln(cmd.OutOrStdout(), info.String())
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.GroupID = groupConfig
}
