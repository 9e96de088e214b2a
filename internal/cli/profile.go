package cli

import (
	"github.com/spf13/cobra"

	"github.com/videvian/log-in-with-ethos/internal/ethos"
	"github.com/videvian/log-in-with-ethos/internal/output"
	"github.com/videvian/log-in-with-ethos/internal/score"
	"github.com/videvian/log-in-with-ethos/internal/wallet"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// profileCmd looks up an Ethos profile by wallet address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var profileCmd = &cobra.Command{
	Use:   "profile <address>",
	Short: "Look up the Ethos profile of a wallet",
	Long: `Fetch the Ethos user linked to an Ethos Everywhere wallet address and show
its profile and credibility score. No session is required.`,
	Example: `  ethos-login profile 0x8ba1f109551bD432803012645Ac136ddd64DBA72
  ethos-login profile 0x8ba1f109551bd432803012645ac136ddd64dba72 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

// ProfileResponse is the JSON form of `ethos-login profile`.
type ProfileResponse struct {
	Address string         `json:"address"`
	Profile *ethos.Profile `json:"profile"`
	Tier    *score.Tier    `json:"tier,omitempty"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.GroupID = groupEthos
}

func runProfile(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)

	address, err := wallet.NormalizeAddress(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(cmd, cc.Cfg.GetHTTPTimeout())
	defer cancel()

	user, err := cc.Lookup.GetUserByEverywhereWallet(ctx, address)
	if err != nil {
		cc.Log.Error("Error fetching Ethos user: %v", err)
		return err
	}
	if user == nil {
		return ethoserr.WithDetails(ethoserr.ErrNotFound, map[string]string{"address": address})
	}

	w := cmd.OutOrStdout()
	if cc.Fmt.IsJSON() {
		tier := score.Classify(user.Score)
		return writeJSON(w, ProfileResponse{Address: address, Profile: user, Tier: &tier})
	}

	p := cc.Fmt.Palette()
	outln(w, output.ProfileCard(p, user))
	outln(w, output.WalletLine(p, address))
	return nil
}
