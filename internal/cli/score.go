package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/videvian/log-in-with-ethos/internal/output"
	"github.com/videvian/log-in-with-ethos/internal/score"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// scoreCmd classifies a credibility score.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var scoreCmd = &cobra.Command{
	Use:   "score <score>",
	Short: "Classify a credibility score",
	Long: `Map an Ethos credibility score to its level and display color.

Scores above 2800 are renowned; anything outside the table is untrusted.`,
	Example: `  ethos-login score 1650
  ethos-login score 3000 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

// scoreTiersCmd lists every tier.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var scoreTiersCmd = &cobra.Command{
	Use:     "tiers",
	Short:   "List the credibility levels",
	Long:    `List every credibility level with its score range and color, lowest first.`,
	Example: `  ethos-login score tiers`,
	Args:    cobra.NoArgs,
	RunE:    runScoreTiers,
}

// scoreTierCmd shows a tier by name.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var scoreTierCmd = &cobra.Command{
	Use:   "tier <level>",
	Short: "Show one credibility level",
	Long:  `Show the score range and color of a credibility level by name.`,
	Example: `  ethos-login score tier reputable
  ethos-login score tier Revered -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runScoreTier,
}

// ScoreResponse is the JSON form of `ethos-login score`.
type ScoreResponse struct {
	Score int        `json:"score"`
	Tier  score.Tier `json:"tier"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.GroupID = groupEthos
	scoreCmd.AddCommand(scoreTiersCmd, scoreTierCmd)
	enrichParentLong(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)

	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return ethoserr.WithDetails(ethoserr.ErrInvalidInput, map[string]string{
			"score":  args[0],
			"reason": "must be a whole number",
		})
	}

	tier := score.Classify(n)

	w := cmd.OutOrStdout()
	if cc.Fmt.IsJSON() {
		return writeJSON(w, ScoreResponse{Score: n, Tier: tier})
	}

	p := cc.Fmt.Palette()
	out(w, "%s %s\n", p.Tier(tier, strconv.Itoa(n)), p.Tier(tier, "("+tier.String()+")"))
	return nil
}

func runScoreTiers(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)

	tiers := score.Tiers()
	if cc.Fmt.IsJSON() {
		return writeJSON(cmd.OutOrStdout(), tiers)
	}
	return output.TierTable(cmd.OutOrStdout(), cc.Fmt.Palette(), tiers)
}

func runScoreTier(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)

	tier, err := score.ParseLevel(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cc.Fmt.IsJSON() {
		return writeJSON(w, tier)
	}

	p := cc.Fmt.Palette()
	out(w, "%s  %d-%d  %s\n", p.Tier(tier, tier.String()), tier.Min, tier.Max, tier.Color)
	return nil
}
