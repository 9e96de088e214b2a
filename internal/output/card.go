package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/videvian/log-in-with-ethos/internal/ethos"
	"github.com/videvian/log-in-with-ethos/internal/score"
	"github.com/videvian/log-in-with-ethos/internal/wallet"
)

// cardBorderColor matches the Ethos logo mark.
const cardBorderColor = "#C1C0B6"

// ProfileCard renders an Ethos profile with its score tier.
//
//	Alice @alice
//	Profile ID: 12
//	Credibility Score: 1650 (established)
func ProfileCard(p *Palette, user *ethos.Profile) string {
	tier := score.Classify(user.Score)

	name := p.Bold(user.DisplayName)
	if username := ethos.Value(user.Username); username != "" {
		name += " " + p.Faint("@"+username)
	}

	lines := []string{name}
	if user.HasProfile() {
		lines = append(lines, "Profile ID: "+strconv.FormatInt(*user.ProfileID, 10))
	}
	if desc := ethos.Value(user.Description); desc != "" {
		lines = append(lines, p.Style().Width(60).Render(desc))
	}

	scoreText := p.Style().Bold(true).Foreground(lipgloss.Color(tier.TerminalColor())).
		Render(strconv.Itoa(user.Score))
	lines = append(lines,
		fmt.Sprintf("Credibility Score: %s %s", scoreText, p.Tier(tier, "("+tier.String()+")")))

	if link := user.ProfileURL(); link != "" {
		lines = append(lines, p.Faint(link))
	}
	if avatar := ethos.Value(user.AvatarURL); avatar != "" {
		lines = append(lines, p.Faint("Avatar: "+avatar))
	}

	return p.Style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(cardBorderColor)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// WalletLine renders the Ethos Everywhere wallet label and address.
// An empty address renders as not connected.
func WalletLine(p *Palette, address string) string {
	return p.Faint("Ethos Everywhere wallet:") + " " + wallet.DisplayAddress(address)
}

// TierTable renders the score tiers, one colored row each.
func TierTable(w io.Writer, p *Palette, tiers []score.Tier) error {
	table := NewTable("LEVEL", "MIN", "MAX", "COLOR")
	for _, t := range tiers {
		table.AddRow(
			p.Tier(t, t.String()),
			strconv.Itoa(t.Min),
			strconv.Itoa(t.Max),
			t.Color,
		)
	}
	return table.Render(w)
}
