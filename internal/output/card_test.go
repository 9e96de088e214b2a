package output_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/videvian/log-in-with-ethos/internal/ethos"
	"github.com/videvian/log-in-with-ethos/internal/output"
	"github.com/videvian/log-in-with-ethos/internal/score"
)

func plainPalette() *output.Palette {
	return output.NewPalette(&bytes.Buffer{}, false)
}

func TestProfileCard(t *testing.T) {
	t.Parallel()

	profileID := int64(12)
	username, desc := "alice", "Builder"
	link := "https://app.ethos.network/profile/x/0xabc"
	card := output.ProfileCard(plainPalette(), &ethos.Profile{
		ID:          5,
		ProfileID:   &profileID,
		DisplayName: "Alice",
		Username:    &username,
		Description: &desc,
		Score:       1650,
		Status:      "ACTIVE",
		Links:       &ethos.Links{Profile: &link},
	})

	assert.Contains(t, card, "Alice @alice")
	assert.Contains(t, card, "Profile ID: 12")
	assert.Contains(t, card, "Builder")
	assert.Contains(t, card, "Credibility Score: 1650 (established)")
	assert.Contains(t, card, "https://app.ethos.network/profile/x/0xabc")
	assert.Contains(t, card, "╭")
	assert.NotContains(t, card, "\x1b[", "plain palette emits no escape codes")
}

func TestProfileCard_Minimal(t *testing.T) {
	t.Parallel()

	card := output.ProfileCard(plainPalette(), &ethos.Profile{DisplayName: "Bob", Score: 3000})

	assert.Contains(t, card, "Bob")
	assert.NotContains(t, card, "@")
	assert.NotContains(t, card, "Profile ID")
	assert.Contains(t, card, "Credibility Score: 3000 (renowned)")
}

func TestProfileCard_EmptyOptionalFields(t *testing.T) {
	t.Parallel()

	empty := ""
	card := output.ProfileCard(plainPalette(), &ethos.Profile{
		DisplayName: "Carol",
		Username:    &empty,
		AvatarURL:   &empty,
		Links:       &ethos.Links{},
		Score:       1200,
	})

	assert.Contains(t, card, "Carol")
	assert.NotContains(t, card, "@")
	assert.NotContains(t, card, "Avatar:")
	assert.Contains(t, card, "Credibility Score: 1200 (neutral)")
}

func TestWalletLine(t *testing.T) {
	t.Parallel()

	p := plainPalette()
	assert.Equal(t, "Ethos Everywhere wallet: Not connected", output.WalletLine(p, ""))
	assert.Equal(t,
		"Ethos Everywhere wallet: 0x8ba1f109551bD432803012645Ac136ddd64DBA72",
		output.WalletLine(p, "0x8ba1f109551bd432803012645ac136ddd64dba72"))
}

func TestTierTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, output.TierTable(&buf, plainPalette(), score.Tiers()))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, []string{"LEVEL", "MIN", "MAX", "COLOR"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"untrusted", "0", "799", "#b72b38"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"renowned", "2600", "2800", "#7A5EAF"}, strings.Fields(lines[11]))
}
