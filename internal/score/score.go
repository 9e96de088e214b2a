// Package score classifies Ethos credibility scores into named tiers.
package score

import (
	"fmt"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"

	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// Level names a credibility tier.
type Level string

// Credibility levels, lowest first.
const (
	Untrusted     Level = "untrusted"
	Questionable  Level = "questionable"
	Neutral       Level = "neutral"
	Known         Level = "known"
	Established   Level = "established"
	Reputable     Level = "reputable"
	Exemplary     Level = "exemplary"
	Distinguished Level = "distinguished"
	Revered       Level = "revered"
	Renowned      Level = "renowned"
)

// Score bounds covered by the tier table.
const (
	MinScore = 0
	MaxScore = 2800
)

// MaxTypoDistance is the largest edit distance ParseLevel will suggest a correction for.
const MaxTypoDistance = 3

// Tier is one row of the classification table.
type Tier struct {
	Level Level  `json:"level"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Color string `json:"color"`
}

// Contains reports whether score falls inside the tier's inclusive range.
func (t Tier) Contains(score int) bool {
	return score >= t.Min && score <= t.Max
}

// String returns the level name.
func (t Tier) String() string {
	return string(t.Level)
}

// TerminalColor returns the tier color as a #RRGGBB value.
// CSS rgba() colors are flattened by dropping the alpha channel.
func (t Tier) TerminalColor() string {
	if !strings.HasPrefix(t.Color, "rgba(") {
		return t.Color
	}

	var r, g, b int
	var a float64
	if _, err := fmt.Sscanf(t.Color, "rgba(%d, %d, %d, %g)", &r, &g, &b, &a); err != nil {
		return t.Color
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// tiers is ordered; Classify relies on the order.
//
//nolint:gochecknoglobals // Fixed lookup table
var tiers = []Tier{
	{Level: Untrusted, Min: 0, Max: 799, Color: "#b72b38"},
	{Level: Questionable, Min: 800, Max: 1199, Color: "#C29010"},
	{Level: Neutral, Min: 1200, Max: 1399, Color: "rgba(193, 192, 182, 1)"},
	{Level: Known, Min: 1400, Max: 1599, Color: "#7C8DA8"},
	{Level: Established, Min: 1600, Max: 1799, Color: "#4E86B9"},
	{Level: Reputable, Min: 1800, Max: 1999, Color: "#2E7BC3"},
	{Level: Exemplary, Min: 2000, Max: 2199, Color: "#427B56"},
	{Level: Distinguished, Min: 2200, Max: 2399, Color: "#127f31"},
	{Level: Revered, Min: 2400, Max: 2599, Color: "#836DA6"},
	{Level: Renowned, Min: 2600, Max: 2800, Color: "#7A5EAF"},
}

// Tiers returns a copy of the tier table in ascending order.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}

// Classify maps a score to its tier.
// Scores above MaxScore clamp to renowned; anything else unmatched is untrusted.
func Classify(score int) Tier {
	for _, t := range tiers {
		if t.Contains(score) {
			return t
		}
	}

	if score > MaxScore {
		return tiers[len(tiers)-1]
	}
	return tiers[0]
}

// Color returns the display color for a score.
func Color(score int) string {
	return Classify(score).Color
}

// ParseLevel looks up a tier by level name (case-insensitive).
// Unknown names return ErrUnknownTier with the closest level as a suggestion.
func ParseLevel(name string) (Tier, error) {
	input := strings.ToLower(strings.TrimSpace(name))

	minDist := math.MaxInt
	var closest Level
	for _, t := range tiers {
		if string(t.Level) == input {
			return t, nil
		}
		if dist := levenshtein.ComputeDistance(input, string(t.Level)); dist < minDist {
			minDist = dist
			closest = t.Level
		}
	}

	err := ethoserr.WithDetails(ethoserr.ErrUnknownTier, map[string]string{"level": name})
	if minDist <= MaxTypoDistance {
		return Tier{}, ethoserr.WithSuggestion(err, fmt.Sprintf("did you mean '%s'?", closest))
	}
	return Tier{}, ethoserr.WithSuggestion(err, "run 'ethos-login score tiers' to list levels")
}
