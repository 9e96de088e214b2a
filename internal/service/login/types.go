package login

import (
	"github.com/videvian/log-in-with-ethos/internal/ethos"
	"github.com/videvian/log-in-with-ethos/internal/score"
)

// Status messages shown alongside the view.
const (
	NoticeNotReady       = "Loading..."
	NoticeLoadingProfile = "Loading Ethos profile..."
	NoticeNoProfile      = "No Ethos profile found for this wallet"
)

// View is everything a login page renders at one point in time.
type View struct {
	Ready         bool           `json:"ready"`
	Authenticated bool           `json:"authenticated"`
	Wallet        string         `json:"wallet,omitempty"`
	Profile       *ethos.Profile `json:"profile,omitempty"`
	Tier          *score.Tier    `json:"tier,omitempty"`
	Loading       bool           `json:"loading"`
	Error         string         `json:"error,omitempty"`
	Notice        string         `json:"notice,omitempty"`
}

// HasWallet reports whether an Ethos Everywhere wallet was resolved.
func (v View) HasWallet() bool {
	return v.Wallet != ""
}

func notice(v View) string {
	switch {
	case !v.Ready:
		return NoticeNotReady
	case !v.Authenticated:
		return ""
	case v.Loading:
		return NoticeLoadingProfile
	case v.Profile == nil && v.HasWallet():
		return NoticeNoProfile
	default:
		return ""
	}
}
