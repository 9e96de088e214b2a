package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/videvian/log-in-with-ethos/internal/output"
	"github.com/videvian/log-in-with-ethos/internal/service/login"
	"github.com/videvian/log-in-with-ethos/internal/session"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// loginTitle heads the text rendering of a login view.
const loginTitle = "Log in with Ethos"

// resolveView logs in through the provider and waits for the profile lookup
// of the session's wallet to settle.
func resolveView(cmd *cobra.Command, cc *CommandContext) (login.View, error) {
	handle := session.NewHandle(cc.Session)

	svc := login.NewService(&login.Config{
		Session: handle,
		Lookup:  cc.Lookup,
		Logger:  cc.Log,
	})
	defer svc.Close()

	ctx, cancel := contextWithTimeout(cmd, cc.Cfg.GetHTTPTimeout())
	defer cancel()

	if err := handle.Login(ctx); err != nil {
		return svc.View(), err
	}

	view, err := svc.Await(ctx)
	if err != nil {
		cc.Log.Error("waiting for Ethos profile: %v", err)
		return view, ethoserr.WithCause(ethoserr.ErrNetworkError, err)
	}
	return view, nil
}

// renderView writes a login view as JSON, or as the text page:
//
//	Log in with Ethos
//	<notice>
//	<profile card>
//	Ethos Everywhere wallet: 0x...
func renderView(w io.Writer, f *output.Formatter, v login.View) error {
	if f.IsJSON() {
		return writeJSON(w, v)
	}

	p := f.Palette()
	outln(w, p.Bold(loginTitle))

	if !v.Ready {
		outln(w, v.Notice)
		return nil
	}
	if !v.Authenticated {
		outln(w, "Not logged in. Run 'ethos-login login --from <export.json>'.")
		return nil
	}

	if v.Notice != "" {
		outln(w, v.Notice)
	}
	if v.Profile != nil {
		outln(w, output.ProfileCard(p, v.Profile))
	}
	if v.Error != "" {
		outln(w, p.Faint("Lookup failed: "+v.Error))
	}
	outln(w, output.WalletLine(p, v.Wallet))
	return nil
}
