package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/videvian/log-in-with-ethos/internal/config"
	"github.com/videvian/log-in-with-ethos/internal/ethos"
	"github.com/videvian/log-in-with-ethos/internal/output"
	"github.com/videvian/log-in-with-ethos/internal/profile"
	"github.com/videvian/log-in-with-ethos/internal/session"
)

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Cfg     *config.Config
	Log     *config.Logger
	Fmt     *output.Formatter
	Lookup  profile.Lookup
	Session *session.FileProvider
}

// NewCommandContext creates a context with the given dependencies. The Ethos
// client and session provider are built from cfg.
func NewCommandContext(
	cfg *config.Config,
	logger *config.Logger,
	formatter *output.Formatter,
) *CommandContext {
	cc := &CommandContext{
		Cfg: cfg,
		Log: logger,
		Fmt: formatter,
	}
	if cc.Log == nil {
		cc.Log = config.NullLogger()
	}
	if cfg == nil {
		return cc
	}

	cc.Lookup = ethos.NewClient(&ethos.ClientOptions{
		BaseURL:     cfg.GetAPIURL(),
		ClientID:    cfg.GetClientID(),
		Timeout:     cfg.GetHTTPTimeout(),
		RateLimiter: ethos.NewRateLimiter(cfg.Ethos.RateLimit, cfg.Ethos.Burst),
		Logger:      cc.Log,
	})
	cc.Session = session.NewFileProvider(cfg.GetSessionFile(), cfg.GetAppID(), cfg.GetSessionTTL())
	return cc
}

// WithLookup sets the Ethos profile lookup.
func (c *CommandContext) WithLookup(l profile.Lookup) *CommandContext {
	c.Lookup = l
	return c
}

// WithSession sets the session provider.
func (c *CommandContext) WithSession(p *session.FileProvider) *CommandContext {
	c.Session = p
	return c
}

type cmdContextKey struct{}

// SetCmdContext attaches cc to the command's context.
func SetCmdContext(cmd *cobra.Command, cc *CommandContext) {
	cmd.SetContext(context.WithValue(commandContext(cmd), cmdContextKey{}, cc))
}

// GetCmdContext returns the CommandContext attached by SetCmdContext, or nil.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	ctx := cmd.Context()
	if ctx == nil {
		return nil
	}
	cc, _ := ctx.Value(cmdContextKey{}).(*CommandContext)
	return cc
}

// commandContext returns the command's context, or Background when unset.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
