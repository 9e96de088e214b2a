// Package login wires the session, wallet resolution and profile lookup into
// the single view an application shows after "Log in with Ethos".
package login

import (
	"github.com/videvian/log-in-with-ethos/internal/profile"
	"github.com/videvian/log-in-with-ethos/internal/session"
)

// SessionSource is the session context the service observes.
type SessionSource interface {
	Snapshot() session.Snapshot
	Subscribe(fn func(session.Snapshot)) (unsubscribe func())
}

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Config contains dependencies for creating a login service.
type Config struct {
	Session SessionSource
	Lookup  profile.Lookup
	Logger  LogWriter

	// FetcherOptions are passed through to the profile fetcher.
	FetcherOptions []profile.Option
}
