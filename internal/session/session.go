// Package session models the identity provider session consumed by the
// login pipeline. The provider itself is external; this package exposes its
// state as a read-only Snapshot and its actions through a Handle that is
// passed explicitly to every consumer.
package session

import (
	"context"
	"time"

	"github.com/videvian/log-in-with-ethos/internal/wallet"
)

// Session TTL bounds for imported provider sessions.
const (
	// DefaultTTL is the default session duration (60 minutes).
	DefaultTTL = 60 * time.Minute

	// MaxTTL is the maximum allowed session duration (24 hours).
	MaxTTL = 24 * time.Hour

	// MinTTL is the minimum allowed session duration (1 minute).
	MinTTL = 1 * time.Minute
)

// User is the provider's view of the logged-in user.
type User struct {
	ID             string                 `json:"id"`
	LinkedAccounts []wallet.LinkedAccount `json:"linkedAccounts"`
}

// Snapshot is the provider state at one point in time.
type Snapshot struct {
	Ready         bool  `json:"ready"`
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// WalletAddress resolves the Ethos Everywhere wallet of the snapshot's user.
// Returns "" when unauthenticated or when no cross-app wallet is linked.
func (s Snapshot) WalletAddress() string {
	if !s.Authenticated || s.User == nil {
		return ""
	}
	address, _ := wallet.Resolve(s.User.LinkedAccounts)
	return address
}

// Provider is the identity provider integration surface.
type Provider interface {
	// Snapshot returns the current provider state.
	Snapshot() Snapshot

	// Login authenticates the user.
	Login(ctx context.Context) error

	// Logout ends the session.
	Logout(ctx context.Context) error
}

// ClampTTL bounds d to [MinTTL, MaxTTL]; zero selects DefaultTTL.
func ClampTTL(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultTTL
	case d < MinTTL:
		return MinTTL
	case d > MaxTTL:
		return MaxTTL
	default:
		return d
	}
}
