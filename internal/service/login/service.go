package login

import (
	"context"
	"sync"

	"github.com/videvian/log-in-with-ethos/internal/profile"
	"github.com/videvian/log-in-with-ethos/internal/score"
	"github.com/videvian/log-in-with-ethos/internal/session"
)

// Service keeps the profile fetcher keyed by the session's Ethos Everywhere
// wallet and assembles the resulting View.
type Service struct {
	session SessionSource
	fetcher *profile.Fetcher
	logger  LogWriter

	mu      sync.Mutex
	snap    session.Snapshot
	wallet  string
	changed chan struct{}

	unsubscribe []func()
}

// NewService creates a login service and starts tracking the session.
func NewService(cfg *Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}

	opts := append([]profile.Option{profile.WithLogger(logger)}, cfg.FetcherOptions...)

	s := &Service{
		session: cfg.Session,
		fetcher: profile.NewFetcher(cfg.Lookup, opts...),
		logger:  logger,
		changed: make(chan struct{}),
	}

	s.unsubscribe = append(s.unsubscribe,
		s.fetcher.Subscribe(func(profile.State) { s.broadcast() }),
		s.session.Subscribe(s.sync),
	)
	s.sync(s.session.Snapshot())

	return s
}

// View returns the current view.
func (s *Service) View() View {
	s.mu.Lock()
	snap, wallet := s.snap, s.wallet
	s.mu.Unlock()

	v := View{
		Ready:         snap.Ready,
		Authenticated: snap.Ready && snap.Authenticated,
	}
	if v.Authenticated {
		addr, st := s.fetcher.Current()
		if addr != wallet {
			// sync has published the wallet but not yet handed it to the
			// fetcher; st still belongs to the previous wallet.
			st = profile.State{Loading: wallet != ""}
		}
		v.Wallet = wallet
		v.Profile = st.Profile
		v.Loading = st.Loading
		v.Error = st.Error
		if st.Profile != nil {
			tier := score.Classify(st.Profile.Score)
			v.Tier = &tier
		}
	}
	v.Notice = notice(v)
	return v
}

// Await blocks until the view is no longer loading, then returns it.
// If ctx ends first the current view is returned with ctx's error.
func (s *Service) Await(ctx context.Context) (View, error) {
	for {
		s.mu.Lock()
		changed := s.changed
		s.mu.Unlock()

		v := s.View()
		if !v.Loading {
			return v, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return s.View(), ctx.Err()
		}
	}
}

// Close stops tracking the session and tears the fetcher down.
// Lookups still in flight are canceled and their results ignored.
func (s *Service) Close() {
	for _, fn := range s.unsubscribe {
		fn()
	}
	s.fetcher.Close()
}

// sync applies a session snapshot. The fetcher is updated outside s.mu
// since its subscribers call back into broadcast.
func (s *Service) sync(snap session.Snapshot) {
	wallet := snap.WalletAddress()

	s.mu.Lock()
	prev := s.wallet
	s.snap = snap
	s.wallet = wallet
	s.mu.Unlock()

	if snap.Authenticated && wallet == "" {
		s.logger.Debug("authenticated session has no cross-app wallet")
	} else if wallet != prev {
		s.logger.Debug("active wallet changed to %q", wallet)
	}

	s.fetcher.SetAddress(wallet)
	s.broadcast()
}

// broadcast wakes every Await call.
func (s *Service) broadcast() {
	s.mu.Lock()
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
