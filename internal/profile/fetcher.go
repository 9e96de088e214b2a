// Package profile tracks the Ethos profile of the currently active wallet.
//
// A Fetcher is keyed by a wallet address. Every change of address starts a
// new generation; a lookup commits its outcome only while its generation is
// still current, so the most recently requested address always wins no
// matter in which order responses arrive.
package profile

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/videvian/log-in-with-ethos/internal/ethos"
	"github.com/videvian/log-in-with-ethos/internal/metrics"
	"github.com/videvian/log-in-with-ethos/internal/telemetry"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

// fallbackMessage is used when a failure carries no message of its own.
const fallbackMessage = "Failed to fetch Ethos user"

// Lookup fetches an Ethos user by Ethos Everywhere wallet address.
type Lookup interface {
	GetUserByEverywhereWallet(ctx context.Context, address string) (*ethos.Profile, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ctx context.Context, address string) (*ethos.Profile, error)

// GetUserByEverywhereWallet calls f.
func (f LookupFunc) GetUserByEverywhereWallet(ctx context.Context, address string) (*ethos.Profile, error) {
	return f(ctx, address)
}

// Logger is the diagnostics sink for failed and discarded lookups.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// State is the fetcher's view of the active address.
// An empty Error means no error.
type State struct {
	Profile *ethos.Profile `json:"profile"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

// Fetcher owns the State for one consumer.
type Fetcher struct {
	lookup Lookup
	logger Logger
	tracer trace.Tracer

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	address     string
	generation  uint64
	state       State
	closed      bool
	subscribers map[uint64]func(State)
	nextSubID   uint64
	pending     []State
	dispatching bool

	inflight sync.WaitGroup
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// WithTracer sets the tracer used for lookup spans.
func WithTracer(t trace.Tracer) Option {
	return func(f *Fetcher) {
		f.tracer = t
	}
}

// WithContext sets the parent context of all lookups.
// Canceling it has the same effect on in-flight requests as Close.
func WithContext(ctx context.Context) Option {
	return func(f *Fetcher) {
		f.ctx = ctx
	}
}

// NewFetcher creates a Fetcher with no active address.
func NewFetcher(lookup Lookup, opts ...Option) *Fetcher {
	f := &Fetcher{
		lookup:      lookup,
		logger:      nopLogger{},
		tracer:      telemetry.Tracer(),
		ctx:         context.Background(),
		subscribers: make(map[uint64]func(State)),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.ctx, f.cancel = context.WithCancel(f.ctx)
	return f
}

// SetAddress makes address the active key. An empty address clears the
// state without issuing a lookup. Setting the current address again is a
// no-op; a failed lookup is only retried after the address changes.
func (f *Fetcher) SetAddress(address string) {
	f.mu.Lock()
	if f.closed || address == f.address {
		f.mu.Unlock()
		return
	}

	f.address = address
	f.generation++

	if address == "" {
		f.state = State{}
	} else {
		f.state = State{Loading: true}
		f.inflight.Add(1)
		metrics.Global.RecordLookupStarted()
		go f.run(f.generation, address)
	}

	f.enqueueLocked()
	f.mu.Unlock()

	f.drain()
}

// Address returns the active address, or "" when none.
func (f *Fetcher) Address() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

// State returns the current state.
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Current returns the active address together with its state, read under
// one lock so the pair is always consistent.
func (f *Fetcher) Current() (string, State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address, f.state
}

// Subscribe registers fn to receive every committed state change.
// Callbacks run in commit order and never concurrently with each other;
// they may call back into the Fetcher.
func (f *Fetcher) Subscribe(fn func(State)) (unsubscribe func()) {
	f.mu.Lock()
	id := f.nextSubID
	f.nextSubID++
	f.subscribers[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subscribers, id)
		f.mu.Unlock()
	}
}

// Wait blocks until no lookup is in flight.
// It must not be called concurrently with SetAddress.
func (f *Fetcher) Wait() {
	f.inflight.Wait()
}

// Close invalidates the active generation, cancels in-flight requests and
// waits for them to return. Later calls to SetAddress are ignored.
func (f *Fetcher) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.generation++
	f.mu.Unlock()

	f.cancel()
	f.inflight.Wait()
}

func (f *Fetcher) run(generation uint64, address string) {
	defer f.inflight.Done()

	ctx, span := f.tracer.Start(f.ctx, "profile.Fetch",
		trace.WithAttributes(
			attribute.String("ethos.wallet", address),
			attribute.Int64("profile.generation", int64(generation)), //nolint:gosec // generation counts activations
		),
	)
	defer span.End()

	profile, err := f.lookup.GetUserByEverywhereWallet(ctx, address)
	if err != nil {
		f.logger.Error("Error fetching Ethos user: %v", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, message(err))
	}

	f.mu.Lock()
	if generation != f.generation {
		f.mu.Unlock()
		metrics.Global.RecordLookupDiscarded()
		span.SetAttributes(attribute.Bool("profile.stale", true))
		f.logger.Debug("discarding stale lookup for %s", address)
		return
	}

	if err != nil {
		f.state = State{Error: message(err)}
		metrics.Global.RecordLookupFailed()
	} else {
		f.state = State{Profile: profile}
	}
	f.enqueueLocked()
	f.mu.Unlock()

	f.drain()
}

// enqueueLocked queues the current state for delivery. f.mu must be held.
func (f *Fetcher) enqueueLocked() {
	if len(f.subscribers) == 0 {
		return
	}
	f.pending = append(f.pending, f.state)
}

// drain delivers queued states. Only one goroutine drains at a time; others
// leave their states in the queue for it.
func (f *Fetcher) drain() {
	f.mu.Lock()
	if f.dispatching {
		f.mu.Unlock()
		return
	}
	f.dispatching = true

	for len(f.pending) > 0 {
		st := f.pending[0]
		f.pending = f.pending[1:]

		subs := make([]func(State), 0, len(f.subscribers))
		for _, fn := range f.subscribers {
			subs = append(subs, fn)
		}
		f.mu.Unlock()

		for _, fn := range subs {
			fn(st)
		}

		f.mu.Lock()
	}

	f.dispatching = false
	f.mu.Unlock()
}

func message(err error) string {
	if msg := ethoserr.Message(err); msg != "" {
		return msg
	}
	return fallbackMessage
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
