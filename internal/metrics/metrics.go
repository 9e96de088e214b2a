// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds application metrics using atomic counters for thread safety.
type Metrics struct {
	// Ethos API metrics
	apiCallsTotal   atomic.Int64
	apiErrorsTotal  atomic.Int64
	apiLatencyNanos atomic.Int64

	// Profile fetcher metrics
	lookupsStarted   atomic.Int64
	lookupsFailed    atomic.Int64
	lookupsDiscarded atomic.Int64

	// Session metrics
	logins  atomic.Int64
	logouts atomic.Int64
}

// Global is the global metrics instance.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordAPICall records an Ethos API call with its duration and success status.
func (m *Metrics) RecordAPICall(duration time.Duration, err error) {
	m.apiCallsTotal.Add(1)
	m.apiLatencyNanos.Add(duration.Nanoseconds())

	if err != nil {
		m.apiErrorsTotal.Add(1)
	}
}

// RecordLookupStarted records a profile lookup issued by a fetcher.
func (m *Metrics) RecordLookupStarted() {
	m.lookupsStarted.Add(1)
}

// RecordLookupFailed records a lookup whose failure was committed to state.
func (m *Metrics) RecordLookupFailed() {
	m.lookupsFailed.Add(1)
}

// RecordLookupDiscarded records a superseded lookup whose result was dropped.
func (m *Metrics) RecordLookupDiscarded() {
	m.lookupsDiscarded.Add(1)
}

// RecordLogin records a successful session login.
func (m *Metrics) RecordLogin() {
	m.logins.Add(1)
}

// RecordLogout records a session logout.
func (m *Metrics) RecordLogout() {
	m.logouts.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	APICallsTotal    int64 `json:"api_calls_total"`
	APIErrorsTotal   int64 `json:"api_errors_total"`
	APILatencyNanos  int64 `json:"api_latency_nanos"`
	LookupsStarted   int64 `json:"lookups_started"`
	LookupsFailed    int64 `json:"lookups_failed"`
	LookupsDiscarded int64 `json:"lookups_discarded"`
	Logins           int64 `json:"logins"`
	Logouts          int64 `json:"logouts"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		APICallsTotal:    m.apiCallsTotal.Load(),
		APIErrorsTotal:   m.apiErrorsTotal.Load(),
		APILatencyNanos:  m.apiLatencyNanos.Load(),
		LookupsStarted:   m.lookupsStarted.Load(),
		LookupsFailed:    m.lookupsFailed.Load(),
		LookupsDiscarded: m.lookupsDiscarded.Load(),
		Logins:           m.logins.Load(),
		Logouts:          m.logouts.Load(),
	}
}

// APILatencyAvgMs returns the average API latency in milliseconds.
// Returns 0 if no calls have been made.
func (m *Metrics) APILatencyAvgMs() float64 {
	calls := m.apiCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	return float64(m.apiLatencyNanos.Load()) / float64(calls) / 1e6
}

// Reset resets all metrics to zero.
func (m *Metrics) Reset() {
	m.apiCallsTotal.Store(0)
	m.apiErrorsTotal.Store(0)
	m.apiLatencyNanos.Store(0)
	m.lookupsStarted.Store(0)
	m.lookupsFailed.Store(0)
	m.lookupsDiscarded.Store(0)
	m.logins.Store(0)
	m.logouts.Store(0)
}
