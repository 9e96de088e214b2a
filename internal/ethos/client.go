// Package ethos provides a client for the Ethos Network profile API.
package ethos

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/videvian/log-in-with-ethos/internal/metrics"
	"github.com/videvian/log-in-with-ethos/internal/telemetry"
	ethoserr "github.com/videvian/log-in-with-ethos/pkg/errors"
)

const (
	// DefaultBaseURL is the Ethos API base URL.
	DefaultBaseURL = "https://api.ethos.network"

	// DefaultClientID is sent in X-Ethos-Client when no identifier is configured.
	DefaultClientID = "log-in-with-ethos-example"

	// HeaderClient identifies the calling application to the Ethos API.
	HeaderClient = "X-Ethos-Client"

	// everywhereWalletPath is the user lookup by Ethos Everywhere wallet address.
	everywhereWalletPath = "/api/v2/user/by/ethos-everywhere-wallet/"

	// httpTimeout is the default HTTP request timeout.
	httpTimeout = 30 * time.Second

	// maxResponseBody is the maximum response body size to read (1 MB).
	maxResponseBody = 1 << 20
)

// Logger receives client diagnostics.
type Logger interface {
	Debug(format string, args ...any)
}

// Client is an Ethos API client.
type Client struct {
	baseURL     string
	clientID    string
	httpClient  *http.Client
	rateLimiter *RateLimiter
	tracer      trace.Tracer
	logger      Logger
}

// ClientOptions configures the Ethos client.
type ClientOptions struct {
	// BaseURL overrides the default Ethos API URL (useful for testing).
	BaseURL string
	// ClientID overrides the X-Ethos-Client identifier.
	ClientID string
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	// Timeout overrides the default HTTP timeout; ignored when HTTPClient is set.
	Timeout time.Duration
	// RateLimiter overrides the default limiter (5 req/s, burst 5).
	RateLimiter *RateLimiter
	// Logger receives request diagnostics.
	Logger Logger
}

// NewClient creates a new Ethos API client.
func NewClient(opts *ClientOptions) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		clientID: DefaultClientID,
		httpClient: &http.Client{
			Timeout: httpTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
		rateLimiter: NewRateLimiter(5, 5),
		tracer:      telemetry.Tracer(),
	}

	if opts != nil {
		if opts.BaseURL != "" {
			c.baseURL = strings.TrimRight(opts.BaseURL, "/")
		}
		if opts.ClientID != "" {
			c.clientID = opts.ClientID
		}
		if opts.Timeout > 0 {
			c.httpClient.Timeout = opts.Timeout
		}
		if opts.HTTPClient != nil {
			c.httpClient = opts.HTTPClient
		}
		if opts.RateLimiter != nil {
			c.rateLimiter = opts.RateLimiter
		}
		c.logger = opts.Logger
	}

	return c
}

// UserByEverywhereWalletURL returns the lookup URL for a wallet address.
func (c *Client) UserByEverywhereWalletURL(address string) string {
	return c.baseURL + everywhereWalletPath + url.PathEscape(address)
}

// GetUserByEverywhereWallet fetches the Ethos user linked to an Ethos
// Everywhere wallet address. Any non-2xx response is an error; a null body
// returns a nil profile and no error.
func (c *Client) GetUserByEverywhereWallet(ctx context.Context, address string) (*Profile, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ethoserr.WithDetails(ethoserr.ErrInvalidInput, map[string]string{
			"reason": "wallet address is empty",
		})
	}

	ctx, span := c.tracer.Start(ctx, "ethos.GetUserByEverywhereWallet",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("ethos.wallet", address)),
	)
	defer span.End()

	start := time.Now()
	profile, err := c.getUser(ctx, span, address)
	metrics.Global.RecordAPICall(time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, ethoserr.Message(err))
		return nil, err
	}
	return profile, nil
}

func (c *Client) getUser(ctx context.Context, span trace.Span, address string) (*Profile, error) {
	if err := c.rateLimiter.Wait(ctx, "ethos"); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.UserByEverywhereWalletURL(address)
	c.debug("GET %s", reqURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(HeaderClient, c.clientID)

	resp, err := c.httpClient.Do(httpReq) //nolint:gosec // G704: base URL comes from validated config
	if err != nil {
		return nil, ethoserr.WithCause(ethoserr.ErrNetworkError, err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, ethoserr.WithCause(ethoserr.ErrNetworkError, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ethoserr.WithDetails(ethoserr.ErrRateLimited, map[string]string{
			"status":      fmt.Sprintf("%d", resp.StatusCode),
			"retry_after": resp.Header.Get("Retry-After"),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, ethoserr.WithDetails(ethoserr.ErrAPIError, map[string]string{
			"status": fmt.Sprintf("%d", resp.StatusCode),
			"body":   truncateBody(string(body), 512),
		})
	}

	// A JSON null body means the wallet has no Ethos user.
	if strings.TrimSpace(string(body)) == "null" {
		c.debug("no ethos user for %s", address)
		return nil, nil //nolint:nilnil // absent user is not an error
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, ethoserr.WithCause(ethoserr.ErrMalformedResponse, err)
	}

	c.debug("fetched ethos user %d (score %d) for %s", profile.ID, profile.Score, address)
	return &profile, nil
}

func (c *Client) debug(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(format, args...)
	}
}

// truncateBody truncates a string to maxLen characters.
func truncateBody(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
