// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package upstream

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/catalog-gateway/pkg/types"
)

// RetryBaseDelay is the base duration for the jittered backoff between
// retries. Tests override this to avoid real sleeps. The reference
// deployment retried immediately (same-datacenter upstream); a small
// doubling delay is used here instead.
var RetryBaseDelay = 250 * time.Millisecond

// Client performs retried, timeout-bounded GET requests against the
// upstream catalog API.
type Client struct {
	base    string
	http    *http.Client
	cfg     types.UpstreamConfig
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient builds a client for cfg.BaseURL. Zero config fields fall
// back to the package defaults.
func NewClient(cfg types.UpstreamConfig, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = types.DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = types.DefaultUserAgent
	}
	if cfg.RetryBudget <= 0 {
		cfg.RetryBudget = types.DefaultRetryBudget
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		base:    strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{},
		cfg:     cfg,
		limiter: limiter,
		log:     log,
	}
}

// Do executes the request, retrying transient failures up to the budget,
// and classifies the terminal result. It never returns an error.
func (c *Client) Do(ctx context.Context, req Request) Outcome {
	retries := req.Retries
	if retries == UseClientDefaults {
		retries = c.cfg.RetryBudget
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.cfg.Timeout
	}

	reqURL := c.base + req.Endpoint
	if qs := req.queryString(); qs != "" {
		reqURL += "?" + qs
	}

	var out Outcome
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if err := c.waitBackoff(ctx, attempt); err != nil {
				out.Attempts = attempt
				return out
			}
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return Outcome{Status: StatusTimeout, Attempts: attempt + 1}
			}
		}

		c.log.Debug().Str("url", reqURL).Int("attempt", attempt+1).Msg("api request")

		var retryable bool
		out, retryable = c.attempt(ctx, reqURL, timeout)
		out.Attempts = attempt + 1

		if out.OK() || !retryable || attempt >= retries {
			if !out.OK() {
				c.log.Error().Str("url", reqURL).
					Stringer("status", out.Status).
					Int("http_status", out.HTTPStatus).
					Int("attempts", out.Attempts).
					Msg("api request failed")
			}
			return out
		}

		c.log.Warn().Str("url", reqURL).
			Stringer("status", out.Status).
			Int("attempt", attempt+1).
			Msg("transient failure, retrying")
	}
}

// attempt makes one HTTP attempt and classifies it. The second return
// value reports whether the failure class is transient.
func (c *Client) attempt(ctx context.Context, reqURL string, timeout time.Duration) (Outcome, bool) {
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(actx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{Status: StatusUnexpectedFailure}, false
	}
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return classifyTransport(err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return classifyTransport(readErr)
		}
		if !json.Valid(body) {
			return Outcome{Status: StatusMalformedBody, HTTPStatus: resp.StatusCode}, false
		}
		return Outcome{Status: StatusSuccess, Payload: body, HTTPStatus: resp.StatusCode}, false

	case resp.StatusCode == http.StatusNotFound:
		return Outcome{Status: StatusNotFound, HTTPStatus: resp.StatusCode}, false

	case resp.StatusCode >= 500:
		return Outcome{Status: StatusServerError, HTTPStatus: resp.StatusCode}, true

	default:
		return Outcome{Status: StatusUnexpectedFailure, HTTPStatus: resp.StatusCode}, false
	}
}

// classifyTransport maps a transport-level error onto the outcome
// taxonomy. Timeouts and connection-level faults are transient.
func classifyTransport(err error) (Outcome, bool) {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return Outcome{Status: StatusTimeout}, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF) {
		return Outcome{Status: StatusConnectionFailure}, true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return Outcome{Status: StatusConnectionFailure}, true
	}

	return Outcome{Status: StatusUnexpectedFailure}, false
}

// waitBackoff sleeps for the jittered backoff before retry n (n >= 1).
func (c *Client) waitBackoff(ctx context.Context, n int) error {
	if RetryBaseDelay <= 0 {
		return nil
	}
	delay := RetryBaseDelay << (n - 1)
	// Jitter in [0.5, 1.5) of the nominal delay.
	delay = time.Duration(float64(delay) * (0.5 + rand.Float64()))

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
