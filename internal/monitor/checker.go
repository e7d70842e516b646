package monitor

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// DefaultProbeTimeout bounds a single reachability probe.
const DefaultProbeTimeout = 3 * time.Second

// Checker reports whether a URL answers at all.
type Checker interface {
	IsReachable(ctx context.Context, url string) bool
}

// HTTPChecker probes URLs with a HEAD request, following redirects.
type HTTPChecker struct {
	client  *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// NewHTTPChecker creates a checker whose probes give up after timeout.
func NewHTTPChecker(timeout time.Duration, log zerolog.Logger) *HTTPChecker {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HTTPChecker{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		log:     log,
	}
}

// IsReachable issues one HEAD request. Any response counts, whatever its
// status; connection failures, timeouts and unsupported schemes do not.
func (c *HTTPChecker) IsReachable(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		c.log.Debug().Err(err).Str("url", url).Msg("cannot build probe request")
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("url", url).Msg("url unreachable")
		return false
	}
	defer resp.Body.Close()

	c.log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("url reachable")
	return true
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(ctx context.Context, url string) bool

// IsReachable calls f.
func (f CheckerFunc) IsReachable(ctx context.Context, url string) bool {
	return f(ctx, url)
}
