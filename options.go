package dune

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file makes it easy to discover
// all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// Options run before the router is built, so every option sees the default
// field values. Options must be deterministic and side-effect free.
type Option func(*Client) error

// WithBaseURL overrides the API origin. Useful for test servers and proxies.
func WithBaseURL(u string) Option {
	return func(c *Client) error {
		if u == "" {
			return fmt.Errorf("base URL cannot be empty")
		}
		c.baseURL = u
		return nil
	}
}

// WithClientVersion overrides the API version path segment (default "v1").
func WithClientVersion(v string) Option {
	return func(c *Client) error {
		if v == "" {
			return fmt.Errorf("client version cannot be empty")
		}
		c.clientVersion = v
		return nil
	}
}

// WithPerformance sets the default engine tier for query executions.
func WithPerformance(tier string) Option {
	return func(c *Client) error {
		c.performance = tier
		return nil
	}
}

// WithRequestTimeout sets the underlying http.Client Timeout used by the SDK.
//
// Prefer per-request context deadlines where possible; this timeout is a
// coarse safety net that bounds the total time spent on a single HTTP call.
// The value must be greater than zero.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("request timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithHTTPClient replaces the whole http.Client. The caller owns timeout and
// transport configuration from then on.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) error {
		if h == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.http = h
		return nil
	}
}

// WithLogger attaches a zerolog logger; the router logs each request at
// debug level through it. The default logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.log = l
		return nil
	}
}

// WithPingInterval sets the pause between status polls in RunQuery and
// RunQueryCSV. The value must be greater than zero.
func WithPingInterval(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("ping interval must be > 0")
		}
		c.pingInterval = d
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// dumped to the global zerolog logger when enabled is true.
//
// Do not enable this option in production environments: the dumps include
// headers (the API key among them) and full bodies.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}
