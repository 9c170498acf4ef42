// Package router implements the shared request dispatch used by every API
// route: URL templating, auth headers, and uniform response handling.
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/duneanalytics/dune-client-go/internal/apierr"
)

// AuthHeader is the header the backend reads the API key from.
const AuthHeader = "x-dune-api-key"

// Config carries the immutable fields a Router is built from.
type Config struct {
	APIKey        string
	BaseURL       string
	ClientVersion string
	HTTPClient    *http.Client
	Logger        zerolog.Logger
}

// Router dispatches requests against the versioned API origin. It holds no
// per-call mutable state, so methods may be called concurrently.
type Router struct {
	apiKey  string
	baseURL string
	version string
	http    *http.Client
	log     zerolog.Logger
}

// New constructs a Router from cfg. HTTPClient must be non-nil.
func New(cfg Config) *Router {
	return &Router{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		version: cfg.ClientVersion,
		http:    cfg.HTTPClient,
		log:     cfg.Logger,
	}
}

// DefaultHeaders returns the headers attached to every outgoing request.
func (r *Router) DefaultHeaders() map[string]string {
	return map[string]string{AuthHeader: r.apiKey}
}

// RouteURL concatenates the base origin, the versioned API prefix and the
// route suffix.
func (r *Router) RouteURL(route string) string {
	return fmt.Sprintf("%s/api/%s%s", r.baseURL, r.version, route)
}

// Get issues a GET for route and returns the decoded JSON body.
func (r *Router) Get(ctx context.Context, route string, params url.Values) (json.RawMessage, error) {
	resp, err := r.GetRaw(ctx, route, params)
	if err != nil {
		return nil, err
	}
	return r.handleResponse(resp)
}

// GetRaw issues a GET for route and returns the unprocessed response.
// Callers that need headers or the body stream (e.g. CSV results) use this
// instead of Get and own closing the body.
func (r *Router) GetRaw(ctx context.Context, route string, params url.Values) (*http.Response, error) {
	u := r.RouteURL(route)
	if len(params) > 0 {
		u = u + "?" + params.Encode()
	}
	r.log.Debug().Str("url", u).Msg("GET")
	req, err := r.newRequest(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return nil, err
	}
	return r.do(req)
}

// Post issues a POST for route with payload JSON-encoded as the body and
// returns the decoded JSON response.
func (r *Router) Post(ctx context.Context, route string, payload any) (json.RawMessage, error) {
	u := r.RouteURL(route)
	var (
		reader      io.Reader
		contentType string
	)
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader, contentType = bytes.NewReader(body), "application/json"
	}
	r.log.Debug().Str("url", u).Msg("POST")
	req, err := r.newRequest(ctx, http.MethodPost, u, reader, contentType)
	if err != nil {
		return nil, err
	}
	resp, err := r.do(req)
	if err != nil {
		return nil, err
	}
	return r.handleResponse(resp)
}

// PostBinary issues a POST for route with body sent as-is. contentType is
// attached when non-empty.
func (r *Router) PostBinary(ctx context.Context, route, contentType string, body io.Reader) (json.RawMessage, error) {
	u := r.RouteURL(route)
	r.log.Debug().Str("url", u).Str("content_type", contentType).Msg("POST binary")
	req, err := r.newRequest(ctx, http.MethodPost, u, body, contentType)
	if err != nil {
		return nil, err
	}
	resp, err := r.do(req)
	if err != nil {
		return nil, err
	}
	return r.handleResponse(resp)
}

// Patch issues a PATCH for route with payload JSON-encoded as the body.
func (r *Router) Patch(ctx context.Context, route string, payload any) (json.RawMessage, error) {
	u := r.RouteURL(route)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	r.log.Debug().Str("url", u).RawJSON("payload", body).Msg("PATCH")
	req, err := r.newRequest(ctx, http.MethodPatch, u, bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}
	resp, err := r.do(req)
	if err != nil {
		return nil, err
	}
	return r.handleResponse(resp)
}

// newRequest builds the request with the default headers attached.
func (r *Router) newRequest(ctx context.Context, method, url string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, v := range r.DefaultHeaders() {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do performs the call and records request metrics.
func (r *Router) do(req *http.Request) (*http.Response, error) {
	requestsTotal.WithLabelValues(req.Method).Inc()
	resp, err := r.http.Do(req)
	if err != nil {
		requestFailuresTotal.WithLabelValues(req.Method).Inc()
		return nil, err
	}
	return resp, nil
}

// handleResponse drains the body and returns it when it is valid JSON,
// whatever the status code; callers validate the decoded shape themselves.
// When the body is not JSON a non-2xx status becomes an HTTPError so the
// transport failure surfaces instead of a decode error.
func (r *Router) handleResponse(resp *http.Response) (json.RawMessage, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if json.Valid(body) {
		r.log.Debug().Int("status_code", resp.StatusCode).RawJSON("response", body).Msg("received response")
		return json.RawMessage(body), nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		requestFailuresTotal.WithLabelValues(resp.Request.Method).Inc()
		return nil, apierr.NewHTTPError(resp.StatusCode, string(body))
	}
	return nil, fmt.Errorf("decode response: invalid JSON body %q", string(body))
}
