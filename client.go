// Package dune is a client SDK for the Dune Analytics HTTP API. It covers
// the table endpoints (CSV upload, table creation, table insertion) and the
// query execution endpoints, with typed request and response shapes.
package dune

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/duneanalytics/dune-client-go/internal/api"
	"github.com/duneanalytics/dune-client-go/internal/router"
)

const (
	// DefaultBaseURL is the production API origin.
	DefaultBaseURL = "https://api.dune.com"
	// DefaultClientVersion selects the versioned API path segment.
	DefaultClientVersion = "v1"
	// DefaultPerformance is the engine tier used when none is given.
	DefaultPerformance = "medium"
	// DefaultRequestTimeout bounds each HTTP call.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultPingInterval is the pause between status polls in RunQuery.
	DefaultPingInterval = 5 * time.Second
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is the public entry point. It is immutable after construction and
// safe for concurrent use; it holds no per-call state.
type Client struct {
	apiKey        string
	baseURL       string
	clientVersion string
	performance   string
	pingInterval  time.Duration

	http *http.Client
	log  zerolog.Logger
	rt   *router.Router
}

// New constructs a Client for the given API key. Additional knobs are set
// via functional options.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("api key cannot be empty")
	}

	c := &Client{
		apiKey:        apiKey,
		baseURL:       DefaultBaseURL,
		clientVersion: DefaultClientVersion,
		performance:   DefaultPerformance,
		pingInterval:  DefaultPingInterval,
		http:          &http.Client{Timeout: DefaultRequestTimeout},
		log:           zerolog.Nop(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.rt = router.New(router.Config{
		APIKey:        c.apiKey,
		BaseURL:       c.baseURL,
		ClientVersion: c.clientVersion,
		HTTPClient:    c.http,
		Logger:        c.log,
	})
	return c, nil
}

// envSettings is the environment-variable construction surface, prefixed
// DUNE_API (DUNE_API_KEY, DUNE_API_BASE_URL, DUNE_API_REQUEST_TIMEOUT).
type envSettings struct {
	Key            string        `required:"true"`
	BaseURL        string        `envconfig:"BASE_URL" default:"https://api.dune.com"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
}

// NewFromEnv constructs a Client from DUNE_API_* environment variables.
// DUNE_API_KEY is required. Explicit options run after the environment
// settings and override them; in particular WithHTTPClient replaces the
// whole client, discarding the DUNE_API_REQUEST_TIMEOUT already applied to
// the default one, so pair it with WithRequestTimeout when both are wanted.
func NewFromEnv(opts ...Option) (*Client, error) {
	var s envSettings
	if err := envconfig.Process("dune_api", &s); err != nil {
		return nil, err
	}
	base := []Option{
		WithBaseURL(s.BaseURL),
		WithRequestTimeout(s.RequestTimeout),
	}
	return New(s.Key, append(base, opts...)...)
}

// --------------------------------------------------------------------
// Table API
// --------------------------------------------------------------------

// UploadCSV uploads a CSV payload as a named table and reports whether the
// backend accepted it. A well-formed JSON response without a success field
// yields a *DuneError.
func (c *Client) UploadCSV(ctx context.Context, req UploadCSVRequest) (bool, error) {
	return api.UploadCSV(ctx, c.rt, req)
}

// CreateTable creates an empty table with the given schema under namespace.
// The backend owns all validation (privacy, duplicate names, column names).
func (c *Client) CreateTable(ctx context.Context, namespace, tableName string, req CreateTableRequest) (json.RawMessage, error) {
	return api.CreateTable(ctx, c.rt, namespace, tableName, req)
}

// InsertTable streams the file at path into an existing table. The content
// type is derived from the file extension (.csv, .json, .jsonl).
func (c *Client) InsertTable(ctx context.Context, namespace, tableName, path string) (json.RawMessage, error) {
	return api.InsertTable(ctx, c.rt, namespace, tableName, path)
}

// --------------------------------------------------------------------
// Execution API
// --------------------------------------------------------------------

// ExecuteQuery submits query for execution. An empty performance falls back
// to the client's configured tier.
func (c *Client) ExecuteQuery(ctx context.Context, query Query, performance string) (*ExecutionResponse, error) {
	if performance == "" {
		performance = c.performance
	}
	c.log.Info().Int("query_id", query.QueryID).Str("performance", performance).Msg("executing query")
	return api.ExecuteQuery(ctx, c.rt, query, performance)
}

// CancelExecution cancels the job identified by jobID.
func (c *Client) CancelExecution(ctx context.Context, jobID string) (bool, error) {
	return api.CancelExecution(ctx, c.rt, jobID)
}

// GetExecutionStatus fetches the current state of the job.
func (c *Client) GetExecutionStatus(ctx context.Context, jobID string) (*ExecutionStatusResponse, error) {
	return api.GetExecutionStatus(ctx, c.rt, jobID)
}

// GetExecutionResults fetches the results of a completed job. A nil filters
// returns the full result set.
func (c *Client) GetExecutionResults(ctx context.Context, jobID string, filters *ResultFilters) (*ResultsResponse, error) {
	return api.GetExecutionResults(ctx, c.rt, jobID, filters)
}

// GetExecutionResultsCSV fetches the results of a completed job as raw CSV.
func (c *Client) GetExecutionResultsCSV(ctx context.Context, jobID string, filters *ResultFilters) ([]byte, error) {
	return api.GetExecutionResultsCSV(ctx, c.rt, jobID, filters)
}

// GetLatestResult fetches the most recent stored results of a query without
// triggering a new execution, so no execution credits are spent.
func (c *Client) GetLatestResult(ctx context.Context, queryID int, filters *ResultFilters) (*ResultsResponse, error) {
	return api.GetLatestResult(ctx, c.rt, queryID, filters)
}

// DownloadCSV is GetLatestResult for the CSV endpoint.
func (c *Client) DownloadCSV(ctx context.Context, queryID int, filters *ResultFilters) ([]byte, error) {
	return api.DownloadCSV(ctx, c.rt, queryID, filters)
}
