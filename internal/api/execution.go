package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/duneanalytics/dune-client-go/internal/apierr"
	"github.com/duneanalytics/dune-client-go/internal/router"
	"github.com/duneanalytics/dune-client-go/internal/types"
)

var errMissingExecutionID = errors.New("response has no execution_id field")

// ExecuteQuery submits query for execution on the given performance tier.
func ExecuteQuery(ctx context.Context, rt *router.Router, query types.Query, performance string) (*types.ExecutionResponse, error) {
	req := types.ExecuteQueryRequest{
		QueryParameters: query.ParameterMap(),
		Performance:     performance,
	}
	raw, err := rt.Post(ctx, fmt.Sprintf("/query/%d/execute", query.QueryID), req)
	if err != nil {
		return nil, err
	}
	var out types.ExecutionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apierr.NewDuneError("ExecutionResponse", raw, err)
	}
	if out.ExecutionID == "" {
		return nil, apierr.NewDuneError("ExecutionResponse", raw, errMissingExecutionID)
	}
	return &out, nil
}

// CancelExecution cancels the job and reports whether the backend accepted
// the cancellation.
func CancelExecution(ctx context.Context, rt *router.Router, jobID string) (bool, error) {
	raw, err := rt.Post(ctx, fmt.Sprintf("/execution/%s/cancel", jobID), nil)
	if err != nil {
		return false, err
	}
	var out types.CancelResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return false, apierr.NewDuneError("CancelResponse", raw, err)
	}
	if out.Success == nil {
		return false, apierr.NewDuneError("CancelResponse", raw, errMissingSuccess)
	}
	return *out.Success, nil
}

// GetExecutionStatus fetches the current lifecycle state of the job.
func GetExecutionStatus(ctx context.Context, rt *router.Router, jobID string) (*types.ExecutionStatusResponse, error) {
	raw, err := rt.Get(ctx, fmt.Sprintf("/execution/%s/status", jobID), nil)
	if err != nil {
		return nil, err
	}
	var out types.ExecutionStatusResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apierr.NewDuneError("ExecutionStatusResponse", raw, err)
	}
	if out.ExecutionID == "" {
		return nil, apierr.NewDuneError("ExecutionStatusResponse", raw, errMissingExecutionID)
	}
	return &out, nil
}

// GetExecutionResults fetches the result rows of a completed job, narrowed
// by filters when non-nil.
func GetExecutionResults(ctx context.Context, rt *router.Router, jobID string, filters *types.ResultFilters) (*types.ResultsResponse, error) {
	params, err := filters.Values()
	if err != nil {
		return nil, err
	}
	raw, err := rt.Get(ctx, fmt.Sprintf("/execution/%s/results", jobID), params)
	if err != nil {
		return nil, err
	}
	return resultsFromRaw(raw)
}

// GetExecutionResultsCSV fetches the results of a completed job as CSV
// bytes. It uses the raw response mode since the body is not JSON.
func GetExecutionResultsCSV(ctx context.Context, rt *router.Router, jobID string, filters *types.ResultFilters) ([]byte, error) {
	return csvBody(ctx, rt, fmt.Sprintf("/execution/%s/results/csv", jobID), filters)
}

// GetLatestResult fetches the most recent stored results of a query without
// triggering a new execution (and so without spending execution credits).
func GetLatestResult(ctx context.Context, rt *router.Router, queryID int, filters *types.ResultFilters) (*types.ResultsResponse, error) {
	params, err := filters.Values()
	if err != nil {
		return nil, err
	}
	raw, err := rt.Get(ctx, fmt.Sprintf("/query/%d/results", queryID), params)
	if err != nil {
		return nil, err
	}
	return resultsFromRaw(raw)
}

// DownloadCSV is GetLatestResult for the CSV endpoint.
func DownloadCSV(ctx context.Context, rt *router.Router, queryID int, filters *types.ResultFilters) ([]byte, error) {
	return csvBody(ctx, rt, fmt.Sprintf("/query/%d/results/csv", queryID), filters)
}

// resultsFromRaw decodes and validates the shared results payload shape.
func resultsFromRaw(raw json.RawMessage) (*types.ResultsResponse, error) {
	var out types.ResultsResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, apierr.NewDuneError("ResultsResponse", raw, err)
	}
	if out.ExecutionID == "" {
		return nil, apierr.NewDuneError("ResultsResponse", raw, errMissingExecutionID)
	}
	return &out, nil
}

// csvBody performs a raw GET against a CSV results route and drains the
// body, surfacing non-2xx statuses as transport errors.
func csvBody(ctx context.Context, rt *router.Router, route string, filters *types.ResultFilters) ([]byte, error) {
	params, err := filters.Values()
	if err != nil {
		return nil, err
	}
	resp, err := rt.GetRaw(ctx, route, params)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apierr.NewHTTPError(resp.StatusCode, string(body))
	}
	return body, nil
}
