package dune

// Convenience methods combining the execution endpoints: submit a query,
// poll its status until a terminal state, then fetch the results.

import (
	"context"
	"time"
)

// RunQuery executes query, waits until the execution completes, and returns
// the decoded results. The status is polled at the client's ping interval;
// cancel ctx to stop waiting. A failed execution yields a *QueryFailedError;
// cancelled and expired jobs still have their (possibly partial) results
// fetched.
func (c *Client) RunQuery(ctx context.Context, query Query, performance string) (*ResultsResponse, error) {
	jobID, err := c.refresh(ctx, query, performance)
	if err != nil {
		return nil, err
	}
	return c.GetExecutionResults(ctx, jobID, nil)
}

// RunQueryCSV is RunQuery with the results fetched in CSV format, ready to
// feed into encoding/csv or a dataframe library.
func (c *Client) RunQueryCSV(ctx context.Context, query Query, performance string) ([]byte, error) {
	jobID, err := c.refresh(ctx, query, performance)
	if err != nil {
		return nil, err
	}
	return c.GetExecutionResultsCSV(ctx, jobID, nil)
}

// refresh submits query and blocks until the job reaches a terminal state,
// returning the job ID on success.
func (c *Client) refresh(ctx context.Context, query Query, performance string) (string, error) {
	exec, err := c.ExecuteQuery(ctx, query, performance)
	if err != nil {
		return "", err
	}

	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		status, err := c.GetExecutionStatus(ctx, exec.ExecutionID)
		if err != nil {
			return "", err
		}
		c.log.Debug().Str("execution_id", exec.ExecutionID).Str("state", string(status.State)).Msg("poll")
		if status.State.IsTerminal() {
			// Only a failed execution is an error; cancelled and expired
			// jobs may still have results worth fetching.
			if status.State == StateFailed {
				return "", &QueryFailedError{QueryID: query.QueryID, State: status.State}
			}
			return exec.ExecutionID, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
