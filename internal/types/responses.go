package types

import "time"

// ------------------------------
// Response Types
// ------------------------------

// UploadCSVResponse mirrors the upload endpoint response. Success is a
// pointer so a missing field can be told apart from an explicit false.
type UploadCSVResponse struct {
	Success *bool `json:"success"`
}

// CancelResponse mirrors the execution-cancel endpoint response
type CancelResponse struct {
	Success *bool `json:"success"`
}

// ExecutionResponse acknowledges a submitted execution
type ExecutionResponse struct {
	ExecutionID string         `json:"execution_id"`
	State       ExecutionState `json:"state"`
}

// ExecutionTimes collects the timestamps the backend reports for a job
type ExecutionTimes struct {
	SubmittedAt         time.Time  `json:"submitted_at"`
	ExecutionStartedAt  *time.Time `json:"execution_started_at,omitempty"`
	ExecutionEndedAt    *time.Time `json:"execution_ended_at,omitempty"`
	ExpiresAt           *time.Time `json:"expires_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	ResultExpiresAt     *time.Time `json:"result_expires_at,omitempty"`
	QueuePosition       *int       `json:"queue_position,omitempty"`
	ExecutionQueuedAt   *time.Time `json:"execution_queued_at,omitempty"`
	ResultLastUpdatedAt *time.Time `json:"result_last_updated_at,omitempty"`
}

// ExecutionStatusResponse mirrors the status endpoint response
type ExecutionStatusResponse struct {
	ExecutionID string         `json:"execution_id"`
	QueryID     int            `json:"query_id"`
	State       ExecutionState `json:"state"`
	ExecutionTimes
}

// ResultMetadata describes the shape and cost of a result set
type ResultMetadata struct {
	ColumnNames         []string `json:"column_names"`
	ColumnTypes         []string `json:"column_types,omitempty"`
	RowCount            int      `json:"row_count"`
	ResultSetBytes      int64    `json:"result_set_bytes"`
	TotalRowCount       int      `json:"total_row_count"`
	DatapointCount      int      `json:"datapoint_count"`
	PendingTimeMillis   *int64   `json:"pending_time_millis,omitempty"`
	ExecutionTimeMillis int64    `json:"execution_time_millis"`
}

// ExecutionResult carries the rows and their metadata
type ExecutionResult struct {
	Rows     []map[string]any `json:"rows"`
	Metadata ResultMetadata   `json:"metadata"`
}

// ResultsResponse mirrors the results endpoint response
type ResultsResponse struct {
	ExecutionID string           `json:"execution_id"`
	QueryID     int              `json:"query_id"`
	State       ExecutionState   `json:"state"`
	Result      *ExecutionResult `json:"result,omitempty"`
	ExecutionTimes
}
