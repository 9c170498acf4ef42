package dune

import "github.com/duneanalytics/dune-client-go/internal/types"

// Public type aliases so SDK consumers can import only the dune package.

// Requests
type (
	UploadCSVRequest   = types.UploadCSVRequest
	CreateTableRequest = types.CreateTableRequest
	ColumnDefinition   = types.ColumnDefinition
	ResultFilters      = types.ResultFilters
)

// ErrSamplingWithFilters is returned by the results calls when a result
// sample is requested together with a row filter.
var ErrSamplingWithFilters = types.ErrSamplingWithFilters

// Queries
type (
	Query          = types.Query
	QueryParameter = types.QueryParameter
	ExecutionState = types.ExecutionState
)

// Responses
type (
	ExecutionResponse       = types.ExecutionResponse
	ExecutionStatusResponse = types.ExecutionStatusResponse
	ResultsResponse         = types.ResultsResponse
	ExecutionResult         = types.ExecutionResult
	ResultMetadata          = types.ResultMetadata
)

// Execution lifecycle states.
const (
	StatePending          = types.StatePending
	StateExecuting        = types.StateExecuting
	StateCompleted        = types.StateCompleted
	StateCompletedPartial = types.StateCompletedPartial
	StateFailed           = types.StateFailed
	StateCancelled        = types.StateCancelled
	StateExpired          = types.StateExpired
)

// Parameter constructors re-exported for convenience.
var (
	TextParameter   = types.TextParameter
	NumberParameter = types.NumberParameter
	DateParameter   = types.DateParameter
	EnumParameter   = types.EnumParameter
)
