package types

import (
	"fmt"
	"strconv"
	"time"
)

// ExecutionState is the lifecycle state the backend reports for a job.
type ExecutionState string

const (
	StatePending          ExecutionState = "QUERY_STATE_PENDING"
	StateExecuting        ExecutionState = "QUERY_STATE_EXECUTING"
	StateCompleted        ExecutionState = "QUERY_STATE_COMPLETED"
	StateCompletedPartial ExecutionState = "QUERY_STATE_COMPLETED_PARTIAL"
	StateFailed           ExecutionState = "QUERY_STATE_FAILED"
	StateCancelled        ExecutionState = "QUERY_STATE_CANCELLED"
	StateExpired          ExecutionState = "QUERY_STATE_EXPIRED"
)

// IsTerminal reports whether the state can no longer change.
func (s ExecutionState) IsTerminal() bool {
	switch s {
	case StateCompleted, StateCompletedPartial, StateFailed, StateCancelled, StateExpired:
		return true
	}
	return false
}

// timeParameterFormat is the date layout the backend expects for date
// parameters ("2006-01-02 15:04:05").
const timeParameterFormat = "2006-01-02 15:04:05"

// QueryParameter is a single named parameter attached to a query.
type QueryParameter struct {
	Key   string
	Value string
}

// TextParameter builds a plain-text query parameter.
func TextParameter(name, value string) QueryParameter {
	return QueryParameter{Key: name, Value: value}
}

// NumberParameter builds a numeric query parameter.
func NumberParameter(name string, value float64) QueryParameter {
	return QueryParameter{Key: name, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

// DateParameter builds a date query parameter in the backend's layout.
func DateParameter(name string, value time.Time) QueryParameter {
	return QueryParameter{Key: name, Value: value.Format(timeParameterFormat)}
}

// EnumParameter builds a list-choice query parameter. It fails when value is
// not one of options.
func EnumParameter(name, value string, options []string) (QueryParameter, error) {
	for _, o := range options {
		if o == value {
			return QueryParameter{Key: name, Value: value}, nil
		}
	}
	return QueryParameter{}, fmt.Errorf("enum parameter %q: value %q not in options %v", name, value, options)
}

// Query identifies a saved query and the parameters to run it with.
type Query struct {
	QueryID int
	Name    string
	Params  []QueryParameter
}

// ParameterMap renders the parameters in the wire format the execute
// endpoint expects.
func (q Query) ParameterMap() map[string]any {
	if len(q.Params) == 0 {
		return nil
	}
	m := make(map[string]any, len(q.Params))
	for _, p := range q.Params {
		m[p.Key] = p.Value
	}
	return m
}
