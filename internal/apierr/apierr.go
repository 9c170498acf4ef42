// Package apierr defines the error taxonomy shared by all API routes:
// transport-level HTTP failures and domain-level response-shape failures.
package apierr

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// HTTPError reports a response that could not be treated as an API payload:
// a non-2xx status whose body was not valid JSON, or a malformed success
// response.
type HTTPError struct {
	StatusCode int
	Reason     string
	Body       string
}

// NewHTTPError builds an HTTPError from a status code, deriving the reason
// from the standard status text.
func NewHTTPError(statusCode int, body string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Reason:     http.StatusText(statusCode),
		Body:       body,
	}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, e.Reason)
}

// DuneError reports a JSON response that decoded fine but lacked the shape
// an operation requires. It keeps the offending payload for diagnostics.
type DuneError struct {
	Operation string          // expected response name, e.g. "UploadCSVResponse"
	Response  json.RawMessage // the payload that failed validation
	Err       error           // the originating decode or lookup failure
}

// NewDuneError wraps err with the operation name and offending payload.
func NewDuneError(operation string, response json.RawMessage, err error) *DuneError {
	return &DuneError{Operation: operation, Response: response, Err: err}
}

func (e *DuneError) Error() string {
	return fmt.Sprintf("can't build %s from %s", e.Operation, string(e.Response))
}

// Unwrap returns the underlying failure for error chain compatibility.
func (e *DuneError) Unwrap() error { return e.Err }
