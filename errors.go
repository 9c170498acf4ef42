package dune

import (
	"errors"
	"fmt"

	"github.com/duneanalytics/dune-client-go/internal/apierr"
	"github.com/duneanalytics/dune-client-go/internal/types"
)

// Public error aliases so SDK consumers can import only the dune package.
type (
	// HTTPError is a transport-level failure: a non-2xx response whose body
	// was not a JSON payload.
	HTTPError = apierr.HTTPError
	// DuneError is a domain-level failure: a JSON response that lacked the
	// shape an operation requires.
	DuneError = apierr.DuneError
)

// QueryFailedError is returned by RunQuery when the execution terminates in
// the failed state.
type QueryFailedError struct {
	QueryID int
	State   types.ExecutionState
}

func (e *QueryFailedError) Error() string {
	return fmt.Sprintf("query %d failed with state %s", e.QueryID, e.State)
}

// AsHTTPError reports whether err is (or wraps) an *HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// AsDuneError reports whether err is (or wraps) a *DuneError.
func AsDuneError(err error) (*DuneError, bool) {
	var de *DuneError
	ok := errors.As(err, &de)
	return de, ok
}
