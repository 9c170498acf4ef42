package types

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// ------------------------------
// Request Types
// ------------------------------

// UploadCSVRequest holds parameters for a CSV upload
type UploadCSVRequest struct {
	TableName   string `json:"table_name"`
	Description string `json:"description"`
	Data        string `json:"data"`
	IsPrivate   bool   `json:"is_private"`
}

// ColumnDefinition describes one column of a table schema
type ColumnDefinition struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateTableRequest holds parameters for creating an empty table
type CreateTableRequest struct {
	Schema      []ColumnDefinition `json:"schema"`
	Description string             `json:"description"`
}

// ExecuteQueryRequest holds parameters for a query execution
type ExecuteQueryRequest struct {
	QueryParameters map[string]any `json:"query_parameters,omitempty"`
	Performance     string         `json:"performance"`
}

// ResultFilters narrows a result set server-side: a column projection, a
// SQL-like row filter, a sort order, or a random sample. A nil *ResultFilters
// means the full result set.
type ResultFilters struct {
	Columns     []string
	Filters     string
	SortBy      []string
	SampleCount *int
}

// ErrSamplingWithFilters rejects the one combination the backend cannot
// serve deterministically.
var ErrSamplingWithFilters = errors.New("sampling cannot be combined with filters")

// Values renders the filters as URL query parameters. Column names are
// quoted with inner quotes escaped so names containing commas survive the
// comma-joined encoding.
func (f *ResultFilters) Values() (url.Values, error) {
	if f == nil {
		return nil, nil
	}
	if f.SampleCount != nil && f.Filters != "" {
		return nil, ErrSamplingWithFilters
	}
	params := url.Values{}
	if len(f.Columns) > 0 {
		quoted := make([]string, len(f.Columns))
		for i, col := range f.Columns {
			quoted[i] = `"` + strings.ReplaceAll(col, `"`, `\"`) + `"`
		}
		params.Set("columns", strings.Join(quoted, ","))
	}
	if f.SampleCount != nil {
		params.Set("sample_count", strconv.Itoa(*f.SampleCount))
	}
	if f.Filters != "" {
		params.Set("filters", f.Filters)
	}
	if len(f.SortBy) > 0 {
		params.Set("sort_by", strings.Join(f.SortBy, ","))
	}
	return params, nil
}
