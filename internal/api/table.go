package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/duneanalytics/dune-client-go/internal/apierr"
	"github.com/duneanalytics/dune-client-go/internal/router"
	"github.com/duneanalytics/dune-client-go/internal/types"
)

var errMissingSuccess = errors.New("response has no success field")

// UploadCSV uploads a CSV payload as a named table. The backend enforces
// size, column-name and privacy rules; nothing is validated client-side.
func UploadCSV(ctx context.Context, rt *router.Router, req types.UploadCSVRequest) (bool, error) {
	raw, err := rt.Post(ctx, "/table/upload/csv", req)
	if err != nil {
		return false, err
	}
	var out types.UploadCSVResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return false, apierr.NewDuneError("UploadCSVResponse", raw, err)
	}
	if out.Success == nil {
		return false, apierr.NewDuneError("UploadCSVResponse", raw, errMissingSuccess)
	}
	return *out.Success, nil
}

// CreateTable creates an empty table with the given schema under namespace.
// The backend rejects private tables and duplicate names.
func CreateTable(ctx context.Context, rt *router.Router, namespace, tableName string, req types.CreateTableRequest) (json.RawMessage, error) {
	return rt.Post(ctx, fmt.Sprintf("/table/%s/%s/create", namespace, tableName), req)
}

// InsertTable streams the file at path into an existing table. The file is
// closed on every exit path, including when the POST fails.
func InsertTable(ctx context.Context, rt *router.Router, namespace, tableName, path string) (json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	route := fmt.Sprintf("/table/%s/%s/insert", namespace, tableName)
	return rt.PostBinary(ctx, route, contentTypeForPath(path), f)
}

// contentTypeForPath maps an insert file's extension to the content type the
// backend expects. Unknown extensions get no content type at all.
func contentTypeForPath(path string) string {
	parts := strings.Split(path, ".")
	switch parts[len(parts)-1] {
	case "csv":
		return "text/csv"
	case "json", "jsonl":
		return "application/x-ndjson"
	default:
		return ""
	}
}
