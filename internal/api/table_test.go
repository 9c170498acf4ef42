package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/duneanalytics/dune-client-go/internal/apierr"
	"github.com/duneanalytics/dune-client-go/internal/router"
	"github.com/duneanalytics/dune-client-go/internal/types"
)

func newTestRouter(baseURL string, httpClient *http.Client) *router.Router {
	return router.New(router.Config{
		APIKey:        "test-key",
		BaseURL:       baseURL,
		ClientVersion: "v1",
		HTTPClient:    httpClient,
		Logger:        zerolog.Nop(),
	})
}

func TestUploadCSV_Success(t *testing.T) {
	t.Parallel()
	for _, want := range []bool{true, false} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v1/table/upload/csv" {
				t.Errorf("path = %q", r.URL.Path)
			}
			var req types.UploadCSVRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TableName != "my_table" {
				t.Errorf("unexpected request body: %+v (%v)", req, err)
			}
			_ = json.NewEncoder(w).Encode(map[string]bool{"success": want})
		}))
		got, err := UploadCSV(context.Background(), newTestRouter(srv.URL, srv.Client()), types.UploadCSVRequest{
			TableName: "my_table",
			Data:      "col_a,col_b\n1,2\n",
		})
		srv.Close()
		if err != nil {
			t.Fatalf("UploadCSV: %v", err)
		}
		if got != want {
			t.Fatalf("UploadCSV = %v, want %v", got, want)
		}
	}
}

func TestUploadCSV_MissingSuccessField(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"no subscription"}`))
	}))
	defer srv.Close()

	_, err := UploadCSV(context.Background(), newTestRouter(srv.URL, srv.Client()), types.UploadCSVRequest{TableName: "t"})
	var de *apierr.DuneError
	if !errors.As(err, &de) {
		t.Fatalf("expected *apierr.DuneError, got %v", err)
	}
	if de.Operation != "UploadCSVResponse" {
		t.Fatalf("operation = %q", de.Operation)
	}
	if string(de.Response) != `{"error":"no subscription"}` {
		t.Fatalf("offending payload not carried: %s", de.Response)
	}
}

func TestCreateTable(t *testing.T) {
	t.Parallel()
	var gotPath string
	var gotReq types.CreateTableRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_, _ = w.Write([]byte(`{"namespace":"my_ns","table_name":"interest_rates"}`))
	}))
	defer srv.Close()

	req := types.CreateTableRequest{
		Schema: []types.ColumnDefinition{
			{Name: "date", Type: "timestamp"},
			{Name: "dai_borrow_apy", Type: "double"},
		},
		Description: "interest rates",
	}
	raw, err := CreateTable(context.Background(), newTestRouter(srv.URL, srv.Client()), "my_ns", "interest_rates", req)
	if err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if gotPath != "/api/v1/table/my_ns/interest_rates/create" {
		t.Fatalf("path = %q", gotPath)
	}
	if len(gotReq.Schema) != 2 || gotReq.Schema[0].Name != "date" || gotReq.Description != "interest rates" {
		t.Fatalf("request body = %+v", gotReq)
	}
	var resp map[string]string
	if err := json.Unmarshal(raw, &resp); err != nil || resp["namespace"] != "my_ns" {
		t.Fatalf("response = %s (%v)", raw, err)
	}
}

func TestInsertTable_ContentTypes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		file string
		want string
	}{
		{"rows.csv", "text/csv"},
		{"rows.json", "application/x-ndjson"},
		{"rows.jsonl", "application/x-ndjson"},
		{"rows.parquet", ""},
	}
	for _, tc := range cases {
		t.Run(tc.file, func(t *testing.T) {
			var gotCT string
			var gotBody []byte
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotCT = r.Header.Get("Content-Type")
				gotBody = readAll(t, r)
				_, _ = w.Write([]byte(`{"rows_written":2}`))
			}))
			defer srv.Close()

			path := filepath.Join(t.TempDir(), tc.file)
			if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o600); err != nil {
				t.Fatal(err)
			}
			raw, err := InsertTable(context.Background(), newTestRouter(srv.URL, srv.Client()), "my_ns", "tbl", path)
			if err != nil {
				t.Fatalf("InsertTable: %v", err)
			}
			if gotCT != tc.want {
				t.Fatalf("content type = %q, want %q", gotCT, tc.want)
			}
			if string(gotBody) != "a,b\n1,2\n" {
				t.Fatalf("body = %q", gotBody)
			}
			var resp map[string]int
			if err := json.Unmarshal(raw, &resp); err != nil || resp["rows_written"] != 2 {
				t.Fatalf("response = %s (%v)", raw, err)
			}
		})
	}
}

func TestInsertTable_MissingFile(t *testing.T) {
	t.Parallel()
	rt := newTestRouter("http://127.0.0.1:0", http.DefaultClient)
	if _, err := InsertTable(context.Background(), rt, "ns", "tbl", filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestInsertTable_ClosesFileWhenPostFails(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // POST will fail with connection refused

	path := filepath.Join(t.TempDir(), "rows.csv")
	if err := os.WriteFile(path, []byte("a\n1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	before := openFDCount(t)
	if _, err := InsertTable(context.Background(), newTestRouter(srv.URL, http.DefaultClient), "ns", "tbl", path); err == nil {
		t.Fatal("expected POST failure")
	}
	if after := openFDCount(t); after > before {
		t.Fatalf("file descriptor leaked: %d -> %d", before, after)
	}
}

func TestContentTypeForPath(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"data.csv":        "text/csv",
		"data.json":       "application/x-ndjson",
		"data.jsonl":      "application/x-ndjson",
		"data.backup.csv": "text/csv",
		"data.txt":        "",
		"data":            "",
	}
	for path, want := range cases {
		if got := contentTypeForPath(path); got != want {
			t.Errorf("contentTypeForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func openFDCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skipf("cannot inspect open file descriptors: %v", err)
	}
	return len(entries)
}

func readAll(t *testing.T, r *http.Request) []byte {
	t.Helper()
	b, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read request body: %v", err)
	}
	return b
}
