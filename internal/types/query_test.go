package types

import (
	"testing"
	"time"
)

func TestExecutionState_IsTerminal(t *testing.T) {
	t.Parallel()
	terminal := []ExecutionState{StateCompleted, StateCompletedPartial, StateFailed, StateCancelled, StateExpired}
	for _, s := range terminal {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []ExecutionState{StatePending, StateExecuting, ExecutionState("QUERY_STATE_UNKNOWN")} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestParameterConstructors(t *testing.T) {
	t.Parallel()
	if p := TextParameter("TextField", "Plain Text"); p.Value != "Plain Text" {
		t.Fatalf("text = %+v", p)
	}
	if p := NumberParameter("NumberField", 22); p.Value != "22" {
		t.Fatalf("number = %+v", p)
	}
	when := time.Date(2022, 5, 4, 0, 0, 0, 0, time.UTC)
	if p := DateParameter("DateField", when); p.Value != "2022-05-04 00:00:00" {
		t.Fatalf("date = %+v", p)
	}
}

func TestEnumParameter(t *testing.T) {
	t.Parallel()
	p, err := EnumParameter("ListField", "Option 1", []string{"Option 1", "Option 2"})
	if err != nil || p.Value != "Option 1" {
		t.Fatalf("enum = %+v, %v", p, err)
	}
	if _, err := EnumParameter("ListField", "Option 3", []string{"Option 1", "Option 2"}); err == nil {
		t.Fatal("expected error for value outside options")
	}
}

func TestResultFilters_Values(t *testing.T) {
	t.Parallel()
	var nilFilters *ResultFilters
	if v, err := nilFilters.Values(); err != nil || v != nil {
		t.Fatalf("nil filters = %v, %v", v, err)
	}

	n := 100
	f := &ResultFilters{
		Columns:     []string{"a", `b"c`},
		SortBy:      []string{"a desc"},
		SampleCount: &n,
	}
	v, err := f.Values()
	if err != nil {
		t.Fatalf("Values: %v", err)
	}
	if got := v.Get("columns"); got != `"a","b\"c"` {
		t.Fatalf("columns = %q", got)
	}
	if got := v.Get("sort_by"); got != "a desc" {
		t.Fatalf("sort_by = %q", got)
	}
	if got := v.Get("sample_count"); got != "100" {
		t.Fatalf("sample_count = %q", got)
	}

	bad := &ResultFilters{SampleCount: &n, Filters: "x > 1"}
	if _, err := bad.Values(); err != ErrSamplingWithFilters {
		t.Fatalf("expected ErrSamplingWithFilters, got %v", err)
	}
}

func TestParameterMap(t *testing.T) {
	t.Parallel()
	q := Query{
		QueryID: 1,
		Params: []QueryParameter{
			TextParameter("a", "x"),
			NumberParameter("b", 2),
		},
	}
	m := q.ParameterMap()
	if len(m) != 2 || m["a"] != "x" || m["b"] != "2" {
		t.Fatalf("map = %v", m)
	}
	if (Query{QueryID: 1}).ParameterMap() != nil {
		t.Fatal("empty params must yield nil map")
	}
}
