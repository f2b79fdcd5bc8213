package search

import (
	"errors"
	"net/url"
	"testing"
)

// ============================================================================
// Request Tests
// ============================================================================

func TestRequest_SetReturnsCopy(t *testing.T) {
	t.Parallel()

	base := NewRequest().Set("game_id", 1)
	derived := base.Set("status", "FINAL")

	if base.Len() != 1 {
		t.Errorf("base request was modified: %v", base.Names())
	}
	if derived.Len() != 2 {
		t.Errorf("expected 2 fields, got %d", derived.Len())
	}
}

func TestRequest_SetNilLeavesFieldAbsent(t *testing.T) {
	t.Parallel()

	req := NewRequest().Set("game_id", 1).Set("game_id", nil)
	if _, ok := req.Get("game_id"); ok {
		t.Error("expected nil to remove the field")
	}
}

func TestSetOptional(t *testing.T) {
	t.Parallel()

	var missing *int
	year := 2000

	req := SetOptional(NewRequest(), "year", missing)
	req = SetOptional(req, "team_id", &year)

	if _, ok := req.Get("year"); ok {
		t.Error("nil pointer should not set a field")
	}
	if v, ok := req.Get("team_id"); !ok || v != 2000 {
		t.Errorf("expected team_id 2000, got %v", v)
	}
}

func TestRequest_NamesSorted(t *testing.T) {
	t.Parallel()

	req := NewRequest().Set("b", 1).Set("c", 1).Set("a", 1)
	names := req.Names()
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

// ============================================================================
// RequestFromQuery Tests
// ============================================================================

func TestRequestFromQuery_ParsesTypes(t *testing.T) {
	t.Parallel()

	q := url.Values{
		"game_id":       {"42"},
		"half":          {"bottom"},
		"extra_innings": {"true"},
		"game_date":     {"2024-05-05"},
		"status":        {""},
	}
	req, err := RequestFromQuery(testSpec, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Len() != 4 {
		t.Errorf("expected empty status to be dropped, got %v", req.Names())
	}

	cond, err := Compose(testSpec, req)
	if err != nil {
		t.Fatalf("unexpected compose error: %v", err)
	}
	rec := Record{"game_id": int64(42), "half": int64(1), "extra_innings": int64(1), "game_date": "2024-05-05"}
	if !cond.Matches(rec) {
		t.Errorf("expected %v to match %v", cond, rec)
	}
}

func TestRequestFromQuery_UnknownField(t *testing.T) {
	t.Parallel()

	_, err := RequestFromQuery(testSpec, url.Values{"page": {"2"}})
	var fieldErr *InvalidFieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != "page" {
		t.Errorf("expected InvalidFieldError for page, got %v", err)
	}
}

func TestRequestFromQuery_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		q    url.Values
	}{
		{"non-numeric integer", url.Values{"game_id": {"abc"}}},
		{"repeated field", url.Values{"game_id": {"1", "2"}}},
		{"non-boolean flag", url.Values{"extra_innings": {"maybe"}}},
		{"malformed date", url.Values{"game_date": {"05/05/2024"}}},
		{"unknown symbol", url.Values{"half": {"middle"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := RequestFromQuery(testSpec, tt.q)
			var valueErr *InvalidValueError
			if !errors.As(err, &valueErr) {
				t.Errorf("expected InvalidValueError, got %v", err)
			}
		})
	}
}

func TestRequestFromPairs(t *testing.T) {
	t.Parallel()

	req, err := RequestFromPairs(testSpec, []string{"game_id=3", "status=FINAL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Len() != 2 {
		t.Errorf("expected 2 fields, got %d", req.Len())
	}

	if _, err := RequestFromPairs(testSpec, []string{"game_id"}); err == nil {
		t.Error("expected error for missing '='")
	}
}
