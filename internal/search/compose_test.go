package search

import (
	"errors"
	"testing"
	"time"
)

var testHalves = MustCodeTable("half", map[int64]string{0: "TOP", 1: "BOTTOM"})

var testSpec = &Spec{
	Entity: "game_state",
	Fields: []Field{
		IntField("game_id"),
		StringField("status"),
		DateField("game_date"),
		EnumField("half", testHalves),
		BoolField("extra_innings"),
	},
	Key: []string{"game_id"},
}

// ============================================================================
// Compose Tests
// ============================================================================

func TestCompose_EmptyRequest_MatchesEverything(t *testing.T) {
	t.Parallel()

	cond, err := Compose(testSpec, NewRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cond.IsEmpty() {
		t.Errorf("expected no terms, got %d", cond.Len())
	}
	if !cond.Matches(Record{"game_id": int64(9)}) {
		t.Error("empty condition should match any record")
	}
	if cond.Entity() != "game_state" {
		t.Errorf("expected entity game_state, got %s", cond.Entity())
	}
}

func TestCompose_OnlySuppliedFieldsContribute(t *testing.T) {
	t.Parallel()

	req := NewRequest().Set("half", "BOTTOM").Set("game_id", 7)
	cond, err := Compose(testSpec, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	terms := cond.Terms()
	if len(terms) != 2 {
		t.Fatalf("expected 2 terms, got %d", len(terms))
	}
	// Declaration order, not insertion order.
	if terms[0].Field.Name != "game_id" || terms[1].Field.Name != "half" {
		t.Errorf("unexpected term order: %v", cond)
	}
	if terms[0].Value != int64(7) {
		t.Errorf("expected canonical int64 7, got %#v", terms[0].Value)
	}
	if terms[1].Value != int64(1) {
		t.Errorf("expected BOTTOM to encode as 1, got %#v", terms[1].Value)
	}
}

func TestCompose_CanonicalizesEveryType(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	req := NewRequest().
		Set("game_id", uint16(3)).
		Set("status", "FINAL").
		Set("game_date", day).
		Set("half", int64(0)).
		Set("extra_innings", true)

	cond, err := Compose(testSpec, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"game_id":       int64(3),
		"status":        "FINAL",
		"game_date":     "2024-04-01",
		"half":          int64(0),
		"extra_innings": int64(1),
	}
	for _, term := range cond.Terms() {
		if term.Value != want[term.Field.Name] {
			t.Errorf("%s: expected %#v, got %#v", term.Field.Name, want[term.Field.Name], term.Value)
		}
	}
}

func TestCompose_UnknownField_ReturnsFirstInLexicalOrder(t *testing.T) {
	t.Parallel()

	req := NewRequest().Set("zebra", 1).Set("apple", 2).Set("game_id", 1)
	_, err := Compose(testSpec, req)

	var fieldErr *InvalidFieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected InvalidFieldError, got %v", err)
	}
	if fieldErr.Field != "apple" {
		t.Errorf("expected apple, got %s", fieldErr.Field)
	}
}

func TestCompose_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		field string
		value any
	}{
		{"string for integer", "game_id", "seven"},
		{"fractional integer", "game_id", 7.5},
		{"integer for string", "status", 3},
		{"malformed date", "game_date", "04/01/2024"},
		{"unknown symbol", "half", "MIDDLE"},
		{"unknown code", "half", 5},
		{"bool code out of range", "extra_innings", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Compose(testSpec, NewRequest().Set(tt.field, tt.value))

			var valueErr *InvalidValueError
			if !errors.As(err, &valueErr) {
				t.Fatalf("expected InvalidValueError, got %v", err)
			}
			if valueErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, valueErr.Field)
			}
		})
	}
}

func TestCompose_IsDeterministic(t *testing.T) {
	t.Parallel()

	req := NewRequest().Set("status", "FINAL").Set("game_id", 1)
	a, _ := Compose(testSpec, req)
	b, _ := Compose(testSpec, req)

	if a.String() != b.String() {
		t.Errorf("expected identical conditions, got %q and %q", a, b)
	}
}

// ============================================================================
// Condition Tests
// ============================================================================

func TestCondition_Matches(t *testing.T) {
	t.Parallel()

	cond, err := Compose(testSpec, NewRequest().Set("game_id", 4).Set("extra_innings", false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{"exact", Record{"game_id": int64(4), "extra_innings": int64(0)}, true},
		{"float from json", Record{"game_id": float64(4), "extra_innings": float64(0)}, true},
		{"native bool", Record{"game_id": 4, "extra_innings": false}, true},
		{"different key", Record{"game_id": int64(5), "extra_innings": int64(0)}, false},
		{"missing field", Record{"game_id": int64(4)}, false},
		{"null field", Record{"game_id": int64(4), "extra_innings": nil}, false},
		{"garbage field", Record{"game_id": "four", "extra_innings": int64(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cond.Matches(tt.rec); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCondition_TermsReturnsCopy(t *testing.T) {
	t.Parallel()

	cond, _ := Compose(testSpec, NewRequest().Set("game_id", 1))
	terms := cond.Terms()
	terms[0].Value = int64(99)

	if cond.Terms()[0].Value != int64(1) {
		t.Error("condition was mutated through Terms")
	}
}

func TestCondition_String(t *testing.T) {
	t.Parallel()

	cond, _ := Compose(testSpec, NewRequest().Set("status", "FINAL").Set("game_id", 1))
	want := `game_state: game_id = 1 AND status = "FINAL"`
	if cond.String() != want {
		t.Errorf("expected %s, got %s", want, cond.String())
	}

	empty, _ := Compose(testSpec, NewRequest())
	if empty.String() != "game_state: *" {
		t.Errorf("unexpected empty rendering %s", empty.String())
	}
}
