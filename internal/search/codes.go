package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// CodeTable is a bijection between the integer codes a store persists and
// the symbols the API exposes. Tables are validated when built and never
// change afterwards.
type CodeTable struct {
	name    string
	symbols map[int64]string
	codes   map[string]int64
	order   []int64
}

// NewCodeTable builds a table from code to symbol. Symbols must be non-empty
// and unique.
func NewCodeTable(name string, entries map[int64]string) (*CodeTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("code table %s: no entries", name)
	}

	t := &CodeTable{
		name:    name,
		symbols: make(map[int64]string, len(entries)),
		codes:   make(map[string]int64, len(entries)),
		order:   make([]int64, 0, len(entries)),
	}

	for code, symbol := range entries {
		if symbol == "" {
			return nil, fmt.Errorf("code table %s: empty symbol for code %d", name, code)
		}
		if other, dup := t.codes[symbol]; dup {
			return nil, fmt.Errorf("code table %s: symbol %q used by codes %d and %d", name, symbol, other, code)
		}
		t.symbols[code] = symbol
		t.codes[symbol] = code
		t.order = append(t.order, code)
	}
	sort.Slice(t.order, func(i, j int) bool { return t.order[i] < t.order[j] })

	return t, nil
}

// MustCodeTable is NewCodeTable for package-level tables.
func MustCodeTable(name string, entries map[int64]string) *CodeTable {
	t, err := NewCodeTable(name, entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the table name.
func (t *CodeTable) Name() string {
	return t.name
}

// Symbol returns the symbol for a stored code.
func (t *CodeTable) Symbol(code int64) (string, bool) {
	s, ok := t.symbols[code]
	return s, ok
}

// Code returns the stored code for a symbol. Matching ignores case.
func (t *CodeTable) Code(symbol string) (int64, bool) {
	if c, ok := t.codes[symbol]; ok {
		return c, true
	}
	c, ok := t.codes[strings.ToUpper(symbol)]
	return c, ok
}

// Symbols lists the symbols in code order.
func (t *CodeTable) Symbols() []string {
	out := make([]string, len(t.order))
	for i, c := range t.order {
		out[i] = t.symbols[c]
	}
	return out
}

// Codes lists the codes in ascending order.
func (t *CodeTable) Codes() []int64 {
	out := make([]int64, len(t.order))
	copy(out, t.order)
	return out
}

// Covers checks that the table and the given symbol set are the same set,
// so an enumerated type cannot gain a value without a code or keep a code
// after its value is removed.
func (t *CodeTable) Covers(symbols ...string) error {
	var errs []error
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		seen[s] = true
		if _, ok := t.codes[s]; !ok {
			errs = append(errs, fmt.Errorf("code table %s: symbol %q has no code", t.name, s))
		}
	}
	for _, c := range t.order {
		if s := t.symbols[c]; !seen[s] {
			errs = append(errs, fmt.Errorf("code table %s: code %d maps to unknown symbol %q", t.name, c, s))
		}
	}
	return errors.Join(errs...)
}

// boolCodes stores booleans as 0 and 1.
var boolCodes = MustCodeTable("bool", map[int64]string{0: "false", 1: "true"})

// boolCode returns the stored code for b.
func boolCode(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
