package model

import (
	"errors"
	"sort"

	"github.com/forgo/statline/api/internal/search"
)

// Specs returns every searchable entity in API order
func Specs() []*search.Spec {
	return []*search.Spec{
		TeamSpec,
		ManagerSpec,
		PlayerGameSpec,
		PlayerStatsSpec,
		ScheduleSpec,
		TeamOffenseSpec,
		GameStateSpec,
	}
}

// SpecFor looks up an entity's spec by its stored name
func SpecFor(entity string) (*search.Spec, bool) {
	for _, s := range Specs() {
		if s.Entity == entity {
			return s, true
		}
	}
	return nil, false
}

// EntityNames lists stored entity names alphabetically
func EntityNames() []string {
	names := make([]string, 0, len(Specs()))
	for _, s := range Specs() {
		names = append(names, s.Entity)
	}
	sort.Strings(names)
	return names
}

// Validate checks every spec and code table. Called once at startup.
func Validate() error {
	return errors.Join(
		search.ValidateSpecs(Specs()...),
		ValidateCodeTables(),
	)
}

// FieldInfo describes one filter field for API introspection
type FieldInfo struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty,flow"`
}

// EntityInfo describes a searchable entity
type EntityInfo struct {
	Entity string      `json:"entity" yaml:"entity"`
	Fields []FieldInfo `json:"fields" yaml:"fields"`
	Key    []string    `json:"key" yaml:"key,flow"`
}

// DescribeSpec renders a spec for clients
func DescribeSpec(spec *search.Spec) EntityInfo {
	info := EntityInfo{
		Entity: spec.Entity,
		Fields: make([]FieldInfo, len(spec.Fields)),
		Key:    append([]string(nil), spec.Key...),
	}
	for i, f := range spec.Fields {
		fi := FieldInfo{Name: f.Name, Type: f.Type.String()}
		if f.Codes != nil {
			fi.Symbols = f.Codes.Symbols()
		}
		info.Fields[i] = fi
	}
	return info
}
