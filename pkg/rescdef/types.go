/*
Copyright © 2025 The batchadmit authors
SPDX-License-Identifier: Apache-2.0
*/

// Package rescdef holds the immutable resource and reservation-attribute
// definition tables the verification engine validates values against.
package rescdef

import (
	"github.com/agnivade/levenshtein"
)

// DataType tags the wire datatype of a resource or attribute value.
type DataType string

// Supported datatypes.
const (
	TypeLong        DataType = "long"
	TypeFloat       DataType = "float"
	TypeBool        DataType = "boolean"
	TypeSize        DataType = "size"
	TypeDuration    DataType = "duration"
	TypeString      DataType = "string"
	TypeStringArray DataType = "string_array"
)

// IsValid reports whether t names a supported datatype.
func (t DataType) IsValid() bool {
	switch t {
	case TypeLong, TypeFloat, TypeBool, TypeSize, TypeDuration, TypeString, TypeStringArray:
		return true
	}
	return false
}

// ValuePolicy tags the semantic check applied after the datatype check
// succeeds. Policies form a closed set dispatched by the engine.
type ValuePolicy string

// Supported value policies.
const (
	PolicyNone           ValuePolicy = ""
	PolicyNonNegative    ValuePolicy = "non_negative"
	PolicyPositive       ValuePolicy = "positive"
	PolicySelectSpec     ValuePolicy = "select_spec"
	PolicyPreemptTargets ValuePolicy = "preempt_targets"
)

// IsValid reports whether p names a supported value policy.
func (p ValuePolicy) IsValid() bool {
	switch p {
	case PolicyNone, PolicyNonNegative, PolicyPositive, PolicySelectSpec, PolicyPreemptTargets:
		return true
	}
	return false
}

// Definition is the capability pair for one named resource or attribute:
// the datatype its values must parse as, and the value policy applied on
// top of a well-typed value.
type Definition struct {
	Name   string      `json:"name" yaml:"name"`
	Type   DataType    `json:"type" yaml:"type"`
	Policy ValuePolicy `json:"policy,omitempty" yaml:"policy,omitempty"`
}

// Table is an immutable name-to-definition mapping. Tables are built once
// at process start and never mutated afterwards, so concurrent lookups
// need no synchronization.
type Table struct {
	defs  map[string]*Definition
	names []string
}

// NewTable builds a table from a definition list. Later duplicates win,
// matching the overlay behavior of the data files.
func NewTable(defs []Definition) *Table {
	t := &Table{defs: make(map[string]*Definition, len(defs))}
	for i := range defs {
		d := defs[i]
		if _, seen := t.defs[d.Name]; !seen {
			t.names = append(t.names, d.Name)
		}
		t.defs[d.Name] = &d
	}
	return t
}

// Find looks up a definition by exact name. Absence is not an error:
// custom resources are known only to the server and verified there.
func (t *Table) Find(name string) *Definition {
	if t == nil {
		return nil
	}
	return t.defs[name]
}

// Len returns the number of definitions in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.defs)
}

// maxSuggestDistance bounds how far a name may be from a known definition
// before Closest stops suggesting it.
const maxSuggestDistance = 3

// Closest returns the known definition name nearest to name by edit
// distance, for "did you mean" diagnostics. It returns "" when nothing is
// plausibly close.
func (t *Table) Closest(name string) string {
	if t == nil || name == "" {
		return ""
	}
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, candidate := range t.names {
		d := levenshtein.ComputeDistance(name, candidate)
		if d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best
}
