// SPDX-License-Identifier: MIT

package dists

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/strainnet/matrix"
)

// Component selects which distance column weights graph edges.
type Component int

const (
	// Core is the core-genome distance (column 0).
	Core Component = iota
	// Accessory is the accessory-genome distance (column 1).
	Accessory
)

// String returns "core" or "accessory".
func (c Component) String() string {
	switch c {
	case Core:
		return "core"
	case Accessory:
		return "accessory"
	default:
		return fmt.Sprintf("component(%d)", int(c))
	}
}

// ParseComponent accepts "core" or "accessory" (case-insensitive).
func ParseComponent(s string) (Component, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "core":
		return Core, nil
	case "accessory", "acc":
		return Accessory, nil
	default:
		return 0, fmt.Errorf("dists: unknown distance component %q", s)
	}
}

// Comparison tags how the reference and query lists relate.
type Comparison uint8

const (
	// SelfComparison: all-vs-all over the reference list (query list == reference list).
	SelfComparison Comparison = iota + 1
	// ReferenceQueryComparison: every query against every reference.
	ReferenceQueryComparison
)

// String returns "self" or "ref-query".
func (c Comparison) String() string {
	switch c {
	case SelfComparison:
		return "self"
	case ReferenceQueryComparison:
		return "ref-query"
	default:
		return fmt.Sprintf("comparison(%d)", uint8(c))
	}
}

// Record is an ordered set of pairwise distances.
type Record struct {
	RefList    []string
	QueryList  []string
	Comparison Comparison

	// Dense has PairCount() rows and 2 columns (core, accessory). Nil when Sparse is set.
	Dense *matrix.Dense

	// Sparse holds COO triplets over RefList indices (self only). Nil when Dense is set.
	Sparse *matrix.Sparse

	// Sketch is optional sketch metadata.
	Sketch *Sketch
}

// Pair identifies the isolates behind one record row.
// For SelfComparison First = RefList[i], Second = RefList[j] (i < j).
// For ReferenceQueryComparison First is the query and Second the reference.
type Pair struct {
	Index  int
	First  string
	Second string
}
