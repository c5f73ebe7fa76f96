// SPDX-License-Identifier: MIT

// Package labels turns classifier output into per-pair strain labels.
//
// A pair labelled WithinStrain becomes an edge of the relatedness graph; a pair
// labelled BetweenStrain does not. Labels come either from a mixture-model
// assignment vector (FromAssignments + WithinLabel) or from a fixed linear
// decision boundary applied to the distances (Boundary.Classify).
package labels

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/strainnet/errkind"
)

// Label classifies one isolate pair.
type Label uint8

const (
	// BetweenStrain pairs are not linked.
	BetweenStrain Label = iota
	// WithinStrain pairs are linked by an edge.
	WithinStrain
)

// String returns "between" or "within".
func (l Label) String() string {
	if l == WithinStrain {
		return "within"
	}

	return "between"
}

// ErrNoWithinComponent is returned by WithinLabel when no component has any assignment.
var ErrNoWithinComponent = errors.New("labels: no populated mixture component")

// FromAssignments maps a per-pair component assignment vector to labels: pairs
// assigned to within become WithinStrain, everything else BetweenStrain.
func FromAssignments(assignments []int, within int) []Label {
	out := make([]Label, len(assignments))
	for k, a := range assignments {
		if a == within {
			out[k] = WithinStrain
		}
	}

	return out
}

// WithinLabel picks the mixture component whose mean (core, accessory) lies closest
// to the origin, among components that received at least one assignment.
func WithinLabel(means [][2]float64, assignments []int) (int, error) {
	used := make(map[int]bool, len(means))
	for _, a := range assignments {
		used[a] = true
	}

	best, bestDist := -1, math.Inf(1)
	for c, m := range means {
		if !used[c] {
			continue
		}
		if d := math.Hypot(m[0], m[1]); d < bestDist {
			best, bestDist = c, d
		}
	}
	if best < 0 {
		return 0, ErrNoWithinComponent
	}

	return best, nil
}

// Count returns the number of WithinStrain labels.
func Count(lbls []Label) int {
	n := 0
	for _, l := range lbls {
		if l == WithinStrain {
			n++
		}
	}

	return n
}

// CheckLength fails with ErrMalformedInput when len(lbls) != pairs.
func CheckLength(op string, lbls []Label, pairs int) error {
	if len(lbls) != pairs {
		return errkind.Malformed(op, fmt.Sprintf("%d labels for %d pairs", len(lbls), pairs))
	}

	return nil
}
