// SPDX-License-Identifier: MIT

package labels

import (
	"fmt"

	"github.com/exascience/pargo/parallel"

	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/errkind"
)

// Boundary slopes.
const (
	// SlopeCore thresholds the core distance only: within iff core < XMax.
	SlopeCore = 0
	// SlopeAccessory thresholds the accessory distance only: within iff accessory < YMax.
	SlopeAccessory = 1
	// SlopeTriangle uses the line through (XMax, 0) and (0, YMax): within iff the
	// point lies strictly inside the triangle with the origin.
	SlopeTriangle = 2
)

// Boundary is a fixed linear decision boundary in (core, accessory) space.
type Boundary struct {
	Slope int
	XMax  float64
	YMax  float64
}

// Validate checks the slope mode and that the intercepts it uses are positive.
func (b Boundary) Validate() error {
	switch b.Slope {
	case SlopeCore:
		if b.XMax <= 0 {
			return fmt.Errorf("labels: boundary x intercept must be > 0, got %g", b.XMax)
		}
	case SlopeAccessory:
		if b.YMax <= 0 {
			return fmt.Errorf("labels: boundary y intercept must be > 0, got %g", b.YMax)
		}
	case SlopeTriangle:
		if b.XMax <= 0 || b.YMax <= 0 {
			return fmt.Errorf("labels: boundary intercepts must be > 0, got (%g, %g)", b.XMax, b.YMax)
		}
	default:
		return fmt.Errorf("labels: unknown boundary slope %d", b.Slope)
	}

	return nil
}

// Side returns -1 inside the boundary (within strain), 0 exactly on it, +1 outside.
func (b Boundary) Side(core, acc float64) int {
	var v float64
	switch b.Slope {
	case SlopeCore:
		v = core - b.XMax
	case SlopeAccessory:
		v = acc - b.YMax
	default:
		v = core*b.YMax + acc*b.XMax - b.XMax*b.YMax
	}
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// Label returns WithinStrain strictly inside the boundary; points on it are BetweenStrain.
func (b Boundary) Label(core, acc float64) Label {
	if b.Side(core, acc) < 0 {
		return WithinStrain
	}

	return BetweenStrain
}

// Classify labels every dense row of rec. threads bounds the number of pargo
// batches (0 lets pargo pick). Returns the labels and the within count.
func (b Boundary) Classify(rec *dists.Record, threads int) ([]Label, int, error) {
	const op = "labels.Classify"
	if err := b.Validate(); err != nil {
		return nil, 0, errkind.Wrap(errkind.ErrMalformedInput, op, err)
	}
	if rec == nil || rec.Dense == nil {
		return nil, 0, errkind.Malformed(op, "classification needs a dense distance record")
	}
	if threads < 0 {
		threads = 0
	}

	n := rec.Dense.Rows()
	out := make([]Label, n)
	if n == 0 {
		return out, 0, nil
	}
	data := rec.Dense.Data()
	within := parallel.RangeReduceInt(0, n, threads,
		func(low, high int) int {
			count := 0
			for k := low; k < high; k++ {
				out[k] = b.Label(data[2*k], data[2*k+1])
				if out[k] == WithinStrain {
					count++
				}
			}
			return count
		},
		func(x, y int) int { return x + y },
	)

	return out, within, nil
}
