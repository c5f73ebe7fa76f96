// SPDX-License-Identifier: MIT

package dists

import (
	"errors"
	"fmt"
)

// Sketch-parameter limits accepted by the distance provider.
const (
	MinKmer       = 9
	MaxKmer       = 31
	MinSketchSize = 100
	MaxSketchSize = 1_000_000

	DefaultMinKmer    = 9
	DefaultMaxKmer    = 29
	DefaultKmerStep   = 4
	DefaultSketchSize = 10_000
)

var (
	// ErrKmerRange reports k-mer lengths outside [MinKmer, MaxKmer] or not strictly ascending.
	ErrKmerRange = errors.New("dists: k-mer lengths out of range")
	// ErrSketchSize reports a sketch size outside [MinSketchSize, MaxSketchSize].
	ErrSketchSize = errors.New("dists: sketch size out of range")
)

// Sketch records how the distances were sketched.
type Sketch struct {
	KmerSizes  []int
	SketchSize int
}

// DefaultSketch returns k = 9, 13, ..., 29 at sketch size 10000.
func DefaultSketch() *Sketch {
	ks, _ := KmerRange(DefaultMinKmer, DefaultMaxKmer, DefaultKmerStep)

	return &Sketch{KmerSizes: ks, SketchSize: DefaultSketchSize}
}

// KmerRange expands min..max (inclusive) by step.
func KmerRange(minK, maxK, step int) ([]int, error) {
	if step <= 0 || minK >= maxK || minK < MinKmer || maxK > MaxKmer {
		return nil, fmt.Errorf("%w: min %d, max %d, step %d", ErrKmerRange, minK, maxK, step)
	}
	var ks []int
	for k := minK; k <= maxK; k += step {
		ks = append(ks, k)
	}

	return ks, nil
}

// Validate checks k-mer lengths (at least two, strictly ascending, within range)
// and the sketch size.
func (s *Sketch) Validate() error {
	if len(s.KmerSizes) < 2 {
		return fmt.Errorf("%w: need at least two k-mer lengths", ErrKmerRange)
	}
	for i, k := range s.KmerSizes {
		if k < MinKmer || k > MaxKmer {
			return fmt.Errorf("%w: %d", ErrKmerRange, k)
		}
		if i > 0 && k <= s.KmerSizes[i-1] {
			return fmt.Errorf("%w: %d after %d", ErrKmerRange, k, s.KmerSizes[i-1])
		}
	}
	if s.SketchSize < MinSketchSize || s.SketchSize > MaxSketchSize {
		return fmt.Errorf("%w: %d", ErrSketchSize, s.SketchSize)
	}

	return nil
}
