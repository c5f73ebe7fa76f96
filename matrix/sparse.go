// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
)

// Sparse is a COO triplet list over an n×n symmetric pair space.
// Entries are normalized to Row < Col; entry order is insertion order.
type Sparse struct {
	N   int
	Row []int
	Col []int
	Val []float64
}

// NewSparse returns an empty COO matrix over n indices.
func NewSparse(n int) (*Sparse, error) {
	if n < 0 {
		return nil, ErrBadShape
	}

	return &Sparse{N: n}, nil
}

// Add appends the entry (i, j, w), swapping so that row < col.
func (s *Sparse) Add(i, j int, w float64) error {
	if i == j {
		return fmt.Errorf("Sparse.Add(%d,%d): %w", i, j, ErrDiagonal)
	}
	if i < 0 || j < 0 || i >= s.N || j >= s.N {
		return fmt.Errorf("Sparse.Add(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if i > j {
		i, j = j, i
	}
	s.Row = append(s.Row, i)
	s.Col = append(s.Col, j)
	s.Val = append(s.Val, w)

	return nil
}

// Len returns the number of stored entries.
func (s *Sparse) Len() int { return len(s.Val) }

// Validate checks slice lengths, bounds, diagonal entries and values.
func (s *Sparse) Validate() error {
	if len(s.Row) != len(s.Val) || len(s.Col) != len(s.Val) {
		return ErrDimensionMismatch
	}
	for k := range s.Val {
		i, j, v := s.Row[k], s.Col[k], s.Val[k]
		switch {
		case i < 0 || j < 0 || i >= s.N || j >= s.N:
			return fmt.Errorf("Sparse entry %d (%d,%d): %w", k, i, j, ErrOutOfRange)
		case i == j:
			return fmt.Errorf("Sparse entry %d (%d,%d): %w", k, i, j, ErrDiagonal)
		case math.IsNaN(v) || math.IsInf(v, 0):
			return fmt.Errorf("Sparse entry %d (%d,%d): %w", k, i, j, ErrNaNInf)
		case v < 0:
			return fmt.Errorf("Sparse entry %d (%d,%d): %w", k, i, j, ErrNegative)
		}
	}

	return nil
}

// Clone returns a deep copy.
func (s *Sparse) Clone() *Sparse {
	return &Sparse{
		N:   s.N,
		Row: append([]int(nil), s.Row...),
		Col: append([]int(nil), s.Col...),
		Val: append([]float64(nil), s.Val...),
	}
}
