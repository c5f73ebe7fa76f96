// SPDX-License-Identifier: MIT

package dists

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/matrix"
)

// NewSelf builds an all-vs-all record over ids. dense must have n(n-1)/2 rows and 2 columns.
func NewSelf(ids []string, dense *matrix.Dense) (*Record, error) {
	r := &Record{
		RefList:    ids,
		QueryList:  ids,
		Comparison: SelfComparison,
		Dense:      dense,
	}

	return r, r.Validate()
}

// NewSparseSelf builds an all-vs-all record stored as COO triplets over ids.
func NewSparseSelf(ids []string, sp *matrix.Sparse) (*Record, error) {
	r := &Record{
		RefList:    ids,
		QueryList:  ids,
		Comparison: SelfComparison,
		Sparse:     sp,
	}

	return r, r.Validate()
}

// NewReferenceQuery builds a query-vs-reference record. dense must have
// len(queries)·len(refs) rows (query-major) and 2 columns.
func NewReferenceQuery(refs, queries []string, dense *matrix.Dense) (*Record, error) {
	r := &Record{
		RefList:    refs,
		QueryList:  queries,
		Comparison: ReferenceQueryComparison,
		Dense:      dense,
	}

	return r, r.Validate()
}

// IsSelf reports whether r is an all-vs-all record.
func (r *Record) IsSelf() bool { return r.Comparison == SelfComparison }

// PairCount returns the number of pairs the dense layout enumerates.
// For sparse records it returns the number of stored triplets.
func (r *Record) PairCount() int {
	if r.Sparse != nil {
		return r.Sparse.Len()
	}
	switch r.Comparison {
	case SelfComparison:
		n := len(r.RefList)
		return n * (n - 1) / 2
	case ReferenceQueryComparison:
		return len(r.QueryList) * len(r.RefList)
	default:
		return 0
	}
}

// Validate checks IDs, the comparison tag, storage shape and values.
func (r *Record) Validate() error {
	const op = "dists.Validate"

	if err := uniqueIDs(op, r.RefList); err != nil {
		return err
	}
	if err := uniqueIDs(op, r.QueryList); err != nil {
		return err
	}

	switch r.Comparison {
	case SelfComparison:
		if !sameIDs(r.RefList, r.QueryList) {
			return errkind.Malformed(op, "self comparison requires query list == reference list")
		}
	case ReferenceQueryComparison:
		if r.Sparse != nil {
			return errkind.Malformed(op, "sparse storage is only defined for self comparisons")
		}
	default:
		return errkind.Malformed(op, fmt.Sprintf("unknown comparison %d", r.Comparison))
	}

	switch {
	case r.Dense != nil && r.Sparse != nil:
		return errkind.Malformed(op, "record has both dense and sparse storage")
	case r.Dense != nil:
		if r.Dense.Cols() != 2 {
			return errkind.Malformed(op, fmt.Sprintf("dense record needs 2 columns, got %d", r.Dense.Cols()))
		}
		if want := r.PairCount(); r.Dense.Rows() != want {
			return errkind.Malformed(op, fmt.Sprintf("dense record has %d rows, want %d", r.Dense.Rows(), want))
		}
		if err := r.Dense.Validate(); err != nil {
			return errkind.Wrap(errkind.ErrMalformedInput, op, err)
		}
	case r.Sparse != nil:
		if r.Sparse.N != len(r.RefList) {
			return errkind.Malformed(op, fmt.Sprintf("sparse record spans %d indices, reference list has %d", r.Sparse.N, len(r.RefList)))
		}
		if err := r.Sparse.Validate(); err != nil {
			return errkind.Wrap(errkind.ErrMalformedInput, op, err)
		}
	default:
		return errkind.Malformed(op, "record has no distance storage")
	}

	if r.Sketch != nil {
		if err := r.Sketch.Validate(); err != nil {
			return errkind.Wrap(errkind.ErrMalformedInput, op, err)
		}
	}

	return nil
}

// Pair returns the isolates behind dense row k.
func (r *Record) Pair(k int) (Pair, error) {
	if r.Dense == nil {
		return Pair{}, errkind.Malformed("dists.Pair", "pair enumeration needs dense storage")
	}
	if k < 0 || k >= r.PairCount() {
		return Pair{}, errkind.Malformed("dists.Pair", fmt.Sprintf("pair index %d out of range", k))
	}
	if r.Comparison == SelfComparison {
		i, j := SelfPairFromIndex(k, len(r.RefList))
		return Pair{Index: k, First: r.RefList[i], Second: r.RefList[j]}, nil
	}
	nr := len(r.RefList)

	return Pair{Index: k, First: r.QueryList[k/nr], Second: r.RefList[k%nr]}, nil
}

// Pairs enumerates every dense row in record order.
func (r *Record) Pairs() ([]Pair, error) {
	if r.Dense == nil {
		return nil, errkind.Malformed("dists.Pairs", "pair enumeration needs dense storage")
	}
	out := make([]Pair, 0, r.PairCount())
	switch r.Comparison {
	case SelfComparison:
		n, k := len(r.RefList), 0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				out = append(out, Pair{Index: k, First: r.RefList[i], Second: r.RefList[j]})
				k++
			}
		}
	case ReferenceQueryComparison:
		k := 0
		for _, q := range r.QueryList {
			for _, ref := range r.RefList {
				out = append(out, Pair{Index: k, First: q, Second: ref})
				k++
			}
		}
	}

	return out, nil
}

// SortedPairs returns Pairs with self pairs ordered by (lower ID, higher ID)
// and each First set to the lower ID, so the order never depends on the order
// of RefList. Index still names the dense row. Reference-query pairs keep the
// query input order.
func (r *Record) SortedPairs() ([]Pair, error) {
	out, err := r.Pairs()
	if err != nil || !r.IsSelf() {
		return out, err
	}
	for k := range out {
		if out[k].Second < out[k].First {
			out[k].First, out[k].Second = out[k].Second, out[k].First
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].First != out[j].First {
			return out[i].First < out[j].First
		}
		return out[i].Second < out[j].Second
	})

	return out, nil
}

// Distance returns the selected component of dense row k.
func (r *Record) Distance(k int, c Component) (float64, error) {
	if r.Dense == nil {
		return 0, errkind.Malformed("dists.Distance", "distance lookup needs dense storage")
	}
	if c != Core && c != Accessory {
		return 0, errkind.Malformed("dists.Distance", c.String())
	}

	return r.Dense.At(k, int(c))
}

// ToSparse converts a dense self record into COO triplets of component c, one per pair.
func (r *Record) ToSparse(c Component) (*matrix.Sparse, error) {
	if !r.IsSelf() {
		return nil, errkind.Inconsistent("dists.ToSparse", "sparse conversion needs a self comparison")
	}
	if r.Sparse != nil {
		return r.Sparse.Clone(), nil
	}
	if r.Dense == nil {
		return nil, errkind.Malformed("dists.ToSparse", "record has no distance storage")
	}
	col, err := r.Dense.Column(int(c))
	if err != nil {
		return nil, errkind.Wrap(errkind.ErrMalformedInput, "dists.ToSparse", err)
	}
	n := len(r.RefList)
	sp, _ := matrix.NewSparse(n)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if err = sp.Add(i, j, col[k]); err != nil {
				return nil, err
			}
			k++
		}
	}

	return sp, nil
}

// SelfPairIndex returns the row of pair (i, j) in an n-isolate self record. i != j.
func SelfPairIndex(i, j, n int) int {
	if i > j {
		i, j = j, i
	}

	return i*n - i*(i+1)/2 + (j - i - 1)
}

// SelfPairFromIndex inverts SelfPairIndex.
func SelfPairFromIndex(k, n int) (i, j int) {
	for i = 0; i < n-1; i++ {
		rowLen := n - i - 1
		if k < rowLen {
			return i, i + 1 + k
		}
		k -= rowLen
	}

	return -1, -1
}

var errEmptyID = errors.New("empty isolate ID")

func uniqueIDs(op string, ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	var dups []string
	for pos, id := range ids {
		if id == "" {
			return errkind.Wrap(errkind.ErrMalformedInput, op, fmt.Errorf("%w at position %d", errEmptyID, pos))
		}
		if _, ok := seen[id]; ok {
			dups = append(dups, id)
			continue
		}
		seen[id] = struct{}{}
	}
	if len(dups) > 0 {
		return errkind.Malformed(op, "duplicate isolate IDs", dups...)
	}

	return nil
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
