// SPDX-License-Identifier: MIT

package persist

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/matrix"
)

// DistancesVersion is the current distance snapshot layout.
const DistancesVersion = 1

// distSnapshot is the gob layout of a dists.Record. Floats are stored verbatim.
type distSnapshot struct {
	Version    int
	RefList    []string
	QueryList  []string
	Comparison uint8

	// Dense storage: Rows × 2, row-major.
	Rows int
	Data []float64

	// Sparse storage.
	Sparse  bool
	SparseN int
	Row     []int
	Col     []int
	Val     []float64

	KmerSizes  []int
	SketchSize int
}

// EncodeDistances writes rec to w as a gob snapshot.
func EncodeDistances(w io.Writer, rec *dists.Record) error {
	if rec == nil {
		return errkind.Malformed("persist.EncodeDistances", "nil record")
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	s := distSnapshot{
		Version:    DistancesVersion,
		RefList:    rec.RefList,
		QueryList:  rec.QueryList,
		Comparison: uint8(rec.Comparison),
	}
	if rec.Dense != nil {
		s.Rows = rec.Dense.Rows()
		s.Data = rec.Dense.Data()
	}
	if sp := rec.Sparse; sp != nil {
		s.Sparse, s.SparseN, s.Row, s.Col, s.Val = true, sp.N, sp.Row, sp.Col, sp.Val
	}
	if rec.Sketch != nil {
		s.KmerSizes, s.SketchSize = rec.Sketch.KmerSizes, rec.Sketch.SketchSize
	}

	return gob.NewEncoder(w).Encode(&s)
}

// DecodeDistances reads one gob snapshot from r and validates it.
func DecodeDistances(r io.Reader) (*dists.Record, error) {
	const op = "persist.DecodeDistances"

	var s distSnapshot
	if err := gob.NewDecoder(r).Decode(&s); err != nil {
		return nil, errkind.Wrap(errkind.ErrMalformedInput, op, err)
	}
	if s.Version != DistancesVersion {
		return nil, errkind.Malformed(op, fmt.Sprintf("unsupported snapshot version %d", s.Version))
	}

	rec := &dists.Record{
		RefList:    s.RefList,
		QueryList:  s.QueryList,
		Comparison: dists.Comparison(s.Comparison),
	}
	// gob drops empty slices; a self record over zero or one isolate still needs lists.
	if rec.RefList == nil {
		rec.RefList = []string{}
	}
	if rec.QueryList == nil {
		rec.QueryList = []string{}
	}
	if s.Sparse {
		rec.Sparse = &matrix.Sparse{N: s.SparseN, Row: s.Row, Col: s.Col, Val: s.Val}
	} else {
		dense, err := matrix.NewDenseFrom(s.Rows, 2, s.Data)
		if err != nil {
			return nil, errkind.Wrap(errkind.ErrMalformedInput, op, err)
		}
		rec.Dense = dense
	}
	if len(s.KmerSizes) > 0 || s.SketchSize > 0 {
		rec.Sketch = &dists.Sketch{KmerSizes: s.KmerSizes, SketchSize: s.SketchSize}
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	return rec, nil
}

// WriteDistances atomically writes rec to path.
func WriteDistances(path string, rec *dists.Record) error {
	return WriteFileAtomic(path, func(w io.Writer) error { return EncodeDistances(w, rec) })
}

// ReadDistances reads a snapshot written by WriteDistances.
func ReadDistances(path string) (*dists.Record, error) {
	var rec *dists.Record
	err := readFile(path, func(r io.Reader) error {
		var derr error
		rec, derr = DecodeDistances(r)
		return derr
	})

	return rec, err
}
