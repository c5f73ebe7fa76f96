// SPDX-License-Identifier: MIT

package dists_test

import (
	"testing"

	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selfRecord(t *testing.T, ids []string, rows ...[2]float64) *dists.Record {
	t.Helper()
	data := make([]float64, 0, 2*len(rows))
	for _, r := range rows {
		data = append(data, r[0], r[1])
	}
	m, err := matrix.NewDenseFrom(len(rows), 2, data)
	require.NoError(t, err)
	rec, err := dists.NewSelf(ids, m)
	require.NoError(t, err)

	return rec
}

func TestSelfPairOrdering(t *testing.T) {
	rec := selfRecord(t, []string{"A", "B", "C"},
		[2]float64{0.1, 0.2}, // A-B
		[2]float64{0.3, 0.4}, // A-C
		[2]float64{0.5, 0.6}, // B-C
	)
	assert.Equal(t, 3, rec.PairCount())

	pairs, err := rec.Pairs()
	require.NoError(t, err)
	assert.Equal(t, []dists.Pair{
		{Index: 0, First: "A", Second: "B"},
		{Index: 1, First: "A", Second: "C"},
		{Index: 2, First: "B", Second: "C"},
	}, pairs)

	p, err := rec.Pair(2)
	require.NoError(t, err)
	assert.Equal(t, pairs[2], p)

	d, err := rec.Distance(1, dists.Accessory)
	require.NoError(t, err)
	assert.Equal(t, 0.4, d)
}

func TestSortedPairs(t *testing.T) {
	rec := selfRecord(t, []string{"C", "A", "B"},
		[2]float64{0.1, 0.2}, // C-A
		[2]float64{0.3, 0.4}, // C-B
		[2]float64{0.5, 0.6}, // A-B
	)

	pairs, err := rec.SortedPairs()
	require.NoError(t, err)
	assert.Equal(t, []dists.Pair{
		{Index: 2, First: "A", Second: "B"},
		{Index: 0, First: "A", Second: "C"},
		{Index: 1, First: "B", Second: "C"},
	}, pairs)

	d, err := rec.Distance(pairs[0].Index, dists.Core)
	require.NoError(t, err)
	assert.Equal(t, 0.5, d)
}

func TestSelfPairIndexRoundTrip(t *testing.T) {
	const n = 7
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			assert.Equal(t, k, dists.SelfPairIndex(i, j, n))
			assert.Equal(t, k, dists.SelfPairIndex(j, i, n))
			gi, gj := dists.SelfPairFromIndex(k, n)
			assert.Equal(t, [2]int{i, j}, [2]int{gi, gj})
			k++
		}
	}
}

func TestReferenceQueryOrdering(t *testing.T) {
	m, err := matrix.NewDense(6, 2)
	require.NoError(t, err)
	rec, err := dists.NewReferenceQuery([]string{"R1", "R2", "R3"}, []string{"Q1", "Q2"}, m)
	require.NoError(t, err)

	p, err := rec.Pair(4) // q = 1, r = 1
	require.NoError(t, err)
	assert.Equal(t, dists.Pair{Index: 4, First: "Q2", Second: "R2"}, p)

	_, err = rec.ToSparse(dists.Core)
	assert.ErrorIs(t, err, errkind.ErrInconsistentGraph)
}

func TestValidate_Malformed(t *testing.T) {
	m, _ := matrix.NewDense(2, 2)
	_, err := dists.NewSelf([]string{"A", "B", "C"}, m)
	assert.ErrorIs(t, err, errkind.ErrMalformedInput, "row count must be n(n-1)/2")

	m, _ = matrix.NewDense(1, 2)
	_, err = dists.NewSelf([]string{"A", "A"}, m)
	require.ErrorIs(t, err, errkind.ErrMalformedInput)
	assert.Equal(t, []string{"A"}, errkind.IDs(err))

	bad, _ := matrix.NewDenseFrom(1, 2, []float64{-1, 0})
	_, err = dists.NewSelf([]string{"A", "B"}, bad)
	assert.ErrorIs(t, err, errkind.ErrMalformedInput)

	rec := &dists.Record{RefList: []string{"A"}, QueryList: []string{"A"}, Comparison: dists.SelfComparison}
	assert.ErrorIs(t, rec.Validate(), errkind.ErrMalformedInput)
}

func TestToSparse(t *testing.T) {
	rec := selfRecord(t, []string{"A", "B", "C"},
		[2]float64{0.1, 0.9},
		[2]float64{0.3, 0.9},
		[2]float64{0.2, 0.9},
	)
	sp, err := rec.ToSparse(dists.Core)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.3, 0.2}, sp.Val)

	assert.Equal(t, []int{0, 0, 1}, sp.Row)
	assert.Equal(t, []int{1, 2, 2}, sp.Col)

	sparse, err := dists.NewSparseSelf(rec.RefList, sp)
	require.NoError(t, err)
	assert.Equal(t, 3, sparse.PairCount())
}

func TestSketch(t *testing.T) {
	s := dists.DefaultSketch()
	assert.Equal(t, []int{9, 13, 17, 21, 25, 29}, s.KmerSizes)
	assert.NoError(t, s.Validate())

	assert.ErrorIs(t, (&dists.Sketch{KmerSizes: []int{9, 33}, SketchSize: 1000}).Validate(), dists.ErrKmerRange)
	assert.ErrorIs(t, (&dists.Sketch{KmerSizes: []int{13, 9}, SketchSize: 1000}).Validate(), dists.ErrKmerRange)
	assert.ErrorIs(t, (&dists.Sketch{KmerSizes: []int{9, 13}, SketchSize: 99}).Validate(), dists.ErrSketchSize)

	_, err := dists.KmerRange(13, 9, 2)
	assert.ErrorIs(t, err, dists.ErrKmerRange)

	c, err := dists.ParseComponent("Accessory")
	require.NoError(t, err)
	assert.Equal(t, dists.Accessory, c)
	_, err = dists.ParseComponent("both")
	assert.Error(t, err)
}
