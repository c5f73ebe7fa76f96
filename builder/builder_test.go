// SPDX-License-Identifier: MIT

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/strainnet/builder"
	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/labels"
	"github.com/katalvlaran/strainnet/matrix"
)

// fourIsolates returns a self record over A..D with core = 0.01·(k+1), accessory = 0.1·(k+1).
func fourIsolates(t *testing.T) *dists.Record {
	t.Helper()
	ids := []string{"A", "B", "C", "D"}
	n := len(ids) * (len(ids) - 1) / 2
	data := make([]float64, 0, 2*n)
	for k := 0; k < n; k++ {
		data = append(data, 0.01*float64(k+1), 0.1*float64(k+1))
	}
	m, err := matrix.NewDenseFrom(n, 2, data)
	require.NoError(t, err)
	rec, err := dists.NewSelf(ids, m)
	require.NoError(t, err)

	return rec
}

func TestFromLabels(t *testing.T) {
	rec := fourIsolates(t)
	// pairs: AB AC AD BC BD CD
	lbls := labels.FromAssignments([]int{1, 0, 0, 1, 0, 0}, 1)

	g, err := builder.FromLabels(rec, lbls)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, g.Vertices())
	assert.Equal(t, 2, g.EdgeCount())

	e, err := g.EdgeBetween("B", "C")
	require.NoError(t, err)
	assert.InDelta(t, 0.04, e.Weight, 1e-12)
	assert.Equal(t, uint64(2), e.Seq)

	g, err = builder.FromLabels(rec, lbls, builder.WithComponent(dists.Accessory))
	require.NoError(t, err)
	e, err = g.EdgeBetween("A", "B")
	require.NoError(t, err)
	assert.InDelta(t, 0.1, e.Weight, 1e-12)

	s := builder.Summarize(g)
	assert.Equal(t, builder.Summary{Vertices: 4, Edges: 2, Components: 2, Density: 2.0 / 6.0}, s)
}

func TestFromLabels_ReferenceOrder(t *testing.T) {
	// The same three equal-weight within pairs, listed in two isolate orders.
	build := func(ids []string) []string {
		m, err := matrix.NewDenseFrom(3, 2, []float64{0.01, 0.1, 0.01, 0.1, 0.01, 0.1})
		require.NoError(t, err)
		rec, err := dists.NewSelf(ids, m)
		require.NoError(t, err)
		g, err := builder.FromLabels(rec, labels.FromAssignments([]int{1, 1, 1}, 1))
		require.NoError(t, err)

		var got []string
		for _, e := range g.Edges() {
			got = append(got, e.From+"-"+e.To)
		}
		return got
	}

	want := []string{"A-B", "A-C", "B-C"}
	assert.Equal(t, want, build([]string{"A", "B", "C"}))
	assert.Equal(t, want, build([]string{"C", "A", "B"}))
	assert.Equal(t, want, build([]string{"B", "C", "A"}))
}

func TestFromSparse_ReferenceOrder(t *testing.T) {
	sp, err := matrix.NewSparse(3)
	require.NoError(t, err)
	require.NoError(t, sp.Add(0, 1, 0.3)) // C-A
	require.NoError(t, sp.Add(1, 2, 0.3)) // A-B
	rec, err := dists.NewSparseSelf([]string{"C", "A", "B"}, sp)
	require.NoError(t, err)

	g, err := builder.FromSparse(rec)
	require.NoError(t, err)
	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, [2]string{"A", "B"}, [2]string{edges[0].From, edges[0].To})
	assert.Equal(t, [2]string{"A", "C"}, [2]string{edges[1].From, edges[1].To})
}

func TestFromLabels_LengthMismatch(t *testing.T) {
	_, err := builder.FromLabels(fourIsolates(t), make([]labels.Label, 5))
	assert.ErrorIs(t, err, errkind.ErrMalformedInput)

	_, err = builder.FromLabels(nil, nil)
	assert.ErrorIs(t, err, errkind.ErrMalformedInput)
}

func TestFromLabels_ReferenceQuery(t *testing.T) {
	m, err := matrix.NewDenseFrom(4, 2, []float64{
		0.01, 0.1, // Q1-R1
		0.5, 0.5, // Q1-R2
		0.5, 0.5, // Q2-R1
		0.02, 0.2, // Q2-R2
	})
	require.NoError(t, err)
	rec, err := dists.NewReferenceQuery([]string{"R1", "R2"}, []string{"Q1", "Q2"}, m)
	require.NoError(t, err)

	b := labels.Boundary{Slope: labels.SlopeCore, XMax: 0.1}
	lbls, within, err := b.Classify(rec, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, within)

	g, err := builder.FromLabels(rec, lbls)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R2", "Q1", "Q2"}, g.VerticesInOrder())
	assert.True(t, g.HasEdge("R1", "Q1"))
	assert.True(t, g.HasEdge("Q2", "R2"))
	assert.False(t, g.HasEdge("Q1", "R2"))
}

func TestFromEdgeList(t *testing.T) {
	g, err := builder.FromEdgeList([]string{"A", "B", "C"}, []builder.Edge{
		{From: "A", To: "B", Weight: 0.3},
		{From: "B", To: "A", Weight: 0.1},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())
	e, _ := g.EdgeBetween("A", "B")
	assert.Equal(t, 0.1, e.Weight)

	_, err = builder.FromEdgeList([]string{"A", "B"}, []builder.Edge{{From: "A", To: "X"}, {From: "Y", To: "X"}})
	require.ErrorIs(t, err, errkind.ErrMalformedInput)
	assert.Equal(t, []string{"X", "Y"}, errkind.IDs(err))

	_, err = builder.FromEdgeList([]string{"A", "A"}, nil)
	assert.ErrorIs(t, err, errkind.ErrMalformedInput)

	_, err = builder.FromEdgeList([]string{"A", "B"}, []builder.Edge{{From: "A", To: "A"}})
	require.ErrorIs(t, err, errkind.ErrMalformedInput)
	assert.Equal(t, []string{"A"}, errkind.IDs(err))

	_, err = builder.FromEdgeList([]string{"A", "B"}, []builder.Edge{{From: "A", To: "B", Weight: -1}})
	assert.ErrorIs(t, err, errkind.ErrMalformedInput)
}

func TestFromSparse(t *testing.T) {
	sp, err := matrix.NewSparse(3)
	require.NoError(t, err)
	require.NoError(t, sp.Add(0, 2, 0.4))
	require.NoError(t, sp.Add(1, 0, 0.2))
	rec, err := dists.NewSparseSelf([]string{"A", "B", "C"}, sp)
	require.NoError(t, err)

	g, err := builder.FromSparse(rec)
	require.NoError(t, err)
	edges := g.Edges()
	require.Len(t, edges, 2)
	assert.Equal(t, [2]string{"A", "B"}, [2]string{edges[0].From, edges[0].To})
	assert.Equal(t, 0.2, edges[0].Weight)
	assert.Equal(t, [2]string{"A", "C"}, [2]string{edges[1].From, edges[1].To})

	// Dense self records are converted pair by pair.
	g, err = builder.FromSparse(fourIsolates(t))
	require.NoError(t, err)
	assert.Equal(t, 6, g.EdgeCount())
}

func TestSummaryIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	_, err := builder.FromEdgeList([]string{"A", "B", "C"},
		[]builder.Edge{{From: "A", To: "B", Weight: 0.1}},
		builder.WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.FilterMessage("network summary").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(3), fields["vertices"])
	assert.Equal(t, int64(2), fields["components"])
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { builder.WithLogger(nil) })
	assert.Panics(t, func() { builder.WithComponent(dists.Component(7)) })
}
