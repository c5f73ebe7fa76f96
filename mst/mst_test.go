// SPDX-License-Identifier: MIT

package mst_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/mst"
)

// buildTriangle returns (A,B,1.0), (B,C,2.0), (A,C,1.5).
func buildTriangle(t testing.TB) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, e := range []struct {
		a, b string
		w    float64
	}{{"A", "B", 1.0}, {"B", "C", 2.0}, {"A", "C", 1.5}} {
		_, err := g.AddEdge(e.a, e.b, e.w)
		require.NoError(t, err)
	}

	return g
}

// buildRandomGraph creates a connected graph: a chain V0..V(n-1) plus extra random
// edges. With ties, weights are small integers so many edges share a weight.
func buildRandomGraph(t testing.TB, n, extra int, seed int64, ties bool) *core.Graph {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	weight := func() float64 {
		if ties {
			return float64(r.Intn(4))
		}
		return r.Float64()
	}
	g := core.NewGraph(core.WithCapacity(n, n+extra))
	for i := 1; i < n; i++ {
		_, err := g.AddEdge(fmt.Sprintf("V%03d", i-1), fmt.Sprintf("V%03d", i), 5+weight())
		require.NoError(t, err)
	}
	for i := 0; i < extra; {
		u, v := r.Intn(n), r.Intn(n)
		if u == v {
			continue
		}
		_, err := g.AddEdge(fmt.Sprintf("V%03d", u), fmt.Sprintf("V%03d", v), weight())
		require.NoError(t, err)
		i++
	}

	return g
}

func edgeIDs(t *mst.SpanningTree) []string {
	out := make([]string, len(t.Edges))
	for i, e := range t.Edges {
		out[i] = e.ID
	}
	sort.Strings(out)

	return out
}

func pairs(t *mst.SpanningTree) []string {
	out := make([]string, len(t.Edges))
	for i, e := range t.Edges {
		out[i] = e.From + "-" + e.To
	}

	return out
}

func TestKruskal_Triangle(t *testing.T) {
	tree, err := mst.Kruskal(buildTriangle(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"A-B", "A-C"}, pairs(tree))
	assert.InDelta(t, 2.5, tree.Total, 1e-12)
	assert.Equal(t, []string{"A", "B", "C"}, tree.Vertices)
	assert.False(t, tree.Approximate)
}

func TestPrim_Triangle(t *testing.T) {
	tree, err := mst.Prim(buildTriangle(t), "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A-B", "A-C"}, pairs(tree))
	assert.InDelta(t, 2.5, tree.Total, 1e-12)
}

func TestKruskal_TiesFollowInsertionOrder(t *testing.T) {
	g := core.NewGraph()
	_, _ = g.AddEdge("C", "D", 1)
	_, _ = g.AddEdge("A", "B", 1)
	_, _ = g.AddEdge("B", "C", 1)
	_, _ = g.AddEdge("A", "D", 1)

	tree, err := mst.Kruskal(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"C-D", "A-B", "B-C"}, pairs(tree))

	again, err := mst.Kruskal(g.Clone())
	require.NoError(t, err)
	assert.Equal(t, tree.Edges, again.Edges)

	prim, err := mst.Prim(g, "A")
	require.NoError(t, err)
	assert.Equal(t, edgeIDs(tree), edgeIDs(prim))
}

func TestTrivialAndInvalid(t *testing.T) {
	g := core.NewGraph()
	_, err := mst.Kruskal(g)
	assert.ErrorIs(t, err, mst.ErrEmptyGraph)
	_, err = mst.Kruskal(nil)
	assert.ErrorIs(t, err, mst.ErrGraphNil)

	require.NoError(t, g.AddVertex("A"))
	tree, err := mst.Kruskal(g)
	require.NoError(t, err)
	assert.Empty(t, tree.Edges)
	assert.Equal(t, 0.0, tree.Total)

	_, err = mst.Prim(g, "")
	assert.ErrorIs(t, err, mst.ErrEmptyRoot)
	_, err = mst.Prim(g, "Z")
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestDisconnected(t *testing.T) {
	g := buildTriangle(t)
	_, _ = g.AddEdge("X", "Y", 1)
	require.NoError(t, g.AddVertex("Z"))

	for _, b := range []mst.Backend{mst.CPU{}, mst.Parallel{Threads: 2}, mst.Gonum{}} {
		_, err := b.SpanningTree(g)
		require.ErrorIs(t, err, errkind.ErrDisconnected, b.Name())
		var de *mst.DisconnectedError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, [][]string{{"A", "B", "C"}, {"X", "Y"}, {"Z"}}, de.Components)
		assert.Zero(t, de.Rank)
	}

	_, err := mst.Prim(g, "A")
	assert.ErrorIs(t, err, errkind.ErrDisconnected)
}

// twoTriangles joins two unit triangles by one expensive bridge C-D.
func twoTriangles(t *testing.T) *core.Graph {
	g := core.NewGraph()
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"A", "C"}, {"D", "E"}, {"E", "F"}, {"D", "F"}} {
		_, err := g.AddEdge(e[0], e[1], 1)
		require.NoError(t, err)
	}
	_, err := g.AddEdge("C", "D", 10)
	require.NoError(t, err)

	return g
}

func TestRankSparsify(t *testing.T) {
	g := twoTriangles(t)

	s, err := mst.RankSparsify(g, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, s.EdgeCount())
	assert.False(t, s.HasEdge("C", "D"))
	assert.Equal(t, g.VertexCount(), s.VertexCount())
	assert.Equal(t, 7, g.EdgeCount(), "input untouched")

	s, err = mst.RankSparsify(g, 3)
	require.NoError(t, err)
	assert.Equal(t, 7, s.EdgeCount())

	_, err = mst.RankSparsify(g, 0)
	assert.ErrorIs(t, err, mst.ErrBadRank)
	assert.Contains(t, err.Error(), "k >= 1")
}

func TestBuild_Approximate(t *testing.T) {
	obs, logs := observer.New(zapcore.InfoLevel)
	g := twoTriangles(t)

	tree, err := mst.Build(g, mst.WithRank(3), mst.WithLogger(zap.New(obs)))
	require.NoError(t, err)
	assert.True(t, tree.Approximate)
	assert.Equal(t, 3, tree.Rank)
	assert.InDelta(t, 14.0, tree.Total, 1e-12)
	assert.Equal(t, 1, logs.FilterMessage("approximate spanning tree over rank-sparsified graph").Len())

	exact, err := mst.Build(g)
	require.NoError(t, err)
	assert.False(t, exact.Approximate)
	assert.True(t, mst.Equivalent(tree, exact, 1e-12))

	_, err = mst.Build(g, mst.WithRank(2))
	require.ErrorIs(t, err, errkind.ErrDisconnected)
	var de *mst.DisconnectedError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Rank)
	assert.Contains(t, err.Error(), "raise the rank")
}

// TestBuild_SparsifiedNeverBelowExact checks that sparsified trees bound the exact total from above.
func TestBuild_SparsifiedNeverBelowExact(t *testing.T) {
	g := buildRandomGraph(t, 120, 900, 11, false)
	exact, err := mst.Build(g)
	require.NoError(t, err)
	for _, k := range []int{2, 4, 8} {
		approx, err := mst.Build(g, mst.WithRank(k))
		if err != nil {
			require.ErrorIs(t, err, errkind.ErrDisconnected)
			continue
		}
		assert.GreaterOrEqual(t, approx.Total+1e-9, exact.Total, "rank %d", k)
		assert.Len(t, approx.Edges, g.VertexCount()-1)
	}
}

func TestBackends_Equivalent(t *testing.T) {
	for _, ties := range []bool{false, true} {
		for seed := int64(1); seed <= 5; seed++ {
			g := buildRandomGraph(t, 200, 1500, seed, ties)
			ref, err := mst.CPU{}.SpanningTree(g)
			require.NoError(t, err)
			require.Len(t, ref.Edges, g.VertexCount()-1)

			for _, b := range []mst.Backend{mst.Parallel{Threads: 4}, mst.Parallel{}, mst.Gonum{}} {
				got, err := mst.Build(g, mst.WithBackend(b))
				require.NoError(t, err, b.Name())
				assert.Equal(t, b.Name(), got.Backend)
				assert.True(t, mst.Equivalent(ref, got, 1e-9), "%s seed %d ties %v", b.Name(), seed, ties)
			}

			// Borůvka under a strict (weight, sequence) order returns the reference edges.
			par, err := mst.Parallel{Threads: 3}.SpanningTree(g)
			require.NoError(t, err)
			assert.Equal(t, edgeIDs(ref), edgeIDs(par))

			prim, err := mst.Prim(g, "V000")
			require.NoError(t, err)
			assert.Equal(t, edgeIDs(ref), edgeIDs(prim))
		}
	}
}

func TestNewBackend(t *testing.T) {
	for name, want := range map[string]string{"": "cpu", "CPU": "cpu", "parallel": "parallel", "gonum": "gonum"} {
		b, err := mst.NewBackend(name, 2)
		require.NoError(t, err)
		assert.Equal(t, want, b.Name())
	}

	_, err := mst.NewBackend("gpu", 1)
	require.ErrorIs(t, err, errkind.ErrResourceUnavailable)
	assert.Equal(t, []string{"gpu"}, errkind.IDs(err))
}

func TestEquivalent(t *testing.T) {
	a, err := mst.Kruskal(buildTriangle(t))
	require.NoError(t, err)
	b := *a
	b.Total += 0.1
	assert.False(t, mst.Equivalent(a, &b, 1e-6))
	assert.True(t, mst.Equivalent(a, &b, 0.2))
	assert.False(t, mst.Equivalent(a, nil, 1))

	c := *a
	c.Vertices = []string{"A", "B", "D"}
	assert.False(t, mst.Equivalent(a, &c, 1))
}

func TestSpanningTree_Graph(t *testing.T) {
	tree, err := mst.Kruskal(buildTriangle(t))
	require.NoError(t, err)
	g, err := tree.Graph()
	require.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 2, g.EdgeCount())
	assert.False(t, g.HasEdge("B", "C"))

	bad := *tree
	bad.Edges = append([]core.Edge{{From: "A", To: "A", Weight: 1}}, tree.Edges...)
	_, err = bad.Graph()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tree edge A-A")

	bad = *tree
	bad.Vertices = []string{""}
	_, err = bad.Graph()
	require.Error(t, err)
}

func TestWithRankPanics(t *testing.T) {
	assert.PanicsWithValue(t, "mst: bad rank: -1 is negative", func() { mst.WithRank(-1) })
}
