// SPDX-License-Identifier: MIT

package mst

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/strainnet/core"
)

// Gonum computes the tree with gonum's Kruskal. Its tie-breaking among equal
// weights is not insertion order, so it is edge-equivalent to CPU but not
// necessarily identical.
type Gonum struct{}

// Name implements Backend.
func (Gonum) Name() string { return BackendGonum }

// SpanningTree implements Backend.
func (Gonum) SpanningTree(g *core.Graph) (*SpanningTree, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	vertices := g.Vertices()
	n := len(vertices)
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	idx := make(map[string]int64, n)
	src := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for i, v := range vertices {
		idx[v] = int64(i)
		src.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges() {
		src.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(idx[e.From]),
			T: simple.Node(idx[e.To]),
			W: e.Weight,
		})
	}

	dst := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	total := path.Kruskal(dst, src)

	var edges []*core.Edge
	it := dst.WeightedEdges()
	for it.Next() {
		we := it.WeightedEdge()
		e, err := g.EdgeBetween(vertices[we.From().ID()], vertices[we.To().ID()])
		if err != nil {
			return nil, err
		}
		edges = append(edges, e)
	}
	if len(edges) < n-1 {
		return nil, disconnected(g)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Seq < edges[j].Seq })

	t := &SpanningTree{Vertices: vertices, Edges: make([]core.Edge, len(edges)), Total: total, Backend: BackendGonum}
	for i, e := range edges {
		t.Edges[i] = *e
	}

	return t, nil
}
