// SPDX-License-Identifier: MIT

package mst

import (
	"github.com/exascience/pargo/parallel"

	"github.com/katalvlaran/strainnet/core"
)

// Parallel is a Borůvka backend. Each round finds, for every component, its
// cheapest outgoing edge with a data-parallel scan over the edge list split
// into Threads batches (0 = one per CPU), then joins the components.
//
// Edges are ranked by (weight, insertion sequence), a strict total order, so
// the tree equals the CPU backend's tree edge for edge.
type Parallel struct {
	Threads int
}

// Name implements Backend.
func (Parallel) Name() string { return BackendParallel }

// edgeArrays is the backend's private copy of the edge list, indexed by rank in
// insertion order. It lives for one SpanningTree call.
type edgeArrays struct {
	u, v []int
	w    []float64
	src  []*core.Edge
}

// cheaper reports whether edge a ranks before edge b; -1 never ranks first.
func (ea *edgeArrays) cheaper(a, b int) bool {
	if b < 0 {
		return a >= 0
	}
	if a < 0 {
		return false
	}
	if ea.w[a] != ea.w[b] {
		return ea.w[a] < ea.w[b]
	}
	return a < b
}

// SpanningTree implements Backend.
func (p Parallel) SpanningTree(g *core.Graph) (*SpanningTree, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	vertices := g.Vertices()
	n := len(vertices)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	t := &SpanningTree{Vertices: vertices, Edges: []core.Edge{}, Backend: BackendParallel}
	if n == 1 {
		return t, nil
	}

	ds := newDisjointSet(vertices)
	edges := g.Edges()
	ea := &edgeArrays{
		u:   make([]int, len(edges)),
		v:   make([]int, len(edges)),
		w:   make([]float64, len(edges)),
		src: edges,
	}
	for i, e := range edges {
		ea.u[i], ea.v[i], ea.w[i] = ds.idx[e.From], ds.idx[e.To], e.Weight
	}

	root := make([]int, n)
	for len(t.Edges) < n-1 && len(edges) > 0 {
		for i := range root {
			root[i] = ds.find(i)
		}
		best := p.cheapestPerComponent(ea, root)

		joined := 0
		for c := 0; c < n; c++ {
			k := best[c]
			if k < 0 || !ds.union(ea.u[k], ea.v[k]) {
				continue
			}
			t.Edges = append(t.Edges, *ea.src[k])
			t.Total += ea.w[k]
			joined++
		}
		if joined == 0 {
			break
		}
	}
	if len(t.Edges) < n-1 {
		return nil, disconnected(g)
	}

	return t, nil
}

// cheapestPerComponent returns, per component root, the index of its cheapest
// outgoing edge or -1. root is read-only during the scan.
func (p Parallel) cheapestPerComponent(ea *edgeArrays, root []int) []int {
	result := parallel.RangeReduce(0, len(ea.w), p.Threads, func(low, high int) interface{} {
		best := make([]int, len(root))
		for i := range best {
			best[i] = -1
		}
		for k := low; k < high; k++ {
			ru, rv := root[ea.u[k]], root[ea.v[k]]
			if ru == rv {
				continue
			}
			if ea.cheaper(k, best[ru]) {
				best[ru] = k
			}
			if ea.cheaper(k, best[rv]) {
				best[rv] = k
			}
		}
		return best
	}, func(x, y interface{}) interface{} {
		bx, by := x.([]int), y.([]int)
		for i := range bx {
			if ea.cheaper(by[i], bx[i]) {
				bx[i] = by[i]
			}
		}
		return bx
	})

	return result.([]int)
}
