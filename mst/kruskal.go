// SPDX-License-Identifier: MIT

package mst

import (
	"sort"

	"github.com/katalvlaran/strainnet/bfs"
	"github.com/katalvlaran/strainnet/core"
)

// Kruskal computes the minimum spanning tree of g.
//
// Steps:
//  1. Validate: g != nil and |V| > 0. A single vertex yields an empty tree.
//  2. Collect edges in insertion order and stable-sort them by weight, so equal
//     weights keep insertion order.
//  3. Scan the sorted edges, accepting an edge when its endpoints lie in
//     different union-find sets.
//  4. Fewer than |V|-1 accepted edges means g is disconnected.
//
// Errors:
//   - ErrGraphNil, ErrEmptyGraph.
//   - *DisconnectedError listing the components.
//
// Complexity: O(E log E + α(V)·E). Memory: O(V + E).
func Kruskal(g *core.Graph) (*SpanningTree, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return nil, ErrEmptyGraph
	}
	t := &SpanningTree{Vertices: vertices, Edges: []core.Edge{}, Backend: BackendCPU}
	if len(vertices) == 1 {
		return t, nil
	}

	edges := g.Edges()
	sort.SliceStable(edges, func(i, j int) bool { return edges[i].Weight < edges[j].Weight })

	ds := newDisjointSet(vertices)
	for _, e := range edges {
		if !ds.union(ds.idx[e.From], ds.idx[e.To]) {
			continue
		}
		t.Edges = append(t.Edges, *e)
		t.Total += e.Weight
		if len(t.Edges) == len(vertices)-1 {
			break
		}
	}
	if len(t.Edges) < len(vertices)-1 {
		return nil, disconnected(g)
	}

	return t, nil
}

// disconnected builds the error for g, falling back to a bare error when the
// component walk itself fails.
func disconnected(g *core.Graph) error {
	comps, err := bfs.Components(g, nil)
	if err != nil {
		return err
	}

	return &DisconnectedError{Components: comps}
}

// disjointSet is union-find over dense indices with path halving and union by rank.
type disjointSet struct {
	idx    map[string]int
	parent []int
	rank   []uint8
}

func newDisjointSet(ids []string) *disjointSet {
	ds := &disjointSet{
		idx:    make(map[string]int, len(ids)),
		parent: make([]int, len(ids)),
		rank:   make([]uint8, len(ids)),
	}
	for i, id := range ids {
		ds.idx[id] = i
		ds.parent[i] = i
	}

	return ds
}

func (ds *disjointSet) find(u int) int {
	for ds.parent[u] != u {
		ds.parent[u] = ds.parent[ds.parent[u]]
		u = ds.parent[u]
	}

	return u
}

// union merges the sets of u and v; false when they were already joined.
func (ds *disjointSet) union(u, v int) bool {
	ru, rv := ds.find(u), ds.find(v)
	if ru == rv {
		return false
	}
	switch {
	case ds.rank[ru] < ds.rank[rv]:
		ds.parent[ru] = rv
	case ds.rank[ru] > ds.rank[rv]:
		ds.parent[rv] = ru
	default:
		ds.parent[rv] = ru
		ds.rank[ru]++
	}

	return true
}
