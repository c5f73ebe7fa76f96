// SPDX-License-Identifier: MIT

package mst

import (
	"container/heap"

	"github.com/katalvlaran/strainnet/core"
)

// Prim computes the minimum spanning tree of g by growing it from root with a
// min-heap of frontier edges. Equal weights are broken by insertion sequence,
// so Prim and Kruskal accept the same edge set.
//
// Errors:
//   - ErrGraphNil, ErrEmptyGraph, ErrEmptyRoot.
//   - core.ErrVertexNotFound if root is absent.
//   - *DisconnectedError listing the components.
//
// Complexity: O(E log E) time, O(V + E) memory.
func Prim(g *core.Graph, root string) (*SpanningTree, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	vertices := g.Vertices()
	if len(vertices) == 0 {
		return nil, ErrEmptyGraph
	}
	if root == "" {
		return nil, ErrEmptyRoot
	}
	if !g.HasVertex(root) {
		return nil, core.ErrVertexNotFound
	}

	n := len(vertices)
	t := &SpanningTree{Vertices: vertices, Edges: make([]core.Edge, 0, n-1), Backend: BackendCPU}
	visited := make(map[string]bool, n)
	pq := &edgePQ{}

	push := func(u string) error {
		visited[u] = true
		nbrs, err := g.Neighbors(u)
		if err != nil {
			return err
		}
		for _, e := range nbrs {
			if !visited[e.Other(u)] {
				heap.Push(pq, frontier{edge: e, to: e.Other(u)})
			}
		}
		return nil
	}
	if err := push(root); err != nil {
		return nil, err
	}

	for pq.Len() > 0 && len(t.Edges) < n-1 {
		f := heap.Pop(pq).(frontier)
		if visited[f.to] {
			continue
		}
		t.Edges = append(t.Edges, *f.edge)
		t.Total += f.edge.Weight
		if err := push(f.to); err != nil {
			return nil, err
		}
	}
	if len(t.Edges) < n-1 {
		return nil, disconnected(g)
	}

	return t, nil
}

// frontier is a heap entry: an edge leading to the unvisited vertex to.
type frontier struct {
	edge *core.Edge
	to   string
}

// edgePQ is a min-heap of frontier edges ordered by (Weight, Seq).
type edgePQ []frontier

func (pq edgePQ) Len() int { return len(pq) }

func (pq edgePQ) Less(i, j int) bool {
	if pq[i].edge.Weight != pq[j].edge.Weight {
		return pq[i].edge.Weight < pq[j].edge.Weight
	}
	return pq[i].edge.Seq < pq[j].edge.Seq
}

func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(frontier)) }

func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	f := old[n-1]
	*pq = old[:n-1]

	return f
}
