// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge lifecycle and queries: AddEdge/RemoveEdge/HasEdge/EdgeBetween/GetEdge/
//       Edges/EdgeCount/FilterEdges, plus edge ID allocation.
// Determinism:
//   - Edges() is ordered by insertion sequence.
//   - Edge IDs are "e<seq>" with seq allocated atomically.
// Concurrency:
//   - AddEdge takes muVert then muEdgeAdj (write); readers take muEdgeAdj (read).

package core

import (
	"math"
	"sort"
	"strconv"
	"sync/atomic"
)

// AddEdge records an undirected observation between from and to with the given weight.
// Missing endpoints are created.
//
// Implementation:
//   - Stage 1: Validate IDs and weight.
//   - Stage 2: Under muVert, ensure both endpoints exist.
//   - Stage 3: Under muEdgeAdj, either merge into the existing pair edge
//     (weight = min(old, new), ID and Seq unchanged) or allocate a new edge.
//
// Returns:
//   - the ID of the edge holding the pair (new or merged).
//
// Errors:
//   - ErrEmptyVertexID, ErrLoopNotAllowed, ErrBadWeight.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight float64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to {
		return "", ErrLoopNotAllowed
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return "", ErrBadWeight
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.addVertexLocked(from)
	g.addVertexLocked(to)

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if eid, ok := g.adjacency[from][to]; ok {
		e := g.edges[eid]
		if weight < e.Weight {
			e.Weight = weight
		}

		return eid, nil
	}

	seq := atomic.AddUint64(&g.nextEdgeID, 1)
	e := &Edge{ID: edgeIDFor(seq), From: from, To: to, Weight: weight, Seq: seq}
	g.linkLocked(e)

	return e.ID, nil
}

// linkLocked stores e and mirrors it into adjacency. Caller holds muEdgeAdj write lock.
func (g *Graph) linkLocked(e *Edge) {
	g.edges[e.ID] = e
	if g.adjacency[e.From] == nil {
		g.adjacency[e.From] = make(map[string]string)
	}
	if g.adjacency[e.To] == nil {
		g.adjacency[e.To] = make(map[string]string)
	}
	g.adjacency[e.From][e.To] = e.ID
	g.adjacency[e.To][e.From] = e.ID
}

// unlinkLocked removes e from edges and adjacency. Caller holds muEdgeAdj write lock.
func (g *Graph) unlinkLocked(e *Edge) {
	delete(g.edges, e.ID)
	delete(g.adjacency[e.From], e.To)
	delete(g.adjacency[e.To], e.From)
	if len(g.adjacency[e.From]) == 0 {
		delete(g.adjacency, e.From)
	}
	if len(g.adjacency[e.To]) == 0 {
		delete(g.adjacency, e.To)
	}
}

// RemoveEdge deletes the edge with the given ID. Endpoints are kept.
func (g *Graph) RemoveEdge(eid string) error {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}
	g.unlinkLocked(e)

	return nil
}

// HasEdge reports whether a and b are adjacent. Symmetric.
func (g *Graph) HasEdge(a, b string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacency[a][b]

	return ok
}

// EdgeBetween returns the edge joining a and b.
func (g *Graph) EdgeBetween(a, b string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	eid, ok := g.adjacency[a][b]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return g.edges[eid], nil
}

// GetEdge returns the edge with the given ID.
func (g *Graph) GetEdge(eid string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	e, ok := g.edges[eid]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return e, nil
}

// Edges returns every edge ordered by insertion sequence.
//
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sortBySeq(out)

	return out
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// FilterEdges removes every edge for which keep returns false. Vertices are untouched.
func (g *Graph) FilterEdges(keep func(*Edge) bool) {
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	for _, e := range g.edges {
		if !keep(e) {
			g.unlinkLocked(e)
		}
	}
}

// edgeIDFor renders "e<seq>" without fmt.
func edgeIDFor(seq uint64) string {
	buf := make([]byte, 0, 21)
	buf = append(buf, 'e')
	buf = strconv.AppendUint(buf, seq, 10)

	return string(buf)
}

func sortBySeq(es []*Edge) {
	sort.Slice(es, func(i, j int) bool { return es[i].Seq < es[j].Seq })
}
