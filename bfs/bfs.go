// SPDX-License-Identifier: MIT

package bfs

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/strainnet/core"
)

// index maps vertex IDs onto bit positions for the visited set.
type index map[string]uint

func newIndex(ids []string) index {
	idx := make(index, len(ids))
	for i, id := range ids {
		idx[id] = uint(i)
	}

	return idx
}

// walker shares one index and one visited set across every walk of a sweep,
// so each vertex is expanded at most once per sweep.
type walker struct {
	graph   *core.Graph
	keep    func(id string) bool
	idx     index
	visited *bitset.BitSet
	queue   []string
}

func newWalker(g *core.Graph, keep func(id string) bool) *walker {
	if keep == nil {
		keep = func(string) bool { return true }
	}
	idx := newIndex(g.Vertices())

	return &walker{
		graph:   g,
		keep:    keep,
		idx:     idx,
		visited: bitset.New(uint(len(idx))),
	}
}

func (w *walker) seen(id string) bool { return w.visited.Test(w.idx[id]) }

// walk returns the unvisited vertices reachable from start in visit order.
//
// Steps:
//  1. Mark and enqueue the start.
//  2. Dequeue, append to the order, enqueue unvisited kept neighbours.
//  3. Stop when the queue is empty.
func (w *walker) walk(start string) ([]string, error) {
	w.visited.Set(w.idx[start])
	w.queue = append(w.queue[:0], start)

	var order []string
	for len(w.queue) > 0 {
		id := w.queue[0]
		w.queue = w.queue[1:]
		order = append(order, id)

		neighbors, err := w.graph.NeighborIDs(id)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to get neighbors of %q: %v", ErrNeighbors, id, err)
		}
		for _, nbr := range neighbors {
			if w.seen(nbr) || !w.keep(nbr) {
				continue
			}
			w.visited.Set(w.idx[nbr])
			w.queue = append(w.queue, nbr)
		}
	}

	return order, nil
}

// Components returns the connected components of g restricted to vertices for
// which keep returns true (nil keeps all). Each component is sorted ascending;
// components are ordered by their smallest member.
func Components(g *core.Graph, keep func(id string) bool) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	w := newWalker(g, keep)

	var comps [][]string
	for _, id := range g.Vertices() {
		if w.seen(id) || !w.keep(id) {
			continue
		}
		comp, err := w.walk(id)
		if err != nil {
			return nil, err
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}

// ComponentsFrom returns the components of g that contain at least one seed,
// each sorted ascending, in the order their first seed appears in seeds.
// Seeds sharing a component yield it once. Only those components are walked.
func ComponentsFrom(g *core.Graph, seeds []string) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	for _, s := range seeds {
		if !g.HasVertex(s) {
			return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, s)
		}
	}
	w := newWalker(g, nil)

	var comps [][]string
	for _, s := range seeds {
		if w.seen(s) {
			continue
		}
		comp, err := w.walk(s)
		if err != nil {
			return nil, err
		}
		sort.Strings(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}

// Connected reports whether the vertices for which keep returns true form a single
// connected component of g. An empty selection counts as connected.
func Connected(g *core.Graph, keep func(id string) bool) (bool, error) {
	comps, err := Components(g, keep)
	if err != nil {
		return false, err
	}

	return len(comps) <= 1, nil
}

// Reach walks the adjacency snapshot adj from start through vertices accepted
// by keep and reports whether every target was reached. The walk stops as soon
// as the last target is found, so its cost is bounded by the explored
// neighbourhood rather than by the size of adj.
func Reach(adj map[string][]string, start string, targets []string, keep func(id string) bool) bool {
	want := make(map[string]bool, len(targets))
	for _, t := range targets {
		if t != start {
			want[t] = true
		}
	}
	if len(want) == 0 {
		return true
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, nbr := range adj[id] {
			if visited[nbr] || (keep != nil && !keep(nbr)) {
				continue
			}
			visited[nbr] = true
			if want[nbr] {
				delete(want, nbr)
				if len(want) == 0 {
					return true
				}
			}
			queue = append(queue, nbr)
		}
	}

	return false
}
