// SPDX-License-Identifier: MIT

package mst

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/strainnet/core"
)

// RankSparsify returns a copy of g in which each vertex keeps only its k
// cheapest incident edges (ties by insertion sequence). An edge survives when
// either endpoint keeps it, so every vertex retains min(k, degree) edges.
//
// The MST of the result is an upper bound on the MST of g: it is exact only
// when every exact tree edge is among some endpoint's k cheapest.
//
// Errors:
//   - ErrGraphNil; ErrBadRank if k < 1.
func RankSparsify(g *core.Graph, k int) (*core.Graph, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: sparsification keeps k >= 1 edges per vertex, got %d", ErrBadRank, k)
	}

	keep := make(map[string]bool, g.EdgeCount())
	for _, v := range g.Vertices() {
		inc, err := g.Neighbors(v)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(inc, func(i, j int) bool { return inc[i].Weight < inc[j].Weight })
		if len(inc) > k {
			inc = inc[:k]
		}
		for _, e := range inc {
			keep[e.ID] = true
		}
	}

	out := g.Clone()
	out.FilterEdges(func(e *core.Edge) bool { return keep[e.ID] })

	return out, nil
}
