// SPDX-License-Identifier: MIT

package mst_test

import (
	"testing"

	"github.com/katalvlaran/strainnet/mst"
)

// BenchmarkBackends measures every backend on one random graph with 2000 vertices and 20000 edges.
func BenchmarkBackends(b *testing.B) {
	g := buildRandomGraph(b, 2000, 18000, 42, false)
	for _, backend := range []mst.Backend{mst.CPU{}, mst.Parallel{}, mst.Gonum{}} {
		b.Run(backend.Name(), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = backend.SpanningTree(g)
			}
		})
	}
}

// BenchmarkPrim starts Prim from the first vertex of the same graph.
func BenchmarkPrim(b *testing.B) {
	g := buildRandomGraph(b, 2000, 18000, 42, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mst.Prim(g, "V000")
	}
}

// BenchmarkRankSparsify measures rank-10 sparsification.
func BenchmarkRankSparsify(b *testing.B) {
	g := buildRandomGraph(b, 2000, 18000, 42, false)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mst.RankSparsify(g, 10)
	}
}
