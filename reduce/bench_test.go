// SPDX-License-Identifier: MIT

package reduce_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/reduce"
)

func benchCliques(b *testing.B, clusters int) {
	g := core.NewGraph()
	for c := 0; c < clusters; c++ {
		for i := 0; i < 10; i++ {
			for j := i + 1; j < 10; j++ {
				_, _ = g.AddEdge(fmt.Sprintf("c%d_%d", c, i), fmt.Sprintf("c%d_%d", c, j), 0.01)
			}
		}
	}
	c, err := cluster.Fresh(g)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = reduce.Reduce(g, c); err != nil {
			b.Fatal(err)
		}
	}
}

// Time per op should grow linearly from 1k to 4k isolates.
func BenchmarkReduce_1kIsolates(b *testing.B) { benchCliques(b, 100) }
func BenchmarkReduce_4kIsolates(b *testing.B) { benchCliques(b, 400) }
