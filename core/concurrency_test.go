// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/katalvlaran/strainnet/core"
	"github.com/stretchr/testify/require"
)

// TestConcurrentAddEdge ensures concurrent AddEdge calls are safe and all neighbours appear.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)

	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := g.AddEdge("X", fmt.Sprintf("V%d", id), float64(id))
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	nbs, err := g.Neighbors("X")
	require.NoError(t, err)
	require.Len(t, nbs, num)

	seen := make(map[uint64]bool, num)
	for _, e := range nbs {
		require.False(t, seen[e.Seq], "duplicate sequence %d", e.Seq)
		seen[e.Seq] = true
	}
}

// TestConcurrentMergeSamePair hammers one pair with different weights; the minimum wins.
func TestConcurrentMergeSamePair(t *testing.T) {
	g := core.NewGraph()
	const num = 100
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(w int) {
			defer wg.Done()
			_, _ = g.AddEdge("A", "B", float64(w+1))
		}(i)
	}
	wg.Wait()

	e, err := g.EdgeBetween("A", "B")
	require.NoError(t, err)
	require.Equal(t, 1.0, e.Weight)
	require.Equal(t, 1, g.EdgeCount())
}

// TestConcurrentReadWrite mixes readers with writers to exercise the lock order.
func TestConcurrentReadWrite(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("Base"))

	const rounds = 100
	var wg sync.WaitGroup
	wg.Add(3 * rounds)
	for i := 0; i < rounds; i++ {
		go func(id int) {
			defer wg.Done()
			_, _ = g.AddEdge("Base", fmt.Sprintf("V%d", id), 1)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = g.Neighbors("Base")
			_ = g.Stats()
		}()
		go func() {
			defer wg.Done()
			_ = g.Clone()
		}()
	}
	wg.Wait()
	require.Equal(t, rounds, g.EdgeCount())
}
