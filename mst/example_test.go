// SPDX-License-Identifier: MIT

package mst_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/mst"
)

// ExampleKruskal builds the exact tree of a weighted triangle: (B,C) is dropped.
func ExampleKruskal() {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B", 1.0)
	_, _ = g.AddEdge("B", "C", 2.0)
	_, _ = g.AddEdge("A", "C", 1.5)

	tree, err := mst.Kruskal(g)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, e := range tree.Edges {
		fmt.Printf("%s-%s ", e.From, e.To)
	}
	fmt.Printf("total=%.1f\n", tree.Total)
	// Output: A-B A-C total=2.5
}

// ExampleBuild shows a rank-sparsified build and the error reported when the
// rank is too low to keep the graph connected.
func ExampleBuild() {
	g := core.NewGraph()
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"A", "C"}, {"D", "E"}, {"E", "F"}, {"D", "F"}} {
		_, _ = g.AddEdge(e[0], e[1], 1)
	}
	_, _ = g.AddEdge("C", "D", 10)

	tree, err := mst.Build(g, mst.WithRank(3))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("approximate=%v rank=%d total=%.0f\n", tree.Approximate, tree.Rank, tree.Total)

	_, err = mst.Build(g, mst.WithRank(2))
	var de *mst.DisconnectedError
	if errors.As(err, &de) {
		fmt.Println(len(de.Components), "components at rank", de.Rank)
	}
	// Output:
	// approximate=true rank=3 total=14
	// 2 components at rank 2
}

// ExampleNewBackend resolves backends by name.
func ExampleNewBackend() {
	b, _ := mst.NewBackend("parallel", 4)
	fmt.Println(b.Name())

	_, err := mst.NewBackend("gpu", 1)
	fmt.Println(err)
	// Output:
	// parallel
	// mst.NewBackend: resource unavailable: no such spanning tree backend in this build [gpu]
}
