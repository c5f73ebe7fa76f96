// SPDX-License-Identifier: MIT

package tree_test

import (
	"fmt"

	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/mst"
	"github.com/katalvlaran/strainnet/tree"
)

// ExampleFromSpanningTree renders the tree of a three-isolate network.
func ExampleFromSpanningTree() {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B", 1.0)
	_, _ = g.AddEdge("B", "C", 2.0)
	_, _ = g.AddEdge("A", "C", 1.5)
	st, _ := mst.Kruskal(g)

	leaves, _ := tree.FromSpanningTree(st, tree.WithRoot("A"))
	labelled, _ := tree.FromSpanningTree(st, tree.WithRoot("A"), tree.WithInternalLabels())
	fmt.Print(leaves.Newick())
	fmt.Print(labelled.Newick())
	// Output:
	// (A:0,B:1,C:1.5);
	// (B:1,C:1.5)A;
}
