// SPDX-License-Identifier: MIT

package engine_test

import (
	"fmt"

	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/engine"
	"github.com/katalvlaran/strainnet/labels"
	"github.com/katalvlaran/strainnet/matrix"
)

// ExampleEngine_Run clusters three isolates and folds in a query.
func ExampleEngine_Run() {
	// pairs A-B, A-C, B-C; columns core, accessory
	d, _ := matrix.NewDenseFrom(3, 2, []float64{0.01, 0.1, 0.4, 0.5, 0.4, 0.5})
	rec, _ := dists.NewSelf([]string{"A", "B", "C"}, d)

	e, _ := engine.New(engine.DefaultConfig())
	ref, _ := e.Run(engine.BuildReference{
		Record: rec,
		Labels: []labels.Label{labels.WithinStrain, labels.BetweenStrain, labels.BetweenStrain},
	})
	fmt.Println(ref.Clustering)

	qd, _ := matrix.NewDenseFrom(3, 2, []float64{0.4, 0.5, 0.4, 0.5, 0.02, 0.1})
	qrec, _ := dists.NewReferenceQuery([]string{"A", "B", "C"}, []string{"Q"}, qd)
	res, _ := e.Run(engine.AssignQuery{
		PriorGraph:    ref.Graph,
		PriorClusters: ref.Clustering,
		Record:        qrec,
		Labels:        []labels.Label{labels.BetweenStrain, labels.BetweenStrain, labels.WithinStrain},
	})
	fmt.Println(res.Clustering, res.ExistingClusterMatches)
	// Output:
	// [A=1 B=1 C=2]
	// [A=1 B=1 C=2 Q=2] [Q]
}
