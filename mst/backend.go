// SPDX-License-Identifier: MIT

package mst

import (
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
)

// Backend names.
const (
	BackendCPU      = "cpu"
	BackendParallel = "parallel"
	BackendGonum    = "gonum"
)

// Backend computes a minimum spanning tree over a whole graph. Every backend
// implements the same tree definition; results may differ only in the choice
// among equal-weight edges.
type Backend interface {
	Name() string
	SpanningTree(g *core.Graph) (*SpanningTree, error)
}

// CPU is the reference backend: Kruskal with insertion-order tie-breaking.
type CPU struct{}

// Name implements Backend.
func (CPU) Name() string { return BackendCPU }

// SpanningTree implements Backend.
func (CPU) SpanningTree(g *core.Graph) (*SpanningTree, error) { return Kruskal(g) }

// NewBackend resolves a backend by name. threads bounds the parallel backend's
// batches (0 = one per CPU).
//
// Errors:
//   - errkind.ErrResourceUnavailable for names this build cannot serve, such as "gpu".
func NewBackend(name string, threads int) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendCPU:
		return CPU{}, nil
	case BackendParallel:
		if threads < 0 {
			threads = 0
		}
		return Parallel{Threads: threads}, nil
	case BackendGonum:
		return Gonum{}, nil
	default:
		return nil, errkind.Unavailable("mst.NewBackend", "no such spanning tree backend in this build", name)
	}
}

// Equivalent reports whether a and b are edge-equivalent spanning trees: the
// same vertex set, the same number of edges and totals within eps.
func Equivalent(a, b *SpanningTree, eps float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Vertices) != len(b.Vertices) || len(a.Edges) != len(b.Edges) {
		return false
	}
	va := append([]string(nil), a.Vertices...)
	vb := append([]string(nil), b.Vertices...)
	sort.Strings(va)
	sort.Strings(vb)
	for i := range va {
		if va[i] != vb[i] {
			return false
		}
	}

	return math.Abs(a.Total-b.Total) <= eps
}
