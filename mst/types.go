// SPDX-License-Identifier: MIT

package mst

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
)

// ErrGraphNil indicates a nil graph was passed.
var ErrGraphNil = errors.New("mst: graph is nil")

// ErrEmptyGraph indicates a spanning tree was requested over a graph with no vertices.
var ErrEmptyGraph = errors.New("mst: graph has no vertices")

// ErrEmptyRoot indicates that no start vertex was specified for Prim.
var ErrEmptyRoot = errors.New("mst: empty root vertex")

// ErrBadRank indicates an unusable rank: negative for Build, below 1 for RankSparsify.
var ErrBadRank = errors.New("mst: bad rank")

// DisconnectedError reports the components of a graph that has no spanning tree.
// It matches errkind.ErrDisconnected under errors.Is.
type DisconnectedError struct {
	// Components lists every connected component, each sorted, ordered by smallest member.
	Components [][]string
	// Rank is the sparsification rank that left the graph disconnected, 0 when
	// the input itself is disconnected.
	Rank int
}

// Error renders the component count and the smallest member of each component.
func (e *DisconnectedError) Error() string {
	heads := make([]string, len(e.Components))
	for i, c := range e.Components {
		heads[i] = c[0]
	}

	msg := fmt.Sprintf("mst: graph is disconnected: %d components [%s]",
		len(e.Components), strings.Join(heads, ", "))
	if e.Rank > 0 {
		msg += fmt.Sprintf(" after rank-%d sparsification; raise the rank", e.Rank)
	}

	return msg
}

// Is reports whether target is errkind.ErrDisconnected.
func (e *DisconnectedError) Is(target error) bool { return target == errkind.ErrDisconnected }

// SpanningTree is a minimum spanning tree over every vertex of its input graph.
type SpanningTree struct {
	// Vertices lists every vertex of the input, sorted.
	Vertices []string
	// Edges holds the |V|-1 tree edges in the order the algorithm accepted them.
	Edges []core.Edge
	// Total is the sum of edge weights.
	Total float64
	// Approximate is true when the tree was computed over a rank-sparsified graph
	// and is therefore only an upper bound on the exact MST of the full graph.
	Approximate bool
	// Rank is the sparsification rank applied, 0 for an exact tree.
	Rank int
	// Backend names the backend that produced the tree.
	Backend string
}

// Graph materializes the tree as a core.Graph, keeping the input's edge order.
// It fails on a tree whose vertices or edges a Graph rejects, e.g. one
// assembled by hand with an empty ID or a self loop.
func (t *SpanningTree) Graph() (*core.Graph, error) {
	g := core.NewGraph(core.WithCapacity(len(t.Vertices), len(t.Edges)))
	for _, v := range t.Vertices {
		if err := g.AddVertex(v); err != nil {
			return nil, fmt.Errorf("mst: tree vertex %q: %w", v, err)
		}
	}
	for _, e := range t.Edges {
		if _, err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, fmt.Errorf("mst: tree edge %s-%s: %w", e.From, e.To, err)
		}
	}

	return g, nil
}

// Options configures Build.
type Options struct {
	// Rank > 0 sparsifies the input to each vertex's Rank cheapest edges first.
	Rank int
	// Backend computes the tree. Defaults to CPU{}.
	Backend Backend
	// Logger receives the build notice. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns an exact build on the CPU backend.
func DefaultOptions() Options {
	return Options{Backend: CPU{}, Logger: zap.NewNop()}
}

// WithRank sets the sparsification rank; 0 builds an exact tree.
// Panics on a negative rank.
func WithRank(k int) Option {
	if k < 0 {
		panic(fmt.Sprintf("%v: %d is negative", ErrBadRank, k))
	}

	return func(o *Options) { o.Rank = k }
}

// WithBackend selects the backend. nil is ignored.
func WithBackend(b Backend) Option {
	return func(o *Options) {
		if b != nil {
			o.Backend = b
		}
	}
}

// WithLogger routes the build notice to l. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
