// SPDX-License-Identifier: MIT

// Package reduce extracts a compact reference subset from a clustered
// relatedness graph.
//
// Within every cluster, vertices whose neighbourhood is already covered by a
// single surviving neighbour (clique or near-clique members) are pruned while
// the cluster stays connected, down to a floor of
// max(1, ceil(MinRetainedFraction·|cluster|)) members. Singletons are kept.
// The surviving vertices form the reference subset; the component structure and
// the cluster assignment restricted to the subset are unchanged.
package reduce

import (
	"math"
	"sort"

	"github.com/bits-and-blooms/bitset"
	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/bfs"
	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/errkind"
)

// Result is the reduced reference set and its induced graph.
type Result struct {
	// References lists the retained isolates, sorted.
	References []string
	// Graph is the subgraph of the input induced by References.
	Graph *core.Graph
}

// Options configures Reduce.
type Options struct {
	// MinRetainedFraction in [0, 1] sets the per-cluster floor.
	MinRetainedFraction float64
	Logger              *zap.Logger
}

// Option customizes Reduce.
type Option func(*Options)

// DefaultOptions returns a zero retained fraction and a no-op logger.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithMinRetainedFraction sets the floor fraction. Panics outside [0, 1].
func WithMinRetainedFraction(f float64) Option {
	if f < 0 || f > 1 || math.IsNaN(f) {
		panic("reduce: WithMinRetainedFraction outside [0,1]")
	}
	return func(o *Options) { o.MinRetainedFraction = f }
}

// WithLogger routes progress messages to l. nil is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// pruner holds per-call state: the vertex index, the removal set and an
// adjacency snapshot with sorted neighbour lists.
type pruner struct {
	idx     map[string]uint
	removed *bitset.BitSet
	adj     map[string][]string
}

// Reduce prunes every cluster of c over g.
//
// Errors:
//   - errkind.ErrInconsistentGraph if c does not assign every vertex of g.
func Reduce(g *core.Graph, c *cluster.Clustering, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if g == nil || c == nil {
		return nil, errkind.Inconsistent("reduce.Reduce", "nil graph or clustering")
	}
	if err := c.Covers(g); err != nil {
		return nil, err
	}

	ids := g.Vertices()
	p := &pruner{
		idx:     make(map[string]uint, len(ids)),
		removed: bitset.New(uint(len(ids))),
		adj:     g.AdjacencyList(),
	}
	for i, id := range ids {
		p.idx[id] = uint(i)
	}

	groups := make(map[string][]string)
	for _, id := range ids {
		name, _ := c.Name(id)
		groups[name] = append(groups[name], id)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return cluster.CompareNames(names[i], names[j]) < 0 })

	for _, name := range names {
		members := groups[name]
		removedHere := p.pruneCluster(members, o.MinRetainedFraction)
		o.Logger.Debug("cluster reduced",
			zap.String("cluster", name),
			zap.Int("size", len(members)),
			zap.Int("removed", removedHere))
	}

	keep := make(map[string]bool, len(ids))
	refs := make([]string, 0, len(ids))
	for _, id := range ids {
		if !p.removed.Test(p.idx[id]) {
			keep[id] = true
			refs = append(refs, id)
		}
	}
	o.Logger.Info("references extracted",
		zap.Int("isolates", len(ids)),
		zap.Int("references", len(refs)),
		zap.Int("clusters", len(names)))

	return &Result{References: refs, Graph: core.InducedSubgraph(g, keep)}, nil
}

// floor returns max(1, ceil(f·n)), ignoring float noise below 1e-9.
func floor(f float64, n int) int {
	k := int(math.Ceil(f*float64(n) - 1e-9))
	if k < 1 {
		k = 1
	}

	return k
}

// pruneCluster runs passes over one cluster until a pass removes nothing or the
// floor is reached. Returns the number of removed vertices.
//
// A removal is kept only when the alive neighbours of v still reach each other
// inside the cluster, so the cluster's component count never changes. The
// check walks the adjacency snapshot from the covering neighbour and stops once
// every neighbour is found; it never touches vertices outside the cluster.
func (p *pruner) pruneCluster(members []string, fraction float64) int {
	if len(members) <= 1 {
		return 0
	}
	in := make(map[string]bool, len(members))
	for _, id := range members {
		in[id] = true
	}
	alive := func(id string) bool { return in[id] && !p.removed.Test(p.idx[id]) }

	minKeep := floor(fraction, len(members))
	remaining := len(members)
	total := 0
	for remaining > minKeep {
		order := p.passOrder(members, alive)
		removedThisPass := 0
		for _, v := range order {
			if remaining <= minKeep {
				break
			}
			nbrs := p.aliveNeighbours(v, alive)
			w, ok := p.coveringNeighbour(nbrs)
			if !ok {
				continue
			}
			p.removed.Set(p.idx[v])
			if !bfs.Reach(p.adj, w, nbrs, alive) {
				p.removed.Clear(p.idx[v])
				continue
			}
			remaining--
			removedThisPass++
		}
		total += removedThisPass
		if removedThisPass == 0 {
			break
		}
	}

	return total
}

// passOrder returns the alive members ordered by (degree among alive, ID).
func (p *pruner) passOrder(members []string, alive func(string) bool) []string {
	type cand struct {
		id  string
		deg int
	}
	cands := make([]cand, 0, len(members))
	for _, id := range members {
		if !alive(id) {
			continue
		}
		d := 0
		for _, nbr := range p.adj[id] {
			if alive(nbr) {
				d++
			}
		}
		cands = append(cands, cand{id: id, deg: d})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].deg != cands[j].deg {
			return cands[i].deg < cands[j].deg
		}
		return cands[i].id < cands[j].id
	})

	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.id
	}

	return out
}

func (p *pruner) aliveNeighbours(v string, alive func(string) bool) []string {
	var nbrs []string
	for _, nbr := range p.adj[v] {
		if alive(nbr) {
			nbrs = append(nbrs, nbr)
		}
	}

	return nbrs
}

// coveringNeighbour returns the first of nbrs adjacent to every other one.
func (p *pruner) coveringNeighbour(nbrs []string) (string, bool) {
	for _, w := range nbrs {
		ok := true
		for _, u := range nbrs {
			if u != w && !p.adjacent(w, u) {
				ok = false
				break
			}
		}
		if ok {
			return w, true
		}
	}

	return "", false
}

// adjacent searches the sorted snapshot list of w.
func (p *pruner) adjacent(w, u string) bool {
	list := p.adj[w]
	i := sort.SearchStrings(list, u)

	return i < len(list) && list[i] == u
}
