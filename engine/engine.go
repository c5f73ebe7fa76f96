// SPDX-License-Identifier: MIT

package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/assign"
	"github.com/katalvlaran/strainnet/builder"
	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/core"
	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/labels"
	"github.com/katalvlaran/strainnet/mst"
	"github.com/katalvlaran/strainnet/reduce"
	"github.com/katalvlaran/strainnet/tree"
)

// Config is everything a run needs besides its request.
type Config struct {
	// Threads bounds pargo batches in boundary classification and the parallel backend.
	Threads int
	// Rank > 0 rank-sparsifies the distance graph before the spanning tree.
	Rank int
	// Backend names the spanning tree backend: cpu, parallel or gonum.
	Backend string
	// Component selects the distance column used as edge weight.
	Component dists.Component
	// MinRetainedFraction is the per-cluster reference floor in [0, 1].
	MinRetainedFraction float64

	Logger  *zap.Logger
	Metrics *Metrics
}

// DefaultConfig returns one thread, exact Kruskal on core distances, no
// logging and no metrics.
func DefaultConfig() Config {
	return Config{
		Threads:   1,
		Backend:   mst.BackendCPU,
		Component: dists.Core,
		Logger:    zap.NewNop(),
	}
}

// Result holds the outputs of one run. Fields a request does not produce stay zero.
type Result struct {
	RunID   string
	Request string

	Graph      *core.Graph
	Clustering *cluster.Clustering

	// References and ReducedGraph come from reference extraction.
	References   []string
	ReducedGraph *core.Graph

	NewClusterMembers      []string
	ExistingClusterMatches []string
	Merges                 []cluster.Merge
	// NewClusters counts the cluster names the run issued.
	NewClusters int

	SpanningTree *mst.SpanningTree
	Tree         *tree.Tree
}

// Engine runs requests under one configuration. Each run owns the graph and
// clustering it builds; an Engine holds no per-run state.
type Engine struct {
	cfg     Config
	backend mst.Backend
}

// New resolves cfg. An unknown or unavailable spanning tree backend fails
// with errkind.ErrResourceUnavailable.
func New(cfg Config) (*Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if cfg.Rank < 0 {
		return nil, fmt.Errorf("engine: negative rank %d", cfg.Rank)
	}
	if cfg.MinRetainedFraction < 0 || cfg.MinRetainedFraction > 1 {
		return nil, fmt.Errorf("engine: retained fraction %g outside [0, 1]", cfg.MinRetainedFraction)
	}
	b, err := mst.NewBackend(cfg.Backend, cfg.Threads)
	if err != nil {
		return nil, err
	}

	return &Engine{cfg: cfg, backend: b}, nil
}

// Config returns the resolved configuration.
func (e *Engine) Config() Config { return e.cfg }

// Run validates req and executes it under a fresh run ID.
func (e *Engine) Run(req Request) (*Result, error) {
	if req == nil {
		return nil, fmt.Errorf("engine: nil request")
	}
	kind := req.kind()
	runID := uuid.NewString()
	log := e.cfg.Logger.With(zap.String("run_id", runID), zap.String("request", kind))
	start := time.Now()

	res, err := e.run(req, log)
	if res != nil {
		res.RunID, res.Request = runID, kind
	}
	e.cfg.Metrics.observe(kind, start, res, err)
	if err != nil {
		log.Warn("run failed", zap.Error(err))
		return nil, err
	}
	log.Info("run finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("new_clusters", res.NewClusters),
		zap.Int("merges", len(res.Merges)))

	return res, nil
}

func (e *Engine) run(req Request, log *zap.Logger) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	switch r := req.(type) {
	case BuildReference:
		return e.network(r.Record, r.Labels, log)
	case FitAndCluster:
		lbls, err := e.classify(r, log)
		if err != nil {
			return nil, err
		}
		return e.network(r.Record, lbls, log)
	case AssignQuery:
		return e.assignQuery(r, log)
	case BuildTree:
		return e.buildTree(r, log)
	default:
		return nil, fmt.Errorf("engine: unsupported request %T", req)
	}
}

func (e *Engine) classify(r FitAndCluster, log *zap.Logger) ([]labels.Label, error) {
	if r.Boundary != nil {
		lbls, within, err := r.Boundary.Classify(r.Record, e.cfg.Threads)
		if err != nil {
			return nil, err
		}
		log.Debug("pairs classified by boundary", zap.Int("within", within), zap.Int("pairs", len(lbls)))
		return lbls, nil
	}
	within, err := labels.WithinLabel(r.Means, r.Assignments)
	if err != nil {
		return nil, err
	}
	log.Debug("within-strain component chosen", zap.Int("component", within))

	return labels.FromAssignments(r.Assignments, within), nil
}

// network builds, names and reduces the full network of a self record.
func (e *Engine) network(rec *dists.Record, lbls []labels.Label, log *zap.Logger) (*Result, error) {
	g, err := builder.FromLabels(rec, lbls, builder.WithComponent(e.cfg.Component), builder.WithLogger(log))
	if err != nil {
		return nil, err
	}
	c, err := cluster.Fresh(g)
	if err != nil {
		return nil, err
	}
	red, err := reduce.Reduce(g, c, e.reduceOptions(log)...)
	if err != nil {
		return nil, err
	}

	return &Result{
		Graph:        g,
		Clustering:   c,
		References:   red.References,
		ReducedGraph: red.Graph,
		NewClusters:  len(c.Names()),
	}, nil
}

func (e *Engine) reduceOptions(log *zap.Logger) []reduce.Option {
	return []reduce.Option{reduce.WithMinRetainedFraction(e.cfg.MinRetainedFraction), reduce.WithLogger(log)}
}

func (e *Engine) assignQuery(r AssignQuery, log *zap.Logger) (*Result, error) {
	links, err := e.links(r.Record, r.Labels)
	if err != nil {
		return nil, err
	}
	if r.QueryRecord != nil {
		more, err := e.links(r.QueryRecord, r.QueryLabels)
		if err != nil {
			return nil, err
		}
		links = append(links, more...)
	}

	a, err := assign.Assign(r.PriorGraph, r.PriorClusters, r.Record.QueryList, links, assign.WithLogger(log))
	if err != nil {
		return nil, err
	}
	res := &Result{
		Graph:                  a.Graph,
		Clustering:             a.Clustering,
		NewClusterMembers:      a.NewClusterMembers,
		ExistingClusterMatches: a.ExistingClusterMatches,
		Merges:                 a.Merges,
		NewClusters:            countNames(a.Clustering, a.NewClusterMembers),
	}
	if r.UpdateReferences {
		red, err := reduce.Reduce(a.Graph, a.Clustering, e.reduceOptions(log)...)
		if err != nil {
			return nil, err
		}
		res.References, res.ReducedGraph = red.References, red.Graph
	}

	return res, nil
}

// links turns the within-strain pairs of rec into assignment links. The first
// isolate of a pair is the query. Pairs of an isolate with itself carry no
// information and are skipped.
func (e *Engine) links(rec *dists.Record, lbls []labels.Label) ([]assign.Link, error) {
	pairs, err := rec.Pairs()
	if err != nil {
		return nil, err
	}
	out := make([]assign.Link, 0, labels.Count(lbls))
	for k, p := range pairs {
		if lbls[k] != labels.WithinStrain || p.First == p.Second {
			continue
		}
		w, err := rec.Distance(k, e.cfg.Component)
		if err != nil {
			return nil, err
		}
		out = append(out, assign.Link{Query: p.First, Target: p.Second, Weight: w})
	}

	return out, nil
}

func countNames(c *cluster.Clustering, ids []string) int {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if name, ok := c.Name(id); ok {
			seen[name] = true
		}
	}

	return len(seen)
}

func (e *Engine) buildTree(r BuildTree, log *zap.Logger) (*Result, error) {
	g, err := builder.FromSparse(r.Record, builder.WithComponent(e.cfg.Component), builder.WithLogger(log))
	if err != nil {
		return nil, err
	}
	st, err := mst.Build(g, mst.WithRank(e.cfg.Rank), mst.WithBackend(e.backend), mst.WithLogger(log))
	if err != nil {
		return nil, err
	}
	var opts []tree.Option
	if r.Root != "" {
		opts = append(opts, tree.WithRoot(r.Root))
	}
	t, err := tree.FromSpanningTree(st, opts...)
	if err != nil {
		return nil, err
	}

	return &Result{Graph: g, SpanningTree: st, Tree: t}, nil
}
