// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/cluster"
	"github.com/katalvlaran/strainnet/engine"
	"github.com/katalvlaran/strainnet/errkind"
	"github.com/katalvlaran/strainnet/labels"
	"github.com/katalvlaran/strainnet/persist"
)

const defaultMSTRank = 10

// Output file names inside --out.
const (
	fileGraph      = "network.graphml"
	fileClusters   = "clusters.csv"
	fileReferences = "references.txt"
	fileRefGraph   = "references.graphml"
	fileQueries    = "query_distances.csv"
	fileTree       = "tree.nwk"
	fileMST        = "mst.graphml"
)

func fitCommand(a *app) *cobra.Command {
	var (
		distances, assignments, means, out string
		slope                              int
		xMax, yMax                         float64
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Cluster a collection from a mixture fit or a fixed boundary",
		Long: `Cluster every isolate of an all-vs-all distance snapshot.

Pairs are labelled either from a mixture assignment vector (--assignments, one
component per pair, with --means) or from a fixed boundary (--x-max/--y-max,
--slope 0 core only, 1 accessory only, 2 both).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := persist.ReadDistances(distances)
			if err != nil {
				return err
			}
			req := engine.FitAndCluster{Record: rec}
			if assignments != "" {
				if req.Assignments, err = readAssignments(assignments); err != nil {
					return err
				}
				if req.Means, err = parseMeans(means); err != nil {
					return err
				}
			} else {
				req.Boundary = &labels.Boundary{Slope: slope, XMax: xMax, YMax: yMax}
			}
			res, err := a.eng.Run(req)
			if err != nil {
				return err
			}
			return a.writeNetwork(cmd.Context(), out, res)
		},
	}
	cmd.Flags().StringVarP(&distances, "distances", "d", "", "All-vs-all distance snapshot")
	cmd.Flags().StringVarP(&assignments, "assignments", "a", "", "Mixture component per pair, one per line")
	cmd.Flags().StringVar(&means, "means", "", "Component means as core,acc;core,acc;...")
	cmd.Flags().IntVar(&slope, "slope", labels.SlopeTriangle, "Boundary slope mode (0, 1 or 2)")
	cmd.Flags().Float64Var(&xMax, "x-max", 0, "Boundary core-distance intercept")
	cmd.Flags().Float64Var(&yMax, "y-max", 0, "Boundary accessory-distance intercept")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "Output directory")
	cmd.MarkFlagRequired("distances")
	cmd.MarkFlagsMutuallyExclusive("assignments", "x-max")
	cmd.MarkFlagsRequiredTogether("assignments", "means")

	return cmd
}

func referenceCommand(a *app) *cobra.Command {
	var distances, labelFile, out string
	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Cluster a collection from precomputed pair labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := persist.ReadDistances(distances)
			if err != nil {
				return err
			}
			lbls, err := readLabels(labelFile)
			if err != nil {
				return err
			}
			res, err := a.eng.Run(engine.BuildReference{Record: rec, Labels: lbls})
			if err != nil {
				return err
			}
			return a.writeNetwork(cmd.Context(), out, res)
		},
	}
	cmd.Flags().StringVarP(&distances, "distances", "d", "", "All-vs-all distance snapshot")
	cmd.Flags().StringVarP(&labelFile, "labels", "l", "", "Pair labels (1/within, 0/between), one per line")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "Output directory")
	cmd.MarkFlagRequired("distances")
	cmd.MarkFlagRequired("labels")

	return cmd
}

func assignCommand(a *app) *cobra.Command {
	var (
		priorGraph, priorClusters       string
		distances, labelFile            string
		queryDistances, queryLabelsFile string
		out                             string
		updateDB                        bool
	)
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Fold new queries into an existing network",
		Long: `Assign the queries of a reference-vs-query distance snapshot to the clusters
of a prior network. Without --prior-clusters the latest clustering of the
store named by STRAINNET_DB is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, err := persist.ReadGraphML(priorGraph)
			if err != nil {
				return err
			}
			c, err := a.priorClusters(ctx, priorClusters)
			if err != nil {
				return err
			}
			rec, err := persist.ReadDistances(distances)
			if err != nil {
				return err
			}
			lbls, err := readLabels(labelFile)
			if err != nil {
				return err
			}
			req := engine.AssignQuery{
				PriorGraph: g, PriorClusters: c,
				Record: rec, Labels: lbls,
				UpdateReferences: updateDB,
			}
			if queryDistances != "" {
				if req.QueryRecord, err = persist.ReadDistances(queryDistances); err != nil {
					return err
				}
				if req.QueryLabels, err = readLabels(queryLabelsFile); err != nil {
					return err
				}
			}

			res, err := a.eng.Run(req)
			if err != nil {
				return err
			}
			a.log.Info("queries assigned",
				zap.Strings("novel", res.NewClusterMembers),
				zap.Int("matched", len(res.ExistingClusterMatches)),
				zap.Int("merges", len(res.Merges)))
			if err = a.writeNetwork(ctx, out, res); err != nil {
				return err
			}
			return persist.WriteQueryDistances(filepath.Join(out, fileQueries), rec)
		},
	}
	cmd.Flags().StringVarP(&priorGraph, "prior-graph", "g", "", "Prior network (GraphML)")
	cmd.Flags().StringVarP(&priorClusters, "prior-clusters", "c", "", "Prior clustering CSV")
	cmd.Flags().StringVarP(&distances, "distances", "d", "", "Reference-vs-query distance snapshot")
	cmd.Flags().StringVarP(&labelFile, "labels", "l", "", "Labels of the reference-vs-query pairs")
	cmd.Flags().StringVar(&queryDistances, "query-distances", "", "Query-vs-query distance snapshot")
	cmd.Flags().StringVar(&queryLabelsFile, "query-labels", "", "Labels of the query-vs-query pairs")
	cmd.Flags().BoolVar(&updateDB, "update-db", false, "Re-extract references over the updated network")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "Output directory")
	cmd.MarkFlagRequired("prior-graph")
	cmd.MarkFlagRequired("distances")
	cmd.MarkFlagRequired("labels")
	cmd.MarkFlagsRequiredTogether("query-distances", "query-labels")

	return cmd
}

func mstCommand(a *app) *cobra.Command {
	var distances, root, out string
	cmd := &cobra.Command{
		Use:   "mst",
		Short: "Minimum spanning tree over all pairwise distances",
		Long: fmt.Sprintf(`Build the minimum spanning tree of an all-vs-all distance snapshot.

The distance graph is rank-sparsified first (--rank, default %d): each isolate
keeps only its k nearest neighbours, and the result is an approximate tree.
--rank 0 computes the exact tree over every pair.`, defaultMSTRank),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := persist.ReadDistances(distances)
			if err != nil {
				return err
			}
			res, err := a.eng.Run(engine.BuildTree{Record: rec, Root: root, Rooted: root != ""})
			if err != nil {
				return err
			}
			if err = os.MkdirAll(out, 0o755); err != nil {
				return err
			}
			if err = persist.WriteNewick(filepath.Join(out, fileTree), res.Tree); err != nil {
				return err
			}
			tg, err := res.SpanningTree.Graph()
			if err != nil {
				return err
			}
			return persist.WriteGraphML(filepath.Join(out, fileMST), tg)
		},
	}
	cmd.Flags().StringVarP(&distances, "distances", "d", "", "All-vs-all distance snapshot")
	cmd.Flags().Int("rank", defaultMSTRank, "Neighbours kept per isolate before the tree (0 = exact)")
	cmd.Flags().String("backend", "", "Spanning tree backend: cpu, parallel or gonum")
	cmd.Flags().StringVar(&root, "root", "", "Root the tree at this isolate")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "Output directory")
	cmd.MarkFlagRequired("distances")

	return cmd
}

// priorClusters reads the clustering CSV at path, or the latest stored run
// when path is empty. A CSV needs its name ledger: without it absorbed names
// could be issued again.
func (a *app) priorClusters(ctx context.Context, path string) (*cluster.Clustering, error) {
	if path != "" {
		if !persist.HasClusterNames(path) {
			return nil, errkind.Inconsistent("assign",
				fmt.Sprintf("prior clustering has no name ledger %s; use a clustering written by strainnet or STRAINNET_DB",
					persist.ClusterNamesPath(path)))
		}
		c, _, err := persist.ReadClusters(path)
		return c, err
	}
	if a.cfg.DB == "" {
		return nil, errors.New("assign: need --prior-clusters or STRAINNET_DB")
	}
	store, err := persist.OpenClusterStore(ctx, a.cfg.DB)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	runID, c, err := store.LoadLatest(ctx)
	if err != nil {
		return nil, err
	}
	a.log.Info("prior clustering loaded", zap.String("db", a.cfg.DB), zap.String("prior_run", runID))

	return c, nil
}

// writeNetwork writes the graph, clustering and, when present, the references
// of res into dir, and records the clustering in the store when one is configured.
func (a *app) writeNetwork(ctx context.Context, dir string, res *engine.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := persist.WriteGraphML(filepath.Join(dir, fileGraph), res.Graph); err != nil {
		return err
	}
	if err := persist.WriteClusters(filepath.Join(dir, fileClusters), res.Clustering, nil); err != nil {
		return err
	}
	if res.ReducedGraph != nil {
		if err := persist.WriteReferences(filepath.Join(dir, fileReferences), res.References); err != nil {
			return err
		}
		if err := persist.WriteGraphML(filepath.Join(dir, fileRefGraph), res.ReducedGraph); err != nil {
			return err
		}
	}
	a.log.Info("outputs written", zap.String("dir", dir), zap.String("run_id", res.RunID))

	if a.cfg.DB == "" {
		return nil
	}
	store, err := persist.OpenClusterStore(ctx, a.cfg.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveRun(ctx, res.RunID, res.Clustering, res.Merges)
}
