// SPDX-License-Identifier: MIT

package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the engine's prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	// Runs counts runs by request kind and result ("ok" or "error").
	Runs *prometheus.CounterVec
	// Merges counts cluster merge events raised by incremental assignment.
	Merges prometheus.Counter
	// NewClusters counts cluster names issued, fresh or incremental.
	NewClusters prometheus.Counter
	// Duration observes run wall time by request kind.
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "strainnet_runs_total",
			Help: "Engine runs by request kind and result",
		}, []string{"request", "result"}),
		Merges: f.NewCounter(prometheus.CounterOpts{
			Name: "strainnet_cluster_merges_total",
			Help: "Cluster merge events",
		}),
		NewClusters: f.NewCounter(prometheus.CounterOpts{
			Name: "strainnet_new_clusters_total",
			Help: "Cluster names issued",
		}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "strainnet_run_duration_seconds",
			Help:    "Engine run duration",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"request"}),
	}
}

func (m *Metrics) observe(kind string, start time.Time, res *Result, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Runs.WithLabelValues(kind, result).Inc()
	m.Duration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if res == nil {
		return
	}
	m.Merges.Add(float64(len(res.Merges)))
	m.NewClusters.Add(float64(res.NewClusters))
}
