// SPDX-License-Identifier: MIT

package main

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/strainnet/engine"
)

// metricsSink collects engine metrics on a private registry and dumps them to
// a text file when the command ends. An empty path disables it.
type metricsSink struct {
	path string
	reg  *prometheus.Registry
	m    *engine.Metrics
}

func newMetricsSink(path string) *metricsSink {
	if path == "" {
		return &metricsSink{}
	}
	reg := prometheus.NewRegistry()

	return &metricsSink{path: path, reg: reg, m: engine.NewMetrics(reg)}
}

func (s *metricsSink) metrics() *engine.Metrics { return s.m }

func (s *metricsSink) flush() error {
	if s == nil || s.path == "" {
		return nil
	}

	return prometheus.WriteToTextfile(s.path, s.reg)
}
