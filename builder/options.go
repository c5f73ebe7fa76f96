// SPDX-License-Identifier: MIT

package builder

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/dists"
)

// BuilderOption customizes a graph constructor.
type BuilderOption func(*builderConfig)

// WithComponent selects the distance column used as edge weight (default core).
// Panics on an unknown component.
func WithComponent(c dists.Component) BuilderOption {
	if c != dists.Core && c != dists.Accessory {
		panic("builder: WithComponent(unknown component)")
	}
	return func(cfg *builderConfig) {
		cfg.component = c
	}
}

// WithLogger routes the build summary to l. Panics on nil.
func WithLogger(l *zap.Logger) BuilderOption {
	if l == nil {
		panic("builder: WithLogger(nil)")
	}
	return func(cfg *builderConfig) {
		cfg.logger = l
	}
}
