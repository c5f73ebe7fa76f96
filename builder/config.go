// SPDX-License-Identifier: MIT

package builder

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/strainnet/dists"
)

// builderConfig is resolved once per constructor call from BuilderOption values.
type builderConfig struct {
	// component selects the distance column that weights edges.
	component dists.Component

	// logger receives the post-build summary; never nil after resolution.
	logger *zap.Logger
}

const defaultComponent = dists.Core

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		component: defaultComponent,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
