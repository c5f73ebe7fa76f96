// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/strainnet/config"
	"github.com/katalvlaran/strainnet/dists"
)

func lookupOf(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	c, err := config.FromLookup(lookupOf(nil))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
	assert.Equal(t, 1, c.Threads)
	assert.Equal(t, "cpu", c.Backend)
	assert.Equal(t, zapcore.InfoLevel, c.LogLevel)
}

func TestFromLookup_AllSet(t *testing.T) {
	c, err := config.FromLookup(lookupOf(map[string]string{
		config.EnvThreads:     "8",
		config.EnvRank:        "10",
		config.EnvBackend:     "Parallel",
		config.EnvComponent:   "accessory",
		config.EnvMinRetained: "0.25",
		config.EnvLogLevel:    "debug",
		config.EnvDB:          "/tmp/clusters.db",
	}))
	require.NoError(t, err)
	assert.Equal(t, 8, c.Threads)
	assert.Equal(t, 10, c.Rank)
	assert.Equal(t, "parallel", c.Backend)
	assert.Equal(t, dists.Accessory, c.Component)
	assert.Equal(t, 0.25, c.MinRetainedFraction)
	assert.Equal(t, zapcore.DebugLevel, c.LogLevel)
	assert.Equal(t, "/tmp/clusters.db", c.DB)
}

func TestFromLookup_InvalidNamesVariable(t *testing.T) {
	cases := map[string]string{
		config.EnvThreads:     "0",
		config.EnvRank:        "-1",
		config.EnvComponent:   "both",
		config.EnvMinRetained: "1.5",
		config.EnvLogLevel:    "verbose",
	}
	for name, value := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.FromLookup(lookupOf(map[string]string{name: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strainnet.env")
	require.NoError(t, os.WriteFile(path, []byte("STRAINNET_RANK=7\nSTRAINNET_THREADS=3\n"), 0o644))
	t.Setenv(config.EnvThreads, "2") // set variables win over the file
	t.Setenv(config.EnvRank, "")
	require.NoError(t, os.Unsetenv(config.EnvRank))

	c, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, c.EnvFileLoaded)
	assert.Equal(t, 7, c.Rank)
	assert.Equal(t, 2, c.Threads)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv(config.EnvThreads, "4")
	c, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.False(t, c.EnvFileLoaded)
	assert.Equal(t, 4, c.Threads)
}
