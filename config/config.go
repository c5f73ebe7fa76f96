// SPDX-License-Identifier: MIT

// Package config reads engine settings from the environment, optionally
// seeded from a .env file.
//
// Variables (defaults in brackets):
//
//	STRAINNET_THREADS       worker count for parallel stages [1]
//	STRAINNET_RANK          MST rank sparsification, 0 = exact [0]
//	STRAINNET_BACKEND       spanning tree backend [cpu]
//	STRAINNET_COMPONENT     distance column for edge weights, core|accessory [core]
//	STRAINNET_MIN_RETAINED  reference floor fraction in [0, 1] [0]
//	STRAINNET_LOG_LEVEL     debug|info|warn|error [info]
//	STRAINNET_DB            clustering store path, empty disables it []
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/strainnet/dists"
	"github.com/katalvlaran/strainnet/logger"
)

// Environment variable names.
const (
	EnvThreads     = "STRAINNET_THREADS"
	EnvRank        = "STRAINNET_RANK"
	EnvBackend     = "STRAINNET_BACKEND"
	EnvComponent   = "STRAINNET_COMPONENT"
	EnvMinRetained = "STRAINNET_MIN_RETAINED"
	EnvLogLevel    = "STRAINNET_LOG_LEVEL"
	EnvDB          = "STRAINNET_DB"
)

// Config is the resolved settings.
type Config struct {
	Threads             int
	Rank                int
	Backend             string
	Component           dists.Component
	MinRetainedFraction float64
	LogLevel            zapcore.Level
	DB                  string

	// EnvFileLoaded reports whether the .env file was found and read.
	EnvFileLoaded bool
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Threads:   1,
		Backend:   "cpu",
		Component: dists.Core,
		LogLevel:  zapcore.InfoLevel,
	}
}

// Load reads envFile (".env" when empty) into the process environment without
// overriding variables already set, then resolves the settings. A missing file
// is not an error; EnvFileLoaded is false.
func Load(envFile string) (Config, error) {
	var err error
	if envFile == "" {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(envFile)
	}

	c, lerr := FromLookup(os.LookupEnv)
	c.EnvFileLoaded = err == nil

	return c, lerr
}

// FromLookup resolves the settings through lookup, e.g. os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvThreads); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c, invalid(EnvThreads, v, "a positive integer")
		}
		c.Threads = n
	}
	if v, ok := get(EnvRank); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c, invalid(EnvRank, v, "a non-negative integer")
		}
		c.Rank = n
	}
	if v, ok := get(EnvBackend); ok {
		c.Backend = strings.ToLower(v)
	}
	if v, ok := get(EnvComponent); ok {
		comp, err := dists.ParseComponent(v)
		if err != nil {
			return c, invalid(EnvComponent, v, "core or accessory")
		}
		c.Component = comp
	}
	if v, ok := get(EnvMinRetained); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			return c, invalid(EnvMinRetained, v, "a fraction in [0, 1]")
		}
		c.MinRetainedFraction = f
	}
	if v, ok := get(EnvLogLevel); ok {
		l, err := logger.ParseLevel(v)
		if err != nil {
			return c, invalid(EnvLogLevel, v, "debug, info, warn or error")
		}
		c.LogLevel = l
	}
	if v, ok := get(EnvDB); ok {
		c.DB = v
	}

	return c, nil
}

func invalid(name, value, want string) error {
	return fmt.Errorf("config: %s=%q: want %s", name, value, want)
}
