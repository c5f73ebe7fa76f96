// SPDX-License-Identifier: MIT

// Package logger builds the zap loggers used across strainnet.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of every log line.
const TimeLayout = "Jan _2 15:04:05.000000000"

// New returns a development-style console logger at level, without stack traces.
func New(level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(TimeLayout)
	encoderConfig.StacktraceKey = "" // hide stack traces
	config.EncoderConfig = encoderConfig

	return config.Build()
}

// ParseLevel accepts debug, info, warn, error (case-insensitive).
func ParseLevel(s string) (zapcore.Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(s)))); err != nil {
		return l, fmt.Errorf("logger: unknown level %q", s)
	}

	return l, nil
}

// Must is New for main packages: it panics on error.
func Must(level zapcore.Level) *zap.Logger {
	l, err := New(level)
	if err != nil {
		panic(err)
	}

	return l
}
