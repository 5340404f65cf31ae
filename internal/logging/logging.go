// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging constructs the zerolog logger shared by the gateway
// components.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing human-readable output to w at the given
// level. An empty level defaults to "info"; an unknown level disables
// logging rather than failing startup.
func New(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.Disabled
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything. Components take a
// logger by value; tests pass this one.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
