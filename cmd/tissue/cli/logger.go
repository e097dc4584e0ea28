// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger builds the logger handed to command Run
// functions. Output goes to stderr: text format when stderr is a
// terminal, JSON when it is piped or redirected (CI, scripts)
// so the lines stay machine-parseable.
//
// Commands scope it with their own context:
//
//	logger := cli.NewCommandLogger().With("command", "commit")
func NewCommandLogger() *slog.Logger {
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return slog.New(slog.NewTextHandler(os.Stderr, options))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, options))
}
