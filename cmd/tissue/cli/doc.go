// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework behind the tissue binary.
//
// [Command] models one verb: a name, help text with worked [Example]
// entries, an optional [pflag.FlagSet] factory, nested
// [Command.Subcommands], and a Run function. The tree is assembled in
// cmd/tissue/commands; [Command.Execute] walks it, parsing flags at
// each level, printing help when asked, and dispatching to the deepest
// matching Run.
//
// A mistyped subcommand or flag gets a nudge instead of a bare
// failure: suggest.go measures edit distance against every name the
// tree knows and proposes the closest one within three edits.
//
// Run errors are classified with [ToolError] (toolerror.go), so
// callers and tests can tell bad input from a missing tissue from an
// I/O failure without matching on message text. A command that has
// already printed its own failure output returns [ExitError], which
// sets the process exit status without adding a second "error:" line.
package cli
