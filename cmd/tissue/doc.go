// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Tissue is the CLI for a tissuebox, a one-file TOML task tracker. It
// provides subcommands for the tissue lifecycle (add, describe, tag,
// untag, rename, close), reading (list, show), retiring tissues as git
// commits (commit) or GitHub issues (promote), and a full-screen
// interactive UI (ui).
package main
