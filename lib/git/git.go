// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package git provides typed access to the git CLI. Tissue uses git in
// two places: the commit verb stages and commits the work tree under a
// tissue's title, and first-run setup offers to hide the tissuebox in
// the repository's local exclude file.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// A Repository names the directory git commands run against. Every
// call passes that directory explicitly with -C, so nothing here
// depends on the process working directory.
type Repository struct {
	dir string
}

// NewRepository targets dir, normally the directory holding the
// tissuebox file.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// Dir reports the directory this Repository targets.
func (r *Repository) Dir() string {
	return r.dir
}

// Run executes one git command against the repository and returns its
// stdout. On failure the error names the command and directory and
// carries whatever git wrote to stderr, which is where git puts the
// human-readable cause.
func (r *Repository) Run(ctx context.Context, args ...string) (string, error) {
	command := exec.CommandContext(ctx, "git", append([]string{"-C", r.dir}, args...)...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	err := command.Run()
	if err == nil {
		return stdout.String(), nil
	}
	if detail := strings.TrimSpace(stderr.String()); detail != "" {
		err = fmt.Errorf("%w: %s", err, detail)
	}
	return "", fmt.Errorf("git %s in %s: %w", strings.Join(args, " "), r.dir, err)
}

// AddAll stages every change in the work tree, including untracked and
// deleted files.
func (r *Repository) AddAll(ctx context.Context) error {
	_, err := r.Run(ctx, "add", "--all")
	return err
}

// Commit records the staged changes with the given message. Nothing
// staged is an error, matching git's own exit status.
func (r *Repository) Commit(ctx context.Context, message string) error {
	_, err := r.Run(ctx, "commit", "-m", message)
	return err
}

// IsWorkTree reports whether the directory is inside a git work tree.
// Errors (git missing, not a repository) report false: callers ask
// this to decide whether to offer git integration, and for a
// non-repository the answer is simply no.
func (r *Repository) IsWorkTree(ctx context.Context) bool {
	output, err := r.Run(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(output) == "true"
}

// ExcludePath returns the repository's local exclude file,
// <common-dir>/info/exclude. Unlike .gitignore this file is never
// committed, so a tissuebox listed there stays out of everyone else's
// checkout rules.
func (r *Repository) ExcludePath(ctx context.Context) (string, error) {
	output, err := r.Run(ctx, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return "", err
	}
	return filepath.Join(strings.TrimSpace(output), "info", "exclude"), nil
}
