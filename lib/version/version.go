// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package version carries the build metadata stamped into the tissue
// binary.
//
// The values below are placeholders until the linker overwrites
// them:
//
//	go build -ldflags "-X github.com/tissueworks/tissuebox/lib/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
)

// Stamped by -ldflags; the defaults describe an unstamped dev build.
var (
	// Version is the release number, bumped by hand at tag time.
	Version = "0.1.0-dev"

	// GitCommit is the short SHA the binary was built from.
	GitCommit = "unknown"

	// GitDirty is "true" when the work tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Info renders the one-line form shown by --version: release, commit
// (suffixed -dirty when the tree was), and build time.
func Info() string {
	commit := GitCommit
	if GitDirty == "true" {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}

// Full appends the Go toolchain and target platform to Info.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns the bare release number.
func Short() string {
	return Version
}
