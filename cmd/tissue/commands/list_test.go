// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"path/filepath"
	"testing"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/tissue"
)

func TestRenderListing(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)
	box := readBox(t, boxPath)

	got := renderListing(box, tissue.Filter{}, false)
	want := `0. Fix flaky test (ci)
  - Reproduce locally
  - Bisect the offending commit
1. Renew passport (errand, urgent)
2. Write release notes
`
	if got != want {
		t.Errorf("listing = %q, want %q", got, want)
	}
}

func TestRenderListingTitlesOnly(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)
	box := readBox(t, boxPath)

	got := renderListing(box, tissue.Filter{}, true)
	want := "Fix flaky test\nRenew passport\nWrite release notes\n"
	if got != want {
		t.Errorf("titles = %q, want %q", got, want)
	}
}

func TestRenderListingFiltered(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)
	box := readBox(t, boxPath)

	got := renderListing(box, tissue.Filter{Tags: []string{"urgent"}}, false)
	want := "0. Renew passport (errand, urgent)\n"
	if got != want {
		t.Errorf("filtered listing = %q, want %q", got, want)
	}

	got = renderListing(box, tissue.Filter{Query: "bisect"}, true)
	want = "Fix flaky test\n"
	if got != want {
		t.Errorf("query listing = %q, want %q", got, want)
	}
}

func TestListMissingBox(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")

	err := runTissue(t, boxPath, "list")
	wantCategory(t, err, cli.CategoryValidation)
}

func TestListRejectsPositionalArgs(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	err := runTissue(t, boxPath, "list", "extra")
	wantCategory(t, err, cli.CategoryValidation)
}
