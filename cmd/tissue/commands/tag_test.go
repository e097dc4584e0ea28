// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
)

func TestTagAdds(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	if err := runTissue(t, boxPath, "tag", "Write release notes", "docs", "launch"); err != nil {
		t.Fatalf("tag: %v", err)
	}

	got, _ := readBox(t, boxPath).Get("Write release notes")
	if !slices.Equal(got.Tags, []string{"docs", "launch"}) {
		t.Errorf("tags = %v, want [docs launch]", got.Tags)
	}
}

func TestTagIdempotent(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	if err := runTissue(t, boxPath, "tag", "Fix flaky test", "ci"); err != nil {
		t.Fatalf("tag: %v", err)
	}

	got, _ := readBox(t, boxPath).Get("Fix flaky test")
	if !slices.Equal(got.Tags, []string{"ci"}) {
		t.Errorf("tags = %v, want the single original tag", got.Tags)
	}
}

func TestTagMissingTissue(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	err := runTissue(t, boxPath, "tag", "No such tissue", "ci")
	wantCategory(t, err, cli.CategoryNotFound)
}

func TestTagEmptyTag(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	err := runTissue(t, boxPath, "tag", "Write release notes", "")
	wantCategory(t, err, cli.CategoryValidation)

	got, _ := readBox(t, boxPath).Get("Write release notes")
	if len(got.Tags) != 0 {
		t.Errorf("tags = %v, want the tissue untouched", got.Tags)
	}
}
