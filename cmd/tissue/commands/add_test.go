// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"path/filepath"
	"testing"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
	"github.com/tissueworks/tissuebox/lib/tissuefile"
)

func TestAddCreatesBox(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")

	err := runTissue(t, boxPath, "add", "Fix the leaky faucet",
		"--tag", "plumbing", "--tag", "urgent", "--desc", "kitchen sink, cold side")
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	exists, err := tissuefile.Exists(boxPath)
	if err != nil || !exists {
		t.Fatalf("expected tissuebox at %s (exists=%v, err=%v)", boxPath, exists, err)
	}

	box := readBox(t, boxPath)
	got, ok := box.Get("Fix the leaky faucet")
	if !ok {
		t.Fatal("tissue not found after add")
	}
	if len(got.Tags) != 2 || got.Tags[0] != "plumbing" || got.Tags[1] != "urgent" {
		t.Errorf("tags = %v, want [plumbing urgent]", got.Tags)
	}
	desc, ok := got.Description()
	if !ok || desc != "kitchen sink, cold side" {
		t.Errorf("desc = %q (ok=%v), want %q", desc, ok, "kitchen sink, cold side")
	}
}

func TestAddToExistingBox(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	if err := runTissue(t, boxPath, "add", "Fix the leaky faucet"); err != nil {
		t.Fatalf("add: %v", err)
	}

	box := readBox(t, boxPath)
	if box.Len() != 4 {
		t.Errorf("box has %d tissues, want 4", box.Len())
	}
	if _, ok := box.Get("Fix flaky test"); !ok {
		t.Error("existing tissue lost by add")
	}
}

func TestAddDuplicateTitle(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	err := runTissue(t, boxPath, "add", "Fix flaky test")
	wantCategory(t, err, cli.CategoryConflict)

	if box := readBox(t, boxPath); box.Len() != 3 {
		t.Errorf("box has %d tissues after failed add, want 3", box.Len())
	}
}

func TestAddEmptyTitle(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")

	err := runTissue(t, boxPath, "add", "   ")
	wantCategory(t, err, cli.CategoryValidation)

	exists, statErr := tissuefile.Exists(boxPath)
	if statErr != nil {
		t.Fatalf("Exists: %v", statErr)
	}
	if exists {
		t.Error("failed add created the tissuebox file")
	}
}

func TestAddArgumentCount(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")

	wantCategory(t, runTissue(t, boxPath, "add"), cli.CategoryValidation)
	wantCategory(t, runTissue(t, boxPath, "add", "one", "two"), cli.CategoryValidation)
}
