// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/tissueworks/tissuebox/cmd/tissue/cli"
)

func TestRenameMoves(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	if err := runTissue(t, boxPath, "rename", "Renew passport", "Renew passport before June"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	box := readBox(t, boxPath)
	if _, ok := box.Get("Renew passport"); ok {
		t.Error("old title still present after rename")
	}
	got, ok := box.Get("Renew passport before June")
	if !ok {
		t.Fatal("new title missing after rename")
	}
	if !slices.Equal(got.Tags, []string{"errand", "urgent"}) {
		t.Errorf("tags = %v, want them carried across the rename", got.Tags)
	}
}

func TestRenameConflict(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	err := runTissue(t, boxPath, "rename", "Renew passport", "Fix flaky test")
	wantCategory(t, err, cli.CategoryConflict)

	box := readBox(t, boxPath)
	if _, ok := box.Get("Renew passport"); !ok {
		t.Error("source tissue lost by a failed rename")
	}
	if _, ok := box.Get("Fix flaky test"); !ok {
		t.Error("target tissue lost by a failed rename")
	}
}

func TestRenameMissing(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	err := runTissue(t, boxPath, "rename", "No such tissue", "Anything")
	wantCategory(t, err, cli.CategoryNotFound)
}

func TestRenameEmptyNew(t *testing.T) {
	boxPath := filepath.Join(t.TempDir(), ".tissuebox")
	seedBox(t, boxPath)

	err := runTissue(t, boxPath, "rename", "Renew passport", "   ")
	wantCategory(t, err, cli.CategoryValidation)

	if _, ok := readBox(t, boxPath).Get("Renew passport"); !ok {
		t.Error("tissue lost by a rejected rename")
	}
}
