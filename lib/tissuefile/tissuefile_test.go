// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissuefile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/tissueworks/tissuebox/lib/tissue"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	_, err := Load(path)
	var ioError *IOError
	if !errors.As(err, &ioError) {
		t.Fatalf("Load = %v, want *IOError", err)
	}
	if ioError.Op != "read" || ioError.Path != path {
		t.Errorf("IOError = %+v, want read of %s", ioError, path)
	}
	// The underlying cause stays reachable through the wrapper.
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(err, fs.ErrNotExist) = false for %v", err)
	}
}

func TestLoadPropagatesFormatError(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(path, []byte("[\"Foo\"]\ntags = \"not-an-array\"\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path)
	var formatError *tissue.FormatError
	if !errors.As(err, &formatError) {
		t.Fatalf("Load of malformed file = %v, want *tissue.FormatError", err)
	}
	var ioError *IOError
	if errors.As(err, &ioError) {
		t.Errorf("parse failure wrapped in IOError: %v", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	box := tissue.NewBox()
	desc := "Relies on implementation of Foo"
	if err := box.Add("Upgrade Bar", []string{"help wanted"}, &desc); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := Save(path, box); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	entry, ok := loaded.Get("Upgrade Bar")
	if !ok {
		t.Fatal("saved tissue absent after Load")
	}
	original, _ := box.Get("Upgrade Bar")
	if !entry.Equal(original) {
		t.Errorf("loaded tissue differs:\ngot  %+v\nwant %+v", entry, original)
	}
}

func TestSaveReplacesExistingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := os.WriteFile(path, []byte("[\"Old Entry\"]\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	box := tissue.NewBox()
	if err := box.Add("New Entry", nil, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := Save(path, box); err != nil {
		t.Fatalf("Save: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "[\"New Entry\"]\n"
	if string(content) != want {
		t.Errorf("file content = %q, want %q", content, want)
	}
}

func TestSaveLeavesNoTemporaryFile(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, DefaultPath)

	if err := Save(path, tissue.NewBox()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != DefaultPath {
			t.Errorf("unexpected file left behind: %s", entry.Name())
		}
	}
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "directory", DefaultPath)

	err := Save(path, tissue.NewBox())
	var ioError *IOError
	if !errors.As(err, &ioError) {
		t.Fatalf("Save = %v, want *IOError", err)
	}
	if ioError.Op != "write" {
		t.Errorf("IOError.Op = %q, want write", ioError.Op)
	}
}

func TestMutate(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	if err := Save(path, tissue.NewBox()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	err := Mutate(path, func(box *tissue.Box) error {
		return box.Add("Implement Foo", []string{"bug"}, nil)
	})
	if err != nil {
		t.Fatalf("Mutate: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := loaded.Get("Implement Foo"); !ok {
		t.Error("mutation not persisted")
	}
}

func TestMutateApplyErrorAbortsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	initial := "[\"Keep Me\"]\n"
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	applyError := errors.New("apply failed")
	err := Mutate(path, func(box *tissue.Box) error {
		if err := box.Add("Should Not Persist", nil, nil); err != nil {
			return err
		}
		return applyError
	})
	if !errors.Is(err, applyError) {
		t.Fatalf("Mutate = %v, want the apply error", err)
	}

	content, readErr := os.ReadFile(path)
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(content) != initial {
		t.Errorf("failed Mutate changed the file: %q", content)
	}
}

func TestMutateMissingFilePropagates(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	err := Mutate(path, func(*tissue.Box) error { return nil })
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Mutate on missing file = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestExists(t *testing.T) {
	directory := t.TempDir()
	path := filepath.Join(directory, DefaultPath)

	present, err := Exists(path)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if present {
		t.Error("Exists = true for missing file")
	}

	if err := Save(path, tissue.NewBox()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	present, err = Exists(path)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !present {
		t.Error("Exists = false for present file")
	}
}
