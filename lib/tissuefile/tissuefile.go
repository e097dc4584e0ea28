// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

// Package tissuefile is the storage layer around the tissue codec: it
// owns the read-parse-mutate-serialize-write lifecycle of a tissuebox
// file.
//
// Writes are atomic: content goes to a temporary file in the same
// directory, is fsynced, and is renamed into place. A crash or a
// concurrent writer can lose the race (last writer wins) but can never
// leave a structurally corrupt file. Read-then-write is not
// transactional against concurrent external edits; that risk is
// accepted.
package tissuefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tissueworks/tissuebox/lib/tissue"
)

// DefaultPath is the conventional tissuebox file name, kept at the
// root of the repository it tracks.
const DefaultPath = ".tissuebox"

// IOError reports a storage-layer failure. Op is "read", "write", or
// "rename"; Err is the underlying cause (Unwrap exposes it, so
// errors.Is(err, fs.ErrNotExist) works through an IOError).
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (err *IOError) Error() string {
	return fmt.Sprintf("tissuefile: %s %s: %v", err.Op, err.Path, err.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (err *IOError) Unwrap() error {
	return err.Err
}

// Load reads and parses a tissuebox file. Read failures return an
// *IOError; parse failures propagate the codec's *FormatError
// unchanged.
func Load(path string) (*tissue.Box, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return tissue.Parse(data)
}

// Save serializes the box and atomically replaces the file at path.
// The content is written to path+".tmp", fsynced, closed, and renamed
// into place; on any failure the temporary file is removed and an
// *IOError is returned. After the rename the parent directory is
// fsynced best-effort so the replacement survives power loss.
//
// The file is created with mode 0644: the tissuebox is an ordinary
// repository text file, meant to be read and hand-edited.
func Save(path string, box *tissue.Box) error {
	data := tissue.Serialize(box)

	temporaryPath := path + ".tmp"
	file, err := os.OpenFile(temporaryPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("creating temporary tissuebox file: %w", err)}
	}

	// Write, sync, close, in that order. If any step fails, remove
	// the temporary file and report the first error.
	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("writing temporary tissuebox file: %w", err)}
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("syncing temporary tissuebox file: %w", err)}
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return &IOError{Op: "write", Path: path, Err: fmt.Errorf("closing temporary tissuebox file: %w", err)}
	}

	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	// Sync the parent directory so the rename itself is durable. This
	// matters when the machine loses power between the rename and the
	// OS flushing directory metadata.
	if parentDirectory, err := os.Open(filepath.Dir(path)); err == nil {
		parentDirectory.Sync()
		parentDirectory.Close()
	}

	return nil
}

// Mutate runs the full read-parse-mutate-serialize-write cycle: the
// box is loaded, apply runs on it, and the result is saved. An error
// from apply aborts before anything touches the disk.
func Mutate(path string, apply func(*tissue.Box) error) error {
	box, err := Load(path)
	if err != nil {
		return err
	}
	if err := apply(box); err != nil {
		return err
	}
	return Save(path, box)
}

// Exists reports whether a tissuebox file is present at path. Used
// for first-run detection; errors other than absence are reported.
func Exists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &IOError{Op: "read", Path: path, Err: err}
	}
	return true, nil
}
