// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissue

import (
	"errors"
	"fmt"
)

// ErrEmptyTitle is returned by Add, Insert, and the rename paths when
// a title is empty or whitespace-only.
var ErrEmptyTitle = errors.New("tissue: title is empty")

// DuplicateTitleError reports an insertion or rename that would give
// two tissues the same title.
type DuplicateTitleError struct {
	// Title is the already-occupied title.
	Title string
}

func (err *DuplicateTitleError) Error() string {
	return fmt.Sprintf("tissue %q already exists", err.Title)
}

// NotFoundError reports a lookup, update, or removal of a title that
// is not in the box.
type NotFoundError struct {
	// Title is the missing title.
	Title string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("no tissue titled %q", err.Title)
}

// RenameError reports a failed rename. Err is the underlying cause:
// a *NotFoundError when the old title is absent, a
// *DuplicateTitleError when the new title is taken, or ErrEmptyTitle
// when the new title is blank.
type RenameError struct {
	Old string
	New string
	Err error
}

func (err *RenameError) Error() string {
	return fmt.Sprintf("rename %q to %q: %v", err.Old, err.New, err.Err)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (err *RenameError) Unwrap() error {
	return err.Err
}
