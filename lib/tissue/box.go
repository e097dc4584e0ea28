// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissue

import (
	"iter"
	"sort"
	"strings"
)

// Box is an ordered collection of tissues keyed by unique title.
// Canonical order is lexicographic (byte-wise) on title, so
// serialization depends only on the box contents, never on insertion
// history.
//
// A Box is not safe for concurrent use. The tool is a short-lived
// single-threaded process; the interactive viewer keeps all box
// mutation on its update goroutine.
type Box struct {
	entries map[string]Tissue
}

// NewBox returns an empty box.
func NewBox() *Box {
	return &Box{entries: make(map[string]Tissue)}
}

// Len returns the number of tissues in the box.
func (b *Box) Len() int {
	return len(b.entries)
}

// Titles returns every title in canonical order. The slice is fresh;
// the caller may keep or modify it.
func (b *Box) Titles() []string {
	titles := make([]string, 0, len(b.entries))
	for title := range b.entries {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Add creates a tissue from its parts and inserts it. Tags are
// deduplicated in first-appearance order. Fails with ErrEmptyTitle
// when the title is empty or whitespace-only and with
// *DuplicateTitleError when the title is taken; the box is unchanged
// on failure.
func (b *Box) Add(title string, tags []string, desc *string) error {
	t := Tissue{Title: title, Desc: desc}
	for _, tag := range tags {
		t.Tag(tag)
	}
	return b.Insert(t)
}

// Insert adds a complete tissue record. Same validation as Add. The
// box stores a deep copy; later mutation of the argument does not
// affect the box.
func (b *Box) Insert(t Tissue) error {
	if err := validateTitle(t.Title); err != nil {
		return err
	}
	if _, exists := b.entries[t.Title]; exists {
		return &DuplicateTitleError{Title: t.Title}
	}
	b.entries[t.Title] = t.Clone()
	return nil
}

// Get returns a copy of the tissue with the exact title, and whether
// one exists. Mutating the copy does not affect the box; use Update.
func (b *Box) Get(title string) (Tissue, bool) {
	entry, ok := b.entries[title]
	if !ok {
		return Tissue{}, false
	}
	return entry.Clone(), true
}

// Update applies mutate to the tissue with the given title. Returns
// *NotFoundError when the title is absent.
//
// The mutator runs on a copy and may change any field, including the
// title; a title change carries rename semantics (ErrEmptyTitle or
// *DuplicateTitleError on collision). The box is updated only after
// validation passes, so a failed update leaves it untouched even when
// the mutator ran.
func (b *Box) Update(title string, mutate func(*Tissue)) error {
	entry, ok := b.entries[title]
	if !ok {
		return &NotFoundError{Title: title}
	}
	updated := entry.Clone()
	mutate(&updated)
	if updated.Title != title {
		if err := validateTitle(updated.Title); err != nil {
			return err
		}
		if _, exists := b.entries[updated.Title]; exists {
			return &DuplicateTitleError{Title: updated.Title}
		}
		delete(b.entries, title)
	}
	b.entries[updated.Title] = updated
	return nil
}

// Remove deletes the tissue with the given title and returns it.
// Returns *NotFoundError when the title is absent. The box keeps no
// tombstones; persisting the deletion is the caller's job via
// write-back.
func (b *Box) Remove(title string) (Tissue, error) {
	entry, ok := b.entries[title]
	if !ok {
		return Tissue{}, &NotFoundError{Title: title}
	}
	delete(b.entries, title)
	return entry, nil
}

// Rename moves a tissue to a new title, preserving every other field.
// Renaming a title to itself is a no-op. Failures return a
// *RenameError wrapping the cause (*NotFoundError for a missing old
// title, ErrEmptyTitle or *DuplicateTitleError for a bad new title);
// the box is unchanged on failure.
func (b *Box) Rename(old, new string) error {
	entry, ok := b.entries[old]
	if !ok {
		return &RenameError{Old: old, New: new, Err: &NotFoundError{Title: old}}
	}
	if old == new {
		return nil
	}
	if err := validateTitle(new); err != nil {
		return &RenameError{Old: old, New: new, Err: err}
	}
	if _, exists := b.entries[new]; exists {
		return &RenameError{Old: old, New: new, Err: &DuplicateTitleError{Title: new}}
	}
	entry.Title = new
	delete(b.entries, old)
	b.entries[new] = entry
	return nil
}

// List returns a lazy sequence of the tissues matching the filter, in
// canonical order. Each range over the sequence restarts it. The
// yielded tissues are copies; mutating them does not affect the box.
func (b *Box) List(filter Filter) iter.Seq[Tissue] {
	return func(yield func(Tissue) bool) {
		for _, title := range b.Titles() {
			entry := b.entries[title]
			if !filter.Matches(entry) {
				continue
			}
			if !yield(entry.Clone()) {
				return
			}
		}
	}
}

// validateTitle rejects empty and whitespace-only titles.
func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
