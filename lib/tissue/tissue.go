// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissue

import (
	"maps"
	"slices"
)

// Tissue is a single task record. The title doubles as the unique key
// within a box and the human-readable name; it changes only through
// the explicit rename operation.
type Tissue struct {
	// Title identifies the tissue within its box. Uniqueness is
	// case-sensitive and enforced by the box at insertion time.
	Title string

	// Tags in insertion order. Order is preserved for display but has
	// no search semantics. A tag appears at most once; adding an
	// already-present tag keeps its first-insertion position.
	Tags []string

	// Desc is the free-form description. Nil means absent, which is
	// distinct from pointing at an empty string.
	Desc *string

	// Extra holds fields present in the source file but not recognized
	// by the schema, preserved verbatim for forward compatibility.
	Extra map[string]Value
}

// Tag adds a tag if it is not already present. Adding an existing tag
// is a no-op.
func (t *Tissue) Tag(tag string) {
	if t.HasTag(tag) {
		return
	}
	t.Tags = append(t.Tags, tag)
}

// Untag removes a tag. Reports whether the tag was present.
func (t *Tissue) Untag(tag string) bool {
	for i, existing := range t.Tags {
		if existing == tag {
			t.Tags = append(t.Tags[:i], t.Tags[i+1:]...)
			return true
		}
	}
	return false
}

// HasTag reports whether the tissue carries the tag.
func (t *Tissue) HasTag(tag string) bool {
	return slices.Contains(t.Tags, tag)
}

// SetDesc sets the description to text. An empty string is a present,
// empty description, not an absent one.
func (t *Tissue) SetDesc(text string) {
	t.Desc = &text
}

// ClearDesc removes the description entirely.
func (t *Tissue) ClearDesc() {
	t.Desc = nil
}

// Description returns the description text and whether one is present.
func (t *Tissue) Description() (string, bool) {
	if t.Desc == nil {
		return "", false
	}
	return *t.Desc, true
}

// Equal reports structural equality: same title, same tags in the
// same order, same description presence and value, and deeply equal
// extra fields. Nil and empty tag slices compare equal, as do nil and
// empty extra maps.
func (t Tissue) Equal(other Tissue) bool {
	if t.Title != other.Title {
		return false
	}
	if !slices.Equal(t.Tags, other.Tags) {
		return false
	}
	if (t.Desc == nil) != (other.Desc == nil) {
		return false
	}
	if t.Desc != nil && *t.Desc != *other.Desc {
		return false
	}
	return maps.EqualFunc(t.Extra, other.Extra, Value.Equal)
}

// Clone returns a deep copy sharing no mutable state with the
// original.
func (t Tissue) Clone() Tissue {
	clone := Tissue{
		Title: t.Title,
		Tags:  slices.Clone(t.Tags),
	}
	if t.Desc != nil {
		text := *t.Desc
		clone.Desc = &text
	}
	if t.Extra != nil {
		clone.Extra = make(map[string]Value, len(t.Extra))
		for key, value := range t.Extra {
			clone.Extra[key] = cloneValue(value)
		}
	}
	return clone
}
