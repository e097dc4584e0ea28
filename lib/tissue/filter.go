// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissue

import "strings"

// Filter selects tissues from a box. The zero value matches every
// tissue.
type Filter struct {
	// Tags restricts matches to tissues carrying every listed tag
	// (AND semantics; a tissue with only some of the tags does not
	// match).
	Tags []string

	// Query restricts matches to tissues whose title or description
	// contains the text, case-insensitively.
	Query string
}

// Matches reports whether the tissue passes the filter.
func (f Filter) Matches(t Tissue) bool {
	for _, tag := range f.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}
	if f.Query != "" {
		query := strings.ToLower(f.Query)
		if strings.Contains(strings.ToLower(t.Title), query) {
			return true
		}
		desc, ok := t.Description()
		if !ok || !strings.Contains(strings.ToLower(desc), query) {
			return false
		}
	}
	return true
}
