// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissue

import "slices"

// Promotion is the external-tracker shape of a tissue: the title maps
// to the remote title, the description to the body, and the tags to
// labels in tag order. An absent description maps to an empty body.
//
// Promotion is a pure mapping; the publisher that consumes it removes
// the tissue and writes the box back only after the remote side
// confirms creation, so a tissue never ends up both local-and-remote
// or neither.
type Promotion struct {
	Title  string
	Body   string
	Labels []string
}

// Promotion returns the external-tracker mapping for the tissue.
func (t Tissue) Promotion() Promotion {
	promotion := Promotion{
		Title:  t.Title,
		Labels: slices.Clone(t.Tags),
	}
	if t.Desc != nil {
		promotion.Body = *t.Desc
	}
	return promotion
}
