// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"sort"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// FuzzyResult holds the outcome of matching a pattern against one
// piece of text. A zero Score means no match. Positions are the rune
// indices of the matched characters, ascending, for highlight
// rendering.
type FuzzyResult struct {
	Score     int
	Positions []int
}

// fuzzyMatch runs fzf's V2 matching algorithm over the text.
// Matching is case-insensitive: the pattern is lowercased here and
// the algorithm folds the text side. The slab is optional scratch
// space; nil makes the algorithm allocate per call, which is fine for
// one-off matches but worth sharing across a whole filter pass.
func fuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{}
	}

	lowered := make([]rune, len(pattern))
	for i, r := range pattern {
		lowered[i] = unicode.ToLower(r)
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(false, true, true, &chars, lowered, true, slab)
	if result.Score <= 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = *positions
		// The algorithm reports positions in reverse traversal order.
		sort.Ints(matched)
	}
	return FuzzyResult{Score: result.Score, Positions: matched}
}
