// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/tissueworks/tissuebox/lib/tissue"
)

// Slab sizes match fzf's own defaults. One slab is shared across a
// whole filter pass so per-keystroke narrowing does not allocate per
// candidate.
const (
	slabSize16 = 100 * 1024
	slabSize32 = 2048
)

// FilterModel implements fzf-style incremental narrowing of the
// tissue list. Matching runs against titles, tags, and description
// lines; while a query is present the list orders by match quality
// instead of canonical title order.
type FilterModel struct {
	// Input is the query as typed so far.
	Input string

	// Active marks the query as having keyboard focus. Pressing /
	// sets it; enter and escape drop it.
	Active bool
}

// FilterResult pairs a tissue with its fuzzy match quality.
// TitlePositions holds matched rune indices in the title for
// highlight rendering; matches on tags or description lines
// contribute to the score but carry no positions.
type FilterResult struct {
	Tissue         tissue.Tissue
	Score          int
	TitlePositions []int
}

// ApplyFuzzy matches the current query against each tissue and
// returns the matches sorted by score, best first. The sort is
// stable, so equal scores keep their incoming order. An empty query
// returns every tissue in place with zero scores.
func (filter *FilterModel) ApplyFuzzy(tissues []tissue.Tissue) []FilterResult {
	if filter.Input == "" {
		results := make([]FilterResult, len(tissues))
		for i, t := range tissues {
			results[i] = FilterResult{Tissue: t}
		}
		return results
	}

	pattern := []rune(filter.Input)
	slab := util.MakeSlab(slabSize16, slabSize32)

	var results []FilterResult
	for _, t := range tissues {
		titleMatch := fuzzyMatch(t.Title, pattern, slab)
		best := titleMatch.Score
		for _, tag := range t.Tags {
			if match := fuzzyMatch(tag, pattern, slab); match.Score > best {
				best = match.Score
			}
		}
		if desc, ok := t.Description(); ok {
			for _, line := range strings.Split(desc, "\n") {
				if match := fuzzyMatch(line, pattern, slab); match.Score > best {
					best = match.Score
				}
			}
		}
		if best <= 0 {
			continue
		}
		results = append(results, FilterResult{
			Tissue:         t,
			Score:          best,
			TitlePositions: titleMatch.Positions,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// HandleRune appends a typed character to the query. The returned
// bool reports whether the query changed; appending always changes
// it.
func (filter *FilterModel) HandleRune(character rune) bool {
	filter.Input += string(character)
	return true
}

// HandleBackspace drops the last rune of the query and reports
// whether anything was removed.
func (filter *FilterModel) HandleBackspace() bool {
	runes := []rune(filter.Input)
	if len(runes) == 0 {
		return false
	}
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear wipes the query and drops keyboard focus.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar: the live query with a block cursor
// while typing, the applied query dimmed once focus moves back to
// the list, nothing at all when no filter is set.
func (filter *FilterModel) View(theme Theme, width int) string {
	switch {
	case filter.Active:
		cursor := lipgloss.NewStyle().
			Foreground(theme.HeaderForeground).
			Bold(true).
			Render("▎")
		return lipgloss.NewStyle().
			Foreground(theme.NormalText).
			Width(width).
			Render(" / " + filter.Input + cursor)
	case filter.Input != "":
		return lipgloss.NewStyle().
			Foreground(theme.FaintText).
			Width(width).
			Render(" filter: " + filter.Input)
	default:
		return ""
	}
}
