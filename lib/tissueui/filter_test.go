// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/tissueworks/tissuebox/lib/tissue"
)

// filterTissues builds a small slice of tissues for filter tests
// without going through a box.
func filterTissues(t *testing.T) []tissue.Tissue {
	t.Helper()
	box := testBox(t)
	var all []tissue.Tissue
	for entry := range box.List(tissue.Filter{}) {
		all = append(all, entry)
	}
	return all
}

func TestApplyFuzzyEmptyFilter(t *testing.T) {
	tissues := filterTissues(t)
	filter := FilterModel{}

	results := filter.ApplyFuzzy(tissues)
	if len(results) != len(tissues) {
		t.Fatalf("empty filter should pass all %d tissues, got %d", len(tissues), len(results))
	}
	for index, result := range results {
		if result.Score != 0 {
			t.Errorf("result %d score = %d, want 0 with empty filter", index, result.Score)
		}
		if len(result.TitlePositions) != 0 {
			t.Errorf("result %d should carry no positions with empty filter", index)
		}
		// Incoming order is preserved.
		if result.Tissue.Title != tissues[index].Title {
			t.Errorf("result %d = %q, want %q", index, result.Tissue.Title, tissues[index].Title)
		}
	}
}

func TestApplyFuzzyMatchesTitle(t *testing.T) {
	filter := FilterModel{Input: "flaky"}
	results := filter.ApplyFuzzy(filterTissues(t))

	if len(results) != 1 {
		t.Fatalf("'flaky' should match one tissue, got %d", len(results))
	}
	if results[0].Tissue.Title != "Fix flaky test" {
		t.Errorf("matched %q", results[0].Tissue.Title)
	}
	if results[0].Score <= 0 {
		t.Error("match should carry a positive score")
	}
	if len(results[0].TitlePositions) == 0 {
		t.Error("title match should carry highlight positions")
	}
}

func TestApplyFuzzyMatchesTag(t *testing.T) {
	filter := FilterModel{Input: "urgent"}
	results := filter.ApplyFuzzy(filterTissues(t))

	if len(results) != 1 || results[0].Tissue.Title != "Renew passport" {
		t.Fatalf("'urgent' should match Renew passport via its tag, got %d results", len(results))
	}
	// The query matched a tag, not the title, so no title positions.
	if len(results[0].TitlePositions) != 0 {
		t.Errorf("tag match should carry no title positions, got %v", results[0].TitlePositions)
	}
}

func TestApplyFuzzyMatchesDescriptionLine(t *testing.T) {
	filter := FilterModel{Input: "bisect"}
	results := filter.ApplyFuzzy(filterTissues(t))

	if len(results) != 1 || results[0].Tissue.Title != "Fix flaky test" {
		t.Fatalf("'bisect' should match via a description line, got %d results", len(results))
	}
}

func TestApplyFuzzySortedByScore(t *testing.T) {
	tight := tissue.Tissue{Title: "passport office"}
	scattered := tissue.Tissue{Title: "pass the sport equipment to the north office"}

	filter := FilterModel{Input: "passport"}
	results := filter.ApplyFuzzy([]tissue.Tissue{scattered, tight})

	if len(results) == 0 {
		t.Fatal("expected at least one result")
	}
	if results[0].Tissue.Title != "passport office" {
		t.Errorf("contiguous match should sort first, got %q", results[0].Tissue.Title)
	}
	for index := 1; index < len(results); index++ {
		if results[index].Score > results[index-1].Score {
			t.Errorf("results out of score order at %d", index)
		}
	}
}

func TestApplyFuzzyDropsNonMatches(t *testing.T) {
	filter := FilterModel{Input: "zzzz"}
	if results := filter.ApplyFuzzy(filterTissues(t)); len(results) != 0 {
		t.Errorf("'zzzz' should match nothing, got %d results", len(results))
	}
}

func TestFilterHandleRune(t *testing.T) {
	filter := FilterModel{}
	filter.HandleRune('c')
	filter.HandleRune('i')
	if filter.Input != "ci" {
		t.Errorf("input = %q, want ci", filter.Input)
	}
}

func TestFilterHandleBackspace(t *testing.T) {
	filter := FilterModel{Input: "cité"}
	if !filter.HandleBackspace() {
		t.Error("backspace with text should report a change")
	}
	if filter.Input != "cit" {
		t.Errorf("input = %q, want cit (whole rune removed)", filter.Input)
	}

	filter.Input = ""
	if filter.HandleBackspace() {
		t.Error("backspace on empty input should report no change")
	}
}

func TestFilterClear(t *testing.T) {
	filter := FilterModel{Input: "query", Active: true}
	filter.Clear()
	if filter.Input != "" || filter.Active {
		t.Errorf("clear should reset input and focus, got %+v", filter)
	}
}

func TestFilterView(t *testing.T) {
	filter := FilterModel{}
	if view := filter.View(DefaultTheme, 40); view != "" {
		t.Errorf("inactive empty filter should render nothing, got %q", view)
	}

	filter.Active = true
	filter.Input = "flaky"
	active := ansi.Strip(filter.View(DefaultTheme, 40))
	if !strings.Contains(active, "/ flaky") {
		t.Errorf("active view = %q, want the / prompt with the query", active)
	}

	filter.Active = false
	applied := ansi.Strip(filter.View(DefaultTheme, 40))
	if !strings.Contains(applied, "filter: flaky") {
		t.Errorf("applied view = %q, want the faint filter label", applied)
	}
}
