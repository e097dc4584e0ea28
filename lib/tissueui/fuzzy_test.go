// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"sort"
	"testing"
)

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    bool
	}{
		{name: "whole word", text: "Fix the leaky faucet", pattern: "leaky", want: true},
		{name: "scattered letters", text: "leaky faucet", pattern: "lkf", want: true},
		{name: "lowercase pattern against caps", text: "RENEW PASSPORT", pattern: "renew", want: true},
		{name: "caps pattern against lowercase", text: "renew passport", pattern: "RENEW", want: true},
		{name: "multibyte text", text: "héllo wörld", pattern: "hw", want: true},
		{name: "letters in the wrong order", text: "water the plants", pattern: "pw", want: false},
		{name: "letters not present", text: "Fix the leaky faucet", pattern: "zq", want: false},
		{name: "empty pattern", text: "anything", pattern: "", want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := fuzzyMatch(test.text, []rune(test.pattern), nil)

			if !test.want {
				if result.Score != 0 || len(result.Positions) != 0 {
					t.Fatalf("fuzzyMatch(%q, %q) = %+v, want zero result", test.text, test.pattern, result)
				}
				return
			}

			if result.Score <= 0 {
				t.Fatalf("fuzzyMatch(%q, %q) scored %d, want > 0", test.text, test.pattern, result.Score)
			}

			// One position per pattern rune, ascending, inside the
			// text. The view layer indexes runes with these.
			if len(result.Positions) != len([]rune(test.pattern)) {
				t.Fatalf("got %d positions for a %d-rune pattern: %v",
					len(result.Positions), len([]rune(test.pattern)), result.Positions)
			}
			if !sort.IntsAreSorted(result.Positions) {
				t.Errorf("positions not ascending: %v", result.Positions)
			}
			runeCount := len([]rune(test.text))
			for _, position := range result.Positions {
				if position < 0 || position >= runeCount {
					t.Errorf("position %d outside %q (%d runes)", position, test.text, runeCount)
				}
			}
		})
	}
}
