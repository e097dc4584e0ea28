// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// closest returns the candidate nearest to input, or "" when nothing
// is within edit distance 3. That radius covers the usual typo
// shapes: a swapped pair, a dropped letter, a doubled letter.
func closest(input string, candidates []string) string {
	best := ""
	bestDistance := 4
	for _, candidate := range candidates {
		if distance := levenshtein(input, candidate); distance < bestDistance {
			bestDistance = distance
			best = candidate
		}
	}
	return best
}

// suggestCommand picks the subcommand name nearest to the unknown
// input, or "" when none is close.
func suggestCommand(unknown string, commands []*Command) string {
	names := make([]string, len(commands))
	for index, command := range commands {
		names[index] = command.Name
	}
	return closest(unknown, names)
}

// suggestFlag scans args for the first flag the set does not define
// and returns the nearest defined flag, with its - or -- prefix.
// Returns "" when nothing is close enough to offer.
func suggestFlag(args []string, flagSet *pflag.FlagSet) string {
	var defined []string
	flagSet.VisitAll(func(flag *pflag.Flag) {
		defined = append(defined, flag.Name)
	})

	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name := strings.TrimLeft(arg, "-")
		name, _, _ = strings.Cut(name, "=")

		known := flagSet.Lookup(name) != nil
		if !known && len(name) == 1 {
			known = flagSet.ShorthandLookup(name) != nil
		}
		if known {
			continue
		}

		// Only the first unrecognized flag gets a suggestion.
		match := closest(name, defined)
		switch {
		case match == "":
			return ""
		case len(match) == 1:
			return "-" + match
		default:
			return "--" + match
		}
	}
	return ""
}

// levenshtein is the classic edit distance: how many single-character
// inserts, deletes, and substitutions separate a from b.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Two rows of the distance matrix suffice. Keeping a as the
	// shorter string keeps the rows small.
	if len(a) > len(b) {
		a, b = b, a
	}
	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current[0] = j
		for i := 1; i <= len(a); i++ {
			replace := previous[i-1]
			if a[i-1] != b[j-1] {
				replace++
			}
			current[i] = min(replace, previous[i]+1, current[i-1]+1)
		}
		previous, current = current, previous
	}
	return previous[len(a)]
}
