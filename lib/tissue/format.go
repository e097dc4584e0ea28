// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissue

import (
	"fmt"
	"strings"
)

// FormatTissue renders a tissue in the canonical text shape shared by
// the list command and clipboard copy: the title line with a
// parenthesized tag list when tags exist, then one indented line per
// description line.
//
//	Upgrade Bar (infra, build)
//	  - blocked on the 1.4 toolchain
//	  - retest against musl once it lands
func FormatTissue(t Tissue) string {
	var builder strings.Builder
	builder.WriteString(t.Title)
	if len(t.Tags) > 0 {
		builder.WriteString(" (")
		builder.WriteString(strings.Join(t.Tags, ", "))
		builder.WriteString(")")
	}
	builder.WriteString("\n")
	if desc, ok := t.Description(); ok {
		for _, line := range strings.Split(desc, "\n") {
			fmt.Fprintf(&builder, "  - %s\n", line)
		}
	}
	return builder.String()
}

// FormatList renders tissues as a numbered list, one FormatTissue
// block per entry. Numbering is zero-based and purely positional;
// tissues are addressed by title everywhere else.
func FormatList(tissues []Tissue) string {
	var builder strings.Builder
	for index, t := range tissues {
		fmt.Fprintf(&builder, "%d. %s", index, FormatTissue(t))
	}
	return builder.String()
}
