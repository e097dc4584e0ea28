// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import "strings"

// helpText is the help screen content, authored as markdown and
// rendered through RenderMarkdown so key names get code-span styling
// and the text reflows to the terminal width.
var helpText = strings.Join([]string{
	"## Welcome to tissuebox!",
	"",
	"- `a` (add): create a new tissue under the given name",
	"- `d` (describe): append a description line to the selected tissue",
	"- `t` (tag): assign a tag to the selected tissue",
	"- `e` (edit): edit the title of the selected tissue",
	"- `r` (remove): delete the selected tissue, one of its description lines, or a tag",
	"- `R` (restore): bring back a removed tissue from this session's recycle bin",
	"- `*` (star): mark the tissue with a star.",
	"  Pressing `*` on the starred tissue removes the star, and pressing",
	"  `*` from any other tissue moves the cursor to the starred one.",
	"  Useful when working on a specific tissue.",
	"- `/` (filter): narrow the list with a fuzzy query",
	"",
	"**Output commands**",
	"",
	"- `c` (copy): copy the title, description, or whole list to the clipboard",
	"- `C` (commit): add all files to the git index and commit, using the",
	"  selected tissue's title as the message. Equivalent to",
	"  `git add --all && git commit -m {title}`",
	"- `P` (publish): file the selected tissue as a GitHub issue and remove",
	"  it from the box. Requires an API token in the environment.",
	"",
	"Press any key to return.",
}, "\n")
