// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Sheet of paper poking out of the box, centered above the list.
var paperArt = []string{
	" ▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓",
	" ▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓",
	"▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓ ",
	"▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓▓ ",
}

// View renders the whole screen: the paper art, a rounded box holding
// the tissue list (or the help screen, recycle bin, or first-run
// prompt), mode instructions embedded in the bottom border, and a
// status line underneath.
func (model Model) View() string {
	if !model.ready {
		return ""
	}
	width := model.width
	if width < 24 {
		width = 24
	}
	innerWidth := width - 6
	if innerWidth < 10 {
		innerWidth = 10
	}
	bodyHeight := model.height - len(paperArt) - 3
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var view strings.Builder
	for _, line := range paperArt {
		view.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		view.WriteString("\n")
	}
	banner := lipgloss.NewStyle().Foreground(model.theme.TitleAccent).Bold(true).Render(" tissuebox ")
	view.WriteString(model.borderLine("╭", "╮", banner, width))
	view.WriteString("\n")
	for _, line := range model.bodyLines(innerWidth, bodyHeight) {
		view.WriteString(model.frameLine(line, width, innerWidth))
		view.WriteString("\n")
	}
	view.WriteString(model.borderLine("╰", "╯", model.renderInstructions(), width))
	view.WriteString("\n")
	view.WriteString(model.renderStatus(width))
	return view.String()
}

// borderLine draws one horizontal border with a styled label centered
// in it. The label keeps its own styling; only the frame runs through
// the border color.
func (model Model) borderLine(left, right, label string, width int) string {
	border := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	inner := width - 2
	labelWidth := lipgloss.Width(label)
	if labelWidth > inner {
		label = ansi.Truncate(label, inner, "")
		labelWidth = lipgloss.Width(label)
	}
	leftFill := (inner - labelWidth) / 2
	rightFill := inner - labelWidth - leftFill
	return border.Render(left+strings.Repeat("─", leftFill)) +
		label +
		border.Render(strings.Repeat("─", rightFill)+right)
}

// frameLine wraps one body line in the vertical borders with two
// columns of padding on each side.
func (model Model) frameLine(content string, width, innerWidth int) string {
	border := lipgloss.NewStyle().Foreground(model.theme.BorderColor)
	contentWidth := lipgloss.Width(content)
	if contentWidth > innerWidth {
		content = ansi.Truncate(content, innerWidth, "…")
		contentWidth = lipgloss.Width(content)
	}
	return border.Render("│") + "  " + content +
		strings.Repeat(" ", innerWidth-contentWidth) + "  " + border.Render("│")
}

// bodyLines produces exactly bodyHeight rendered lines for the inside
// of the box, scrolled so the cursor sits near the vertical center.
func (model Model) bodyLines(innerWidth, bodyHeight int) []string {
	switch model.mode {
	case ModeHelp:
		lines := strings.Split(RenderMarkdown(helpText, model.theme, innerWidth), "\n")
		return fitWindow(lines, 0, bodyHeight)
	case ModeAskExclude:
		return fitWindow(model.excludePrompt(innerWidth), 0, bodyHeight)
	case ModeRestore:
		lines, anchor := model.renderBin(innerWidth)
		return fitWindow(lines, scrollOffset(anchor, len(lines), bodyHeight), bodyHeight)
	}

	listLines, anchor := model.renderList(innerWidth)
	var pinned []string
	if bar := model.filter.View(model.theme, innerWidth); bar != "" {
		pinned = append(pinned, bar)
	}
	listHeight := bodyHeight - len(pinned)
	window := fitWindow(listLines, scrollOffset(anchor, len(listLines), listHeight), listHeight)
	return append(pinned, window...)
}

// scrollOffset picks the first visible line so the anchor line lands
// just above the middle of the viewport, clamped to the list bounds.
func scrollOffset(anchor, total, height int) int {
	offset := anchor - (height/2 - 1)
	if offset > total-height {
		offset = total - height
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// fitWindow slices height lines starting at offset, padding with blank
// lines when the list runs short.
func fitWindow(lines []string, offset, height int) []string {
	if height < 0 {
		height = 0
	}
	if offset > len(lines) {
		offset = len(lines)
	}
	window := lines[offset:]
	if len(window) > height {
		window = window[:height]
	}
	padded := make([]string, 0, height)
	padded = append(padded, window...)
	for len(padded) < height {
		padded = append(padded, "")
	}
	return padded
}

// renderList renders every visible tissue and returns the rendered
// lines plus the line index of the cursor's title row, which anchors
// scrolling. Description lines count toward the anchor the same way
// they occupy rows on screen.
func (model Model) renderList(innerWidth int) ([]string, int) {
	descHighlight := -1
	if model.mode == ModeRemoveDesc {
		descHighlight = model.descCursor
	}
	var lines []string
	anchor := 0
	for index, result := range model.visible {
		selected := index == model.cursor
		if selected {
			anchor = len(lines)
		}
		highlightLine := -1
		if selected && descHighlight >= 0 && result.Tissue.Title == model.target {
			highlightLine = descHighlight
		}
		lines = append(lines, model.renderTissueRow(result, selected && descHighlight < 0, highlightLine, innerWidth)...)
	}
	return lines, anchor
}

// renderBin renders the recycle bin for restore mode.
func (model Model) renderBin(innerWidth int) ([]string, int) {
	var lines []string
	anchor := 0
	for index, removed := range model.recycleBin {
		if index == model.binCursor {
			anchor = len(lines)
		}
		row := FilterResult{Tissue: removed}
		lines = append(lines, model.renderTissueRow(row, index == model.binCursor, -1, innerWidth)...)
	}
	return lines, anchor
}

// renderTissueRow renders one tissue as its title row plus one row per
// description line. titleSelected inverts the title row; while picking
// a description line to remove the inversion moves to that line
// instead.
func (model Model) renderTissueRow(result FilterResult, titleSelected bool, highlightDescLine, innerWidth int) []string {
	current := result.Tissue

	star := " "
	if model.starred == current.Title {
		star = "*"
	}

	var base, highlight lipgloss.Style
	if titleSelected {
		base = lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground)
		highlight = base.Bold(true).Underline(true)
	} else {
		base = lipgloss.NewStyle().Foreground(model.theme.NormalText)
		highlight = base.Background(model.theme.SearchHighlightBackground)
	}

	starRendered := base.Render(star)
	if star == "*" && !titleSelected {
		starRendered = lipgloss.NewStyle().Foreground(model.theme.StarColor).Render(star)
	}

	var titleLine strings.Builder
	titleLine.WriteString(starRendered)
	titleLine.WriteString(styleRunes(current.Title, result.TitlePositions, base, highlight))
	titleLine.WriteString(base.Render(" "))
	tagStyle := lipgloss.NewStyle().Foreground(model.theme.TagColor)
	for _, tag := range current.Tags {
		titleLine.WriteString(tagStyle.Render(" (" + tag + ")"))
	}
	lines := []string{ansi.Truncate(titleLine.String(), innerWidth, "…")}

	if desc, ok := current.Description(); ok {
		faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
		picked := lipgloss.NewStyle().
			Background(model.theme.SelectedBackground).
			Foreground(model.theme.SelectedForeground)
		for lineIndex, line := range strings.Split(desc, "\n") {
			style := faint
			if lineIndex == highlightDescLine {
				style = picked
			}
			lines = append(lines, ansi.Truncate(style.Render(" - "+line), innerWidth, "…"))
		}
	}
	return lines
}

// styleRunes renders text with the runes at the given indices in the
// highlight style and the rest in the base style. Contiguous runs
// render as single styled chunks to keep the escape sequences short.
func styleRunes(text string, positions []int, base, highlight lipgloss.Style) string {
	if len(positions) == 0 {
		return base.Render(text)
	}
	positionSet := make(map[int]bool, len(positions))
	for _, position := range positions {
		positionSet[position] = true
	}

	runes := []rune(text)
	var result strings.Builder
	runStart := 0
	highlighted := positionSet[0]
	for index := 1; index <= len(runes); index++ {
		currentHighlighted := index < len(runes) && positionSet[index]
		if currentHighlighted != highlighted || index == len(runes) {
			chunk := string(runes[runStart:index])
			if highlighted {
				result.WriteString(highlight.Render(chunk))
			} else {
				result.WriteString(base.Render(chunk))
			}
			runStart = index
			highlighted = currentHighlighted
		}
	}
	return result.String()
}

// excludePrompt builds the centered first-run prompt asking whether to
// add the tissuebox file to the repository's local git exclude list.
func (model Model) excludePrompt(innerWidth int) []string {
	accent := lipgloss.NewStyle().Foreground(model.theme.PromptAccent)
	lines := []string{
		"",
		"Tissuebox created the file " + accent.Render(`"`+model.path+`"`) + ".",
		"",
		"Would you like to exclude it from git?",
		"Note: this updates " + accent.Render(".git/info/exclude") + ", not the public " + accent.Render(".gitignore"),
	}
	centered := make([]string, len(lines))
	for index, line := range lines {
		centered[index] = lipgloss.PlaceHorizontal(innerWidth, lipgloss.Center, line)
	}
	return centered
}

func (model Model) hotkey(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.TitleAccent).Bold(true).Render(text)
}

func (model Model) promptLabel(text string) string {
	return lipgloss.NewStyle().Foreground(model.theme.PromptAccent).Bold(true).Render(text)
}

// renderInstructions builds the label embedded in the bottom border.
// Each mode shows its own prompt; input modes echo the pending text
// with a trailing cursor.
func (model Model) renderInstructions() string {
	inputText := string(model.input)
	switch model.mode {
	case ModeNormal:
		return model.hotkey(" H") + "elp" + model.hotkey(" a") + "dd" +
			model.hotkey(" d") + "escribe" + model.hotkey(" t") + "ag" +
			model.hotkey(" r") + "emove" + model.hotkey(" q") + "uit "
	case ModeHelp:
		return model.promptLabel(" Help! ")
	case ModeAdd:
		return model.promptLabel(" Add tissue: ") + inputText + "_ "
	case ModeEditTitle:
		return model.promptLabel(" Edit tissue title: ") + inputText + "_ "
	case ModeDescribe:
		return model.promptLabel(" Describe tissue: ") + inputText + "_ "
	case ModeTag:
		return model.promptLabel(" Tag tissue: ") + inputText + "_ "
	case ModeRemoveTag:
		return model.promptLabel(" Remove tag: ") + inputText + "_ "
	case ModeFilter:
		return model.promptLabel(" Filter ")
	case ModeCopy:
		return model.promptLabel(" Copy what?:") + model.hotkey(" t") + "itle" +
			model.hotkey(" d") + "escription" + model.hotkey(" l") + "ist "
	case ModeCommit:
		return model.promptLabel(" Really Commit?:") + model.hotkey(" y") + "es" + model.hotkey(" N") + "o "
	case ModePublish:
		return model.promptLabel(" Really Publish?:") + model.hotkey(" y") + "es" + model.hotkey(" N") + "o "
	case ModeRemove:
		return model.promptLabel(" Remove what?:") + model.hotkey(" T") + "issue" +
			model.hotkey(" d") + "escription" + model.hotkey(" t") + "ag "
	case ModeRemoveDesc:
		return model.promptLabel(" Remove which description? ")
	case ModeRestore:
		return model.promptLabel(" Select tissue and restore ")
	case ModeAskExclude:
		return model.hotkey(" y") + "es " + model.hotkey("n") + "o "
	}
	return ""
}

// renderStatus draws the line under the box: errors win over notices,
// and a blank line keeps the layout stable when there is nothing to
// say.
func (model Model) renderStatus(width int) string {
	switch {
	case model.statusError != "":
		style := lipgloss.NewStyle().Foreground(model.theme.ErrorText)
		return ansi.Truncate(style.Render(" "+model.statusError), width, "…")
	case model.statusNotice != "":
		style := lipgloss.NewStyle().Foreground(model.theme.SuccessText)
		return ansi.Truncate(style.Render(" "+model.statusNotice), width, "…")
	}
	return ""
}
