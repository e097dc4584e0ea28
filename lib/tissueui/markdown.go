// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package tissueui

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// markdownParser is shared by every render call. The configuration is
// fixed at construction and goldmark parsers are safe for concurrent
// use; per-parse state lives in the text.Reader.
var markdownParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Word wrap may break after any of these characters in addition to
// plain spaces.
const wrapBreakpoints = " ,.;-+|"

// Columns between table cells.
const tableGap = "  "

// RenderMarkdown turns GFM markdown into styled terminal text at the
// given width. Single newlines inside a paragraph are treated as
// spaces, so descriptions hard-wrapped in the source file reflow
// cleanly however narrow the terminal is. Fenced code, lists, quotes,
// and tables keep their structure.
//
// Plain prose with no markdown syntax comes out as plain wrapped
// text. Both the show command and the help screen in the TUI feed
// through here.
func RenderMarkdown(input string, theme Theme, width int) string {
	if input == "" {
		return ""
	}

	// Rendered markdown always targets a terminal, so pin the color
	// profile rather than letting lipgloss probe the environment,
	// which yields unstyled text when stdout is not a TTY (tests,
	// pipes). SetColorProfile is required on top of the termenv
	// option: a Renderer re-detects its profile on first use unless
	// one was set explicitly.
	styles := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)

	source := []byte(input)
	writer := &markdownWriter{
		input:  source,
		theme:  theme,
		width:  width,
		styles: styles,
	}
	document := markdownParser.Parser().Parse(text.NewReader(source))
	ast.Walk(document, writer.visit)

	return strings.TrimRight(writer.out.String(), "\n")
}

// markdownWriter converts a goldmark AST into terminal text. It walks
// the tree directly instead of implementing goldmark's renderer
// interface: terminal output needs whole-paragraph word wrapping, so
// inline content is buffered per block and wrapped in one piece when
// the block ends, which goldmark's streaming callbacks cannot express.
type markdownWriter struct {
	input []byte
	theme Theme
	width int

	// Finished output.
	out strings.Builder

	// Inline text accumulated for the block currently open (paragraph,
	// heading, list item body). Wrapped and emitted when it closes.
	span strings.Builder

	// Indentation from enclosing containers. indent is every level
	// concatenated; indentCols is the total visible width.
	indents    []indentLevel
	indent     string
	indentCols int

	// When set, replaces the indent on the next emitted line only.
	// Carries the bullet or number of a freshly opened list item.
	bullet string

	// Nesting depth of the active inline styles. Depths rather than
	// booleans so nested emphasis unwinds correctly.
	boldDepth   int
	italicDepth int
	strikeDepth int

	// Open lists, innermost last.
	lists []listFrame

	// Style factory pinned to the ANSI256 profile.
	styles *lipgloss.Renderer

	// Number of newlines currently at the end of out.
	newlineRun int
}

type indentLevel struct {
	prefix string
	cols   int
}

type listFrame struct {
	numbered bool
	next     int
	tight    bool
}

// visit dispatches AST nodes to the open and close handlers.
func (writer *markdownWriter) visit(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		return writer.open(node)
	}
	writer.close(node)
	return ast.WalkContinue, nil
}

func (writer *markdownWriter) open(node ast.Node) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock, ast.KindHeading:
		writer.span.Reset()

	case ast.KindFencedCodeBlock:
		fence := node.(*ast.FencedCodeBlock)
		writer.fencedCode(writer.blockText(node), string(fence.Language(writer.input)))
		return ast.WalkSkipChildren, nil

	case ast.KindCodeBlock:
		writer.indentedCode(writer.blockText(node))
		return ast.WalkSkipChildren, nil

	case ast.KindBlockquote:
		writer.pushIndent("│ ", 2)

	case ast.KindList:
		writer.openList(node.(*ast.List))

	case ast.KindListItem:
		writer.openItem()

	case ast.KindThematicBreak:
		writer.horizontalRule()

	case ast.KindHTMLBlock:
		writer.htmlBlock(writer.blockText(node))
		return ast.WalkSkipChildren, nil

	case ast.KindText:
		writer.textNode(node.(*ast.Text))

	case ast.KindString:
		writer.span.WriteString(writer.styled(string(node.(*ast.String).Value)))

	case ast.KindEmphasis:
		if node.(*ast.Emphasis).Level >= 2 {
			writer.boldDepth++
		} else {
			writer.italicDepth++
		}

	case ast.KindCodeSpan:
		writer.codeSpan(node)
		return ast.WalkSkipChildren, nil

	case ast.KindLink:
		writer.link(node.(*ast.Link))
		return ast.WalkSkipChildren, nil

	case ast.KindAutoLink:
		writer.autoLink(node.(*ast.AutoLink))

	case ast.KindImage:
		writer.image(node.(*ast.Image))
		return ast.WalkSkipChildren, nil

	case ast.KindRawHTML:
		writer.rawHTML(node.(*ast.RawHTML))

	case extast.KindStrikethrough:
		writer.strikeDepth++

	case extast.KindTable:
		writer.table(node.(*extast.Table))
		return ast.WalkSkipChildren, nil

	case extast.KindTaskCheckBox:
		if node.(*extast.TaskCheckBox).IsChecked {
			done := writer.style().Foreground(writer.theme.SuccessText)
			writer.span.WriteString(done.Render("[x]") + " ")
		} else {
			writer.span.WriteString(writer.styled("[ ] "))
		}
	}

	return ast.WalkContinue, nil
}

func (writer *markdownWriter) close(node ast.Node) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		if flushed := writer.flushSpan(); flushed != "" {
			writer.emit(flushed)
			writer.endLine()
			if !writer.tightList() {
				writer.blankLine()
			}
		}

	case ast.KindHeading:
		writer.closeHeading(node.(*ast.Heading))

	case ast.KindBlockquote:
		writer.popIndent()
		writer.blankLine()

	case ast.KindList:
		writer.closeList()

	case ast.KindListItem:
		writer.closeItem()

	case ast.KindEmphasis:
		if node.(*ast.Emphasis).Level >= 2 {
			writer.boldDepth--
		} else {
			writer.italicDepth--
		}

	case extast.KindStrikethrough:
		writer.strikeDepth--
	}
}

// closeHeading emits the buffered heading text. Inline styling
// collected during the walk is stripped first; a heading carries its
// own style rather than composing with emphasis.
func (writer *markdownWriter) closeHeading(heading *ast.Heading) {
	content := ansi.Strip(writer.span.String())
	writer.span.Reset()
	if content == "" {
		return
	}

	style := writer.style().Bold(true)
	if heading.Level <= 2 {
		style = style.Foreground(writer.theme.HeaderForeground)
	} else {
		style = style.Foreground(writer.theme.NormalText)
	}

	wrapped := ansi.Wrap(style.Render(content), writer.wrapWidth(), wrapBreakpoints)
	writer.blankLine()
	writer.emit(writer.indentLines(wrapped))
	writer.endLine()
	writer.blankLine()
}

// fencedCode renders a fenced code block, syntax highlighted when the
// fence names a language Chroma recognizes.
func (writer *markdownWriter) fencedCode(code, language string) {
	writer.blankLine()
	highlighted := writer.highlight(code, language)
	for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
		writer.emit(writer.takeIndent() + line)
		writer.endLine()
	}
	writer.blankLine()
}

// indentedCode renders an indented (non-fenced) code block in faint
// text; there is no language to highlight.
func (writer *markdownWriter) indentedCode(code string) {
	faint := writer.style().Foreground(writer.theme.FaintText)
	writer.blankLine()
	for _, line := range strings.Split(strings.TrimRight(code, "\n"), "\n") {
		writer.emit(writer.takeIndent() + faint.Render(line))
		writer.endLine()
	}
	writer.blankLine()
}

// htmlBlock renders a block of raw HTML as its text content only,
// faint. Blocks that strip down to nothing produce no output.
func (writer *markdownWriter) htmlBlock(html string) {
	stripped := strings.TrimSpace(stripHTMLTags(html))
	if stripped == "" {
		return
	}
	faint := writer.style().Foreground(writer.theme.FaintText)
	writer.emit(writer.indentLines(faint.Render(stripped)))
	writer.endLine()
	writer.blankLine()
}

func (writer *markdownWriter) horizontalRule() {
	rule := strings.Repeat("─", writer.wrapWidth())
	line := writer.style().Foreground(writer.theme.BorderColor).Render(rule)
	writer.blankLine()
	writer.emit(writer.indentLines(line))
	writer.endLine()
	writer.blankLine()
}

func (writer *markdownWriter) openList(list *ast.List) {
	frame := listFrame{
		numbered: list.IsOrdered(),
		tight:    list.IsTight,
	}
	if frame.numbered {
		frame.next = list.Start
	}
	writer.lists = append(writer.lists, frame)
}

func (writer *markdownWriter) closeList() {
	if len(writer.lists) > 0 {
		writer.lists = writer.lists[:len(writer.lists)-1]
	}
	if !writer.tightList() {
		writer.blankLine()
	}
}

func (writer *markdownWriter) openItem() {
	if len(writer.lists) == 0 {
		return
	}
	frame := &writer.lists[len(writer.lists)-1]

	var marker string
	if frame.numbered {
		marker = fmt.Sprintf("%d. ", frame.next)
		frame.next++
	} else {
		marker = "- "
	}

	// Markers are ASCII, so byte length equals visible width. The
	// bullet replaces the whole indent on the item's first line;
	// continuation lines get matching blank space instead.
	writer.bullet = writer.indent + marker
	writer.pushIndent(strings.Repeat(" ", len(marker)), len(marker))
}

func (writer *markdownWriter) closeItem() {
	writer.popIndent()
	if writer.tightList() {
		writer.endLine()
	} else {
		writer.blankLine()
	}
}

// textNode appends literal text with the active inline styles. A soft
// line break in the source becomes a space so the paragraph reflows;
// a hard break stays a newline.
func (writer *markdownWriter) textNode(node *ast.Text) {
	writer.span.WriteString(writer.styled(string(node.Segment.Value(writer.input))))
	if node.SoftLineBreak() {
		writer.span.WriteString(" ")
	}
	if node.HardLineBreak() {
		writer.span.WriteString("\n")
	}
}

// codeSpan renders inline code in faint text. The children of a code
// span are Text and String nodes holding the literal content.
func (writer *markdownWriter) codeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch literal := child.(type) {
		case *ast.Text:
			code.Write(literal.Segment.Value(writer.input))
		case *ast.String:
			code.Write(literal.Value)
		}
	}
	faint := writer.style().Foreground(writer.theme.FaintText)
	writer.span.WriteString(faint.Render(code.String()))
}

// link renders the link text followed by the destination in faint
// parentheses. There is nothing to click in a terminal, so the URL is
// shown rather than hidden.
func (writer *markdownWriter) link(node *ast.Link) {
	// childText already applied inline styles to the link text, so it
	// goes into the span as is.
	writer.span.WriteString(writer.childText(node))
	if url := string(node.Destination); url != "" {
		faint := writer.style().Foreground(writer.theme.FaintText)
		writer.span.WriteString(" " + faint.Render("("+url+")"))
	}
}

func (writer *markdownWriter) autoLink(node *ast.AutoLink) {
	faint := writer.style().Foreground(writer.theme.FaintText)
	writer.span.WriteString(faint.Render(string(node.URL(writer.input))))
}

func (writer *markdownWriter) image(node *ast.Image) {
	faint := writer.style().Foreground(writer.theme.FaintText)
	writer.span.WriteString(faint.Render("[" + writer.childText(node) + "]"))
	if url := string(node.Destination); url != "" {
		writer.span.WriteString(" " + faint.Render("("+url+")"))
	}
}

func (writer *markdownWriter) rawHTML(node *ast.RawHTML) {
	var html strings.Builder
	for index := 0; index < node.Segments.Len(); index++ {
		html.Write(node.Segments.At(index).Value(writer.input))
	}
	if stripped := stripHTMLTags(html.String()); stripped != "" {
		faint := writer.style().Foreground(writer.theme.FaintText)
		writer.span.WriteString(faint.Render(stripped))
	}
}

// table renders a GFM table with padded columns, a bold header, and a
// rule under the header row.
func (writer *markdownWriter) table(table *extast.Table) {
	var header []string
	var rows [][]string
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.Kind() {
		case extast.KindTableHeader:
			header = writer.rowCells(child)
		case extast.KindTableRow:
			rows = append(rows, writer.rowCells(child))
		}
	}

	columns := len(header)
	if columns == 0 && len(rows) > 0 {
		columns = len(rows[0])
	}
	if columns == 0 {
		return
	}

	widths := columnWidths(columns, header, rows)
	writer.shrinkToFit(widths)

	writer.blankLine()
	if len(header) > 0 {
		bold := writer.style().Bold(true).Foreground(writer.theme.NormalText)
		writer.emit(writer.takeIndent() + layoutRow(header, widths, table.Alignments, bold))
		writer.endLine()

		rule := make([]string, len(widths))
		for index, width := range widths {
			rule[index] = strings.Repeat("─", width)
		}
		border := writer.style().Foreground(writer.theme.BorderColor)
		writer.emit(writer.indent + border.Render(strings.Join(rule, tableGap)))
		writer.endLine()
	}
	for _, row := range rows {
		writer.emit(writer.indent + layoutRow(row, widths, table.Alignments, writer.style()))
		writer.endLine()
	}
	writer.blankLine()
}

// rowCells collects the rendered inline content of each cell in a
// table row.
func (writer *markdownWriter) rowCells(row ast.Node) []string {
	var cells []string
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if cell.Kind() == extast.KindTableCell {
			cells = append(cells, writer.childText(cell))
		}
	}
	return cells
}

// columnWidths returns the widest visible content per column.
func columnWidths(columns int, header []string, rows [][]string) []int {
	widths := make([]int, columns)
	measure := func(cells []string) {
		for index, cell := range cells {
			if index >= columns {
				break
			}
			if width := lipgloss.Width(cell); width > widths[index] {
				widths[index] = width
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}
	return widths
}

// shrinkToFit scales column widths down proportionally when the table
// would overflow the available width. No column drops below 3 cells.
func (writer *markdownWriter) shrinkToFit(widths []int) {
	total := len(tableGap) * (len(widths) - 1)
	for _, width := range widths {
		total += width
	}
	available := writer.wrapWidth()
	if total <= available {
		return
	}

	usable := available - len(tableGap)*(len(widths)-1)
	if usable < len(widths)*3 {
		usable = len(widths) * 3
	}
	for index := range widths {
		widths[index] = (widths[index] * usable) / total
		if widths[index] < 3 {
			widths[index] = 3
		}
	}
}

// layoutRow pads or truncates each cell to its column width,
// honoring the column alignment, and joins the cells.
func layoutRow(cells []string, widths []int, alignments []extast.Alignment, style lipgloss.Style) string {
	parts := make([]string, 0, len(widths))
	for index, width := range widths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}

		visible := lipgloss.Width(cell)
		if visible > width {
			cell = ansi.Truncate(cell, width, "…")
			visible = lipgloss.Width(cell)
		}
		pad := width - visible
		if pad < 0 {
			pad = 0
		}

		var alignment extast.Alignment
		if index < len(alignments) {
			alignment = alignments[index]
		}
		switch alignment {
		case extast.AlignRight:
			cell = strings.Repeat(" ", pad) + cell
		case extast.AlignCenter:
			left := pad / 2
			cell = strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
		default:
			cell = cell + strings.Repeat(" ", pad)
		}
		parts = append(parts, cell)
	}
	return style.Render(strings.Join(parts, tableGap))
}

// styled applies the active inline styles to literal text.
func (writer *markdownWriter) styled(content string) string {
	style := writer.style().Foreground(writer.theme.NormalText)
	if writer.boldDepth > 0 {
		style = style.Bold(true)
	}
	if writer.italicDepth > 0 {
		style = style.Italic(true)
	}
	if writer.strikeDepth > 0 {
		style = style.Strikethrough(true)
	}
	return style.Render(content)
}

// flushSpan wraps the buffered inline content to the current width,
// indents every line, and clears the buffer.
func (writer *markdownWriter) flushSpan() string {
	content := writer.span.String()
	writer.span.Reset()
	if content == "" {
		return ""
	}
	return writer.indentLines(ansi.Wrap(content, writer.wrapWidth(), wrapBreakpoints))
}

// childText renders a node's children to a string without disturbing
// the span in progress. Buffer and style depths are saved around the
// nested walk and restored after.
func (writer *markdownWriter) childText(node ast.Node) string {
	savedSpan := writer.span.String()
	savedBold := writer.boldDepth
	savedItalic := writer.italicDepth
	savedStrike := writer.strikeDepth

	writer.span.Reset()
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, writer.visit)
	}
	content := writer.span.String()

	writer.span.Reset()
	writer.span.WriteString(savedSpan)
	writer.boldDepth = savedBold
	writer.italicDepth = savedItalic
	writer.strikeDepth = savedStrike
	return content
}

// highlight runs code through Chroma. An empty or unrecognized
// language, or any Chroma failure, falls back to faint plain text.
func (writer *markdownWriter) highlight(code, language string) string {
	if language == "" {
		return writer.style().Foreground(writer.theme.FaintText).Render(code)
	}
	var highlighted strings.Builder
	if err := quick.Highlight(&highlighted, code, language, "terminal256", "monokai"); err != nil {
		return writer.style().Foreground(writer.theme.FaintText).Render(code)
	}
	return highlighted.String()
}

func (writer *markdownWriter) style() lipgloss.Style {
	return writer.styles.NewStyle()
}

// wrapWidth is the room left for content inside the current
// indentation, floored at 10 so pathological nesting still wraps.
func (writer *markdownWriter) wrapWidth() int {
	width := writer.width - writer.indentCols
	if width < 10 {
		width = 10
	}
	return width
}

func (writer *markdownWriter) pushIndent(prefix string, cols int) {
	writer.indents = append(writer.indents, indentLevel{prefix: prefix, cols: cols})
	writer.indent += prefix
	writer.indentCols += cols
}

func (writer *markdownWriter) popIndent() {
	if len(writer.indents) == 0 {
		return
	}
	top := writer.indents[len(writer.indents)-1]
	writer.indents = writer.indents[:len(writer.indents)-1]
	writer.indent = writer.indent[:len(writer.indent)-len(top.prefix)]
	writer.indentCols -= top.cols
}

// takeIndent returns the prefix for the next line: the pending bullet
// exactly once if one is set, the plain indent otherwise.
func (writer *markdownWriter) takeIndent() string {
	if writer.bullet != "" {
		bullet := writer.bullet
		writer.bullet = ""
		return bullet
	}
	return writer.indent
}

// indentLines prefixes every line of content, the first with the
// pending bullet when one is set.
func (writer *markdownWriter) indentLines(content string) string {
	lines := strings.Split(content, "\n")
	var indented strings.Builder
	for index, line := range lines {
		if index == 0 {
			indented.WriteString(writer.takeIndent())
		} else {
			indented.WriteString(writer.indent)
		}
		indented.WriteString(line)
		if index < len(lines)-1 {
			indented.WriteString("\n")
		}
	}
	return indented.String()
}

// emit appends text to the output and keeps the trailing newline
// count current for endLine and blankLine.
func (writer *markdownWriter) emit(content string) {
	if content == "" {
		return
	}
	writer.out.WriteString(content)

	trailing := 0
	pure := true
	for index := len(content) - 1; index >= 0; index-- {
		if content[index] != '\n' {
			pure = false
			break
		}
		trailing++
	}
	if pure {
		writer.newlineRun += trailing
	} else {
		writer.newlineRun = trailing
	}
}

// endLine guarantees the output ends with at least one newline.
func (writer *markdownWriter) endLine() {
	if writer.newlineRun < 1 {
		writer.emit("\n")
	}
}

// blankLine guarantees the output ends with a blank line.
func (writer *markdownWriter) blankLine() {
	for writer.newlineRun < 2 {
		writer.emit("\n")
	}
}

func (writer *markdownWriter) tightList() bool {
	if len(writer.lists) == 0 {
		return false
	}
	return writer.lists[len(writer.lists)-1].tight
}

// blockText gathers the source text covered by a block node's line
// segments. Fenced code, indented code, and HTML blocks all store
// their content this way.
func (writer *markdownWriter) blockText(node ast.Node) string {
	var content strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		content.Write(lines.At(index).Value(writer.input))
	}
	return content.String()
}

// stripHTMLTags drops everything between angle brackets and returns
// the remaining text.
func stripHTMLTags(html string) string {
	var content strings.Builder
	inTag := false
	for _, character := range html {
		switch {
		case character == '<':
			inTag = true
		case character == '>':
			inTag = false
		case !inTag:
			content.WriteRune(character)
		}
	}
	return content.String()
}
