// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package termrender lays a compiled document tree out as styled
// terminal text. It is one consumer of the document model: every block
// node becomes lines of output, with word-wrapped paragraphs, heading
// rules, blockquote gutters, indented bullets, and padded table
// columns.
//
// The renderer expects documents compiled with the markup.ANSI sink,
// whose labels carry SGR sequences the terminal interprets directly.
// Documents compiled with another sink still render, but their markup
// tags appear literally.
package termrender

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/lazytanuki/mddoc/document"
)

// wrapBreakpoints are the characters ansi.Wrap may break a line at.
const wrapBreakpoints = " ,.;-+|"

// Render produces terminal output for a compiled document at the
// given width.
func Render(doc *document.Document, theme Theme, width int) string {
	// Force the ANSI256 color profile: this output is always for
	// terminal display, so auto-detection (which yields uncolored
	// output without a TTY, e.g. under tests) is bypassed.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &renderer{
		theme:       theme,
		width:       width,
		lipRenderer: lipRenderer,
	}
	renderer.renderBlocks(doc.Blocks)
	return strings.TrimRight(renderer.output.String(), "\n")
}

// renderer walks document blocks and accumulates terminal text. Block
// nesting (blockquotes, list items) is handled with a prefix stack:
// each level contributes a fixed gutter prepended to every emitted
// line.
type renderer struct {
	theme Theme
	width int

	output strings.Builder

	// Prefix stack for nested block containers.
	prefixStack     []prefixLevel
	linePrefix      string // Concatenation of all prefix texts.
	linePrefixWidth int    // Sum of all visible prefix widths.

	// Pending bullet: replaces linePrefix for the very next emitted
	// line, then clears. Used for list item bullets and checkboxes.
	pendingBullet string

	// lipgloss renderer with forced color profile.
	lipRenderer *lipgloss.Renderer

	// Trailing newlines at the end of output, for blank line management.
	trailingNewlines int
}

type prefixLevel struct {
	text  string
	width int
}

func (r *renderer) newStyle() lipgloss.Style {
	return r.lipRenderer.NewStyle()
}

// currentWidth returns the content width left after nesting prefixes,
// clamped to a minimum of 10 to prevent degenerate wrapping.
func (r *renderer) currentWidth() int {
	width := r.width - r.linePrefixWidth
	if width < 10 {
		width = 10
	}
	return width
}

func (r *renderer) pushPrefix(prefixText string, visibleWidth int) {
	r.prefixStack = append(r.prefixStack, prefixLevel{
		text:  prefixText,
		width: visibleWidth,
	})
	r.linePrefix += prefixText
	r.linePrefixWidth += visibleWidth
}

func (r *renderer) popPrefix() {
	if len(r.prefixStack) == 0 {
		return
	}
	top := r.prefixStack[len(r.prefixStack)-1]
	r.prefixStack = r.prefixStack[:len(r.prefixStack)-1]
	r.linePrefix = r.linePrefix[:len(r.linePrefix)-len(top.text)]
	r.linePrefixWidth -= top.width
}

// writeOutput appends text, tracking trailing newlines for blank line
// management.
func (r *renderer) writeOutput(s string) {
	if s == "" {
		return
	}
	r.output.WriteString(s)

	newTrailing := 0
	entirelyNewlines := true
	for index := len(s) - 1; index >= 0; index-- {
		if s[index] == '\n' {
			newTrailing++
		} else {
			entirelyNewlines = false
			break
		}
	}
	if entirelyNewlines {
		r.trailingNewlines += newTrailing
	} else {
		r.trailingNewlines = newTrailing
	}
}

func (r *renderer) ensureNewline() {
	if r.trailingNewlines < 1 {
		r.writeOutput("\n")
	}
}

func (r *renderer) ensureBlankLine() {
	for r.trailingNewlines < 2 {
		r.writeOutput("\n")
	}
}

// consumeLinePrefix returns the prefix for the current line: the
// pending bullet if one is set (first line of a list item), the
// regular prefix otherwise.
func (r *renderer) consumeLinePrefix() string {
	if r.pendingBullet != "" {
		bullet := r.pendingBullet
		r.pendingBullet = ""
		return bullet
	}
	return r.linePrefix
}

// applyPrefixes prepends the line prefix to every line of content;
// the first line consumes the pending bullet if set.
func (r *renderer) applyPrefixes(content string) string {
	lines := strings.Split(content, "\n")
	var result strings.Builder
	for index, line := range lines {
		if index == 0 {
			result.WriteString(r.consumeLinePrefix())
		} else {
			result.WriteString(r.linePrefix)
		}
		result.WriteString(line)
		if index < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// --- Block dispatch ---

func (r *renderer) renderBlocks(blocks []document.Node) {
	for _, block := range blocks {
		switch node := block.(type) {
		case *document.Heading:
			r.renderHeading(node)
		case *document.Paragraph:
			r.renderParagraph(node)
		case *document.Blockquote:
			r.pushPrefix("│ ", 2)
			r.renderBlocks(node.Children)
			r.popPrefix()
			r.ensureBlankLine()
		case *document.List:
			r.renderList(node)
		case *document.ListItem:
			// Items normally arrive through their list; a bare item
			// renders as an unordered singleton.
			r.renderListItem(node, "- ")
		case *document.CodeBlock:
			r.renderCodeBlock(node)
		case *document.Table:
			r.renderTable(node)
		case *document.ThematicBreak:
			r.renderRule("─")
		case *document.Image:
			faint := r.newStyle().Foreground(r.theme.FaintText)
			r.writeOutput(r.applyPrefixes(faint.Render("[image] (" + node.Path + ")")))
			r.ensureNewline()
			r.ensureBlankLine()
		}
	}
}

func (r *renderer) renderHeading(node *document.Heading) {
	content := node.Label.Markup()

	style := r.newStyle().Bold(true)
	if node.Level <= 2 {
		style = style.Foreground(r.theme.HeaderForeground)
	} else {
		style = style.Foreground(r.theme.NormalText)
	}

	r.ensureBlankLine()
	if content != "" {
		wrapped := ansi.Wrap(style.Render(content), r.currentWidth(), wrapBreakpoints)
		r.writeOutput(r.applyPrefixes(wrapped))
		r.ensureNewline()
	}

	// Deeper headings get lighter rules.
	rule := "─"
	if node.RuleHeight >= 3 {
		rule = "━"
	}
	r.renderRule(rule)
	r.renderBlocks(node.Children)
}

func (r *renderer) renderParagraph(node *document.Paragraph) {
	content := node.Label.Markup()
	if content != "" {
		wrapped := ansi.Wrap(content, r.currentWidth(), wrapBreakpoints)
		r.writeOutput(r.applyPrefixes(wrapped))
		r.ensureNewline()
		r.ensureBlankLine()
	}
	r.renderBlocks(node.Children)
}

func (r *renderer) renderList(node *document.List) {
	number := node.Start
	if node.Ordered && number == 0 {
		number = 1
	}
	for _, child := range node.Children {
		item, ok := child.(*document.ListItem)
		if !ok {
			r.renderBlocks([]document.Node{child})
			continue
		}
		bullet := "- "
		if node.Ordered {
			bullet = fmt.Sprintf("%d. ", number)
			number++
		}
		r.renderListItem(item, bullet)
	}
	r.ensureBlankLine()
}

func (r *renderer) renderListItem(item *document.ListItem, bullet string) {
	if item.Checked != nil {
		if *item.Checked {
			bullet += "[x] "
		} else {
			bullet += "[ ] "
		}
	}

	bulletWidth := len(bullet) // ASCII-only, so byte length == visual width.
	continuation := strings.Repeat(" ", bulletWidth)

	// The pending bullet includes the current linePrefix so it
	// replaces the entire prefix for the item's first line.
	r.pendingBullet = r.linePrefix + bullet
	r.pushPrefix(continuation, bulletWidth)
	r.renderBlocks(item.Children)
	r.popPrefix()
	r.ensureNewline()
}

func (r *renderer) renderCodeBlock(node *document.CodeBlock) {
	content := strings.TrimRight(node.Label.Markup(), "\n")
	if content == "" {
		return
	}

	faint := r.newStyle().Foreground(r.theme.FaintText)
	r.ensureBlankLine()
	for _, line := range strings.Split(content, "\n") {
		if !node.Label.Rich() {
			// Unhighlighted fallback: plain code, de-emphasized.
			line = faint.Render(line)
		}
		r.writeOutput(r.consumeLinePrefix() + line)
		r.ensureNewline()
	}
	r.ensureBlankLine()
}

func (r *renderer) renderRule(glyph string) {
	ruleStyle := r.newStyle().Foreground(r.theme.BorderColor)
	r.ensureBlankLine()
	r.writeOutput(r.applyPrefixes(ruleStyle.Render(strings.Repeat(glyph, r.currentWidth()))))
	r.ensureNewline()
	r.ensureBlankLine()
}

// --- Tables ---

func (r *renderer) renderTable(node *document.Table) {
	if node.Rows == 0 || node.Columns == 0 {
		return
	}

	// Lay the sparse cell list out as a dense grid of markup strings.
	grid := make([][]string, node.Rows)
	for row := range grid {
		grid[row] = make([]string, node.Columns)
	}
	for _, cell := range node.Cells {
		if cell.Row < node.Rows && cell.Column < node.Columns {
			grid[cell.Row][cell.Column] = cell.Label.Markup()
		}
	}

	columnWidths := make([]int, node.Columns)
	for _, row := range grid {
		for index, cell := range row {
			if width := lipgloss.Width(cell); width > columnWidths[index] {
				columnWidths[index] = width
			}
		}
	}

	// Cap total width to available space; shrink proportionally with
	// a minimum of 3 columns' worth of characters each.
	const separator = "  "
	totalWidth := len(separator) * (node.Columns - 1)
	for _, width := range columnWidths {
		totalWidth += width
	}
	available := r.currentWidth()
	if totalWidth > available {
		usable := available - len(separator)*(node.Columns-1)
		if usable < node.Columns*3 {
			usable = node.Columns * 3
		}
		for index := range columnWidths {
			columnWidths[index] = (columnWidths[index] * usable) / totalWidth
			if columnWidths[index] < 3 {
				columnWidths[index] = 3
			}
		}
	}

	r.ensureBlankLine()

	// Row 0 is the source table's header row.
	bold := r.newStyle().Bold(true).Foreground(r.theme.NormalText)
	r.writeOutput(r.consumeLinePrefix() + r.formatTableRow(grid[0], columnWidths, bold))
	r.ensureNewline()

	var separatorParts []string
	for _, width := range columnWidths {
		separatorParts = append(separatorParts, strings.Repeat("─", width))
	}
	borderStyle := r.newStyle().Foreground(r.theme.BorderColor)
	r.writeOutput(r.linePrefix + borderStyle.Render(strings.Join(separatorParts, separator)))
	r.ensureNewline()

	for _, row := range grid[1:] {
		r.writeOutput(r.linePrefix + r.formatTableRow(row, columnWidths, r.newStyle()))
		r.ensureNewline()
	}

	r.ensureBlankLine()
}

// formatTableRow pads and truncates one row's cells to the column
// widths.
func (r *renderer) formatTableRow(cells []string, columnWidths []int, baseStyle lipgloss.Style) string {
	const separator = "  "
	var parts []string
	for index, width := range columnWidths {
		var cell string
		if index < len(cells) {
			cell = cells[index]
		}

		visibleWidth := lipgloss.Width(cell)
		if visibleWidth > width {
			cell = ansi.Truncate(cell, width, "…")
			visibleWidth = lipgloss.Width(cell)
		}

		padding := width - visibleWidth
		if padding < 0 {
			padding = 0
		}
		parts = append(parts, cell+strings.Repeat(" ", padding))
	}
	return baseStyle.Render(strings.Join(parts, separator))
}
