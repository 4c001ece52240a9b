// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/lazytanuki/mddoc/document"
	"github.com/lazytanuki/mddoc/highlight"
	"github.com/lazytanuki/mddoc/markup"
)

// compiler holds the per-call state of one compilation: the source the
// AST references, the immutable configuration, and the diagnostics
// side channel. Positional state (list depth, table cursor) is not
// kept here; it travels through compileNodes as a by-value ambient so
// sibling subtrees cannot corrupt each other.
type compiler struct {
	source      []byte
	config      Config
	diagnostics []document.Diagnostic
}

// tableCursor is the grid position threaded through table compilation.
// row is one-based while inside a table (it is incremented on entering
// each row); cells subtract one when they attach.
type tableCursor struct {
	row    int
	column int
}

// ambient is the positional state for one recursive pass. It is
// passed by value: a pass mutates its own copy (the table cursor must
// advance across sibling rows and cells), and hands children a copy of
// the current state, so nothing a child does leaks back up.
type ambient struct {
	// label is the inline accumulator of the enclosing block, nil
	// when the pass is at block level.
	label *document.Label

	// listDepth counts enclosing lists. Item indent derives from it.
	listDepth int

	// table is the grid cells attach to, nil outside tables.
	table  *document.Table
	cursor tableCursor
}

// compileNodes compiles a chain of AST siblings into document blocks.
// Labels created during this pass are sealed only after the sibling
// loop completes, so no consumer can observe partially-tagged markup.
func (c *compiler) compileNodes(first ast.Node, amb ambient) ([]document.Node, error) {
	var blocks []document.Node
	var created []*document.Label
	sink := c.config.Sink

	for child := first; child != nil; child = child.NextSibling() {
		switch child.Kind() {

		case ast.KindHeading:
			heading := child.(*ast.Heading)
			size, ruleHeight, supported := headingSize(heading.Level)
			if !supported {
				continue
			}
			label := &document.Label{}
			sizeOpen, sizeClose := sink.FontSize(string(size))
			label.Append(sizeOpen)
			node := &document.Heading{
				Level:      heading.Level,
				Size:       size,
				RuleHeight: ruleHeight,
				Label:      label,
			}
			children, err := c.compileNodes(child.FirstChild(), ambient{
				label:     label,
				listDepth: amb.listDepth,
			})
			if err != nil {
				return nil, err
			}
			node.Children = children
			label.Append(sizeClose)
			created = append(created, label)
			blocks = append(blocks, node)

		case ast.KindText:
			// Orphaned text with no enclosing inline context is dropped.
			if amb.label == nil {
				continue
			}
			textNode := child.(*ast.Text)
			amb.label.Append(sink.Escape(string(textNode.Segment.Value(c.source))))
			if textNode.SoftLineBreak() || textNode.HardLineBreak() {
				amb.label.Append("\n")
			}

		case ast.KindString:
			if amb.label == nil {
				continue
			}
			amb.label.Append(sink.Escape(string(child.(*ast.String).Value)))

		case ast.KindParagraph, ast.KindTextBlock:
			if amb.label != nil {
				// A paragraph met while a label is active (list item
				// text blocks, parser quirks) flattens into it rather
				// than opening a new block.
				flattened, err := c.compileNodes(child.FirstChild(), ambient{
					label:     amb.label,
					listDepth: amb.listDepth,
				})
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, flattened...)
				continue
			}
			label := &document.Label{}
			node := &document.Paragraph{Label: label}
			children, err := c.compileNodes(child.FirstChild(), ambient{
				label:     label,
				listDepth: amb.listDepth,
			})
			if err != nil {
				return nil, err
			}
			node.Children = children
			created = append(created, label)
			blocks = append(blocks, node)

		case ast.KindBlockquote:
			children, err := c.compileNodes(child.FirstChild(), ambient{
				listDepth: amb.listDepth,
			})
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, &document.Blockquote{Children: children})

		case ast.KindEmphasis:
			if amb.label == nil {
				continue
			}
			emphasis := child.(*ast.Emphasis)
			open, closing := sink.Italic()
			if emphasis.Level >= 2 {
				open, closing = sink.Bold()
			}
			if err := c.compileSpan(child, amb, open, closing, &blocks); err != nil {
				return nil, err
			}

		case extast.KindStrikethrough:
			if amb.label == nil {
				continue
			}
			open, closing := sink.Strikethrough()
			if err := c.compileSpan(child, amb, open, closing, &blocks); err != nil {
				return nil, err
			}

		case ast.KindCodeSpan:
			if amb.label == nil {
				continue
			}
			open, closing := sink.Monospace()
			amb.label.Append(" " + open + sink.Escape(c.codeSpanText(child)) + closing + " ")

		case ast.KindLink:
			if amb.label == nil {
				continue
			}
			link := child.(*ast.Link)
			underlineOpen, underlineClose := sink.Underline()
			linkOpen, linkClose := sink.Link(string(link.Destination))
			amb.label.Append(underlineOpen + linkOpen)
			if len(link.Title) > 0 {
				// An explicit title wins over the link's children.
				amb.label.Append(sink.Escape(string(link.Title)))
			} else {
				children, err := c.compileNodes(child.FirstChild(), ambient{
					label:     amb.label,
					listDepth: amb.listDepth,
				})
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, children...)
			}
			amb.label.Append(linkClose + underlineClose)

		case ast.KindAutoLink:
			if amb.label == nil {
				continue
			}
			url := string(child.(*ast.AutoLink).URL(c.source))
			underlineOpen, underlineClose := sink.Underline()
			linkOpen, linkClose := sink.Link(url)
			amb.label.Append(underlineOpen + linkOpen + sink.Escape(url) + linkClose + underlineClose)

		case ast.KindList:
			list := child.(*ast.List)
			node := &document.List{Ordered: list.IsOrdered()}
			if node.Ordered {
				node.Start = list.Start
			}
			children, err := c.compileNodes(child.FirstChild(), ambient{
				listDepth: amb.listDepth + 1,
			})
			if err != nil {
				return nil, err
			}
			node.Children = children
			blocks = append(blocks, node)

		case ast.KindListItem:
			indent := (amb.listDepth - 1) * document.ListIndentUnit
			if indent < 0 {
				indent = 0
			}
			node := &document.ListItem{
				Indent:  indent,
				Checked: taskCheckState(child),
			}
			children, err := c.compileNodes(child.FirstChild(), ambient{
				listDepth: amb.listDepth,
			})
			if err != nil {
				return nil, err
			}
			node.Children = children
			blocks = append(blocks, node)

		case ast.KindFencedCodeBlock:
			fenced := child.(*ast.FencedCodeBlock)
			language := string(fenced.Language(c.source))
			blocks = append(blocks, c.compileCode(language, c.blockText(child)))

		case ast.KindCodeBlock:
			// Indented code block: no language tag.
			blocks = append(blocks, c.compileCode("", c.blockText(child)))

		case extast.KindTable:
			table := &document.Table{}
			if _, err := c.compileNodes(child.FirstChild(), ambient{
				listDepth: amb.listDepth,
				table:     table,
			}); err != nil {
				return nil, err
			}
			for _, cell := range table.Cells {
				if cell.Row+1 > table.Rows {
					table.Rows = cell.Row + 1
				}
				if cell.Column+1 > table.Columns {
					table.Columns = cell.Column + 1
				}
			}
			blocks = append(blocks, table)

		case extast.KindTableHeader, extast.KindTableRow:
			if amb.table == nil {
				continue
			}
			// The row counter survives into sibling rows via this
			// pass's ambient copy; the column cursor resets per row.
			amb.cursor.row++
			amb.cursor.column = 0
			if _, err := c.compileNodes(child.FirstChild(), ambient{
				listDepth: amb.listDepth,
				table:     amb.table,
				cursor:    amb.cursor,
			}); err != nil {
				return nil, err
			}

		case extast.KindTableCell:
			if amb.table == nil {
				continue
			}
			label := &document.Label{}
			cell := &document.TableCell{
				Row:    amb.cursor.row - 1,
				Column: amb.cursor.column,
				Label:  label,
			}
			amb.table.Cells = append(amb.table.Cells, cell)
			amb.cursor.column++
			children, err := c.compileNodes(child.FirstChild(), ambient{
				label:     label,
				listDepth: amb.listDepth,
				table:     amb.table,
				cursor:    amb.cursor,
			})
			if err != nil {
				return nil, err
			}
			cell.Children = children
			created = append(created, label)

		case ast.KindThematicBreak:
			blocks = append(blocks, &document.ThematicBreak{})

		case ast.KindImage:
			image := child.(*ast.Image)
			switch c.config.ImageMode {
			case ImageIgnore:
				// No node, no diagnostic.
			case ImageFromPath:
				blocks = append(blocks, &document.Image{Path: string(image.Destination)})
			case ImageEmbed:
				return nil, fmt.Errorf("image %q: %w", string(image.Destination), ErrEmbeddedImages)
			}

		case ast.KindHTMLBlock, ast.KindRawHTML,
			extast.KindTaskCheckBox,
			extast.KindFootnote, extast.KindFootnoteList,
			extast.KindFootnoteLink, extast.KindFootnoteBacklink,
			extast.KindDefinitionList, extast.KindDefinitionTerm,
			extast.KindDefinitionDescription:
			// Intentionally unsupported syntax: no output, no
			// diagnostic. Task checkboxes are consumed by the
			// enclosing list item, not rendered inline.

		default:
			// Kinds registered by extensions this compiler does not
			// know about are skipped the same way.
		}
	}

	for _, label := range created {
		label.Seal()
	}
	return blocks, nil
}

// compileSpan wraps the recursive compilation of an inline container's
// children in one open/close tag pair. The pair is emitted even when
// the subtree is empty, keeping tags balanced.
func (c *compiler) compileSpan(node ast.Node, amb ambient, open, closing string, blocks *[]document.Node) error {
	amb.label.Append(open)
	children, err := c.compileNodes(node.FirstChild(), ambient{
		label:     amb.label,
		listDepth: amb.listDepth,
	})
	if err != nil {
		return err
	}
	*blocks = append(*blocks, children...)
	amb.label.Append(closing)
	return nil
}

// compileCode highlights a code block and wraps the result in its own
// block. When highlighting is unavailable the label carries the raw
// code and stays unsealed (plain text); otherwise the serialized runs
// are sealed as rich markup immediately.
func (c *compiler) compileCode(language, code string) *document.CodeBlock {
	runs, diagnostics := highlight.Runs(c.config.Sink, language, c.config.HighlightTheme, code)
	c.report(diagnostics)

	label := &document.Label{}
	node := &document.CodeBlock{Language: language, Runs: runs, Label: label}
	if runs == nil {
		label.Append(code)
		return node
	}
	label.Append(markup.RenderCodeRuns(c.config.Sink, runs))
	label.Seal()
	return node
}

// report records diagnostics on the side channel and mirrors them to
// the configured logger.
func (c *compiler) report(diagnostics []document.Diagnostic) {
	for _, diagnostic := range diagnostics {
		c.diagnostics = append(c.diagnostics, diagnostic)
		c.config.Logger.Warn("markdown rendering degraded",
			"code", string(diagnostic.Code),
			"subject", diagnostic.Subject,
		)
	}
}

// blockText joins the source lines a block-level node spans.
func (c *compiler) blockText(node ast.Node) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(c.source))
	}
	return builder.String()
}

// codeSpanText collects the text of a code span's children, joining
// segments.
func (c *compiler) codeSpanText(node ast.Node) string {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			code.Write(n.Segment.Value(c.source))
		case *ast.String:
			code.Write(n.Value)
		}
	}
	return code.String()
}

// headingSize maps a heading depth to its size class and rule height.
// Depths outside 1-6 are unsupported and produce no block.
func headingSize(level int) (document.SizeClass, int, bool) {
	switch level {
	case 1:
		return document.SizeXXLarge, 4, true
	case 2:
		return document.SizeXLarge, 3, true
	case 3:
		return document.SizeLarge, 2, true
	case 4, 5, 6:
		return document.SizeMedium, 1, true
	default:
		return "", 0, false
	}
}

// taskCheckState lifts the checkbox state off a task list item. The
// GFM extension parses "- [x]" as a TaskCheckBox inline node leading
// the item's first text block; the document model carries it as a
// field on the list item instead.
func taskCheckState(item ast.Node) *bool {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	if first.Kind() != ast.KindTextBlock && first.Kind() != ast.KindParagraph {
		return nil
	}
	checkbox, ok := first.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return nil
	}
	checked := checkbox.IsChecked
	return &checked
}
