// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package document defines the compiled, presentation-ready document
// tree: the output of the render package and the input to any
// presentation layer (see termrender for a terminal consumer).
//
// The tree is a strict hierarchy of block nodes. Inline formatting
// never appears as nodes: it is flattened into markup strings held by
// [Label] values during compilation. Which markup dialect those
// strings use is decided by the markup.Sink the compiler ran with.
package document

import "github.com/lazytanuki/mddoc/markup"

// Kind identifies the concrete type of a Node.
type Kind int

const (
	KindHeading Kind = iota
	KindParagraph
	KindBlockquote
	KindList
	KindListItem
	KindCodeBlock
	KindTable
	KindThematicBreak
	KindImage
)

var kindNames = [...]string{
	KindHeading:       "heading",
	KindParagraph:     "paragraph",
	KindBlockquote:    "blockquote",
	KindList:          "list",
	KindListItem:      "list-item",
	KindCodeBlock:     "code-block",
	KindTable:         "table",
	KindThematicBreak: "thematic-break",
	KindImage:         "image",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is one block of the compiled document. The set of
// implementations is closed; consumers dispatch on Kind or with a type
// switch and should treat an unrecognized kind as a hard error rather
// than skipping it.
type Node interface {
	Kind() Kind
}

// Document is the compiled tree: the ordered top-level blocks of one
// source document.
type Document struct {
	Blocks []Node
}

// SizeClass is the depth-derived text size of a heading, named after
// the CSS/Pango absolute size keywords.
type SizeClass string

const (
	SizeXXLarge SizeClass = "xx-large"
	SizeXLarge  SizeClass = "x-large"
	SizeLarge   SizeClass = "large"
	SizeMedium  SizeClass = "medium"
)

// ListIndentUnit is the horizontal offset applied per level of list
// nesting, in layout units.
const ListIndentUnit = 15

// Heading is a section title with a rule underneath. RuleHeight
// shrinks with depth (4 for level 1 down to 1 for levels 4-6).
// Children holds any block content produced while compiling the
// heading's inline text, such as images.
type Heading struct {
	Level      int
	Size       SizeClass
	RuleHeight int
	Label      *Label
	Children   []Node
}

// Paragraph is a run of inline text. Children holds block content
// that appeared inline in the source, such as images.
type Paragraph struct {
	Label    *Label
	Children []Node
}

// Blockquote is an indented, de-emphasized group of blocks.
type Blockquote struct {
	Children []Node
}

// List is an ordered or bullet list; its children are ListItem nodes.
// Start is the first ordinal of an ordered list and zero otherwise.
type List struct {
	Ordered  bool
	Start    int
	Children []Node
}

// ListItem is one entry of a List. Indent is the absolute layout
// offset for the item's nesting depth. Checked is non-nil for task
// list items and carries the checkbox state.
type ListItem struct {
	Indent   int
	Checked  *bool
	Children []Node
}

// CodeBlock is a fenced or indented code block. When highlighting
// succeeded, Runs holds the styled spans and Label their serialized
// markup (sealed). When the language or theme did not resolve, Runs is
// nil and Label carries the raw code as plain, unsealed text.
type CodeBlock struct {
	Language string
	Runs     []markup.Run
	Label    *Label
}

// Table is a two-dimensional grid of cells. Rows and Columns record
// the grid extent; Cells hold their own grid coordinates so sparse or
// ragged tables stay representable.
type Table struct {
	Rows    int
	Columns int
	Cells   []*TableCell
}

// TableCell is one grid cell, positioned at (Row, Column), both
// zero-indexed. The header row of a source table is row 0.
type TableCell struct {
	Row      int
	Column   int
	Label    *Label
	Children []Node
}

// ThematicBreak is a plain horizontal separator.
type ThematicBreak struct{}

// Image references a picture by filesystem path. Only emitted under
// the from-path image mode.
type Image struct {
	Path string
}

func (*Heading) Kind() Kind       { return KindHeading }
func (*Paragraph) Kind() Kind     { return KindParagraph }
func (*Blockquote) Kind() Kind    { return KindBlockquote }
func (*List) Kind() Kind          { return KindList }
func (*ListItem) Kind() Kind      { return KindListItem }
func (*CodeBlock) Kind() Kind     { return KindCodeBlock }
func (*Table) Kind() Kind         { return KindTable }
func (*ThematicBreak) Kind() Kind { return KindThematicBreak }
func (*Image) Kind() Kind         { return KindImage }
