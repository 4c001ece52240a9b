// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package document

import "strings"

// Label is the accumulating buffer behind one inline-formatted text
// region: a paragraph's text, a heading's text, a table cell's text.
//
// A label has two states. While building, the compiler appends escaped
// text and markup tag pairs in document order. Seal marks the label as
// rich markup once its subtree is fully compiled; until then a
// consumer observing the label must treat the content as plain text,
// so partially-tagged intermediate markup is never interpreted. A
// label that is never sealed (the unhighlighted code fallback) stays
// plain for good.
type Label struct {
	builder strings.Builder
	rich    bool
}

// Append adds markup-format text to the label. Appends after Seal are
// ignored: a sealed label is immutable.
func (label *Label) Append(text string) {
	if label.rich {
		return
	}
	label.builder.WriteString(text)
}

// Seal marks the label as finished rich markup and freezes it.
func (label *Label) Seal() {
	label.rich = true
}

// Rich reports whether the label has been sealed as rich markup.
func (label *Label) Rich() bool {
	return label.rich
}

// Markup returns the accumulated markup text.
func (label *Label) Markup() string {
	return label.builder.String()
}

// Empty reports whether nothing has been appended.
func (label *Label) Empty() bool {
	return label.builder.Len() == 0
}
