// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package markup

import "strings"

// Pango emits Pango text attribute markup, the dialect GTK labels
// consume. This is the default sink: a GTK front end can hand compiled
// label markup straight to gtk.Label with use_markup enabled.
type Pango struct{}

var pangoEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape replaces the three characters with meaning in Pango markup.
// Quotes only need escaping inside attribute values, which the sink
// builds itself.
func (Pango) Escape(text string) string {
	return pangoEscaper.Replace(text)
}

func (Pango) Bold() (string, string)          { return "<b>", "</b>" }
func (Pango) Italic() (string, string)        { return "<i>", "</i>" }
func (Pango) Underline() (string, string)     { return "<u>", "</u>" }
func (Pango) Strikethrough() (string, string) { return "<s>", "</s>" }

// Monospace wraps text in a <tt> span. The enclosing <span> matches
// the form GTK themes target for inline code.
func (Pango) Monospace() (string, string) { return "<span><tt>", "</tt></span>" }

func (Pango) Color(color RGB) (string, string) {
	return `<span foreground="` + color.Hex() + `">`, "</span>"
}

func (p Pango) Link(url string) (string, string) {
	return `<a href="` + attributeEscape(url) + `">`, "</a>"
}

func (Pango) FontSize(class string) (string, string) {
	return `<span font_size="` + class + `">`, "</span>"
}

var attributeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// attributeEscape makes a string safe inside a double-quoted markup
// attribute value.
func attributeEscape(value string) string {
	return attributeEscaper.Replace(value)
}
