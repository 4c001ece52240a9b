// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package markup defines the style-run model shared by the compiler
// and the syntax highlighter, and the Sink abstraction that decides
// which concrete markup dialect (Pango tags, ANSI escape sequences)
// the compiled document carries.
//
// A Run is a maximal span of text with one formatting state. Runs are
// always produced in document order, and concatenating their Text
// fields reconstructs the full (escaped) source line. Run text is
// escaped through the sink before being stored, so serialization never
// escapes twice.
package markup

import "fmt"

// RGB is a 24-bit foreground color.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Run is a span of already-escaped text sharing one formatting state.
type Run struct {
	// Text is escaped for the target markup dialect.
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	// Foreground is nil when the run inherits the default color.
	Foreground *RGB
}

// Sink produces the concrete markup for one dialect. Every method
// apart from Escape returns a paired open/close tag; pairs must nest
// without crossing, so callers emit open, recurse, close. A dialect
// that has no representation for a property returns two empty strings.
type Sink interface {
	// Escape makes raw text safe to embed in the dialect.
	Escape(text string) string

	Bold() (open, close string)
	Italic() (open, close string)
	Underline() (open, close string)
	Strikethrough() (open, close string)
	Monospace() (open, close string)
	Color(color RGB) (open, close string)
	Link(url string) (open, close string)
	FontSize(class string) (open, close string)
}

// RenderRuns serializes runs into a single markup string. Each run's
// text is wrapped innermost-to-outermost in underline, italic, bold,
// then foreground color, and the wrapped runs are concatenated in
// order. The fixed nesting order keeps tag pairs from crossing no
// matter which properties a run combines.
func RenderRuns(sink Sink, runs []Run) string {
	return renderRuns(sink, runs, false)
}

// RenderCodeRuns is RenderRuns with every run's text additionally
// wrapped in the monospace pair, innermost. Used for highlighted code
// blocks, where each colored span is fixed-width.
func RenderCodeRuns(sink Sink, runs []Run) string {
	return renderRuns(sink, runs, true)
}

func renderRuns(sink Sink, runs []Run, monospace bool) string {
	var out string
	for _, run := range runs {
		text := run.Text
		if monospace {
			open, close := sink.Monospace()
			text = open + text + close
		}
		if run.Underline {
			open, close := sink.Underline()
			text = open + text + close
		}
		if run.Italic {
			open, close := sink.Italic()
			text = open + text + close
		}
		if run.Bold {
			open, close := sink.Bold()
			text = open + text + close
		}
		if run.Foreground != nil {
			open, close := sink.Color(*run.Foreground)
			text = open + text + close
		}
		out += text
	}
	return out
}
