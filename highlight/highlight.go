// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package highlight adapts the chroma syntax highlighting engine to
// the style-run model. It turns a code block's text plus an optional
// language tag into an ordered sequence of markup.Run values, one per
// styled span, degrading to no runs (plain text) when the language or
// theme cannot be resolved.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/lazytanuki/mddoc/document"
	"github.com/lazytanuki/mddoc/markup"
)

// Runs highlights code and returns its style runs in document order,
// with run text escaped through sink.
//
// The language tag is resolved case-insensitively against chroma's
// lexer registry and themeName against its style registry. Both must
// resolve for highlighting to occur; each failure records one
// diagnostic and the caller is expected to fall back to the raw code
// as plain text. A nil run slice therefore means "unstyled", while a
// non-nil slice reconstructs the escaped code when the run texts are
// concatenated.
func Runs(sink markup.Sink, language, themeName, code string) ([]markup.Run, []document.Diagnostic) {
	var diagnostics []document.Diagnostic

	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		diagnostics = append(diagnostics, document.Diagnostic{
			Code:    document.DiagnosticUnknownLanguage,
			Subject: language,
		})
	}

	style, themeKnown := styles.Registry[themeName]
	if !themeKnown {
		diagnostics = append(diagnostics, document.Diagnostic{
			Code:    document.DiagnosticUnknownTheme,
			Subject: themeName,
		})
	}

	if lexer == nil || !themeKnown {
		return nil, diagnostics
	}

	lexer = chroma.Coalesce(lexer)

	var runs []markup.Run
	for _, line := range splitAfterNewlines(code) {
		iterator, err := lexer.Tokenise(nil, line)
		if err != nil {
			// A line the lexer rejects contributes no runs; the rest
			// of the block still highlights.
			continue
		}
		tokens := iterator.Tokens()

		// Some lexers normalize input by appending a newline. Drop it
		// again so concatenated run text reconstructs the source.
		if !strings.HasSuffix(line, "\n") {
			tokens = trimTrailingNewline(tokens)
		}

		for _, token := range tokens {
			if token.Value == "" {
				continue
			}
			runs = append(runs, styleRun(sink, style, token))
		}
	}
	return runs, diagnostics
}

// styleRun converts one chroma token into a run using the theme's
// style entry for the token type.
func styleRun(sink markup.Sink, style *chroma.Style, token chroma.Token) markup.Run {
	entry := style.Get(token.Type)
	run := markup.Run{
		Text:      sink.Escape(token.Value),
		Bold:      entry.Bold == chroma.Yes,
		Italic:    entry.Italic == chroma.Yes,
		Underline: entry.Underline == chroma.Yes,
	}
	if entry.Colour.IsSet() {
		run.Foreground = &markup.RGB{
			R: entry.Colour.Red(),
			G: entry.Colour.Green(),
			B: entry.Colour.Blue(),
		}
	}
	return run
}

// splitAfterNewlines splits text into lines that keep their trailing
// newline, so reassembling the lines reproduces the input exactly.
// The final fragment may lack a newline; an empty input yields no
// lines.
func splitAfterNewlines(text string) []string {
	var lines []string
	for len(text) > 0 {
		index := strings.IndexByte(text, '\n')
		if index < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:index+1])
		text = text[index+1:]
	}
	return lines
}

// trimTrailingNewline removes a single newline from the end of the
// last token, dropping the token entirely if that empties it.
func trimTrailingNewline(tokens []chroma.Token) []chroma.Token {
	for last := len(tokens) - 1; last >= 0; last-- {
		if tokens[last].Value == "" {
			continue
		}
		if !strings.HasSuffix(tokens[last].Value, "\n") {
			return tokens
		}
		tokens[last].Value = strings.TrimSuffix(tokens[last].Value, "\n")
		if tokens[last].Value == "" {
			return tokens[:last]
		}
		return tokens
	}
	return tokens
}
