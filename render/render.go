// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

// Package render compiles parsed CommonMark into a styled document
// tree. The input is a goldmark AST (or raw markdown text, which the
// package parses with GitHub-flavored extensions); the output is a
// document.Document whose labels carry finished markup in the dialect
// of the configured sink, plus an ordered list of non-fatal
// diagnostics for degraded decisions (unknown code language, unknown
// highlight theme).
//
// Compilation is single-threaded and synchronous: one call fully
// consumes one AST and returns. Each call owns its own list and table
// state, so sequential compilations never interfere; callers wanting
// concurrent compilations must serialize them if they share a Logger
// that is not concurrency-safe.
package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/lazytanuki/mddoc/document"
)

// ErrEmbeddedImages marks the embed image mode as unimplemented.
// Returning an error (rather than silently dropping the image) keeps
// "not yet built" distinguishable from the intentional ignore mode.
var ErrEmbeddedImages = errors.New("embedded images are not implemented")

// parserInstance is initialized once and reused. The parser
// configuration never changes and a goldmark parser is safe to share:
// parsing builds per-call state from the reader.
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func parser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return parserInstance
}

// Markdown parses markdown text with GitHub-flavored CommonMark
// extensions and compiles it. See Compile for the result contract.
func Markdown(input string, config Config) (*document.Document, []document.Diagnostic, error) {
	source := []byte(input)
	root := parser().Parser().Parse(text.NewReader(source))
	return Compile(root, source, config)
}

// Compile walks a parsed AST and produces the document tree plus the
// ordered diagnostics recorded along the way. Diagnostics never abort
// compilation; the only error paths are an image encountered under
// ImageEmbed (ErrEmbeddedImages) and, for parsers that can fail,
// upstream parse errors wrapped by the caller.
//
// source must be the exact text the AST was parsed from: goldmark
// nodes reference it by segment.
func Compile(root ast.Node, source []byte, config Config) (*document.Document, []document.Diagnostic, error) {
	comp := &compiler{
		source: source,
		config: config.withDefaults(),
	}

	blocks, err := comp.compileNodes(root.FirstChild(), ambient{})
	if err != nil {
		return nil, comp.diagnostics, fmt.Errorf("compiling markdown: %w", err)
	}

	return &document.Document{Blocks: blocks}, comp.diagnostics, nil
}
