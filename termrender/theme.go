// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package termrender

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors the terminal renderer draws with. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility. Inline styling (bold, italic, code colors) is already
// baked into the compiled labels; the theme only covers the chrome the
// renderer itself paints.
type Theme struct {
	// NormalText colors ordinary block text and bullets.
	NormalText lipgloss.Color

	// FaintText colors de-emphasized content: plain (unhighlighted)
	// code, image placeholders.
	FaintText lipgloss.Color

	// HeaderForeground colors level 1-2 heading text.
	HeaderForeground lipgloss.Color

	// BorderColor colors rules, table separators, and blockquote
	// gutters.
	BorderColor lipgloss.Color
}

// DefaultTheme is a dark-terminal palette.
var DefaultTheme = Theme{
	NormalText:       lipgloss.Color("252"),
	FaintText:        lipgloss.Color("244"),
	HeaderForeground: lipgloss.Color("81"),
	BorderColor:      lipgloss.Color("240"),
}
