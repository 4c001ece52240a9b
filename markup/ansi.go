// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package markup

import "fmt"

// ANSI emits SGR escape sequences, making compiled labels directly
// printable on a terminal. Close tags reset only the property they
// opened, so nested spans restore the surrounding state the same way
// paired markup tags do.
//
// Hyperlinks use OSC 8, which modern terminal emulators understand and
// older ones ignore silently.
type ANSI struct{}

// Escape is the identity: terminals have no markup-significant
// characters to protect (control sequences are introduced by ESC,
// which plain document text does not contain).
func (ANSI) Escape(text string) string { return text }

func (ANSI) Bold() (string, string)          { return "\x1b[1m", "\x1b[22m" }
func (ANSI) Italic() (string, string)        { return "\x1b[3m", "\x1b[23m" }
func (ANSI) Underline() (string, string)     { return "\x1b[4m", "\x1b[24m" }
func (ANSI) Strikethrough() (string, string) { return "\x1b[9m", "\x1b[29m" }

// Monospace is a no-op: terminal cells are already fixed-width.
func (ANSI) Monospace() (string, string) { return "", "" }

func (ANSI) Color(color RGB) (string, string) {
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", color.R, color.G, color.B), "\x1b[39m"
}

func (ANSI) Link(url string) (string, string) {
	return "\x1b]8;;" + url + "\x1b\\", "\x1b]8;;\x1b\\"
}

// FontSize has no terminal equivalent; heading emphasis is the layout
// engine's job (see termrender).
func (ANSI) FontSize(class string) (string, string) { return "", "" }
