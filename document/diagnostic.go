// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package document

// DiagnosticCode classifies a non-fatal rendering degradation.
type DiagnosticCode string

const (
	// DiagnosticUnknownLanguage records a code block whose language
	// tag was absent or did not match any known grammar. The block
	// rendered as plain text.
	DiagnosticUnknownLanguage DiagnosticCode = "unknown-language"

	// DiagnosticUnknownTheme records a highlight theme name that did
	// not match any known theme. The affected block rendered as plain
	// text even if its language resolved.
	DiagnosticUnknownTheme DiagnosticCode = "unknown-theme"
)

// Diagnostic is an informational record of a degraded rendering
// decision. Diagnostics never abort compilation; the document still
// renders, just without the affected styling.
type Diagnostic struct {
	Code DiagnosticCode

	// Subject is the token that failed to resolve: the language tag
	// or the theme name.
	Subject string
}

func (d Diagnostic) String() string {
	switch d.Code {
	case DiagnosticUnknownLanguage:
		if d.Subject == "" {
			return "code block has no language tag"
		}
		return "unknown code block language: " + d.Subject
	case DiagnosticUnknownTheme:
		return "unknown highlight theme: " + d.Subject
	default:
		return string(d.Code) + ": " + d.Subject
	}
}
