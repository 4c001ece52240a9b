// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"strings"
	"testing"

	"github.com/lazytanuki/mddoc/document"
	"github.com/lazytanuki/mddoc/markup"
)

const theme = "monokai"

func TestRunsHighlightGo(t *testing.T) {
	code := "func main() {\n\tprintln(\"hi\")\n}\n"
	runs, diagnostics := Runs(markup.Pango{}, "go", theme, code)

	if len(diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diagnostics)
	}
	if len(runs) < 2 {
		t.Fatalf("expected multiple style runs, got %d", len(runs))
	}

	// Concatenating run text must reconstruct the escaped source.
	var joined strings.Builder
	for _, run := range runs {
		joined.WriteString(run.Text)
	}
	if got, want := joined.String(), (markup.Pango{}).Escape(code); got != want {
		t.Errorf("run concatenation mismatch:\n  got:  %q\n  want: %q", got, want)
	}
}

func TestRunsEscapesTokenText(t *testing.T) {
	code := `a := b < c && d > e`
	runs, diagnostics := Runs(markup.Pango{}, "go", theme, code)
	if len(diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diagnostics)
	}
	for _, run := range runs {
		if strings.ContainsAny(run.Text, "<>") {
			t.Errorf("run text not escaped: %q", run.Text)
		}
	}
}

func TestRunsPreservesTrailingShape(t *testing.T) {
	// No trailing newline in the source: none may appear in the runs.
	code := "x := 1"
	runs, diagnostics := Runs(markup.Pango{}, "go", theme, code)
	if len(diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diagnostics)
	}
	if len(runs) == 0 {
		t.Fatal("expected runs")
	}
	last := runs[len(runs)-1]
	if strings.HasSuffix(last.Text, "\n") {
		t.Errorf("lexer-added newline not trimmed: %q", last.Text)
	}
}

func TestRunsUnknownLanguage(t *testing.T) {
	runs, diagnostics := Runs(markup.Pango{}, "klingon-42", theme, "some text")
	if runs != nil {
		t.Errorf("expected no runs for unknown language, got %d", len(runs))
	}
	if len(diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diagnostics)
	}
	if diagnostics[0].Code != document.DiagnosticUnknownLanguage || diagnostics[0].Subject != "klingon-42" {
		t.Errorf("unexpected diagnostic %+v", diagnostics[0])
	}
}

func TestRunsAbsentLanguage(t *testing.T) {
	runs, diagnostics := Runs(markup.Pango{}, "", theme, "plain block")
	if runs != nil {
		t.Errorf("expected no runs without a language tag")
	}
	if len(diagnostics) != 1 || diagnostics[0].Code != document.DiagnosticUnknownLanguage {
		t.Errorf("expected one unknown-language diagnostic, got %v", diagnostics)
	}
}

func TestRunsUnknownTheme(t *testing.T) {
	// The language resolves; highlighting must still fall through to
	// plain because the theme does not.
	runs, diagnostics := Runs(markup.Pango{}, "go", "no-such-theme", "x := 1")
	if runs != nil {
		t.Errorf("expected no runs for unknown theme")
	}
	if len(diagnostics) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %v", diagnostics)
	}
	if diagnostics[0].Code != document.DiagnosticUnknownTheme || diagnostics[0].Subject != "no-such-theme" {
		t.Errorf("unexpected diagnostic %+v", diagnostics[0])
	}
}

func TestRunsBothUnresolved(t *testing.T) {
	_, diagnostics := Runs(markup.Pango{}, "klingon", "no-such-theme", "text")
	if len(diagnostics) != 2 {
		t.Fatalf("expected both diagnostics, got %v", diagnostics)
	}
	if diagnostics[0].Code != document.DiagnosticUnknownLanguage {
		t.Errorf("language diagnostic should come first, got %v", diagnostics[0])
	}
	if diagnostics[1].Code != document.DiagnosticUnknownTheme {
		t.Errorf("expected theme diagnostic second, got %v", diagnostics[1])
	}
}

func TestRunsCaseInsensitiveLanguage(t *testing.T) {
	runs, diagnostics := Runs(markup.Pango{}, "Go", theme, "x := 1\n")
	if len(diagnostics) != 0 {
		t.Errorf("expected case-insensitive language match, got %v", diagnostics)
	}
	if len(runs) == 0 {
		t.Error("expected runs for capitalized language tag")
	}
}

func TestSplitAfterNewlines(t *testing.T) {
	cases := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a\n"}},
		{"a\nb", []string{"a\n", "b"}},
		{"a\n\nb\n", []string{"a\n", "\n", "b\n"}},
	}
	for _, c := range cases {
		got := splitAfterNewlines(c.input)
		if len(got) != len(c.want) {
			t.Errorf("split %q: got %q, want %q", c.input, got, c.want)
			continue
		}
		for index := range got {
			if got[index] != c.want[index] {
				t.Errorf("split %q: got %q, want %q", c.input, got, c.want)
				break
			}
		}
	}
}
