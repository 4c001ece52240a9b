// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/lazytanuki/mddoc/document"
	"github.com/lazytanuki/mddoc/markup"
)

func testConfig() Config {
	config := DefaultConfig()
	config.Logger = slog.New(slog.DiscardHandler)
	return config
}

// compileMarkdown compiles input with default settings (Pango sink)
// and fails the test on error.
func compileMarkdown(t *testing.T, input string) (*document.Document, []document.Diagnostic) {
	t.Helper()
	doc, diagnostics, err := Markdown(input, testConfig())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return doc, diagnostics
}

// paragraphMarkup returns the label markup of block index, which must
// be a paragraph.
func paragraphMarkup(t *testing.T, doc *document.Document, index int) string {
	t.Helper()
	if index >= len(doc.Blocks) {
		t.Fatalf("no block %d (have %d)", index, len(doc.Blocks))
	}
	paragraph, ok := doc.Blocks[index].(*document.Paragraph)
	if !ok {
		t.Fatalf("block %d is %s, want paragraph", index, doc.Blocks[index].Kind())
	}
	return paragraph.Label.Markup()
}

func TestScenarioHeadingAndBoldParagraph(t *testing.T) {
	doc, diagnostics := compileMarkdown(t, "# Title\n\nSome **bold** text.")
	if len(diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", diagnostics)
	}
	if len(doc.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Blocks))
	}

	heading, ok := doc.Blocks[0].(*document.Heading)
	if !ok {
		t.Fatalf("first block is %s, want heading", doc.Blocks[0].Kind())
	}
	if heading.Level != 1 || heading.Size != document.SizeXXLarge || heading.RuleHeight != 4 {
		t.Errorf("unexpected heading metadata: %+v", heading)
	}
	if got := heading.Label.Markup(); got != `<span font_size="xx-large">Title</span>` {
		t.Errorf("unexpected heading markup %q", got)
	}
	if !heading.Label.Rich() {
		t.Error("heading label should be sealed")
	}

	if got := paragraphMarkup(t, doc, 1); got != "Some <b>bold</b> text." {
		t.Errorf("unexpected paragraph markup %q", got)
	}
}

func TestHeadingSizeClasses(t *testing.T) {
	doc, _ := compileMarkdown(t, "# a\n\n## b\n\n### c\n\n#### d\n\n##### e\n\n###### f")
	want := []struct {
		size document.SizeClass
		rule int
	}{
		{document.SizeXXLarge, 4},
		{document.SizeXLarge, 3},
		{document.SizeLarge, 2},
		{document.SizeMedium, 1},
		{document.SizeMedium, 1},
		{document.SizeMedium, 1},
	}
	if len(doc.Blocks) != len(want) {
		t.Fatalf("expected %d headings, got %d", len(want), len(doc.Blocks))
	}
	for index, block := range doc.Blocks {
		heading := block.(*document.Heading)
		if heading.Size != want[index].size || heading.RuleHeight != want[index].rule {
			t.Errorf("heading %d: got (%s, %d), want (%s, %d)", index+1,
				heading.Size, heading.RuleHeight, want[index].size, want[index].rule)
		}
	}
}

func TestEscapingRoundTrip(t *testing.T) {
	doc, _ := compileMarkdown(t, "a < b & c > d")
	got := paragraphMarkup(t, doc, 0)
	if got != "a &lt; b &amp; c &gt; d" {
		t.Errorf("unexpected escaped markup %q", got)
	}

	unescaper := strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
	if round := unescaper.Replace(got); round != "a < b & c > d" {
		t.Errorf("round-trip mismatch: %q", round)
	}
}

func TestInlineNestingBalancedAndOrdered(t *testing.T) {
	doc, _ := compileMarkdown(t, "**outer *inner*** and ~~gone~~")
	got := paragraphMarkup(t, doc, 0)

	if !strings.Contains(got, "<b>outer <i>inner</i></b>") {
		t.Errorf("crossed or misnested tags in %q", got)
	}
	if !strings.Contains(got, "<s>gone</s>") {
		t.Errorf("missing strikethrough span in %q", got)
	}
	for _, tag := range []string{"b", "i", "s"} {
		opens := strings.Count(got, "<"+tag+">")
		closes := strings.Count(got, "</"+tag+">")
		if opens != closes {
			t.Errorf("unbalanced <%s>: %d opens, %d closes in %q", tag, opens, closes, got)
		}
	}
}

func TestHardLineBreak(t *testing.T) {
	doc, _ := compileMarkdown(t, "one  \ntwo")
	if got := paragraphMarkup(t, doc, 0); !strings.Contains(got, "one\ntwo") {
		t.Errorf("hard break not preserved in %q", got)
	}
}

func TestInlineCodeSpan(t *testing.T) {
	doc, _ := compileMarkdown(t, "Use `a<b` here.")
	got := paragraphMarkup(t, doc, 0)
	if !strings.Contains(got, " <span><tt>a&lt;b</tt></span> ") {
		t.Errorf("unexpected code span markup %q", got)
	}
}

func TestLinkTitleWinsOverChildren(t *testing.T) {
	doc, _ := compileMarkdown(t, `[visible](https://example.com "Site")`)
	got := paragraphMarkup(t, doc, 0)
	want := `<u><a href="https://example.com">Site</a></u>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLinkWithoutTitleUsesChildren(t *testing.T) {
	doc, _ := compileMarkdown(t, "[some *styled* text](https://example.com)")
	got := paragraphMarkup(t, doc, 0)
	want := `<u><a href="https://example.com">some <i>styled</i> text</a></u>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAutoLink(t *testing.T) {
	doc, _ := compileMarkdown(t, "<https://example.com>")
	got := paragraphMarkup(t, doc, 0)
	want := `<u><a href="https://example.com">https://example.com</a></u>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestListIndentByDepth(t *testing.T) {
	doc, _ := compileMarkdown(t, "- one\n- two\n  - nested\n- three\n")
	list, ok := doc.Blocks[0].(*document.List)
	if !ok {
		t.Fatalf("expected list, got %s", doc.Blocks[0].Kind())
	}
	if len(list.Children) != 3 {
		t.Fatalf("expected 3 items, got %d", len(list.Children))
	}

	for index, child := range list.Children {
		item := child.(*document.ListItem)
		if item.Indent != 0 {
			t.Errorf("top-level item %d indent = %d, want 0", index, item.Indent)
		}
	}

	// The nested list lives inside item two.
	second := list.Children[1].(*document.ListItem)
	var nested *document.List
	for _, child := range second.Children {
		if l, ok := child.(*document.List); ok {
			nested = l
		}
	}
	if nested == nil {
		t.Fatal("nested list not found under second item")
	}
	nestedItem := nested.Children[0].(*document.ListItem)
	if nestedItem.Indent != document.ListIndentUnit {
		t.Errorf("nested item indent = %d, want %d", nestedItem.Indent, document.ListIndentUnit)
	}

	// Sibling items after the nested list return to depth one.
	third := list.Children[2].(*document.ListItem)
	if third.Indent != 0 {
		t.Errorf("indent leaked into sibling: %d", third.Indent)
	}
}

func TestOrderedListMetadata(t *testing.T) {
	doc, _ := compileMarkdown(t, "3. three\n4. four\n")
	list := doc.Blocks[0].(*document.List)
	if !list.Ordered || list.Start != 3 {
		t.Errorf("unexpected list metadata: ordered=%v start=%d", list.Ordered, list.Start)
	}
}

func TestTaskListCheckbox(t *testing.T) {
	doc, _ := compileMarkdown(t, "- [x] done\n- [ ] todo\n")
	list := doc.Blocks[0].(*document.List)
	if len(list.Children) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Children))
	}

	first := list.Children[0].(*document.ListItem)
	if first.Checked == nil || !*first.Checked {
		t.Error("first item should be checked")
	}
	paragraph := first.Children[0].(*document.Paragraph)
	if got := paragraph.Label.Markup(); got != "done" {
		t.Errorf("unexpected item text %q", got)
	}

	second := list.Children[1].(*document.ListItem)
	if second.Checked == nil || *second.Checked {
		t.Error("second item should be unchecked")
	}
}

func TestPlainListItemHasNoCheckbox(t *testing.T) {
	doc, _ := compileMarkdown(t, "- plain\n")
	item := doc.Blocks[0].(*document.List).Children[0].(*document.ListItem)
	if item.Checked != nil {
		t.Errorf("plain item has checkbox state %v", *item.Checked)
	}
}

func TestTableCursorPlacement(t *testing.T) {
	doc, _ := compileMarkdown(t, "| a | b |\n|---|---|\n| c | d |\n| e | f |\n")
	table, ok := doc.Blocks[0].(*document.Table)
	if !ok {
		t.Fatalf("expected table, got %s", doc.Blocks[0].Kind())
	}
	if table.Rows != 3 || table.Columns != 2 {
		t.Fatalf("expected 3x2 grid, got %dx%d", table.Rows, table.Columns)
	}

	want := map[[2]int]string{
		{0, 0}: "a", {0, 1}: "b",
		{1, 0}: "c", {1, 1}: "d",
		{2, 0}: "e", {2, 1}: "f",
	}
	seen := map[[2]int]bool{}
	for _, cell := range table.Cells {
		position := [2]int{cell.Row, cell.Column}
		if seen[position] {
			t.Errorf("cell collision at %v", position)
		}
		seen[position] = true
		if got := cell.Label.Markup(); got != want[position] {
			t.Errorf("cell %v = %q, want %q", position, got, want[position])
		}
		if !cell.Label.Rich() {
			t.Errorf("cell %v label not sealed", position)
		}
	}
	if len(seen) != len(want) {
		t.Errorf("expected %d cells, got %d", len(want), len(seen))
	}
}

func TestBlockquote(t *testing.T) {
	doc, _ := compileMarkdown(t, "> quoted text")
	quote, ok := doc.Blocks[0].(*document.Blockquote)
	if !ok {
		t.Fatalf("expected blockquote, got %s", doc.Blocks[0].Kind())
	}
	paragraph := quote.Children[0].(*document.Paragraph)
	if got := paragraph.Label.Markup(); got != "quoted text" {
		t.Errorf("unexpected quote content %q", got)
	}
}

func TestThematicBreak(t *testing.T) {
	doc, _ := compileMarkdown(t, "above\n\n---\n\nbelow")
	if len(doc.Blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Blocks))
	}
	if _, ok := doc.Blocks[1].(*document.ThematicBreak); !ok {
		t.Errorf("middle block is %s, want thematic break", doc.Blocks[1].Kind())
	}
}

func TestCodeBlockHighlighted(t *testing.T) {
	doc, diagnostics := compileMarkdown(t, "```python\nprint('hi')\n```\n")
	if len(diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diagnostics)
	}
	code, ok := doc.Blocks[0].(*document.CodeBlock)
	if !ok {
		t.Fatalf("expected code block, got %s", doc.Blocks[0].Kind())
	}
	if code.Language != "python" {
		t.Errorf("unexpected language %q", code.Language)
	}
	if len(code.Runs) < 2 {
		t.Errorf("expected styled runs, got %d", len(code.Runs))
	}
	if !code.Label.Rich() {
		t.Error("highlighted code label should be sealed rich markup")
	}
}

func TestCodeBlockUnknownLanguageFallsBack(t *testing.T) {
	doc, diagnostics := compileMarkdown(t, "```zzz-nope\nprint('hi')\n```\n")
	code := doc.Blocks[0].(*document.CodeBlock)

	if code.Runs != nil {
		t.Errorf("expected zero runs, got %d", len(code.Runs))
	}
	if code.Label.Rich() {
		t.Error("fallback label must stay plain")
	}
	if got := code.Label.Markup(); got != "print('hi')\n" {
		t.Errorf("fallback label lost the code: %q", got)
	}
	if len(diagnostics) != 1 || diagnostics[0].Code != document.DiagnosticUnknownLanguage {
		t.Errorf("expected one unknown-language diagnostic, got %v", diagnostics)
	}
}

func TestCodeBlockUnknownTheme(t *testing.T) {
	config := testConfig()
	config.HighlightTheme = "no-such-theme"
	doc, diagnostics, err := Markdown("```go\nx := 1\n```\n", config)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	code := doc.Blocks[0].(*document.CodeBlock)
	if code.Runs != nil {
		t.Error("expected plain fallback for unknown theme")
	}
	if len(diagnostics) != 1 || diagnostics[0].Code != document.DiagnosticUnknownTheme {
		t.Errorf("expected one unknown-theme diagnostic, got %v", diagnostics)
	}
}

func TestImageFromPath(t *testing.T) {
	doc, _ := compileMarkdown(t, "look ![alt](pic.png) here")
	paragraph := doc.Blocks[0].(*document.Paragraph)
	if len(paragraph.Children) != 1 {
		t.Fatalf("expected 1 embedded block, got %d", len(paragraph.Children))
	}
	image, ok := paragraph.Children[0].(*document.Image)
	if !ok || image.Path != "pic.png" {
		t.Errorf("unexpected image node: %+v", paragraph.Children[0])
	}
}

func TestImageIgnored(t *testing.T) {
	config := testConfig()
	config.ImageMode = ImageIgnore
	doc, diagnostics, err := Markdown("![alt](pic.png)", config)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	paragraph := doc.Blocks[0].(*document.Paragraph)
	if len(paragraph.Children) != 0 {
		t.Errorf("ignored image still produced %d blocks", len(paragraph.Children))
	}
	if len(diagnostics) != 0 {
		t.Errorf("ignored image produced diagnostics: %v", diagnostics)
	}
}

func TestImageEmbedFailsLoudly(t *testing.T) {
	config := testConfig()
	config.ImageMode = ImageEmbed
	_, _, err := Markdown("![alt](pic.png)", config)
	if !errors.Is(err, ErrEmbeddedImages) {
		t.Errorf("expected ErrEmbeddedImages, got %v", err)
	}
}

func TestHTMLSkippedSilently(t *testing.T) {
	doc, diagnostics := compileMarkdown(t, "<div>block</div>\n\ntext with <span>inline</span> html")
	if len(diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", diagnostics)
	}
	// The HTML block vanishes; inline raw HTML vanishes from the text.
	if len(doc.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(doc.Blocks))
	}
	got := paragraphMarkup(t, doc, 0)
	if strings.Contains(got, "span") {
		t.Errorf("raw html leaked into markup: %q", got)
	}
	if !strings.Contains(got, "text with") || !strings.Contains(got, "inline") {
		t.Errorf("surrounding text lost: %q", got)
	}
}

func TestANSISinkProducesEscapeSequences(t *testing.T) {
	config := testConfig()
	config.Sink = markup.ANSI{}
	doc, _, err := Markdown("**bold**", config)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	paragraph := doc.Blocks[0].(*document.Paragraph)
	if got := paragraph.Label.Markup(); got != "\x1b[1mbold\x1b[22m" {
		t.Errorf("unexpected ANSI markup %q", got)
	}
}

func TestAllTopLevelLabelsSealed(t *testing.T) {
	doc, _ := compileMarkdown(t, "# h\n\npara\n\n- item\n")
	var walk func(nodes []document.Node)
	walk = func(nodes []document.Node) {
		for _, node := range nodes {
			switch n := node.(type) {
			case *document.Heading:
				if !n.Label.Rich() {
					t.Error("heading label not sealed")
				}
				walk(n.Children)
			case *document.Paragraph:
				if !n.Label.Rich() {
					t.Error("paragraph label not sealed")
				}
				walk(n.Children)
			case *document.List:
				walk(n.Children)
			case *document.ListItem:
				walk(n.Children)
			case *document.Blockquote:
				walk(n.Children)
			}
		}
	}
	walk(doc.Blocks)
}
