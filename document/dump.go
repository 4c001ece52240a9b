// Copyright 2026 The Mddoc Authors
// SPDX-License-Identifier: Apache-2.0

package document

// Dump converts a document tree into plain maps and slices suitable
// for YAML or JSON encoding. Intended for debugging and golden tests;
// the layout mirrors the node structs field for field.
func Dump(doc *Document) []map[string]any {
	return dumpNodes(doc.Blocks)
}

func dumpNodes(nodes []Node) []map[string]any {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]map[string]any, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, dumpNode(node))
	}
	return out
}

func dumpNode(node Node) map[string]any {
	entry := map[string]any{"kind": node.Kind().String()}
	switch n := node.(type) {
	case *Heading:
		entry["level"] = n.Level
		entry["size"] = string(n.Size)
		entry["rule_height"] = n.RuleHeight
		dumpLabel(entry, n.Label)
		dumpChildren(entry, n.Children)
	case *Paragraph:
		dumpLabel(entry, n.Label)
		dumpChildren(entry, n.Children)
	case *Blockquote:
		dumpChildren(entry, n.Children)
	case *List:
		if n.Ordered {
			entry["ordered"] = true
			entry["start"] = n.Start
		}
		dumpChildren(entry, n.Children)
	case *ListItem:
		entry["indent"] = n.Indent
		if n.Checked != nil {
			entry["checked"] = *n.Checked
		}
		dumpChildren(entry, n.Children)
	case *CodeBlock:
		entry["language"] = n.Language
		entry["runs"] = len(n.Runs)
		dumpLabel(entry, n.Label)
	case *Table:
		entry["rows"] = n.Rows
		entry["columns"] = n.Columns
		cells := make([]map[string]any, 0, len(n.Cells))
		for _, cell := range n.Cells {
			cellEntry := map[string]any{
				"row":    cell.Row,
				"column": cell.Column,
			}
			dumpLabel(cellEntry, cell.Label)
			dumpChildren(cellEntry, cell.Children)
			cells = append(cells, cellEntry)
		}
		entry["cells"] = cells
	case *Image:
		entry["path"] = n.Path
	case *ThematicBreak:
		// Kind alone says everything.
	}
	return entry
}

func dumpLabel(entry map[string]any, label *Label) {
	if label == nil {
		return
	}
	entry["markup"] = label.Markup()
	entry["rich"] = label.Rich()
}

func dumpChildren(entry map[string]any, children []Node) {
	if dumped := dumpNodes(children); dumped != nil {
		entry["children"] = dumped
	}
}
