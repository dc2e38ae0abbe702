// Package htmlout renders a table as an HTML fragment.
//
// The fragment is built as an [html.Node] tree and serialized with
// [html.Render], so cell text is escaped by the serializer rather than by
// hand. It is the preview format served by the upload server and an output
// format of the CLI.
package htmlout

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/flatxml/table"
)

// Render writes t as an HTML <table> fragment: a <thead> row of column
// names and one <tbody> row per data row. Null cells render as empty <td>
// elements.
func Render(w io.Writer, t *table.Table) error {
	root := element(atom.Table)

	thead := element(atom.Thead)
	headRow := element(atom.Tr)
	for _, col := range t.Columns {
		th := element(atom.Th)
		th.AppendChild(textNode(col))
		headRow.AppendChild(th)
	}
	thead.AppendChild(headRow)
	root.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range t.Rows {
		tr := element(atom.Tr)
		for _, col := range t.Columns {
			td := element(atom.Td)
			v, _ := row.Get(col)
			if !v.IsNull() {
				td.AppendChild(textNode(v.String()))
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	root.AppendChild(tbody)

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("rendering HTML table: %w", err)
	}
	return nil
}

// RenderPreview renders at most maxRows rows and maxCols columns of t.
// Zero or negative limits mean no limit on that axis.
func RenderPreview(w io.Writer, t *table.Table, maxRows, maxCols int) error {
	return Render(w, t.Truncate(maxRows, maxCols))
}

func element(a atom.Atom) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
}

func textNode(s string) *html.Node {
	return &html.Node{
		Type: html.TextNode,
		Data: s,
	}
}
