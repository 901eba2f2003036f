package export

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/tabextract/model"
)

// ToHTML renders the table as a single <table> element with one <tr> per
// row and one <td> per cell. An empty table renders an empty <table>.
func ToHTML(table *model.Table) ([]byte, error) {
	root := element(atom.Table)
	body := element(atom.Tbody)
	root.AppendChild(body)

	for _, row := range table.Rows {
		tr := element(atom.Tr)
		for _, cell := range row {
			td := element(atom.Td)
			if cell.Text != "" {
				td.AppendChild(&html.Node{Type: html.TextNode, Data: cell.Text})
			}
			tr.AppendChild(td)
		}
		body.AppendChild(tr)
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
