package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/tabextract/model"
)

// Serialize renders the table in the given format. An empty table renders
// as zero bytes for the delimited formats and as [] for JSON.
func Serialize(table *model.Table, f Format) ([]byte, error) {
	switch f {
	case JSON:
		return ToJSON(table)
	case CSV:
		return ToCSV(table)
	case TSV:
		return ToTSV(table)
	case Markdown:
		return []byte(ToMarkdown(table)), nil
	case HTML:
		return ToHTML(table)
	case XLSX:
		return ToXLSX(table)
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
}

// Write serializes the table to w.
func Write(w io.Writer, table *model.Table, f Format) error {
	data, err := Serialize(table, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ToCSV renders one line per row with fields quoted per RFC 4180. There is
// no newline after the last row.
func ToCSV(table *model.Table) ([]byte, error) {
	return delimited(table, ',')
}

// ToTSV renders one line per row with tab-separated fields. Fields holding a
// tab, quote or newline are quoted the same way as CSV.
func ToTSV(table *model.Table) ([]byte, error) {
	return delimited(table, '\t')
}

func delimited(table *model.Table, comma rune) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = comma

	for _, row := range table.Texts() {
		// A lone empty field would be a blank line, which readers skip.
		if len(row) == 1 && row[0] == "" {
			w.Flush()
			buf.WriteString("\"\"\n")
			continue
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write %s: %w", delimiterName(comma), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write %s: %w", delimiterName(comma), err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func delimiterName(comma rune) string {
	if comma == '\t' {
		return "tsv"
	}
	return "csv"
}

// ToJSON renders the cell text grid as an array of arrays of strings.
func ToJSON(table *model.Table) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(table.Texts()); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ToMarkdown renders a pipe table using the first row as the header.
func ToMarkdown(table *model.Table) string {
	if table.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []model.Cell) {
		for _, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(markdownEscaper.Replace(cell.Text))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(table.Rows[0])
	for range table.Rows[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range table.Rows[1:] {
		writeRow(row)
	}

	return sb.String()
}

var markdownEscaper = strings.NewReplacer("|", "\\|", "\n", " ")
