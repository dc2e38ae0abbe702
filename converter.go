package flatxml

import (
	"fmt"
	"io"
	"os"

	"github.com/tsawler/flatxml/flatten"
	"github.com/tsawler/flatxml/format"
	"github.com/tsawler/flatxml/htmlout"
	"github.com/tsawler/flatxml/table"
	"github.com/tsawler/flatxml/xlsxout"
	"github.com/tsawler/flatxml/xmltree"
)

// Converter provides a fluent interface for converting an XML document
// into a table. Each configuration method returns a new Converter
// instance, making chains safe to share and reuse.
type Converter struct {
	// Source (exactly one is set)
	filename string
	source   io.Reader
	data     []byte
	root     *xmltree.Element

	// Configuration
	options ConvertOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Converter with copied options. This keeps
// each chain step immutable, like the rest of the fluent API.
func (c *Converter) clone() *Converter {
	return &Converter{
		filename: c.filename,
		source:   c.source,
		data:     c.data,
		root:     c.root,
		options:  c.options.clone(),
		err:      c.err,
	}
}

// IncludeAttributes controls whether XML attributes become columns.
// Defaults to true.
func (c *Converter) IncludeAttributes(include bool) *Converter {
	n := c.clone()
	n.options.includeAttributes = include
	return n
}

// PathDelimiter sets the separator between path segments. Defaults to ".".
func (c *Converter) PathDelimiter(delim string) *Converter {
	n := c.clone()
	if delim == "" {
		n.err = fmt.Errorf("path delimiter must not be empty")
		return n
	}
	n.options.pathDelimiter = delim
	return n
}

// AttributePrefix sets the marker prepended to attribute segment names.
// Defaults to "@".
func (c *Converter) AttributePrefix(prefix string) *Converter {
	n := c.clone()
	if prefix == "" {
		n.err = fmt.Errorf("attribute prefix must not be empty")
		return n
	}
	n.options.attributePrefix = prefix
	return n
}

// MaxDepth limits element nesting; conversion fails when the document
// nests deeper. Zero (the default) means unlimited.
func (c *Converter) MaxDepth(depth int) *Converter {
	n := c.clone()
	n.options.maxDepth = depth
	return n
}

// SheetName sets the worksheet name used by XLSX output. Defaults to
// "Sheet1".
func (c *Converter) SheetName(name string) *Converter {
	n := c.clone()
	n.options.sheetName = name
	return n
}

// parse materializes the element tree from whichever source was given.
func (c *Converter) parse() (*xmltree.Element, error) {
	switch {
	case c.root != nil:
		return c.root, nil
	case c.data != nil:
		if format.DetectFromMagic(c.data) != format.XML {
			return nil, fmt.Errorf("input does not look like XML")
		}
		return xmltree.ParseBytes(c.data)
	case c.source != nil:
		return xmltree.Parse(c.source)
	case c.filename != "":
		data, err := os.ReadFile(c.filename)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", c.filename, err)
		}
		if format.DetectFromMagic(data) != format.XML {
			return nil, fmt.Errorf("%s does not look like XML", c.filename)
		}
		root, err := xmltree.ParseBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", c.filename, err)
		}
		return root, nil
	default:
		return nil, fmt.Errorf("no input specified")
	}
}

// Rows runs the flattening engine and returns the raw, pre-normalization
// rows along with any warnings. Most callers want Table instead.
func (c *Converter) Rows() (flatten.RowGroup, []Warning, error) {
	if c.err != nil {
		return nil, nil, c.err
	}

	root, err := c.parse()
	if err != nil {
		return nil, nil, err
	}

	f := flatten.New(c.options.flattenOptions())
	rows, recordTag, err := f.DocumentRows(root)
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	if recordTag == "" {
		warnings = append(warnings, Warning{
			Code:    WarnNoRecords,
			Message: "document has no repeated record structure; flattened the root element itself",
		})
	}
	if len(rows) == 0 {
		warnings = append(warnings, Warning{
			Code:    WarnEmptyResult,
			Message: "conversion produced no rows",
		})
	}
	return rows, warnings, nil
}

// Table converts the document and returns the rectangular result:
// first-seen-ordered columns and rows made total over them.
func (c *Converter) Table() (*table.Table, []Warning, error) {
	rows, warnings, err := c.Rows()
	if err != nil {
		return nil, warnings, err
	}
	return table.New(rows), warnings, nil
}

// Columns converts the document and returns just the ordered column names.
func (c *Converter) Columns() ([]string, []Warning, error) {
	tbl, warnings, err := c.Table()
	if err != nil {
		return nil, warnings, err
	}
	return tbl.Columns, warnings, nil
}

// ToMarkdown converts the document and renders the table as markdown.
func (c *Converter) ToMarkdown() (string, []Warning, error) {
	tbl, warnings, err := c.Table()
	if err != nil {
		return "", warnings, err
	}
	return tbl.ToMarkdown(), warnings, nil
}

// WriteCSV converts the document and writes the table as CSV to w.
func (c *Converter) WriteCSV(w io.Writer) ([]Warning, error) {
	tbl, warnings, err := c.Table()
	if err != nil {
		return warnings, err
	}
	return warnings, tbl.WriteCSV(w)
}

// WriteCSVFile converts the document and writes the table as CSV to the
// file at path.
func (c *Converter) WriteCSVFile(path string) ([]Warning, error) {
	tbl, warnings, err := c.Table()
	if err != nil {
		return warnings, err
	}
	return warnings, tbl.WriteCSVFile(path)
}

// WriteXLSX converts the document and writes the table as an XLSX
// workbook to w.
func (c *Converter) WriteXLSX(w io.Writer) ([]Warning, error) {
	tbl, warnings, err := c.Table()
	if err != nil {
		return warnings, err
	}
	return warnings, xlsxout.WriteWithOptions(w, tbl, xlsxout.Options{SheetName: c.options.sheetName})
}

// WriteXLSXFile converts the document and writes the table as an XLSX
// workbook to the file at path.
func (c *Converter) WriteXLSXFile(path string) ([]Warning, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating XLSX file: %w", err)
	}
	warnings, err := c.WriteXLSX(f)
	if err != nil {
		f.Close()
		return warnings, err
	}
	return warnings, f.Close()
}

// WriteHTML converts the document and writes the table as an HTML
// fragment to w.
func (c *Converter) WriteHTML(w io.Writer) ([]Warning, error) {
	tbl, warnings, err := c.Table()
	if err != nil {
		return warnings, err
	}
	return warnings, htmlout.Render(w, tbl)
}
