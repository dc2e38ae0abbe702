package xlsxout

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tsawler/flatxml/flatten"
	"github.com/tsawler/flatxml/table"
)

// Options configures workbook output.
type Options struct {
	// SheetName is the worksheet name. Defaults to "Sheet1".
	SheetName string
}

// Write writes t as a single-sheet XLSX workbook with default options. The
// first worksheet row holds the column names; data rows follow in order.
func Write(w io.Writer, t *table.Table) error {
	return WriteWithOptions(w, t, Options{})
}

// WriteWithOptions writes t as a single-sheet XLSX workbook.
func WriteWithOptions(w io.Writer, t *table.Table, opts Options) error {
	if opts.SheetName == "" {
		opts.SheetName = "Sheet1"
	}

	shared := newSharedStrings()
	sheet := buildWorksheet(t, shared)

	zw := zip.NewWriter(w)
	parts := []struct {
		name string
		doc  any
	}{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{"xl/workbook.xml", workbook(opts.SheetName)},
		{"xl/_rels/workbook.xml.rels", workbookRels()},
		{"xl/worksheets/sheet1.xml", sheet},
		{"xl/sharedStrings.xml", shared.part()},
	}
	for _, part := range parts {
		if err := writePart(zw, part.name, part.doc); err != nil {
			zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing XLSX archive: %w", err)
	}
	return nil
}

// WriteFile writes t as an XLSX workbook to the file at path.
func WriteFile(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating XLSX file: %w", err)
	}
	if err := Write(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writePart(zw *zip.Writer, name string, doc any) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating archive entry %s: %w", name, err)
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	return nil
}

func contentTypes() contentTypesXML {
	return contentTypesXML{
		Xmlns: nsContentTypes,
		Defaults: []defaultTypeXML{
			{Extension: "rels", ContentType: "application/vnd.openxmlformats-package.relationships+xml"},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []overrideTypeXML{
			{PartName: "/xl/workbook.xml", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"},
			{PartName: "/xl/worksheets/sheet1.xml", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"},
			{PartName: "/xl/sharedStrings.xml", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"},
		},
	}
}

func packageRels() relationshipsXML {
	return relationshipsXML{
		Xmlns: nsPackageRels,
		Relationship: []relationshipXML{
			{ID: "rId1", Type: nsRelationships + "/officeDocument", Target: "xl/workbook.xml"},
		},
	}
}

func workbook(sheetName string) workbookXML {
	return workbookXML{
		Xmlns:  nsSpreadsheetML,
		XmlnsR: nsRelationships,
		Sheets: sheetsXML{
			Sheet: []sheetRefXML{
				{Name: sheetName, SheetID: 1, RID: "rId1"},
			},
		},
	}
}

func workbookRels() relationshipsXML {
	return relationshipsXML{
		Xmlns: nsPackageRels,
		Relationship: []relationshipXML{
			{ID: "rId1", Type: nsRelationships + "/worksheet", Target: "worksheets/sheet1.xml"},
			{ID: "rId2", Type: nsRelationships + "/sharedStrings", Target: "sharedStrings.xml"},
		},
	}
}

func buildWorksheet(t *table.Table, shared *sharedStrings) worksheetXML {
	var rows []rowXML

	header := rowXML{R: 1}
	for col, name := range t.Columns {
		header.Cells = append(header.Cells, cellXML{
			R: CellRef(col, 1),
			T: "s",
			V: strconv.Itoa(shared.index(name)),
		})
	}
	if len(header.Cells) > 0 {
		rows = append(rows, header)
	}

	for i, row := range t.Rows {
		rowNum := i + 2
		wr := rowXML{R: rowNum}
		for col, name := range t.Columns {
			v, _ := row.Get(name)
			cell, ok := buildCell(v, shared, CellRef(col, rowNum))
			if ok {
				wr.Cells = append(wr.Cells, cell)
			}
		}
		rows = append(rows, wr)
	}

	dim := "A1"
	if len(t.Columns) > 0 {
		dim = "A1:" + CellRef(len(t.Columns)-1, len(t.Rows)+1)
	}

	return worksheetXML{
		Xmlns:     nsSpreadsheetML,
		Dimension: dimensionXML{Ref: dim},
		SheetData: sheetDataXML{Rows: rows},
	}
}

// buildCell converts one scalar into a worksheet cell. Null values produce
// no cell at all, which spreadsheet applications display as blank.
func buildCell(v flatten.Value, shared *sharedStrings, ref string) (cellXML, bool) {
	switch v.Kind() {
	case flatten.KindNull:
		return cellXML{}, false
	case flatten.KindBool:
		val := "0"
		if v.Bool() {
			val = "1"
		}
		return cellXML{R: ref, T: "b", V: val}, true
	case flatten.KindInt:
		return cellXML{R: ref, V: strconv.FormatInt(v.Int(), 10)}, true
	case flatten.KindFloat:
		return cellXML{R: ref, V: strconv.FormatFloat(v.Float(), 'g', -1, 64)}, true
	case flatten.KindText:
		return cellXML{R: ref, T: "s", V: strconv.Itoa(shared.index(v.Text()))}, true
	default:
		return cellXML{}, false
	}
}

// sharedStrings accumulates the de-duplicated shared string table while
// cells are built.
type sharedStrings struct {
	strings []string
	lookup  map[string]int
	count   int // total references, including duplicates
}

func newSharedStrings() *sharedStrings {
	return &sharedStrings{lookup: make(map[string]int)}
}

func (s *sharedStrings) index(str string) int {
	s.count++
	if i, ok := s.lookup[str]; ok {
		return i
	}
	i := len(s.strings)
	s.strings = append(s.strings, str)
	s.lookup[str] = i
	return i
}

func (s *sharedStrings) part() sharedStringsXML {
	part := sharedStringsXML{
		Xmlns:  nsSpreadsheetML,
		Count:  s.count,
		Unique: len(s.strings),
	}
	for _, str := range s.strings {
		item := stringItemXML{Value: str}
		if strings.TrimSpace(str) != str {
			item.Space = "preserve"
		}
		part.SI = append(part.SI, siXML{T: item})
	}
	return part
}

// CellRef returns the A1-style reference for a 0-indexed column and a
// 1-indexed row, e.g. CellRef(0, 1) == "A1" and CellRef(27, 3) == "AB3".
func CellRef(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

// ColumnName converts a 0-indexed column number to its letter form:
// 0 -> A, 25 -> Z, 26 -> AA.
func ColumnName(col int) string {
	name := make([]byte, 0, 3)
	for col >= 0 {
		name = append(name, byte('A'+col%26))
		col = col/26 - 1
	}
	// digits were produced least significant first
	for i, j := 0, len(name)-1; i < j; i, j = i+1, j-1 {
		name[i], name[j] = name[j], name[i]
	}
	return string(name)
}
