package xlsxout

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"testing"

	"github.com/tsawler/flatxml/flatten"
	"github.com/tsawler/flatxml/table"
)

func TestColumnName(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
	}

	for _, tt := range tests {
		if got := ColumnName(tt.col); got != tt.want {
			t.Errorf("ColumnName(%d) = %q, want %q", tt.col, got, tt.want)
		}
	}
}

func TestCellRef(t *testing.T) {
	if got := CellRef(0, 1); got != "A1" {
		t.Errorf("CellRef(0, 1) = %q, want A1", got)
	}
	if got := CellRef(27, 3); got != "AB3" {
		t.Errorf("CellRef(27, 3) = %q, want AB3", got)
	}
}

func buildTestTable() *table.Table {
	r1 := flatten.NewRow()
	r1.Set("name", flatten.Text("Alice"))
	r1.Set("age", flatten.Int(30))
	r1.Set("score", flatten.Float(9.5))
	r1.Set("active", flatten.Bool(true))
	r2 := flatten.NewRow()
	r2.Set("name", flatten.Text("Bob"))
	return table.New(flatten.RowGroup{r1, r2})
}

// readPart unmarshals one archive entry into dst.
func readPart(t *testing.T, zr *zip.Reader, name string, dst any) {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if err := xml.Unmarshal(data, dst); err != nil {
			t.Fatalf("unmarshalling %s: %v", name, err)
		}
		return
	}
	t.Fatalf("archive has no entry %s", name)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, buildTestTable()); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("output is not a ZIP archive: %v", err)
	}

	wantParts := []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"xl/workbook.xml",
		"xl/_rels/workbook.xml.rels",
		"xl/worksheets/sheet1.xml",
		"xl/sharedStrings.xml",
	}
	have := make(map[string]bool)
	for _, f := range zr.File {
		have[f.Name] = true
	}
	for _, part := range wantParts {
		if !have[part] {
			t.Errorf("archive missing part %s", part)
		}
	}

	// worksheet structure
	var sheet struct {
		Dimension struct {
			Ref string `xml:"ref,attr"`
		} `xml:"dimension"`
		SheetData struct {
			Rows []struct {
				R     int `xml:"r,attr"`
				Cells []struct {
					R string `xml:"r,attr"`
					T string `xml:"t,attr"`
					V string `xml:"v"`
				} `xml:"c"`
			} `xml:"row"`
		} `xml:"sheetData"`
	}
	readPart(t, zr, "xl/worksheets/sheet1.xml", &sheet)

	if sheet.Dimension.Ref != "A1:D3" {
		t.Errorf("dimension = %q, want A1:D3", sheet.Dimension.Ref)
	}
	if len(sheet.SheetData.Rows) != 3 {
		t.Fatalf("got %d rows, want 3 (header + 2 data)", len(sheet.SheetData.Rows))
	}

	header := sheet.SheetData.Rows[0]
	if len(header.Cells) != 4 {
		t.Errorf("header has %d cells, want 4", len(header.Cells))
	}
	for _, c := range header.Cells {
		if c.T != "s" {
			t.Errorf("header cell %s type = %q, want shared string", c.R, c.T)
		}
	}

	// first data row: text, int, float, bool
	data := sheet.SheetData.Rows[1]
	if len(data.Cells) != 4 {
		t.Fatalf("row 2 has %d cells, want 4", len(data.Cells))
	}
	if data.Cells[1].T != "" || data.Cells[1].V != "30" {
		t.Errorf("int cell = %+v", data.Cells[1])
	}
	if data.Cells[2].T != "" || data.Cells[2].V != "9.5" {
		t.Errorf("float cell = %+v", data.Cells[2])
	}
	if data.Cells[3].T != "b" || data.Cells[3].V != "1" {
		t.Errorf("bool cell = %+v", data.Cells[3])
	}

	// second data row: Null cells are omitted entirely
	if len(sheet.SheetData.Rows[2].Cells) != 1 {
		t.Errorf("row 3 has %d cells, want 1 (Null cells omitted)", len(sheet.SheetData.Rows[2].Cells))
	}

	// shared strings: header names plus cell text, de-duplicated
	var sst struct {
		Unique int `xml:"uniqueCount,attr"`
		SI     []struct {
			T string `xml:"t"`
		} `xml:"si"`
	}
	readPart(t, zr, "xl/sharedStrings.xml", &sst)
	if sst.Unique != len(sst.SI) {
		t.Errorf("uniqueCount = %d, but %d strings", sst.Unique, len(sst.SI))
	}
	found := false
	for _, si := range sst.SI {
		if si.T == "Alice" {
			found = true
		}
	}
	if !found {
		t.Error("shared strings missing cell text \"Alice\"")
	}
}

func TestWriteEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, table.New(nil)); err != nil {
		t.Fatalf("Write() error on empty table: %v", err)
	}
	if _, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len())); err != nil {
		t.Fatalf("empty workbook is not a valid archive: %v", err)
	}
}

func TestWriteWithOptionsSheetName(t *testing.T) {
	var buf bytes.Buffer
	err := WriteWithOptions(&buf, buildTestTable(), Options{SheetName: "Records"})
	if err != nil {
		t.Fatalf("WriteWithOptions() error: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader() error: %v", err)
	}

	var wb struct {
		Sheets struct {
			Sheet []struct {
				Name string `xml:"name,attr"`
			} `xml:"sheet"`
		} `xml:"sheets"`
	}
	readPart(t, zr, "xl/workbook.xml", &wb)
	if len(wb.Sheets.Sheet) != 1 || wb.Sheets.Sheet[0].Name != "Records" {
		t.Errorf("sheets = %+v, want single sheet named Records", wb.Sheets.Sheet)
	}
}
