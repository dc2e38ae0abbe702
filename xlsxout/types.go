// Package xlsxout writes a table as an XLSX (Office Open XML Spreadsheet)
// workbook with a single worksheet.
//
// The workbook is assembled part by part — content types, package
// relationships, workbook, worksheet, shared strings — into a ZIP archive.
// Cells keep their scalar types: booleans become boolean cells, integers
// and floats become number cells, text goes through the shared-string
// table, and Null cells are omitted so spreadsheet applications show them
// blank.
package xlsxout

import "encoding/xml"

// XML namespaces used in XLSX packages.
const (
	nsSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// contentTypesXML represents the [Content_Types].xml part.
type contentTypesXML struct {
	XMLName   xml.Name          `xml:"Types"`
	Xmlns     string            `xml:"xmlns,attr"`
	Defaults  []defaultTypeXML  `xml:"Default"`
	Overrides []overrideTypeXML `xml:"Override"`
}

type defaultTypeXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideTypeXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relationshipsXML represents .rels parts.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Xmlns        string            `xml:"xmlns,attr"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// workbookXML represents the xl/workbook.xml part.
type workbookXML struct {
	XMLName xml.Name  `xml:"workbook"`
	Xmlns   string    `xml:"xmlns,attr"`
	XmlnsR  string    `xml:"xmlns:r,attr"`
	Sheets  sheetsXML `xml:"sheets"`
}

type sheetsXML struct {
	Sheet []sheetRefXML `xml:"sheet"`
}

type sheetRefXML struct {
	Name    string `xml:"name,attr"`
	SheetID int    `xml:"sheetId,attr"`
	RID     string `xml:"r:id,attr"`
}

// worksheetXML represents the xl/worksheets/sheet1.xml part.
type worksheetXML struct {
	XMLName   xml.Name     `xml:"worksheet"`
	Xmlns     string       `xml:"xmlns,attr"`
	Dimension dimensionXML `xml:"dimension"`
	SheetData sheetDataXML `xml:"sheetData"`
}

type dimensionXML struct {
	Ref string `xml:"ref,attr"`
}

type sheetDataXML struct {
	Rows []rowXML `xml:"row"`
}

type rowXML struct {
	R     int       `xml:"r,attr"` // row number (1-indexed)
	Cells []cellXML `xml:"c"`
}

type cellXML struct {
	R string `xml:"r,attr"`           // cell reference (e.g., "A1")
	T string `xml:"t,attr,omitempty"` // s=shared string, b=bool; empty=number
	V string `xml:"v"`                // value
}

// sharedStringsXML represents the xl/sharedStrings.xml part.
type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	Xmlns   string   `xml:"xmlns,attr"`
	Count   int      `xml:"count,attr"`
	Unique  int      `xml:"uniqueCount,attr"`
	SI      []siXML  `xml:"si"`
}

type siXML struct {
	T stringItemXML `xml:"t"`
}

type stringItemXML struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}
