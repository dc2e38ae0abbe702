// Package flatxml provides a fluent API for converting arbitrary XML
// documents into flat, rectangular tables.
//
// Nested elements become dot-delimited columns (book.author.name),
// attributes become @-prefixed columns (book.@id), repeated elements
// expand into extra rows, and leaf text is coerced into typed scalars.
// The resulting table can be written as XLSX, CSV, markdown, or HTML.
//
// Basic usage:
//
//	tbl, warnings, err := flatxml.Open("catalog.xml").Table()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", flatxml.FormatWarnings(warnings))
//	}
//
// With options:
//
//	warnings, err := flatxml.Open("catalog.xml").
//	    IncludeAttributes(false).
//	    PathDelimiter("/").
//	    WriteXLSXFile("catalog.xlsx")
//
// For advanced use cases, the lower-level flatten and xmltree packages are
// also available.
package flatxml

import (
	"io"

	"github.com/tsawler/flatxml/xmltree"
)

// Open prepares a conversion of the XML file at path and returns a
// Converter for fluent configuration. The file is opened lazily, when a
// terminal method runs.
//
// Example:
//
//	tbl, warnings, err := flatxml.Open("catalog.xml").Table()
func Open(path string) *Converter {
	return &Converter{
		filename: path,
		options:  defaultOptions(),
	}
}

// FromReader prepares a conversion of an XML document read from r. The
// reader is consumed by the first terminal method.
func FromReader(r io.Reader) *Converter {
	return &Converter{
		source:  r,
		options: defaultOptions(),
	}
}

// FromBytes prepares a conversion of an XML document held in memory.
func FromBytes(data []byte) *Converter {
	return &Converter{
		data:    data,
		options: defaultOptions(),
	}
}

// FromElement prepares a conversion of an already-parsed element tree.
// This is useful when the caller drives xmltree directly.
func FromElement(root *xmltree.Element) *Converter {
	return &Converter{
		root:    root,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTable is a helper that wraps a terminal method returning
// (T, []Warning, error) and panics if the error is non-nil, discarding
// warnings.
//
// Example:
//
//	tbl := flatxml.MustTable(flatxml.Open("catalog.xml").Table())
func MustTable[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
