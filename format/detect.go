// Package format provides input format detection for the flatxml library.
package format

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// XML indicates an XML document.
	XML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case XML:
		return "XML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case XML:
		return ".xml"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xml":
		return XML
	default:
		return Unknown
	}
}

// utf8BOM is the byte order mark some editors prepend to XML files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFromMagic inspects leading content bytes to determine format.
// This is more reliable than extension-based detection: a document counts
// as XML when, after an optional UTF-8 BOM and leading whitespace, it
// begins with an XML declaration, a comment, or an element open bracket.
func DetectFromMagic(data []byte) Format {
	data = bytes.TrimPrefix(data, utf8BOM)
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return Unknown
	}
	if data[0] == '<' {
		return XML
	}
	return Unknown
}
