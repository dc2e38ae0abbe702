package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Attr is a single attribute in document order.
type Attr struct {
	Name  string // possibly namespace-qualified as {uri}local
	Value string // raw attribute value, unmodified
}

// Element is one node of the parsed tree. Attrs and Children preserve
// document order. Text holds the character data that appears before the
// first child element (or all character data for a leaf); trailing text
// between and after children is discarded, matching the behavior of
// element-tree style parsers.
type Element struct {
	Tag      string // possibly namespace-qualified as {uri}local
	Attrs    []Attr
	Text     string
	Children []*Element
}

// HasChildren reports whether the element has any child elements.
func (e *Element) HasChildren() bool {
	return len(e.Children) > 0
}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Parse reads an XML document from r and returns its root element.
// Comments, processing instructions, and directives are skipped.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var root *Element
	var stack []*Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Tag: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				if isNamespaceDecl(a.Name) {
					continue
				}
				el.Attrs = append(el.Attrs, Attr{Name: qualifiedName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			if len(cur.Children) == 0 {
				cur.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

// ParseBytes parses an XML document held in memory.
func ParseBytes(data []byte) (*Element, error) {
	return Parse(bytes.NewReader(data))
}

// ParseFile opens and parses the XML document at path.
func ParseFile(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening XML file: %w", err)
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return root, nil
}

// qualifiedName renders an xml.Name in element-tree form: {space}local when
// a namespace URI is present, the bare local name otherwise.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

// isNamespaceDecl reports whether the attribute is an xmlns declaration
// rather than document data.
func isNamespaceDecl(n xml.Name) bool {
	return n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns")
}

// charsetReader decodes non-UTF-8 documents using the encoding named in the
// XML declaration.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, fmt.Errorf("unsupported document encoding %q: %w", charset, err)
	}
	return transform.NewReader(input, enc.NewDecoder()), nil
}
