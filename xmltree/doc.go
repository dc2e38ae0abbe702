// Package xmltree provides an ordered element-tree representation of XML
// documents.
//
// The flattening engine needs three ordering guarantees that struct-tag
// unmarshalling does not provide: attribute order, child order across
// differing tags, and text position relative to the first child. This
// package drives [encoding/xml]'s token stream directly and preserves all
// three.
//
// # Usage
//
//	root, err := xmltree.ParseFile("catalog.xml")
//	if err != nil {
//	    // handle error
//	}
//	for _, child := range root.Children {
//	    fmt.Println(child.Tag)
//	}
//
// Tags and attribute names are kept in their namespace-qualified form
// ("{uri}local") when the source document declares a namespace; stripping
// the qualifier is the flattener's job, not the parser's.
//
// Documents in encodings other than UTF-8 are decoded transparently using
// the encoding named in the XML declaration.
package xmltree
