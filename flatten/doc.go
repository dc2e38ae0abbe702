// Package flatten turns parsed XML element trees into flat, path-keyed rows.
//
// Every element maps to a dot-delimited path built from its ancestors'
// namespace-stripped tags (book.author.name); attributes get a trailing
// @-prefixed segment (book.@id). Leaf text is coerced into a typed scalar
// [Value].
//
// # Row expansion
//
// Repetition drives row multiplication. Sibling elements sharing a tag are
// alternative values of one dimension and union into extra rows; distinct
// child tags are independent dimensions and combine as a Cartesian product.
// Three <tag> children therefore produce 3 rows, while 2 <author> and
// 2 <category> children produce 4.
//
// # Records
//
// A document's rows come from its record elements: the direct children of
// the root sharing the most frequent tag. Each record flattens
// independently and the results are concatenated; records never multiply
// with each other.
//
// All functions in this package are pure. The only error the engine can
// return is the optional nesting-depth limit; coercion and combination are
// total.
package flatten
