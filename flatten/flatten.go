package flatten

import (
	"fmt"
	"strings"

	"github.com/tsawler/flatxml/xmltree"
)

// Options controls path construction and engine limits.
type Options struct {
	// IncludeAttributes controls whether attribute paths/values appear in
	// rows. Defaults to true.
	IncludeAttributes bool

	// PathDelimiter separates path segments. Defaults to ".".
	PathDelimiter string

	// AttributePrefix marks attribute segments. Defaults to "@".
	AttributePrefix string

	// MaxDepth limits element nesting. Zero means unlimited; when positive,
	// flattening an element nested deeper than MaxDepth returns an error
	// instead of risking stack exhaustion on pathological documents.
	MaxDepth int
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		IncludeAttributes: true,
		PathDelimiter:     ".",
		AttributePrefix:   "@",
	}
}

// Flattener converts element trees into row groups according to its
// options. A Flattener is stateless and safe for concurrent use.
type Flattener struct {
	opts Options
}

// New returns a Flattener. Empty delimiter or prefix fall back to the
// defaults.
func New(opts Options) *Flattener {
	if opts.PathDelimiter == "" {
		opts.PathDelimiter = "."
	}
	if opts.AttributePrefix == "" {
		opts.AttributePrefix = "@"
	}
	return &Flattener{opts: opts}
}

// Options returns the flattener's effective options.
func (f *Flattener) Options() Options { return f.opts }

// StripNamespace removes a {uri} namespace qualifier from a tag or
// attribute name, returning the input unchanged when no qualifier is
// present.
func StripNamespace(tag string) string {
	if strings.HasPrefix(tag, "{") {
		if i := strings.Index(tag, "}"); i >= 0 {
			return tag[i+1:]
		}
	}
	return tag
}

// Flatten converts one element into its row group. parentPath is the
// dot-delimited path of the element's parent, or "" for a top-level
// element. The only possible error is the MaxDepth limit.
func (f *Flattener) Flatten(el *xmltree.Element, parentPath string) (RowGroup, error) {
	return f.flatten(el, parentPath, 1)
}

func (f *Flattener) flatten(el *xmltree.Element, parentPath string, depth int) (RowGroup, error) {
	if f.opts.MaxDepth > 0 && depth > f.opts.MaxDepth {
		return nil, fmt.Errorf("element %q exceeds nesting limit of %d", el.Tag, f.opts.MaxDepth)
	}

	currentPath := f.childPath(parentPath, StripNamespace(el.Tag))

	base := NewRow()
	if f.opts.IncludeAttributes {
		for _, a := range el.Attrs {
			base.Set(currentPath+f.opts.PathDelimiter+f.opts.AttributePrefix+a.Name, Coerce(a.Value))
		}
	}
	if strings.TrimSpace(el.Text) != "" {
		base.Set(currentPath, Coerce(el.Text))
	}

	if !el.HasChildren() {
		// A leaf with nothing at all still claims its column.
		if base.Len() == 0 {
			base.Set(currentPath, Null)
		}
		return RowGroup{base}, nil
	}

	// Group children by normalized tag, first-seen tag order, document
	// order within each group.
	var tagOrder []string
	groups := make(map[string][]*xmltree.Element)
	for _, child := range el.Children {
		tag := StripNamespace(child.Tag)
		if _, ok := groups[tag]; !ok {
			tagOrder = append(tagOrder, tag)
		}
		groups[tag] = append(groups[tag], child)
	}

	// Non-repeating groups first, then repeating groups; each repeating
	// group unions the rows of all its instances into one dimension.
	var rowGroups []RowGroup
	for _, tag := range tagOrder {
		instances := groups[tag]
		if len(instances) != 1 {
			continue
		}
		rows, err := f.flatten(instances[0], currentPath, depth+1)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			rowGroups = append(rowGroups, rows)
		}
	}
	for _, tag := range tagOrder {
		instances := groups[tag]
		if len(instances) < 2 {
			continue
		}
		var union RowGroup
		for _, child := range instances {
			rows, err := f.flatten(child, currentPath, depth+1)
			if err != nil {
				return nil, err
			}
			union = append(union, rows...)
		}
		if len(union) > 0 {
			rowGroups = append(rowGroups, union)
		}
	}

	if len(rowGroups) == 0 {
		return RowGroup{base}, nil
	}

	combined := Combine(rowGroups)
	result := make(RowGroup, 0, len(combined))
	for _, combo := range combined {
		row := base.Clone()
		row.Merge(combo)
		result = append(result, row)
	}
	if len(result) == 0 {
		return RowGroup{base}, nil
	}
	return result, nil
}

func (f *Flattener) childPath(parentPath, tag string) string {
	if parentPath == "" {
		return tag
	}
	return parentPath + f.opts.PathDelimiter + tag
}

// SelectRecords identifies the record elements of a document: the direct
// children of root sharing the most frequent normalized tag. Ties break in
// favor of the tag seen first in document order; this tie break is part of
// the output contract and must not change. A childless root yields an
// empty tag and no records.
func SelectRecords(root *xmltree.Element) (string, []*xmltree.Element) {
	var tagOrder []string
	counts := make(map[string]int)
	for _, child := range root.Children {
		tag := StripNamespace(child.Tag)
		if _, ok := counts[tag]; !ok {
			tagOrder = append(tagOrder, tag)
		}
		counts[tag]++
	}
	if len(tagOrder) == 0 {
		return "", nil
	}

	best := tagOrder[0]
	for _, tag := range tagOrder[1:] {
		if counts[tag] > counts[best] {
			best = tag
		}
	}

	var records []*xmltree.Element
	for _, child := range root.Children {
		if StripNamespace(child.Tag) == best {
			records = append(records, child)
		}
	}
	return best, records
}

// DocumentRows flattens a whole document. Each record element flattens
// independently with an empty parent path and the resulting rows are
// concatenated in document order; records never enter a Cartesian product
// with each other. When the root has no children the root itself is
// flattened instead, and the returned record tag is "".
func (f *Flattener) DocumentRows(root *xmltree.Element) (RowGroup, string, error) {
	recordTag, records := SelectRecords(root)
	if len(records) == 0 {
		rows, err := f.Flatten(root, "")
		if err != nil {
			return nil, "", err
		}
		return rows, "", nil
	}

	var all RowGroup
	for _, record := range records {
		rows, err := f.Flatten(record, "")
		if err != nil {
			return nil, "", err
		}
		all = append(all, rows...)
	}
	return all, recordTag, nil
}
