package flatxml

import "github.com/tsawler/flatxml/flatten"

// ConvertOptions holds configuration for a conversion.
type ConvertOptions struct {
	// Path construction
	includeAttributes bool
	pathDelimiter     string
	attributePrefix   string

	// Engine limits
	maxDepth int

	// Output
	sheetName string
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		includeAttributes: true,
		pathDelimiter:     ".",
		attributePrefix:   "@",
		maxDepth:          0, // unlimited
		sheetName:         "Sheet1",
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		includeAttributes: o.includeAttributes,
		pathDelimiter:     o.pathDelimiter,
		attributePrefix:   o.attributePrefix,
		maxDepth:          o.maxDepth,
		sheetName:         o.sheetName,
	}
}

// flattenOptions translates the converter's options for the engine.
func (o ConvertOptions) flattenOptions() flatten.Options {
	return flatten.Options{
		IncludeAttributes: o.includeAttributes,
		PathDelimiter:     o.pathDelimiter,
		AttributePrefix:   o.attributePrefix,
		MaxDepth:          o.maxDepth,
	}
}
