package flatten

// Row is an insertion-ordered mapping from path to Value. Iteration order
// over Paths equals first-insertion order, which later drives first-seen
// column ordering; plain maps cannot provide that guarantee.
type Row struct {
	paths  []string
	values map[string]Value
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{values: make(map[string]Value)}
}

// Set inserts or overwrites the value at path. Overwriting keeps the path's
// original position.
func (r *Row) Set(path string, v Value) {
	if _, ok := r.values[path]; !ok {
		r.paths = append(r.paths, path)
	}
	r.values[path] = v
}

// Get returns the value at path and whether the path is present.
func (r *Row) Get(path string) (Value, bool) {
	v, ok := r.values[path]
	return v, ok
}

// Len returns the number of paths in the row.
func (r *Row) Len() int { return len(r.paths) }

// Paths returns the row's paths in insertion order. The returned slice is
// shared; callers must not modify it.
func (r *Row) Paths() []string { return r.paths }

// Clone returns an independent copy of the row.
func (r *Row) Clone() *Row {
	c := &Row{
		paths:  append([]string(nil), r.paths...),
		values: make(map[string]Value, len(r.values)),
	}
	for k, v := range r.values {
		c.values[k] = v
	}
	return c
}

// Merge applies other's entries on top of r, inserting new paths in other's
// order and overwriting values on path collision.
func (r *Row) Merge(other *Row) {
	for _, p := range other.paths {
		r.Set(p, other.values[p])
	}
}

// RowGroup is an ordered list of rows: all flattened outcomes of one
// element instance, or the union of outcomes of sibling instances sharing
// a tag.
type RowGroup []*Row

// Combine computes the Cartesian product of several independent row groups
// by left fold: each row of the running result is merged with each row of
// the next group. Zero groups yield a single empty row. An empty group
// empties the running product, and an empty final result is replaced by a
// single empty row so callers always receive at least one combination.
func Combine(groups []RowGroup) RowGroup {
	if len(groups) == 0 {
		return RowGroup{NewRow()}
	}
	if len(groups) == 1 {
		return groups[0]
	}

	result := groups[0]
	for _, next := range groups[1:] {
		merged := make(RowGroup, 0, len(result)*len(next))
		for _, r := range result {
			for _, n := range next {
				c := r.Clone()
				c.Merge(n)
				merged = append(merged, c)
			}
		}
		result = merged
	}

	if len(result) == 0 {
		return RowGroup{NewRow()}
	}
	return result
}
