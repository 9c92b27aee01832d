package dataframe

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// keySep separates per-column keys when rows are combined into a single
// grouping key. It must not occur in data values that take part in joins.
const keySep = "\x1f"

// DataFrame is an ordered set of equal-length named columns.
//
// The zero value is an empty table with no columns. DataFrames are values;
// all transforming methods return a new table.
type DataFrame struct {
	names []string
	cols  []Column
}

// =============================================================================
// Construction
// =============================================================================

// Builder assembles a DataFrame column by column.
type Builder struct {
	df  DataFrame
	err error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder { return &Builder{} }

// Add appends a named column. Columns must all have the same length; a
// mismatch is reported by Done.
func (b *Builder) Add(name string, c Column) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.df.cols) > 0 && c.Len() != b.df.cols[0].Len() {
		b.err = fmt.Errorf("column %s has %d rows, want %d", name, c.Len(), b.df.cols[0].Len())
		return b
	}
	if b.df.index(name) >= 0 {
		b.err = fmt.Errorf("duplicate column %s", name)
		return b
	}
	b.df.names = append(b.df.names, name)
	b.df.cols = append(b.df.cols, c)
	return b
}

// AddFloats is shorthand for Add(name, Floats(values)).
func (b *Builder) AddFloats(name string, values []float64) *Builder {
	return b.Add(name, Floats(values))
}

// AddInts is shorthand for Add(name, Ints(values)).
func (b *Builder) AddInts(name string, values []int) *Builder {
	return b.Add(name, Ints(values))
}

// AddStrings is shorthand for Add(name, Strings(values)).
func (b *Builder) AddStrings(name string, values []string) *Builder {
	return b.Add(name, Strings(values))
}

// Done returns the assembled table or the first construction error.
func (b *Builder) Done() (DataFrame, error) {
	if b.err != nil {
		return DataFrame{}, b.err
	}
	return b.df, nil
}

// MustDone is Done for tables that are known valid, typically literals in
// tests. It panics on error.
func (b *Builder) MustDone() DataFrame {
	df, err := b.Done()
	if err != nil {
		panic(err)
	}
	return df
}

// =============================================================================
// Access
// =============================================================================

// NRows returns the number of rows.
func (df DataFrame) NRows() int {
	if len(df.cols) == 0 {
		return 0
	}
	return df.cols[0].Len()
}

// NCols returns the number of columns.
func (df DataFrame) NCols() int { return len(df.cols) }

// Names returns the column names in order. The returned slice is a copy.
func (df DataFrame) Names() []string {
	return append([]string(nil), df.names...)
}

// Has reports whether a column with the given name exists.
func (df DataFrame) Has(name string) bool { return df.index(name) >= 0 }

// Column returns the named column.
func (df DataFrame) Column(name string) (Column, bool) {
	if i := df.index(name); i >= 0 {
		return df.cols[i], true
	}
	return nil, false
}

// MustColumn returns the named column or panics. Use it only where the
// pipeline has already validated the column's presence.
func (df DataFrame) MustColumn(name string) Column {
	c, ok := df.Column(name)
	if !ok {
		panic(fmt.Sprintf("dataframe: no column %q", name))
	}
	return c
}

// Floats returns the named column coerced to float64 values. Discrete
// columns coerce to NaN.
func (df DataFrame) Floats(name string) []float64 {
	return toFloats(df.MustColumn(name))
}

// Strings returns the key representation of the named column.
func (df DataFrame) Strings(name string) []string {
	return toStrings(df.MustColumn(name))
}

func (df DataFrame) index(name string) int {
	for i, n := range df.names {
		if n == name {
			return i
		}
	}
	return -1
}

// =============================================================================
// Transformation
// =============================================================================

// WithColumn returns a copy of df with the named column replaced, or
// appended if it does not exist.
func (df DataFrame) WithColumn(name string, c Column) DataFrame {
	out := df.clone()
	if i := out.index(name); i >= 0 {
		out.cols[i] = c
		return out
	}
	out.names = append(out.names, name)
	out.cols = append(out.cols, c)
	return out
}

// Rename returns a copy of df with column from renamed to to. It is a no-op
// if from does not exist.
func (df DataFrame) Rename(from, to string) DataFrame {
	i := df.index(from)
	if i < 0 {
		return df
	}
	out := df.clone()
	out.names[i] = to
	return out
}

// Drop returns a copy of df without the given columns. Unknown names are
// ignored.
func (df DataFrame) Drop(names ...string) DataFrame {
	skip := make(map[string]bool, len(names))
	for _, n := range names {
		skip[n] = true
	}
	var out DataFrame
	for i, n := range df.names {
		if !skip[n] {
			out.names = append(out.names, n)
			out.cols = append(out.cols, df.cols[i])
		}
	}
	return out
}

// Select returns a copy of df holding only the given columns, in the given
// order. Unknown names are ignored.
func (df DataFrame) Select(names ...string) DataFrame {
	var out DataFrame
	for _, n := range names {
		if i := df.index(n); i >= 0 {
			out.names = append(out.names, n)
			out.cols = append(out.cols, df.cols[i])
		}
	}
	return out
}

// Take returns a new table holding the rows at the given indices, in order.
func (df DataFrame) Take(idx []int) DataFrame {
	out := DataFrame{names: append([]string(nil), df.names...)}
	out.cols = make([]Column, len(df.cols))
	for i, c := range df.cols {
		out.cols[i] = c.Take(idx)
	}
	return out
}

// Filter returns the rows for which keep returns true.
func (df DataFrame) Filter(keep func(row int) bool) DataFrame {
	var idx []int
	for i := 0; i < df.NRows(); i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return df.Take(idx)
}

func (df DataFrame) clone() DataFrame {
	return DataFrame{
		names: append([]string(nil), df.names...),
		cols:  append([]Column(nil), df.cols...),
	}
}

// Concat appends the rows of each table in dfs. The column set of the result
// is the union, in first-appearance order; columns absent from a table are
// filled with missing values. Empty tables are skipped.
func Concat(dfs ...DataFrame) DataFrame {
	var nonEmpty []DataFrame
	for _, d := range dfs {
		if d.NRows() > 0 || d.NCols() > 0 {
			nonEmpty = append(nonEmpty, d)
		}
	}
	if len(nonEmpty) == 0 {
		return DataFrame{}
	}

	// Union of column names with a prototype column per name.
	var names []string
	proto := make(map[string]Column)
	for _, d := range nonEmpty {
		for i, n := range d.names {
			if _, ok := proto[n]; !ok {
				names = append(names, n)
				proto[n] = d.cols[i]
			}
		}
	}

	out := DataFrame{names: names, cols: make([]Column, len(names))}
	for i, n := range names {
		var col Column
		for _, d := range nonEmpty {
			part, ok := d.Column(n)
			if !ok {
				part = naColumn(proto[n], d.NRows())
			}
			if col == nil {
				col = part
			} else {
				col = col.AppendCol(part)
			}
		}
		out.cols[i] = col
	}
	return out
}

// =============================================================================
// Grouping and Keys
// =============================================================================

// Group is one partition of a table's rows sharing a key.
type Group struct {
	Key  string
	Rows []int
}

// GroupBy partitions the row indices by the combined key of the named
// columns, preserving first-appearance order of the keys and the original
// row order within each group.
func (df DataFrame) GroupBy(names ...string) []Group {
	cols := make([]Column, 0, len(names))
	for _, n := range names {
		if c, ok := df.Column(n); ok {
			cols = append(cols, c)
		}
	}
	byKey := make(map[string]int)
	var groups []Group
	for row := 0; row < df.NRows(); row++ {
		key := rowKey(cols, row)
		gi, ok := byKey[key]
		if !ok {
			gi = len(groups)
			byKey[key] = gi
			groups = append(groups, Group{Key: key})
		}
		groups[gi].Rows = append(groups[gi].Rows, row)
	}
	return groups
}

// RowKeys returns the combined grouping key for every row over the named
// columns. Missing columns contribute an empty component.
func (df DataFrame) RowKeys(names ...string) []string {
	cols := make([]Column, len(names))
	for i, n := range names {
		if c, ok := df.Column(n); ok {
			cols[i] = c
		}
	}
	keys := make([]string, df.NRows())
	for row := range keys {
		parts := make([]string, len(cols))
		for i, c := range cols {
			if c != nil {
				parts[i] = c.Key(row)
			}
		}
		keys[row] = strings.Join(parts, keySep)
	}
	return keys
}

func rowKey(cols []Column, row int) string {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c.Key(row)
	}
	return strings.Join(parts, keySep)
}

// Distinct returns the distinct rows of the named columns in first-seen
// order.
func (df DataFrame) Distinct(names ...string) DataFrame {
	groups := df.GroupBy(names...)
	idx := make([]int, len(groups))
	for i, g := range groups {
		idx[i] = g.Rows[0]
	}
	return df.Select(names...).Take(idx)
}

// SortIdxStable returns row indices ordered by the given comparison using a
// stable sort, leaving df untouched.
func (df DataFrame) SortIdxStable(less func(i, j int) bool) []int {
	idx := make([]int, df.NRows())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return less(idx[a], idx[b]) })
	return idx
}

// DiscreteNames returns the names of discrete columns, skipping any listed
// in ignore.
func (df DataFrame) DiscreteNames(ignore ...string) []string {
	skip := make(map[string]bool, len(ignore))
	for _, n := range ignore {
		skip[n] = true
	}
	var out []string
	for i, n := range df.names {
		if !skip[n] && df.cols[i].Kind().Discrete() {
			out = append(out, n)
		}
	}
	return out
}

// ConstantColumns returns the names of columns whose non-missing values are
// all identical across the given rows. Used to broadcast group-invariant
// inputs onto stat output.
func (df DataFrame) ConstantColumns(rows []int) []string {
	var out []string
	for i, n := range df.names {
		c := df.cols[i]
		constant := true
		var first string
		seen := false
		for _, r := range rows {
			k := c.Key(r)
			if !seen {
				first, seen = k, true
				continue
			}
			if k != first {
				constant = false
				break
			}
		}
		if constant {
			out = append(out, n)
		}
	}
	return out
}

// =============================================================================
// Numeric Helpers
// =============================================================================

// Resolution computes the smallest positive gap between distinct values of
// x, ignoring non-finite entries. When zero is true, 0 participates as a
// value. Returns 1 when fewer than two distinct values exist, matching the
// convention for integer-like data.
func Resolution(x []float64, zero bool) float64 {
	uniq := make([]float64, 0, len(x))
	seen := make(map[float64]bool, len(x))
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !seen[v] {
			seen[v] = true
			uniq = append(uniq, v)
		}
	}
	if zero && !seen[0] {
		uniq = append(uniq, 0)
	}
	if len(uniq) < 2 {
		return 1
	}
	sort.Float64s(uniq)
	res := math.Inf(1)
	for i := 1; i < len(uniq); i++ {
		if d := uniq[i] - uniq[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}
