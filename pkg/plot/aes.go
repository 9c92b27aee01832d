package plot

import (
	"sort"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
)

// NoGroup marks rows that belong to no explicit group.
const NoGroup = -1

const (
	colPanel = "PANEL"
	colGroup = "group"
)

// Aes maps aesthetic names to data column references. A reference is a
// column name, optionally wrapped in factor() to force discreteness.
type Aes map[string]string

// merge overlays layer aesthetics on top of the plot aesthetics.
func (a Aes) merge(layer Aes) Aes {
	out := Aes{}
	for k, v := range a {
		out[k] = v
	}
	for k, v := range layer {
		out[k] = v
	}
	return out
}

// Validate checks every aesthetic name and column reference.
func (a Aes) Validate() error {
	for name, ref := range a {
		if err := errors.ValidateAesName(name); err != nil {
			return err
		}
		if err := errors.ValidateColumnRef(ref); err != nil {
			return err
		}
	}
	return nil
}

// evalAes builds the layer's aesthetic table: one column per mapped
// aesthetic, named after the aesthetic, plus the PANEL column and any
// columns the facet needs. factor() references convert their column to
// an ordered factor.
func evalAes(df dataframe.DataFrame, mapping Aes, keep []string) (dataframe.DataFrame, error) {
	b := dataframe.NewBuilder()

	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := mapping[name]
		column, asFactor := errors.ParseColumnRef(ref)
		col, ok := df.Column(column)
		if !ok {
			return dataframe.DataFrame{}, errors.New(errors.ErrCodeInvalidMapping,
				"column %q mapped to aesthetic %q is not in the data", column, name)
		}
		if asFactor {
			col = toFactor(col)
		}
		b.Add(name, col)
	}
	for _, name := range keep {
		if df.Has(name) {
			b.Add(name, df.MustColumn(name))
		}
	}
	return b.Done()
}

// toFactor converts any column to a factor with levels in sorted key
// order. Factor columns pass through unchanged.
func toFactor(col dataframe.Column) dataframe.Column {
	if f, ok := col.(dataframe.Factor); ok {
		return f
	}
	n := col.Len()
	values := make([]string, n)
	seen := map[string]bool{}
	var levels []string
	for i := 0; i < n; i++ {
		values[i] = col.Key(i)
		if !seen[values[i]] {
			seen[values[i]] = true
			levels = append(levels, values[i])
		}
	}
	sort.Strings(levels)
	return dataframe.NewFactor(values, levels)
}

// addGroup derives the group column. An explicit group aesthetic wins;
// otherwise rows group on the interaction of all discrete aesthetics.
// With no discrete aesthetics every row gets NoGroup.
func addGroup(df dataframe.DataFrame) dataframe.DataFrame {
	if df.NRows() == 0 {
		return df.WithColumn(colGroup, dataframe.Ints(nil))
	}

	var groupCols []string
	if df.Has(colGroup) {
		groupCols = []string{colGroup}
	} else {
		groupCols = df.DiscreteNames(colPanel, "label")
	}

	if len(groupCols) == 0 {
		ids := make([]int, df.NRows())
		for i := range ids {
			ids[i] = NoGroup
		}
		return df.WithColumn(colGroup, dataframe.Ints(ids))
	}

	ids := ninteraction(df, groupCols)
	return df.WithColumn(colGroup, dataframe.Ints(ids))
}

// ninteraction assigns each row a 1-based id for its combination of the
// given columns, numbered in sorted key order.
func ninteraction(df dataframe.DataFrame, columns []string) []int {
	keys := df.RowKeys(columns...)

	distinct := map[string]bool{}
	for _, k := range keys {
		distinct[k] = true
	}
	sorted := make([]string, 0, len(distinct))
	for k := range distinct {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	idOf := make(map[string]int, len(sorted))
	for i, k := range sorted {
		idOf[k] = i + 1
	}

	out := make([]int, len(keys))
	for i, k := range keys {
		out[i] = idOf[k]
	}
	return out
}
