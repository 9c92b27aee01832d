package stat

import (
	"strings"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/warnings"
)

const (
	colPanel = "PANEL"
	colGroup = "group"
)

// dataValidator is implemented by stats that reject certain input shapes
// before any computation runs.
type dataValidator interface {
	validateData(df dataframe.DataFrame) error
}

// ComputeLayer runs st over one layer's mapped data: it checks required
// aesthetics, drops rows with missing values in them, partitions the rows
// by panel and then by group, transforms each partition, and reattaches
// group-constant columns the stat did not produce itself.
func ComputeLayer(df dataframe.DataFrame, st Stat, ctx Context, warn *warnings.Collector) (dataframe.DataFrame, error) {
	if df.NRows() == 0 {
		return df, nil
	}

	var missing []string
	for _, aes := range st.RequiredAes() {
		if !df.Has(aes) {
			missing = append(missing, aes)
		}
	}
	if len(missing) > 0 {
		return dataframe.DataFrame{}, errors.New(errors.ErrCodeMissingAes,
			"stat %s requires the following missing aesthetics: %s",
			st.Kind(), strings.Join(missing, ", "))
	}

	if v, ok := st.(dataValidator); ok {
		if err := v.validateData(df); err != nil {
			return dataframe.DataFrame{}, err
		}
	}

	df, dropped := dropMissing(df, st.RequiredAes())
	if dropped > 0 {
		warn.Warnf(warnings.KindDroppedRows,
			"removed %d row(s) containing missing values (stat_%s)", dropped, st.Kind())
	}
	if df.NRows() == 0 {
		return df, nil
	}

	var parts []dataframe.DataFrame
	for _, panel := range df.GroupBy(colPanel) {
		pdf := df.Take(panel.Rows)
		for _, grp := range pdf.GroupBy(colGroup) {
			gdf := pdf.Take(grp.Rows)
			out, err := st.ComputeGroup(gdf, ctx, warn)
			if err != nil {
				return dataframe.DataFrame{}, err
			}
			if out.NRows() == 0 {
				continue
			}
			parts = append(parts, broadcastConstants(gdf, out))
		}
	}
	if len(parts) == 0 {
		return dataframe.DataFrame{}, nil
	}
	return dataframe.Concat(parts...), nil
}

// dropMissing removes rows with an NA in any of the listed columns and
// reports how many were removed.
func dropMissing(df dataframe.DataFrame, columns []string) (dataframe.DataFrame, int) {
	cols := make([]dataframe.Column, 0, len(columns))
	for _, name := range columns {
		if c, ok := df.Column(name); ok {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 {
		return df, 0
	}
	before := df.NRows()
	out := df.Filter(func(row int) bool {
		for _, c := range cols {
			if c.IsNA(row) {
				return false
			}
		}
		return true
	})
	return out, before - out.NRows()
}

// broadcastConstants copies columns that are constant within the input
// group into the stat output, without overwriting computed columns.
func broadcastConstants(in, out dataframe.DataFrame) dataframe.DataFrame {
	rows := make([]int, in.NRows())
	for i := range rows {
		rows[i] = i
	}
	n := out.NRows()
	for _, name := range in.ConstantColumns(rows) {
		if out.Has(name) {
			continue
		}
		first := in.MustColumn(name).Take([]int{0})
		idx := make([]int, n)
		out = out.WithColumn(name, first.Take(idx))
	}
	return out
}
