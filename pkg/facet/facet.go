package facet

import (
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
)

const colPanel = "PANEL"

// FreeScales marks which position scales vary across panels.
type FreeScales struct {
	X bool
	Y bool
}

// Panel is one cell of a layout.
type Panel struct {
	// Panel is the 1-based panel number.
	Panel int

	// Row and Col are the 1-based grid position.
	Row int
	Col int

	// Vars holds the faceting variable values for this panel, in key
	// form.
	Vars map[string]string

	// ScaleX and ScaleY are the 1-based scale slots. Fixed scales use
	// slot 1 everywhere.
	ScaleX int
	ScaleY int
}

// Layout is the computed panel grid.
type Layout struct {
	Panels []Panel
	NRow   int
	NCol   int

	// Vars lists the faceting variables, in facet order.
	Vars []string
}

// NScaleX returns the number of distinct x scale slots.
func (l Layout) NScaleX() int { return l.nSlots(func(p Panel) int { return p.ScaleX }) }

// NScaleY returns the number of distinct y scale slots.
func (l Layout) NScaleY() int { return l.nSlots(func(p Panel) int { return p.ScaleY }) }

func (l Layout) nSlots(slot func(Panel) int) int {
	max := 0
	for _, p := range l.Panels {
		if s := slot(p); s > max {
			max = s
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}

// PanelFor returns the first panel matching the given variable keys,
// or 0.
func (l Layout) PanelFor(vars map[string]string) int {
	ps := l.PanelsFor(vars)
	if len(ps) == 0 {
		return 0
	}
	return ps[0]
}

// PanelsFor returns every panel whose variables agree with the given
// keys. Keys for variables a panel does not carry never match.
func (l Layout) PanelsFor(vars map[string]string) []int {
	var out []int
	for _, p := range l.Panels {
		match := true
		for name, val := range vars {
			if p.Vars[name] != val {
				match = false
				break
			}
		}
		if match {
			out = append(out, p.Panel)
		}
	}
	return out
}

// Facet computes a layout from the data and assigns rows to panels.
type Facet interface {
	// Vars lists the faceting variables.
	Vars() []string

	// Free reports which position scales vary across panels.
	Free() FreeScales

	// ComputeLayout builds the panel grid from the distinct variable
	// combinations found in the given tables.
	ComputeLayout(datas []dataframe.DataFrame) (Layout, error)
}

// MapData tags every row of df with its panel in a PANEL column. Rows
// whose variable combination matches no panel map to panel 0. Tables
// carrying none of the faceting variables are repeated into every panel.
func MapData(df dataframe.DataFrame, l Layout) dataframe.DataFrame {
	if df.NRows() == 0 {
		return df.WithColumn(colPanel, dataframe.Ints(nil))
	}

	var present []string
	for _, v := range l.Vars {
		if df.Has(v) {
			present = append(present, v)
		}
	}

	if len(present) == 0 {
		// Cross join: one copy of the table per panel.
		n := df.NRows()
		idx := make([]int, 0, n*len(l.Panels))
		panels := make([]int, 0, n*len(l.Panels))
		for _, p := range l.Panels {
			for row := 0; row < n; row++ {
				idx = append(idx, row)
				panels = append(panels, p.Panel)
			}
		}
		if len(l.Panels) == 0 {
			for row := 0; row < n; row++ {
				idx = append(idx, row)
				panels = append(panels, 1)
			}
		}
		return df.Take(idx).WithColumn(colPanel, dataframe.Ints(panels))
	}

	keys := df.RowKeys(present...)
	cache := map[string][]int{}
	matches := func(key string) []int {
		ps, ok := cache[key]
		if !ok {
			vars := map[string]string{}
			vals := splitKey(key, len(present))
			for j, name := range present {
				vars[name] = vals[j]
			}
			ps = l.PanelsFor(vars)
			cache[key] = ps
		}
		return ps
	}

	if len(present) == len(l.Vars) {
		panels := make([]int, df.NRows())
		for i, key := range keys {
			if ps := matches(key); len(ps) > 0 {
				panels[i] = ps[0]
			}
		}
		return df.WithColumn(colPanel, dataframe.Ints(panels))
	}

	// Partial variable set: replicate each row into every panel that
	// agrees with the variables it does carry.
	idx := make([]int, 0, df.NRows())
	panels := make([]int, 0, df.NRows())
	for i, key := range keys {
		ps := matches(key)
		if len(ps) == 0 {
			idx = append(idx, i)
			panels = append(panels, 0)
			continue
		}
		for _, p := range ps {
			idx = append(idx, i)
			panels = append(panels, p)
		}
	}
	return df.Take(idx).WithColumn(colPanel, dataframe.Ints(panels))
}

// combineVars collects the distinct combinations of vars across the
// given tables, in sorted order. Only tables carrying every variable
// contribute; it is an error when none does.
func combineVars(datas []dataframe.DataFrame, vars []string) (dataframe.DataFrame, error) {
	var parts []dataframe.DataFrame
	for _, df := range datas {
		ok := df.NRows() > 0
		for _, v := range vars {
			if !df.Has(v) {
				ok = false
				break
			}
		}
		if ok {
			parts = append(parts, df.Distinct(vars...).Select(vars...))
		}
	}
	if len(parts) == 0 {
		return dataframe.DataFrame{}, errors.New(errors.ErrCodeInvalidFacet,
			"at least one layer must contain all faceting variables: %v", vars)
	}
	combos := dataframe.Concat(parts...).Distinct(vars...)
	return sortByVars(combos, vars), nil
}

// sortByVars orders rows by the given columns: factors by level order,
// numeric columns numerically, everything else by key.
func sortByVars(df dataframe.DataFrame, vars []string) dataframe.DataFrame {
	type comparator func(i, j int) int
	var comps []comparator
	for _, v := range vars {
		col := df.MustColumn(v)
		switch c := col.(type) {
		case dataframe.Factor:
			comps = append(comps, func(i, j int) int { return c.Codes[i] - c.Codes[j] })
		case dataframe.Floats:
			comps = append(comps, func(i, j int) int {
				switch {
				case c[i] < c[j]:
					return -1
				case c[i] > c[j]:
					return 1
				}
				return 0
			})
		case dataframe.Ints:
			comps = append(comps, func(i, j int) int { return c[i] - c[j] })
		default:
			comps = append(comps, func(i, j int) int {
				ki, kj := col.Key(i), col.Key(j)
				switch {
				case ki < kj:
					return -1
				case ki > kj:
					return 1
				}
				return 0
			})
		}
	}
	idx := df.SortIdxStable(func(i, j int) bool {
		for _, cmp := range comps {
			if d := cmp(i, j); d != 0 {
				return d < 0
			}
		}
		return false
	})
	return df.Take(idx)
}

// panelVars extracts the key-form variable values of each combo row.
func panelVars(combos dataframe.DataFrame, vars []string) []map[string]string {
	out := make([]map[string]string, combos.NRows())
	keys := combos.RowKeys(vars...)
	for i, key := range keys {
		vals := splitKey(key, len(vars))
		m := map[string]string{}
		for j, name := range vars {
			m[name] = vals[j]
		}
		out[i] = m
	}
	return out
}

func splitKey(key string, n int) []string {
	if n == 1 {
		return []string{key}
	}
	parts := make([]string, 0, n)
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == '\x1f' {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	return append(parts, key[start:])
}
