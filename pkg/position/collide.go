package position

import (
	"math"
	"sort"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// strategyFunc rewrites one run of rows sharing an x extent. width is the
// panel-wide element width and n the panel-wide group count.
type strategyFunc func(df dataframe.DataFrame, width float64, n int) (dataframe.DataFrame, error)

// collide drives the shared overlap machinery: it ensures extent columns,
// orders rows by extent and group, and applies strat to each run of rows
// with the same xmin.
func collide(df dataframe.DataFrame, width float64, name string, strat strategyFunc, reverse bool, warn *warnings.Collector) (dataframe.DataFrame, error) {
	df = ensureExtents(df, width)
	w := elementWidth(df, width)
	n := distinctGroups(df)

	checkOverlap(df, name, warn)

	xmins := df.Floats("xmin")
	groups := groupIDs(df)
	idx := df.SortIdxStable(func(i, j int) bool {
		if xmins[i] != xmins[j] {
			return xmins[i] < xmins[j]
		}
		if reverse {
			return groups[i] < groups[j]
		}
		return groups[i] > groups[j]
	})
	df = df.Take(idx)
	xmins = df.Floats("xmin")

	var parts []dataframe.DataFrame
	for start := 0; start < len(xmins); {
		end := start
		for end < len(xmins) && xmins[end] == xmins[start] {
			end++
		}
		rows := make([]int, 0, end-start)
		for r := start; r < end; r++ {
			rows = append(rows, r)
		}
		out, err := strat(df.Take(rows), w, n)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		parts = append(parts, out)
		start = end
	}
	return dataframe.Concat(parts...), nil
}

// ensureExtents derives xmin and xmax from x when they are absent.
func ensureExtents(df dataframe.DataFrame, width float64) dataframe.DataFrame {
	if df.Has("xmin") && df.Has("xmax") {
		return df
	}
	xs := df.Floats("x")
	ws := rowWidths(df, width)
	xmin := make([]float64, len(xs))
	xmax := make([]float64, len(xs))
	for i, x := range xs {
		xmin[i] = x - ws[i]/2
		xmax[i] = x + ws[i]/2
	}
	return df.
		WithColumn("xmin", dataframe.Floats(xmin)).
		WithColumn("xmax", dataframe.Floats(xmax))
}

// rowWidths returns a per-row width: the given width when positive, then
// the width column, then 90% of the x resolution.
func rowWidths(df dataframe.DataFrame, width float64) []float64 {
	n := df.NRows()
	out := make([]float64, n)
	switch {
	case width > 0:
		for i := range out {
			out[i] = width
		}
	case df.Has("width"):
		copy(out, df.Floats("width"))
	default:
		w := 0.9 * dataframe.Resolution(df.Floats("x"), false)
		for i := range out {
			out[i] = w
		}
	}
	return out
}

// elementWidth is the scalar width the strategies divide up: the widest
// extent in the panel.
func elementWidth(df dataframe.DataFrame, width float64) float64 {
	if width > 0 {
		return width
	}
	xmins, xmaxs := df.Floats("xmin"), df.Floats("xmax")
	w := 0.0
	for i := range xmins {
		if d := xmaxs[i] - xmins[i]; d > w {
			w = d
		}
	}
	return w
}

func groupIDs(df dataframe.DataFrame) []float64 {
	if df.Has(colGroup) {
		return df.Floats(colGroup)
	}
	return make([]float64, df.NRows())
}

func distinctGroups(df dataframe.DataFrame) int {
	seen := map[float64]bool{}
	for _, g := range groupIDs(df) {
		seen[g] = true
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}

// checkOverlap warns when extents overlap without being identical, since
// the same-xmin runs then resolve only part of the overlap.
func checkOverlap(df dataframe.DataFrame, name string, warn *warnings.Collector) {
	xmins := append([]float64(nil), df.Floats("xmin")...)
	xmaxs := append([]float64(nil), df.Floats("xmax")...)
	order := make([]int, len(xmins))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return xmins[order[a]] < xmins[order[b]] })

	prevMax := math.Inf(-1)
	prevMin := math.NaN()
	for _, i := range order {
		if xmins[i] != prevMin && xmins[i] < prevMax {
			warn.Warnf(warnings.KindOverlap,
				"position_%s requires non-overlapping x intervals", name)
			return
		}
		if xmaxs[i] > prevMax {
			prevMax = xmaxs[i]
		}
		prevMin = xmins[i]
	}
}
