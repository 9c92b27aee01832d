package coord

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
)

const colGroup = "group"

// Munch subdivides each group's path so that no piece spans more than
// segmentLength in normalized space. Non-linear coordinate systems call
// it before transforming, letting straight segments bend. Attribute
// columns of an interpolated point come from the start of its segment.
func Munch(df dataframe.DataFrame, segmentLength float64) dataframe.DataFrame {
	if df.NRows() < 2 || !df.Has("x") || !df.Has("y") {
		return df
	}
	if segmentLength <= 0 {
		segmentLength = 0.01
	}

	var parts []dataframe.DataFrame
	for _, grp := range groupsOrWhole(df) {
		parts = append(parts, munchGroup(df.Take(grp), segmentLength))
	}
	return dataframe.Concat(parts...)
}

func groupsOrWhole(df dataframe.DataFrame) [][]int {
	if !df.Has(colGroup) {
		rows := make([]int, df.NRows())
		for i := range rows {
			rows[i] = i
		}
		return [][]int{rows}
	}
	var out [][]int
	for _, g := range df.GroupBy(colGroup) {
		out = append(out, g.Rows)
	}
	return out
}

func munchGroup(df dataframe.DataFrame, segmentLength float64) dataframe.DataFrame {
	n := df.NRows()
	if n < 2 {
		return df
	}
	xs := df.Floats("x")
	ys := df.Floats("y")

	// Row indices into the original table, repeated per piece, plus the
	// interpolated coordinates.
	var idx []int
	var outX, outY []float64
	for i := 0; i < n-1; i++ {
		dist := math.Hypot(xs[i+1]-xs[i], ys[i+1]-ys[i])
		pieces := int(math.Ceil(dist / segmentLength))
		if pieces < 1 {
			pieces = 1
		}
		for p := 0; p < pieces; p++ {
			t := float64(p) / float64(pieces)
			idx = append(idx, i)
			outX = append(outX, xs[i]+t*(xs[i+1]-xs[i]))
			outY = append(outY, ys[i]+t*(ys[i+1]-ys[i]))
		}
	}
	idx = append(idx, n-1)
	outX = append(outX, xs[n-1])
	outY = append(outY, ys[n-1])

	return df.Take(idx).
		WithColumn("x", dataframe.Floats(outX)).
		WithColumn("y", dataframe.Floats(outY))
}
