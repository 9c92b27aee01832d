package position

import (
	"sort"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// DodgePosition places overlapping elements side by side, dividing the
// element width evenly among the groups present in the panel.
type DodgePosition struct {
	// Width is the total width divided among the groups. Zero means
	// the widest element extent in the panel.
	Width float64

	// Reverse flips the left-to-right group order.
	Reverse bool
}

func (DodgePosition) Kind() Kind { return KindDodge }

func (p DodgePosition) ComputePanel(df dataframe.DataFrame, warn *warnings.Collector) (dataframe.DataFrame, error) {
	return collide(df, p.Width, "dodge", p.dodge, p.Reverse, warn)
}

// dodge rewrites one same-x run: group k of n is shifted to the k-th of n
// evenly spaced sub-slots, each 1/n of the element width.
func (p DodgePosition) dodge(df dataframe.DataFrame, width float64, n int) (dataframe.DataFrame, error) {
	groups := groupIDs(df)
	ranks := groupRanks(groups, p.Reverse)

	xs := append([]float64(nil), df.Floats("x")...)
	xmin := make([]float64, len(xs))
	xmax := make([]float64, len(xs))
	subWidth := width / float64(n)
	for i := range xs {
		gidx := float64(ranks[groups[i]])
		xs[i] += width * ((gidx-0.5)/float64(n) - 0.5)
		xmin[i] = xs[i] - subWidth/2
		xmax[i] = xs[i] + subWidth/2
	}

	out := df.
		WithColumn("x", dataframe.Floats(xs)).
		WithColumn("xmin", dataframe.Floats(xmin)).
		WithColumn("xmax", dataframe.Floats(xmax))
	if out.Has("width") {
		ws := make([]float64, len(xs))
		for i := range ws {
			ws[i] = subWidth
		}
		out = out.WithColumn("width", dataframe.Floats(ws))
	}
	return out, nil
}

// groupRanks maps each group id to its 1-based rank in ascending order.
func groupRanks(groups []float64, reverse bool) map[float64]int {
	uniq := map[float64]bool{}
	for _, g := range groups {
		uniq[g] = true
	}
	sorted := make([]float64, 0, len(uniq))
	for g := range uniq {
		sorted = append(sorted, g)
	}
	sort.Float64s(sorted)

	ranks := make(map[float64]int, len(sorted))
	for i, g := range sorted {
		if reverse {
			ranks[g] = len(sorted) - i
		} else {
			ranks[g] = i + 1
		}
	}
	return ranks
}
