package position

import (
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Dodge2Position places overlapping elements side by side, handling
// variable widths and elements that overlap without sharing an origin.
type Dodge2Position struct {
	// Width overrides the element extents when positive.
	Width float64

	// Padding is the fraction of each element's width left as a gap.
	Padding float64

	// Preserve selects how a cluster's width is split among its
	// members. Empty splits evenly; PreserveTotal splits in proportion
	// to each member's own width.
	Preserve string

	// Reverse flips the within-cluster ordering.
	Reverse bool
}

// PreserveTotal keeps each element's share of the cluster proportional
// to its original width.
const PreserveTotal = "total"

func (Dodge2Position) Kind() Kind { return KindDodge2 }

func (p Dodge2Position) ComputePanel(df dataframe.DataFrame, _ *warnings.Collector) (dataframe.DataFrame, error) {
	if !df.Has("xmin") || !df.Has("xmax") {
		df = ensureExtents(df, p.Width)
	}

	xmins := df.Floats("xmin")
	groups := groupIDs(df)
	idx := df.SortIdxStable(func(i, j int) bool {
		if xmins[i] != xmins[j] {
			return xmins[i] < xmins[j]
		}
		if p.Reverse {
			return groups[i] > groups[j]
		}
		return groups[i] < groups[j]
	})
	df = df.Take(idx)

	xmin := append([]float64(nil), df.Floats("xmin")...)
	xmax := append([]float64(nil), df.Floats("xmax")...)

	for _, cluster := range findOverlapClusters(xmin, xmax) {
		p.layoutCluster(xmin, xmax, cluster)
	}

	xs := make([]float64, len(xmin))
	for i := range xs {
		xs[i] = (xmin[i] + xmax[i]) / 2
	}

	out := df.
		WithColumn("x", dataframe.Floats(xs)).
		WithColumn("xmin", dataframe.Floats(xmin)).
		WithColumn("xmax", dataframe.Floats(xmax))
	return out, nil
}

// layoutCluster rewrites the extents of one overlap cluster: members keep
// their share of the cluster width and are laid out left to right around
// the cluster center, each shrunk by the padding fraction.
func (p Dodge2Position) layoutCluster(xmin, xmax []float64, rows []int) {
	n := float64(len(rows))

	lo, hi := xmin[rows[0]], xmax[rows[0]]
	for _, r := range rows {
		if xmin[r] < lo {
			lo = xmin[r]
		}
		if xmax[r] > hi {
			hi = xmax[r]
		}
	}
	center := (lo + hi) / 2

	widths := make([]float64, len(rows))
	total := 0.0
	for i, r := range rows {
		if p.Preserve == PreserveTotal {
			widths[i] = (xmax[r] - xmin[r]) / n
		} else {
			widths[i] = (hi - lo) / n
		}
		total += widths[i]
	}

	cursor := center - total/2
	for i, r := range rows {
		pad := widths[i] * p.Padding / 2
		xmin[r] = cursor + pad
		xmax[r] = cursor + widths[i] - pad
		cursor += widths[i]
	}
}

// findOverlapClusters sweeps extents sorted by xmin and starts a new
// cluster whenever an extent begins at or past the running maximum.
func findOverlapClusters(xmin, xmax []float64) [][]int {
	if len(xmin) == 0 {
		return nil
	}
	var clusters [][]int
	current := []int{0}
	runMax := xmax[0]
	for i := 1; i < len(xmin); i++ {
		if xmin[i] >= runMax {
			clusters = append(clusters, current)
			current = nil
		}
		current = append(current, i)
		if xmax[i] > runMax {
			runMax = xmax[i]
		}
	}
	return append(clusters, current)
}
