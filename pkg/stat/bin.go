package stat

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// BinStat divides the x range into bins and counts the rows (or sums
// their weights) in each.
type BinStat struct {
	// Bins is the number of bins. Zero means 30.
	Bins int

	// Binwidth overrides the computed bin width when positive.
	Binwidth float64

	// Boundary shifts bin edges so one edge sits at the given value.
	// Nil places a bin edge half a width below the range minimum.
	Boundary *float64
}

func (BinStat) Kind() Kind            { return KindBin }
func (BinStat) RequiredAes() []string { return []string{"x"} }

func (BinStat) DefaultAes() map[string]string {
	return map[string]string{"y": "count"}
}

func (BinStat) validateData(df dataframe.DataFrame) error {
	if df.Has("y") {
		return errors.New(errors.ErrCodeInvalidData,
			"stat_bin must not be used with a y aesthetic; use stat_identity instead")
	}
	return nil
}

func (s BinStat) ComputeGroup(df dataframe.DataFrame, ctx Context, warn *warnings.Collector) (dataframe.DataFrame, error) {
	xs := df.Floats("x")
	ws := weightsOrOnes(df)

	lo, hi := rangeOf(xs)
	if ctx.XRange != nil {
		lo, hi = ctx.XRange[0], ctx.XRange[1]
	}
	if math.IsNaN(lo) {
		return dataframe.DataFrame{}, nil
	}

	width := s.Binwidth
	if width <= 0 {
		bins := s.Bins
		if bins <= 0 {
			bins = 30
			warn.Warnf(warnings.KindGeneric,
				"stat_bin is using bins = 30; pick a better value with binwidth")
		}
		if hi > lo {
			width = (hi - lo) / float64(bins)
		} else {
			width = 1
		}
	}

	// Anchor the first edge at or below the range minimum. A fuzz of
	// 1e-8 widths keeps values on an edge in a single bin.
	boundary := lo - width/2
	if s.Boundary != nil {
		b := *s.Boundary
		boundary = b + math.Floor((lo-b)/width)*width
	}
	fuzz := width * 1e-8
	origin := boundary - fuzz

	nbins := int(math.Ceil((hi-origin)/width)) + 1
	if nbins < 1 {
		nbins = 1
	}

	counts := make([]float64, nbins)
	for i, x := range xs {
		bin := int(math.Floor((x - origin) / width))
		if bin < 0 {
			bin = 0
		}
		if bin >= nbins {
			bin = nbins - 1
		}
		counts[bin] += ws[i]
	}

	total, maxCount := 0.0, 0.0
	for _, c := range counts {
		total += c
		if c > maxCount {
			maxCount = c
		}
	}

	outX := make([]float64, nbins)
	outXMin := make([]float64, nbins)
	outXMax := make([]float64, nbins)
	outWidth := make([]float64, nbins)
	outDensity := make([]float64, nbins)
	outNCount := make([]float64, nbins)
	for i := 0; i < nbins; i++ {
		min := origin + float64(i)*width
		outXMin[i] = min
		outXMax[i] = min + width
		outX[i] = min + width/2
		outWidth[i] = width
		outDensity[i] = counts[i] / width / total
		if maxCount > 0 {
			outNCount[i] = counts[i] / maxCount
		}
	}

	return dataframe.NewBuilder().
		AddFloats("x", outX).
		AddFloats("xmin", outXMin).
		AddFloats("xmax", outXMax).
		AddFloats("count", counts).
		AddFloats("density", outDensity).
		AddFloats("ncount", outNCount).
		AddFloats("width", outWidth).
		Done()
}

// rangeOf returns the finite min and max of xs, or NaNs when empty.
func rangeOf(xs []float64) (lo, hi float64) {
	lo, hi = math.NaN(), math.NaN()
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if math.IsNaN(lo) || x < lo {
			lo = x
		}
		if math.IsNaN(hi) || x > hi {
			hi = x
		}
	}
	return lo, hi
}
