package stat

import (
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// DensityStat estimates a probability density for x by Gaussian kernel
// density estimation.
type DensityStat struct {
	// Adjust multiplies the computed bandwidth. Zero means 1.
	Adjust float64

	// N is the number of evaluation points. Zero means 512.
	N int
}

func (DensityStat) Kind() Kind            { return KindDensity }
func (DensityStat) RequiredAes() []string { return []string{"x"} }

func (DensityStat) DefaultAes() map[string]string {
	return map[string]string{"y": "density"}
}

func (s DensityStat) ComputeGroup(df dataframe.DataFrame, ctx Context, warn *warnings.Collector) (dataframe.DataFrame, error) {
	xs := df.Floats("x")
	if len(xs) < 2 {
		warn.Warnf(warnings.KindDegenerateGroup,
			"groups with fewer than two data points have been dropped (stat_density)")
		return dataframe.DataFrame{}, nil
	}

	sample := stats.Sample{Xs: xs}
	if df.Has("weight") {
		sample.Weights = df.Floats("weight")
	}

	adjust := s.Adjust
	if adjust == 0 {
		adjust = 1
	}
	bw := stats.BandwidthScott(sample) * adjust
	if bw <= 0 {
		warn.Warnf(warnings.KindDegenerateGroup,
			"groups with zero variance have been dropped (stat_density)")
		return dataframe.DataFrame{}, nil
	}

	kde := stats.KDE{Sample: sample, Bandwidth: bw}

	n := s.N
	if n == 0 {
		n = 512
	}
	lo, hi := sample.Bounds()
	if ctx.XRange != nil {
		lo, hi = ctx.XRange[0], ctx.XRange[1]
	}

	grid := vec.Linspace(lo, hi, n)
	dens := vec.Map(kde.PDF, grid)

	maxDens := 0.0
	for _, d := range dens {
		if d > maxDens {
			maxDens = d
		}
	}
	total := sample.Weight()

	scaled := make([]float64, n)
	count := make([]float64, n)
	nOut := make([]float64, n)
	for i, d := range dens {
		if maxDens > 0 {
			scaled[i] = d / maxDens
		}
		count[i] = d * total
		nOut[i] = float64(len(xs))
	}

	return dataframe.NewBuilder().
		AddFloats("x", grid).
		AddFloats("density", dens).
		AddFloats("scaled", scaled).
		AddFloats("count", count).
		AddFloats("n", nOut).
		Done()
}
