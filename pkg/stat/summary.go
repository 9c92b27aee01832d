package stat

import (
	"math"
	"sort"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// SummaryStat collapses the y values at each distinct x position into a
// single summary value.
type SummaryStat struct {
	// FunY names the summary function: "mean", "median", "sum", "min"
	// or "max". Empty means "mean".
	FunY string
}

func (SummaryStat) Kind() Kind            { return KindSummary }
func (SummaryStat) RequiredAes() []string { return []string{"x", "y"} }

func (SummaryStat) DefaultAes() map[string]string { return nil }

func (s SummaryStat) ComputeGroup(df dataframe.DataFrame, _ Context, _ *warnings.Collector) (dataframe.DataFrame, error) {
	fun, err := summaryFunc(s.FunY)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	xs := df.Floats("x")
	ys := df.Floats("y")

	byX := map[float64][]float64{}
	for i, x := range xs {
		byX[x] = append(byX[x], ys[i])
	}
	uniq := make([]float64, 0, len(byX))
	for x := range byX {
		uniq = append(uniq, x)
	}
	sort.Float64s(uniq)

	outX := make([]float64, len(uniq))
	outY := make([]float64, len(uniq))
	outYMin := make([]float64, len(uniq))
	outYMax := make([]float64, len(uniq))
	for i, x := range uniq {
		vals := byX[x]
		outX[i] = x
		outY[i] = fun(vals)
		lo, hi := rangeOf(vals)
		outYMin[i] = lo
		outYMax[i] = hi
	}

	return dataframe.NewBuilder().
		AddFloats("x", outX).
		AddFloats("y", outY).
		AddFloats("ymin", outYMin).
		AddFloats("ymax", outYMax).
		Done()
}

func summaryFunc(name string) (func([]float64) float64, error) {
	switch name {
	case "", "mean":
		return func(vs []float64) float64 {
			sum := 0.0
			for _, v := range vs {
				sum += v
			}
			return sum / float64(len(vs))
		}, nil
	case "median":
		return func(vs []float64) float64 {
			sorted := append([]float64(nil), vs...)
			sort.Float64s(sorted)
			n := len(sorted)
			if n%2 == 1 {
				return sorted[n/2]
			}
			return (sorted[n/2-1] + sorted[n/2]) / 2
		}, nil
	case "sum":
		return func(vs []float64) float64 {
			sum := 0.0
			for _, v := range vs {
				sum += v
			}
			return sum
		}, nil
	case "min":
		return func(vs []float64) float64 {
			lo := math.Inf(1)
			for _, v := range vs {
				if v < lo {
					lo = v
				}
			}
			return lo
		}, nil
	case "max":
		return func(vs []float64) float64 {
			hi := math.Inf(-1)
			for _, v := range vs {
				if v > hi {
					hi = v
				}
			}
			return hi
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidSpec,
			"unknown summary function %q", name)
	}
}
