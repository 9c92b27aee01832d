package stat

import (
	"sort"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// CountStat counts the rows (or sums their weights) at each distinct x
// position.
type CountStat struct {
	// Width is the bar width attached to the output. Zero means 0.9
	// times the x resolution.
	Width float64
}

func (CountStat) Kind() Kind            { return KindCount }
func (CountStat) RequiredAes() []string { return []string{"x"} }

func (CountStat) DefaultAes() map[string]string {
	return map[string]string{"y": "count"}
}

func (CountStat) validateData(df dataframe.DataFrame) error {
	if df.Has("y") {
		return errors.New(errors.ErrCodeInvalidData,
			"stat_count must not be used with a y aesthetic")
	}
	return nil
}

func (s CountStat) ComputeGroup(df dataframe.DataFrame, _ Context, _ *warnings.Collector) (dataframe.DataFrame, error) {
	xs := df.Floats("x")
	ws := weightsOrOnes(df)

	counts := map[float64]float64{}
	for i, x := range xs {
		counts[x] += ws[i]
	}
	uniq := make([]float64, 0, len(counts))
	for x := range counts {
		uniq = append(uniq, x)
	}
	sort.Float64s(uniq)

	total := 0.0
	for _, x := range uniq {
		total += counts[x]
	}

	width := s.Width
	if width == 0 {
		width = 0.9 * dataframe.Resolution(xs, false)
	}

	outX := make([]float64, len(uniq))
	outCount := make([]float64, len(uniq))
	outProp := make([]float64, len(uniq))
	outWidth := make([]float64, len(uniq))
	for i, x := range uniq {
		outX[i] = x
		outCount[i] = counts[x]
		outProp[i] = counts[x] / total
		outWidth[i] = width
	}

	return dataframe.NewBuilder().
		AddFloats("x", outX).
		AddFloats("count", outCount).
		AddFloats("prop", outProp).
		AddFloats("width", outWidth).
		Done()
}

// weightsOrOnes returns the weight aesthetic, defaulting every row to 1.
func weightsOrOnes(df dataframe.DataFrame) []float64 {
	if df.Has("weight") {
		return df.Floats("weight")
	}
	ws := make([]float64, df.NRows())
	for i := range ws {
		ws[i] = 1
	}
	return ws
}
