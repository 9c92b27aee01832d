package coord

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Trans warps one or both axes through a transform at draw time.
type Trans struct {
	X scale.Transform
	Y scale.Transform
}

func (Trans) Kind() Kind     { return KindTrans }
func (Trans) IsLinear() bool { return false }

func (t Trans) PanelParams(x, y scale.Scale) PanelRanges {
	pr := Cartesian{}.PanelParams(x, y)
	pr.X = transformRange(pr.X, t.X)
	pr.Y = transformRange(pr.Y, t.Y)
	pr.XBreaks = transformBreaks(pr.XBreaks, t.X)
	pr.YBreaks = transformBreaks(pr.YBreaks, t.Y)
	return pr
}

func (t Trans) Transform(df dataframe.DataFrame, pr PanelRanges, warn *warnings.Collector) dataframe.DataFrame {
	out := df
	nonFinite := 0
	for _, name := range scale.XAesthetics {
		out, nonFinite = transformColumn(out, name, t.X, nonFinite)
	}
	for _, name := range scale.YAesthetics {
		out, nonFinite = transformColumn(out, name, t.Y, nonFinite)
	}
	if nonFinite > 0 {
		warn.Warnf(warnings.KindNonFinite,
			"transformation introduced %d non-finite value(s)", nonFinite)
	}
	return rescalePositions(out, pr)
}

func transformColumn(df dataframe.DataFrame, name string, trans scale.Transform, nonFinite int) (dataframe.DataFrame, int) {
	if !df.Has(name) || trans.Apply == nil {
		return df, nonFinite
	}
	vals := append([]float64(nil), df.Floats(name)...)
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		w := trans.Apply(v)
		if math.IsNaN(w) || math.IsInf(w, 0) {
			nonFinite++
		}
		vals[i] = w
	}
	return df.WithColumn(name, dataframe.Floats(vals)), nonFinite
}

func transformRange(rng [2]float64, trans scale.Transform) [2]float64 {
	if trans.Apply == nil {
		return rng
	}
	a, b := trans.Apply(rng[0]), trans.Apply(rng[1])
	if b < a {
		a, b = b, a
	}
	return [2]float64{a, b}
}

func transformBreaks(breaks []float64, trans scale.Transform) []float64 {
	if trans.Apply == nil {
		return breaks
	}
	out := make([]float64, 0, len(breaks))
	for _, b := range breaks {
		v := trans.Apply(b)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}
