package coord

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Cartesian is the linear coordinate system.
type Cartesian struct{}

func (Cartesian) Kind() Kind     { return KindCartesian }
func (Cartesian) IsLinear() bool { return true }

func (Cartesian) PanelParams(x, y scale.Scale) PanelRanges {
	var pr PanelRanges
	pr.X, pr.XBreaks, pr.XLabels = scaleRanges(x)
	pr.Y, pr.YBreaks, pr.YLabels = scaleRanges(y)
	return pr
}

func (Cartesian) Transform(df dataframe.DataFrame, pr PanelRanges, _ *warnings.Collector) dataframe.DataFrame {
	return rescalePositions(df, pr)
}

// rescalePositions maps every position column linearly onto [0, 1].
func rescalePositions(df dataframe.DataFrame, pr PanelRanges) dataframe.DataFrame {
	out := df
	for _, name := range scale.XAesthetics {
		out = rescaleColumn(out, name, pr.X)
	}
	for _, name := range scale.YAesthetics {
		out = rescaleColumn(out, name, pr.Y)
	}
	return out
}

func rescaleColumn(df dataframe.DataFrame, name string, rng [2]float64) dataframe.DataFrame {
	if !df.Has(name) {
		return df
	}
	span := rng[1] - rng[0]
	vals := append([]float64(nil), df.Floats(name)...)
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if span == 0 {
			vals[i] = 0.5
			continue
		}
		vals[i] = (v - rng[0]) / span
	}
	return df.WithColumn(name, dataframe.Floats(vals))
}
