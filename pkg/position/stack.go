package position

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// StackPosition stacks overlapping values on top of one another. With
// Fill set, each stack is normalized to unit height.
type StackPosition struct {
	// VJust places y within the stacked (ymin, ymax) interval: 1 is the
	// top, 0 the bottom, 0.5 the middle.
	VJust float64

	// Fill normalizes every stack so its extreme reaches 1.
	Fill bool

	// Reverse flips the stacking order.
	Reverse bool
}

func (p StackPosition) Kind() Kind {
	if p.Fill {
		return KindFill
	}
	return KindStack
}

func (p StackPosition) ComputePanel(df dataframe.DataFrame, warn *warnings.Collector) (dataframe.DataFrame, error) {
	name := "stack"
	if p.Fill {
		name = "fill"
	}
	return collide(df, 0, name, p.stack, p.Reverse, warn)
}

// stack rewrites one same-x run. Non-negative and negative heights stack
// away from zero on their own sides.
func (p StackPosition) stack(df dataframe.DataFrame, _ float64, _ int) (dataframe.DataFrame, error) {
	heights := stackHeights(df)
	n := len(heights)

	ymin := make([]float64, n)
	ymax := make([]float64, n)
	posTop, negBottom := 0.0, 0.0
	for i, h := range heights {
		if h >= 0 {
			ymin[i] = posTop
			posTop += h
			ymax[i] = posTop
		} else {
			ymax[i] = negBottom
			negBottom += h
			ymin[i] = negBottom
		}
	}

	if p.Fill {
		for i, h := range heights {
			scale := posTop
			if h < 0 {
				scale = -negBottom
			}
			if scale != 0 {
				ymin[i] /= scale
				ymax[i] /= scale
			}
		}
	}

	ys := make([]float64, n)
	for i := range ys {
		ys[i] = (1-p.VJust)*ymin[i] + p.VJust*ymax[i]
	}

	return df.
		WithColumn("ymin", dataframe.Floats(ymin)).
		WithColumn("ymax", dataframe.Floats(ymax)).
		WithColumn("y", dataframe.Floats(ys)), nil
}

// stackHeights returns the height of each row: ymax when present,
// otherwise y, with missing values treated as zero.
func stackHeights(df dataframe.DataFrame) []float64 {
	var src []float64
	if df.Has("ymax") {
		src = df.Floats("ymax")
	} else {
		src = df.Floats("y")
	}
	out := make([]float64, len(src))
	for i, v := range src {
		if math.IsNaN(v) {
			continue
		}
		out[i] = v
	}
	return out
}
