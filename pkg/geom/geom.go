// Package geom describes the geometric objects a layer can draw: the
// aesthetics they require, their default stat and position, and how they
// derive extent columns from the stat output.
package geom

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/position"
	"github.com/plotgram/plotgram/pkg/stat"
)

const colGroup = "group"

// Kind identifies a geom.
type Kind string

const (
	KindBlank     Kind = "blank"
	KindPoint     Kind = "point"
	KindLine      Kind = "line"
	KindPath      Kind = "path"
	KindBar       Kind = "bar"
	KindCol       Kind = "col"
	KindArea      Kind = "area"
	KindHistogram Kind = "histogram"
)

// Geom describes one kind of geometric object.
type Geom struct {
	kind Kind

	// RequiredAes lists aesthetics the layer data must carry after the
	// stat has run.
	RequiredAes []string

	// DefaultAes supplies aesthetic values for columns the mapping
	// leaves unset.
	DefaultAes map[string]any

	// DefaultStat and DefaultPosition apply when the layer names
	// neither.
	DefaultStat     stat.Kind
	DefaultPosition position.Kind

	// setup derives extent columns before position adjustment.
	setup func(df dataframe.DataFrame) dataframe.DataFrame
}

func (g *Geom) Kind() Kind { return g.kind }

// SetupData derives the geom's extent columns from the stat output. Bars
// grow xmin/xmax from their width and ymin/ymax from zero to y; lines
// sort by x within each group.
func (g *Geom) SetupData(df dataframe.DataFrame) dataframe.DataFrame {
	if g.setup == nil || df.NRows() == 0 {
		return df
	}
	return g.setup(df)
}

// New returns the geom registered under kind.
func New(kind Kind) (*Geom, error) {
	switch kind {
	case KindBlank:
		return &Geom{
			kind:            KindBlank,
			DefaultStat:     stat.KindIdentity,
			DefaultPosition: position.KindIdentity,
		}, nil
	case KindPoint:
		return &Geom{
			kind:        KindPoint,
			RequiredAes: []string{"x", "y"},
			DefaultAes: map[string]any{
				"shape": "circle", "color": "black", "size": 1.5, "alpha": 1.0,
			},
			DefaultStat:     stat.KindIdentity,
			DefaultPosition: position.KindIdentity,
		}, nil
	case KindLine:
		return &Geom{
			kind:        KindLine,
			RequiredAes: []string{"x", "y"},
			DefaultAes: map[string]any{
				"color": "black", "size": 0.5, "linetype": "solid", "alpha": 1.0,
			},
			DefaultStat:     stat.KindIdentity,
			DefaultPosition: position.KindIdentity,
			setup:           sortByX,
		}, nil
	case KindPath:
		return &Geom{
			kind:        KindPath,
			RequiredAes: []string{"x", "y"},
			DefaultAes: map[string]any{
				"color": "black", "size": 0.5, "linetype": "solid", "alpha": 1.0,
			},
			DefaultStat:     stat.KindIdentity,
			DefaultPosition: position.KindIdentity,
		}, nil
	case KindBar:
		return &Geom{
			kind:        KindBar,
			RequiredAes: []string{"x", "y"},
			DefaultAes: map[string]any{
				"fill": "grey35", "color": "", "size": 0.5, "alpha": 1.0,
			},
			DefaultStat:     stat.KindCount,
			DefaultPosition: position.KindStack,
			setup:           barExtents,
		}, nil
	case KindCol:
		return &Geom{
			kind:        KindCol,
			RequiredAes: []string{"x", "y"},
			DefaultAes: map[string]any{
				"fill": "grey35", "color": "", "size": 0.5, "alpha": 1.0,
			},
			DefaultStat:     stat.KindIdentity,
			DefaultPosition: position.KindStack,
			setup:           barExtents,
		}, nil
	case KindArea:
		return &Geom{
			kind:        KindArea,
			RequiredAes: []string{"x", "y"},
			DefaultAes: map[string]any{
				"fill": "grey20", "color": "", "size": 0.5, "alpha": 1.0,
			},
			DefaultStat:     stat.KindIdentity,
			DefaultPosition: position.KindStack,
			setup:           areaExtents,
		}, nil
	case KindHistogram:
		return &Geom{
			kind:        KindHistogram,
			RequiredAes: []string{"x", "y"},
			DefaultAes: map[string]any{
				"fill": "grey35", "color": "", "size": 0.5, "alpha": 1.0,
			},
			DefaultStat:     stat.KindBin,
			DefaultPosition: position.KindStack,
			setup:           barExtents,
		}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnknownGeom, "unknown geom %q", kind)
	}
}

// barExtents derives xmin/xmax from the width column (defaulting to 90%
// of the x resolution) and ymin/ymax spanning zero to y.
func barExtents(df dataframe.DataFrame) dataframe.DataFrame {
	out := df
	if !out.Has("xmin") || !out.Has("xmax") {
		xs := out.Floats("x")
		var ws []float64
		if out.Has("width") {
			ws = out.Floats("width")
		} else {
			w := 0.9 * dataframe.Resolution(xs, false)
			ws = make([]float64, len(xs))
			for i := range ws {
				ws[i] = w
			}
		}
		xmin := make([]float64, len(xs))
		xmax := make([]float64, len(xs))
		for i, x := range xs {
			xmin[i] = x - ws[i]/2
			xmax[i] = x + ws[i]/2
		}
		out = out.
			WithColumn("xmin", dataframe.Floats(xmin)).
			WithColumn("xmax", dataframe.Floats(xmax))
	}
	return spanToZero(out)
}

// areaExtents spans ymin/ymax from zero to y without touching x.
func areaExtents(df dataframe.DataFrame) dataframe.DataFrame {
	return spanToZero(df)
}

func spanToZero(df dataframe.DataFrame) dataframe.DataFrame {
	if df.Has("ymin") && df.Has("ymax") {
		return df
	}
	ys := df.Floats("y")
	ymin := make([]float64, len(ys))
	ymax := make([]float64, len(ys))
	for i, y := range ys {
		ymin[i] = math.Min(y, 0)
		ymax[i] = math.Max(y, 0)
	}
	return df.
		WithColumn("ymin", dataframe.Floats(ymin)).
		WithColumn("ymax", dataframe.Floats(ymax))
}

// sortByX orders each group's rows by x so line segments connect left to
// right.
func sortByX(df dataframe.DataFrame) dataframe.DataFrame {
	xs := df.Floats("x")
	var groups []float64
	if df.Has(colGroup) {
		groups = df.Floats(colGroup)
	} else {
		groups = make([]float64, df.NRows())
	}
	idx := df.SortIdxStable(func(i, j int) bool {
		if groups[i] != groups[j] {
			return groups[i] < groups[j]
		}
		return xs[i] < xs[j]
	})
	return df.Take(idx)
}
