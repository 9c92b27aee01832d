package plot

import (
	"github.com/plotgram/plotgram/pkg/coord"
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/facet"
	"github.com/plotgram/plotgram/pkg/geom"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// BuiltLayer is one layer's final data with its geom.
type BuiltLayer struct {
	Data dataframe.DataFrame
	Geom *geom.Geom
}

// BuiltPanel pairs a layout panel with its drawing ranges.
type BuiltPanel struct {
	Panel  facet.Panel
	Ranges coord.PanelRanges
}

// Built is the result of building a plot: everything a renderer needs.
type Built struct {
	Layers []BuiltLayer
	Layout facet.Layout
	Panels []BuiltPanel
	Coord  coord.Coord

	// Warnings collected during the build. Draw-time transforms append
	// to this slice through the build's collector.
	Warnings []warnings.Warning

	warn *warnings.Collector

	Title string
	XLab  string
	YLab  string
}

// Renderer consumes a built plot.
type Renderer interface {
	RenderPlot(b *Built) error
}

// Draw hands the built plot to a renderer.
func (b *Built) Draw(r Renderer) error {
	if len(b.Panels) == 0 {
		return errors.New(errors.ErrCodeInternal, "built plot has no panels")
	}
	return r.RenderPlot(b)
}

// PanelRanges returns the drawing ranges of a panel.
func (b *Built) PanelRanges(panel int) coord.PanelRanges {
	for _, p := range b.Panels {
		if p.Panel.Panel == panel {
			return p.Ranges
		}
	}
	return coord.PanelRanges{}
}

// PanelData returns one layer's rows for one panel, transformed into
// normalized panel space. Paths drawn under a non-linear coordinate
// system are munched first so their segments can bend.
func (b *Built) PanelData(layer, panel int) dataframe.DataFrame {
	bl := b.Layers[layer]
	df := bl.Data
	if df.Has(colPanel) {
		panels := df.Floats(colPanel)
		df = df.Filter(func(row int) bool { return int(panels[row]) == panel })
	}

	if !b.Coord.IsLinear() {
		switch bl.Geom.Kind() {
		case geom.KindLine, geom.KindPath, geom.KindArea:
			df = coord.Munch(df, 0.01)
		}
	}
	df = b.Coord.Transform(df, b.PanelRanges(panel), b.warn)
	if b.warn != nil {
		b.Warnings = b.warn.All()
	}
	return df
}
