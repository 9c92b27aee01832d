package plot

import (
	"github.com/plotgram/plotgram/pkg/coord"
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/facet"
	"github.com/plotgram/plotgram/pkg/geom"
	"github.com/plotgram/plotgram/pkg/position"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/stat"
)

// Layer pairs a geom with a stat and a position adjustment. Zero-value
// Stat and Position fall back to the geom's defaults.
type Layer struct {
	// Data overrides the plot data for this layer.
	Data *dataframe.DataFrame

	// Mapping overlays the plot mapping for this layer.
	Mapping Aes

	// Geom names the geometric object. Empty means point.
	Geom geom.Kind

	// Stat and Position override the geom defaults when set.
	Stat     stat.Kind
	Position position.Kind

	// StatParams and PositionParams tune the stat and position.
	StatParams     stat.Params
	PositionParams position.Params
}

// Plot is a declarative plot specification.
type Plot struct {
	// Data is the default table for every layer.
	Data dataframe.DataFrame

	// Mapping is the default aesthetic mapping.
	Mapping Aes

	// Layers draw in order, first at the bottom.
	Layers []*Layer

	// Facet lays out panels. Nil means a single panel.
	Facet facet.Facet

	// Coord is the coordinate system. Nil means cartesian.
	Coord coord.Coord

	// Scales overrides the default scale for the aesthetics it names.
	Scales []scale.Scale

	// Title, XLab and YLab label the drawn plot.
	Title string
	XLab  string
	YLab  string
}

// New returns a plot over data with the given default mapping.
func New(data dataframe.DataFrame, mapping Aes) *Plot {
	return &Plot{Data: data, Mapping: mapping}
}

// AddLayer appends a layer.
func (p *Plot) AddLayer(l *Layer) *Plot {
	p.Layers = append(p.Layers, l)
	return p
}

// AddScale registers a scale override for its aesthetic.
func (p *Plot) AddScale(s scale.Scale) *Plot {
	p.Scales = append(p.Scales, s)
	return p
}

// Validate checks the specification before building.
func (p *Plot) Validate() error {
	if len(p.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "plot has no layers")
	}
	if err := p.Mapping.Validate(); err != nil {
		return err
	}
	for _, l := range p.Layers {
		if err := l.Mapping.Validate(); err != nil {
			return err
		}
		kind := l.Geom
		if kind == "" {
			kind = geom.KindPoint
		}
		if _, err := geom.New(kind); err != nil {
			return err
		}
		if l.Stat != "" {
			if _, err := stat.New(l.Stat, l.StatParams); err != nil {
				return err
			}
		}
		if l.Position != "" {
			if _, err := position.New(l.Position, l.PositionParams); err != nil {
				return err
			}
		}
	}
	return nil
}

// scaleFor returns the declared scale override for an aesthetic.
func (p *Plot) scaleFor(aes string) scale.Scale {
	for _, s := range p.Scales {
		if s.Aes() == aes {
			return s
		}
	}
	return nil
}

// clone copies the specification so a build never mutates its input.
// DataFrames are immutable values, so only the spec structure is copied.
func (p *Plot) clone() *Plot {
	out := *p
	out.Mapping = Aes{}.merge(p.Mapping)
	out.Layers = make([]*Layer, len(p.Layers))
	for i, l := range p.Layers {
		lc := *l
		lc.Mapping = Aes{}.merge(l.Mapping)
		out.Layers[i] = &lc
	}
	out.Scales = make([]scale.Scale, len(p.Scales))
	for i, s := range p.Scales {
		out.Scales[i] = s.Clone()
	}
	return &out
}
