package plot

import (
	"context"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/plotgram/plotgram/pkg/coord"
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/facet"
	"github.com/plotgram/plotgram/pkg/geom"
	"github.com/plotgram/plotgram/pkg/observability"
	"github.com/plotgram/plotgram/pkg/position"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/stat"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// builder carries the state of one build through its stages.
type builder struct {
	plot   *Plot
	facet  facet.Facet
	coord  coord.Coord
	warn   *warnings.Collector
	layout facet.Layout
	scales *facet.PanelScales

	// one entry per layer, kept in step with plot.Layers
	data     []dataframe.DataFrame
	mappings []Aes
	geoms    []*geom.Geom
}

// Build runs the staged pipeline over a copy of p and returns drawable
// panel data. The input specification is never mutated.
func Build(ctx context.Context, p *Plot) (*Built, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	p = p.clone()
	b := &builder{
		plot:  p,
		facet: p.Facet,
		coord: p.Coord,
		warn:  warnings.NewCollector(charmlog.FromContext(ctx)),
	}
	if b.facet == nil {
		b.facet = facet.Null{}
	}
	if b.coord == nil {
		b.coord = coord.Cartesian{}
	}

	hooks := observability.Build()
	start := time.Now()
	hooks.OnBuildStart(ctx, len(p.Layers), 0)

	stages := []struct {
		name string
		run  func() error
	}{
		{"layout", b.computeLayout},
		{"aes", b.evalAesthetics},
		{"scales-position", b.trainAndMapPosition},
		{"stat", b.computeStats},
		{"map-stat", b.mapStatistics},
		{"geom", b.setupGeoms},
		{"position", b.adjustPositions},
		{"scales-retrain", b.retrainPosition},
		{"scales-aes", b.mapNonPosition},
	}
	for _, st := range stages {
		stStart := time.Now()
		hooks.OnStageStart(ctx, st.name)
		err := st.run()
		hooks.OnStageComplete(ctx, st.name, time.Since(stStart), err)
		if err != nil {
			hooks.OnBuildComplete(ctx, len(p.Layers), len(b.layout.Panels), time.Since(start), err)
			return nil, err
		}
	}

	built := b.assemble()
	hooks.OnBuildComplete(ctx, len(p.Layers), len(b.layout.Panels), time.Since(start), nil)
	return built, nil
}

// ===== Layout =====

func (b *builder) computeLayout() error {
	datas := make([]dataframe.DataFrame, len(b.plot.Layers))
	for i, l := range b.plot.Layers {
		if l.Data != nil {
			datas[i] = *l.Data
		} else {
			datas[i] = b.plot.Data
		}
	}

	layout, err := b.facet.ComputeLayout(datas)
	if err != nil {
		return err
	}
	b.layout = layout

	b.data = make([]dataframe.DataFrame, len(datas))
	for i, df := range datas {
		b.data[i] = facet.MapData(df, layout)
	}
	return nil
}

// ===== Aesthetics =====

func (b *builder) evalAesthetics() error {
	b.mappings = make([]Aes, len(b.plot.Layers))
	for i, l := range b.plot.Layers {
		mapping := b.plot.Mapping.merge(l.Mapping)
		b.mappings[i] = mapping

		df, err := evalAes(b.data[i], mapping, []string{colPanel})
		if err != nil {
			return err
		}
		df = addGroup(df)

		// Rows whose facet values matched no panel are dropped.
		if df.Has(colPanel) {
			before := df.NRows()
			panels := df.Floats(colPanel)
			df = df.Filter(func(row int) bool { return panels[row] > 0 })
			if dropped := before - df.NRows(); dropped > 0 {
				b.warn.Warnf(warnings.KindDroppedRows,
					"removed %d row(s) matching no panel", dropped)
			}
		}
		b.data[i] = df
	}
	return nil
}

// ===== Position Scales =====

func (b *builder) trainAndMapPosition() error {
	protoX, err := b.positionPrototype("x", scale.XAesthetics)
	if err != nil {
		return err
	}
	protoY, err := b.positionPrototype("y", scale.YAesthetics)
	if err != nil {
		return err
	}

	// Continuous transforms apply before the stat sees the data.
	for i := range b.data {
		b.data[i] = applyTransform(b.data[i], protoX, scale.XAesthetics)
		b.data[i] = applyTransform(b.data[i], protoY, scale.YAesthetics)
	}

	b.scales = facet.NewPanelScales(b.layout, protoX, protoY)
	for _, df := range b.data {
		b.scales.TrainDF(df)
	}
	for i, df := range b.data {
		b.data[i] = b.scales.MapDF(df, b.warn)
	}
	return nil
}

// positionPrototype picks the scale cloned into every panel slot: a
// declared override when present, otherwise a scale inferred from the
// mapped column kind.
func (b *builder) positionPrototype(aes string, aesthetics []string) (scale.Scale, error) {
	if s := b.plot.scaleFor(aes); s != nil {
		return s, nil
	}
	for _, df := range b.data {
		for _, name := range aesthetics {
			if !df.Has(name) {
				continue
			}
			if df.MustColumn(name).Kind().Discrete() {
				return scale.NewDiscrete(aes), nil
			}
			return scale.NewContinuous(aes), nil
		}
	}
	return scale.NewContinuous(aes), nil
}

func applyTransform(df dataframe.DataFrame, proto scale.Scale, aesthetics []string) dataframe.DataFrame {
	c, ok := proto.(*scale.Continuous)
	if !ok || c.Trans.Name == scale.TransIdentity.Name {
		return df
	}
	out := df
	for _, name := range aesthetics {
		if !out.Has(name) {
			continue
		}
		out = out.WithColumn(name, dataframe.Floats(c.TransformValues(out.Floats(name))))
	}
	return out
}

// ===== Stats =====

func (b *builder) computeStats() error {
	b.geoms = make([]*geom.Geom, len(b.plot.Layers))
	for i, l := range b.plot.Layers {
		kind := l.Geom
		if kind == "" {
			kind = geom.KindPoint
		}
		g, err := geom.New(kind)
		if err != nil {
			return err
		}
		b.geoms[i] = g

		statKind := l.Stat
		if statKind == "" {
			statKind = g.DefaultStat
		}
		st, err := stat.New(statKind, l.StatParams)
		if err != nil {
			return err
		}

		out, err := stat.ComputeLayer(b.data[i], st, stat.Context{}, b.warn)
		if err != nil {
			return err
		}
		b.data[i] = out
		b.plot.Layers[i].Stat = statKind
	}
	return nil
}

// mapStatistics carries the stat's computed columns into aesthetics the
// user left unmapped, so a count stat feeds y without an explicit
// mapping.
func (b *builder) mapStatistics() error {
	for i, l := range b.plot.Layers {
		st, err := stat.New(l.Stat, l.StatParams)
		if err != nil {
			return err
		}
		df := b.data[i]
		for aes, column := range st.DefaultAes() {
			if _, mapped := b.mappings[i][aes]; mapped {
				continue
			}
			if !df.Has(column) || df.Has(aes) {
				continue
			}
			df = df.WithColumn(aes, df.MustColumn(column))
		}
		b.data[i] = df
	}
	return nil
}

// ===== Geoms =====

func (b *builder) setupGeoms() error {
	for i, g := range b.geoms {
		df := b.data[i]
		if df.NRows() == 0 {
			continue
		}

		var missing []string
		for _, aes := range g.RequiredAes {
			if !df.Has(aes) {
				missing = append(missing, aes)
			}
		}
		if len(missing) > 0 {
			return errors.New(errors.ErrCodeMissingAes,
				"geom %s requires the following missing aesthetics: %s",
				g.Kind(), strings.Join(missing, ", "))
		}

		b.data[i] = g.SetupData(df)
	}
	return nil
}

// ===== Position Adjustment =====

func (b *builder) adjustPositions() error {
	for i, l := range b.plot.Layers {
		kind := l.Position
		if kind == "" {
			kind = b.geoms[i].DefaultPosition
		}
		pos, err := position.New(kind, l.PositionParams)
		if err != nil {
			return err
		}
		out, err := position.ComputeLayer(b.data[i], pos, b.warn)
		if err != nil {
			return err
		}
		b.data[i] = out
	}
	return nil
}

// ===== Scale Retraining =====

// retrainPosition resets the continuous position scales and trains them
// on the adjusted data, so stacked and dodged extents fit the panel.
func (b *builder) retrainPosition() error {
	b.scales.ResetContinuous()
	for _, df := range b.data {
		b.scales.TrainDF(df)
	}
	for i, df := range b.data {
		b.data[i] = b.scales.MapDF(df, b.warn)
	}
	return nil
}

// ===== Non-position Scales =====

var nonPositionAes = []string{"color", "fill", "alpha", "size", "shape", "linetype"}

func (b *builder) mapNonPosition() error {
	for _, aes := range nonPositionAes {
		s := b.plot.scaleFor(aes)
		if s == nil {
			s = b.inferAesScale(aes)
		}
		if s == nil {
			continue
		}
		for _, df := range b.data {
			s.TrainDF(df, []string{aes})
		}
		for i, df := range b.data {
			b.data[i] = s.MapDF(df, []string{aes}, b.warn)
		}
	}
	return nil
}

// inferAesScale picks the default scale for a mapped non-position
// aesthetic from the mapped column's kind, or nil when no layer maps it.
func (b *builder) inferAesScale(aes string) scale.Scale {
	for _, df := range b.data {
		if !df.Has(aes) {
			continue
		}
		discrete := df.MustColumn(aes).Kind().Discrete()
		switch aes {
		case "color", "fill":
			if discrete {
				return scale.NewDiscreteColor(aes)
			}
			return scale.NewContinuousColor(aes)
		case "shape":
			if discrete {
				return scale.NewDiscretePalette(aes, scale.ShapePalette)
			}
		case "linetype":
			if discrete {
				return scale.NewDiscretePalette(aes, scale.LinetypePalette)
			}
		case "size":
			if !discrete {
				return scale.NewContinuousRange(aes, [2]float64{1, 6}, true)
			}
		case "alpha":
			if !discrete {
				return scale.NewContinuousRange(aes, [2]float64{0.1, 1}, false)
			}
		}
		return nil
	}
	return nil
}

// ===== Assembly =====

func (b *builder) assemble() *Built {
	panels := make([]BuiltPanel, len(b.layout.Panels))
	for i, p := range b.layout.Panels {
		panels[i] = BuiltPanel{
			Panel:  p,
			Ranges: b.coord.PanelParams(b.scales.XFor(p.Panel), b.scales.YFor(p.Panel)),
		}
	}

	layers := make([]BuiltLayer, len(b.data))
	for i := range b.data {
		layers[i] = BuiltLayer{Data: withDefaultAes(b.data[i], b.geoms[i]), Geom: b.geoms[i]}
	}

	return &Built{
		Layers:   layers,
		Layout:   b.layout,
		Panels:   panels,
		Coord:    b.coord,
		Warnings: b.warn.All(),
		warn:     b.warn,
		Title:    b.plot.Title,
		XLab:     b.axisLabel("x", b.plot.XLab),
		YLab:     b.axisLabel("y", b.plot.YLab),
	}
}

// withDefaultAes fills unmapped aesthetic columns with the geom's
// default values.
func withDefaultAes(df dataframe.DataFrame, g *geom.Geom) dataframe.DataFrame {
	if df.NRows() == 0 {
		return df
	}
	out := df
	n := df.NRows()
	for aes, def := range g.DefaultAes {
		if out.Has(aes) {
			continue
		}
		switch v := def.(type) {
		case string:
			vals := make([]string, n)
			for i := range vals {
				vals[i] = v
			}
			out = out.WithColumn(aes, dataframe.Strings(vals))
		case float64:
			vals := make([]float64, n)
			for i := range vals {
				vals[i] = v
			}
			out = out.WithColumn(aes, dataframe.Floats(vals))
		}
	}
	return out
}

// axisLabel falls back to the mapped column, then to a stat-computed
// default.
func (b *builder) axisLabel(aes, explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, m := range b.mappings {
		if ref, ok := m[aes]; ok {
			column, _ := errors.ParseColumnRef(ref)
			return column
		}
	}
	for i, l := range b.plot.Layers {
		st, err := stat.New(l.Stat, b.plot.Layers[i].StatParams)
		if err != nil {
			continue
		}
		if column, ok := st.DefaultAes()[aes]; ok {
			return column
		}
	}
	return aes
}
