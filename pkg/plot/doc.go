// Package plot assembles layers, scales, facets and coordinates into a
// plot specification and builds it into drawable panel data.
//
// # Overview
//
// A Plot is a declarative specification: data, aesthetic mappings, and a
// list of layers, each with a geom, a stat and a position adjustment.
// Build runs the staged pipeline over a copy of the specification:
// panels are laid out, aesthetics evaluated, position scales trained and
// mapped, stats computed per panel and group, geoms derive their extents,
// positions resolve overlap, and the scales retrain on the adjusted
// data. The result is a Built value holding per-layer panel tables and
// per-panel drawing ranges; coordinate transforms apply only when the
// Built plot is drawn.
//
// # Basic Usage
//
//	p := plot.New(data, plot.Aes{"x": "class"})
//	p.AddLayer(&plot.Layer{Geom: geom.KindBar})
//
//	built, err := plot.Build(ctx, p)
//	if err != nil {
//		return err
//	}
//	err = built.Draw(render.NewSVG(out, 640, 480))
package plot
