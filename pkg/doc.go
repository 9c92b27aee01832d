// Package pkg provides the core libraries for Plotgram statistical graphics.
//
// # Overview
//
// Plotgram turns declarative plot specifications and tabular data into
// faceted, layered statistical graphics. The pkg directory is organized
// into four main areas:
//
//  1. Data - Column-oriented frames and input formats (dataframe, io)
//  2. Grammar - The building blocks of a plot (geom, stat, position, scale, coord, facet)
//  3. Pipeline - The build orchestration (plot, warnings, observability)
//  4. Output - Rendering and artifact caching (render, cache)
//
// # Architecture
//
// The typical data flow through Plotgram:
//
//	CSV data + TOML spec
//	         ↓
//	    [io] package (parse inputs into a plot description)
//	         ↓
//	    [plot] package (facet layout, scale training, stats, positions)
//	         ↓
//	    [render] package (SVG drawing, PDF/PNG conversion)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Build a bar chart and render it to SVG:
//
//	import (
//	    "context"
//	    "os"
//	    "github.com/plotgram/plotgram/pkg/dataframe"
//	    "github.com/plotgram/plotgram/pkg/geom"
//	    "github.com/plotgram/plotgram/pkg/plot"
//	    "github.com/plotgram/plotgram/pkg/render"
//	)
//
//	// 1. Assemble the data
//	df := dataframe.NewBuilder().
//	    AddStrings("class", []string{"compact", "compact", "suv"}).
//	    MustDone()
//
//	// 2. Describe the plot
//	p := plot.New(df, plot.Aes{"x": "class"}).
//	    AddLayer(plot.Layer{Geom: geom.KindBar})
//
//	// 3. Run the build pipeline
//	built, _ := plot.Build(context.Background(), p)
//
//	// 4. Render to SVG
//	built.Draw(render.NewSVG(os.Stdout))
//
// # Main Packages
//
// ## Data
//
// [dataframe] - Column-oriented data frames with float and string
// columns, grouping, filtering, and stable sorting. The currency every
// pipeline stage trades in.
//
// [io] - Input and output formats: CSV data import with column type
// inference, TOML plot specifications, and JSON export of built plots.
//
// ## Grammar
//
// [geom] - Geometric objects (point, line, path, bar, col, area,
// histogram) with their default aesthetics and stat/position pairings.
//
// [stat] - Statistical transformations applied per group: identity,
// count, bin, summary, and density estimation.
//
// [position] - Position adjustments resolving overlap: identity, stack,
// fill, dodge, nudge, and jitter.
//
// [scale] - Scale training and mapping for position and aesthetic
// scales, continuous and discrete, with transforms (log10, sqrt,
// reverse) and palettes.
//
// [coord] - Coordinate systems (cartesian, flip, trans) that turn
// trained scales into panel ranges and map data into normalized panel
// space.
//
// [facet] - Panel layouts: wrap grids over one or more variables and
// row/column grids, with fixed or free scales.
//
// ## Pipeline
//
// [plot] - The build pipeline tying everything together: layout
// assignment, scale training, per-group stats, aesthetic mapping, and
// position adjustment, in a fixed stage order.
//
// [warnings] - Non-fatal data problems (dropped rows, clipped values)
// collected during a build and reported to the caller.
//
// [observability] - Hook interfaces for timing build stages, render
// passes, and cache traffic.
//
// ## Output
//
// [render] - SVG drawing of built plots with themes, plus PDF and PNG
// conversion via rsvg-convert.
//
// [cache] - Content-addressed artifact caching with file, Redis, and
// null backends, scoped keys, and retry helpers.
//
// [errors] - Coded errors shared by every package, supporting
// classification without string matching.
//
// [buildinfo] - Build-time version information injected via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/plot/...       # Specific package
//	go test -run Example         # Examples only
//
// [dataframe]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/dataframe
// [io]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/io
// [geom]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/geom
// [stat]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/stat
// [position]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/position
// [scale]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/scale
// [coord]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/coord
// [facet]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/facet
// [plot]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/plot
// [warnings]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/warnings
// [observability]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/observability
// [render]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/render
// [cache]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/cache
// [errors]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/plotgram/plotgram/pkg/buildinfo
package pkg
