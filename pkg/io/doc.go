// Package io reads plot inputs and writes plot outputs.
//
// # Overview
//
// This package handles the three file formats at the edges of the
// plotting pipeline:
//
//   - CSV data tables ([ReadCSV], [ImportCSV])
//   - TOML plot specifications ([ReadSpec], [ImportSpec])
//   - JSON export of built plots ([WriteJSON], [ExportJSON])
//
// # CSV Data
//
// [ReadCSV] decodes a CSV table with a header row into a data frame.
// Column kinds are inferred: a column whose non-empty cells all parse as
// numbers becomes a float column, everything else becomes a string
// column. Empty cells become NA (NaN for floats, "" for strings).
//
// # TOML Specifications
//
// [ReadSpec] decodes a declarative plot specification:
//
//	title = "Fuel economy"
//
//	[mapping]
//	x = "class"
//
//	[[layer]]
//	geom = "bar"
//	[layer.mapping]
//	fill = "drv"
//
//	[facet]
//	wrap = ["year"]
//
// [Spec.Plot] turns the decoded specification into a plot over a data
// frame. Layer geoms, stats, positions, facets, coordinate systems, and
// scale overrides all resolve through the same registries the Go API
// uses, so an invalid name fails with the same error it would raise
// there.
//
// # JSON Export
//
// [WriteJSON] encodes a built plot: the panel layout with per-panel
// ranges and breaks, every layer's final data columns, and the warnings
// collected during the build. The format is self-contained so external
// renderers can draw from it without rebuilding.
package io
