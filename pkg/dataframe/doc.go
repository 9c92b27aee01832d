// Package dataframe provides the columnar table value type that flows
// through the plot build pipeline.
//
// # Overview
//
// A [DataFrame] is an ordered collection of named, typed columns of equal
// length. Tables are values: every transforming operation (adding a column,
// taking a subset of rows, concatenation) returns a new DataFrame and leaves
// the receiver untouched. This keeps intermediate pipeline results safe to
// hand to multiple downstream consumers without aliasing surprises.
//
// Columns come in five kinds: float, int, string, bool and factor. Float and
// int columns are continuous; string, bool and factor columns are discrete.
// Factor columns carry an explicit, ordered level set so that categorical
// ordering survives grouping and scale training.
//
// # Basic Usage
//
// Build a table with [NewBuilder], then query and transform it:
//
//	df, err := dataframe.NewBuilder().
//		AddFloats("x", []float64{1, 2, 3}).
//		AddStrings("g", []string{"a", "b", "a"}).
//		Done()
//
//	sub := df.Take([]int{0, 2})
//	out := sub.WithColumn("y", dataframe.Floats{10, 30})
//
// Rows are addressed by integer index. Grouping helpers return row-index
// partitions rather than materialized sub-tables, so callers decide when to
// copy.
package dataframe
