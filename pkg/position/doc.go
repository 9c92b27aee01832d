// Package position implements position adjustments that resolve
// overlapping geometry within a panel.
//
// # Overview
//
// A Position rewrites the position columns of one panel's data after the
// stat has run and the geom has set up its extent columns. Adjustments
// that resolve same-location overlap (stack, fill, dodge) share the
// collide machinery: rows are ordered by x extent and group, then each
// run of rows with the same extent is rewritten together.
//
// # Basic Usage
//
//	pos, err := position.New(position.KindStack, position.Params{})
//	if err != nil {
//		return err
//	}
//	out, err := position.ComputeLayer(data, pos, warn)
package position
