// Package stat implements statistical transformations applied to layer
// data before geoms are drawn.
//
// # Overview
//
// A Stat consumes the mapped data of one layer and replaces it with a
// derived table, one group at a time. ComputeLayer drives the full
// transformation: it validates required aesthetics, drops rows with
// missing values, partitions the data by panel and group, runs the stat
// on each partition, and carries group-constant columns into the result.
//
// # Basic Usage
//
//	st, err := stat.New(stat.KindCount, stat.Params{})
//	if err != nil {
//		return err
//	}
//	out, err := stat.ComputeLayer(data, st, stat.Context{}, warn)
package stat
