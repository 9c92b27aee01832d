// Package scale trains aesthetic domains and maps data values onto
// renderable numeric or visual values.
//
// A scale belongs to one aesthetic. Continuous scales hold a running
// (min, max) domain plus a monotonic transform; discrete scales hold an
// ordered set of observed levels. The build pipeline trains scales in two
// passes, before and after statistics run, and resets position scales once
// more after position adjustment changes data ranges.
//
// Training is idempotent: training twice on the same values leaves the
// domain unchanged. Mapping never mutates the scale.
package scale
