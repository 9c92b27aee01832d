// Package warnings collects non-fatal conditions raised during a plot build.
//
// The build pipeline never aborts on a recoverable condition: degenerate
// statistic groups are skipped, overlapping collision intervals are resolved
// in sorted order, and non-finite coordinate values are passed through. Each
// such event is recorded on a [Collector] owned by the build, surfaced to the
// caller afterwards, and optionally forwarded to a logger as it happens.
//
// All Collector methods are nil-safe so deeply nested pipeline code can emit
// warnings without caring whether anyone is listening.
package warnings

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Kind classifies a warning.
type Kind string

const (
	// KindDroppedRows reports rows removed for missing required values.
	KindDroppedRows Kind = "dropped_rows"

	// KindDegenerateGroup reports a group skipped because it has too few
	// points for the requested statistic.
	KindDegenerateGroup Kind = "degenerate_group"

	// KindOverlap reports overlapping x intervals fed to a collision
	// position (stack/dodge), which proceeds using sorted order.
	KindOverlap Kind = "overlap"

	// KindNonFinite reports non-finite values introduced by a coordinate
	// transform.
	KindNonFinite Kind = "non_finite"

	// KindGeneric covers everything else.
	KindGeneric Kind = "generic"
)

// Warning is one recorded condition.
type Warning struct {
	Kind    Kind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// Collector accumulates warnings for one build. It is not safe for
// concurrent use; each build owns its own collector.
type Collector struct {
	warnings []Warning
	logger   *log.Logger
}

// NewCollector returns an empty collector. logger may be nil; when set,
// every warning is also logged at warn level as it is recorded.
func NewCollector(logger *log.Logger) *Collector {
	return &Collector{logger: logger}
}

// Warnf records a formatted warning of the given kind.
func (c *Collector) Warnf(kind Kind, format string, args ...any) {
	if c == nil {
		return
	}
	w := Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
	c.warnings = append(c.warnings, w)
	if c.logger != nil {
		c.logger.Warn(w.Message, "kind", string(w.Kind))
	}
}

// All returns the recorded warnings in order. The returned slice is a copy.
func (c *Collector) All() []Warning {
	if c == nil {
		return nil
	}
	return append([]Warning(nil), c.warnings...)
}

// Len returns the number of recorded warnings.
func (c *Collector) Len() int {
	if c == nil {
		return 0
	}
	return len(c.warnings)
}

// HasKind reports whether any warning of the given kind was recorded.
func (c *Collector) HasKind(kind Kind) bool {
	if c == nil {
		return false
	}
	for _, w := range c.warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}
