package scale

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// ShapePalette and LinetypePalette are the default discrete palettes for
// the shape and linetype aesthetics.
var (
	ShapePalette    = []string{"circle", "triangle", "square", "plus", "cross", "diamond"}
	LinetypePalette = []string{"solid", "dashed", "dotted", "dotdash", "longdash", "twodash"}
)

// DiscretePalette maps levels onto a fixed list of values.
type DiscretePalette struct {
	discreteBase

	// Values are the palette entries, assigned to levels in order.
	Values []string
}

// NewDiscretePalette returns an untrained palette scale.
func NewDiscretePalette(aes string, values []string) *DiscretePalette {
	return &DiscretePalette{
		discreteBase: discreteBase{Aesthetic: aes, seen: map[string]bool{}},
		Values:       values,
	}
}

// MapDF replaces every listed column with palette values. Levels beyond
// the palette become NA, reported through warn.
func (s *DiscretePalette) MapDF(df dataframe.DataFrame, columns []string, warn *warnings.Collector) dataframe.DataFrame {
	byLevel := make(map[string]string, len(s.Levels()))
	exhausted := false
	for i, lv := range s.Levels() {
		if i >= len(s.Values) {
			exhausted = true
			break
		}
		byLevel[lv] = s.Values[i]
	}
	if exhausted {
		warn.Warnf(warnings.KindDroppedRows,
			"the %s scale has %d levels but only %d palette values",
			s.Aesthetic, len(s.Levels()), len(s.Values))
	}

	out := df
	for _, name := range columns {
		if !out.Has(name) {
			continue
		}
		vals := out.Strings(name)
		mapped := make([]string, len(vals))
		for i, v := range vals {
			mapped[i] = byLevel[v]
		}
		out = out.WithColumn(name, dataframe.Strings(mapped))
	}
	return out
}

// Clone returns an untrained copy with the same configuration.
func (s *DiscretePalette) Clone() Scale {
	c := NewDiscretePalette(s.Aesthetic, append([]string(nil), s.Values...))
	c.DeclaredLevels = append([]string(nil), s.DeclaredLevels...)
	return c
}

// ContinuousRange maps a continuous domain onto an output interval, used
// for the size and alpha aesthetics.
type ContinuousRange struct {
	Continuous

	// To is the output interval.
	To [2]float64

	// Sqrt maps through the square root, so the output is proportional
	// to area rather than radius.
	Sqrt bool
}

// NewContinuousRange returns an untrained range scale.
func NewContinuousRange(aes string, to [2]float64, sqrt bool) *ContinuousRange {
	return &ContinuousRange{
		Continuous: Continuous{Aesthetic: aes, Trans: TransIdentity, min: math.NaN(), max: math.NaN()},
		To:         to,
		Sqrt:       sqrt,
	}
}

// MapDF rescales every listed column from the trained domain onto To.
func (s *ContinuousRange) MapDF(df dataframe.DataFrame, columns []string, warn *warnings.Collector) dataframe.DataFrame {
	lo, hi := s.Range()
	out := df
	for _, name := range columns {
		if !out.Has(name) {
			continue
		}
		vals := append([]float64(nil), out.Floats(name)...)
		for i, v := range vals {
			if math.IsNaN(v) {
				continue
			}
			t := 0.5
			if hi > lo {
				t = (v - lo) / (hi - lo)
			}
			if s.Sqrt {
				t = math.Sqrt(t)
			}
			vals[i] = s.To[0] + t*(s.To[1]-s.To[0])
		}
		out = out.WithColumn(name, dataframe.Floats(vals))
	}
	return out
}

// Clone returns an untrained copy with the same configuration.
func (s *ContinuousRange) Clone() Scale {
	c := NewContinuousRange(s.Aesthetic, s.To, s.Sqrt)
	c.Trans = s.Trans
	if s.Limits != nil {
		lim := *s.Limits
		c.Limits = &lim
	}
	return c
}
