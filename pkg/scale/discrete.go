package scale

import (
	"math"
	"sort"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Discrete is a scale over an ordered set of string levels. Position
// aesthetics map levels onto the integer positions 1..n.
type Discrete struct {
	Aesthetic string

	// DeclaredLevels fixes the level set and order. When empty, levels
	// are collected during training in sorted order (factor columns keep
	// their declared level order).
	DeclaredLevels []string

	levels []string
	seen   map[string]bool
}

// discreteBase is the embedding alias for scales built on Discrete. A
// field literally named Discrete would shadow the promoted Discrete()
// method and break the Scale interface.
type discreteBase = Discrete

// NewDiscrete returns an untrained discrete scale.
func NewDiscrete(aes string) *Discrete {
	return &Discrete{Aesthetic: aes, seen: map[string]bool{}}
}

func (s *Discrete) Aes() string    { return s.Aesthetic }
func (s *Discrete) Discrete() bool { return true }

// Train adds values to the level set. NA values (empty strings) are
// skipped. Unless levels were declared, the merged set is kept sorted.
func (s *Discrete) Train(values []string, ordered bool) {
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	changed := false
	for _, v := range values {
		if v == "" || s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.levels = append(s.levels, v)
		changed = true
	}
	if changed && !ordered && len(s.DeclaredLevels) == 0 {
		sort.Strings(s.levels)
	}
}

// Levels returns the trained level order: the declared levels when set,
// otherwise the collected ones.
func (s *Discrete) Levels() []string {
	if len(s.DeclaredLevels) > 0 {
		return s.DeclaredLevels
	}
	return s.levels
}

// Trained reports whether any level has been collected.
func (s *Discrete) Trained() bool { return len(s.Levels()) > 0 }

// Map maps values to 1-based level positions. Values outside the level set
// map to NaN.
func (s *Discrete) Map(values []string) []float64 {
	pos := make(map[string]int, len(s.Levels()))
	for i, lv := range s.Levels() {
		pos[lv] = i + 1
	}
	out := make([]float64, len(values))
	for i, v := range values {
		if p, ok := pos[v]; ok {
			out[i] = float64(p)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// TrainDF trains on every listed discrete column present in df. Factor
// columns contribute their levels in declared order.
func (s *Discrete) TrainDF(df dataframe.DataFrame, columns []string) {
	for _, name := range columns {
		if !df.Has(name) {
			continue
		}
		col := df.MustColumn(name)
		if !col.Kind().Discrete() {
			continue
		}
		if f, ok := col.(dataframe.Factor); ok {
			s.Train(f.Levels, true)
			continue
		}
		s.Train(df.Strings(name), false)
	}
}

// MapDF replaces every listed column with its 1-based level positions.
// Values outside the level set become NA, reported through warn.
func (s *Discrete) MapDF(df dataframe.DataFrame, columns []string, warn *warnings.Collector) dataframe.DataFrame {
	out := df
	for _, name := range columns {
		if !out.Has(name) {
			continue
		}
		if !out.MustColumn(name).Kind().Discrete() {
			continue
		}
		vals := out.Strings(name)
		mapped := s.Map(vals)
		dropped := 0
		for i, v := range mapped {
			if math.IsNaN(v) && vals[i] != "" {
				dropped++
			}
		}
		if dropped > 0 {
			warn.Warnf(warnings.KindDroppedRows,
				"%d value(s) in %q are outside the %s scale levels and were set to NA",
				dropped, name, s.Aesthetic)
		}
		out = out.WithColumn(name, dataframe.Floats(mapped))
	}
	return out
}

// Reset clears the collected levels; declared levels survive.
func (s *Discrete) Reset() {
	s.levels = nil
	s.seen = map[string]bool{}
}

// Clone returns an untrained copy with the same configuration.
func (s *Discrete) Clone() Scale {
	c := &Discrete{Aesthetic: s.Aesthetic, seen: map[string]bool{}}
	c.DeclaredLevels = append([]string(nil), s.DeclaredLevels...)
	return c
}

// ExpandedRange returns the position range covered by the levels grown by
// the discrete default expansion.
func (s *Discrete) ExpandedRange() (float64, float64) {
	n := len(s.Levels())
	if n == 0 {
		return -1, 1
	}
	return defaultDiscreteExpansion.Apply(1, float64(n))
}
