package scale

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Continuous is a scale over a continuous numeric domain. The domain is a
// running (min, max) pair in transformed space.
type Continuous struct {
	Aesthetic string
	Trans     Transform

	// Limits, when set, clips mapped values to [Limits[0], Limits[1]]
	// (in transformed space).
	Limits *[2]float64

	// Expand is the range expansion applied when panel parameters are
	// computed. Zero value means the default for the aesthetic.
	Expand Expansion

	min, max float64
	trained  bool
}

// NewContinuous returns an untrained continuous scale with an identity
// transform.
func NewContinuous(aes string) *Continuous {
	return &Continuous{Aesthetic: aes, Trans: TransIdentity, min: math.NaN(), max: math.NaN()}
}

func (s *Continuous) Aes() string    { return s.Aesthetic }
func (s *Continuous) Discrete() bool { return false }

// Train extends the running domain with values, ignoring non-finite
// entries. Values are expected to already be in transformed space.
func (s *Continuous) Train(values []float64) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if !s.trained {
			s.min, s.max, s.trained = v, v, true
			continue
		}
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
}

// Range returns the trained domain. Untrained scales return (NaN, NaN).
func (s *Continuous) Range() (min, max float64) {
	if !s.trained {
		return math.NaN(), math.NaN()
	}
	return s.min, s.max
}

// Trained reports whether any finite value has been trained.
func (s *Continuous) Trained() bool { return s.trained }

// TransformValues applies the scale transform to a copy of values.
func (s *Continuous) TransformValues(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.Trans.Apply(v)
	}
	return out
}

// Map maps already-transformed values onto the scale: values are clipped to
// the declared limits when present. Non-finite values pass through.
func (s *Continuous) Map(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if s.Limits != nil {
		lo, hi := s.Limits[0], s.Limits[1]
		for i, v := range out {
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				out[i] = lo
			} else if v > hi {
				out[i] = hi
			}
		}
	}
	return out
}

// TrainDF trains on every listed numeric column present in df.
func (s *Continuous) TrainDF(df dataframe.DataFrame, columns []string) {
	for _, name := range columns {
		if df.Has(name) {
			s.Train(df.Floats(name))
		}
	}
}

// MapDF maps every listed column present in df.
func (s *Continuous) MapDF(df dataframe.DataFrame, columns []string, warn *warnings.Collector) dataframe.DataFrame {
	out := df
	for _, name := range columns {
		if !out.Has(name) {
			continue
		}
		out = out.WithColumn(name, dataframe.Floats(s.Map(out.Floats(name))))
	}
	return out
}

// Reset clears the trained domain; the configuration survives.
func (s *Continuous) Reset() {
	s.min, s.max = math.NaN(), math.NaN()
	s.trained = false
}

// Clone returns an untrained copy with the same configuration.
func (s *Continuous) Clone() Scale {
	c := *s
	c.Reset()
	return &c
}

// Breaks returns at most max break positions covering the trained domain,
// in transformed space.
func (s *Continuous) Breaks(max int) []float64 {
	if !s.trained {
		return nil
	}
	lo, hi := s.min, s.max
	if s.Limits != nil {
		lo, hi = s.Limits[0], s.Limits[1]
	}
	return LinearBreaks(lo, hi, max)
}

// =============================================================================
// Range Expansion
// =============================================================================

// Expansion widens a panel range so data does not touch the panel edge,
// symmetric on both sides: each side grows by Mul*size + Add.
type Expansion struct {
	Mul float64
	Add float64
}

// defaultContinuousExpansion mirrors the conventional 5% multiplicative
// expansion for continuous position scales.
var defaultContinuousExpansion = Expansion{Mul: 0.05}

// defaultDiscreteExpansion mirrors the conventional 0.6-unit additive
// expansion for discrete position scales.
var defaultDiscreteExpansion = Expansion{Add: 0.6}

// Apply expands the range [lo, hi].
func (e Expansion) Apply(lo, hi float64) (float64, float64) {
	size := hi - lo
	pad := e.Mul*size + e.Add
	return lo - pad, hi + pad
}

// ExpandedRange returns the trained domain grown by the scale's expansion
// (or the continuous default). Degenerate and untrained domains fall back
// to [-1, 1], so every panel gets a usable range.
func (s *Continuous) ExpandedRange() (float64, float64) {
	if !s.trained {
		return -1, 1
	}
	e := s.Expand
	if e == (Expansion{}) {
		e = defaultContinuousExpansion
	}
	lo, hi := s.Range()
	if s.Limits != nil {
		lo, hi = s.Limits[0], s.Limits[1]
	}
	if lo == hi {
		e = Expansion{Add: 0.5}
	}
	return e.Apply(lo, hi)
}
