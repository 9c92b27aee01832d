package scale

import (
	"fmt"
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// =============================================================================
// Discrete Color Scale
// =============================================================================

// DiscreteColor maps levels to evenly spaced hues, in the manner of the
// conventional categorical hue palette.
type DiscreteColor struct {
	discreteBase
}

// NewDiscreteColor returns an untrained discrete color scale.
func NewDiscreteColor(aes string) *DiscreteColor {
	return &DiscreteColor{discreteBase: discreteBase{Aesthetic: aes, seen: map[string]bool{}}}
}

// MapDF replaces every listed column with hex color strings.
func (s *DiscreteColor) MapDF(df dataframe.DataFrame, columns []string, warn *warnings.Collector) dataframe.DataFrame {
	palette := HuePalette(len(s.Levels()))
	pos := make(map[string]string, len(s.Levels()))
	for i, lv := range s.Levels() {
		pos[lv] = palette[i]
	}
	out := df
	for _, name := range columns {
		if !out.Has(name) {
			continue
		}
		vals := out.Strings(name)
		mapped := make([]string, len(vals))
		dropped := 0
		for i, v := range vals {
			if c, ok := pos[v]; ok {
				mapped[i] = c
			} else if v != "" {
				dropped++
			}
		}
		if dropped > 0 {
			warn.Warnf(warnings.KindDroppedRows,
				"%d value(s) in %q are outside the %s scale levels and were set to NA",
				dropped, name, s.Aesthetic)
		}
		out = out.WithColumn(name, dataframe.Strings(mapped))
	}
	return out
}

// Clone returns an untrained copy with the same configuration.
func (s *DiscreteColor) Clone() Scale {
	c := NewDiscreteColor(s.Aesthetic)
	c.DeclaredLevels = append([]string(nil), s.DeclaredLevels...)
	return c
}

// HuePalette returns n hex colors with evenly spaced hues at fixed
// saturation and lightness.
func HuePalette(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		h := 15 + 360*float64(i)/float64(n)
		out[i] = hslToHex(math.Mod(h, 360), 0.65, 0.55)
	}
	return out
}

// =============================================================================
// Continuous Color Scale
// =============================================================================

// ContinuousColor maps a continuous domain onto a two-color gradient.
type ContinuousColor struct {
	Continuous

	// Low and High are the gradient endpoints as hex colors. Zero values
	// default to a dark-to-light blue gradient.
	Low, High string
}

// NewContinuousColor returns an untrained continuous color scale.
func NewContinuousColor(aes string) *ContinuousColor {
	return &ContinuousColor{
		Continuous: Continuous{Aesthetic: aes, Trans: TransIdentity, min: math.NaN(), max: math.NaN()},
		Low:        "#132B43",
		High:       "#56B1F7",
	}
}

// MapDF replaces every listed column with hex colors interpolated between
// Low and High over the trained domain. Non-finite values map to NA.
func (s *ContinuousColor) MapDF(df dataframe.DataFrame, columns []string, warn *warnings.Collector) dataframe.DataFrame {
	lo, hi := s.Range()
	out := df
	for _, name := range columns {
		if !out.Has(name) {
			continue
		}
		vals := out.Floats(name)
		mapped := make([]string, len(vals))
		for i, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			t := 0.5
			if hi > lo {
				t = (v - lo) / (hi - lo)
			}
			mapped[i] = lerpHex(s.Low, s.High, clamp01(t))
		}
		out = out.WithColumn(name, dataframe.Strings(mapped))
	}
	return out
}

// Clone returns an untrained copy with the same configuration.
func (s *ContinuousColor) Clone() Scale {
	c := NewContinuousColor(s.Aesthetic)
	c.Trans = s.Trans
	c.Low, c.High = s.Low, s.High
	if s.Limits != nil {
		lim := *s.Limits
		c.Limits = &lim
	}
	return c
}

// =============================================================================
// Color Helpers
// =============================================================================

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func lerpHex(low, high string, t float64) string {
	lr, lg, lb := parseHex(low)
	hr, hg, hb := parseHex(high)
	r := lr + (hr-lr)*t
	g := lg + (hg-lg)*t
	b := lb + (hb-lb)*t
	return fmt.Sprintf("#%02X%02X%02X", int(math.Round(r)), int(math.Round(g)), int(math.Round(b)))
}

func parseHex(s string) (r, g, b float64) {
	var ri, gi, bi int
	fmt.Sscanf(s, "#%02x%02x%02x", &ri, &gi, &bi)
	return float64(ri), float64(gi), float64(bi)
}

func hslToHex(h, s, l float64) string {
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))
	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	m := l - c/2
	to := func(v float64) int { return int(math.Round(255 * (v + m))) }
	return fmt.Sprintf("#%02X%02X%02X", to(r), to(g), to(b))
}
