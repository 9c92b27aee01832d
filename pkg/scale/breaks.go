package scale

import (
	"math"
	"strconv"

	moremath "github.com/aclements/go-moremath/scale"
)

// LinearBreaks returns at most max nicely spaced break positions covering
// [lo, hi]. Break spacing is m*10^k for m in {1, 2, 5}; the densest such
// spacing that fits the budget wins.
func LinearBreaks(lo, hi float64, max int) []float64 {
	if max <= 0 {
		max = 5
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return []float64{lo}
	}

	t := linearTicker{lo: lo, hi: hi}
	opts := moremath.TickOptions{Max: max}
	guess := 3 * int(math.Floor(math.Log10(hi-lo)))
	level, ok := opts.FindLevel(t, guess)
	if !ok {
		return []float64{lo, hi}
	}
	return t.TicksAtLevel(level).([]float64)
}

// linearTicker exposes the 1-2-5 spacing levels to the tick level
// search.
type linearTicker struct {
	lo, hi float64
}

func (t linearTicker) CountTicks(level int) int {
	s := spacingAtLevel(level)
	return int(math.Floor(t.hi/s)) - int(math.Ceil(t.lo/s)) + 1
}

func (t linearTicker) TicksAtLevel(level int) interface{} {
	s := spacingAtLevel(level)
	first := math.Ceil(t.lo / s)
	last := math.Floor(t.hi / s)
	out := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		out = append(out, i*s)
	}
	return out
}

// spacingAtLevel decodes a tick level into a break spacing. Levels step
// through the 1-2-5 sequence: level 3k is 10^k, 3k+1 is 2*10^k, 3k+2 is
// 5*10^k.
func spacingAtLevel(level int) float64 {
	k := level / 3
	m := level % 3
	if m < 0 {
		m += 3
		k--
	}
	mult := [3]float64{1, 2, 5}[m]
	return mult * math.Pow(10, float64(k))
}

// FormatBreaks renders break positions as labels, applying the inverse of
// trans so labels show data-space values.
func FormatBreaks(breaks []float64, trans Transform) []string {
	labels := make([]string, len(breaks))
	for i, b := range breaks {
		v := b
		if trans.Inverse != nil {
			v = trans.Inverse(b)
		}
		labels[i] = formatFloat(v)
	}
	return labels
}

func formatFloat(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
