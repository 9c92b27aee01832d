package position

import (
	"math/rand"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/warnings"
)

const (
	colPanel = "PANEL"
	colGroup = "group"
)

// Kind identifies a position adjustment.
type Kind string

const (
	KindIdentity Kind = "identity"
	KindStack    Kind = "stack"
	KindFill     Kind = "fill"
	KindDodge    Kind = "dodge"
	KindDodge2   Kind = "dodge2"
	KindJitter   Kind = "jitter"
	KindNudge    Kind = "nudge"
)

// Position rewrites the position columns of one panel's data.
type Position interface {
	// Kind returns the adjustment's registered kind.
	Kind() Kind

	// ComputePanel adjusts the rows of a single panel.
	ComputePanel(df dataframe.DataFrame, warn *warnings.Collector) (dataframe.DataFrame, error)
}

// Params collects the tunable options shared by the position
// constructors. Each adjustment reads only the fields it understands.
type Params struct {
	// X and Y are the nudge offsets.
	X float64
	Y float64

	// Width and Height control jitter amounts and dodge widths. For
	// jitter, zero means 40% of the data resolution.
	Width  float64
	Height float64

	// VJust places the stacked value within its (ymin, ymax) interval.
	// Nil means 1, the top of the interval.
	VJust *float64

	// Padding is the gap dodge2 leaves between elements. Nil means 0.1.
	Padding *float64

	// Preserve selects the dodge2 width split. Empty divides each
	// cluster evenly; "total" keeps members proportional to their own
	// widths.
	Preserve string

	// Reverse flips the within-location ordering of stack and dodge.
	Reverse bool

	// Seed seeds the jitter random source. Nil means a fixed default,
	// so repeated builds of the same plot jitter identically.
	Seed *int64
}

// New returns the position adjustment registered under kind, configured
// with p.
func New(kind Kind, p Params) (Position, error) {
	vjust := 1.0
	if p.VJust != nil {
		vjust = *p.VJust
	}
	padding := 0.1
	if p.Padding != nil {
		padding = *p.Padding
	}

	switch kind {
	case KindIdentity:
		return IdentityPosition{}, nil
	case KindStack:
		return StackPosition{VJust: vjust, Reverse: p.Reverse}, nil
	case KindFill:
		return StackPosition{VJust: vjust, Fill: true, Reverse: p.Reverse}, nil
	case KindDodge:
		return DodgePosition{Width: p.Width, Reverse: p.Reverse}, nil
	case KindDodge2:
		return Dodge2Position{Width: p.Width, Padding: padding, Preserve: p.Preserve, Reverse: p.Reverse}, nil
	case KindJitter:
		return JitterPosition{Width: p.Width, Height: p.Height, Seed: p.Seed}, nil
	case KindNudge:
		return NudgePosition{X: p.X, Y: p.Y}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnknownPosition, "unknown position %q", kind)
	}
}

// ComputeLayer applies pos to each panel of one layer's data.
func ComputeLayer(df dataframe.DataFrame, pos Position, warn *warnings.Collector) (dataframe.DataFrame, error) {
	if df.NRows() == 0 {
		return df, nil
	}
	if _, ok := pos.(IdentityPosition); ok {
		return df, nil
	}
	var parts []dataframe.DataFrame
	for _, panel := range df.GroupBy(colPanel) {
		out, err := pos.ComputePanel(df.Take(panel.Rows), warn)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		parts = append(parts, out)
	}
	return dataframe.Concat(parts...), nil
}

// IdentityPosition leaves data untouched.
type IdentityPosition struct{}

func (IdentityPosition) Kind() Kind { return KindIdentity }

func (IdentityPosition) ComputePanel(df dataframe.DataFrame, _ *warnings.Collector) (dataframe.DataFrame, error) {
	return df, nil
}

// NudgePosition shifts positions by a fixed offset.
type NudgePosition struct {
	X float64
	Y float64
}

func (NudgePosition) Kind() Kind { return KindNudge }

func (p NudgePosition) ComputePanel(df dataframe.DataFrame, _ *warnings.Collector) (dataframe.DataFrame, error) {
	out := df
	for _, name := range []string{"x", "xmin", "xmax", "xend"} {
		out = shiftColumn(out, name, p.X)
	}
	for _, name := range []string{"y", "ymin", "ymax", "yend"} {
		out = shiftColumn(out, name, p.Y)
	}
	return out, nil
}

// JitterPosition adds uniform random noise to x and y.
type JitterPosition struct {
	// Width and Height are the maximum absolute offsets. Zero means
	// 40% of the resolution of the data.
	Width  float64
	Height float64

	// Seed seeds the random source. Nil means a fixed default.
	Seed *int64
}

func (JitterPosition) Kind() Kind { return KindJitter }

func (p JitterPosition) ComputePanel(df dataframe.DataFrame, _ *warnings.Collector) (dataframe.DataFrame, error) {
	seed := int64(42)
	if p.Seed != nil {
		seed = *p.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	out := df
	out = jitterColumn(out, "x", p.Width, rng)
	out = jitterColumn(out, "y", p.Height, rng)
	return out, nil
}

func jitterColumn(df dataframe.DataFrame, name string, amount float64, rng *rand.Rand) dataframe.DataFrame {
	if !df.Has(name) {
		return df
	}
	vals := append([]float64(nil), df.Floats(name)...)
	if amount == 0 {
		amount = 0.4 * dataframe.Resolution(vals, false)
	}
	for i := range vals {
		vals[i] += amount * (2*rng.Float64() - 1)
	}
	return df.WithColumn(name, dataframe.Floats(vals))
}

func shiftColumn(df dataframe.DataFrame, name string, by float64) dataframe.DataFrame {
	if by == 0 || !df.Has(name) {
		return df
	}
	vals := append([]float64(nil), df.Floats(name)...)
	for i := range vals {
		vals[i] += by
	}
	return df.WithColumn(name, dataframe.Floats(vals))
}
