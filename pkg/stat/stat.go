package stat

import (
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Kind identifies a statistical transformation.
type Kind string

const (
	KindIdentity Kind = "identity"
	KindCount    Kind = "count"
	KindBin      Kind = "bin"
	KindDensity  Kind = "density"
	KindSummary  Kind = "summary"
)

// Stat transforms the data of a single group into a derived table.
type Stat interface {
	// Kind returns the stat's registered kind.
	Kind() Kind

	// RequiredAes lists aesthetics that must be present in the data.
	RequiredAes() []string

	// DefaultAes maps aesthetics to computed columns that should be
	// carried into the aesthetic after the stat runs, unless the user
	// mapped them explicitly.
	DefaultAes() map[string]string

	// ComputeGroup transforms the rows of one (panel, group) partition.
	ComputeGroup(df dataframe.DataFrame, ctx Context, warn *warnings.Collector) (dataframe.DataFrame, error)
}

// Context carries panel-level information into ComputeGroup.
type Context struct {
	// XRange is the trained x scale range, when known. Stats that
	// discretize x (bin, density) anchor their output grid on it so
	// groups within a panel share break positions.
	XRange *[2]float64
}

// Params collects the tunable options shared by the stat constructors.
// Each stat reads only the fields it understands.
type Params struct {
	// Width is the bar width used by the count stat. Zero means 0.9
	// times the x resolution.
	Width float64

	// Bins is the number of bins for the bin stat. Zero means 30.
	Bins int

	// Binwidth overrides the computed bin width when positive.
	Binwidth float64

	// Boundary shifts bin edges so one edge sits at the given value.
	Boundary *float64

	// Adjust scales the computed density bandwidth. Zero means 1.
	Adjust float64

	// N is the number of evaluation points for the density stat.
	// Zero means 512.
	N int

	// FunY names the summary function for y: "mean", "median", "sum",
	// "min" or "max". Empty means "mean".
	FunY string
}

// New returns the stat registered under kind, configured with p.
func New(kind Kind, p Params) (Stat, error) {
	switch kind {
	case KindIdentity:
		return IdentityStat{}, nil
	case KindCount:
		return CountStat{Width: p.Width}, nil
	case KindBin:
		return BinStat{Bins: p.Bins, Binwidth: p.Binwidth, Boundary: p.Boundary}, nil
	case KindDensity:
		return DensityStat{Adjust: p.Adjust, N: p.N}, nil
	case KindSummary:
		return SummaryStat{FunY: p.FunY}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnknownStat, "unknown stat %q", kind)
	}
}
