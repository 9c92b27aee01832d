package coord

import (
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Kind identifies a coordinate system.
type Kind string

const (
	KindCartesian Kind = "cartesian"
	KindFlip      Kind = "flip"
	KindTrans     Kind = "trans"
)

// PanelRanges holds one panel's drawing ranges and axis guides.
type PanelRanges struct {
	X [2]float64
	Y [2]float64

	XBreaks []float64
	YBreaks []float64
	XLabels []string
	YLabels []string
}

// Coord computes panel ranges from trained scales and transforms data
// into normalized panel space.
type Coord interface {
	// Kind returns the coordinate system's registered kind.
	Kind() Kind

	// PanelParams computes the drawing ranges of one panel from its
	// trained position scales.
	PanelParams(x, y scale.Scale) PanelRanges

	// Transform maps the position columns of df onto [0, 1] panel
	// fractions.
	Transform(df dataframe.DataFrame, pr PanelRanges, warn *warnings.Collector) dataframe.DataFrame

	// IsLinear reports whether straight lines survive the transform.
	// Paths drawn under a non-linear system are munched first.
	IsLinear() bool
}

// New returns the coordinate system registered under kind. The trans
// system needs its axis transforms and is built directly instead.
func New(kind Kind) (Coord, error) {
	switch kind {
	case KindCartesian:
		return Cartesian{}, nil
	case KindFlip:
		return Flip{}, nil
	case KindTrans:
		return Trans{X: scale.TransIdentity, Y: scale.TransIdentity}, nil
	default:
		return nil, errors.New(errors.ErrCodeUnknownCoord, "unknown coord %q", kind)
	}
}

// scaleRanges derives the panel range and guides for one axis.
func scaleRanges(s scale.Scale) (rng [2]float64, breaks []float64, labels []string) {
	switch sc := s.(type) {
	case *scale.Discrete:
		lo, hi := sc.ExpandedRange()
		rng = [2]float64{lo, hi}
		for i, lv := range sc.Levels() {
			breaks = append(breaks, float64(i+1))
			labels = append(labels, lv)
		}
	case *scale.Continuous:
		lo, hi := sc.ExpandedRange()
		rng = [2]float64{lo, hi}
		breaks = sc.Breaks(5)
		labels = scale.FormatBreaks(breaks, sc.Trans)
	default:
		rng = [2]float64{-1, 1}
	}
	return rng, breaks, labels
}
