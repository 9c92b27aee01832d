package scale

import (
	"math"

	"github.com/plotgram/plotgram/pkg/errors"
)

// Transform is a monotonic function applied to continuous values before
// training and mapping. Domains are held in transformed space; labels are
// produced by inverting breaks back to data space.
type Transform struct {
	Name    string
	Apply   func(float64) float64
	Inverse func(float64) float64
}

var (
	// TransIdentity leaves values untouched.
	TransIdentity = Transform{
		Name:    "identity",
		Apply:   func(x float64) float64 { return x },
		Inverse: func(x float64) float64 { return x },
	}

	// TransLog10 maps x to log10(x). Non-positive values become NaN.
	TransLog10 = Transform{
		Name:    "log10",
		Apply:   math.Log10,
		Inverse: func(x float64) float64 { return math.Pow(10, x) },
	}

	// TransSqrt maps x to sqrt(x). Negative values become NaN.
	TransSqrt = Transform{
		Name:    "sqrt",
		Apply:   math.Sqrt,
		Inverse: func(x float64) float64 { return x * x },
	}

	// TransReverse negates values, reversing axis direction.
	TransReverse = Transform{
		Name:    "reverse",
		Apply:   func(x float64) float64 { return -x },
		Inverse: func(x float64) float64 { return -x },
	}
)

// TransformByName resolves a transform from its name. The empty name means
// identity.
func TransformByName(name string) (Transform, error) {
	switch name {
	case "", "identity":
		return TransIdentity, nil
	case "log10":
		return TransLog10, nil
	case "sqrt":
		return TransSqrt, nil
	case "reverse":
		return TransReverse, nil
	default:
		return Transform{}, errors.New(errors.ErrCodeUnknownScale, "unknown transform %q", name)
	}
}
