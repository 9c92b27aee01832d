package scale

import (
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Position-aesthetic column names, in the order they are mapped. Every
// column named here shares its base aesthetic's scale.
var (
	XAesthetics = []string{"x", "xmin", "xmax", "xend", "xintercept"}
	YAesthetics = []string{"y", "ymin", "ymax", "yend", "yintercept"}
)

// Scale is a trained mapping from raw aesthetic values to renderable
// values for one aesthetic.
type Scale interface {
	// Aes returns the base aesthetic this scale serves ("x", "y",
	// "color", ...).
	Aes() string

	// Discrete reports whether the scale holds an ordered level set
	// rather than a continuous range.
	Discrete() bool

	// TrainDF extends the domain with the values of every listed column
	// present in df.
	TrainDF(df dataframe.DataFrame, columns []string)

	// MapDF maps every listed column present in df through the scale and
	// returns the new table.
	MapDF(df dataframe.DataFrame, columns []string, warn *warnings.Collector) dataframe.DataFrame

	// Reset clears the trained domain so the scale can be retrained
	// after position adjustment.
	Reset()

	// Clone returns an untrained copy with the same configuration. Free
	// facet scales are instantiated by cloning the prototype per panel.
	Clone() Scale
}

// PositionAesthetics returns the derived column names sharing aes's scale.
func PositionAesthetics(aes string) []string {
	switch aes {
	case "x":
		return XAesthetics
	case "y":
		return YAesthetics
	default:
		return []string{aes}
	}
}
