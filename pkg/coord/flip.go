package coord

import (
	"strings"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// Flip is the cartesian system with the axes swapped.
type Flip struct{}

func (Flip) Kind() Kind     { return KindFlip }
func (Flip) IsLinear() bool { return true }

func (Flip) PanelParams(x, y scale.Scale) PanelRanges {
	pr := Cartesian{}.PanelParams(x, y)
	pr.X, pr.Y = pr.Y, pr.X
	pr.XBreaks, pr.YBreaks = pr.YBreaks, pr.XBreaks
	pr.XLabels, pr.YLabels = pr.YLabels, pr.XLabels
	return pr
}

func (Flip) Transform(df dataframe.DataFrame, pr PanelRanges, warn *warnings.Collector) dataframe.DataFrame {
	return Cartesian{}.Transform(FlipColumns(df), pr, warn)
}

// FlipColumns renames every x-prefixed position column to its y
// counterpart and the other way round. Applying it twice restores the
// original table.
func FlipColumns(df dataframe.DataFrame) dataframe.DataFrame {
	out := df
	for _, name := range df.Names() {
		flipped := flipName(name)
		if flipped == name {
			continue
		}
		// Swap through a temporary so x does not clobber y.
		if df.Has(flipped) {
			out = out.Rename(name, "\x00"+flipped)
		} else {
			out = out.Rename(name, flipped)
		}
	}
	for _, name := range out.Names() {
		if strings.HasPrefix(name, "\x00") {
			out = out.Rename(name, name[1:])
		}
	}
	return out
}

func flipName(name string) string {
	for _, pair := range [][2]string{
		{"x", "y"}, {"xmin", "ymin"}, {"xmax", "ymax"},
		{"xend", "yend"}, {"xintercept", "yintercept"},
	} {
		switch name {
		case pair[0]:
			return pair[1]
		case pair[1]:
			return pair[0]
		}
	}
	return name
}
