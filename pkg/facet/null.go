package facet

import "github.com/plotgram/plotgram/pkg/dataframe"

// Null is the single-panel facet.
type Null struct{}

func (Null) Vars() []string   { return nil }
func (Null) Free() FreeScales { return FreeScales{} }

func (Null) ComputeLayout([]dataframe.DataFrame) (Layout, error) {
	return Layout{
		Panels: []Panel{{Panel: 1, Row: 1, Col: 1, ScaleX: 1, ScaleY: 1}},
		NRow:   1,
		NCol:   1,
	}, nil
}
