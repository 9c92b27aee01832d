package facet

import (
	"github.com/plotgram/plotgram/pkg/dataframe"
)

// Grid lays panels out on the cross product of row and column variables.
type Grid struct {
	// RowVars and ColVars split panels across grid rows and columns.
	// Either may be empty.
	RowVars []string
	ColVars []string

	// FreeX gives every grid column its own x scale; FreeY every grid
	// row its own y scale.
	FreeX bool
	FreeY bool
}

func (g *Grid) Vars() []string {
	return append(append([]string(nil), g.RowVars...), g.ColVars...)
}

func (g *Grid) Free() FreeScales { return FreeScales{X: g.FreeX, Y: g.FreeY} }

func (g *Grid) ComputeLayout(datas []dataframe.DataFrame) (Layout, error) {
	rowCombos, err := g.combos(datas, g.RowVars)
	if err != nil {
		return Layout{}, err
	}
	colCombos, err := g.combos(datas, g.ColVars)
	if err != nil {
		return Layout{}, err
	}

	nrow, ncol := len(rowCombos), len(colCombos)
	panels := make([]Panel, 0, nrow*ncol)
	for r := 0; r < nrow; r++ {
		for c := 0; c < ncol; c++ {
			vars := map[string]string{}
			for name, val := range rowCombos[r] {
				vars[name] = val
			}
			for name, val := range colCombos[c] {
				vars[name] = val
			}

			p := Panel{
				Panel:  len(panels) + 1,
				Row:    r + 1,
				Col:    c + 1,
				Vars:   vars,
				ScaleX: 1,
				ScaleY: 1,
			}
			if g.FreeX {
				p.ScaleX = c + 1
			}
			if g.FreeY {
				p.ScaleY = r + 1
			}
			panels = append(panels, p)
		}
	}

	return Layout{Panels: panels, NRow: nrow, NCol: ncol, Vars: g.Vars()}, nil
}

// combos returns the distinct variable combinations for one grid axis.
// An axis without variables has a single unconstrained combination.
func (g *Grid) combos(datas []dataframe.DataFrame, vars []string) ([]map[string]string, error) {
	if len(vars) == 0 {
		return []map[string]string{{}}, nil
	}
	combos, err := combineVars(datas, vars)
	if err != nil {
		return nil, err
	}
	return panelVars(combos, vars), nil
}
