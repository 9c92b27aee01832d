package facet

import (
	"math"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
)

// Wrap lays a 1d sequence of panels out into a 2d grid.
type Wrap struct {
	// Variables are the faceting variables, in order.
	Variables []string

	// NRow and NCol fix one or both grid dimensions. Zero means
	// derived from the panel count.
	NRow int
	NCol int

	// Dir fills the grid horizontally ("h", the default) or
	// vertically ("v").
	Dir string

	// AsTable places the first panel in the top row. When false the
	// first panel sits in the bottom row.
	AsTable bool

	// FreeX and FreeY give every panel its own x or y scale.
	FreeX bool
	FreeY bool
}

// NewWrap returns a wrap facet with the default table layout.
func NewWrap(vars ...string) *Wrap {
	return &Wrap{Variables: vars, Dir: "h", AsTable: true}
}

func (w *Wrap) Vars() []string { return w.Variables }

func (w *Wrap) Free() FreeScales { return FreeScales{X: w.FreeX, Y: w.FreeY} }

func (w *Wrap) ComputeLayout(datas []dataframe.DataFrame) (Layout, error) {
	combos, err := combineVars(datas, w.Variables)
	if err != nil {
		return Layout{}, err
	}
	n := combos.NRows()

	nrow, ncol, err := wrapDims(n, w.NRow, w.NCol)
	if err != nil {
		return Layout{}, err
	}

	vars := panelVars(combos, w.Variables)
	panels := make([]Panel, n)
	for i := 0; i < n; i++ {
		var row, col int
		if w.Dir == "v" {
			col = i / nrow
			row = i % nrow
		} else {
			row = i / ncol
			col = i % ncol
		}
		if !w.AsTable {
			row = nrow - 1 - row
		}

		p := Panel{
			Panel:  i + 1,
			Row:    row + 1,
			Col:    col + 1,
			Vars:   vars[i],
			ScaleX: 1,
			ScaleY: 1,
		}
		if w.FreeX {
			p.ScaleX = i + 1
		}
		if w.FreeY {
			p.ScaleY = i + 1
		}
		panels[i] = p
	}

	return Layout{Panels: panels, NRow: nrow, NCol: ncol, Vars: w.Variables}, nil
}

// wrapDims resolves the grid dimensions for n panels.
func wrapDims(n, nrow, ncol int) (int, int, error) {
	switch {
	case nrow == 0 && ncol == 0:
		nrow, ncol = n2mfrow(n)
	case nrow == 0:
		nrow = ceilDiv(n, ncol)
	case ncol == 0:
		ncol = ceilDiv(n, nrow)
	}
	if nrow*ncol < n {
		return 0, 0, errors.New(errors.ErrCodeInvalidFacet,
			"%d panels do not fit in a %d x %d grid", n, nrow, ncol)
	}
	return nrow, ncol, nil
}

// n2mfrow picks a sensible grid shape for n panels, growing column
// count with n and preferring taller grids.
func n2mfrow(n int) (nrow, ncol int) {
	switch {
	case n <= 3:
		return n, 1
	case n <= 6:
		return (n + 1) / 2, 2
	case n <= 12:
		return (n + 2) / 3, 3
	default:
		nrow = int(math.Ceil(math.Sqrt(float64(n))))
		return nrow, ceilDiv(n, nrow)
	}
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
