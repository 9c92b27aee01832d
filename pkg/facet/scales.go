package facet

import (
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/warnings"
)

// PanelScales owns the position scale instances of a layout: one x scale
// per x slot and one y scale per y slot, cloned from the plot's
// prototype scales.
type PanelScales struct {
	layout Layout
	x      []scale.Scale
	y      []scale.Scale
}

// NewPanelScales clones protoX and protoY into one instance per scale
// slot of the layout.
func NewPanelScales(l Layout, protoX, protoY scale.Scale) *PanelScales {
	ps := &PanelScales{layout: l}
	for i := 0; i < l.NScaleX(); i++ {
		ps.x = append(ps.x, protoX.Clone())
	}
	for i := 0; i < l.NScaleY(); i++ {
		ps.y = append(ps.y, protoY.Clone())
	}
	return ps
}

// XFor returns the x scale of the given panel.
func (ps *PanelScales) XFor(panel int) scale.Scale {
	return ps.x[ps.slot(panel, true)]
}

// YFor returns the y scale of the given panel.
func (ps *PanelScales) YFor(panel int) scale.Scale {
	return ps.y[ps.slot(panel, false)]
}

func (ps *PanelScales) slot(panel int, x bool) int {
	for _, p := range ps.layout.Panels {
		if p.Panel == panel {
			if x {
				return p.ScaleX - 1
			}
			return p.ScaleY - 1
		}
	}
	return 0
}

// TrainDF trains each panel's scales on the position columns of its rows.
func (ps *PanelScales) TrainDF(df dataframe.DataFrame) {
	ps.each(df, func(pdf dataframe.DataFrame, x, y scale.Scale) dataframe.DataFrame {
		x.TrainDF(pdf, positionColumns(pdf, scale.XAesthetics))
		y.TrainDF(pdf, positionColumns(pdf, scale.YAesthetics))
		return pdf
	})
}

// MapDF maps the position columns of every panel's rows through that
// panel's scales and returns the reassembled table.
func (ps *PanelScales) MapDF(df dataframe.DataFrame, warn *warnings.Collector) dataframe.DataFrame {
	return ps.each(df, func(pdf dataframe.DataFrame, x, y scale.Scale) dataframe.DataFrame {
		pdf = x.MapDF(pdf, positionColumns(pdf, scale.XAesthetics), warn)
		return y.MapDF(pdf, positionColumns(pdf, scale.YAesthetics), warn)
	})
}

// ResetContinuous clears the trained state of the continuous scale
// instances. Discrete level sets survive, since the adjusted data no
// longer carries the original level strings.
func (ps *PanelScales) ResetContinuous() {
	for _, s := range ps.x {
		if c, ok := s.(*scale.Continuous); ok {
			c.Reset()
		}
	}
	for _, s := range ps.y {
		if c, ok := s.(*scale.Continuous); ok {
			c.Reset()
		}
	}
}

// Reset clears the trained state of every scale instance.
func (ps *PanelScales) Reset() {
	for _, s := range ps.x {
		s.Reset()
	}
	for _, s := range ps.y {
		s.Reset()
	}
}

func (ps *PanelScales) each(df dataframe.DataFrame, f func(pdf dataframe.DataFrame, x, y scale.Scale) dataframe.DataFrame) dataframe.DataFrame {
	if df.NRows() == 0 || !df.Has(colPanel) {
		return df
	}
	var parts []dataframe.DataFrame
	for _, grp := range df.GroupBy(colPanel) {
		pdf := df.Take(grp.Rows)
		panel := int(pdf.Floats(colPanel)[0])
		parts = append(parts, f(pdf, ps.XFor(panel), ps.YFor(panel)))
	}
	return dataframe.Concat(parts...)
}

// positionColumns lists the columns of df named by a position aesthetic,
// including stat-suffixed variants like xmin and ymax.
func positionColumns(df dataframe.DataFrame, aesthetics []string) []string {
	var out []string
	for _, name := range aesthetics {
		if df.Has(name) {
			out = append(out, name)
		}
	}
	return out
}
