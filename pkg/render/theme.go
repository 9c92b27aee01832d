package render

// Theme controls the non-data ink of a rendered plot.
type Theme struct {
	PanelFill     string  // Panel background color
	GridMajor     string  // Major gridline color
	GridWidth     float64 // Gridline stroke width
	StripFill     string  // Facet strip background
	StripText     string  // Facet strip text color
	AxisText      string  // Tick label color
	TitleText     string  // Title and axis label color
	FontFamily    string  // Font for all text
	AxisFontSize  float64 // Tick label size in px
	LabelFontSize float64 // Axis label size in px
	TitleFontSize float64 // Title size in px
}

// DefaultTheme is the grey-panel look: light grey backgrounds with white
// gridlines.
func DefaultTheme() Theme {
	return Theme{
		PanelFill:     "#EBEBEB",
		GridMajor:     "#FFFFFF",
		GridWidth:     1.0,
		StripFill:     "#D9D9D9",
		StripText:     "#1A1A1A",
		AxisText:      "#4D4D4D",
		TitleText:     "#000000",
		FontFamily:    "Helvetica, Arial, sans-serif",
		AxisFontSize:  9,
		LabelFontSize: 11,
		TitleFontSize: 14,
	}
}

// MinimalTheme drops the panel background and draws grey gridlines on
// white.
func MinimalTheme() Theme {
	t := DefaultTheme()
	t.PanelFill = "none"
	t.GridMajor = "#E0E0E0"
	t.StripFill = "none"
	return t
}
