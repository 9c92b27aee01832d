// Package render turns built plots into visual outputs.
//
// # Overview
//
// This package contains the output side of the plotting pipeline. It
// provides:
//
//   - SVG rendering of built plots ([SVG])
//   - Generic format conversion (SVG to PDF/PNG)
//   - Visual theming ([Theme])
//
// # SVG Rendering
//
// [NewSVG] returns a renderer that writes a complete SVG document to an
// [io.Writer]. It implements the plot.Renderer interface, so a built plot
// draws itself into it:
//
//	built, err := plot.Build(ctx, p)
//	if err != nil {
//		return err
//	}
//	var buf bytes.Buffer
//	err = built.Draw(render.NewSVG(&buf, render.WithSize(800, 600)))
//
// The renderer lays out the panel grid from the plot's facet layout,
// draws panel backgrounds and gridlines from each panel's break
// positions, and then draws every layer's geometry in normalized panel
// coordinates.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg):
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Theming
//
// [Theme] controls panel backgrounds, gridline colors, text sizing, and
// fonts. [DefaultTheme] reproduces the familiar grey-panel look; pass a
// modified theme through [WithTheme] to restyle the output.
package render
