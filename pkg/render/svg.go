package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/plotgram/plotgram/pkg/coord"
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/geom"
	"github.com/plotgram/plotgram/pkg/observability"
	"github.com/plotgram/plotgram/pkg/plot"
)

// SVGOption configures the SVG renderer.
type SVGOption func(*SVG)

// SVG renders built plots as standalone SVG documents.
type SVG struct {
	w      io.Writer
	width  float64
	height float64
	theme  Theme
}

func WithSize(width, height float64) SVGOption {
	return func(r *SVG) { r.width, r.height = width, height }
}

func WithTheme(t Theme) SVGOption {
	return func(r *SVG) { r.theme = t }
}

// NewSVG returns a renderer writing to w. The zero configuration draws a
// 720x480 canvas with the default theme.
func NewSVG(w io.Writer, opts ...SVGOption) *SVG {
	r := &SVG{w: w, width: 720, height: 480, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// panelFrame is one panel's pixel rectangle on the canvas.
type panelFrame struct {
	x, y, w, h float64
}

// RenderPlot writes the complete SVG document for a built plot.
func (r *SVG) RenderPlot(b *plot.Built) error {
	ctx := context.Background()
	hooks := observability.Build()
	hooks.OnRenderStart(ctx, "svg")
	start := time.Now()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, "  <rect width=\"%.1f\" height=\"%.1f\" fill=\"#FFFFFF\"/>\n", r.width, r.height)

	frames := r.layoutFrames(b)
	for _, bp := range b.Panels {
		frame := frames[bp.Panel.Panel]
		r.renderStrip(&buf, bp, frame)
		r.renderBackground(&buf, bp.Ranges, frame)
		for li := range b.Layers {
			r.renderLayer(&buf, b, li, bp.Panel.Panel, frame)
		}
		r.renderAxes(&buf, b, bp, frame)
	}
	r.renderLabels(&buf, b, frames)

	buf.WriteString("</svg>\n")

	if _, err := r.w.Write(buf.Bytes()); err != nil {
		werr := errors.Wrap(errors.ErrCodeInternal, err, "writing svg output")
		hooks.OnRenderComplete(ctx, "svg", time.Since(start), werr)
		return werr
	}
	hooks.OnRenderComplete(ctx, "svg", time.Since(start), nil)
	return nil
}

// ===== Layout =====

const (
	marginRight  = 12.0
	marginBottom = 38.0
	panelSpacing = 8.0
	stripHeight  = 18.0
	tickLength   = 3.0
)

func (r *SVG) marginLeft() float64 { return 4*r.theme.AxisFontSize + r.theme.LabelFontSize + 8 }

func (r *SVG) marginTop(b *plot.Built) float64 {
	if b.Title != "" {
		return r.theme.TitleFontSize + 14
	}
	return 8
}

func hasStrips(b *plot.Built) bool {
	return len(b.Layout.Vars) > 0
}

func (r *SVG) layoutFrames(b *plot.Built) map[int]panelFrame {
	nrow, ncol := b.Layout.NRow, b.Layout.NCol
	if nrow < 1 {
		nrow = 1
	}
	if ncol < 1 {
		ncol = 1
	}

	var strip float64
	if hasStrips(b) {
		strip = stripHeight
	}

	left, top := r.marginLeft(), r.marginTop(b)
	plotW := r.width - left - marginRight
	plotH := r.height - top - marginBottom
	pw := (plotW - panelSpacing*float64(ncol-1)) / float64(ncol)
	ph := (plotH-panelSpacing*float64(nrow-1))/float64(nrow) - strip

	frames := make(map[int]panelFrame, len(b.Layout.Panels))
	for _, p := range b.Layout.Panels {
		frames[p.Panel] = panelFrame{
			x: left + float64(p.Col-1)*(pw+panelSpacing),
			y: top + float64(p.Row-1)*(ph+strip+panelSpacing) + strip,
			w: pw,
			h: ph,
		}
	}
	return frames
}

// ===== Panel chrome =====

func (r *SVG) renderStrip(buf *bytes.Buffer, bp plot.BuiltPanel, f panelFrame) {
	if len(bp.Panel.Vars) == 0 {
		return
	}
	parts := make([]string, 0, len(bp.Panel.Vars))
	for _, v := range sortedKeys(bp.Panel.Vars) {
		parts = append(parts, bp.Panel.Vars[v])
	}
	label := strings.Join(parts, ", ")

	fmt.Fprintf(buf, "  <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\"/>\n",
		f.x, f.y-stripHeight, f.w, stripHeight, r.theme.StripFill)
	fmt.Fprintf(buf, "  <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-family=\"%s\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
		f.x+f.w/2, f.y-stripHeight/2+r.theme.AxisFontSize/2-1,
		r.theme.FontFamily, r.theme.AxisFontSize, r.theme.StripText, escape(label))
}

func (r *SVG) renderBackground(buf *bytes.Buffer, pr coord.PanelRanges, f panelFrame) {
	fmt.Fprintf(buf, "  <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill=\"%s\"/>\n",
		f.x, f.y, f.w, f.h, r.theme.PanelFill)

	for _, bx := range normalized(pr.XBreaks, pr.X) {
		px := f.x + bx*f.w
		fmt.Fprintf(buf, "  <line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"%.1f\"/>\n",
			px, f.y, px, f.y+f.h, r.theme.GridMajor, r.theme.GridWidth)
	}
	for _, by := range normalized(pr.YBreaks, pr.Y) {
		py := f.y + (1-by)*f.h
		fmt.Fprintf(buf, "  <line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"%.1f\"/>\n",
			f.x, py, f.x+f.w, py, r.theme.GridMajor, r.theme.GridWidth)
	}
}

func (r *SVG) renderAxes(buf *bytes.Buffer, b *plot.Built, bp plot.BuiltPanel, f panelFrame) {
	pr := bp.Ranges

	if bp.Panel.Row == b.Layout.NRow {
		for i, bx := range normalized(pr.XBreaks, pr.X) {
			if i >= len(pr.XLabels) {
				break
			}
			px := f.x + bx*f.w
			fmt.Fprintf(buf, "  <line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\"/>\n",
				px, f.y+f.h, px, f.y+f.h+tickLength, r.theme.AxisText)
			fmt.Fprintf(buf, "  <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-family=\"%s\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
				px, f.y+f.h+tickLength+r.theme.AxisFontSize+1,
				r.theme.FontFamily, r.theme.AxisFontSize, r.theme.AxisText, escape(pr.XLabels[i]))
		}
	}

	if bp.Panel.Col == 1 {
		for i, by := range normalized(pr.YBreaks, pr.Y) {
			if i >= len(pr.YLabels) {
				break
			}
			py := f.y + (1-by)*f.h
			fmt.Fprintf(buf, "  <line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\"/>\n",
				f.x-tickLength, py, f.x, py, r.theme.AxisText)
			fmt.Fprintf(buf, "  <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"end\" font-family=\"%s\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
				f.x-tickLength-2, py+r.theme.AxisFontSize/2-1,
				r.theme.FontFamily, r.theme.AxisFontSize, r.theme.AxisText, escape(pr.YLabels[i]))
		}
	}
}

func (r *SVG) renderLabels(buf *bytes.Buffer, b *plot.Built, frames map[int]panelFrame) {
	left := r.marginLeft()
	if b.Title != "" {
		fmt.Fprintf(buf, "  <text x=\"%.1f\" y=\"%.1f\" font-family=\"%s\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
			left, r.theme.TitleFontSize+4,
			r.theme.FontFamily, r.theme.TitleFontSize, r.theme.TitleText, escape(b.Title))
	}
	cx := left + (r.width-left-marginRight)/2
	if b.XLab != "" {
		fmt.Fprintf(buf, "  <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" font-family=\"%s\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
			cx, r.height-8,
			r.theme.FontFamily, r.theme.LabelFontSize, r.theme.TitleText, escape(b.XLab))
	}
	if b.YLab != "" {
		cy := r.marginTop(b) + (r.height-r.marginTop(b)-marginBottom)/2
		fmt.Fprintf(buf, "  <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" transform=\"rotate(-90 %.1f %.1f)\" font-family=\"%s\" font-size=\"%.0f\" fill=\"%s\">%s</text>\n",
			r.theme.LabelFontSize, cy, r.theme.LabelFontSize, cy,
			r.theme.FontFamily, r.theme.LabelFontSize, r.theme.TitleText, escape(b.YLab))
	}
}

// ===== Geometry =====

func (r *SVG) renderLayer(buf *bytes.Buffer, b *plot.Built, layer, panel int, f panelFrame) {
	df := b.PanelData(layer, panel)
	if df.NRows() == 0 {
		return
	}
	switch b.Layers[layer].Geom.Kind() {
	case geom.KindPoint:
		renderPoints(buf, df, f)
	case geom.KindLine, geom.KindPath:
		renderPaths(buf, df, f)
	case geom.KindBar, geom.KindCol, geom.KindHistogram:
		renderRects(buf, df, f)
	case geom.KindArea:
		renderAreas(buf, df, f)
	}
}

func renderPoints(buf *bytes.Buffer, df dataframe.DataFrame, f panelFrame) {
	xs, ys := df.Floats("x"), df.Floats("y")
	colors := stringsOr(df, "color", "black")
	sizes := floatsOr(df, "size", 1.5)
	alphas := floatsOr(df, "alpha", 1.0)
	for i := range xs {
		fmt.Fprintf(buf, "  <circle cx=\"%.2f\" cy=\"%.2f\" r=\"%.2f\" fill=\"%s\"%s/>\n",
			f.x+xs[i]*f.w, f.y+(1-ys[i])*f.h, 1.5*sizes[i],
			cssColor(colors[i]), opacityAttr(alphas[i]))
	}
}

func renderPaths(buf *bytes.Buffer, df dataframe.DataFrame, f panelFrame) {
	for _, run := range groupRuns(df) {
		xs, ys := df.Floats("x"), df.Floats("y")
		colors := stringsOr(df, "color", "black")
		sizes := floatsOr(df, "size", 0.5)
		linetypes := stringsOr(df, "linetype", "solid")
		alphas := floatsOr(df, "alpha", 1.0)

		var pts strings.Builder
		for _, i := range run {
			fmt.Fprintf(&pts, "%.2f,%.2f ", f.x+xs[i]*f.w, f.y+(1-ys[i])*f.h)
		}
		first := run[0]
		fmt.Fprintf(buf, "  <polyline points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"%.2f\"%s%s/>\n",
			strings.TrimSpace(pts.String()), cssColor(colors[first]), 2*sizes[first],
			dashAttr(linetypes[first]), opacityAttr(alphas[first]))
	}
}

func renderRects(buf *bytes.Buffer, df dataframe.DataFrame, f panelFrame) {
	xmins, xmaxs := df.Floats("xmin"), df.Floats("xmax")
	ymins, ymaxs := df.Floats("ymin"), df.Floats("ymax")
	fills := stringsOr(df, "fill", "grey35")
	strokes := stringsOr(df, "color", "")
	alphas := floatsOr(df, "alpha", 1.0)
	for i := range xmins {
		stroke := ""
		if strokes[i] != "" {
			stroke = fmt.Sprintf(" stroke=\"%s\"", cssColor(strokes[i]))
		}
		fmt.Fprintf(buf, "  <rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" fill=\"%s\"%s%s/>\n",
			f.x+xmins[i]*f.w, f.y+(1-ymaxs[i])*f.h,
			(xmaxs[i]-xmins[i])*f.w, (ymaxs[i]-ymins[i])*f.h,
			cssColor(fills[i]), stroke, opacityAttr(alphas[i]))
	}
}

func renderAreas(buf *bytes.Buffer, df dataframe.DataFrame, f panelFrame) {
	for _, run := range groupRuns(df) {
		xs := df.Floats("x")
		ymins, ymaxs := df.Floats("ymin"), df.Floats("ymax")
		fills := stringsOr(df, "fill", "grey20")
		alphas := floatsOr(df, "alpha", 1.0)

		var pts strings.Builder
		for _, i := range run {
			fmt.Fprintf(&pts, "%.2f,%.2f ", f.x+xs[i]*f.w, f.y+(1-ymaxs[i])*f.h)
		}
		for k := len(run) - 1; k >= 0; k-- {
			i := run[k]
			fmt.Fprintf(&pts, "%.2f,%.2f ", f.x+xs[i]*f.w, f.y+(1-ymins[i])*f.h)
		}
		first := run[0]
		fmt.Fprintf(buf, "  <polygon points=\"%s\" fill=\"%s\"%s/>\n",
			strings.TrimSpace(pts.String()), cssColor(fills[first]), opacityAttr(alphas[first]))
	}
}

// groupRuns partitions row indices by the group column, preserving row
// order within each group.
func groupRuns(df dataframe.DataFrame) [][]int {
	if !df.Has("group") {
		run := make([]int, df.NRows())
		for i := range run {
			run[i] = i
		}
		return [][]int{run}
	}
	groups := df.Floats("group")
	order := make([]float64, 0)
	byGroup := make(map[float64][]int)
	for i, g := range groups {
		if _, ok := byGroup[g]; !ok {
			order = append(order, g)
		}
		byGroup[g] = append(byGroup[g], i)
	}
	runs := make([][]int, 0, len(order))
	for _, g := range order {
		runs = append(runs, byGroup[g])
	}
	return runs
}

// ===== Attributes =====

// namedGreys maps the grey palette names used by geom defaults to hex.
var namedGreys = map[string]string{
	"grey20": "#333333",
	"grey35": "#595959",
	"grey50": "#7F7F7F",
	"grey92": "#EBEBEB",
}

func cssColor(c string) string {
	if hex, ok := namedGreys[c]; ok {
		return hex
	}
	if c == "" {
		return "none"
	}
	return c
}

func opacityAttr(alpha float64) string {
	if alpha >= 1 {
		return ""
	}
	return fmt.Sprintf(" opacity=\"%.2f\"", alpha)
}

func dashAttr(linetype string) string {
	switch linetype {
	case "dashed":
		return " stroke-dasharray=\"6,3\""
	case "dotted":
		return " stroke-dasharray=\"2,2\""
	case "dotdash":
		return " stroke-dasharray=\"2,2,6,2\""
	default:
		return ""
	}
}

// normalized rescales break positions into [0, 1] against a range,
// dropping breaks that fall outside it.
func normalized(breaks []float64, rng [2]float64) []float64 {
	span := rng[1] - rng[0]
	if span == 0 {
		return nil
	}
	out := make([]float64, 0, len(breaks))
	for _, b := range breaks {
		t := (b - rng[0]) / span
		if t < 0 || t > 1 {
			continue
		}
		out = append(out, t)
	}
	return out
}

func floatsOr(df dataframe.DataFrame, name string, def float64) []float64 {
	if df.Has(name) {
		return df.Floats(name)
	}
	out := make([]float64, df.NRows())
	for i := range out {
		out[i] = def
	}
	return out
}

func stringsOr(df dataframe.DataFrame, name string, def string) []string {
	if df.Has(name) {
		return df.Strings(name)
	}
	out := make([]string, df.NRows())
	for i := range out {
		out[i] = def
	}
	return out
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
