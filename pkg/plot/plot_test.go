package plot

import (
	"context"
	"math"
	"testing"

	"github.com/plotgram/plotgram/pkg/coord"
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/facet"
	"github.com/plotgram/plotgram/pkg/geom"
	"github.com/plotgram/plotgram/pkg/position"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/stat"
	"github.com/plotgram/plotgram/pkg/warnings"
)

func carsData() dataframe.DataFrame {
	return dataframe.NewBuilder().
		AddStrings("class", []string{"suv", "suv", "compact", "compact", "compact", "pickup"}).
		AddStrings("drv", []string{"4", "4", "f", "f", "4", "4"}).
		AddFloats("displ", []float64{4.6, 5.3, 2.0, 2.4, 2.5, 4.7}).
		AddFloats("hwy", []float64{17, 15, 29, 30, 26, 16}).
		MustDone()
}

func TestBuildBarChart(t *testing.T) {
	p := New(carsData(), Aes{"x": "class"})
	p.AddLayer(&Layer{Geom: geom.KindBar})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(built.Layers) != 1 || len(built.Panels) != 1 {
		t.Fatalf("built %d layers, %d panels, want 1 and 1", len(built.Layers), len(built.Panels))
	}

	df := built.Layers[0].Data
	// Three classes, counted and stacked from zero.
	if df.NRows() != 3 {
		t.Fatalf("NRows = %d, want one bar per class", df.NRows())
	}
	counts := df.Floats("count")
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total != 6 {
		t.Errorf("total count = %v, want 6", total)
	}
	if !df.Has("ymin") || !df.Has("ymax") || !df.Has("xmin") || !df.Has("xmax") {
		t.Error("bar extents missing from built data")
	}
	// After-stat default mapped count into y.
	ys := df.Floats("ymax")
	maxY := 0.0
	for _, y := range ys {
		if y > maxY {
			maxY = y
		}
	}
	if maxY != 3 {
		t.Errorf("tallest bar = %v, want 3 (three compacts)", maxY)
	}

	if built.YLab != "count" {
		t.Errorf("YLab = %q, want stat default \"count\"", built.YLab)
	}
	if built.XLab != "class" {
		t.Errorf("XLab = %q, want mapped column", built.XLab)
	}
}

func TestBuildDiscreteXMapsToPositions(t *testing.T) {
	p := New(carsData(), Aes{"x": "class", "y": "hwy"})
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	xs := built.Layers[0].Data.Floats("x")
	for _, x := range xs {
		if x != 1 && x != 2 && x != 3 {
			t.Errorf("x = %v, want integer level positions", x)
		}
	}
}

func TestBuildStackedByFill(t *testing.T) {
	p := New(carsData(), Aes{"x": "class"})
	p.AddLayer(&Layer{Geom: geom.KindBar, Mapping: Aes{"fill": "drv"}})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	df := built.Layers[0].Data

	// compact splits into 4 and f, stacked to a total of 3.
	fills := df.Strings("fill")
	if len(fills) != 4 {
		t.Fatalf("bars = %d, want 4 (class x drv combinations present)", len(fills))
	}
	for _, f := range fills {
		if len(f) != 7 || f[0] != '#' {
			t.Errorf("fill = %q, want a mapped hex color", f)
		}
	}

	maxYmax := 0.0
	for _, y := range df.Floats("ymax") {
		if y > maxYmax {
			maxYmax = y
		}
	}
	if maxYmax != 3 {
		t.Errorf("stacked top = %v, want 3", maxYmax)
	}
}

func TestBuildDodged(t *testing.T) {
	p := New(carsData(), Aes{"x": "class"})
	p.AddLayer(&Layer{
		Geom:     geom.KindBar,
		Mapping:  Aes{"fill": "drv"},
		Position: position.KindDodge,
	})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	df := built.Layers[0].Data
	// Dodged bars all rise from zero.
	for _, y := range df.Floats("ymin") {
		if y != 0 {
			t.Errorf("ymin = %v, want 0 for dodged bars", y)
		}
	}
}

func TestBuildGroupDerivation(t *testing.T) {
	p := New(carsData(), Aes{"x": "displ", "y": "hwy", "color": "drv"})
	p.AddLayer(&Layer{Geom: geom.KindLine})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	groups := built.Layers[0].Data.Floats(colGroup)
	distinct := map[float64]bool{}
	for _, g := range groups {
		distinct[g] = true
	}
	if len(distinct) != 2 {
		t.Errorf("groups = %v, want one per drv level", distinct)
	}
}

func TestBuildNoDiscreteAesMeansNoGroup(t *testing.T) {
	p := New(carsData(), Aes{"x": "displ", "y": "hwy"})
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	for _, g := range built.Layers[0].Data.Floats(colGroup) {
		if g != NoGroup {
			t.Errorf("group = %v, want %d", g, NoGroup)
		}
	}
}

func TestBuildFactorExpression(t *testing.T) {
	df := dataframe.NewBuilder().
		AddFloats("cyl", []float64{4, 6, 4, 8}).
		AddFloats("hwy", []float64{30, 25, 28, 17}).
		MustDone()

	p := New(df, Aes{"x": "factor(cyl)", "y": "hwy"})
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	// Match rows by hwy: row order may change across the build stages.
	wantByHwy := map[float64]float64{30: 1, 28: 1, 25: 2, 17: 3}
	out := built.Layers[0].Data
	xs := out.Floats("x")
	hwys := out.Floats("y")
	if len(xs) != 4 {
		t.Fatalf("NRows = %d, want 4", len(xs))
	}
	for i, hwy := range hwys {
		if xs[i] != wantByHwy[hwy] {
			t.Errorf("row with hwy=%v has x = %v, want %v", hwy, xs[i], wantByHwy[hwy])
		}
	}
}

func TestBuildFacetWrap(t *testing.T) {
	df := dataframe.NewBuilder().
		AddStrings("class", []string{"a", "b", "c", "d", "e"}).
		AddFloats("x", []float64{1, 2, 3, 4, 5}).
		AddFloats("y", []float64{1, 2, 3, 4, 5}).
		MustDone()

	p := New(df, Aes{"x": "x", "y": "y"})
	p.Facet = facet.NewWrap("class")
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if built.Layout.NRow != 3 || built.Layout.NCol != 2 {
		t.Errorf("layout = %dx%d, want 3x2 for five panels", built.Layout.NRow, built.Layout.NCol)
	}
	if len(built.Panels) != 5 {
		t.Errorf("panels = %d, want 5", len(built.Panels))
	}
}

func TestBuildFacetFreeScales(t *testing.T) {
	df := dataframe.NewBuilder().
		AddStrings("class", []string{"a", "a", "b", "b"}).
		AddFloats("x", []float64{1, 2, 100, 200}).
		AddFloats("y", []float64{1, 2, 3, 4}).
		MustDone()

	w := facet.NewWrap("class")
	w.FreeX = true
	p := New(df, Aes{"x": "x", "y": "y"})
	p.Facet = w
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	r1 := built.PanelRanges(1)
	r2 := built.PanelRanges(2)
	if r1.X[1] > 10 {
		t.Errorf("panel 1 x range = %v, want trained on its own data only", r1.X)
	}
	if r2.X[1] < 100 {
		t.Errorf("panel 2 x range = %v, want to cover its own data", r2.X)
	}
}

func TestBuildCoordFlip(t *testing.T) {
	p := New(carsData(), Aes{"x": "class", "y": "hwy"})
	p.Coord = coord.Flip{}
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	pr := built.PanelRanges(1)
	// Flipped: the discrete class axis becomes y.
	if len(pr.YLabels) != 3 {
		t.Errorf("YLabels = %v, want the three class levels", pr.YLabels)
	}
	if pr.X[1] < 30 {
		t.Errorf("X range = %v, want the hwy range", pr.X)
	}
}

func TestBuildContinuousColorGradient(t *testing.T) {
	p := New(carsData(), Aes{"x": "displ", "y": "hwy", "color": "hwy"})
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	colors := built.Layers[0].Data.Strings("color")
	for _, c := range colors {
		if len(c) != 7 || c[0] != '#' {
			t.Errorf("color = %q, want a hex gradient value", c)
		}
	}
}

func TestBuildScaleOverride(t *testing.T) {
	s := scale.NewContinuous("y")
	s.Trans = scale.TransLog10
	p := New(carsData(), Aes{"x": "displ", "y": "hwy"})
	p.AddScale(s)
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	ys := built.Layers[0].Data.Floats("y")
	for _, y := range ys {
		if y > 2 {
			t.Errorf("y = %v, want log10-transformed values", y)
		}
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	p := New(carsData(), Aes{"x": "class"})
	p.AddLayer(&Layer{Geom: geom.KindBar})

	if _, err := Build(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if p.Layers[0].Stat != "" {
		t.Error("build mutated the input layer")
	}
	if p.Data.Has(colPanel) {
		t.Error("build mutated the input data")
	}
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name     string
		plot     *Plot
		wantCode errors.Code
	}{
		{
			name:     "NoLayers",
			plot:     New(carsData(), Aes{"x": "class"}),
			wantCode: errors.ErrCodeInvalidSpec,
		},
		{
			name: "UnknownAesthetic",
			plot: New(carsData(), Aes{"sparkle": "class"}).
				AddLayer(&Layer{Geom: geom.KindPoint}),
			wantCode: errors.ErrCodeInvalidMapping,
		},
		{
			name: "MissingColumn",
			plot: New(carsData(), Aes{"x": "cylinders"}).
				AddLayer(&Layer{Geom: geom.KindBar}),
			wantCode: errors.ErrCodeInvalidMapping,
		},
		{
			name: "MissingRequiredAes",
			plot: New(carsData(), Aes{"x": "displ"}).
				AddLayer(&Layer{Geom: geom.KindPoint}),
			wantCode: errors.ErrCodeMissingAes,
		},
		{
			name: "UnknownGeom",
			plot: New(carsData(), Aes{"x": "displ"}).
				AddLayer(&Layer{Geom: geom.Kind("hexbin")}),
			wantCode: errors.ErrCodeUnknownGeom,
		},
		{
			name: "UnknownStat",
			plot: New(carsData(), Aes{"x": "displ"}).
				AddLayer(&Layer{Geom: geom.KindPoint, Stat: stat.Kind("loess")}),
			wantCode: errors.ErrCodeUnknownStat,
		},
		{
			name: "UnknownPosition",
			plot: New(carsData(), Aes{"x": "displ"}).
				AddLayer(&Layer{Geom: geom.KindPoint, Position: position.Kind("warp")}),
			wantCode: errors.ErrCodeUnknownPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(context.Background(), tt.plot)
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("error = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestValidateRejectsUnknownKinds(t *testing.T) {
	// Validate alone catches bad kinds, so a build fails before any
	// stage touches the data.
	tests := []struct {
		name     string
		layer    *Layer
		wantCode errors.Code
	}{
		{"Geom", &Layer{Geom: geom.Kind("hexbin")}, errors.ErrCodeUnknownGeom},
		{"Stat", &Layer{Geom: geom.KindPoint, Stat: stat.Kind("loess")}, errors.ErrCodeUnknownStat},
		{"Position", &Layer{Geom: geom.KindPoint, Position: position.Kind("warp")}, errors.ErrCodeUnknownPosition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(carsData(), Aes{"x": "displ"}).AddLayer(tt.layer)
			if err := p.Validate(); !errors.Is(err, tt.wantCode) {
				t.Errorf("Validate() = %v, want code %v", err, tt.wantCode)
			}
		})
	}
}

func TestBuildCollectsWarnings(t *testing.T) {
	df := dataframe.NewBuilder().
		AddFloats("x", []float64{1, math.NaN(), 2}).
		MustDone()

	p := New(df, Aes{"x": "x"})
	p.AddLayer(&Layer{Geom: geom.KindBar})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, w := range built.Warnings {
		if w.Kind == warnings.KindDroppedRows {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want a dropped-rows warning", built.Warnings)
	}
}

func TestPanelDataNormalizes(t *testing.T) {
	p := New(carsData(), Aes{"x": "displ", "y": "hwy"})
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	df := built.PanelData(0, 1)
	for _, x := range df.Floats("x") {
		if x < 0 || x > 1 {
			t.Errorf("normalized x = %v, want within [0, 1]", x)
		}
	}
}

func TestPanelDataSurfacesTransformWarnings(t *testing.T) {
	df := dataframe.NewBuilder().
		AddFloats("x", []float64{-1, 1, 10}).
		AddFloats("y", []float64{1, 2, 3}).
		MustDone()

	p := New(df, Aes{"x": "x", "y": "y"})
	p.Coord = coord.Trans{X: scale.TransLog10, Y: scale.TransIdentity}
	p.AddLayer(&Layer{Geom: geom.KindPoint})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	built.PanelData(0, 1)

	found := false
	for _, w := range built.Warnings {
		if w.Kind == warnings.KindNonFinite {
			found = true
		}
	}
	if !found {
		t.Errorf("warnings = %v, want the log10 non-finite warning to surface", built.Warnings)
	}
}

func TestBuildGroupAesthetic(t *testing.T) {
	p := New(carsData(), Aes{"x": "displ", "y": "hwy", "group": "class"})
	p.AddLayer(&Layer{Geom: geom.KindLine})

	built, err := Build(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	groups := built.Layers[0].Data.Floats(colGroup)
	distinct := map[float64]bool{}
	for _, g := range groups {
		distinct[g] = true
	}
	if len(distinct) != 3 {
		t.Errorf("distinct groups = %d, want 3 classes", len(distinct))
	}
}
