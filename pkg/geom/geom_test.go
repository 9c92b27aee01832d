package geom

import (
	"math"
	"testing"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/position"
	"github.com/plotgram/plotgram/pkg/stat"
)

func TestNew(t *testing.T) {
	tests := []struct {
		kind     Kind
		wantStat stat.Kind
		wantPos  position.Kind
	}{
		{kind: KindPoint, wantStat: stat.KindIdentity, wantPos: position.KindIdentity},
		{kind: KindBar, wantStat: stat.KindCount, wantPos: position.KindStack},
		{kind: KindCol, wantStat: stat.KindIdentity, wantPos: position.KindStack},
		{kind: KindHistogram, wantStat: stat.KindBin, wantPos: position.KindStack},
		{kind: KindArea, wantStat: stat.KindIdentity, wantPos: position.KindStack},
	}
	for _, tt := range tests {
		g, err := New(tt.kind)
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.kind, err)
		}
		if g.DefaultStat != tt.wantStat {
			t.Errorf("%s DefaultStat = %q, want %q", tt.kind, g.DefaultStat, tt.wantStat)
		}
		if g.DefaultPosition != tt.wantPos {
			t.Errorf("%s DefaultPosition = %q, want %q", tt.kind, g.DefaultPosition, tt.wantPos)
		}
	}

	if _, err := New(Kind("ribbon")); !errors.Is(err, errors.ErrCodeUnknownGeom) {
		t.Fatalf("error = %v, want unknown-geom code", err)
	}
}

func TestBarSetupData(t *testing.T) {
	df := dataframe.NewBuilder().
		AddFloats("x", []float64{1, 2}).
		AddFloats("y", []float64{3, -2}).
		AddFloats("width", []float64{0.9, 0.9}).
		MustDone()

	g, err := New(KindBar)
	if err != nil {
		t.Fatal(err)
	}
	out := g.SetupData(df)

	xmins, xmaxs := out.Floats("xmin"), out.Floats("xmax")
	if math.Abs(xmins[0]-0.55) > 1e-12 || math.Abs(xmaxs[0]-1.45) > 1e-12 {
		t.Errorf("bar 1 extent = [%v, %v], want [0.55, 1.45]", xmins[0], xmaxs[0])
	}

	ymins, ymaxs := out.Floats("ymin"), out.Floats("ymax")
	if ymins[0] != 0 || ymaxs[0] != 3 {
		t.Errorf("bar 1 y extent = [%v, %v], want [0, 3]", ymins[0], ymaxs[0])
	}
	if ymins[1] != -2 || ymaxs[1] != 0 {
		t.Errorf("negative bar y extent = [%v, %v], want [-2, 0]", ymins[1], ymaxs[1])
	}
}

func TestBarSetupDataDefaultWidth(t *testing.T) {
	df := dataframe.NewBuilder().
		AddFloats("x", []float64{1, 3}).
		AddFloats("y", []float64{1, 1}).
		MustDone()

	g, _ := New(KindBar)
	out := g.SetupData(df)
	// Resolution is 2, so the bar spans 1.8.
	if w := out.Floats("xmax")[0] - out.Floats("xmin")[0]; math.Abs(w-1.8) > 1e-12 {
		t.Errorf("width = %v, want 1.8", w)
	}
}

func TestLineSetupDataSortsByX(t *testing.T) {
	df := dataframe.NewBuilder().
		AddFloats("x", []float64{3, 1, 2}).
		AddFloats("y", []float64{30, 10, 20}).
		MustDone()

	g, _ := New(KindLine)
	out := g.SetupData(df)
	xs := out.Floats("x")
	for i, want := range []float64{1, 2, 3} {
		if xs[i] != want {
			t.Errorf("x[%d] = %v, want sorted order", i, xs[i])
		}
	}
}

func TestPathSetupDataKeepsOrder(t *testing.T) {
	df := dataframe.NewBuilder().
		AddFloats("x", []float64{3, 1, 2}).
		AddFloats("y", []float64{30, 10, 20}).
		MustDone()

	g, _ := New(KindPath)
	out := g.SetupData(df)
	if out.Floats("x")[0] != 3 {
		t.Error("path reordered its rows")
	}
}
