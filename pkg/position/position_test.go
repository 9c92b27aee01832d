package position

import (
	"math"
	"testing"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/errors"
	"github.com/plotgram/plotgram/pkg/warnings"
)

func panelDF(build func(*dataframe.Builder)) dataframe.DataFrame {
	b := dataframe.NewBuilder()
	build(b)
	df := b.MustDone()
	panels := make([]int, df.NRows())
	for i := range panels {
		panels[i] = 1
	}
	return df.WithColumn(colPanel, dataframe.Ints(panels))
}

func TestNew(t *testing.T) {
	kinds := []Kind{KindIdentity, KindStack, KindFill, KindDodge, KindDodge2, KindJitter, KindNudge}
	for _, kind := range kinds {
		pos, err := New(kind, Params{})
		if err != nil {
			t.Fatalf("New(%q) error = %v", kind, err)
		}
		if pos.Kind() != kind {
			t.Errorf("Kind() = %q, want %q", pos.Kind(), kind)
		}
	}

	_, err := New(Kind("warp"), Params{})
	if !errors.Is(err, errors.ErrCodeUnknownPosition) {
		t.Fatalf("error = %v, want unknown-position code", err)
	}
}

func TestIdentityLeavesDataAlone(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 2})
		b.AddFloats("y", []float64{3, 4})
	})
	out, err := ComputeLayer(df, IdentityPosition{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Floats("y")[1] != 4 {
		t.Errorf("y = %v, want unchanged", out.Floats("y"))
	}
}

func TestStack(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 1, 1})
		b.AddFloats("y", []float64{1, 2, 3})
		b.Add(colGroup, dataframe.Ints([]int{1, 2, 3}))
	})

	out, err := ComputeLayer(df, StackPosition{VJust: 1}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}

	// Groups stack in descending group order, so group 3 sits on the
	// bottom of the stack.
	groups := out.Floats(colGroup)
	ymins := out.Floats("ymin")
	ymaxs := out.Floats("ymax")
	got := map[float64][2]float64{}
	for i := range groups {
		got[groups[i]] = [2]float64{ymins[i], ymaxs[i]}
	}
	want := map[float64][2]float64{
		3: {0, 3},
		2: {3, 5},
		1: {5, 6},
	}
	for g, w := range want {
		if got[g] != w {
			t.Errorf("group %v: (ymin, ymax) = %v, want %v", g, got[g], w)
		}
	}
}

func TestStackReverse(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 1})
		b.AddFloats("y", []float64{1, 2})
		b.Add(colGroup, dataframe.Ints([]int{1, 2}))
	})

	out, err := ComputeLayer(df, StackPosition{VJust: 1, Reverse: true}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}
	groups := out.Floats(colGroup)
	ymins := out.Floats("ymin")
	for i := range groups {
		if groups[i] == 1 && ymins[i] != 0 {
			t.Errorf("group 1 ymin = %v, want 0 when reversed", ymins[i])
		}
	}
}

func TestStackNegativeValuesStackDownward(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 1, 1})
		b.AddFloats("y", []float64{2, -1, -2})
		b.Add(colGroup, dataframe.Ints([]int{1, 2, 3}))
	})

	out, err := ComputeLayer(df, StackPosition{VJust: 1}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}
	groups := out.Floats(colGroup)
	ymins := out.Floats("ymin")
	ymaxs := out.Floats("ymax")
	for i := range groups {
		switch groups[i] {
		case 1:
			if ymins[i] != 0 || ymaxs[i] != 2 {
				t.Errorf("positive row = (%v, %v), want (0, 2)", ymins[i], ymaxs[i])
			}
		case 3:
			if ymins[i] != -2 || ymaxs[i] != 0 {
				t.Errorf("first negative row = (%v, %v), want (-2, 0)", ymins[i], ymaxs[i])
			}
		case 2:
			if ymins[i] != -3 || ymaxs[i] != -2 {
				t.Errorf("second negative row = (%v, %v), want (-3, -2)", ymins[i], ymaxs[i])
			}
		}
	}
}

func TestFillNormalizesToOne(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 1, 2, 2})
		b.AddFloats("y", []float64{1, 3, 2, 2})
		b.Add(colGroup, dataframe.Ints([]int{1, 2, 1, 2}))
	})

	out, err := ComputeLayer(df, StackPosition{VJust: 1, Fill: true}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}
	xs := out.Floats("x")
	ymaxs := out.Floats("ymax")
	topByX := map[float64]float64{}
	for i := range xs {
		if ymaxs[i] > topByX[xs[i]] {
			topByX[xs[i]] = ymaxs[i]
		}
	}
	for x, top := range topByX {
		if math.Abs(top-1) > 1e-12 {
			t.Errorf("stack at x=%v tops out at %v, want 1", x, top)
		}
	}
}

func TestStackVJust(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1})
		b.AddFloats("y", []float64{4})
		b.Add(colGroup, dataframe.Ints([]int{1}))
	})

	out, err := ComputeLayer(df, StackPosition{VJust: 0.5}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}
	if y := out.Floats("y")[0]; y != 2 {
		t.Errorf("y = %v, want midpoint 2 with vjust 0.5", y)
	}
}

func TestDodge(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 1})
		b.AddFloats("width", []float64{0.9, 0.9})
		b.Add(colGroup, dataframe.Ints([]int{1, 2}))
	})

	out, err := ComputeLayer(df, DodgePosition{}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}

	groups := out.Floats(colGroup)
	xs := out.Floats("x")
	xmins := out.Floats("xmin")
	xmaxs := out.Floats("xmax")
	for i := range groups {
		want := 1 + 0.9*((groups[i]-0.5)/2-0.5)
		if math.Abs(xs[i]-want) > 1e-12 {
			t.Errorf("group %v x = %v, want %v", groups[i], xs[i], want)
		}
		if math.Abs((xmaxs[i]-xmins[i])-0.45) > 1e-12 {
			t.Errorf("group %v width = %v, want 0.45", groups[i], xmaxs[i]-xmins[i])
		}
	}

	// Sub-extents tile the original extent.
	lo := math.Min(xmins[0], xmins[1])
	hi := math.Max(xmaxs[0], xmaxs[1])
	if math.Abs(lo-0.55) > 1e-12 || math.Abs(hi-1.45) > 1e-12 {
		t.Errorf("dodged extent = [%v, %v], want [0.55, 1.45]", lo, hi)
	}
}

func TestDodgeReverse(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 1})
		b.AddFloats("width", []float64{0.8, 0.8})
		b.Add(colGroup, dataframe.Ints([]int{1, 2}))
	})

	out, err := ComputeLayer(df, DodgePosition{Reverse: true}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}
	groups := out.Floats(colGroup)
	xs := out.Floats("x")
	for i := range groups {
		if groups[i] == 1 && xs[i] <= 1 {
			t.Errorf("group 1 x = %v, want right of center when reversed", xs[i])
		}
	}
}

func TestDodge2Clusters(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 1, 5})
		b.AddFloats("xmin", []float64{0.5, 0.5, 4.5})
		b.AddFloats("xmax", []float64{1.5, 1.5, 5.5})
		b.Add(colGroup, dataframe.Ints([]int{1, 2, 1}))
	})

	out, err := ComputeLayer(df, Dodge2Position{Padding: 0.1}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}

	xmins := out.Floats("xmin")
	xmaxs := out.Floats("xmax")

	// The two overlapping extents split the cluster; the isolated one
	// keeps its extent minus padding.
	for i := 0; i < 2; i++ {
		if w := xmaxs[i] - xmins[i]; math.Abs(w-0.45) > 1e-12 {
			t.Errorf("cluster member %d width = %v, want 0.45", i, w)
		}
	}
	if xmaxs[0] > xmins[1]+1e-12 {
		t.Errorf("cluster members overlap: [%v, %v] then [%v, %v]",
			xmins[0], xmaxs[0], xmins[1], xmaxs[1])
	}
	if w := xmaxs[2] - xmins[2]; math.Abs(w-0.9) > 1e-12 {
		t.Errorf("isolated width = %v, want 0.9", w)
	}
}

func TestDodge2Preserve(t *testing.T) {
	newDF := func() dataframe.DataFrame {
		return panelDF(func(b *dataframe.Builder) {
			b.AddFloats("x", []float64{1, 1.5})
			b.AddFloats("xmin", []float64{0, 1})
			b.AddFloats("xmax", []float64{2, 2})
			b.Add(colGroup, dataframe.Ints([]int{1, 2}))
		})
	}

	// Default: the cluster width splits evenly regardless of the
	// members' own widths.
	out, err := ComputeLayer(newDF(), Dodge2Position{}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}
	xmins := out.Floats("xmin")
	xmaxs := out.Floats("xmax")
	for i := range xmins {
		if w := xmaxs[i] - xmins[i]; math.Abs(w-1) > 1e-12 {
			t.Errorf("even split member %d width = %v, want 1", i, w)
		}
	}

	// preserve=total: widths stay proportional, so the wide member
	// keeps twice the share of the narrow one.
	out, err = ComputeLayer(newDF(), Dodge2Position{Preserve: PreserveTotal}, warnings.NewCollector(nil))
	if err != nil {
		t.Fatal(err)
	}
	xmins = out.Floats("xmin")
	xmaxs = out.Floats("xmax")
	if w := xmaxs[0] - xmins[0]; math.Abs(w-1) > 1e-12 {
		t.Errorf("wide member width = %v, want 1", w)
	}
	if w := xmaxs[1] - xmins[1]; math.Abs(w-0.5) > 1e-12 {
		t.Errorf("narrow member width = %v, want 0.5", w)
	}
}

func TestJitterBoundedAndReproducible(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 2, 3, 1, 2, 3})
		b.AddFloats("y", []float64{1, 1, 1, 2, 2, 2})
	})

	run := func() dataframe.DataFrame {
		out, err := ComputeLayer(df, JitterPosition{}, nil)
		if err != nil {
			t.Fatal(err)
		}
		return out
	}

	a, b := run(), run()
	ax, bx := a.Floats("x"), b.Floats("x")
	orig := df.Floats("x")
	for i := range ax {
		if ax[i] != bx[i] {
			t.Errorf("jitter is not reproducible: %v vs %v", ax[i], bx[i])
		}
		if math.Abs(ax[i]-orig[i]) > 0.4 {
			t.Errorf("jitter offset %v exceeds 0.4 (40%% of resolution 1)", ax[i]-orig[i])
		}
		if ax[i] == orig[i] {
			continue
		}
	}

	seed := int64(7)
	c, err := ComputeLayer(df, JitterPosition{Seed: &seed}, nil)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i, v := range c.Floats("x") {
		if v != ax[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical jitter")
	}
}

func TestNudge(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 2})
		b.AddFloats("y", []float64{10, 20})
	})

	out, err := ComputeLayer(df, NudgePosition{X: 0.5, Y: -1}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Floats("x")[0] != 1.5 || out.Floats("y")[0] != 9 {
		t.Errorf("nudged = (%v, %v), want (1.5, 9)",
			out.Floats("x")[0], out.Floats("y")[0])
	}
}

func TestCollideWarnsOnPartialOverlap(t *testing.T) {
	df := panelDF(func(b *dataframe.Builder) {
		b.AddFloats("x", []float64{1, 1.2})
		b.AddFloats("xmin", []float64{0.5, 0.7})
		b.AddFloats("xmax", []float64{1.5, 1.7})
		b.AddFloats("y", []float64{1, 1})
		b.Add(colGroup, dataframe.Ints([]int{1, 2}))
	})

	warn := warnings.NewCollector(nil)
	if _, err := ComputeLayer(df, StackPosition{VJust: 1}, warn); err != nil {
		t.Fatal(err)
	}
	if !warn.HasKind(warnings.KindOverlap) {
		t.Error("expected an overlap warning for partially overlapping extents")
	}
}
