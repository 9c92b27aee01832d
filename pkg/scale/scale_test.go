package scale

import (
	"math"
	"reflect"
	"testing"

	moremath "github.com/aclements/go-moremath/scale"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/warnings"
)

func TestContinuousTrain(t *testing.T) {
	tests := []struct {
		name    string
		values  [][]float64
		wantMin float64
		wantMax float64
		trained bool
	}{
		{
			name:    "SinglePass",
			values:  [][]float64{{3, 1, 2}},
			wantMin: 1, wantMax: 3, trained: true,
		},
		{
			name:    "IgnoresNonFinite",
			values:  [][]float64{{math.NaN(), math.Inf(1), 5, math.Inf(-1), 7}},
			wantMin: 5, wantMax: 7, trained: true,
		},
		{
			name:    "TrainingIsIdempotent",
			values:  [][]float64{{1, 4}, {1, 4}, {1, 4}},
			wantMin: 1, wantMax: 4, trained: true,
		},
		{
			name:    "AllNonFinite",
			values:  [][]float64{{math.NaN(), math.Inf(1)}},
			trained: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewContinuous("x")
			for _, vs := range tt.values {
				s.Train(vs)
			}
			if s.Trained() != tt.trained {
				t.Fatalf("Trained() = %v, want %v", s.Trained(), tt.trained)
			}
			if !tt.trained {
				return
			}
			min, max := s.Range()
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("Range() = (%v, %v), want (%v, %v)", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestContinuousReset(t *testing.T) {
	s := NewContinuous("x")
	s.Train([]float64{1, 10})
	s.Reset()
	if s.Trained() {
		t.Fatal("scale still trained after Reset")
	}
	s.Train([]float64{2, 3})
	min, max := s.Range()
	if min != 2 || max != 3 {
		t.Errorf("Range() after retrain = (%v, %v), want (2, 3)", min, max)
	}
}

func TestContinuousMapClipsToLimits(t *testing.T) {
	s := NewContinuous("x")
	s.Limits = &[2]float64{0, 10}
	got := s.Map([]float64{-5, 5, 15, math.NaN()})
	if got[0] != 0 || got[1] != 5 || got[2] != 10 {
		t.Errorf("Map clipped = %v, want [0 5 10 NaN]", got)
	}
	if !math.IsNaN(got[3]) {
		t.Errorf("Map(NaN) = %v, want NaN", got[3])
	}
}

func TestContinuousTransform(t *testing.T) {
	s := NewContinuous("y")
	s.Trans = TransLog10
	got := s.TransformValues([]float64{1, 10, 100})
	want := []float64{0, 1, 2}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("TransformValues[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDiscreteLevels(t *testing.T) {
	tests := []struct {
		name     string
		declared []string
		train    []string
		want     []string
	}{
		{
			name:  "SortedWhenUndeclared",
			train: []string{"b", "a", "c", "a"},
			want:  []string{"a", "b", "c"},
		},
		{
			name:     "DeclaredOrderWins",
			declared: []string{"c", "a", "b"},
			train:    []string{"a", "b", "c"},
			want:     []string{"c", "a", "b"},
		},
		{
			name:  "SkipsNA",
			train: []string{"a", "", "b"},
			want:  []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewDiscrete("x")
			s.DeclaredLevels = tt.declared
			s.Train(tt.train, false)
			if got := s.Levels(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Levels() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscreteFactorKeepsLevelOrder(t *testing.T) {
	df := dataframe.NewBuilder().
		Add("cls", dataframe.NewFactor([]string{"suv", "compact"}, []string{"suv", "compact", "pickup"})).
		MustDone()

	s := NewDiscrete("x")
	s.TrainDF(df, []string{"cls"})
	want := []string{"suv", "compact", "pickup"}
	if got := s.Levels(); !reflect.DeepEqual(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestDiscreteMap(t *testing.T) {
	s := NewDiscrete("x")
	s.Train([]string{"a", "b", "c"}, false)
	got := s.Map([]string{"b", "a", "z", "c"})
	if got[0] != 2 || got[1] != 1 || got[3] != 3 {
		t.Errorf("Map = %v, want [2 1 NaN 3]", got)
	}
	if !math.IsNaN(got[2]) {
		t.Errorf("Map of unseen level = %v, want NaN", got[2])
	}
}

func TestDiscreteMapDFWarnsOnUnseen(t *testing.T) {
	df := dataframe.NewBuilder().
		AddStrings("x", []string{"a", "z"}).
		MustDone()

	s := NewDiscrete("x")
	s.DeclaredLevels = []string{"a", "b"}
	warn := warnings.NewCollector(nil)
	out := s.MapDF(df, []string{"x"}, warn)

	if !warn.HasKind(warnings.KindDroppedRows) {
		t.Error("expected a dropped-rows warning for unseen level")
	}
	vals := out.Floats("x")
	if vals[0] != 1 || !math.IsNaN(vals[1]) {
		t.Errorf("mapped = %v, want [1 NaN]", vals)
	}
}

func TestLinearBreaks(t *testing.T) {
	tests := []struct {
		name string
		lo   float64
		hi   float64
		max  int
		want []float64
	}{
		{
			name: "UnitRange",
			lo:   0, hi: 1, max: 6,
			want: []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
		},
		{
			name: "Hundreds",
			lo:   0, hi: 100, max: 6,
			want: []float64{0, 20, 40, 60, 80, 100},
		},
		{
			name: "Degenerate",
			lo:   5, hi: 5, max: 5,
			want: []float64{5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinearBreaks(tt.lo, tt.hi, tt.max)
			if len(got) != len(tt.want) {
				t.Fatalf("LinearBreaks = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("break[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLinearTicker(t *testing.T) {
	var _ moremath.Ticker = linearTicker{}

	tk := linearTicker{lo: 0, hi: 100}
	for _, level := range []int{0, 3, 4, 5, 6} {
		ticks := tk.TicksAtLevel(level).([]float64)
		if got := tk.CountTicks(level); got != len(ticks) {
			t.Errorf("level %d: CountTicks = %d, TicksAtLevel has %d", level, got, len(ticks))
		}
	}

	ticks := tk.TicksAtLevel(6).([]float64)
	want := []float64{0, 100}
	if len(ticks) != len(want) || ticks[0] != want[0] || ticks[1] != want[1] {
		t.Errorf("TicksAtLevel(6) = %v, want %v", ticks, want)
	}
}

func TestLinearBreaksRespectsMax(t *testing.T) {
	got := LinearBreaks(0, 97, 5)
	if len(got) > 5 {
		t.Errorf("got %d breaks, want at most 5: %v", len(got), got)
	}
	if len(got) < 2 {
		t.Errorf("got %d breaks, want at least 2: %v", len(got), got)
	}
}

func TestFormatBreaks(t *testing.T) {
	got := FormatBreaks([]float64{0, 1, 2}, TransLog10)
	want := []string{"1", "10", "100"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FormatBreaks = %v, want %v", got, want)
	}
}

func TestScaleInterfaceSatisfaction(t *testing.T) {
	scales := []Scale{
		NewContinuous("x"),
		NewDiscrete("x"),
		NewDiscreteColor("color"),
		NewDiscretePalette("shape", ShapePalette),
		NewContinuousColor("fill"),
		NewContinuousRange("size", [2]float64{1, 6}, true),
	}

	wantDiscrete := []bool{false, true, true, true, false, false}
	for i, s := range scales {
		if got := s.Discrete(); got != wantDiscrete[i] {
			t.Errorf("%T.Discrete() = %v, want %v", s, got, wantDiscrete[i])
		}
	}
}

func TestHuePaletteDistinct(t *testing.T) {
	p := HuePalette(4)
	seen := map[string]bool{}
	for _, c := range p {
		if seen[c] {
			t.Fatalf("duplicate color %s in palette %v", c, p)
		}
		seen[c] = true
	}
}

func TestContinuousColorGradient(t *testing.T) {
	s := NewContinuousColor("fill")
	s.Train([]float64{0, 10})
	df := dataframe.NewBuilder().
		AddFloats("fill", []float64{0, 10}).
		MustDone()
	out := s.MapDF(df, []string{"fill"}, nil)
	cols := out.Strings("fill")
	if cols[0] != "#132B43" {
		t.Errorf("low end = %s, want #132B43", cols[0])
	}
	if cols[1] != "#56B1F7" {
		t.Errorf("high end = %s, want #56B1F7", cols[1])
	}
}

func TestExpandedRange(t *testing.T) {
	s := NewContinuous("x")
	s.Train([]float64{0, 10})
	lo, hi := s.ExpandedRange()
	if math.Abs(lo+0.5) > 1e-9 || math.Abs(hi-10.5) > 1e-9 {
		t.Errorf("ExpandedRange = (%v, %v), want (-0.5, 10.5)", lo, hi)
	}

	d := NewDiscrete("x")
	d.Train([]string{"a", "b", "c"}, false)
	lo, hi = d.ExpandedRange()
	if lo != 0.4 || hi != 3.6 {
		t.Errorf("discrete ExpandedRange = (%v, %v), want (0.4, 3.6)", lo, hi)
	}
}
