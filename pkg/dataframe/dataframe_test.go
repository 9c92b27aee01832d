package dataframe

import (
	"math"
	"testing"
)

func TestBuilder(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (DataFrame, error)
		wantErr bool
		check   func(t *testing.T, df DataFrame)
	}{
		{
			name: "Empty",
			build: func() (DataFrame, error) {
				return NewBuilder().Done()
			},
			check: func(t *testing.T, df DataFrame) {
				if df.NRows() != 0 || df.NCols() != 0 {
					t.Errorf("got %dx%d, want empty", df.NRows(), df.NCols())
				}
			},
		},
		{
			name: "TwoColumns",
			build: func() (DataFrame, error) {
				return NewBuilder().
					AddFloats("x", []float64{1, 2, 3}).
					AddStrings("g", []string{"a", "b", "a"}).
					Done()
			},
			check: func(t *testing.T, df DataFrame) {
				if df.NRows() != 3 || df.NCols() != 2 {
					t.Errorf("got %dx%d, want 3x2", df.NRows(), df.NCols())
				}
			},
		},
		{
			name: "LengthMismatch",
			build: func() (DataFrame, error) {
				return NewBuilder().
					AddFloats("x", []float64{1, 2}).
					AddStrings("g", []string{"a"}).
					Done()
			},
			wantErr: true,
		},
		{
			name: "DuplicateName",
			build: func() (DataFrame, error) {
				return NewBuilder().
					AddFloats("x", []float64{1}).
					AddFloats("x", []float64{2}).
					Done()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df, err := tt.build()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, df)
			}
		})
	}
}

func TestWithColumnDoesNotMutate(t *testing.T) {
	df := NewBuilder().AddFloats("x", []float64{1, 2}).MustDone()
	out := df.WithColumn("y", Floats{3, 4})

	if df.Has("y") {
		t.Error("WithColumn mutated the receiver")
	}
	if !out.Has("y") {
		t.Error("result missing added column")
	}
}

func TestTake(t *testing.T) {
	df := NewBuilder().
		AddFloats("x", []float64{10, 20, 30}).
		AddStrings("g", []string{"a", "b", "c"}).
		MustDone()

	out := df.Take([]int{2, 0, 2})
	want := []float64{30, 10, 30}
	got := out.Floats("x")
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("x[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestConcatUnionsColumns(t *testing.T) {
	a := NewBuilder().AddFloats("x", []float64{1}).AddStrings("g", []string{"a"}).MustDone()
	b := NewBuilder().AddFloats("x", []float64{2}).AddFloats("y", []float64{9}).MustDone()

	out := Concat(a, b)
	if out.NRows() != 2 {
		t.Fatalf("rows = %d, want 2", out.NRows())
	}
	if !out.Has("g") || !out.Has("y") {
		t.Fatal("missing union columns")
	}

	// b had no g: filled with NA. a had no y: filled with NaN.
	g, _ := out.Column("g")
	if !g.IsNA(1) {
		t.Error("g[1] should be missing")
	}
	y := out.Floats("y")
	if !math.IsNaN(y[0]) {
		t.Error("y[0] should be NaN")
	}
	if y[1] != 9 {
		t.Errorf("y[1] = %v, want 9", y[1])
	}
}

func TestGroupBy(t *testing.T) {
	df := NewBuilder().
		AddStrings("g", []string{"b", "a", "b", "a"}).
		AddFloats("x", []float64{1, 2, 3, 4}).
		MustDone()

	groups := df.GroupBy("g")
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	// First-appearance order: b, then a.
	if groups[0].Key != "b" || groups[1].Key != "a" {
		t.Errorf("group order = %q,%q, want b,a", groups[0].Key, groups[1].Key)
	}
	if len(groups[0].Rows) != 2 || groups[0].Rows[0] != 0 || groups[0].Rows[1] != 2 {
		t.Errorf("rows for b = %v, want [0 2]", groups[0].Rows)
	}
}

func TestFactorLevels(t *testing.T) {
	f := NewFactor([]string{"lo", "hi", "lo"}, []string{"lo", "mid", "hi"})
	if f.Codes[1] != 2 {
		t.Errorf("code for hi = %d, want 2", f.Codes[1])
	}

	other := NewFactor([]string{"new"}, nil)
	merged := f.AppendCol(other).(Factor)
	if len(merged.Levels) != 4 {
		t.Errorf("merged levels = %v, want 4 entries", merged.Levels)
	}
	if merged.Key(3) != "new" {
		t.Errorf("merged value = %q, want new", merged.Key(3))
	}
}

func TestConstantColumns(t *testing.T) {
	df := NewBuilder().
		AddStrings("g", []string{"a", "a", "a"}).
		AddFloats("x", []float64{1, 2, 3}).
		MustDone()

	consts := df.ConstantColumns([]int{0, 1, 2})
	if len(consts) != 1 || consts[0] != "g" {
		t.Errorf("constant columns = %v, want [g]", consts)
	}
}

func TestResolution(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		zero bool
		want float64
	}{
		{"Unit", []float64{1, 2, 3}, false, 1},
		{"Half", []float64{0.5, 1.0, 2.0}, false, 0.5},
		{"WithZero", []float64{5, 10}, true, 5},
		{"Single", []float64{7}, false, 1},
		{"IgnoresNaN", []float64{math.NaN(), 1, 4}, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolution(tt.x, tt.zero); got != tt.want {
				t.Errorf("Resolution = %v, want %v", got, tt.want)
			}
		})
	}
}
