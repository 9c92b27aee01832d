package io

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/plotgram/plotgram/pkg/coord"
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/facet"
	"github.com/plotgram/plotgram/pkg/geom"
	"github.com/plotgram/plotgram/pkg/plot"
	"github.com/plotgram/plotgram/pkg/position"
	"github.com/plotgram/plotgram/pkg/scale"
	"github.com/plotgram/plotgram/pkg/stat"
)

// Spec is a declarative plot specification as decoded from TOML.
type Spec struct {
	Title string `toml:"title"`
	XLab  string `toml:"xlab"`
	YLab  string `toml:"ylab"`

	// Data optionally names the CSV file the plot draws from, relative
	// to the specification file.
	Data struct {
		Path string `toml:"path"`
	} `toml:"data"`

	Mapping map[string]string `toml:"mapping"`
	Layers  []LayerSpec       `toml:"layer"`
	Facet   *FacetSpec        `toml:"facet"`
	Coord   *CoordSpec        `toml:"coord"`
	Scales  []ScaleSpec       `toml:"scale"`
}

// LayerSpec configures one layer.
type LayerSpec struct {
	Geom     string            `toml:"geom"`
	Stat     string            `toml:"stat"`
	Position string            `toml:"position"`
	Mapping  map[string]string `toml:"mapping"`

	// Stat tuning.
	Bins     int      `toml:"bins"`
	Binwidth float64  `toml:"binwidth"`
	Boundary *float64 `toml:"boundary"`
	Adjust   float64  `toml:"adjust"`
	Fun      string   `toml:"fun"`

	// Position tuning.
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Padding  *float64 `toml:"padding"`
	Preserve string   `toml:"preserve"`
	VJust    *float64 `toml:"vjust"`
	Reverse  bool     `toml:"reverse"`
	Seed     *int64   `toml:"seed"`
}

// FacetSpec configures panel layout. Wrap and Rows/Cols are mutually
// exclusive.
type FacetSpec struct {
	Wrap []string `toml:"wrap"`
	Rows []string `toml:"rows"`
	Cols []string `toml:"cols"`

	NRow  int    `toml:"nrow"`
	NCol  int    `toml:"ncol"`
	Dir   string `toml:"dir"`
	FreeX bool   `toml:"free_x"`
	FreeY bool   `toml:"free_y"`
}

// CoordSpec configures the coordinate system.
type CoordSpec struct {
	Kind string `toml:"kind"`

	// X and Y name axis transforms for the trans coordinate system.
	X string `toml:"x"`
	Y string `toml:"y"`
}

// ScaleSpec overrides the default scale for one aesthetic.
type ScaleSpec struct {
	Aes    string    `toml:"aes"`
	Trans  string    `toml:"trans"`
	Limits []float64 `toml:"limits"`
	Levels []string  `toml:"levels"`

	// Discrete forces a discrete scale even without declared levels.
	Discrete bool `toml:"discrete"`
}

// ReadSpec decodes a TOML plot specification from r.
// ReadSpec does not close r.
func ReadSpec(r io.Reader) (*Spec, error) {
	var s Spec
	if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	return &s, nil
}

// ImportSpec reads a TOML specification file at path.
func ImportSpec(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadSpec(f)
}

// Plot turns the specification into a plot over data. Geom, stat,
// position, coord, and transform names resolve through the package
// registries, so unknown names fail here rather than at build time.
func (s *Spec) Plot(data dataframe.DataFrame) (*plot.Plot, error) {
	p := plot.New(data, plot.Aes(s.Mapping))
	p.Title, p.XLab, p.YLab = s.Title, s.XLab, s.YLab

	for i, ls := range s.Layers {
		layer, err := ls.layer()
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i+1, err)
		}
		p.AddLayer(layer)
	}

	if s.Facet != nil {
		f, err := s.Facet.facet()
		if err != nil {
			return nil, fmt.Errorf("facet: %w", err)
		}
		p.Facet = f
	}

	if s.Coord != nil {
		c, err := s.Coord.coord()
		if err != nil {
			return nil, fmt.Errorf("coord: %w", err)
		}
		p.Coord = c
	}

	for _, sc := range s.Scales {
		built, err := sc.scale()
		if err != nil {
			return nil, fmt.Errorf("scale %q: %w", sc.Aes, err)
		}
		p.AddScale(built)
	}

	return p, nil
}

func (ls LayerSpec) layer() (*plot.Layer, error) {
	kind := geom.Kind(ls.Geom)
	if kind == "" {
		kind = geom.KindPoint
	}
	if _, err := geom.New(kind); err != nil {
		return nil, err
	}
	if ls.Stat != "" {
		if _, err := stat.New(stat.Kind(ls.Stat), stat.Params{}); err != nil {
			return nil, err
		}
	}
	if ls.Position != "" {
		if _, err := position.New(position.Kind(ls.Position), position.Params{}); err != nil {
			return nil, err
		}
	}
	return &plot.Layer{
		Mapping:  plot.Aes(ls.Mapping),
		Geom:     kind,
		Stat:     stat.Kind(ls.Stat),
		Position: position.Kind(ls.Position),
		StatParams: stat.Params{
			Width:    ls.Width,
			Bins:     ls.Bins,
			Binwidth: ls.Binwidth,
			Boundary: ls.Boundary,
			Adjust:   ls.Adjust,
			FunY:     ls.Fun,
		},
		PositionParams: position.Params{
			Width:    ls.Width,
			Height:   ls.Height,
			VJust:    ls.VJust,
			Padding:  ls.Padding,
			Preserve: ls.Preserve,
			Reverse:  ls.Reverse,
			Seed:     ls.Seed,
		},
	}, nil
}

func (fs FacetSpec) facet() (facet.Facet, error) {
	switch {
	case len(fs.Wrap) > 0 && (len(fs.Rows) > 0 || len(fs.Cols) > 0):
		return nil, fmt.Errorf("wrap and rows/cols are mutually exclusive")
	case len(fs.Wrap) > 0:
		w := facet.NewWrap(fs.Wrap...)
		w.NRow, w.NCol = fs.NRow, fs.NCol
		if fs.Dir != "" {
			w.Dir = fs.Dir
		}
		w.FreeX, w.FreeY = fs.FreeX, fs.FreeY
		return w, nil
	case len(fs.Rows) > 0 || len(fs.Cols) > 0:
		return &facet.Grid{
			RowVars: fs.Rows,
			ColVars: fs.Cols,
			FreeX:   fs.FreeX,
			FreeY:   fs.FreeY,
		}, nil
	default:
		return nil, fmt.Errorf("facet table names no variables")
	}
}

func (cs CoordSpec) coord() (coord.Coord, error) {
	c, err := coord.New(coord.Kind(cs.Kind))
	if err != nil {
		return nil, err
	}
	if tr, ok := c.(coord.Trans); ok {
		if tr.X, err = scale.TransformByName(cs.X); err != nil {
			return nil, err
		}
		if tr.Y, err = scale.TransformByName(cs.Y); err != nil {
			return nil, err
		}
		return tr, nil
	}
	return c, nil
}

func (sc ScaleSpec) scale() (scale.Scale, error) {
	if sc.Aes == "" {
		return nil, fmt.Errorf("scale table names no aesthetic")
	}
	if len(sc.Levels) > 0 || sc.Discrete {
		if sc.Aes == "color" || sc.Aes == "fill" {
			d := scale.NewDiscreteColor(sc.Aes)
			d.DeclaredLevels = sc.Levels
			return d, nil
		}
		d := scale.NewDiscrete(sc.Aes)
		d.DeclaredLevels = sc.Levels
		return d, nil
	}
	if sc.Aes == "color" || sc.Aes == "fill" {
		return scale.NewContinuousColor(sc.Aes), nil
	}

	c := scale.NewContinuous(sc.Aes)
	if sc.Trans != "" {
		tr, err := scale.TransformByName(sc.Trans)
		if err != nil {
			return nil, err
		}
		c.Trans = tr
	}
	switch len(sc.Limits) {
	case 0:
	case 2:
		c.Limits = &[2]float64{sc.Limits[0], sc.Limits[1]}
	default:
		return nil, fmt.Errorf("limits needs exactly two values, got %d", len(sc.Limits))
	}
	return c, nil
}
