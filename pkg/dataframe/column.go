package dataframe

import (
	"math"
	"strconv"
)

// =============================================================================
// Column Kinds
// =============================================================================

// Kind identifies the element type of a column.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindString
	KindBool
	KindFactor
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindFactor:
		return "factor"
	default:
		return "unknown"
	}
}

// Discrete reports whether values of this kind partition data into
// categories. Float and int columns are continuous; everything else is
// discrete.
func (k Kind) Discrete() bool {
	return k == KindString || k == KindBool || k == KindFactor
}

// =============================================================================
// Column Interface
// =============================================================================

// Column is a typed, fixed-length vector of values.
//
// Implementations are plain slices (plus level metadata for factors).
// A Column stored in a DataFrame must not be mutated afterwards; transforming
// operations allocate fresh backing storage.
type Column interface {
	Kind() Kind
	Len() int

	// Take returns a new column holding the values at the given row
	// indices, in order. Indices may repeat.
	Take(idx []int) Column

	// AppendCol returns a new column that is the concatenation of the
	// receiver and other. other must have the same kind (factor levels are
	// merged).
	AppendCol(other Column) Column

	// Key returns a stable string representation of row i, used for
	// grouping and join keys. NA values map to the empty key.
	Key(i int) string

	// IsNA reports whether row i holds a missing value.
	IsNA(i int) bool
}

// =============================================================================
// Concrete Columns
// =============================================================================

// Floats is a continuous column of float64 values. NaN marks missing values.
type Floats []float64

func (c Floats) Kind() Kind { return KindFloat }
func (c Floats) Len() int   { return len(c) }

func (c Floats) Take(idx []int) Column {
	out := make(Floats, len(idx))
	for i, j := range idx {
		out[i] = c[j]
	}
	return out
}

func (c Floats) AppendCol(other Column) Column {
	o := toFloats(other)
	out := make(Floats, 0, len(c)+len(o))
	out = append(out, c...)
	out = append(out, o...)
	return out
}

func (c Floats) Key(i int) string {
	if math.IsNaN(c[i]) {
		return ""
	}
	return strconv.FormatFloat(c[i], 'g', -1, 64)
}

func (c Floats) IsNA(i int) bool { return math.IsNaN(c[i]) }

// Ints is a continuous column of integers. Ints have no missing value.
type Ints []int

func (c Ints) Kind() Kind { return KindInt }
func (c Ints) Len() int   { return len(c) }

func (c Ints) Take(idx []int) Column {
	out := make(Ints, len(idx))
	for i, j := range idx {
		out[i] = c[j]
	}
	return out
}

func (c Ints) AppendCol(other Column) Column {
	switch o := other.(type) {
	case Ints:
		out := make(Ints, 0, len(c)+len(o))
		out = append(out, c...)
		out = append(out, o...)
		return out
	default:
		// Mixed numeric concatenation promotes to float.
		return toFloatsCol(c).AppendCol(other)
	}
}

func (c Ints) Key(i int) string { return strconv.Itoa(c[i]) }
func (c Ints) IsNA(i int) bool  { return false }

// Strings is a discrete column of strings. The empty string marks a missing
// value.
type Strings []string

func (c Strings) Kind() Kind { return KindString }
func (c Strings) Len() int   { return len(c) }

func (c Strings) Take(idx []int) Column {
	out := make(Strings, len(idx))
	for i, j := range idx {
		out[i] = c[j]
	}
	return out
}

func (c Strings) AppendCol(other Column) Column {
	o, ok := other.(Strings)
	if !ok {
		o = toStrings(other)
	}
	out := make(Strings, 0, len(c)+len(o))
	out = append(out, c...)
	out = append(out, o...)
	return out
}

func (c Strings) Key(i int) string { return c[i] }
func (c Strings) IsNA(i int) bool  { return c[i] == "" }

// Bools is a discrete column of booleans.
type Bools []bool

func (c Bools) Kind() Kind { return KindBool }
func (c Bools) Len() int   { return len(c) }

func (c Bools) Take(idx []int) Column {
	out := make(Bools, len(idx))
	for i, j := range idx {
		out[i] = c[j]
	}
	return out
}

func (c Bools) AppendCol(other Column) Column {
	o := other.(Bools)
	out := make(Bools, 0, len(c)+len(o))
	out = append(out, c...)
	out = append(out, o...)
	return out
}

func (c Bools) Key(i int) string {
	if c[i] {
		return "true"
	}
	return "false"
}

func (c Bools) IsNA(i int) bool { return false }

// Factor is a discrete column whose values come from an ordered level set.
// Codes index into Levels; a code of -1 marks a missing value.
type Factor struct {
	Levels []string
	Codes  []int
}

// NewFactor builds a factor from raw values and an explicit level order.
// Values not present in levels become missing. If levels is nil, levels are
// the distinct values in first-seen order.
func NewFactor(values []string, levels []string) Factor {
	if levels == nil {
		seen := make(map[string]bool, len(values))
		for _, v := range values {
			if v != "" && !seen[v] {
				seen[v] = true
				levels = append(levels, v)
			}
		}
	}
	pos := make(map[string]int, len(levels))
	for i, l := range levels {
		pos[l] = i
	}
	codes := make([]int, len(values))
	for i, v := range values {
		if p, ok := pos[v]; ok {
			codes[i] = p
		} else {
			codes[i] = -1
		}
	}
	return Factor{Levels: levels, Codes: codes}
}

func (c Factor) Kind() Kind { return KindFactor }
func (c Factor) Len() int   { return len(c.Codes) }

func (c Factor) Take(idx []int) Column {
	codes := make([]int, len(idx))
	for i, j := range idx {
		codes[i] = c.Codes[j]
	}
	return Factor{Levels: c.Levels, Codes: codes}
}

func (c Factor) AppendCol(other Column) Column {
	o := other.(Factor)
	levels := append([]string(nil), c.Levels...)
	pos := make(map[string]int, len(levels))
	for i, l := range levels {
		pos[l] = i
	}
	remap := make([]int, len(o.Levels))
	for i, l := range o.Levels {
		p, ok := pos[l]
		if !ok {
			p = len(levels)
			levels = append(levels, l)
			pos[l] = p
		}
		remap[i] = p
	}
	codes := make([]int, 0, c.Len()+o.Len())
	codes = append(codes, c.Codes...)
	for _, code := range o.Codes {
		if code < 0 {
			codes = append(codes, -1)
		} else {
			codes = append(codes, remap[code])
		}
	}
	return Factor{Levels: levels, Codes: codes}
}

func (c Factor) Key(i int) string {
	if c.Codes[i] < 0 {
		return ""
	}
	return c.Levels[c.Codes[i]]
}

func (c Factor) IsNA(i int) bool { return c.Codes[i] < 0 }

// Value returns the string value at row i, or "" for missing.
func (c Factor) Value(i int) string { return c.Key(i) }

// =============================================================================
// Conversions
// =============================================================================

// toFloats coerces a numeric column to a float slice.
func toFloats(c Column) Floats {
	switch v := c.(type) {
	case Floats:
		return v
	case Ints:
		out := make(Floats, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out
	default:
		out := make(Floats, c.Len())
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
}

func toFloatsCol(c Column) Column { return toFloats(c) }

// toStrings coerces any column to its key representation.
func toStrings(c Column) Strings {
	out := make(Strings, c.Len())
	for i := range out {
		out[i] = c.Key(i)
	}
	return out
}

// naColumn returns an all-missing column of n rows matching the kind of
// proto. Used when concatenating tables with differing column sets.
func naColumn(proto Column, n int) Column {
	switch p := proto.(type) {
	case Floats:
		out := make(Floats, n)
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	case Ints:
		return make(Ints, n)
	case Strings:
		return make(Strings, n)
	case Bools:
		return make(Bools, n)
	case Factor:
		codes := make([]int, n)
		for i := range codes {
			codes[i] = -1
		}
		return Factor{Levels: p.Levels, Codes: codes}
	default:
		return make(Strings, n)
	}
}
