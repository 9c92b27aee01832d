package errors

import (
	"regexp"
	"unicode"
)

// validAesNames is the closed set of aesthetic names the pipeline understands.
// Position aesthetics (x, y and their derived min/max/end forms) are mapped
// through position scales; the rest through non-position scales.
var validAesNames = map[string]bool{
	"x": true, "y": true,
	"xmin": true, "xmax": true, "xend": true,
	"ymin": true, "ymax": true, "yend": true,
	"color": true, "fill": true, "alpha": true,
	"size": true, "shape": true, "linetype": true,
	"group": true, "weight": true, "label": true,
}

// ValidateAesName validates an aesthetic name in a mapping.
func ValidateAesName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidMapping, "aesthetic name cannot be empty")
	}
	if !validAesNames[name] {
		return New(ErrCodeInvalidMapping, "unknown aesthetic %q", name)
	}
	return nil
}

// columnNameRegex matches plain column references in aesthetic mappings.
var columnNameRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_. ]*$`)

// factorExprRegex matches the single supported expression form: factor(col),
// which re-types a numeric column as discrete.
var factorExprRegex = regexp.MustCompile(`^factor\(([A-Za-z_][A-Za-z0-9_. ]*)\)$`)

// ValidateColumnRef validates an aesthetic mapping target: either a column
// name or a factor(col) expression. ParseColumnRef extracts the pieces.
func ValidateColumnRef(ref string) error {
	if ref == "" {
		return New(ErrCodeInvalidMapping, "column reference cannot be empty")
	}
	for _, r := range ref {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidMapping, "column reference contains control characters")
		}
	}
	if columnNameRegex.MatchString(ref) || factorExprRegex.MatchString(ref) {
		return nil
	}
	return New(ErrCodeInvalidMapping, "invalid column reference %q", ref)
}

// ParseColumnRef splits an aesthetic mapping target into the referenced
// column name and whether it is wrapped in factor(...).
func ParseColumnRef(ref string) (column string, asFactor bool) {
	if m := factorExprRegex.FindStringSubmatch(ref); m != nil {
		return m[1], true
	}
	return ref, false
}

// ValidateVariableName validates a facet variable name.
func ValidateVariableName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFacet, "facet variable cannot be empty")
	}
	if !columnNameRegex.MatchString(name) {
		return New(ErrCodeInvalidFacet, "invalid facet variable %q", name)
	}
	return nil
}
