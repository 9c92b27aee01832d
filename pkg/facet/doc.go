// Package facet computes panel layouts and assigns data rows to panels.
//
// # Overview
//
// A Facet turns the distinct combinations of its faceting variables into
// a table of panels, each with a row and column position and an x and y
// scale slot. Fixed scales share slot 1 across every panel; free scales
// give each panel (or each grid row or column) its own slot. MapData
// tags every data row with the panel it belongs to; layers that do not
// carry the faceting variables are repeated into every panel.
package facet
