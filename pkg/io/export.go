package io

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/plot"
)

type built struct {
	Title    string    `json:"title,omitempty"`
	XLab     string    `json:"xlab,omitempty"`
	YLab     string    `json:"ylab,omitempty"`
	Layout   layout    `json:"layout"`
	Panels   []panel   `json:"panels"`
	Layers   []layer   `json:"layers"`
	Warnings []warning `json:"warnings,omitempty"`
}

type layout struct {
	NRow int      `json:"nrow"`
	NCol int      `json:"ncol"`
	Vars []string `json:"vars,omitempty"`
}

type panel struct {
	Panel   int               `json:"panel"`
	Row     int               `json:"row"`
	Col     int               `json:"col"`
	Vars    map[string]string `json:"vars,omitempty"`
	XRange  [2]float64        `json:"x_range"`
	YRange  [2]float64        `json:"y_range"`
	XBreaks []float64         `json:"x_breaks,omitempty"`
	YBreaks []float64         `json:"y_breaks,omitempty"`
	XLabels []string          `json:"x_labels,omitempty"`
	YLabels []string          `json:"y_labels,omitempty"`
}

type layer struct {
	Geom    string         `json:"geom"`
	Columns map[string]any `json:"columns"`
}

type warning struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// WriteJSON encodes a built plot as JSON and writes it to w.
// The output carries the panel layout with per-panel ranges and breaks,
// every layer's final data columns, and the build warnings, so external
// renderers can draw the plot without rebuilding it.
func WriteJSON(b *plot.Built, w io.Writer) error {
	out := built{
		Title: b.Title,
		XLab:  b.XLab,
		YLab:  b.YLab,
		Layout: layout{
			NRow: b.Layout.NRow,
			NCol: b.Layout.NCol,
			Vars: b.Layout.Vars,
		},
		Panels: make([]panel, len(b.Panels)),
		Layers: make([]layer, len(b.Layers)),
	}

	for i, bp := range b.Panels {
		out.Panels[i] = panel{
			Panel:   bp.Panel.Panel,
			Row:     bp.Panel.Row,
			Col:     bp.Panel.Col,
			Vars:    bp.Panel.Vars,
			XRange:  bp.Ranges.X,
			YRange:  bp.Ranges.Y,
			XBreaks: bp.Ranges.XBreaks,
			YBreaks: bp.Ranges.YBreaks,
			XLabels: bp.Ranges.XLabels,
			YLabels: bp.Ranges.YLabels,
		}
	}

	for i, bl := range b.Layers {
		out.Layers[i] = layer{
			Geom:    string(bl.Geom.Kind()),
			Columns: columnsOf(bl.Data),
		}
	}

	for _, w := range b.Warnings {
		out.Warnings = append(out.Warnings, warning{
			Kind:    string(w.Kind),
			Message: w.Message,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a built plot to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(b *plot.Built, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(b, f)
}

// columnsOf flattens a data frame into name-to-values pairs. Numeric
// columns export as float arrays with NaN encoded as null; everything
// else exports as strings.
func columnsOf(df dataframe.DataFrame) map[string]any {
	cols := make(map[string]any, df.NCols())
	for _, name := range df.Names() {
		col := df.MustColumn(name)
		if col.Kind().Discrete() {
			cols[name] = df.Strings(name)
			continue
		}
		vals := df.Floats(name)
		out := make([]any, len(vals))
		for i, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				out[i] = nil
				continue
			}
			out[i] = v
		}
		cols[name] = out
	}
	return cols
}
