package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/plotgram/plotgram/pkg/cache"
	"github.com/plotgram/plotgram/pkg/io"
	"github.com/plotgram/plotgram/pkg/plot"
	"github.com/plotgram/plotgram/pkg/render"
)

const (
	themeDefault = "default" // grey panels with white gridlines
	themeMinimal = "minimal" // white background with grey gridlines

	defaultWidth  = 720 // default SVG viewport width
	defaultHeight = 480 // default SVG viewport height
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	data    string   // CSV data file overriding the spec's [data] path
	output  string   // output file (single format) or base path (multiple)
	formats []string // output formats: "svg", "pdf", "png", "json"
	width   float64  // viewport width in pixels
	height  float64  // viewport height in pixels
	scale   float64  // PNG scale factor
	theme   string   // visual theme: "default" or "minimal"
	noCache bool     // bypass the artifact cache
	redis   string   // Redis address for the artifact cache
}

// newRenderCmd creates the render command for generating plot images.
// It supports SVG natively and PDF/PNG via rsvg-convert, plus JSON for
// external renderers.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width:  defaultWidth,
		height: defaultHeight,
		scale:  2.0,
		theme:  themeDefault,
	}

	cmd := &cobra.Command{
		Use:   "render [spec.toml]",
		Short: "Render a plot to SVG, PDF, or PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if err := validateTheme(opts.theme); err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "CSV data file (overrides the spec's [data] path)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json, pdf, png (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "frame width")
	cmd.Flags().Float64Var(&opts.height, "height", opts.height, "frame height")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().StringVar(&opts.theme, "theme", opts.theme, "visual theme: default, minimal")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the artifact cache")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["svg"].
func parseFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "json": true, "pdf": true, "png": true}

// validateFormats checks that all requested formats are valid.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return fmt.Errorf("invalid format: %s (must be 'svg', 'json', 'pdf', or 'png')", f)
		}
	}
	return nil
}

// validateTheme checks that the theme is either "default" or "minimal".
func validateTheme(s string) error {
	if s != themeDefault && s != themeMinimal {
		return fmt.Errorf("invalid theme: %s (must be 'default' or 'minimal')", s)
	}
	return nil
}

func runRender(ctx context.Context, specPath string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	in, err := loadInputs(specPath, opts.data)
	if err != nil {
		return err
	}

	built, err := in.build(ctx)
	if err != nil {
		return err
	}
	for _, w := range built.Warnings {
		printWarning("%s", w.Message)
	}

	theme := render.DefaultTheme()
	if opts.theme == themeMinimal {
		theme = render.MinimalTheme()
	}

	var svg bytes.Buffer
	renderer := render.NewSVG(&svg,
		render.WithSize(opts.width, opts.height),
		render.WithTheme(theme),
	)
	if err := built.Draw(renderer); err != nil {
		return err
	}

	store, err := newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer store.Close()
	keyer := cache.NewDefaultKeyer()
	buildHash := cache.Hash([]byte(in.buildKey(keyer)))

	for _, format := range opts.formats {
		out := outputPath(specPath, opts.output, format, len(opts.formats) > 1)

		var sp *Spinner
		if format == "pdf" || format == "png" {
			sp = newSpinnerWithContext(ctx, fmt.Sprintf("Converting to %s...", format))
			sp.Start()
		}
		payload, err := convert(ctx, store, keyer, buildHash, svg.Bytes(), built, format, opts)
		if sp != nil {
			sp.Stop()
		}
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, payload, 0644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}

	prog.done("Render complete")
	printSuccess("Rendered %s", filepath.Base(specPath))
	printStats(len(built.Panels), len(built.Layers), len(built.Warnings), false)
	return nil
}

// convert produces the payload for one output format, caching the
// expensive PDF/PNG conversions.
func convert(ctx context.Context, store cache.Cache, keyer cache.Keyer, buildHash string, svg []byte, built *plot.Built, format string, opts *renderOpts) ([]byte, error) {
	switch format {
	case "svg":
		return svg, nil
	case "json":
		var buf bytes.Buffer
		if err := io.WriteJSON(built, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "pdf", "png":
		key := keyer.RenderKey(buildHash, cache.RenderKeyOpts{
			Format: format,
			Width:  opts.width,
			Height: opts.height,
			Scale:  opts.scale,
		})
		if data, hit, _ := store.Get(ctx, key); hit {
			return data, nil
		}
		var data []byte
		var err error
		if format == "pdf" {
			data, err = render.ToPDF(svg)
		} else {
			data, err = render.ToPNG(svg, opts.scale)
		}
		if err != nil {
			return nil, err
		}
		_ = store.Set(ctx, key, data, 0)
		return data, nil
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}

// outputPath derives the output file path for one format.
func outputPath(specPath, output, format string, multi bool) string {
	base := strings.TrimSuffix(specPath, filepath.Ext(specPath))
	if output != "" {
		if multi {
			base = strings.TrimSuffix(output, filepath.Ext(output))
		} else {
			return output
		}
	}
	return base + "." + format
}
