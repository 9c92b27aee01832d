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
)

// buildTTL is how long built plots stay cached. Inputs are content
// hashed, so the TTL only bounds disk growth.
const buildTTL = 0

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	data    string // CSV data file overriding the spec's [data] path
	output  string // output JSON path, default derived from the spec path
	noCache bool   // bypass the artifact cache
	redis   string // Redis address for the artifact cache
}

// newBuildCmd creates the build command. It runs the full pipeline over
// a TOML specification and CSV data and exports the built plot as JSON.
func newBuildCmd() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [spec.toml]",
		Short: "Build a plot and export the result as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "CSV data file (overrides the spec's [data] path)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: spec name with .json)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the artifact cache")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis address for the artifact cache")

	return cmd
}

func runBuild(ctx context.Context, specPath string, opts *buildOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	in, err := loadInputs(specPath, opts.data)
	if err != nil {
		return err
	}
	logger.Debug("loaded inputs", "rows", in.data.NRows(), "cols", in.data.NCols())

	store, err := newCache(ctx, opts.noCache, opts.redis)
	if err != nil {
		return err
	}
	defer store.Close()

	key := in.buildKey(cache.NewDefaultKeyer())
	payload, hit, err := store.Get(ctx, key)
	if err != nil {
		logger.Debug("cache get failed", "err", err)
	}

	var panels, layers, warned int
	if !hit {
		built, err := in.build(ctx)
		if err != nil {
			return err
		}
		panels, layers, warned = len(built.Panels), len(built.Layers), len(built.Warnings)
		for _, w := range built.Warnings {
			printWarning("%s", w.Message)
		}

		var buf bytes.Buffer
		if err := io.WriteJSON(built, &buf); err != nil {
			return err
		}
		payload = buf.Bytes()
		if err := store.Set(ctx, key, payload, buildTTL); err != nil {
			logger.Debug("cache set failed", "err", err)
		}
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(specPath, filepath.Ext(specPath)) + ".json"
	}
	if err := os.WriteFile(out, payload, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	prog.done("Build complete")
	printSuccess("Built %s", filepath.Base(specPath))
	printFile(out)
	if !hit {
		printStats(panels, layers, warned, false)
	} else {
		printStats(0, 0, 0, true)
	}
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, specPath))
	return nil
}
