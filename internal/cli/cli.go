package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plotgram/plotgram/pkg/cache"
	"github.com/plotgram/plotgram/pkg/dataframe"
	"github.com/plotgram/plotgram/pkg/io"
	"github.com/plotgram/plotgram/pkg/plot"
)

// appName is the application name used for directories and display.
const appName = "plotgram"

// =============================================================================
// Cache Setup
// =============================================================================

// newCache selects the cache backend: null when disabled, Redis when an
// address is given, otherwise the XDG file cache. All backends are
// wrapped with hook instrumentation.
func newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: redisAddr})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return cache.NewInstrumented(c), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.NewInstrumented(c), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/plotgram/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Input Loading
// =============================================================================

// inputs holds a loaded specification and its data, plus the raw bytes
// for cache keying.
type inputs struct {
	spec      *io.Spec
	specBytes []byte
	data      dataframe.DataFrame
	dataBytes []byte
}

// loadInputs reads the TOML specification at specPath and its CSV data.
// A non-empty dataOverride wins over the spec's own data path, which
// resolves relative to the specification file.
func loadInputs(specPath, dataOverride string) (*inputs, error) {
	specBytes, err := os.ReadFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	spec, err := io.ImportSpec(specPath)
	if err != nil {
		return nil, err
	}

	dataPath := dataOverride
	if dataPath == "" {
		if spec.Data.Path == "" {
			return nil, fmt.Errorf("no data: spec has no [data] path and --data was not given")
		}
		dataPath = filepath.Join(filepath.Dir(specPath), spec.Data.Path)
	}
	dataBytes, err := os.ReadFile(dataPath)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	data, err := io.ImportCSV(dataPath)
	if err != nil {
		return nil, err
	}

	return &inputs{spec: spec, specBytes: specBytes, data: data, dataBytes: dataBytes}, nil
}

// buildKey derives the cache key for a build from the input content.
func (in *inputs) buildKey(keyer cache.Keyer) string {
	return keyer.BuildKey(cache.Hash(in.dataBytes), cache.BuildKeyOpts{
		SpecHash: cache.Hash(in.specBytes),
	})
}

// build runs the plot pipeline over the loaded inputs.
func (in *inputs) build(ctx context.Context) (*plot.Built, error) {
	p, err := in.spec.Plot(in.data)
	if err != nil {
		return nil, err
	}
	return plot.Build(ctx, p)
}
