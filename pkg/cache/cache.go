// Package cache provides caching for plot pipeline artifacts.
//
// Building a plot is deterministic: the same specification over the same
// data always produces the same result. That makes every pipeline stage
// cacheable by content hash. This package defines the storage interface,
// backends for different deployment shapes, and the key scheme.
//
// # Backends
//
//   - [FileCache]: directory-backed storage for CLI usage
//   - [RedisCache]: Redis-backed storage for multi-instance servers
//   - [NullCache]: no-op storage for tests or disabled caching
//
// # Keys
//
// The [Keyer] interface generates keys for the three artifact types:
// imported data tables, built plots, and rendered outputs. Keys are
// content hashes, so a change anywhere upstream invalidates everything
// downstream.
package cache

import (
	"context"
	"time"
)

// Cache stores pipeline artifacts by key.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// BuildKeyOpts distinguishes builds of the same specification.
type BuildKeyOpts struct {
	// SpecHash is the content hash of the plot specification.
	SpecHash string
}

// RenderKeyOpts distinguishes renders of the same built plot.
type RenderKeyOpts struct {
	Format string
	Width  float64
	Height float64
	Scale  float64
}

// Keyer generates cache keys for pipeline artifacts.
type Keyer interface {
	// DataKey keys an imported data table by the source content hash.
	DataKey(sourceHash string) string

	// BuildKey keys a built plot by its data hash and build options.
	BuildKey(dataHash string, opts BuildKeyOpts) string

	// RenderKey keys a rendered output by its build hash and render
	// options.
	RenderKey(buildHash string, opts RenderKeyOpts) string
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DataKey generates a key for an imported data table.
func (k *DefaultKeyer) DataKey(sourceHash string) string {
	return "data:" + sourceHash
}

// BuildKey generates a key for a built plot.
// The options are hashed into the key, so two builds of the same data
// with different specifications never collide.
func (k *DefaultKeyer) BuildKey(dataHash string, opts BuildKeyOpts) string {
	return hashKey("build", dataHash, opts)
}

// RenderKey generates a key for a rendered output.
func (k *DefaultKeyer) RenderKey(buildHash string, opts RenderKeyOpts) string {
	return hashKey("render", buildHash, opts)
}
