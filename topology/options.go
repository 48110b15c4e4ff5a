// File: topology/options.go
// Author: momentics <momentics@gmail.com>
//
// Functional options customizing topology construction. Defaults wire
// the platform enumerator/describer (see defaults_*.go) and the built-in
// brand normalizer; every collaborator can be replaced, which is how the
// test suite drives the core with synthetic descriptor sets.

package topology

import (
	"github.com/momentics/cputopo/api"
	"github.com/momentics/cputopo/internal/normalize"
)

// Config holds the collaborators of one construction run.
type Config struct {
	Enumerator api.Enumerator
	Describer  api.Describer
	Normalizer api.Normalizer
	GPU        api.GPUQuery // optional
	Pinner     Pinner
}

// Option customizes topology construction.
type Option func(*Config)

// WithEnumerator replaces the logical-id enumerator.
func WithEnumerator(e api.Enumerator) Option {
	return func(c *Config) { c.Enumerator = e }
}

// WithDescriber replaces the per-processor describer.
func WithDescriber(d api.Describer) Option {
	return func(c *Config) { c.Describer = d }
}

// WithNormalizer replaces the brand-string normalizer.
func WithNormalizer(n api.Normalizer) Option {
	return func(c *Config) { c.Normalizer = n }
}

// WithGPUQuery attaches an optional GPU-name query for the first
// package.
func WithGPUQuery(q api.GPUQuery) Option {
	return func(c *Config) { c.GPU = q }
}

// WithPinner replaces thread-affinity control; intended for tests and
// embedders with their own pinning discipline.
func WithPinner(p Pinner) Option {
	return func(c *Config) { c.Pinner = p }
}

func newConfig(opts ...Option) *Config {
	cfg := &Config{
		Normalizer: normalize.Normalizer{},
		Pinner:     osPinner{},
	}
	platformDefaults(cfg)
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
