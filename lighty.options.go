package lighty

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	logger     *zap.Logger
	filters    []Filter
	tags       []TagSpec
	extensions []string
	roots      []string
	preload    bool
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{}
}

// WithLogger sets the logger for the engine and everything it creates.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithFilters registers extra filters after the built-ins.
// A filter with a built-in name replaces the built-in.
func WithFilters(filters ...Filter) Option {
	return func(c *engineConfig) {
		c.filters = append(c.filters, filters...)
	}
}

// WithTags registers extra tags after the built-ins.
func WithTags(tags ...TagSpec) Option {
	return func(c *engineConfig) {
		c.tags = append(c.tags, tags...)
	}
}

// WithExtensions limits directory loading to files with these suffixes.
// Default: every file
func WithExtensions(exts ...string) Option {
	return func(c *engineConfig) {
		c.extensions = append(c.extensions, exts...)
	}
}

// WithRoots sets the template directories used by Engine.Load.
func WithRoots(roots ...string) Option {
	return func(c *engineConfig) {
		c.roots = append(c.roots, roots...)
	}
}

// WithPreload makes Engine.Load parse every template once all are registered.
// Default: false (templates parse on first use)
func WithPreload(preload bool) Option {
	return func(c *engineConfig) {
		c.preload = preload
	}
}
