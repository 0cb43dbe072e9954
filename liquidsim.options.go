package liquidsim

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	maxDepth       int
	logger         *zap.Logger
	resolver       SnippetResolver
	globals        map[string]any
	exposedGlobals []string
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		maxDepth: DefaultMaxDepth,
		logger:   nil,
		resolver: nil,
	}
}

// WithMaxDepth sets the maximum nesting depth for snippet renders.
// Use 0 for unlimited depth.
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithSnippetResolver sets where the render tag looks up snippet sources.
// Default: nil (every snippet is missing)
func WithSnippetResolver(resolver SnippetResolver) Option {
	return func(c *engineConfig) {
		c.resolver = resolver
	}
}

// WithGlobals sets application-level values visible to every top-level render.
// Calling it more than once merges the maps; later keys win.
func WithGlobals(globals map[string]any) Option {
	return func(c *engineConfig) {
		if c.globals == nil {
			c.globals = make(map[string]any, len(globals))
		}
		for k, v := range globals {
			c.globals[k] = v
		}
	}
}

// WithExposedGlobals names the globals that stay readable inside isolated
// snippet scopes. Names not present in WithGlobals are ignored.
// Default: none (absolute isolation)
func WithExposedGlobals(names ...string) Option {
	return func(c *engineConfig) {
		c.exposedGlobals = append(c.exposedGlobals, names...)
	}
}
