package liquidsim

import (
	"context"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-liquidsim/internal"
	"go.uber.org/zap"
)

// Engine is the main entry point for liquidsim.
// It owns the tag and filter registries, the snippet resolver and the
// executor used for every render, including nested snippet renders.
type Engine struct {
	tags     *internal.Registry
	filters  *internal.FilterRegistry
	executor *internal.Executor
	config   *engineConfig
	globals  *Scope
	builder  ScopeBuilder
	logger   *zap.Logger
}

// New creates a new Engine with the given options.
// The host tags (assign, if, unless, comment, raw) and filters are always
// available; render and capture are added with RegisterShopifyTags.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	if config.maxDepth < 0 {
		return nil, cuserr.NewValidationError(ErrCodeConfig, ErrMsgInvalidMaxDepth)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tags := internal.NewRegistry(logger)
	internal.RegisterBuiltins(tags)

	filters := internal.NewFilterRegistry()
	internal.RegisterBuiltinFilters(filters)

	executorConfig := internal.ExecutorConfig{
		MaxDepth: config.maxDepth,
	}
	executor := internal.NewExecutor(filters, executorConfig, logger)

	var exposed map[string]any
	for _, name := range config.exposedGlobals {
		val, ok := config.globals[name]
		if !ok {
			continue
		}
		if exposed == nil {
			exposed = make(map[string]any, len(config.exposedGlobals))
		}
		exposed[name] = val
	}

	logger.Debug(LogMsgEngineCreated,
		zap.Int(LogFieldDepth, config.maxDepth),
		zap.Int(LogFieldLength, len(exposed)))

	return &Engine{
		tags:     tags,
		filters:  filters,
		executor: executor,
		config:   config,
		globals:  NewScope(config.globals),
		builder:  ScopeBuilder{ExposedGlobals: exposed},
		logger:   logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse parses a template source string and returns a Template.
// Tag arguments are compiled here, so malformed render or capture markup
// fails with a SyntaxError before any data is involved.
func (e *Engine) Parse(source string) (*Template, error) {
	tokens, err := internal.NewLexer(source, e.logger).Tokenize()
	if err != nil {
		return nil, wrapParseError(err)
	}

	root, err := internal.NewParser(tokens, e.tags, e.logger).Parse()
	if err != nil {
		return nil, wrapParseError(err)
	}

	e.logger.Debug(LogMsgTemplateParsed, zap.Int(LogFieldSourceSize, len(source)))
	return newTemplate(source, root, e), nil
}

// Render is a convenience method that parses and renders in one step.
// For templates that will be rendered multiple times, use Parse() instead.
func (e *Engine) Render(ctx context.Context, source string, data map[string]any) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return StringValueEmpty, err
	}
	return tmpl.Render(ctx, data)
}

// RegisterTag adds a custom tag to the engine.
// Returns an error if a tag with the same name is already registered.
func (e *Engine) RegisterTag(handler TagHandler) error {
	if handler == nil {
		return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgNilTagHandler)
	}
	if err := e.tags.Register(&tagAdapter{handler: handler}); err != nil {
		return NewRegistryError(ErrMsgTagRegistration, handler.TagName(), err)
	}
	return nil
}

// MustRegisterTag adds a custom tag and panics if registration fails.
func (e *Engine) MustRegisterTag(handler TagHandler) {
	if err := e.RegisterTag(handler); err != nil {
		panic(err)
	}
}

// HasTag checks if a tag is registered, including the host tags.
func (e *Engine) HasTag(name string) bool {
	return e.tags.Has(name)
}

// ListTags returns all registered tag names in sorted order.
func (e *Engine) ListTags() []string {
	return e.tags.List()
}

// ResolveSnippet looks up a snippet's source through the configured resolver.
// Without a resolver every snippet is missing.
func (e *Engine) ResolveSnippet(ctx context.Context, name string) (string, bool, error) {
	if e.config.resolver == nil {
		return StringValueEmpty, false, nil
	}

	source, found, err := e.config.resolver.ResolveSnippet(ctx, name)
	if err != nil {
		if ErrorKind(err) != StringValueEmpty {
			return StringValueEmpty, false, err
		}
		return StringValueEmpty, false, NewResolverError(ErrMsgResolverFailed, name, err)
	}
	if !found {
		e.logger.Debug(LogMsgSnippetMissing, zap.String(LogFieldSnippet, name))
		return StringValueEmpty, false, nil
	}

	e.logger.Debug(LogMsgSnippetResolved, zap.String(LogFieldSnippet, name))
	return source, true, nil
}

// MaxDepth returns the configured nesting limit (0 = unlimited).
func (e *Engine) MaxDepth() int {
	return e.executor.MaxDepth()
}

// NewScope creates a top-level render scope over data. Engine globals are
// visible through its parent.
func (e *Engine) NewScope(data map[string]any) *Scope {
	return e.globals.Child(data)
}

// ScopeBuilder returns the builder used for isolated snippet scopes.
func (e *Engine) ScopeBuilder() ScopeBuilder {
	return e.builder
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *zap.Logger {
	return e.logger
}

// renderTemplate executes tmpl against scope at the given nesting depth.
func (e *Engine) renderTemplate(ctx context.Context, tmpl *Template, scope *Scope, depth int) (string, error) {
	result, err := e.executor.Execute(ctx, tmpl.root, scope, depth, e)
	if err != nil {
		return StringValueEmpty, wrapRenderError(err)
	}
	return result, nil
}
