package liquidsim

import (
	"context"

	"github.com/itsatony/go-liquidsim/internal"
)

// Template represents a parsed template that can be rendered multiple times.
// It is immutable and safe for concurrent renders against independent scopes.
type Template struct {
	source string
	root   *internal.RootNode
	engine *Engine
}

// newTemplate creates a new template (internal use).
func newTemplate(source string, root *internal.RootNode, engine *Engine) *Template {
	return &Template{
		source: source,
		root:   root,
		engine: engine,
	}
}

// Render renders the template with the given data.
// This is a convenience method that creates a top-level Scope from the data map.
func (t *Template) Render(ctx context.Context, data map[string]any) (string, error) {
	return t.RenderWithScope(ctx, t.engine.NewScope(data))
}

// RenderWithScope renders the template against an existing scope.
// Use this when variables assigned or captured by the template must be
// read afterwards.
func (t *Template) RenderWithScope(ctx context.Context, scope *Scope) (string, error) {
	return t.engine.renderTemplate(ctx, t, scope, 0)
}

// Source returns the original template source string.
func (t *Template) Source() string {
	return t.source
}

// Engine returns the engine that parsed the template.
func (t *Template) Engine() *Engine {
	return t.engine
}
