package liquidsim

import (
	"context"

	"github.com/itsatony/go-liquidsim/internal"
)

// TagHandler is the capability a custom tag registers with the engine.
// ParseArguments runs once per occurrence at parse time and returns the
// compiled Tag that is executed on every render.
type TagHandler interface {
	// TagName returns the name used in `{% name ... %}`.
	TagName() string

	// IsBlock reports whether the tag has a body closed by `{% endname %}`.
	IsBlock() bool

	// ParseArguments compiles the markup following the tag name.
	// Malformed markup should be reported with NewSyntaxError.
	ParseArguments(markup string) (Tag, error)
}

// Tag is a compiled tag occurrence. Implementations must be immutable so
// that a parsed Template can be rendered concurrently.
type Tag interface {
	Execute(ctx context.Context, rc *RenderContext) (string, error)
}

// TagFunc adapts a function to the Tag interface.
type TagFunc func(ctx context.Context, rc *RenderContext) (string, error)

// Execute calls f.
func (f TagFunc) Execute(ctx context.Context, rc *RenderContext) (string, error) {
	return f(ctx, rc)
}

// RenderContext is what a Tag sees while executing: the caller's scope,
// the owning engine and the current snippet nesting depth.
type RenderContext struct {
	Scope   *Scope
	Engine  *Engine
	Depth   int
	TagName string

	frame *internal.Frame
}

// Evaluate evaluates expr against the caller's scope.
func (rc *RenderContext) Evaluate(expr *Expression) (any, error) {
	val, err := rc.frame.Evaluate(expr.node)
	if err != nil {
		return nil, NewRenderError(ErrMsgEvaluationFailed, err)
	}
	return val, nil
}

// RenderBody renders a block tag's body against the caller's scope.
func (rc *RenderContext) RenderBody(ctx context.Context) (string, error) {
	return rc.frame.RenderBody(ctx)
}

// SubRender renders tmpl against scope one nesting level deeper. The
// engine's MaxDepth is enforced here.
func (rc *RenderContext) SubRender(ctx context.Context, tmpl *Template, scope *Scope) (string, error) {
	return rc.Engine.renderTemplate(ctx, tmpl, scope, rc.Depth+1)
}

// tagAdapter adapts a TagHandler to the host registry.
type tagAdapter struct {
	handler TagHandler
}

func (a *tagAdapter) TagName() string {
	return a.handler.TagName()
}

func (a *tagAdapter) IsBlock() bool {
	return a.handler.IsBlock()
}

func (a *tagAdapter) Compile(markup string) (internal.CompiledTag, error) {
	tag, err := a.handler.ParseArguments(markup)
	if err != nil {
		return nil, err
	}

	name := a.handler.TagName()
	return internal.CompiledTagFunc(func(ctx context.Context, frame *internal.Frame) (string, error) {
		rc := &RenderContext{
			Scope:   frame.Scope.(*Scope),
			Engine:  frame.Owner.(*Engine),
			Depth:   frame.Depth,
			TagName: name,
			frame:   frame,
		}
		return tag.Execute(ctx, rc)
	}), nil
}
