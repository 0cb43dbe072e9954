package liquidsim

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// RenderTag implements `{% render 'name', key: value %}`: the named snippet
// is rendered in an isolated scope that holds only the explicit bindings,
// once, or once per element with `for <collection> as <alias>`.
type RenderTag struct{}

// TagName returns "render".
func (RenderTag) TagName() string {
	return TagNameRender
}

// IsBlock returns false.
func (RenderTag) IsBlock() bool {
	return false
}

// ParseArguments compiles the tag's arguments into a TagInvocation.
func (RenderTag) ParseArguments(markup string) (Tag, error) {
	inv, err := ParseRenderArguments(markup)
	if err != nil {
		return nil, err
	}
	return &renderInvocation{inv: inv}, nil
}

// renderInvocation is a compiled render tag occurrence.
type renderInvocation struct {
	inv *TagInvocation
}

// Execute resolves the snippet, evaluates the bindings against the caller's
// scope and sub-renders the snippet. Nothing written inside the snippet
// reaches the caller.
func (r *renderInvocation) Execute(ctx context.Context, rc *RenderContext) (string, error) {
	logger := rc.Engine.Logger()

	nameVal, err := rc.Evaluate(r.inv.SnippetName)
	if err != nil {
		return StringValueEmpty, err
	}
	name, ok := nameVal.(string)
	if !ok {
		return StringValueEmpty, NewTypeError(ErrMsgSnippetNameType, TagNameRender, nameVal)
	}

	logger.Debug(LogMsgRenderStart,
		zap.String(LogFieldSnippet, name),
		zap.Int(LogFieldDepth, rc.Depth),
		zap.Int(LogFieldBindings, len(r.inv.Bindings)))

	source, found, err := rc.Engine.ResolveSnippet(ctx, name)
	if err != nil {
		return StringValueEmpty, err
	}
	if !found {
		return StringValueEmpty, NewSnippetNotFoundError(name)
	}

	tmpl, err := rc.Engine.Parse(source)
	if err != nil {
		return StringValueEmpty, err
	}

	values, err := r.evaluateBindings(rc)
	if err != nil {
		return StringValueEmpty, err
	}

	var result string
	if r.inv.Loop != nil {
		result, err = r.renderLoop(ctx, rc, tmpl, values)
	} else {
		result, err = rc.SubRender(ctx, tmpl, rc.Engine.ScopeBuilder().Build(values))
	}
	if err != nil {
		return StringValueEmpty, err
	}

	logger.Debug(LogMsgRenderComplete,
		zap.String(LogFieldSnippet, name),
		zap.Int(LogFieldOutputLen, len(result)))
	return result, nil
}

// evaluateBindings evaluates the bindings and the with-alias in source order
// against the caller's scope.
func (r *renderInvocation) evaluateBindings(rc *RenderContext) ([]BoundValue, error) {
	ordered := r.inv.OrderedBindings()
	values := make([]BoundValue, 0, len(ordered)+2)
	for _, b := range ordered {
		val, err := rc.Evaluate(b.Value)
		if err != nil {
			return nil, err
		}
		values = append(values, BoundValue{Name: b.Key, Value: val})
	}
	return values, nil
}

// renderLoop sub-renders tmpl once per collection element and concatenates
// the results.
func (r *renderInvocation) renderLoop(ctx context.Context, rc *RenderContext, tmpl *Template, values []BoundValue) (string, error) {
	loop := r.inv.Loop
	if loop.ItemAlias == ForloopVariable {
		return StringValueEmpty, NewTypeError(ErrMsgReservedAlias, TagNameRender, loop.ItemAlias)
	}
	for _, v := range values {
		if v.Name == ForloopVariable {
			return StringValueEmpty, NewTypeError(ErrMsgReservedBinding, TagNameRender, v.Value)
		}
	}

	collection, err := rc.Evaluate(loop.Collection)
	if err != nil {
		return StringValueEmpty, err
	}
	it, err := NewLoopIterator(collection)
	if err != nil {
		return StringValueEmpty, err
	}

	logger := rc.Engine.Logger()
	builder := rc.Engine.ScopeBuilder()
	base := len(values)

	var sb strings.Builder
	for {
		element, meta, ok := it.Next()
		if !ok {
			break
		}
		logger.Debug(LogMsgRenderIteration,
			zap.Int(LogFieldIndex, meta.Index0),
			zap.Int(LogFieldLength, meta.Length))

		iteration := append(values[:base:base],
			BoundValue{Name: loop.ItemAlias, Value: element},
			BoundValue{Name: ForloopVariable, Value: meta.ToMap()})

		out, err := rc.SubRender(ctx, tmpl, builder.Build(iteration))
		if err != nil {
			return StringValueEmpty, err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}
