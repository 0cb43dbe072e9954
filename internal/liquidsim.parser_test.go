package internal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTag is a configurable TagDefinition for tests
type testTag struct {
	name    string
	block   bool
	compile func(markup string) (CompiledTag, error)
}

func (t *testTag) TagName() string { return t.name }
func (t *testTag) IsBlock() bool   { return t.block }
func (t *testTag) Compile(markup string) (CompiledTag, error) {
	if t.compile != nil {
		return t.compile(markup)
	}
	return CompiledTagFunc(func(ctx context.Context, frame *Frame) (string, error) {
		if t.block {
			body, err := frame.RenderBody(ctx)
			return "[" + body + "]", err
		}
		return "<" + markup + ">", nil
	}), nil
}

func newTestRegistry(extra ...TagDefinition) *Registry {
	r := NewRegistry(nil)
	RegisterBuiltins(r)
	for _, def := range extra {
		r.MustRegister(def)
	}
	return r
}

func parseSource(t *testing.T, source string, tags TagLookup) (*RootNode, error) {
	t.Helper()
	tokens, err := NewLexer(source, nil).Tokenize()
	require.NoError(t, err)
	return NewParser(tokens, tags, nil).Parse()
}

func TestParser_Parse_Nodes(t *testing.T) {
	registry := newTestRegistry(&testTag{name: "wrap", block: true}, &testTag{name: "echo"})

	root, err := parseSource(t, "Hi {{ name }}{% echo a b %}{% wrap %}x{% endwrap %}", registry)
	require.NoError(t, err)
	require.Len(t, root.Children, 4)

	assert.Equal(t, NodeTypeText, root.Children[0].Type())

	out, ok := root.Children[1].(*OutputNode)
	require.True(t, ok)
	assert.Equal(t, "name", out.Markup)
	require.NotNil(t, out.Expr)

	echo, ok := root.Children[2].(*TagNode)
	require.True(t, ok)
	assert.Equal(t, "echo", echo.Name)
	assert.Equal(t, "a b", echo.Markup)
	assert.False(t, echo.IsBlock)
	assert.NotNil(t, echo.Tag)

	wrap, ok := root.Children[3].(*TagNode)
	require.True(t, ok)
	assert.True(t, wrap.IsBlock)
	require.Len(t, wrap.Children, 1)
}

func TestParser_Parse_Conditional(t *testing.T) {
	registry := newTestRegistry()

	root, err := parseSource(t, "{% if a %}A{% elsif b %}B{% else %}C{% endif %}", registry)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	cond, ok := root.Children[0].(*ConditionalNode)
	require.True(t, ok)
	require.Len(t, cond.Branches, 3)
	assert.Equal(t, "a", cond.Branches[0].Source)
	assert.Equal(t, "b", cond.Branches[1].Source)
	assert.True(t, cond.Branches[2].IsElse)
	assert.Nil(t, cond.Branches[2].Condition)

	root, err = parseSource(t, "{% unless a %}A{% elsif b %}B{% endunless %}", registry)
	require.NoError(t, err)
	cond = root.Children[0].(*ConditionalNode)
	require.Len(t, cond.Branches, 2)
	assert.True(t, cond.Branches[0].Negate)
	assert.False(t, cond.Branches[1].Negate)
}

func TestParser_Parse_NestedBlocks(t *testing.T) {
	registry := newTestRegistry(&testTag{name: "wrap", block: true})

	root, err := parseSource(t, "{% wrap %}{% if a %}{% wrap %}in{% endwrap %}{% endif %}{% endwrap %}", registry)
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	outer := root.Children[0].(*TagNode)
	require.Len(t, outer.Children, 1)
	cond := outer.Children[0].(*ConditionalNode)
	require.Len(t, cond.Branches[0].Children, 1)
}

func TestParser_Parse_Errors(t *testing.T) {
	registry := newTestRegistry(&testTag{name: "wrap", block: true})

	tests := []struct {
		name    string
		source  string
		message string
	}{
		{name: "unknown tag", source: "{% nope %}", message: ErrMsgUnknownTag},
		{name: "stray end tag", source: "{% endif %}", message: ErrMsgUnexpectedTag},
		{name: "stray else", source: "{% else %}", message: ErrMsgUnexpectedTag},
		{name: "unclosed block", source: "{% wrap %}x", message: ErrMsgUnclosedBlock},
		{name: "unclosed if", source: "{% if a %}x", message: ErrMsgUnclosedBlock},
		{name: "mismatched end", source: "{% wrap %}{% endif %}", message: ErrMsgUnexpectedTag},
		{name: "missing condition", source: "{% if %}x{% endif %}", message: ErrMsgMissingCondition},
		{name: "bad condition", source: "{% if a == %}x{% endif %}", message: ErrMsgInvalidCondition},
		{name: "else with condition", source: "{% if a %}{% else b %}{% endif %}", message: ErrMsgElseWithCondition},
		{name: "else not last", source: "{% if a %}{% else %}{% elsif b %}{% endif %}", message: ErrMsgElseNotLast},
		{name: "bad output", source: "{{ a | }}", message: ErrMsgInvalidOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseSource(t, tt.source, registry)
			var parseErr *ParserError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.message, parseErr.Message)
		})
	}
}

func TestParser_Parse_TagCompileError(t *testing.T) {
	cause := errors.New("bad arguments")
	registry := newTestRegistry(&testTag{
		name: "strict",
		compile: func(string) (CompiledTag, error) {
			return nil, cause
		},
	})

	_, err := parseSource(t, "text {% strict x %}", registry)
	var compileErr *TagCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "strict", compileErr.TagName)
	assert.Equal(t, 6, compileErr.Position.Column)
	assert.ErrorIs(t, err, cause)
}

func TestParser_Parse_EmptyOutput(t *testing.T) {
	root, err := parseSource(t, "{{ }}", newTestRegistry())
	require.NoError(t, err)
	out := root.Children[0].(*OutputNode)
	assert.Nil(t, out.Expr)
}
