package liquidsim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureTag(t *testing.T) {
	engine := newShopifyEngine(t, map[string]string{
		"title": "[{{ heading }}]",
		"inner": "{% capture local %}in{% endcapture %}{{ local }}",
	})

	tests := []struct {
		name     string
		template string
		data     map[string]any
		expected string
	}{
		{name: "emits nothing", template: "a{% capture x %}body{% endcapture %}b", expected: "ab"},
		{name: "visible afterwards", template: "{% capture x %}body{% endcapture %}{{ x }}", expected: "body"},
		{name: "reads ambient variables", template: "{% capture greeting %}Hello, {{ name }}!{% endcapture %}{{ greeting | upcase }}", data: map[string]any{"name": "Ada"}, expected: "HELLO, ADA!"},
		{name: "quoted name", template: "{% capture 'x' %}q{% endcapture %}{{ x }}", expected: "q"},
		{name: "overwrites", template: "{% capture x %}one{% endcapture %}{% capture x %}two{% endcapture %}{{ x }}", expected: "two"},
		{name: "shadows data", template: "{% capture name %}Bob{% endcapture %}{{ name }}", data: map[string]any{"name": "Ada"}, expected: "Bob"},
		{name: "reads previous value", template: "{% capture x %}[{{ x }}]{% endcapture %}{{ x }}", data: map[string]any{"x": "a"}, expected: "[a]"},
		{name: "empty body", template: "{% capture x %}{% endcapture %}[{{ x }}]", data: map[string]any{"x": "a"}, expected: "[]"},
		{name: "assign inside body is visible", template: "{% capture x %}{% assign y = 'z' %}{% endcapture %}{{ y }}", expected: "z"},
		{name: "nested captures", template: "{% capture outer %}<{% capture inner %}i{% endcapture %}{{ inner }}>{% endcapture %}{{ outer }}{{ inner }}", expected: "<i>i"},
		{name: "passed to render", template: "{% capture heading %}Sale{% endcapture %}{% render 'title', heading: heading %}", expected: "[Sale]"},
		{name: "not visible to render without binding", template: "{% capture heading %}Sale{% endcapture %}{% render 'title' %}", expected: "[]"},
		{name: "does not leak from snippet", template: "{% render 'inner' %}[{{ local }}]", expected: "in[]"},
		{name: "captures render output", template: "{% capture x %}{% render 'title', heading: 'h' %}{% endcapture %}{{ x | size }}", expected: "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := renderString(t, engine, tt.template, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCaptureTag_WritesCallerScope(t *testing.T) {
	engine := newShopifyEngine(t, nil)
	tmpl, err := engine.Parse("{% capture summary %}{{ items | size }} items{% endcapture %}")
	require.NoError(t, err)

	scope := NewScope(map[string]any{"items": []any{1, 2}})
	result, err := tmpl.RenderWithScope(context.Background(), scope)
	require.NoError(t, err)
	assert.Empty(t, result)

	val, ok := scope.Lookup("summary")
	require.True(t, ok)
	assert.Equal(t, "2 items", val)
}

func TestCaptureTag_BodyErrorPropagates(t *testing.T) {
	engine := newShopifyEngine(t, nil)

	result, err := renderString(t, engine, "{% capture x %}{% render 'missing' %}{% endcapture %}", nil)
	require.Error(t, err)
	assert.Empty(t, result)
	assert.True(t, IsSnippetNotFound(err))
}

func TestCaptureTag_SyntaxErrors(t *testing.T) {
	engine := newShopifyEngine(t, nil)

	tests := []struct {
		name     string
		template string
		message  string
	}{
		{name: "no name", template: "{% capture %}x{% endcapture %}", message: ErrMsgCaptureArguments},
		{name: "two names", template: "{% capture a b %}x{% endcapture %}", message: ErrMsgCaptureArguments},
		{name: "invalid name", template: "{% capture a.b %}x{% endcapture %}", message: ErrMsgCaptureName},
		{name: "empty quoted name", template: "{% capture '' %}x{% endcapture %}", message: ErrMsgCaptureName},
		{name: "missing endcapture", template: "{% capture a %}x", message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Parse(tt.template)
			require.Error(t, err)
			assert.True(t, IsSyntaxError(err))
			assert.True(t, errorChainContains(err, tt.message), err.Error())
		})
	}
}
