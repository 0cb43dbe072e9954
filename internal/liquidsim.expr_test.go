package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapScope is a minimal Scope backed by a map
type mapScope map[string]any

func (m mapScope) Lookup(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func (m mapScope) Set(name string, value any) {
	m[name] = value
}

func newTestFilters() *FilterRegistry {
	r := NewFilterRegistry()
	RegisterBuiltinFilters(r)
	return r
}

func TestExprTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []ExprTokenType
	}{
		{
			name:     "path with index",
			input:    `a.b[0]["k"]`,
			expected: []ExprTokenType{ExprTokenTypeIdentifier, ExprTokenTypeDot, ExprTokenTypeIdentifier, ExprTokenTypeLBracket, ExprTokenTypeNumber, ExprTokenTypeRBracket, ExprTokenTypeLBracket, ExprTokenTypeString, ExprTokenTypeRBracket, ExprTokenTypeEOF},
		},
		{
			name:     "range with identifier bound",
			input:    "(1..n)",
			expected: []ExprTokenType{ExprTokenTypeLParen, ExprTokenTypeNumber, ExprTokenTypeDotDot, ExprTokenTypeIdentifier, ExprTokenTypeRParen, ExprTokenTypeEOF},
		},
		{
			name:     "render arguments",
			input:    "'card', product: p for items as item",
			expected: []ExprTokenType{ExprTokenTypeString, ExprTokenTypeComma, ExprTokenTypeIdentifier, ExprTokenTypeColon, ExprTokenTypeIdentifier, ExprTokenTypeIdentifier, ExprTokenTypeIdentifier, ExprTokenTypeIdentifier, ExprTokenTypeIdentifier, ExprTokenTypeEOF},
		},
		{
			name:     "keywords and operators",
			input:    "a and b or c contains 'x' == nil != true <> false",
			expected: []ExprTokenType{ExprTokenTypeIdentifier, ExprTokenTypeAnd, ExprTokenTypeIdentifier, ExprTokenTypeOr, ExprTokenTypeIdentifier, ExprTokenTypeContains, ExprTokenTypeString, ExprTokenTypeEq, ExprTokenTypeNil, ExprTokenTypeNeq, ExprTokenTypeBool, ExprTokenTypeNeq, ExprTokenTypeBool, ExprTokenTypeEOF},
		},
		{
			name:     "filter chain",
			input:    "x | append: '!' | upcase",
			expected: []ExprTokenType{ExprTokenTypeIdentifier, ExprTokenTypePipe, ExprTokenTypeIdentifier, ExprTokenTypeColon, ExprTokenTypeString, ExprTokenTypePipe, ExprTokenTypeIdentifier, ExprTokenTypeEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewExprTokenizer(tt.input).Tokenize()
			require.NoError(t, err)

			types := make([]ExprTokenType, len(tokens))
			for i, tok := range tokens {
				types[i] = tok.Type
			}
			assert.Equal(t, tt.expected, types)
		})
	}
}

func TestExprTokenizer_Literals(t *testing.T) {
	tokens, err := NewExprTokenizer(`42 -3 1.5 "two" 'three' null product-handle empty?`).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 9)

	assert.Equal(t, 42, tokens[0].Literal)
	assert.Equal(t, -3, tokens[1].Literal)
	assert.Equal(t, 1.5, tokens[2].Literal)
	assert.Equal(t, "two", tokens[3].Literal)
	assert.Equal(t, "three", tokens[4].Literal)
	assert.Equal(t, ExprTokenTypeNil, tokens[5].Type)
	assert.Equal(t, "product-handle", tokens[6].Value)
	assert.Equal(t, "empty?", tokens[7].Value)
}

func TestExprTokenizer_Errors(t *testing.T) {
	_, err := NewExprTokenizer(`"open`).Tokenize()
	var tokErr *ExprTokenError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, ErrMsgExprUnterminatedStr, tokErr.Message)

	_, err = NewExprTokenizer(`a # b`).Tokenize()
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, ErrMsgExprUnexpectedChar, tokErr.Message)
}

func TestExprParser_Parse(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "a", expected: "a"},
		{input: "a.b.c", expected: "a.b.c"},
		{input: `a[0]["k"]`, expected: `a[0]["k"]`},
		{input: "(1..3)", expected: "(1..3)"},
		{input: "a == 1 and b", expected: "((a EQ 1) AND b)"},
		{input: "a or b and c", expected: "(a OR (b AND c))"},
		{input: "x | append: 'y', 'z'", expected: `x | append: "y", "z"`},
		{input: "x | upcase | size", expected: "x | upcase | size"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := ParseExpression(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, node.String())
		})
	}
}

func TestExprParser_Errors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{input: "", message: ErrMsgExprEmptyExpression},
		{input: "a b", message: ErrMsgExprUnexpectedToken},
		{input: "a.", message: ErrMsgExprExpectedProperty},
		{input: "a[0", message: ErrMsgExprExpectedRBracket},
		{input: "(1, 2)", message: ErrMsgExprExpectedRange},
		{input: "(1..2", message: ErrMsgExprExpectedRParen},
		{input: "x |", message: ErrMsgExprExpectedFilter},
		{input: "a ==", message: ErrMsgExprUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseExpression(tt.input)
			var parseErr *ExprParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.message, parseErr.Message)
		})
	}
}

func TestExprParser_Cursor(t *testing.T) {
	tokens, err := NewExprTokenizer("items.first as item").Tokenize()
	require.NoError(t, err)

	p := NewExprParser(tokens)
	value, err := p.ParseValue()
	require.NoError(t, err)
	assert.Equal(t, "items.first", value.String())

	assert.True(t, p.Peek().IsIdent("as"))
	assert.True(t, p.PeekAt(1).IsIdent("item"))
	p.Next()
	p.Next()
	assert.True(t, p.AtEnd())
}

func TestExprEvaluator_Evaluate(t *testing.T) {
	scope := mapScope{
		"name":  "Ada",
		"n":     3,
		"items": []any{"a", "b", "c"},
		"tags":  []string{"x", "y"},
		"user":  map[string]any{"profile": map[string]any{"city": "Paris"}},
		"flag":  false,
		"score": 2.5,
	}

	tests := []struct {
		input    string
		expected any
	}{
		{input: "name", expected: "Ada"},
		{input: "missing", expected: nil},
		{input: "missing.deep", expected: nil},
		{input: "user.profile.city", expected: "Paris"},
		{input: `user["profile"]["city"]`, expected: "Paris"},
		{input: "items[1]", expected: "b"},
		{input: "items[-1]", expected: "c"},
		{input: "items[9]", expected: nil},
		{input: "items.size", expected: 3},
		{input: "items.first", expected: "a"},
		{input: "tags.last", expected: "y"},
		{input: "name.size", expected: 3},
		{input: "(1..n)", expected: []any{1, 2, 3}},
		{input: "(3..1)", expected: []any{}},
		{input: "n == 3", expected: true},
		{input: "n == 3.0", expected: true},
		{input: "n != 3", expected: false},
		{input: "score > 2", expected: true},
		{input: "name < 'B'", expected: true},
		{input: "missing > 1", expected: false},
		{input: "items contains 'b'", expected: true},
		{input: "name contains 'd'", expected: true},
		{input: "tags contains 'z'", expected: false},
		{input: "flag or name", expected: true},
		{input: "flag and name", expected: false},
		{input: "name | upcase", expected: "ADA"},
		{input: "missing | default: 'none'", expected: "none"},
		{input: "name | append: '!' | prepend: '> '", expected: "> Ada!"},
		{input: "items | size", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := EvaluateExpression(tt.input, newTestFilters(), scope)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestExprEvaluator_Errors(t *testing.T) {
	scope := mapScope{"name": "Ada", "n": 1}

	_, err := EvaluateExpression("name | nope", newTestFilters(), scope)
	var filterErr *FilterError
	require.ErrorAs(t, err, &filterErr)
	assert.Equal(t, ErrMsgFilterNotFound, filterErr.Message)

	_, err = EvaluateExpression("('a'..2)", newTestFilters(), scope)
	var evalErr *ExprEvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, ErrMsgExprInvalidRange, evalErr.Message)

	_, err = EvaluateExpression("name < n", newTestFilters(), scope)
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, ErrMsgExprTypeMismatch, evalErr.Message)

	_, err = EvaluateExpression("name | upcase", nil, scope)
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, ErrMsgExprNoFilterRegistry, evalErr.Message)
}

func TestIsTruthy(t *testing.T) {
	assert.False(t, IsTruthy(nil))
	assert.False(t, IsTruthy(false))
	assert.True(t, IsTruthy(true))
	assert.True(t, IsTruthy(""))
	assert.True(t, IsTruthy(0))
	assert.True(t, IsTruthy([]any{}))
}

func TestToLiquidString(t *testing.T) {
	assert.Equal(t, "", ToLiquidString(nil))
	assert.Equal(t, "true", ToLiquidString(true))
	assert.Equal(t, "42", ToLiquidString(42))
	assert.Equal(t, "1.5", ToLiquidString(1.5))
	assert.Equal(t, "abc", ToLiquidString([]any{"a", "b", "c"}))
	assert.Equal(t, "12", ToLiquidString([]int{1, 2}))
}
