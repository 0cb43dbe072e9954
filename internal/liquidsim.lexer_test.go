package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLexer_Tokenize_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "empty string",
			input: "",
			expected: []Token{
				{Type: TokenTypeEOF, Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "simple text",
			input: "Hello, world!",
			expected: []Token{
				{Type: TokenTypeText, Value: "Hello, world!", Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Type: TokenTypeEOF, Position: Position{Offset: 13, Line: 1, Column: 14}},
			},
		},
		{
			name:  "multiline text",
			input: "Line 1\nLine 2\nLine 3",
			expected: []Token{
				{Type: TokenTypeText, Value: "Line 1\nLine 2\nLine 3", Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Type: TokenTypeEOF, Position: Position{Offset: 20, Line: 3, Column: 7}},
			},
		},
		{
			name:  "single braces are text",
			input: "a { b } c % d",
			expected: []Token{
				{Type: TokenTypeText, Value: "a { b } c % d", Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Type: TokenTypeEOF, Position: Position{Offset: 13, Line: 1, Column: 14}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input, zap.NewNop())
			tokens, err := lexer.Tokenize()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestLexer_Tokenize_Output(t *testing.T) {
	lexer := NewLexer("Hi {{ name }}!", nil)
	tokens, err := lexer.Tokenize()
	require.NoError(t, err)

	expected := []Token{
		{Type: TokenTypeText, Value: "Hi ", Position: Position{Offset: 0, Line: 1, Column: 1}},
		{Type: TokenTypeOutput, Markup: "name", Position: Position{Offset: 3, Line: 1, Column: 4}},
		{Type: TokenTypeText, Value: "!", Position: Position{Offset: 13, Line: 1, Column: 14}},
		{Type: TokenTypeEOF, Position: Position{Offset: 14, Line: 1, Column: 15}},
	}
	assert.Equal(t, expected, tokens)
}

func TestLexer_Tokenize_Tags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "inline tag with markup",
			input: "{% render 'card', a: 1 %}",
			expected: []Token{
				{Type: TokenTypeTag, Value: "render", Markup: "'card', a: 1"},
				{Type: TokenTypeEOF},
			},
		},
		{
			name:  "tag without markup",
			input: "{% endcapture %}",
			expected: []Token{
				{Type: TokenTypeTag, Value: "endcapture"},
				{Type: TokenTypeEOF},
			},
		},
		{
			name:  "whitespace control markers are stripped",
			input: "{%- assign x = 1 -%}{{- x -}}",
			expected: []Token{
				{Type: TokenTypeTag, Value: "assign", Markup: "x = 1"},
				{Type: TokenTypeOutput, Markup: "x"},
				{Type: TokenTypeEOF},
			},
		},
		{
			name:  "close delimiter inside a quoted string",
			input: `{{ "%} and }}" }}`,
			expected: []Token{
				{Type: TokenTypeOutput, Markup: `"%} and }}"`},
				{Type: TokenTypeEOF},
			},
		},
		{
			name:  "raw body is not tokenized",
			input: "{% raw %}{{ x }}{% if %}{% endraw %}",
			expected: []Token{
				{Type: TokenTypeTag, Value: "raw"},
				{Type: TokenTypeText, Value: "{{ x }}{% if %}"},
				{Type: TokenTypeTag, Value: "endraw"},
				{Type: TokenTypeEOF},
			},
		},
		{
			name:  "empty comment",
			input: "{% comment %}{% endcomment %}",
			expected: []Token{
				{Type: TokenTypeTag, Value: "comment"},
				{Type: TokenTypeTag, Value: "endcomment"},
				{Type: TokenTypeEOF},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.input, nil).Tokenize()
			require.NoError(t, err)
			assertTokenKindsMatch(t, tt.expected, tokens)
		})
	}
}

func TestLexer_Tokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "unterminated output", input: "{{ x", message: ErrMsgUnterminatedTag},
		{name: "unterminated tag", input: "{% render 'x'", message: ErrMsgUnterminatedTag},
		{name: "unterminated string", input: "{{ 'abc }}", message: ErrMsgUnterminatedStr},
		{name: "invalid tag name", input: "{% 1abc %}", message: ErrMsgInvalidTagName},
		{name: "empty tag", input: "{% %}", message: ErrMsgInvalidTagName},
		{name: "unclosed raw", input: "{% raw %}abc", message: ErrMsgUnclosedBlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input, nil).Tokenize()
			require.Error(t, err)

			var lexErr *LexerError
			require.ErrorAs(t, err, &lexErr)
			assert.Equal(t, tt.message, lexErr.Message)
		})
	}
}

func TestLexer_Positions_AcrossLines(t *testing.T) {
	tokens, err := NewLexer("a\n{% assign x = 1 %}\n{{ x }}", nil).Tokenize()
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, Position{Offset: 2, Line: 2, Column: 1}, tokens[1].Position)
	assert.Equal(t, Position{Offset: 21, Line: 3, Column: 1}, tokens[3].Position)
}

func TestSplitTagContent(t *testing.T) {
	name, markup, ok := splitTagContent("render 'a', b: 1")
	assert.True(t, ok)
	assert.Equal(t, "render", name)
	assert.Equal(t, "'a', b: 1", markup)

	_, _, ok = splitTagContent("")
	assert.False(t, ok)

	_, _, ok = splitTagContent("-x")
	assert.False(t, ok)
}

// assertTokenKindsMatch compares type, value and markup, ignoring positions
func assertTokenKindsMatch(t *testing.T, expected, actual []Token) {
	t.Helper()
	require.Len(t, actual, len(expected), "tokens: %v", actual)
	for i := range expected {
		assert.Equal(t, expected[i].Type, actual[i].Type, "token %d type", i)
		assert.Equal(t, expected[i].Value, actual[i].Value, "token %d value", i)
		assert.Equal(t, expected[i].Markup, actual[i].Markup, "token %d markup", i)
	}
}
