package internal

import "fmt"

// Position represents a location in the source template
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token represents a lexical token produced by the lexer.
// For tag tokens Value holds the tag name and Markup the remaining arguments;
// for output tokens Markup holds the expression source.
type Token struct {
	Type     TokenType
	Value    string
	Markup   string
	Position Position
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenTypeTag:
		return fmt.Sprintf("Token{%s: %q %q @ %s}", t.Type, t.Value, t.Markup, t.Position)
	case TokenTypeOutput:
		return fmt.Sprintf("Token{%s: %q @ %s}", t.Type, t.Markup, t.Position)
	case TokenTypeEOF:
		return fmt.Sprintf("Token{%s @ %s}", t.Type, t.Position)
	default:
		return fmt.Sprintf("Token{%s: %q @ %s}", t.Type, t.Value, t.Position)
	}
}

// IsEOF returns true if this is an end-of-file token
func (t Token) IsEOF() bool {
	return t.Type == TokenTypeEOF
}

// IsText returns true if this is a text token
func (t Token) IsText() bool {
	return t.Type == TokenTypeText
}

// IsTag returns true if this is a tag token, optionally matching one of names
func (t Token) IsTag(names ...string) bool {
	if t.Type != TokenTypeTag {
		return false
	}
	if len(names) == 0 {
		return true
	}
	for _, name := range names {
		if t.Value == name {
			return true
		}
	}
	return false
}

// NewEOFToken creates an EOF token at the given position
func NewEOFToken(pos Position) Token {
	return Token{
		Type:     TokenTypeEOF,
		Position: pos,
	}
}

// NewTextToken creates a text token with the given content
func NewTextToken(content string, pos Position) Token {
	return Token{
		Type:     TokenTypeText,
		Value:    content,
		Position: pos,
	}
}

// NewOutputToken creates an output token holding the expression markup
func NewOutputToken(markup string, pos Position) Token {
	return Token{
		Type:     TokenTypeOutput,
		Markup:   markup,
		Position: pos,
	}
}

// NewTagToken creates a tag token with name and argument markup
func NewTagToken(name, markup string, pos Position) Token {
	return Token{
		Type:     TokenTypeTag,
		Value:    name,
		Markup:   markup,
		Position: pos,
	}
}
