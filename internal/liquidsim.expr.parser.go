package internal

import "fmt"

// ExprParser parses expression tokens into an AST.
// Besides full expressions it exposes a token cursor so that tag argument
// grammars can interleave their own keywords with value expressions.
type ExprParser struct {
	tokens []ExprToken
	pos    int
}

// NewExprParser creates a new expression parser
func NewExprParser(tokens []ExprToken) *ExprParser {
	return &ExprParser{
		tokens: tokens,
		pos:    0,
	}
}

// Parse parses a full expression including filters and requires that all
// tokens are consumed.
func (p *ExprParser) Parse() (ExprNode, error) {
	if p.isAtEnd() {
		return nil, NewExprParseError(ErrMsgExprEmptyExpression, 0, "")
	}

	node, err := p.parseFilterChain()
	if err != nil {
		return nil, err
	}

	if !p.isAtEnd() {
		return nil, NewExprParseError(ErrMsgExprUnexpectedToken, p.peek().Pos, p.peek().Value)
	}

	return node, nil
}

// ParseValue parses a single value: a literal, a variable path or a range.
// Operators and filters are not consumed.
func (p *ExprParser) ParseValue() (ExprNode, error) {
	return p.parsePostfix()
}

// Peek returns the current token without consuming it
func (p *ExprParser) Peek() ExprToken {
	return p.peek()
}

// PeekAt returns the token offset positions ahead of the current one
func (p *ExprParser) PeekAt(offset int) ExprToken {
	idx := p.pos + offset
	if idx < 0 || idx >= len(p.tokens) {
		return ExprToken{Type: ExprTokenTypeEOF, Pos: p.currentPos()}
	}
	return p.tokens[idx]
}

// Next consumes and returns the current token
func (p *ExprParser) Next() ExprToken {
	return p.advance()
}

// AtEnd reports whether all tokens have been consumed
func (p *ExprParser) AtEnd() bool {
	return p.isAtEnd()
}

// parseFilterChain parses `value | filter: arg, arg | filter` (lowest precedence)
func (p *ExprParser) parseFilterChain() (ExprNode, error) {
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	for p.match(ExprTokenTypePipe) {
		if !p.check(ExprTokenTypeIdentifier) {
			return nil, NewExprParseError(ErrMsgExprExpectedFilter, p.currentPos(), p.peek().Value)
		}
		name := p.advance().Value

		var args []ExprNode
		if p.match(ExprTokenTypeColon) {
			for {
				arg, err := p.parseOr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)

				if !p.match(ExprTokenTypeComma) {
					break
				}
			}
		}

		node = NewFilter(node, name, args)
	}

	return node, nil
}

// parseOr parses OR expressions
func (p *ExprParser) parseOr() (ExprNode, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.match(ExprTokenTypeOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, ExprTokenTypeOr, right)
	}

	return left, nil
}

// parseAnd parses AND expressions
func (p *ExprParser) parseAnd() (ExprNode, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.match(ExprTokenTypeAnd) {
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = NewBinary(left, ExprTokenTypeAnd, right)
	}

	return left, nil
}

// parseComparison parses a single comparison (==, !=, <, >, <=, >=, contains)
func (p *ExprParser) parseComparison() (ExprNode, error) {
	left, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}

	if p.matchAny(ExprTokenTypeEq, ExprTokenTypeNeq, ExprTokenTypeLt, ExprTokenTypeGt,
		ExprTokenTypeLte, ExprTokenTypeGte, ExprTokenTypeContains) {
		op := p.previous().Type
		right, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		return NewBinary(left, op, right), nil
	}

	return left, nil
}

// parsePostfix parses property and subscript access after a primary
func (p *ExprParser) parsePostfix() (ExprNode, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.match(ExprTokenTypeDot):
			if !p.check(ExprTokenTypeIdentifier) {
				return nil, NewExprParseError(ErrMsgExprExpectedProperty, p.currentPos(), p.peek().Value)
			}
			node = NewIndex(node, NewLiteral(p.advance().Value), true)

		case p.match(ExprTokenTypeLBracket):
			key, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if !p.match(ExprTokenTypeRBracket) {
				return nil, NewExprParseError(ErrMsgExprExpectedRBracket, p.currentPos(), "")
			}
			node = NewIndex(node, key, false)

		default:
			return node, nil
		}
	}
}

// parsePrimary parses literals, variables and ranges
func (p *ExprParser) parsePrimary() (ExprNode, error) {
	if p.matchAny(ExprTokenTypeString, ExprTokenTypeNumber, ExprTokenTypeBool, ExprTokenTypeNil) {
		return NewLiteral(p.previous().Literal), nil
	}

	if p.match(ExprTokenTypeIdentifier) {
		return NewVariable(p.previous().Value), nil
	}

	// Ranges are the only parenthesized form
	if p.match(ExprTokenTypeLParen) {
		start, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		if !p.match(ExprTokenTypeDotDot) {
			return nil, NewExprParseError(ErrMsgExprExpectedRange, p.currentPos(), p.peek().Value)
		}
		end, err := p.parsePostfix()
		if err != nil {
			return nil, err
		}
		if !p.match(ExprTokenTypeRParen) {
			return nil, NewExprParseError(ErrMsgExprExpectedRParen, p.currentPos(), "")
		}
		return NewRange(start, end), nil
	}

	if p.isAtEnd() {
		return nil, NewExprParseError(ErrMsgExprUnexpectedEOF, p.currentPos(), "")
	}

	return nil, NewExprParseError(ErrMsgExprUnexpectedToken, p.peek().Pos, p.peek().Value)
}

// Helper methods

// match checks if the current token matches and advances if so
func (p *ExprParser) match(tokenType ExprTokenType) bool {
	if p.check(tokenType) {
		p.advance()
		return true
	}
	return false
}

// matchAny checks if the current token matches any of the given types
func (p *ExprParser) matchAny(types ...ExprTokenType) bool {
	for _, t := range types {
		if p.match(t) {
			return true
		}
	}
	return false
}

// check returns true if the current token is of the given type
func (p *ExprParser) check(tokenType ExprTokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// advance moves to the next token and returns the previous one
func (p *ExprParser) advance() ExprToken {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

// peek returns the current token
func (p *ExprParser) peek() ExprToken {
	if p.pos >= len(p.tokens) {
		return ExprToken{Type: ExprTokenTypeEOF, Pos: p.currentPos()}
	}
	return p.tokens[p.pos]
}

// previous returns the previous token
func (p *ExprParser) previous() ExprToken {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

// isAtEnd returns true if we've consumed all tokens
func (p *ExprParser) isAtEnd() bool {
	return p.pos >= len(p.tokens) || p.tokens[p.pos].Type == ExprTokenTypeEOF
}

// currentPos returns the current position for error reporting
func (p *ExprParser) currentPos() int {
	if p.pos >= len(p.tokens) {
		if len(p.tokens) > 0 {
			return p.tokens[len(p.tokens)-1].Pos
		}
		return 0
	}
	return p.tokens[p.pos].Pos
}

// ExprParseError represents an error during expression parsing
type ExprParseError struct {
	Message string
	Pos     int
	Detail  string
}

// NewExprParseError creates a new expression parse error
func NewExprParseError(message string, pos int, detail string) *ExprParseError {
	return &ExprParseError{
		Message: message,
		Pos:     pos,
		Detail:  detail,
	}
}

// Error implements the error interface
func (e *ExprParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s at position %d: %s", e.Message, e.Pos, e.Detail)
	}
	return fmt.Sprintf("%s at position %d", e.Message, e.Pos)
}

// Expression parser error messages
const (
	ErrMsgExprEmptyExpression  = "empty expression"
	ErrMsgExprUnexpectedToken  = "unexpected token"
	ErrMsgExprExpectedRParen   = "expected closing parenthesis"
	ErrMsgExprExpectedRBracket = "expected closing bracket"
	ErrMsgExprExpectedRange    = "expected '..' in range"
	ErrMsgExprExpectedProperty = "expected property name after '.'"
	ErrMsgExprExpectedFilter   = "expected filter name after '|'"
	ErrMsgExprUnexpectedEOF    = "unexpected end of expression"
)

// ParseExpression is a convenience function that tokenizes and parses an expression string
func ParseExpression(expr string) (ExprNode, error) {
	tokenizer := NewExprTokenizer(expr)
	tokens, err := tokenizer.Tokenize()
	if err != nil {
		return nil, err
	}

	parser := NewExprParser(tokens)
	return parser.Parse()
}
