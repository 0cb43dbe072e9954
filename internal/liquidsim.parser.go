package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// Parser produces an AST from a token stream. Registered tags are compiled
// as they are encountered so that argument errors surface at parse time.
type Parser struct {
	tokens []Token
	tags   TagLookup
	pos    int
	logger *zap.Logger
}

// NewParser creates a new parser for the given token stream
func NewParser(tokens []Token, tags TagLookup, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		tokens: tokens,
		tags:   tags,
		pos:    0,
		logger: logger,
	}
}

// Parse produces the AST root node from the token stream
func (p *Parser) Parse() (*RootNode, error) {
	p.logger.Debug(LogMsgParserStart)

	var nodes []Node
	for !p.isAtEnd() {
		tok := p.current()
		if tok.IsTag() && p.isTerminator(tok.Value) {
			return nil, p.newUnexpectedTagError(tok)
		}
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	root := &RootNode{Children: nodes}
	p.logger.Debug(LogMsgParserEnd, zap.Int(LogFieldNodes, len(nodes)))
	return root, nil
}

// parseUntil parses nodes until one of the terminator tags is reached.
// The terminator token is consumed and returned.
func (p *Parser) parseUntil(opener Token, terminators ...string) ([]Node, Token, error) {
	var nodes []Node

	for !p.isAtEnd() {
		tok := p.current()
		if tok.IsTag(terminators...) {
			p.advance()
			return nodes, tok, nil
		}
		if tok.IsTag() && p.isTerminator(tok.Value) {
			return nil, Token{}, p.newUnexpectedTagError(tok)
		}

		node, err := p.parseNode()
		if err != nil {
			return nil, Token{}, err
		}
		nodes = append(nodes, node)
	}

	return nil, Token{}, &ParserError{
		Message:  ErrMsgUnclosedBlock,
		Position: opener.Position,
		TagName:  opener.Value,
	}
}

// parseNode parses a single text, output or tag node
func (p *Parser) parseNode() (Node, error) {
	tok := p.advance()

	switch tok.Type {
	case TokenTypeText:
		return NewTextNode(tok.Value, tok.Position), nil

	case TokenTypeOutput:
		return p.parseOutput(tok)

	case TokenTypeTag:
		switch tok.Value {
		case TagNameIf:
			return p.parseConditional(tok, false)
		case TagNameUnless:
			return p.parseConditional(tok, true)
		default:
			return p.parseTag(tok)
		}

	default:
		return nil, &ParserError{Message: ErrMsgUnexpectedToken, Position: tok.Position}
	}
}

// parseOutput compiles the expression of an output token
func (p *Parser) parseOutput(tok Token) (Node, error) {
	if tok.Markup == StringValueEmpty {
		return NewOutputNode(tok.Markup, nil, tok.Position), nil
	}

	expr, err := ParseExpression(tok.Markup)
	if err != nil {
		return nil, &ParserError{
			Message:  ErrMsgInvalidOutput,
			Position: tok.Position,
			Cause:    err,
		}
	}
	return NewOutputNode(tok.Markup, expr, tok.Position), nil
}

// parseTag compiles a registered tag and, for block tags, its body
func (p *Parser) parseTag(tok Token) (Node, error) {
	if p.tags == nil {
		return nil, p.newUnknownTagError(tok)
	}
	def, ok := p.tags.Get(tok.Value)
	if !ok {
		return nil, p.newUnknownTagError(tok)
	}

	compiled, err := def.Compile(tok.Markup)
	if err != nil {
		return nil, &TagCompileError{
			TagName:  tok.Value,
			Position: tok.Position,
			Cause:    err,
		}
	}
	p.logger.Debug(LogMsgTagCompiled, zap.String(LogFieldTag, tok.Value))

	if !def.IsBlock() {
		return NewTagNode(tok.Value, tok.Markup, compiled, false, nil, tok.Position), nil
	}

	children, _, err := p.parseUntil(tok, EndTagPrefix+tok.Value)
	if err != nil {
		return nil, err
	}
	return NewTagNode(tok.Value, tok.Markup, compiled, true, children, tok.Position), nil
}

// parseConditional parses an if/unless block with elsif and else branches
func (p *Parser) parseConditional(open Token, negate bool) (*ConditionalNode, error) {
	endName := TagNameEndIf
	if negate {
		endName = TagNameEndUnless
	}

	var branches []ConditionalBranch
	branchTok := open
	isElse := false
	first := true

	for {
		var cond ExprNode
		if !isElse {
			var err error
			cond, err = p.parseCondition(branchTok)
			if err != nil {
				return nil, err
			}
		} else if branchTok.Markup != StringValueEmpty {
			return nil, &ParserError{Message: ErrMsgElseWithCondition, Position: branchTok.Position, TagName: TagNameElse}
		}

		children, next, err := p.parseUntil(open, TagNameElsif, TagNameElse, endName)
		if err != nil {
			return nil, err
		}

		branches = append(branches, ConditionalBranch{
			Condition: cond,
			Source:    branchTok.Markup,
			Negate:    negate && first,
			Children:  children,
			IsElse:    isElse,
			Pos:       branchTok.Position,
		})
		first = false

		if next.Value == endName {
			break
		}
		if isElse {
			return nil, &ParserError{Message: ErrMsgElseNotLast, Position: next.Position, TagName: next.Value}
		}

		branchTok = next
		isElse = next.Value == TagNameElse
	}

	return NewConditionalNode(branches, open.Position), nil
}

// parseCondition compiles the condition of an if, unless or elsif tag
func (p *Parser) parseCondition(tok Token) (ExprNode, error) {
	if tok.Markup == StringValueEmpty {
		return nil, &ParserError{Message: ErrMsgMissingCondition, Position: tok.Position, TagName: tok.Value}
	}
	cond, err := ParseExpression(tok.Markup)
	if err != nil {
		return nil, &ParserError{Message: ErrMsgInvalidCondition, Position: tok.Position, TagName: tok.Value, Cause: err}
	}
	return cond, nil
}

// Helper methods

// isTerminator reports whether a tag name only makes sense closing a block
func (p *Parser) isTerminator(name string) bool {
	if name == TagNameElsif || name == TagNameElse {
		return true
	}
	if p.tags != nil {
		if _, ok := p.tags.Get(name); ok {
			return false
		}
	}
	return len(name) > len(EndTagPrefix) && name[:len(EndTagPrefix)] == EndTagPrefix
}

// current returns the current token
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenTypeEOF}
	}
	return p.tokens[p.pos]
}

// advance consumes and returns the current token
func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// isAtEnd returns true if we've reached EOF
func (p *Parser) isAtEnd() bool {
	return p.current().Type == TokenTypeEOF
}

// Error helpers

func (p *Parser) newUnknownTagError(tok Token) error {
	return &ParserError{
		Message:  ErrMsgUnknownTag,
		Position: tok.Position,
		TagName:  tok.Value,
	}
}

func (p *Parser) newUnexpectedTagError(tok Token) error {
	return &ParserError{
		Message:  ErrMsgUnexpectedTag,
		Position: tok.Position,
		TagName:  tok.Value,
	}
}

// ParserError represents a parser error with context
type ParserError struct {
	Message  string
	Position Position
	TagName  string
	Cause    error
}

func (e *ParserError) Error() string {
	var result string
	if e.TagName != StringValueEmpty {
		result = fmt.Sprintf(ErrFmtWithTagAndPosition, e.Message, e.TagName, e.Position.String())
	} else {
		result = fmt.Sprintf(ErrFmtWithPosition, e.Message, e.Position.String())
	}
	if e.Cause != nil {
		result = fmt.Sprintf(ErrFmtWithCause, result, e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error
func (e *ParserError) Unwrap() error {
	return e.Cause
}

// TagCompileError wraps an error returned by a tag's argument compiler.
// The cause is kept intact so callers can recover typed errors from it.
type TagCompileError struct {
	TagName  string
	Position Position
	Cause    error
}

func (e *TagCompileError) Error() string {
	return fmt.Sprintf(ErrFmtWithCause,
		fmt.Sprintf(ErrFmtWithTagAndPosition, ErrMsgTagCompileFailed, e.TagName, e.Position.String()),
		e.Cause)
}

// Unwrap returns the underlying cause error
func (e *TagCompileError) Unwrap() error {
	return e.Cause
}

// Parser error message constants
const (
	ErrMsgUnexpectedToken   = "unexpected token"
	ErrMsgUnknownTag        = "unknown tag"
	ErrMsgUnexpectedTag     = "unexpected tag"
	ErrMsgInvalidOutput     = "invalid output expression"
	ErrMsgMissingCondition  = "missing condition"
	ErrMsgInvalidCondition  = "invalid condition"
	ErrMsgElseWithCondition = "else takes no condition"
	ErrMsgElseNotLast       = "else must be the last branch"
	ErrMsgTagCompileFailed  = "invalid tag arguments"
)
