package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Lexer tokenizes Liquid template source into text, output and tag tokens.
// Tag and output markup is kept as raw text; the parser compiles it.
type Lexer struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewLexer creates a new lexer for the given source
func NewLexer(source string, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		pos:    0,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns a token stream
func (l *Lexer) Tokenize() ([]Token, error) {
	l.logger.Debug(LogMsgTokenizerStart)
	var tokens []Token

	for !l.isAtEnd() {
		if l.matchStr(StrOutputOpen) {
			pos := l.currentPosition()
			l.advanceN(len(StrOutputOpen))
			content, err := l.scanUntilClose(StrOutputClose)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, NewOutputToken(trimMarkup(content), pos))
			continue
		}

		if l.matchStr(StrTagOpen) {
			pos := l.currentPosition()
			l.advanceN(len(StrTagOpen))
			content, err := l.scanUntilClose(StrTagClose)
			if err != nil {
				return nil, err
			}
			name, markup, ok := splitTagContent(trimMarkup(content))
			if !ok {
				return nil, &LexerError{Message: ErrMsgInvalidTagName, Position: pos}
			}
			tokens = append(tokens, NewTagToken(name, markup, pos))

			// raw and comment bodies are never tokenized
			if name == TagNameRaw || name == TagNameComment {
				verbatim, err := l.scanVerbatim(EndTagPrefix+name, pos)
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, verbatim...)
			}
			continue
		}

		textToken := l.scanText()
		if textToken.Value != StringValueEmpty {
			tokens = append(tokens, textToken)
		}
	}

	tokens = append(tokens, NewEOFToken(l.currentPosition()))
	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(tokens)))
	return tokens, nil
}

// scanText scans text content until the next delimiter
func (l *Lexer) scanText() Token {
	startPos := l.currentPosition()
	var sb strings.Builder

	for !l.isAtEnd() {
		if l.matchStr(StrOutputOpen) || l.matchStr(StrTagOpen) {
			break
		}
		sb.WriteByte(l.advance())
	}

	return NewTextToken(sb.String(), startPos)
}

// scanUntilClose consumes markup up to and including the close delimiter.
// Quoted strings may contain the close delimiter.
func (l *Lexer) scanUntilClose(closeDelim string) (string, error) {
	var sb strings.Builder
	var quote byte

	for !l.isAtEnd() {
		ch := l.peek()

		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			sb.WriteByte(l.advance())
			continue
		}

		if ch == CharDoubleQuote || ch == CharSingleQuote {
			quote = ch
			sb.WriteByte(l.advance())
			continue
		}

		if l.matchStr(closeDelim) {
			l.advanceN(len(closeDelim))
			return sb.String(), nil
		}

		sb.WriteByte(l.advance())
	}

	if quote != 0 {
		return StringValueEmpty, l.newError(ErrMsgUnterminatedStr)
	}
	return StringValueEmpty, l.newError(ErrMsgUnterminatedTag)
}

// scanVerbatim collects everything up to the matching end tag and emits it
// as a single text token followed by the end tag token.
func (l *Lexer) scanVerbatim(endName string, openPos Position) ([]Token, error) {
	startPos := l.currentPosition()
	var sb strings.Builder

	for !l.isAtEnd() {
		if l.matchStr(StrTagOpen) {
			closeIdx := strings.Index(l.source[l.pos:], StrTagClose)
			if closeIdx >= 0 {
				inner := trimMarkup(l.source[l.pos+len(StrTagOpen) : l.pos+closeIdx])
				if inner == endName {
					endPos := l.currentPosition()
					l.advanceN(closeIdx + len(StrTagClose))

					var tokens []Token
					if sb.Len() > 0 {
						tokens = append(tokens, NewTextToken(sb.String(), startPos))
					}
					return append(tokens, NewTagToken(endName, StringValueEmpty, endPos)), nil
				}
			}
		}
		sb.WriteByte(l.advance())
	}

	return nil, &LexerError{Message: ErrMsgUnclosedBlock, Position: openPos}
}

// splitTagContent separates the tag name from its markup
func splitTagContent(content string) (string, string, bool) {
	if content == StringValueEmpty {
		return StringValueEmpty, StringValueEmpty, false
	}
	if !isLetter(content[0]) && content[0] != '_' {
		return StringValueEmpty, StringValueEmpty, false
	}

	end := 1
	for end < len(content) && (isLetter(content[end]) || isDigit(content[end]) || content[end] == '_') {
		end++
	}

	return content[:end], strings.TrimSpace(content[end:]), true
}

// trimMarkup drops the whitespace-control dashes adjacent to the delimiters
// and surrounding whitespace. Whitespace control itself is not applied.
func trimMarkup(content string) string {
	content = strings.TrimPrefix(content, string(CharDash))
	content = strings.TrimSuffix(content, string(CharDash))
	return strings.TrimSpace(content)
}

// Helper methods

func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

func (l *Lexer) matchStr(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

func (l *Lexer) newError(message string) error {
	return &LexerError{
		Message:  message,
		Position: l.currentPosition(),
	}
}

// Character classification helpers

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// LexerError represents a lexer error with position
type LexerError struct {
	Message  string
	Position Position
}

func (e *LexerError) Error() string {
	return e.Message + " at " + e.Position.String()
}

// Error message constants for lexer
const (
	ErrMsgUnterminatedTag = "unterminated tag"
	ErrMsgUnterminatedStr = "unterminated string literal"
	ErrMsgInvalidTagName  = "invalid tag name"
	ErrMsgUnclosedBlock   = "block tag is never closed"
)
