package liquidsim

import (
	"strings"

	"github.com/itsatony/go-liquidsim/internal"
)

// TagInvocation is the compiled form of a render tag's arguments:
//
//	'snippet', key: value, key2: value2 for items as item
//	'snippet' with product as card
//
// It is built once at parse time and never modified afterwards.
type TagInvocation struct {
	SnippetName *Expression
	Bindings    []Binding
	Loop        *LoopClause
	Alias       *AliasClause
}

// Binding is an explicit `key: value` argument.
type Binding struct {
	Key   string
	Value *Expression
}

// LoopClause is `for <collection> as <alias>`.
type LoopClause struct {
	Collection *Expression
	ItemAlias  string
}

// AliasClause is `with <value> as <alias>`. Position is the number of
// explicit bindings that precede the clause in the source, which decides
// whether the alias or a binding of the same key wins.
type AliasClause struct {
	Value    *Expression
	Alias    string
	Position int
}

// BoundValue is a binding whose expression has been evaluated.
type BoundValue struct {
	Name  string
	Value any
}

// ParseRenderArguments compiles the markup of a render tag.
func ParseRenderArguments(markup string) (*TagInvocation, error) {
	if strings.TrimSpace(markup) == StringValueEmpty {
		return nil, NewSyntaxError(ErrMsgMissingSnippetName, TagNameRender, nil)
	}

	tokens, err := internal.NewExprTokenizer(markup).Tokenize()
	if err != nil {
		return nil, NewSyntaxError(ErrMsgInvalidArguments, TagNameRender, err)
	}

	b := &binder{parser: internal.NewExprParser(tokens)}
	return b.parse()
}

// binder walks the argument tokens with the expression parser's cursor.
type binder struct {
	parser *internal.ExprParser
	inv    TagInvocation
}

func (b *binder) parse() (*TagInvocation, error) {
	if b.atClauseBoundary() || b.isClauseKeyword() {
		return nil, b.fail(ErrMsgMissingSnippetName, nil)
	}

	name, err := b.parser.ParseValue()
	if err != nil {
		return nil, b.fail(ErrMsgMissingSnippetName, err)
	}
	b.inv.SnippetName = newExpression(name)

	for !b.parser.AtEnd() {
		afterComma := false
		if b.parser.Peek().Is(internal.ExprTokenTypeComma) {
			b.parser.Next()
			afterComma = true
			if b.parser.AtEnd() {
				return nil, b.fail(ErrMsgTrailingComma, nil)
			}
		}

		switch {
		case b.isClauseKeyword():
			if err := b.parseClause(); err != nil {
				return nil, err
			}
		case afterComma && b.isBindingKey():
			if err := b.parseBinding(); err != nil {
				return nil, err
			}
		default:
			return nil, b.fail(ErrMsgStrayToken, nil)
		}
	}

	inv := b.inv
	return &inv, nil
}

// parseBinding parses `key: value`.
func (b *binder) parseBinding() error {
	key := b.parser.Next().Value
	b.parser.Next()

	if b.atClauseBoundary() {
		return b.fail(ErrMsgMissingBindingValue, nil)
	}
	value, err := b.parser.ParseValue()
	if err != nil {
		return b.fail(ErrMsgMissingBindingValue, err)
	}

	b.inv.Bindings = append(b.inv.Bindings, Binding{Key: key, Value: newExpression(value)})
	return nil
}

// parseClause parses `for <expr> as <ident>` or `with <expr> as <ident>`.
func (b *binder) parseClause() error {
	keyword := b.parser.Next().Value

	switch {
	case keyword == KeywordFor && b.inv.Loop != nil:
		return b.fail(ErrMsgRepeatedFor, nil)
	case keyword == KeywordWith && b.inv.Alias != nil:
		return b.fail(ErrMsgRepeatedWith, nil)
	case b.inv.Loop != nil || b.inv.Alias != nil:
		return b.fail(ErrMsgForAndWith, nil)
	}

	if b.atClauseBoundary() || b.parser.Peek().IsIdent(KeywordAs) {
		return b.fail(ErrMsgMissingClauseValue, nil)
	}
	value, err := b.parser.ParseValue()
	if err != nil {
		return b.fail(ErrMsgMissingClauseValue, err)
	}

	if !b.parser.Peek().IsIdent(KeywordAs) {
		return b.fail(ErrMsgMissingAs, nil)
	}
	b.parser.Next()

	aliasTok := b.parser.Peek()
	if !aliasTok.Is(internal.ExprTokenTypeIdentifier) || !internal.IsIdentifier(aliasTok.Value) {
		return b.fail(ErrMsgMissingAlias, nil)
	}
	b.parser.Next()

	if keyword == KeywordFor {
		b.inv.Loop = &LoopClause{Collection: newExpression(value), ItemAlias: aliasTok.Value}
		return nil
	}
	b.inv.Alias = &AliasClause{Value: newExpression(value), Alias: aliasTok.Value, Position: len(b.inv.Bindings)}
	return nil
}

// isClauseKeyword reports whether the cursor is on `for` or `with` used as a
// keyword. `for: x` and `with: x` are ordinary bindings.
func (b *binder) isClauseKeyword() bool {
	tok := b.parser.Peek()
	if !tok.IsIdent(KeywordFor) && !tok.IsIdent(KeywordWith) {
		return false
	}
	return !b.parser.PeekAt(1).Is(internal.ExprTokenTypeColon)
}

func (b *binder) isBindingKey() bool {
	return b.parser.Peek().Is(internal.ExprTokenTypeIdentifier) &&
		b.parser.PeekAt(1).Is(internal.ExprTokenTypeColon)
}

func (b *binder) atClauseBoundary() bool {
	return b.parser.AtEnd() || b.parser.Peek().Is(internal.ExprTokenTypeComma)
}

func (b *binder) fail(msg string, cause error) error {
	return NewSyntaxError(msg, TagNameRender, cause)
}

// OrderedBindings returns the bindings in the order they apply, with the
// alias clause inserted at its source position. Later entries overwrite
// earlier ones.
func (inv *TagInvocation) OrderedBindings() []Binding {
	if inv.Alias == nil {
		return inv.Bindings
	}

	ordered := make([]Binding, 0, len(inv.Bindings)+1)
	ordered = append(ordered, inv.Bindings[:inv.Alias.Position]...)
	ordered = append(ordered, Binding{Key: inv.Alias.Alias, Value: inv.Alias.Value})
	ordered = append(ordered, inv.Bindings[inv.Alias.Position:]...)
	return ordered
}
