package liquidsim

import (
	"github.com/itsatony/go-liquidsim/internal"
)

// Expression is a compiled host expression: a literal, a variable path such
// as `product.title` or `items[0]`, a range `(1..n)`, comparisons and
// filter chains. Expressions are immutable.
type Expression struct {
	source string
	node   internal.ExprNode
}

// ParseExpression compiles source into an Expression.
func ParseExpression(source string) (*Expression, error) {
	node, err := internal.ParseExpression(source)
	if err != nil {
		return nil, NewSyntaxError(ErrMsgInvalidExpression, StringValueEmpty, err)
	}
	return &Expression{source: source, node: node}, nil
}

// MustParseExpression compiles source and panics on error.
func MustParseExpression(source string) *Expression {
	expr, err := ParseExpression(source)
	if err != nil {
		panic(err)
	}
	return expr
}

func newExpression(node internal.ExprNode) *Expression {
	return &Expression{source: node.String(), node: node}
}

// Source returns the text the expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

// String returns the normalized form of the expression.
func (e *Expression) String() string {
	return e.node.String()
}
