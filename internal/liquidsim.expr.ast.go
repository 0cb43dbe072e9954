package internal

import (
	"fmt"
	"strings"
)

// ExprNodeType identifies the type of expression AST node
type ExprNodeType int

// Expression node type constants
const (
	ExprNodeTypeLiteral ExprNodeType = iota
	ExprNodeTypeVariable
	ExprNodeTypeIndex
	ExprNodeTypeRange
	ExprNodeTypeBinary
	ExprNodeTypeFilter
)

// Expression node type names for debugging
const (
	ExprNodeTypeNameLiteral  = "LITERAL"
	ExprNodeTypeNameVariable = "VARIABLE"
	ExprNodeTypeNameIndex    = "INDEX"
	ExprNodeTypeNameRange    = "RANGE"
	ExprNodeTypeNameBinary   = "BINARY"
	ExprNodeTypeNameFilter   = "FILTER"
)

// String returns the string representation of the node type
func (t ExprNodeType) String() string {
	switch t {
	case ExprNodeTypeLiteral:
		return ExprNodeTypeNameLiteral
	case ExprNodeTypeVariable:
		return ExprNodeTypeNameVariable
	case ExprNodeTypeIndex:
		return ExprNodeTypeNameIndex
	case ExprNodeTypeRange:
		return ExprNodeTypeNameRange
	case ExprNodeTypeBinary:
		return ExprNodeTypeNameBinary
	case ExprNodeTypeFilter:
		return ExprNodeTypeNameFilter
	default:
		return ExprNodeTypeNameLiteral
	}
}

// ExprNode is the interface for all expression AST nodes
type ExprNode interface {
	// Type returns the node type
	Type() ExprNodeType
	// String returns a string representation for debugging
	String() string
	// exprNode is a marker method to ensure type safety
	exprNode()
}

// LiteralNode represents a literal value (string, int, float64, bool, nil)
type LiteralNode struct {
	Value any
}

func (n *LiteralNode) Type() ExprNodeType { return ExprNodeTypeLiteral }
func (n *LiteralNode) exprNode()          {}

func (n *LiteralNode) String() string {
	switch v := n.Value.(type) {
	case nil:
		return StringValueNil
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// NewLiteral creates a literal node
func NewLiteral(value any) *LiteralNode {
	return &LiteralNode{Value: value}
}

// VariableNode represents a top-level variable lookup
type VariableNode struct {
	Name string
}

func (n *VariableNode) Type() ExprNodeType { return ExprNodeTypeVariable }
func (n *VariableNode) exprNode()          {}
func (n *VariableNode) String() string     { return n.Name }

// NewVariable creates a variable node
func NewVariable(name string) *VariableNode {
	return &VariableNode{Name: name}
}

// IndexNode represents property access (a.b) or subscript access (a[0], a["k"]).
// Dotted access also resolves the size, first and last pseudo-properties.
type IndexNode struct {
	Target ExprNode
	Key    ExprNode
	Dotted bool
}

func (n *IndexNode) Type() ExprNodeType { return ExprNodeTypeIndex }
func (n *IndexNode) exprNode()          {}

func (n *IndexNode) String() string {
	if lit, ok := n.Key.(*LiteralNode); ok && n.Dotted {
		return fmt.Sprintf("%s.%v", n.Target, lit.Value)
	}
	return fmt.Sprintf("%s[%s]", n.Target, n.Key)
}

// NewIndex creates an index node
func NewIndex(target, key ExprNode, dotted bool) *IndexNode {
	return &IndexNode{Target: target, Key: key, Dotted: dotted}
}

// RangeNode represents an inclusive integer range (start..end)
type RangeNode struct {
	Start ExprNode
	End   ExprNode
}

func (n *RangeNode) Type() ExprNodeType { return ExprNodeTypeRange }
func (n *RangeNode) exprNode()          {}

func (n *RangeNode) String() string {
	return fmt.Sprintf("(%s..%s)", n.Start, n.End)
}

// NewRange creates a range node
func NewRange(start, end ExprNode) *RangeNode {
	return &RangeNode{Start: start, End: end}
}

// BinaryNode represents a binary operation
type BinaryNode struct {
	Left  ExprNode
	Op    ExprTokenType
	Right ExprNode
}

func (n *BinaryNode) Type() ExprNodeType { return ExprNodeTypeBinary }
func (n *BinaryNode) exprNode()          {}

func (n *BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

// NewBinary creates a binary operation node
func NewBinary(left ExprNode, op ExprTokenType, right ExprNode) *BinaryNode {
	return &BinaryNode{Left: left, Op: op, Right: right}
}

// FilterNode represents a filter application: input | name: arg, arg
type FilterNode struct {
	Input ExprNode
	Name  string
	Args  []ExprNode
}

func (n *FilterNode) Type() ExprNodeType { return ExprNodeTypeFilter }
func (n *FilterNode) exprNode()          {}

func (n *FilterNode) String() string {
	if len(n.Args) == 0 {
		return fmt.Sprintf("%s | %s", n.Input, n.Name)
	}
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s | %s: %s", n.Input, n.Name, strings.Join(args, ", "))
}

// NewFilter creates a filter node
func NewFilter(input ExprNode, name string, args []ExprNode) *FilterNode {
	return &FilterNode{Input: input, Name: name, Args: args}
}
