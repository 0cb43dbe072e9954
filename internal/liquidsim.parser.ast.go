package internal

import (
	"fmt"
	"strings"
)

// Node is the interface all AST nodes implement
type Node interface {
	// Type returns the node type identifier
	Type() NodeType
	// Position returns the source position of this node
	Pos() Position
	// String returns a human-readable representation
	String() string
}

// RootNode is the top-level container for an AST
type RootNode struct {
	Children []Node
}

// Type returns NodeTypeRoot
func (n *RootNode) Type() NodeType {
	return NodeTypeRoot
}

// Pos returns a zero position (root has no specific position)
func (n *RootNode) Pos() Position {
	return Position{Offset: 0, Line: 1, Column: 1}
}

// String returns a string representation of the root node
func (n *RootNode) String() string {
	var sb strings.Builder
	sb.WriteString("RootNode{\n")
	for i, child := range n.Children {
		sb.WriteString(fmt.Sprintf("  [%d] %s\n", i, child.String()))
	}
	sb.WriteString("}")
	return sb.String()
}

// TextNode represents literal text content
type TextNode struct {
	pos     Position
	Content string
}

// Type returns NodeTypeText
func (n *TextNode) Type() NodeType {
	return NodeTypeText
}

// Pos returns the source position
func (n *TextNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *TextNode) String() string {
	return fmt.Sprintf("TextNode{%q @ %s}", truncateForDisplay(n.Content), n.pos)
}

// NewTextNode creates a new text node
func NewTextNode(content string, pos Position) *TextNode {
	return &TextNode{
		pos:     pos,
		Content: content,
	}
}

// OutputNode represents {{ expression }}. A nil Expr renders nothing.
type OutputNode struct {
	pos    Position
	Markup string
	Expr   ExprNode
}

// Type returns NodeTypeOutput
func (n *OutputNode) Type() NodeType {
	return NodeTypeOutput
}

// Pos returns the source position
func (n *OutputNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *OutputNode) String() string {
	return fmt.Sprintf("OutputNode{%q @ %s}", truncateForDisplay(n.Markup), n.pos)
}

// NewOutputNode creates a new output node
func NewOutputNode(markup string, expr ExprNode, pos Position) *OutputNode {
	return &OutputNode{
		pos:    pos,
		Markup: markup,
		Expr:   expr,
	}
}

// TagNode represents a registered tag with its compiled arguments
type TagNode struct {
	pos      Position
	Name     string      // Tag name (e.g., "render", "capture")
	Markup   string      // Raw argument markup
	Tag      CompiledTag // Arguments compiled at parse time
	Children []Node      // Body for block tags, nil for inline tags
	IsBlock  bool
}

// Type returns NodeTypeTag
func (n *TagNode) Type() NodeType {
	return NodeTypeTag
}

// Pos returns the source position
func (n *TagNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *TagNode) String() string {
	if n.IsBlock {
		return fmt.Sprintf("TagNode{%s, block, markup=%q, children=%d @ %s}", n.Name, truncateForDisplay(n.Markup), len(n.Children), n.pos)
	}
	return fmt.Sprintf("TagNode{%s, markup=%q @ %s}", n.Name, truncateForDisplay(n.Markup), n.pos)
}

// NewTagNode creates a new tag node
func NewTagNode(name, markup string, tag CompiledTag, isBlock bool, children []Node, pos Position) *TagNode {
	return &TagNode{
		pos:      pos,
		Name:     name,
		Markup:   markup,
		Tag:      tag,
		Children: children,
		IsBlock:  isBlock,
	}
}

// ConditionalNode represents an if/unless block with its elsif/else branches
type ConditionalNode struct {
	pos      Position
	Branches []ConditionalBranch
}

// ConditionalBranch represents a single branch in a conditional
type ConditionalBranch struct {
	Condition ExprNode // nil for else
	Source    string   // Condition markup
	Negate    bool     // True for the leading unless branch
	Children  []Node
	IsElse    bool
	Pos       Position
}

// Type returns NodeTypeConditional
func (n *ConditionalNode) Type() NodeType {
	return NodeTypeConditional
}

// Pos returns the source position
func (n *ConditionalNode) Pos() Position {
	return n.pos
}

// String returns a string representation
func (n *ConditionalNode) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ConditionalNode{branches=%d @ %s", len(n.Branches), n.pos))
	for i, branch := range n.Branches {
		switch {
		case branch.IsElse:
			sb.WriteString(fmt.Sprintf(", [%d]else", i))
		case branch.Negate:
			sb.WriteString(fmt.Sprintf(", [%d]unless(%s)", i, branch.Source))
		default:
			sb.WriteString(fmt.Sprintf(", [%d]if(%s)", i, branch.Source))
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// NewConditionalNode creates a new conditional node
func NewConditionalNode(branches []ConditionalBranch, pos Position) *ConditionalNode {
	return &ConditionalNode{
		pos:      pos,
		Branches: branches,
	}
}

func truncateForDisplay(s string) string {
	if len(s) > MaxStringDisplayLength {
		return s[:TruncatedStringLength] + TruncationSuffix
	}
	return s
}
