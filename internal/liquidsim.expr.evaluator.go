package internal

import (
	"fmt"
)

// VariableLookup resolves top-level variable names during evaluation
type VariableLookup interface {
	Lookup(name string) (any, bool)
}

// ExprEvaluator evaluates expression AST nodes
type ExprEvaluator struct {
	filters *FilterRegistry
	vars    VariableLookup
}

// NewExprEvaluator creates a new expression evaluator
func NewExprEvaluator(filters *FilterRegistry, vars VariableLookup) *ExprEvaluator {
	return &ExprEvaluator{
		filters: filters,
		vars:    vars,
	}
}

// Evaluate evaluates an expression and returns the result
func (e *ExprEvaluator) Evaluate(node ExprNode) (any, error) {
	if node == nil {
		return nil, NewExprEvalError(ErrMsgExprNilNode, "")
	}

	switch n := node.(type) {
	case *LiteralNode:
		return n.Value, nil

	case *VariableNode:
		return e.evaluateVariable(n)

	case *IndexNode:
		return e.evaluateIndex(n)

	case *RangeNode:
		return e.evaluateRange(n)

	case *BinaryNode:
		return e.evaluateBinary(n)

	case *FilterNode:
		return e.evaluateFilter(n)

	default:
		return nil, NewExprEvalError(ErrMsgExprUnknownNodeType, fmt.Sprintf("%T", node))
	}
}

// EvaluateBool evaluates an expression and applies Liquid truthiness
func (e *ExprEvaluator) EvaluateBool(node ExprNode) (bool, error) {
	result, err := e.Evaluate(node)
	if err != nil {
		return false, err
	}
	return IsTruthy(result), nil
}

// evaluateVariable looks up a variable; missing variables are nil
func (e *ExprEvaluator) evaluateVariable(node *VariableNode) (any, error) {
	if e.vars == nil {
		return nil, NewExprEvalError(ErrMsgExprNoScope, node.Name)
	}

	val, found := e.vars.Lookup(node.Name)
	if !found {
		return nil, nil
	}
	return val, nil
}

// evaluateIndex resolves property and subscript access
func (e *ExprEvaluator) evaluateIndex(node *IndexNode) (any, error) {
	target, err := e.Evaluate(node.Target)
	if err != nil {
		return nil, err
	}
	key, err := e.Evaluate(node.Key)
	if err != nil {
		return nil, err
	}
	return LookupProperty(target, key, node.Dotted), nil
}

// evaluateRange produces the inclusive integer sequence start..end
func (e *ExprEvaluator) evaluateRange(node *RangeNode) (any, error) {
	startVal, err := e.Evaluate(node.Start)
	if err != nil {
		return nil, err
	}
	endVal, err := e.Evaluate(node.End)
	if err != nil {
		return nil, err
	}

	start, ok := ToInt(startVal)
	if !ok {
		return nil, NewExprEvalError(ErrMsgExprInvalidRange, fmt.Sprintf("%v", startVal))
	}
	end, ok := ToInt(endVal)
	if !ok {
		return nil, NewExprEvalError(ErrMsgExprInvalidRange, fmt.Sprintf("%v", endVal))
	}

	if end < start {
		return []any{}, nil
	}
	result := make([]any, 0, end-start+1)
	for i := start; i <= end; i++ {
		result = append(result, i)
	}
	return result, nil
}

// evaluateBinary evaluates a binary operation
func (e *ExprEvaluator) evaluateBinary(node *BinaryNode) (any, error) {
	// Short-circuit evaluation for logical operators
	if node.Op == ExprTokenTypeAnd {
		left, err := e.Evaluate(node.Left)
		if err != nil {
			return nil, err
		}
		if !IsTruthy(left) {
			return false, nil
		}
		right, err := e.Evaluate(node.Right)
		if err != nil {
			return nil, err
		}
		return IsTruthy(right), nil
	}

	if node.Op == ExprTokenTypeOr {
		left, err := e.Evaluate(node.Left)
		if err != nil {
			return nil, err
		}
		if IsTruthy(left) {
			return true, nil
		}
		right, err := e.Evaluate(node.Right)
		if err != nil {
			return nil, err
		}
		return IsTruthy(right), nil
	}

	left, err := e.Evaluate(node.Left)
	if err != nil {
		return nil, err
	}

	right, err := e.Evaluate(node.Right)
	if err != nil {
		return nil, err
	}

	switch node.Op {
	case ExprTokenTypeEq:
		return CompareEqual(left, right), nil
	case ExprTokenTypeNeq:
		return !CompareEqual(left, right), nil
	case ExprTokenTypeContains:
		return Contains(left, right), nil
	case ExprTokenTypeLt, ExprTokenTypeGt, ExprTokenTypeLte, ExprTokenTypeGte:
		if left == nil || right == nil {
			return false, nil
		}
		cmp, err := compareOrder(left, right)
		if err != nil {
			return nil, err
		}
		switch node.Op {
		case ExprTokenTypeLt:
			return cmp < 0, nil
		case ExprTokenTypeGt:
			return cmp > 0, nil
		case ExprTokenTypeLte:
			return cmp <= 0, nil
		default:
			return cmp >= 0, nil
		}
	default:
		return nil, NewExprEvalError(ErrMsgExprUnknownOperator, string(node.Op))
	}
}

// evaluateFilter applies a registered filter to its evaluated input
func (e *ExprEvaluator) evaluateFilter(node *FilterNode) (any, error) {
	if e.filters == nil {
		return nil, NewExprEvalError(ErrMsgExprNoFilterRegistry, node.Name)
	}

	input, err := e.Evaluate(node.Input)
	if err != nil {
		return nil, err
	}

	args := make([]any, len(node.Args))
	for i, argNode := range node.Args {
		val, err := e.Evaluate(argNode)
		if err != nil {
			return nil, err
		}
		args[i] = val
	}

	return e.filters.Apply(node.Name, input, args)
}

// ExprEvalError represents an expression evaluation error
type ExprEvalError struct {
	Message string
	Detail  string
}

// NewExprEvalError creates a new expression evaluation error
func NewExprEvalError(message, detail string) *ExprEvalError {
	return &ExprEvalError{
		Message: message,
		Detail:  detail,
	}
}

// Error implements the error interface
func (e *ExprEvalError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// Expression evaluator error messages
const (
	ErrMsgExprNilNode          = "nil expression node"
	ErrMsgExprUnknownNodeType  = "unknown expression node type"
	ErrMsgExprNoScope          = "no scope available for variable lookup"
	ErrMsgExprUnknownOperator  = "unknown operator"
	ErrMsgExprNoFilterRegistry = "no filter registry available"
	ErrMsgExprTypeMismatch     = "type mismatch in comparison"
	ErrMsgExprInvalidRange     = "range bounds must be integers"
)

// EvaluateExpression is a convenience function that parses and evaluates an expression string
func EvaluateExpression(expr string, filters *FilterRegistry, vars VariableLookup) (any, error) {
	node, err := ParseExpression(expr)
	if err != nil {
		return nil, err
	}

	evaluator := NewExprEvaluator(filters, vars)
	return evaluator.Evaluate(node)
}
