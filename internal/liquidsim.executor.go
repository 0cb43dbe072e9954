package internal

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Scope is the variable environment a template renders against
type Scope interface {
	Lookup(name string) (any, bool)
	Set(name string, value any)
}

// ExecutorConfig holds executor configuration options.
type ExecutorConfig struct {
	MaxDepth int // Maximum nested render depth (0 = unlimited)
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		MaxDepth: DefaultMaxDepth,
	}
}

// Executor traverses an AST and produces output.
type Executor struct {
	filters *FilterRegistry
	config  ExecutorConfig
	logger  *zap.Logger
}

// NewExecutor creates a new executor with the given filters and configuration.
func NewExecutor(filters *FilterRegistry, config ExecutorConfig, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgExecutorCreated)

	return &Executor{
		filters: filters,
		config:  config,
		logger:  logger,
	}
}

// MaxDepth returns the configured nesting limit
func (e *Executor) MaxDepth() int {
	return e.config.MaxDepth
}

// Execute renders the AST against scope. depth counts nested template
// renders; owner is handed to tags through their Frame.
func (e *Executor) Execute(ctx context.Context, root *RootNode, scope Scope, depth int, owner any) (string, error) {
	if e.config.MaxDepth > 0 && depth > e.config.MaxDepth {
		return "", &DepthExceededError{Depth: depth, MaxDepth: e.config.MaxDepth}
	}
	e.logger.Debug(LogMsgExecutorStart, zap.Int(LogFieldDepth, depth))

	result, err := e.executeNodes(ctx, root.Children, scope, depth, owner)
	if err != nil {
		return "", err
	}

	e.logger.Debug(LogMsgExecutorEnd, zap.Int(LogFieldDepth, depth))
	return result, nil
}

// executeNodes processes a slice of nodes and concatenates their output.
func (e *Executor) executeNodes(ctx context.Context, nodes []Node, scope Scope, depth int, owner any) (string, error) {
	var sb strings.Builder

	for _, node := range nodes {
		output, err := e.executeNode(ctx, node, scope, depth, owner)
		if err != nil {
			return "", err
		}
		sb.WriteString(output)
	}

	return sb.String(), nil
}

// executeNode processes a single node and returns its output.
func (e *Executor) executeNode(ctx context.Context, node Node, scope Scope, depth int, owner any) (string, error) {
	switch n := node.(type) {
	case *TextNode:
		return n.Content, nil

	case *OutputNode:
		return e.executeOutput(n, scope)

	case *TagNode:
		return e.executeTag(ctx, n, scope, depth, owner)

	case *ConditionalNode:
		return e.executeConditional(ctx, n, scope, depth, owner)

	default:
		return "", NewExecutorError(ErrMsgUnknownNodeType, "", node.Pos())
	}
}

// executeOutput evaluates an output expression and stringifies the result
func (e *Executor) executeOutput(out *OutputNode, scope Scope) (string, error) {
	if out.Expr == nil {
		return "", nil
	}
	val, err := NewExprEvaluator(e.filters, scope).Evaluate(out.Expr)
	if err != nil {
		return "", NewExecutorErrorWithCause(ErrMsgOutputFailed, "", out.Pos(), err)
	}
	return ToLiquidString(val), nil
}

// executeConditional renders the first branch whose condition holds.
func (e *Executor) executeConditional(ctx context.Context, cond *ConditionalNode, scope Scope, depth int, owner any) (string, error) {
	e.logger.Debug(LogMsgConditionEval, zap.Int(LogFieldBranches, len(cond.Branches)))
	evaluator := NewExprEvaluator(e.filters, scope)

	for i, branch := range cond.Branches {
		if branch.IsElse {
			e.logger.Debug(LogMsgBranchSelected, zap.Int(LogFieldBranch, i))
			return e.executeNodes(ctx, branch.Children, scope, depth, owner)
		}

		result, err := evaluator.EvaluateBool(branch.Condition)
		if err != nil {
			return "", NewExecutorErrorWithCause(ErrMsgCondExprFailed, TagNameIf, branch.Pos, err)
		}
		if branch.Negate {
			result = !result
		}

		if result {
			e.logger.Debug(LogMsgBranchSelected, zap.Int(LogFieldBranch, i))
			return e.executeNodes(ctx, branch.Children, scope, depth, owner)
		}
	}

	return "", nil
}

// executeTag runs a compiled tag. Errors from tags are returned unchanged.
func (e *Executor) executeTag(ctx context.Context, tag *TagNode, scope Scope, depth int, owner any) (string, error) {
	e.logger.Debug(LogMsgTagInvoked, zap.String(LogFieldTag, tag.Name), zap.Int(LogFieldDepth, depth))

	frame := &Frame{
		Scope:    scope,
		Node:     tag,
		Depth:    depth,
		Owner:    owner,
		executor: e,
	}

	result, err := tag.Tag.Execute(ctx, frame)
	if err != nil {
		return "", err
	}

	e.logger.Debug(LogMsgTagComplete, zap.String(LogFieldTag, tag.Name))
	return result, nil
}

// Frame is the per-invocation view a compiled tag executes against
type Frame struct {
	Scope Scope
	Node  *TagNode
	Depth int
	Owner any

	executor *Executor
}

// RenderBody renders the tag's children against the frame's scope
func (f *Frame) RenderBody(ctx context.Context) (string, error) {
	return f.executor.executeNodes(ctx, f.Node.Children, f.Scope, f.Depth, f.Owner)
}

// RenderBodyIn renders the tag's children against another scope
func (f *Frame) RenderBodyIn(ctx context.Context, scope Scope) (string, error) {
	return f.executor.executeNodes(ctx, f.Node.Children, scope, f.Depth, f.Owner)
}

// Evaluate evaluates an expression against the frame's scope
func (f *Frame) Evaluate(expr ExprNode) (any, error) {
	return NewExprEvaluator(f.executor.filters, f.Scope).Evaluate(expr)
}

// Filters returns the filter registry used for evaluation
func (f *Frame) Filters() *FilterRegistry {
	return f.executor.filters
}

// DepthExceededError reports that nested renders went past MaxDepth
type DepthExceededError struct {
	Depth    int
	MaxDepth int
}

// Error implements the error interface.
func (e *DepthExceededError) Error() string {
	return fmt.Sprintf(ErrFmtDepthExceeded, ErrMsgMaxDepthExceeded, e.Depth, e.MaxDepth)
}

// ExecutorError represents an executor error with context.
type ExecutorError struct {
	Message  string
	TagName  string
	Position Position
	Cause    error
}

// NewExecutorError creates a new executor error.
func NewExecutorError(message, tagName string, pos Position) *ExecutorError {
	return &ExecutorError{
		Message:  message,
		TagName:  tagName,
		Position: pos,
	}
}

// NewExecutorErrorWithCause creates a new executor error with a cause.
func NewExecutorErrorWithCause(message, tagName string, pos Position, cause error) *ExecutorError {
	return &ExecutorError{
		Message:  message,
		TagName:  tagName,
		Position: pos,
		Cause:    cause,
	}
}

// Error implements the error interface.
func (e *ExecutorError) Error() string {
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

// Unwrap returns the underlying cause error.
func (e *ExecutorError) Unwrap() error {
	return e.Cause
}

// Executor error message constants
const (
	ErrMsgMaxDepthExceeded = "maximum render depth exceeded"
	ErrMsgUnknownNodeType  = "unknown node type"
	ErrMsgOutputFailed     = "output expression failed"
	ErrMsgCondExprFailed   = "condition evaluation failed"
	ErrFmtDepthExceeded    = "%s: depth %d > %d"
)

// Additional log field constants for the executor
const (
	LogFieldBranches = "branches"
)
