package internal

import (
	"context"
	"fmt"
	"strings"
)

// builtinTag adapts a name, block flag and compile function to TagDefinition
type builtinTag struct {
	name    string
	block   bool
	compile func(markup string) (CompiledTag, error)
}

func (b *builtinTag) TagName() string                            { return b.name }
func (b *builtinTag) IsBlock() bool                              { return b.block }
func (b *builtinTag) Compile(markup string) (CompiledTag, error) { return b.compile(markup) }

// CompiledTagFunc adapts a function to CompiledTag
type CompiledTagFunc func(ctx context.Context, frame *Frame) (string, error)

// Execute calls f(ctx, frame)
func (f CompiledTagFunc) Execute(ctx context.Context, frame *Frame) (string, error) {
	return f(ctx, frame)
}

// RegisterBuiltins registers assign, comment and raw with the registry
func RegisterBuiltins(r *Registry) {
	r.MustRegister(&builtinTag{name: TagNameAssign, block: false, compile: compileAssign})
	r.MustRegister(&builtinTag{name: TagNameComment, block: true, compile: compileComment})
	r.MustRegister(&builtinTag{name: TagNameRaw, block: true, compile: compileRaw})
}

// compileAssign parses `name = expression`
func compileAssign(markup string) (CompiledTag, error) {
	idx := strings.IndexByte(markup, CharEquals)
	if idx < 0 {
		return nil, NewBuiltinError(ErrMsgAssignSyntax, markup)
	}

	target := strings.TrimSpace(markup[:idx])
	if !IsIdentifier(target) {
		return nil, NewBuiltinError(ErrMsgAssignTarget, target)
	}

	expr, err := ParseExpression(markup[idx+1:])
	if err != nil {
		return nil, err
	}

	return CompiledTagFunc(func(_ context.Context, frame *Frame) (string, error) {
		val, err := frame.Evaluate(expr)
		if err != nil {
			return "", NewExecutorErrorWithCause(ErrMsgAssignFailed, TagNameAssign, frame.Node.Pos(), err)
		}
		frame.Scope.Set(target, val)
		return "", nil
	}), nil
}

// compileComment discards its body
func compileComment(_ string) (CompiledTag, error) {
	return CompiledTagFunc(func(context.Context, *Frame) (string, error) {
		return "", nil
	}), nil
}

// compileRaw emits its body verbatim; the lexer never tokenizes raw bodies
func compileRaw(markup string) (CompiledTag, error) {
	if markup != StringValueEmpty {
		return nil, NewBuiltinError(ErrMsgRawArguments, markup)
	}
	return CompiledTagFunc(func(_ context.Context, frame *Frame) (string, error) {
		var sb strings.Builder
		for _, child := range frame.Node.Children {
			if text, ok := child.(*TextNode); ok {
				sb.WriteString(text.Content)
			}
		}
		return sb.String(), nil
	}), nil
}

// IsIdentifier reports whether s is a valid variable name
func IsIdentifier(s string) bool {
	if s == StringValueEmpty {
		return false
	}
	if !isLetter(s[0]) && s[0] != '_' {
		return false
	}
	for i := 1; i < len(s); i++ {
		ch := s[i]
		if !isLetter(ch) && !isDigit(ch) && ch != '_' && ch != CharDash {
			return false
		}
	}
	return true
}

// BuiltinError represents an argument error in a built-in tag
type BuiltinError struct {
	Message string
	Detail  string
}

// NewBuiltinError creates a new built-in tag error
func NewBuiltinError(message, detail string) *BuiltinError {
	return &BuiltinError{Message: message, Detail: detail}
}

// Error implements the error interface
func (e *BuiltinError) Error() string {
	if e.Detail != StringValueEmpty {
		return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.Detail)
	}
	return e.Message
}

// Built-in tag error messages
const (
	ErrMsgAssignSyntax = "assign requires `name = value`"
	ErrMsgAssignTarget = "invalid assign target"
	ErrMsgAssignFailed = "assign evaluation failed"
	ErrMsgRawArguments = "raw takes no arguments"
)
