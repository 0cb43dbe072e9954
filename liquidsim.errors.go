package liquidsim

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-liquidsim/internal"
)

// Error message constants - ALL error messages must be constants
const (
	// Syntax errors
	ErrMsgParseFailed         = "template parsing failed"
	ErrMsgMissingSnippetName  = "render: missing snippet name"
	ErrMsgForAndWith          = "render: for and with clauses cannot both be present"
	ErrMsgRepeatedFor         = "render: for clause given more than once"
	ErrMsgRepeatedWith        = "render: with clause given more than once"
	ErrMsgMissingAs           = "render: expected 'as' after clause expression"
	ErrMsgMissingAlias        = "render: missing alias identifier after 'as'"
	ErrMsgMissingClauseValue  = "render: missing expression after clause keyword"
	ErrMsgMissingBindingValue = "render: missing expression after key"
	ErrMsgTrailingComma       = "render: trailing comma"
	ErrMsgStrayToken          = "render: unexpected token in arguments"
	ErrMsgInvalidArguments    = "render: invalid arguments"
	ErrMsgCaptureArguments    = "capture: expected exactly one variable name"
	ErrMsgCaptureName         = "capture: invalid variable name"
	ErrMsgInvalidExpression   = "invalid expression"

	// Render errors
	ErrMsgSnippetNotFound  = "snippet not found"
	ErrMsgSnippetNameType  = "render: snippet name must evaluate to a string"
	ErrMsgNotIterable      = "render: loop target is not iterable"
	ErrMsgReservedAlias    = "render: alias collides with reserved forloop variable"
	ErrMsgReservedBinding  = "render: binding collides with reserved forloop variable"
	ErrMsgDepthExceeded    = "maximum render depth exceeded"
	ErrMsgRenderFailed     = "template rendering failed"
	ErrMsgEvaluationFailed = "expression evaluation failed"
	ErrMsgResolverFailed   = "snippet resolver failed"

	// Registry errors
	ErrMsgTagRegistration    = "tag registration failed"
	ErrMsgFilterRegistration = "filter registration failed"
	ErrMsgNilTagHandler      = "tag handler cannot be nil"

	// Resolver errors
	ErrMsgInvalidSnippetName = "invalid snippet name"
	ErrMsgSnippetsDirMissing = "snippets directory not accessible"
	ErrMsgDatabaseFailed     = "snippet database operation failed"
	ErrMsgMissingDSN         = "postgres connection string is required"
	ErrMsgInvalidTableName   = "invalid snippets table name"
	ErrMsgWatcherFailed      = "snippet watcher failed"
	ErrMsgResolverClosed     = "resolver is closed"

	// Config errors
	ErrMsgInvalidMaxDepth = "max depth cannot be negative"
	ErrMsgConfigRead      = "failed to read config file"
	ErrMsgConfigParse     = "failed to parse config file"
)

// Error format constants
const (
	ErrFmtTypeDetail = "%s (got %s)"
)

// NewSyntaxError creates a compile-time error for malformed tag arguments or
// template source.
func NewSyntaxError(msg, tagName string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeSyntax, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeSyntax, msg)
	}
	err = err.WithMetadata(MetaKeyKind, ErrKindSyntax)
	if tagName != StringValueEmpty {
		err = err.WithMetadata(MetaKeyTag, tagName)
	}
	return err
}

// NewSnippetNotFoundError creates an error for a snippet the resolver does not know
func NewSnippetNotFoundError(name string) error {
	return cuserr.NewNotFoundError(MetaKeySnippet, ErrMsgSnippetNotFound).
		WithMetadata(MetaKeyKind, ErrKindSnippetNotFound).
		WithMetadata(MetaKeySnippet, name)
}

// NewTypeError creates a render-time error for a value of the wrong shape
func NewTypeError(msg, tagName string, value any) error {
	return cuserr.NewValidationError(ErrCodeType, fmt.Sprintf(ErrFmtTypeDetail, msg, typeName(value))).
		WithMetadata(MetaKeyKind, ErrKindType).
		WithMetadata(MetaKeyTag, tagName).
		WithMetadata(MetaKeyType, typeName(value))
}

// NewDepthExceededError creates an error for runaway nested renders
func NewDepthExceededError(depth, maxDepth int) error {
	return cuserr.NewValidationError(ErrCodeDepth, ErrMsgDepthExceeded).
		WithMetadata(MetaKeyKind, ErrKindDepthExceeded).
		WithMetadata(MetaKeyDepth, strconv.Itoa(depth)).
		WithMetadata(MetaKeyMaxDepth, strconv.Itoa(maxDepth))
}

// NewRenderError wraps a host evaluation failure
func NewRenderError(msg string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRender, msg).
		WithMetadata(MetaKeyKind, ErrKindRender)
}

// NewResolverError wraps a failure reported by a snippet resolver
func NewResolverError(msg, name string, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeResolver, msg)
	} else {
		err = cuserr.NewValidationError(ErrCodeResolver, msg)
	}
	if name != StringValueEmpty {
		err = err.WithMetadata(MetaKeySnippet, name)
	}
	return err
}

// NewRegistryError wraps a tag or filter registration failure
func NewRegistryError(msg, name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRegistry, msg).
		WithMetadata(MetaKeyName, name)
}

// NewConfigError wraps a configuration loading failure
func NewConfigError(msg, path string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeConfig, msg).
		WithMetadata(MetaKeyPath, path)
}

// ErrorKind returns the kind recorded on err, or "" when err carries none.
func ErrorKind(err error) string {
	var customErr *cuserr.CustomError
	if !errors.As(err, &customErr) {
		return StringValueEmpty
	}
	kind, _ := customErr.GetMetadata(MetaKeyKind)
	return kind
}

// IsSyntaxError reports whether err is a compile-time syntax error
func IsSyntaxError(err error) bool {
	return ErrorKind(err) == ErrKindSyntax
}

// IsSnippetNotFound reports whether err is a missing snippet error
func IsSnippetNotFound(err error) bool {
	return ErrorKind(err) == ErrKindSnippetNotFound
}

// IsTypeError reports whether err is a render-time type error
func IsTypeError(err error) bool {
	return ErrorKind(err) == ErrKindType
}

// IsDepthExceeded reports whether err is a nested render depth error
func IsDepthExceeded(err error) bool {
	return ErrorKind(err) == ErrKindDepthExceeded
}

// wrapParseError converts a host lexer or parser failure into a SyntaxError
// carrying the failing tag and position.
func wrapParseError(err error) error {
	var (
		lexErr     *internal.LexerError
		parseErr   *internal.ParserError
		compileErr *internal.TagCompileError
	)

	tagName := StringValueEmpty
	var pos internal.Position
	switch {
	case errors.As(err, &compileErr):
		tagName = compileErr.TagName
		pos = compileErr.Position
	case errors.As(err, &parseErr):
		tagName = parseErr.TagName
		pos = parseErr.Position
	case errors.As(err, &lexErr):
		pos = lexErr.Position
	}

	customErr := NewSyntaxError(ErrMsgParseFailed, tagName, err).(*cuserr.CustomError)
	if pos.Line > 0 {
		customErr = customErr.
			WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
			WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column))
	}
	return customErr
}

// wrapRenderError converts a host execution failure into a public error.
// Errors that already carry a kind pass through unchanged.
func wrapRenderError(err error) error {
	if ErrorKind(err) != StringValueEmpty {
		return err
	}

	var depthErr *internal.DepthExceededError
	if errors.As(err, &depthErr) {
		return NewDepthExceededError(depthErr.Depth, depthErr.MaxDepth)
	}

	customErr := NewRenderError(ErrMsgRenderFailed, err).(*cuserr.CustomError)
	var execErr *internal.ExecutorError
	if errors.As(err, &execErr) {
		customErr = customErr.
			WithMetadata(MetaKeyLine, strconv.Itoa(execErr.Position.Line)).
			WithMetadata(MetaKeyColumn, strconv.Itoa(execErr.Position.Column))
		if execErr.TagName != StringValueEmpty {
			customErr = customErr.WithMetadata(MetaKeyTag, execErr.TagName)
		}
	}
	return customErr
}

func typeName(value any) string {
	if value == nil {
		return TypeNameNil
	}
	return fmt.Sprintf("%T", value)
}
