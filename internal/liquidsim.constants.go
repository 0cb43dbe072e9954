package internal

// TokenType represents the type of a lexical token
type TokenType string

// Token type constants
const (
	TokenTypeText   TokenType = "TEXT"
	TokenTypeOutput TokenType = "OUTPUT"
	TokenTypeTag    TokenType = "TAG"
	TokenTypeEOF    TokenType = "EOF"
)

// NodeType identifies AST node types
type NodeType int

// Node type constants
const (
	NodeTypeRoot NodeType = iota
	NodeTypeText
	NodeTypeOutput
	NodeTypeTag
	NodeTypeConditional
)

// Node type string names for debugging
const (
	NodeTypeNameRoot        = "ROOT"
	NodeTypeNameText        = "TEXT"
	NodeTypeNameOutput      = "OUTPUT"
	NodeTypeNameTag         = "TAG"
	NodeTypeNameConditional = "CONDITIONAL"
)

// String returns the string representation of the node type
func (n NodeType) String() string {
	switch n {
	case NodeTypeRoot:
		return NodeTypeNameRoot
	case NodeTypeText:
		return NodeTypeNameText
	case NodeTypeOutput:
		return NodeTypeNameOutput
	case NodeTypeTag:
		return NodeTypeNameTag
	case NodeTypeConditional:
		return NodeTypeNameConditional
	default:
		return NodeTypeNameRoot
	}
}

// Character constants
const (
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
	CharDash        = '-'
	CharEquals      = '='
)

// Delimiter constants
const (
	StrOutputOpen  = "{{"
	StrOutputClose = "}}"
	StrTagOpen     = "{%"
	StrTagClose    = "%}"
)

// Built-in tag names
const (
	TagNameAssign    = "assign"
	TagNameComment   = "comment"
	TagNameRaw       = "raw"
	TagNameIf        = "if"
	TagNameUnless    = "unless"
	TagNameElsif     = "elsif"
	TagNameElse      = "else"
	TagNameEndIf     = "endif"
	TagNameEndUnless = "endunless"
	EndTagPrefix     = "end"
)

// String value constants
const (
	StringValueEmpty = ""
	StringValueNil   = "nil"
	StringValueTrue  = "true"
	StringValueFalse = "false"
	PathSeparator    = "."
)

// Display truncation for node String() output
const (
	MaxStringDisplayLength = 50
	TruncatedStringLength  = 47
	TruncationSuffix       = "..."
)

// Default configuration values
const (
	DefaultMaxDepth = 100
)

// Log message constants
const (
	LogMsgLexerCreated     = "lexer created"
	LogMsgTokenizerStart   = "starting tokenization"
	LogMsgTokenizerEnd     = "tokenization complete"
	LogMsgParserCreated    = "parser created"
	LogMsgParserStart      = "starting parse"
	LogMsgParserEnd        = "parse complete"
	LogMsgTagCompiled      = "tag compiled"
	LogMsgExecutorCreated  = "executor created"
	LogMsgExecutorStart    = "starting execution"
	LogMsgExecutorEnd      = "execution complete"
	LogMsgTagInvoked       = "tag invoked"
	LogMsgTagComplete      = "tag complete"
	LogMsgConditionEval    = "evaluating conditional"
	LogMsgBranchSelected   = "conditional branch selected"
	LogMsgRegistryCreated  = "registry created"
	LogMsgTagRegistered    = "tag registered"
	LogMsgTagCollision     = "tag registration collision"
	LogMsgFilterRegistered = "filter registered"
)

// Log field constants
const (
	LogFieldSource = "source_length"
	LogFieldTokens = "tokens"
	LogFieldNodes  = "nodes"
	LogFieldTag    = "tag"
	LogFieldBranch = "branch"
	LogFieldDepth  = "depth"
	LogFieldFilter = "filter"
)

// Error format strings
const (
	ErrFmtTagMessage         = "%s: %s"
	ErrFmtWithPosition       = "%s at %s"
	ErrFmtWithTagAndPosition = "%s [%s] at %s"
	ErrFmtWithCause          = "%s: %v"
)
