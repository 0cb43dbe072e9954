package liquidsim

// Tag names registered by RegisterShopifyTags
const (
	TagNameRender  = "render"
	TagNameCapture = "capture"
)

// Filter names registered by RegisterShopifyFilters
const (
	FilterNameJSON = "json"
	FilterNameMD5  = "md5"
)

// Render argument keywords
const (
	KeywordFor  = "for"
	KeywordWith = "with"
	KeywordAs   = "as"
)

// ForloopVariable is the reserved name under which loop metadata is bound
const ForloopVariable = "forloop"

// Forloop metadata field names as seen by templates
const (
	ForloopFieldIndex   = "index"
	ForloopFieldIndex0  = "index0"
	ForloopFieldFirst   = "first"
	ForloopFieldLast    = "last"
	ForloopFieldLength  = "length"
	ForloopFieldRindex  = "rindex"
	ForloopFieldRindex0 = "rindex0"
)

// Default configuration values
const (
	DefaultMaxDepth         = 100
	DefaultSnippetExtension = ".liquid"
	DefaultSnippetsTable    = "liquidsim_snippets"
	DefaultCacheTTLSeconds  = 300
	DefaultCacheMaxEntries  = 1000
)

// Error kinds stored under MetaKeyKind
const (
	ErrKindSyntax          = "syntax"
	ErrKindSnippetNotFound = "snippet_not_found"
	ErrKindType            = "type"
	ErrKindDepthExceeded   = "depth_exceeded"
	ErrKindRender          = "render"
)

// Error code constants for categorization
const (
	ErrCodeSyntax   = "LIQUIDSIM_SYNTAX"
	ErrCodeRender   = "LIQUIDSIM_RENDER"
	ErrCodeType     = "LIQUIDSIM_TYPE"
	ErrCodeDepth    = "LIQUIDSIM_DEPTH"
	ErrCodeRegistry = "LIQUIDSIM_REGISTRY"
	ErrCodeResolver = "LIQUIDSIM_RESOLVER"
	ErrCodeConfig   = "LIQUIDSIM_CONFIG"
)

// Error metadata keys
const (
	MetaKeyKind     = "kind"
	MetaKeyTag      = "tag"
	MetaKeyFilter   = "filter"
	MetaKeySnippet  = "snippet"
	MetaKeyLine     = "line"
	MetaKeyColumn   = "column"
	MetaKeyDepth    = "depth"
	MetaKeyMaxDepth = "max_depth"
	MetaKeyType     = "type"
	MetaKeyName     = "name"
	MetaKeyPath     = "path"
)

// Log messages
const (
	LogMsgEngineCreated     = "liquidsim engine created"
	LogMsgTemplateParsed    = "template parsed"
	LogMsgRenderStart       = "render tag invoked"
	LogMsgRenderIteration   = "render tag iteration"
	LogMsgRenderComplete    = "render tag complete"
	LogMsgCaptureComplete   = "capture tag complete"
	LogMsgSnippetResolved   = "snippet resolved"
	LogMsgSnippetMissing    = "snippet not found"
	LogMsgCacheHit          = "snippet cache hit"
	LogMsgCacheMiss         = "snippet cache miss"
	LogMsgCacheInvalidated  = "snippet cache invalidated"
	LogMsgWatcherStarted    = "snippet watcher started"
	LogMsgWatcherEvent      = "snippet file changed"
	LogMsgWatcherError      = "snippet watcher error"
	LogMsgWatcherStopped    = "snippet watcher stopped"
	LogMsgMigrationsApplied = "snippet migrations applied"
	LogMsgSnippetSaved      = "snippet saved"
	LogMsgSnippetDeleted    = "snippet deleted"
	LogMsgFilterRegistered  = "filter registered"
	LogMsgConfigLoaded      = "config loaded"
)

// Log field names
const (
	LogFieldSnippet    = "snippet"
	LogFieldTag        = "tag"
	LogFieldDepth      = "depth"
	LogFieldIndex      = "index"
	LogFieldLength     = "length"
	LogFieldBindings   = "bindings"
	LogFieldAlias      = "alias"
	LogFieldOutputLen  = "output_length"
	LogFieldPath       = "path"
	LogFieldOp         = "op"
	LogFieldFilter     = "filter"
	LogFieldTable      = "table"
	LogFieldCacheSize  = "cache_size"
	LogFieldSourceSize = "source_length"
	LogFieldError      = "error"
)

// Type names used in TypeError metadata
const (
	TypeNameNil = "nil"
)

// Misc string constants
const (
	StringValueEmpty = ""
	PathSeparator    = "."
)
