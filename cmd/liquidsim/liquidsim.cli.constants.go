package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagData     = "data"
	FlagDataFile = "data-file"
	FlagSnippets = "snippets"
	FlagConfig   = "config"
	FlagOutput   = "output"
	FlagFormat   = "format"
	FlagVerbose  = "verbose"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagDataShort     = "d"
	FlagDataFileShort = "f"
	FlagSnippetsShort = "s"
	FlagConfigShort   = "c"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
	FlagVerboseShort  = "v"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgInvalidFlags      = "invalid flags"
	ErrMsgInvalidJSON       = "invalid JSON data"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgRenderFailed      = "template render failed"
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgEngineFailed      = "failed to configure engine"
	ErrMsgDataNotObject     = "data must be a JSON object"
)

// Help text templates
const (
	HelpMainUsage = `liquidsim - Liquid render and capture tags outside the storefront

Usage:
    liquidsim <command> [options]

Commands:
    render      Render a template with data
    validate    Check a template for syntax errors without rendering
    version     Show version information
    help        Show help for a command

Use "liquidsim help <command>" for more information about a command.`

	HelpRenderUsage = `Render a template with data

Usage:
    liquidsim render [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -d, --data <json>       JSON data string
    -f, --data-file <file>  JSON data file (comments and trailing commas allowed)
    -s, --snippets <dir>    Snippets directory for {% render %}
    -c, --config <file>     YAML engine configuration
    -o, --output <file>     Output file (default: stdout)
    -v, --verbose           Write debug logs to stderr

Examples:
    liquidsim render -t page.liquid -s snippets -d '{"product": {"title": "Hat"}}'
    liquidsim render -t page.liquid -c liquidsim.yaml -f data.jsonc
    cat page.liquid | liquidsim render -t - -s snippets`

	HelpValidateUsage = `Check a template for syntax errors without rendering

Usage:
    liquidsim validate [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    liquidsim validate -t page.liquid
    cat page.liquid | liquidsim validate -t - -F json`

	HelpVersionUsage = `Show version information

Usage:
    liquidsim version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    liquidsim help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-liquidsim version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Validation output format templates
const (
	ValidationTextSuccess = "Template is valid"
	ValidationTextFailure = "Syntax error: %s at line %s, column %s"
	ValidationTextTag     = " [%s]"
)

// CLI metadata
const (
	CLIName        = "liquidsim"
	CLIDescription = "Liquid render and capture tags outside the storefront"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
