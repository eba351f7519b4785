package main

// Command names
const (
	CmdNameRender  = "render"
	CmdNameCheck   = "check"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagTemplate  = "template"
	FlagMessage   = "message"
	FlagPattern   = "pattern"
	FlagSender    = "sender"
	FlagDirectory = "directory"
	FlagSelector  = "selector"
	FlagOutput    = "output"
	FlagVerbose   = "verbose"
	FlagFormat    = "format"
	FlagStrict    = "strict"
	FlagNoColor   = "no-color"
)

// Flag names - short form
const (
	FlagTemplateShort  = "t"
	FlagMessageShort   = "m"
	FlagPatternShort   = "p"
	FlagSenderShort    = "s"
	FlagDirectoryShort = "D"
	FlagOutputShort    = "o"
	FlagVerboseShort   = "v"
	FlagFormatShort    = "F"
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
	ExitCodeNoMatch         = 5
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand      = "unknown command"
	ErrMsgMissingTemplate     = "template source required"
	ErrMsgInvalidFlags        = "invalid arguments"
	ErrMsgReadFileFailed      = "failed to read file"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgParseTemplateFailed = "template parsing failed"
	ErrMsgExecuteFailed       = "template execution failed"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgInvalidPattern      = "invalid command pattern"
	ErrMsgLoadDirectoryFailed = "failed to load directory"
	ErrMsgCreateEngineFailed  = "failed to create engine"
	ErrMsgCreateLoggerFailed  = "failed to create logger"
)

// Help text templates
const (
	HelpMainUsage = `go-quip - chat bot response templating CLI

Usage:
    quip <command> [options]

Commands:
    render      Render a template for one chat message
    check       Report diagnostics for a template without rendering
    version     Show version information
    help        Show help for a command

Use "quip help <command>" for more information about a command.`

	HelpRenderUsage = `Render a template for one chat message

Usage:
    quip render [options]

Options:
    -t, --template <file>    Template file (use "-" for stdin)
    -m, --message <text>     Chat message that triggered the command
    -p, --pattern <regex>    Command pattern matched against the message
    -s, --sender <name>      Login name of the sender
    -D, --directory <file>   YAML user directory
    --selector <n>           Fixed pronoun selector (default: random)
    -o, --output <file>      Output file (default: stdout)
    -v, --verbose            Log to stderr

Exit codes:
    0  rendered
    1  assertion failed or execution error
    2  usage error
    3  template does not parse
    4  input could not be read
    5  message does not match the pattern

Examples:
    quip render -t shoutout.txt -m '!so nya' -s rex -D users.yaml
    quip render -t give.txt -m '!give nya 5' -p '^!give (?P<target>\w+) (?P<amount>\d+)$'
    echo 'Hi ${sender}!' | quip render -t - -s nya`

	HelpCheckUsage = `Report diagnostics for a template without rendering

Usage:
    quip check [options]

Options:
    -t, --template <file>    Template file (use "-" for stdin)
    -p, --pattern <regex>    Command pattern whose named groups the template may use
    -F, --format <format>    Output format: text, json (default: text)
    --strict                 Treat warnings as errors
    --no-color               Disable colored output

Examples:
    quip check -t shoutout.txt
    quip check -t give.txt -p '^!give (?P<target>\w+)' --strict
    cat shoutout.txt | quip check -t - -F json`

	HelpVersionUsage = `Show version information

Usage:
    quip version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    quip help [command]

Commands:
    render      Show help for render command
    check       Show help for check command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-quip version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
	VersionsFileName    = "versions.yaml"
)

// Check output format templates
const (
	CheckTextSuccess      = "Template is valid"
	CheckTextIssueHeader  = "Diagnostics:"
	CheckTextIssueFormat  = "  [%s] %s: %s at line %d, column %d"
	CheckTextErrorSummary = "%d error(s), %d warning(s)"
)

// CLI metadata
const (
	CLIName        = "quip"
	CLIDescription = "Chat bot response templating CLI"
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
