package internal

// Character constants
const (
	CharBackslash    = '\\'
	CharDollar       = '$'
	CharLBrace       = '{'
	CharRBrace       = '}'
	CharLParen       = '('
	CharRParen       = ')'
	CharLessThan     = '<'
	CharGreaterThan  = '>'
	CharSingleQuote  = '\''
	CharDoubleQuote  = '"'
	CharNot          = '!'
	CharDot          = '.'
	CharComma        = ','
	CharColon        = ':'
	CharMinus        = '-'
	CharNewline      = '\n'
	CharTokenSpacing = ' '
)

// String constants for delimiter matching
const (
	StrOpenInterpolation  = "${"
	StrCloseInterpolation = "}"
)

// WhitespaceChars is every rune the parser skips inside interpolations
const WhitespaceChars = "\t\n\v\f\r \u0085\u200E\u200F\u2028\u2029"

// Parser error messages
const (
	ErrMsgUnterminatedInterpolation = "unterminated interpolation"
	ErrMsgUnterminatedStr           = "unterminated string literal"
	ErrMsgUnexpectedChar            = "unexpected character"
	ErrMsgUnexpectedEOF             = "unexpected end of input"
	ErrMsgInvalidCaptureGroup       = "invalid capture group name"
	ErrMsgInvalidNumber             = "invalid integer"
	ErrMsgInvalidRange              = "invalid argument range"
	ErrMsgExpectedName              = "expected property or method name"
	ErrMsgExpectedRParen            = "expected closing parenthesis"
	ErrMsgTrailingInput             = "unexpected trailing input"
)

// Expected-token descriptions attached to parse errors
const (
	ExpectedExpression   = "expression"
	ExpectedLetter       = "letter"
	ExpectedInteger      = "integer"
	ExpectedName         = "name"
	ExpectedArgSeparator = "',' or ')'"
	ExpectedEndOfInput   = "end of input"
)

// Runtime error messages
const (
	ErrMsgAssertionFailed = "assertion failed"
	ErrMsgUnknownTimeZone = "unknown time zone"
)

// Diagnostic messages
const (
	DiagMsgUnknownIdent    = "unknown identifier"
	DiagMsgUnknownFunction = "unknown function"
	DiagMsgUnknownProperty = "unknown property"
	DiagMsgUnknownMethod   = "unknown method"
	DiagMsgTooFewArgs      = "too few arguments"
	DiagMsgTooManyArgs     = "too many arguments, extra arguments are ignored"
	DiagMsgThisNotUser     = "receiver cannot be a user or a user name"
	DiagMsgArgNotVariable  = "argument cannot be a pronoun variable"
	DiagMsgArgNotString    = "argument cannot be a string"
)

// Log message constants
const (
	LogMsgParserCreated     = "parser created"
	LogMsgParserStart       = "starting parse"
	LogMsgParserEnd         = "parse complete"
	LogMsgParseFailed       = "parse failed"
	LogMsgCompileStart      = "starting compile"
	LogMsgCompileEnd        = "compile complete"
	LogMsgDiagnostic        = "resolution diagnostic"
	LogMsgRunStart          = "starting render"
	LogMsgRunEnd            = "render complete"
	LogMsgRunFailed         = "render aborted"
	LogMsgFuncRegistered    = "function registered"
	LogMsgTimeZoneInvalid   = "invalid time zone"
	LogMsgUserLookupMiss    = "user lookup found nothing"
	LogMsgRuntimeCtxCreated = "runtime context created"
)

// Log field names
const (
	LogFieldSource       = "source_length"
	LogFieldNodes        = "node_count"
	LogFieldError        = "error"
	LogFieldOffset       = "offset"
	LogFieldName         = "name"
	LogFieldCode         = "code"
	LogFieldDiagnostics  = "diagnostic_count"
	LogFieldInvocationID = "invocation_id"
	LogFieldTimeZone     = "time_zone"
	LogFieldSelector     = "selector"
	LogFieldTokens       = "token_count"
	LogFieldOutputLength = "output_length"
)

// Format string constants
const (
	FmtPosition         = "line %d, column %d"
	ErrFmtWithPosition  = "%s at %s"
	ErrFmtParseExpected = "%s at %s: expected %s"
	ErrFmtWithName      = "%s: %s"
	ErrFmtQuotedName    = "%s: %q"
	FmtOpenBrace        = "{"
	FmtCloseBrace       = "}"
	FmtCommaSep         = ", "
)

// Built-in identifier names
const (
	IdentSender      = "sender"
	IdentBroadcaster = "broadcaster"
	IdentBot         = "bot"
)

// Built-in function names
const (
	FuncNameAssert = "assert"
	FuncNameVoid   = "void"
	FuncNameTime   = "time"
)

// Built-in property and method names
const (
	PropID          = "id"
	PropName        = "name"
	PropDisplayName = "displayName"
	PropGame        = "game"
	MethodPronouns  = "pronouns"
)

// Time function constants
const (
	TimeZoneDefault = "UTC"
	TimeZoneLocal   = "Local"
	TimeLayout24H   = "15:04"
)

// Selector constants
const (
	SelectorRange = 100_000
)

// Suggestion constants
const (
	MaxSuggestions = 3
)

// Suggestion formatting
const (
	SuggestPrefix  = ". Did you mean "
	SuggestLastSep = " or "
)
