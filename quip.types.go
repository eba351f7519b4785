package quip

import "github.com/itsatony/go-quip/internal"

// Runtime values
type (
	// Value is a runtime value produced by an expression
	Value = internal.Value
	// StringValue is a text value
	StringValue = internal.StringValue
	// BoolValue is a boolean value
	BoolValue = internal.BoolValue
	// User identifies a chat user
	User = internal.User
	// PronounID names a pronoun set, e.g. "sheher"
	PronounID = internal.PronounID
	// PronounVariable is a pronoun word to be rendered for a user
	PronounVariable = internal.PronounVariable
	// Kind tags a runtime value
	Kind = internal.Kind
	// TypeSet is the set of kinds an expression may produce
	TypeSet = internal.TypeSet
)

// Null is the absent value
var Null = internal.Null

// Value kinds
const (
	KindString          = internal.KindString
	KindUser            = internal.KindUser
	KindPronounID       = internal.KindPronounID
	KindPronounVariable = internal.KindPronounVariable
	KindBoolean         = internal.KindBoolean
	KindNull            = internal.KindNull
)

// TypesOf builds a TypeSet
func TypesOf(kinds ...Kind) TypeSet { return internal.TypesOf(kinds...) }

// Pronoun ids
const (
	PronounIDUnset    = internal.PronounIDUnset
	PronounIDTheyThem = internal.PronounIDTheyThem
	PronounIDHeHim    = internal.PronounIDHeHim
	PronounIDSheHer   = internal.PronounIDSheHer
	PronounIDHeShe    = internal.PronounIDHeShe
	PronounIDAny      = internal.PronounIDAny
	PronounIDHeThem   = internal.PronounIDHeThem
	PronounIDSheThem  = internal.PronounIDSheThem
	PronounIDAeAer    = internal.PronounIDAeAer
	PronounIDEEm      = internal.PronounIDEEm
	PronounIDFaeFaer  = internal.PronounIDFaeFaer
	PronounIDPerPer   = internal.PronounIDPerPer
	PronounIDVeVer    = internal.PronounIDVeVer
	PronounIDXeXem    = internal.PronounIDXeXem
	PronounIDZieHir   = internal.PronounIDZieHir
	PronounIDItIts    = internal.PronounIDItIts
	PronounIDOther    = internal.PronounIDOther
)

// ParsePronounID parses a pronoun id case-insensitively. The empty string is PronounIDUnset.
func ParsePronounID(s string) (PronounID, bool) { return internal.ParsePronounID(s) }

// Compile-time collaborators
type (
	// Resolver binds template names at compile time
	Resolver = internal.Resolver
	// UsageObserver is an optional Resolver capability
	UsageObserver = internal.UsageObserver
	// Evaluation is a compiled expression
	Evaluation = internal.Evaluation
	// FunctionBinding is a resolved function
	FunctionBinding = internal.FunctionBinding
	// PropertyBinding is a resolved property
	PropertyBinding = internal.PropertyBinding
	// MethodBinding is a resolved method
	MethodBinding = internal.MethodBinding
	// BuiltinResolver is the default resolver
	BuiltinResolver = internal.BuiltinResolver
	// Diagnostic is a non-fatal resolution problem
	Diagnostic = internal.Diagnostic
	// Severity ranks a Diagnostic
	Severity = internal.Severity
	// Usage lists the capture groups and arguments a template reads
	Usage = internal.Usage
	// ArgumentRange is a used "from:to" range
	ArgumentRange = internal.ArgumentRange
)

// Diagnostic severities
const (
	DiagnosticWarning = internal.SeverityWarning
	DiagnosticInfo    = internal.SeverityInfo
)

// Diagnostic codes reported by the built-in resolver
const (
	DiagCodeUnknownIdent    = internal.DiagCodeUnknownIdent
	DiagCodeUnknownFunction = internal.DiagCodeUnknownFunction
	DiagCodeUnknownProperty = internal.DiagCodeUnknownProperty
	DiagCodeUnknownMethod   = internal.DiagCodeUnknownMethod
	DiagCodeArity           = internal.DiagCodeArity
	DiagCodeTypeMismatch    = internal.DiagCodeTypeMismatch
)

// Runtime collaborators
type (
	// Host supplies users, identities and pronouns from outside the engine
	Host = internal.Host
	// NopHost knows nobody
	NopHost = internal.NopHost
	// Context is the per-invocation state a template reads
	Context = internal.RuntimeContext
	// ContextOption configures a Context
	ContextOption = internal.RuntimeOption
)

// WithSelector pins the pronoun-set selector of a Context
func WithSelector(selector int) ContextOption { return internal.WithSelector(selector) }

// NewBuiltinResolver creates the default resolver with the built-in functions
func NewBuiltinResolver() *BuiltinResolver { return internal.NewBuiltinResolver(nil) }
