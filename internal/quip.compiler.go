package internal

import (
	"strings"

	"go.uber.org/zap"
)

// Evaluation is a compiled node: a run function plus the kinds it may produce.
type Evaluation struct {
	Types TypeSet
	Run   func(rc *RuntimeContext) (Value, error)
}

// FunctionBinding is a resolved function. Call receives the evaluated arguments.
type FunctionBinding struct {
	Types TypeSet
	Call  func(rc *RuntimeContext, args []Value) (Value, error)
}

// PropertyBinding is a resolved property of a receiver
type PropertyBinding struct {
	Types TypeSet
	Get   func(rc *RuntimeContext, this Value) (Value, error)
}

// MethodBinding is a resolved method of a receiver
type MethodBinding struct {
	Types TypeSet
	Call  func(rc *RuntimeContext, this Value, args []Value) (Value, error)
}

// Resolver binds names to behaviour at compile time. It is queried once per
// node and must always return a usable binding; problems are reported as
// diagnostics, never as errors.
type Resolver interface {
	ResolveIdent(name string) (Evaluation, []Diagnostic)
	ResolveFunction(name string, args []TypeSet) (FunctionBinding, []Diagnostic)
	ResolveProperty(name string, this TypeSet) (PropertyBinding, []Diagnostic)
	ResolveMethod(name string, this TypeSet, args []TypeSet) (MethodBinding, []Diagnostic)
}

// UsageObserver is an optional Resolver capability notified of the capture
// groups and positional arguments a template reads.
type UsageObserver interface {
	NoteCaptureGroupUsed(name string)
	NoteCommandArgumentUsed(index int)
	NoteCommandArgumentsUsed(from, to int)
}

// Severity ranks a diagnostic
type Severity uint8

// Severity constants
const (
	SeverityWarning Severity = iota
	SeverityInfo
)

// Severity names
const (
	SeverityNameWarning = "warning"
	SeverityNameInfo    = "info"
)

// String returns the severity name
func (s Severity) String() string {
	if s == SeverityInfo {
		return SeverityNameInfo
	}
	return SeverityNameWarning
}

// Diagnostic is a non-fatal resolution problem. The node it concerns still
// compiles, usually to a null evaluator.
type Diagnostic struct {
	Severity    Severity
	Code        string
	Name        string
	Message     string
	Offset      int
	Suggestions []string
}

// String returns "message: name" plus any suggestions
func (d Diagnostic) String() string {
	var sb strings.Builder
	sb.WriteString(d.Message)
	if d.Name != "" {
		sb.WriteString(": ")
		sb.WriteString(d.Name)
	}
	sb.WriteString(FormatSuggestions(d.Suggestions))
	return sb.String()
}

// ArgumentRange is a used "from:to" argument range
type ArgumentRange struct {
	From int
	To   int
}

// Usage lists what a template reads from the runtime context, in source order.
type Usage struct {
	CaptureGroups  []string
	Arguments      []int
	ArgumentRanges []ArgumentRange
}

// Program is a compiled template. It is immutable and safe for concurrent
// runs as long as each run has its own RuntimeContext.
type Program struct {
	Root        Evaluation
	Diagnostics []Diagnostic
	Usage       Usage
}

// Run renders the program. The first run-time error aborts the render and
// no output is returned.
func (p *Program) Run(rc *RuntimeContext) (string, error) {
	logger := rc.Logger()
	logger.Debug(LogMsgRunStart)

	v, err := p.Root.Run(rc)
	if err != nil {
		logger.Debug(LogMsgRunFailed, zap.Error(err))
		return "", err
	}

	out := rc.Display(v)
	logger.Debug(LogMsgRunEnd, zap.Int(LogFieldOutputLength, len(out)))
	return out, nil
}

// Compile binds every node of text through resolver.
func Compile(text *TextNode, resolver Resolver, logger *zap.Logger) *Program {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &compiler{
		resolver: resolver,
		logger:   logger,
	}
	c.observer, _ = resolver.(UsageObserver)

	logger.Debug(LogMsgCompileStart, zap.Int(LogFieldNodes, len(text.Parts)))
	root := c.compileText(text)
	logger.Debug(LogMsgCompileEnd, zap.Int(LogFieldDiagnostics, len(c.diagnostics)))

	return &Program{
		Root:        root,
		Diagnostics: c.diagnostics,
		Usage:       c.usage,
	}
}

type compiler struct {
	resolver    Resolver
	observer    UsageObserver
	logger      *zap.Logger
	diagnostics []Diagnostic
	usage       Usage
}

var (
	typesBoolean    = TypesOf(KindBoolean)
	typesString     = TypesOf(KindString)
	typesNull       = TypesOf(KindNull)
	typesStringNull = TypesOf(KindString, KindNull)
)

// NullEvaluation always produces Null
func NullEvaluation() Evaluation {
	return Evaluation{
		Types: typesNull,
		Run:   func(*RuntimeContext) (Value, error) { return Null, nil },
	}
}

func (c *compiler) compileExpr(e Expr) Evaluation {
	switch n := e.(type) {
	case *TextNode:
		return c.compileText(n)
	case *NotNode:
		return c.compileNot(n)
	case *IdentNode:
		return c.compileIdent(n)
	case *FunctionNode:
		return c.compileFunction(n)
	case *MethodNode:
		return c.compileMethod(n)
	case *PropertyNode:
		return c.compileProperty(n)
	case *CaptureGroupNode:
		return c.compileCaptureGroup(n)
	case *CommandArgumentNode:
		return c.compileCommandArgument(n)
	case *CommandArgumentsNode:
		return c.compileCommandArguments(n)
	default:
		return NullEvaluation()
	}
}

// compileText concatenates the display form of every part, left to right
func (c *compiler) compileText(t *TextNode) Evaluation {
	type part struct {
		literal string
		eval    *Evaluation
	}
	parts := make([]part, len(t.Parts))
	for i, node := range t.Parts {
		if lit, ok := node.(*LiteralNode); ok {
			parts[i] = part{literal: lit.Value}
			continue
		}
		eval := c.compileExpr(node.(Expr))
		parts[i] = part{eval: &eval}
	}

	return Evaluation{
		Types: typesString,
		Run: func(rc *RuntimeContext) (Value, error) {
			var sb strings.Builder
			for _, p := range parts {
				if p.eval == nil {
					sb.WriteString(p.literal)
					continue
				}
				v, err := p.eval.Run(rc)
				if err != nil {
					return nil, err
				}
				sb.WriteString(rc.Display(v))
			}
			return StringValue(sb.String()), nil
		},
	}
}

func (c *compiler) compileNot(n *NotNode) Evaluation {
	inner := c.compileExpr(n.Expr)
	return Evaluation{
		Types: typesBoolean,
		Run: func(rc *RuntimeContext) (Value, error) {
			v, err := inner.Run(rc)
			if err != nil {
				return nil, err
			}
			return BoolValue(!Truthy(v)), nil
		},
	}
}

func (c *compiler) compileIdent(n *IdentNode) Evaluation {
	eval, diags := c.resolver.ResolveIdent(n.Name)
	c.report(diags, n.Pos)
	if eval.Run == nil {
		return NullEvaluation()
	}
	return eval
}

func (c *compiler) compileFunction(n *FunctionNode) Evaluation {
	args, types := c.compileArgs(n.Args)
	binding, diags := c.resolver.ResolveFunction(n.Name, types)
	c.report(diags, n.Pos)
	if binding.Call == nil {
		return NullEvaluation()
	}

	return Evaluation{
		Types: binding.Types,
		Run: func(rc *RuntimeContext) (Value, error) {
			values, err := runArgs(rc, args)
			if err != nil {
				return nil, err
			}
			return binding.Call(rc, values)
		},
	}
}

func (c *compiler) compileMethod(n *MethodNode) Evaluation {
	this := c.compileExpr(n.This)
	args, types := c.compileArgs(n.Args)
	binding, diags := c.resolver.ResolveMethod(n.Name, this.Types, types)
	c.report(diags, n.Pos)
	if binding.Call == nil {
		return NullEvaluation()
	}

	return Evaluation{
		Types: binding.Types,
		Run: func(rc *RuntimeContext) (Value, error) {
			thisValue, err := this.Run(rc)
			if err != nil {
				return nil, err
			}
			values, err := runArgs(rc, args)
			if err != nil {
				return nil, err
			}
			return binding.Call(rc, thisValue, values)
		},
	}
}

func (c *compiler) compileProperty(n *PropertyNode) Evaluation {
	this := c.compileExpr(n.This)
	binding, diags := c.resolver.ResolveProperty(n.Name, this.Types)
	c.report(diags, n.Pos)
	if binding.Get == nil {
		return NullEvaluation()
	}

	return Evaluation{
		Types: binding.Types,
		Run: func(rc *RuntimeContext) (Value, error) {
			thisValue, err := this.Run(rc)
			if err != nil {
				return nil, err
			}
			return binding.Get(rc, thisValue)
		},
	}
}

func (c *compiler) compileCaptureGroup(n *CaptureGroupNode) Evaluation {
	c.usage.CaptureGroups = append(c.usage.CaptureGroups, n.Name)
	if c.observer != nil {
		c.observer.NoteCaptureGroupUsed(n.Name)
	}
	name := n.Name
	return Evaluation{
		Types: typesStringNull,
		Run: func(rc *RuntimeContext) (Value, error) {
			return rc.CaptureGroup(name), nil
		},
	}
}

func (c *compiler) compileCommandArgument(n *CommandArgumentNode) Evaluation {
	c.usage.Arguments = append(c.usage.Arguments, n.Index)
	if c.observer != nil {
		c.observer.NoteCommandArgumentUsed(n.Index)
	}
	index := n.Index
	return Evaluation{
		Types: typesStringNull,
		Run: func(rc *RuntimeContext) (Value, error) {
			return rc.CommandArgument(index), nil
		},
	}
}

func (c *compiler) compileCommandArguments(n *CommandArgumentsNode) Evaluation {
	c.usage.ArgumentRanges = append(c.usage.ArgumentRanges, ArgumentRange{From: n.From, To: n.To})
	if c.observer != nil {
		c.observer.NoteCommandArgumentsUsed(n.From, n.To)
	}
	from, to := n.From, n.To
	return Evaluation{
		Types: typesStringNull,
		Run: func(rc *RuntimeContext) (Value, error) {
			return rc.CommandArguments(from, to), nil
		},
	}
}

func (c *compiler) compileArgs(exprs []Expr) ([]Evaluation, []TypeSet) {
	args := make([]Evaluation, len(exprs))
	types := make([]TypeSet, len(exprs))
	for i, e := range exprs {
		args[i] = c.compileExpr(e)
		types[i] = args[i].Types
	}
	return args, types
}

// report stamps diagnostics with the node offset and logs them
func (c *compiler) report(diags []Diagnostic, offset int) {
	for _, d := range diags {
		d.Offset = offset
		c.logger.Warn(LogMsgDiagnostic,
			zap.String(LogFieldCode, d.Code),
			zap.String(LogFieldName, d.Name),
			zap.Int(LogFieldOffset, offset),
		)
		c.diagnostics = append(c.diagnostics, d)
	}
}

// runArgs evaluates arguments left to right, stopping at the first error
func runArgs(rc *RuntimeContext, args []Evaluation) ([]Value, error) {
	values := make([]Value, len(args))
	for i, arg := range args {
		v, err := arg.Run(rc)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
