package quip

import (
	"context"

	"github.com/itsatony/go-quip/internal"
	"go.uber.org/zap"
)

// Template represents a compiled template that can be executed many times.
type Template struct {
	source  string
	ast     *internal.TextNode
	program *internal.Program
	engine  *Engine
}

// Execute renders the template for one invocation.
// This is a convenience method that creates a Context with Engine.NewContext.
func (t *Template) Execute(ctx context.Context, inv Invocation, opts ...ContextOption) (string, error) {
	return t.ExecuteWithContext(t.engine.NewContext(ctx, inv, opts...))
}

// ExecuteWithContext renders the template against c.
// A failed assert returns an error matching ErrAssertionFailed and no output.
func (t *Template) ExecuteWithContext(c *Context) (string, error) {
	out, err := t.program.Run(c)
	if err == nil {
		return out, nil
	}
	if IsAssertionError(err) {
		c.Logger().Debug(LogMsgAssertionFailed)
		return "", NewAssertionError(c.ID())
	}
	c.Logger().Warn(ErrMsgExecutionFailed, zap.Error(err))
	return "", NewExecutionError(ErrMsgExecutionFailed, c.ID(), err)
}

// Source returns the original template source string.
func (t *Template) Source() string {
	return t.source
}

// String returns the template in canonical syntax.
func (t *Template) String() string {
	return t.ast.String()
}

// Diagnostics returns the resolution problems found while compiling.
func (t *Template) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), t.program.Diagnostics...)
}

// HasDiagnostics reports whether compiling produced any diagnostics.
func (t *Template) HasDiagnostics() bool {
	return len(t.program.Diagnostics) > 0
}

// Usage returns the capture groups and positional arguments the template reads.
func (t *Template) Usage() Usage {
	u := t.program.Usage
	return Usage{
		CaptureGroups:  append([]string(nil), u.CaptureGroups...),
		Arguments:      append([]int(nil), u.Arguments...),
		ArgumentRanges: append([]ArgumentRange(nil), u.ArgumentRanges...),
	}
}
