package quip

import (
	"github.com/itsatony/go-quip/internal"
	"go.uber.org/zap"
)

// Func represents a custom function callable from templates.
type Func struct {
	// Name is the function identifier used in templates (e.g., "roll" for ${roll(6)})
	Name string
	// MinArgs is the minimum number of arguments required
	MinArgs int
	// MaxArgs is the maximum number of arguments allowed (-1 for variadic)
	MaxArgs int
	// Types lists the kinds Fn may return. Zero means any kind. Fn may always
	// return Null; a nil result counts as Null, and any other kind renders as Null.
	Types TypeSet
	// Fn is the function implementation. It receives at most MaxArgs arguments.
	Fn func(c *Context, args []Value) (Value, error)
}

// RegisterFunction registers a custom function for use in templates.
// Templates parsed before the call do not see the function.
//
// Example:
//
//	engine.RegisterFunction(&quip.Func{
//	    Name:    "shout",
//	    MinArgs: 1,
//	    MaxArgs: 1,
//	    Types:   quip.TypesOf(quip.KindString),
//	    Fn: func(c *quip.Context, args []quip.Value) (quip.Value, error) {
//	        return quip.StringValue(strings.ToUpper(c.Display(args[0]))), nil
//	    },
//	})
func (e *Engine) RegisterFunction(f *Func) error {
	if f == nil {
		return NewFuncRegistrationError("", nil)
	}

	types := f.Types
	if types == 0 {
		types = internal.TypeSetAll
	}

	// Convert to internal Func
	internalFunc := &internal.Func{
		Name:    f.Name,
		MinArgs: f.MinArgs,
		MaxArgs: f.MaxArgs,
		Types:   types.With(KindNull),
		Fn:      checkedResult(f.Name, types, f.Fn),
	}

	if err := e.funcs.Register(internalFunc); err != nil {
		return NewFuncRegistrationError(f.Name, err)
	}
	e.logger.Debug(LogMsgFuncRegistered, zap.String(LogFieldFuncName, f.Name))
	return nil
}

// checkedResult keeps fn's results inside its declared types: a nil result
// becomes Null, and a result of an undeclared kind is logged and becomes Null.
func checkedResult(name string, types TypeSet, fn func(c *Context, args []Value) (Value, error)) func(c *Context, args []Value) (Value, error) {
	if fn == nil {
		return nil
	}
	return func(c *Context, args []Value) (Value, error) {
		v, err := fn(c, args)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return Null, nil
		}
		if kind := v.Kind(); kind != KindNull && !types.Has(kind) {
			c.Logger().Warn(LogMsgFuncResultKind,
				zap.String(LogFieldFuncName, name),
				zap.Stringer(LogFieldKind, kind),
				zap.Stringer(LogFieldTypes, types),
			)
			return Null, nil
		}
		return v, nil
	}
}

// MustRegisterFunction registers a custom function and panics on error.
func (e *Engine) MustRegisterFunction(f *Func) {
	if err := e.RegisterFunction(f); err != nil {
		panic(err)
	}
}

// HasFunction checks if a function is registered with the given name.
func (e *Engine) HasFunction(name string) bool {
	return e.funcs.Has(name)
}

// ListFunctions returns all registered function names, sorted.
func (e *Engine) ListFunctions() []string {
	return e.funcs.List()
}
