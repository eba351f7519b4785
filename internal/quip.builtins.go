package internal

import "errors"

// ErrAssertionFailed aborts a render when assert receives a falsy value
var ErrAssertionFailed = errors.New(ErrMsgAssertionFailed)

// Diagnostic codes
const (
	DiagCodeUnknownIdent    = "UNKNOWN_IDENT"
	DiagCodeUnknownFunction = "UNKNOWN_FUNCTION"
	DiagCodeUnknownProperty = "UNKNOWN_PROPERTY"
	DiagCodeUnknownMethod   = "UNKNOWN_METHOD"
	DiagCodeArity           = "ARITY"
	DiagCodeTypeMismatch    = "TYPE_MISMATCH"
)

// BuiltinResolver binds the built-in identifiers, functions, user
// properties and pronoun words.
type BuiltinResolver struct {
	funcs *FuncRegistry
}

// NewBuiltinResolver creates a resolver over funcs. A nil registry gets the
// built-in functions only.
func NewBuiltinResolver(funcs *FuncRegistry) *BuiltinResolver {
	if funcs == nil {
		funcs = NewFuncRegistry()
		RegisterBuiltinFuncs(funcs)
	}
	return &BuiltinResolver{funcs: funcs}
}

// Functions returns the function registry
func (r *BuiltinResolver) Functions() *FuncRegistry {
	return r.funcs
}

// userProperties are resolved before pronoun words, so "name" on a user is
// the login name.
var userProperties = []string{PropGame, PropID, PropName, PropDisplayName}

// ResolveIdent binds sender, broadcaster, bot and bare pronoun words
func (r *BuiltinResolver) ResolveIdent(name string) (Evaluation, []Diagnostic) {
	switch name {
	case IdentSender:
		return userIdent(func(rc *RuntimeContext) User { return rc.Sender() }), nil
	case IdentBroadcaster:
		return userIdent(func(rc *RuntimeContext) User { return rc.Broadcaster() }), nil
	case IdentBot:
		return userIdent(func(rc *RuntimeContext) User { return rc.Bot() }), nil
	}

	if v, ok := LookupPronounWord(name); ok {
		return Evaluation{
			Types: TypesOf(KindPronounVariable),
			Run: func(*RuntimeContext) (Value, error) {
				return v, nil
			},
		}, nil
	}

	candidates := append([]string{IdentSender, IdentBroadcaster, IdentBot}, PronounWords()...)
	return NullEvaluation(), []Diagnostic{
		unknownName(DiagCodeUnknownIdent, DiagMsgUnknownIdent, name, candidates),
	}
}

func userIdent(get func(rc *RuntimeContext) User) Evaluation {
	return Evaluation{
		Types: TypesOf(KindUser),
		Run: func(rc *RuntimeContext) (Value, error) {
			return get(rc), nil
		},
	}
}

// ResolveFunction binds a registered function, checking its arity
func (r *BuiltinResolver) ResolveFunction(name string, args []TypeSet) (FunctionBinding, []Diagnostic) {
	f, ok := r.funcs.Get(name)
	if !ok {
		return nullFunction(), []Diagnostic{
			unknownName(DiagCodeUnknownFunction, DiagMsgUnknownFunction, name, r.funcs.List()),
		}
	}

	if len(args) < f.MinArgs {
		return nullFunction(), []Diagnostic{arityDiagnostic(DiagMsgTooFewArgs, name)}
	}

	var diags []Diagnostic
	limit := len(args)
	if f.MaxArgs >= 0 && limit > f.MaxArgs {
		diags = append(diags, arityDiagnostic(DiagMsgTooManyArgs, name))
		limit = f.MaxArgs
	}

	fn := f.Fn
	return FunctionBinding{
		Types: f.Types,
		Call: func(rc *RuntimeContext, values []Value) (Value, error) {
			return fn(rc, values[:limit])
		},
	}, diags
}

// ResolveProperty binds user properties and pronoun-word properties
func (r *BuiltinResolver) ResolveProperty(name string, this TypeSet) (PropertyBinding, []Diagnostic) {
	switch name {
	case PropGame:
		return userProperty(name, this, typesStringNull, func(rc *RuntimeContext, u User) Value {
			return NullOr(rc.Game(u))
		})
	case PropID:
		return userProperty(name, this, typesString, func(_ *RuntimeContext, u User) Value {
			return StringValue(u.ID)
		})
	case PropName:
		return userProperty(name, this, typesString, func(_ *RuntimeContext, u User) Value {
			return StringValue(u.Name)
		})
	case PropDisplayName:
		return userProperty(name, this, typesString, func(_ *RuntimeContext, u User) Value {
			return StringValue(u.DisplayName)
		})
	}

	if v, ok := LookupPronounWord(name); ok {
		return userProperty(name, this, typesString, func(rc *RuntimeContext, u User) Value {
			return StringValue(rc.DisplayPronouns(u, v))
		})
	}

	candidates := append(append([]string{}, userProperties...), PronounWords()...)
	return nullProperty(), []Diagnostic{
		unknownName(DiagCodeUnknownProperty, DiagMsgUnknownProperty, name, candidates),
	}
}

// userProperty resolves the receiver to a user before calling get. The
// result may always be Null since the receiver may not resolve.
func userProperty(name string, this, result TypeSet, get func(rc *RuntimeContext, u User) Value) (PropertyBinding, []Diagnostic) {
	var diags []Diagnostic
	if !this.HasAny(KindUser, KindString) {
		diags = append(diags, typeDiagnostic(DiagMsgThisNotUser, name))
	}
	return PropertyBinding{
		Types: result.With(KindNull),
		Get: func(rc *RuntimeContext, thisValue Value) (Value, error) {
			u, ok := rc.UserOf(thisValue)
			if !ok {
				return Null, nil
			}
			return get(rc, u), nil
		},
	}, diags
}

// ResolveMethod binds pronouns(variable) and pronouns(singular, plural)
func (r *BuiltinResolver) ResolveMethod(name string, this TypeSet, args []TypeSet) (MethodBinding, []Diagnostic) {
	if name != MethodPronouns {
		return nullMethod(), []Diagnostic{
			unknownName(DiagCodeUnknownMethod, DiagMsgUnknownMethod, name, []string{MethodPronouns}),
		}
	}

	var diags []Diagnostic
	if !this.HasAny(KindUser, KindString) {
		diags = append(diags, typeDiagnostic(DiagMsgThisNotUser, name))
	}

	switch len(args) {
	case 0:
		return nullMethod(), append(diags, arityDiagnostic(DiagMsgTooFewArgs, name))
	case 1:
		if !args[0].Has(KindPronounVariable) {
			diags = append(diags, typeDiagnostic(DiagMsgArgNotVariable, name))
		}
		return pronounsMethod(func(values []Value) (PronounVariable, bool) {
			v, ok := values[0].(PronounVariable)
			return v, ok
		}), diags
	default:
		if len(args) > 2 {
			diags = append(diags, arityDiagnostic(DiagMsgTooManyArgs, name))
		}
		if !args[0].Has(KindString) || !args[1].Has(KindString) {
			diags = append(diags, typeDiagnostic(DiagMsgArgNotString, name))
		}
		return pronounsMethod(func(values []Value) (PronounVariable, bool) {
			singular, ok1 := values[0].(StringValue)
			plural, ok2 := values[1].(StringValue)
			if !ok1 || !ok2 {
				return PronounVariable{}, false
			}
			return NumberVariable(string(singular), string(plural)), true
		}), diags
	}
}

func pronounsMethod(variable func(values []Value) (PronounVariable, bool)) MethodBinding {
	return MethodBinding{
		Types: typesStringNull,
		Call: func(rc *RuntimeContext, thisValue Value, values []Value) (Value, error) {
			v, ok := variable(values)
			if !ok {
				return Null, nil
			}
			u, ok := rc.UserOf(thisValue)
			if !ok {
				return Null, nil
			}
			return StringValue(rc.DisplayPronouns(u, v)), nil
		},
	}
}

// assertFunc returns its argument unless it is falsy
func assertFunc(_ *RuntimeContext, args []Value) (Value, error) {
	if !Truthy(args[0]) {
		return nil, ErrAssertionFailed
	}
	return args[0], nil
}

func nullFunction() FunctionBinding {
	return FunctionBinding{
		Types: typesNull,
		Call:  func(*RuntimeContext, []Value) (Value, error) { return Null, nil },
	}
}

func nullProperty() PropertyBinding {
	return PropertyBinding{
		Types: typesNull,
		Get:   func(*RuntimeContext, Value) (Value, error) { return Null, nil },
	}
}

func nullMethod() MethodBinding {
	return MethodBinding{
		Types: typesNull,
		Call:  func(*RuntimeContext, Value, []Value) (Value, error) { return Null, nil },
	}
}

func unknownName(code, message, name string, candidates []string) Diagnostic {
	return Diagnostic{
		Severity:    SeverityWarning,
		Code:        code,
		Name:        name,
		Message:     message,
		Suggestions: FindSimilarStrings(name, candidates, MaxSuggestions),
	}
}

func arityDiagnostic(message, name string) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Code:     DiagCodeArity,
		Name:     name,
		Message:  message,
	}
}

func typeDiagnostic(message, name string) Diagnostic {
	return Diagnostic{
		Severity: SeverityInfo,
		Code:     DiagCodeTypeMismatch,
		Name:     name,
		Message:  message,
	}
}
