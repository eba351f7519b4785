package internal

import (
	"fmt"
	"sort"
	"sync"
)

// Func is a callable template function
type Func struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for variadic
	Types   TypeSet
	// Fn receives at most MaxArgs evaluated arguments; extra ones are dropped.
	Fn func(rc *RuntimeContext, args []Value) (Value, error)
}

// FuncRegistry manages registered functions
type FuncRegistry struct {
	funcs map[string]*Func
	mu    sync.RWMutex
}

// NewFuncRegistry creates a new function registry
func NewFuncRegistry() *FuncRegistry {
	return &FuncRegistry{
		funcs: make(map[string]*Func),
	}
}

// Register adds a function to the registry
func (r *FuncRegistry) Register(f *Func) error {
	if f == nil {
		return NewFuncRegistryError(ErrMsgFuncNilFunc, "")
	}
	if f.Name == "" {
		return NewFuncRegistryError(ErrMsgFuncEmptyName, "")
	}
	if f.Fn == nil {
		return NewFuncRegistryError(ErrMsgFuncNilImpl, f.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.funcs[f.Name]; exists {
		return NewFuncRegistryError(ErrMsgFuncAlreadyExists, f.Name)
	}

	r.funcs[f.Name] = f
	return nil
}

// MustRegister adds a function and panics on error
func (r *FuncRegistry) MustRegister(f *Func) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Get retrieves a function by name
func (r *FuncRegistry) Get(name string) (*Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.funcs[name]
	return f, ok
}

// Has checks if a function is registered
func (r *FuncRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.funcs[name]
	return ok
}

// List returns all registered function names, sorted
func (r *FuncRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered functions
func (r *FuncRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.funcs)
}

// FuncRegistryError represents a function registry error
type FuncRegistryError struct {
	Message  string
	FuncName string
}

// NewFuncRegistryError creates a new function registry error
func NewFuncRegistryError(message, funcName string) *FuncRegistryError {
	return &FuncRegistryError{
		Message:  message,
		FuncName: funcName,
	}
}

// Error implements the error interface
func (e *FuncRegistryError) Error() string {
	if e.FuncName != "" {
		return fmt.Sprintf(ErrFmtWithName, e.Message, e.FuncName)
	}
	return e.Message
}

// Function registry error messages
const (
	ErrMsgFuncNilFunc       = "function cannot be nil"
	ErrMsgFuncEmptyName     = "function name cannot be empty"
	ErrMsgFuncNilImpl       = "function implementation cannot be nil"
	ErrMsgFuncAlreadyExists = "function already registered"
)

// RegisterBuiltinFuncs registers assert, void and time
func RegisterBuiltinFuncs(r *FuncRegistry) {
	r.MustRegister(&Func{
		Name:    FuncNameAssert,
		MinArgs: 1,
		MaxArgs: 1,
		Types:   TypeSetAll,
		Fn:      assertFunc,
	})

	r.MustRegister(&Func{
		Name:    FuncNameVoid,
		MinArgs: 0,
		MaxArgs: -1,
		Types:   typesNull,
		Fn: func(*RuntimeContext, []Value) (Value, error) {
			return Null, nil
		},
	})

	registerTimeFuncs(r)
}
