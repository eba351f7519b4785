package quip

import (
	"context"

	"github.com/itsatony/go-quip/internal"
	"go.uber.org/zap"
)

// Engine is the main entry point for quip.
// It parses and compiles templates and builds per-invocation contexts.
// An Engine is safe for concurrent use.
type Engine struct {
	funcs    *internal.FuncRegistry
	resolver Resolver
	config   *engineConfig
	selector *selectorSource
	logger   *zap.Logger
}

// New creates a new quip Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	funcs := internal.NewFuncRegistry()
	internal.RegisterBuiltinFuncs(funcs)
	builtins := internal.NewBuiltinResolver(funcs)

	var resolver Resolver = builtins
	if config.resolver != nil {
		resolver = config.resolver(builtins)
	}

	engine := &Engine{
		funcs:    funcs,
		resolver: resolver,
		config:   config,
		selector: newSelectorSource(config.rng),
		logger:   logger,
	}

	for _, f := range config.funcs {
		if err := engine.RegisterFunction(f); err != nil {
			return nil, err
		}
	}

	logger.Debug(LogMsgEngineCreated, zap.Int(LogFieldFuncCount, funcs.Count()))
	return engine, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Parse parses and compiles a template source string.
// The returned Template can be executed many times, concurrently.
// Unknown names do not fail parsing; see Template.Diagnostics.
func (e *Engine) Parse(source string) (*Template, error) {
	ast, err := internal.NewParser(source, e.logger).Parse()
	if err != nil {
		e.logger.Debug(LogMsgTemplateParseFail, zap.Error(err))
		return nil, parseErrorFrom(err)
	}

	program := internal.Compile(ast, e.resolver, e.logger)
	e.logger.Debug(LogMsgTemplateParsed,
		zap.Int(LogFieldDiagnostics, len(program.Diagnostics)),
	)

	return &Template{
		source:  source,
		ast:     ast,
		program: program,
		engine:  e,
	}, nil
}

// MustParse parses a template and panics on error.
func (e *Engine) MustParse(source string) *Template {
	tmpl, err := e.Parse(source)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Execute parses and renders a template in one step.
// For repeated rendering, Parse once and reuse the Template.
func (e *Engine) Execute(ctx context.Context, source string, inv Invocation, opts ...ContextOption) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return tmpl.Execute(ctx, inv, opts...)
}

// Host returns the engine's host
func (e *Engine) Host() Host {
	return e.config.host
}

// Logger returns the engine's logger
func (e *Engine) Logger() *zap.Logger {
	return e.logger
}
