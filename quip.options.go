package quip

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	host     Host
	funcs    []*Func
	rng      *rand.Rand
	clock    func() time.Time
	resolver func(builtins *BuiltinResolver) Resolver
	logger   *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		host:   NopHost{},
		logger: nil,
	}
}

// WithHost sets the host that resolves users, activities and pronouns.
// Default: NopHost
func WithHost(host Host) Option {
	return func(c *engineConfig) {
		if host != nil {
			c.host = host
		}
	}
}

// WithFunc registers a custom function when the engine is created.
// May be given more than once.
func WithFunc(f *Func) Option {
	return func(c *engineConfig) {
		c.funcs = append(c.funcs, f)
	}
}

// WithRandSource draws pronoun-set selectors from r instead of the global
// source. The engine serialises access to r.
func WithRandSource(r *rand.Rand) Option {
	return func(c *engineConfig) {
		c.rng = r
	}
}

// WithClock replaces the wall clock read by time().
func WithClock(clock func() time.Time) Option {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

// WithResolver replaces the resolver templates are compiled against.
// wrap receives the engine's built-in resolver, so it can delegate to it.
func WithResolver(wrap func(builtins *BuiltinResolver) Resolver) Option {
	return func(c *engineConfig) {
		c.resolver = wrap
	}
}

// WithLogger sets the logger for the engine.
// Default: zap.NewNop()
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}
