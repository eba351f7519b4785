package quip

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/itsatony/go-quip/internal"
)

// Invocation is the input of one render: who spoke, what they wrote and the
// named groups the host's command pattern captured from it.
type Invocation struct {
	Sender   User
	Message  string
	Captures map[string]string
}

// selectorSource draws pronoun-set selectors from a shared *rand.Rand
type selectorSource struct {
	rng *rand.Rand
	mu  sync.Mutex
}

func newSelectorSource(rng *rand.Rand) *selectorSource {
	if rng == nil {
		return nil
	}
	return &selectorSource{rng: rng}
}

func (s *selectorSource) next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(internal.SelectorRange)
}

// NewContext creates the runtime context for one invocation, using the
// engine's host, clock, selector source and logger. opts are applied last.
func (e *Engine) NewContext(ctx context.Context, inv Invocation, opts ...ContextOption) *Context {
	base := make([]ContextOption, 0, len(opts)+3)
	base = append(base, internal.WithRuntimeLogger(e.logger))
	if e.config.clock != nil {
		base = append(base, internal.WithClock(e.config.clock))
	}
	if e.selector != nil {
		base = append(base, internal.WithSelector(e.selector.next()))
	}
	base = append(base, opts...)

	return internal.NewRuntimeContext(ctx, e.config.host, inv.Sender, inv.Message, inv.Captures, base...)
}
