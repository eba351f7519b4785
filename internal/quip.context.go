package internal

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Host supplies the identities and lookups that live outside the engine.
type Host interface {
	// Broadcaster returns the channel owner
	Broadcaster() User
	// Bot returns the bot's own identity
	Bot() User
	// UserByName looks a user up by login name
	UserByName(ctx context.Context, name string) (User, bool)
	// CurrentActivity returns what the user is currently doing, if known
	CurrentActivity(ctx context.Context, user User) (string, bool)
	// Pronouns returns the user's pronoun id, PronounIDUnset if none
	Pronouns(ctx context.Context, user User) PronounID
}

// NopHost knows nobody. Broadcaster and bot are zero users.
type NopHost struct{}

func (NopHost) Broadcaster() User { return User{} }
func (NopHost) Bot() User         { return User{} }

func (NopHost) UserByName(context.Context, string) (User, bool) { return User{}, false }

func (NopHost) CurrentActivity(context.Context, User) (string, bool) { return "", false }

func (NopHost) Pronouns(context.Context, User) PronounID { return PronounIDUnset }

// RuntimeContext is the per-invocation state read by compiled templates.
// Create one per render; it must not be shared between concurrent renders.
// Host lookups are memoised, so a render sees each user's data once.
type RuntimeContext struct {
	ctx      context.Context
	host     Host
	sender   User
	tokens   []string
	captures map[string]string
	selector int
	clock    func() time.Time
	id       string
	logger   *zap.Logger
	lookups  hostLookups
}

// hostLookups caches Host answers for one invocation
type hostLookups struct {
	mu       sync.Mutex
	users    map[string]cachedUser
	games    map[User]cachedGame
	pronouns map[User]PronounID
}

type cachedUser struct {
	user User
	ok   bool
}

type cachedGame struct {
	game string
	ok   bool
}

// RuntimeOption configures a RuntimeContext
type RuntimeOption func(*runtimeConfig)

type runtimeConfig struct {
	selector    int
	hasSelector bool
	rng         *rand.Rand
	clock       func() time.Time
	logger      *zap.Logger
}

// WithSelector pins the pronoun-set selector
func WithSelector(selector int) RuntimeOption {
	return func(c *runtimeConfig) {
		c.selector = selector
		c.hasSelector = true
	}
}

// WithRandSource draws the selector from r instead of the global source
func WithRandSource(r *rand.Rand) RuntimeOption {
	return func(c *runtimeConfig) {
		c.rng = r
	}
}

// WithClock replaces the wall clock read by time()
func WithClock(clock func() time.Time) RuntimeOption {
	return func(c *runtimeConfig) {
		c.clock = clock
	}
}

// WithRuntimeLogger sets the logger for the invocation
func WithRuntimeLogger(logger *zap.Logger) RuntimeOption {
	return func(c *runtimeConfig) {
		c.logger = logger
	}
}

// NewRuntimeContext creates the context for one invocation. message is split
// into positional tokens; captures holds the named groups of the command match.
func NewRuntimeContext(ctx context.Context, host Host, sender User, message string, captures map[string]string, opts ...RuntimeOption) *RuntimeContext {
	cfg := runtimeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if host == nil {
		host = NopHost{}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	if cfg.clock == nil {
		cfg.clock = time.Now
	}
	if !cfg.hasSelector {
		if cfg.rng != nil {
			cfg.selector = cfg.rng.IntN(SelectorRange)
		} else {
			cfg.selector = rand.IntN(SelectorRange)
		}
	}

	id := ulid.Make().String()
	logger := cfg.logger.With(zap.String(LogFieldInvocationID, id))
	rc := &RuntimeContext{
		ctx:      ctx,
		host:     host,
		sender:   sender,
		tokens:   strings.FieldsFunc(message, unicode.IsSpace),
		captures: captures,
		selector: cfg.selector,
		clock:    cfg.clock,
		id:       id,
		logger:   logger,
	}
	logger.Debug(LogMsgRuntimeCtxCreated,
		zap.Int(LogFieldTokens, len(rc.tokens)),
		zap.Int(LogFieldSelector, rc.selector),
	)
	return rc
}

// Context returns the context.Context passed to host lookups
func (rc *RuntimeContext) Context() context.Context { return rc.ctx }

// ID returns the invocation ID
func (rc *RuntimeContext) ID() string { return rc.id }

// Logger returns the invocation logger
func (rc *RuntimeContext) Logger() *zap.Logger { return rc.logger }

// Selector returns the pronoun-set selector fixed for this invocation
func (rc *RuntimeContext) Selector() int { return rc.selector }

// Now reads the invocation clock
func (rc *RuntimeContext) Now() time.Time { return rc.clock() }

// Sender returns the invoking user
func (rc *RuntimeContext) Sender() User { return rc.sender }

// Broadcaster returns the host's broadcaster
func (rc *RuntimeContext) Broadcaster() User { return rc.host.Broadcaster() }

// Bot returns the host's bot identity
func (rc *RuntimeContext) Bot() User { return rc.host.Bot() }

// Tokens returns a copy of the positional tokens
func (rc *RuntimeContext) Tokens() []string {
	return append([]string(nil), rc.tokens...)
}

// UserOf resolves v to a user: a User is used as is, a string is looked up
// by name, anything else resolves to nobody.
func (rc *RuntimeContext) UserOf(v Value) (User, bool) {
	switch val := v.(type) {
	case User:
		return val, true
	case StringValue:
		user, ok := rc.userByName(string(val))
		if !ok {
			rc.logger.Debug(LogMsgUserLookupMiss, zap.String(LogFieldName, string(val)))
		}
		return user, ok
	default:
		return User{}, false
	}
}

func (rc *RuntimeContext) userByName(name string) (User, bool) {
	rc.lookups.mu.Lock()
	defer rc.lookups.mu.Unlock()

	if hit, ok := rc.lookups.users[name]; ok {
		return hit.user, hit.ok
	}
	user, ok := rc.host.UserByName(rc.ctx, name)
	if rc.lookups.users == nil {
		rc.lookups.users = make(map[string]cachedUser)
	}
	rc.lookups.users[name] = cachedUser{user: user, ok: ok}
	return user, ok
}

// Game returns the user's current activity
func (rc *RuntimeContext) Game(user User) (string, bool) {
	rc.lookups.mu.Lock()
	defer rc.lookups.mu.Unlock()

	if hit, ok := rc.lookups.games[user]; ok {
		return hit.game, hit.ok
	}
	game, ok := rc.host.CurrentActivity(rc.ctx, user)
	if rc.lookups.games == nil {
		rc.lookups.games = make(map[User]cachedGame)
	}
	rc.lookups.games[user] = cachedGame{game: game, ok: ok}
	return game, ok
}

// Pronouns returns the user's pronoun id
func (rc *RuntimeContext) Pronouns(user User) PronounID {
	rc.lookups.mu.Lock()
	defer rc.lookups.mu.Unlock()

	if id, ok := rc.lookups.pronouns[user]; ok {
		return id
	}
	id := rc.host.Pronouns(rc.ctx, user)
	if rc.lookups.pronouns == nil {
		rc.lookups.pronouns = make(map[User]PronounID)
	}
	rc.lookups.pronouns[user] = id
	return id
}

// CaptureGroup returns the named capture, or Null when absent
func (rc *RuntimeContext) CaptureGroup(name string) Value {
	s, ok := rc.captures[name]
	return NullOr(s, ok)
}

// tokenIndex maps a possibly negative argument index onto tokens
func (rc *RuntimeContext) tokenIndex(i int) (int, bool) {
	n := len(rc.tokens)
	if i < 0 {
		if -i > n {
			return 0, false
		}
		return n + i, true
	}
	if i >= n {
		return 0, false
	}
	return i, true
}

// CommandArgument returns token i, counting from the end when i is negative
func (rc *RuntimeContext) CommandArgument(i int) Value {
	idx, ok := rc.tokenIndex(i)
	if !ok {
		return Null
	}
	return StringValue(rc.tokens[idx])
}

// CommandArguments returns tokens from..to inclusive, joined by a space.
// Both bounds index like CommandArgument; an upper bound past the end is
// clamped to the last token.
func (rc *RuntimeContext) CommandArguments(from, to int) Value {
	lo, ok := rc.tokenIndex(from)
	if !ok {
		return Null
	}
	hi, ok := rc.tokenIndex(to)
	if !ok {
		if to < len(rc.tokens) {
			return Null
		}
		hi = len(rc.tokens) - 1
	}
	if lo > hi {
		return Null
	}
	return StringValue(strings.Join(rc.tokens[lo:hi+1], string(CharTokenSpacing)))
}

// DisplayPronouns renders v for user with this invocation's selector
func (rc *RuntimeContext) DisplayPronouns(user User, v PronounVariable) string {
	return RenderPronounVariable(rc.Pronouns(user), rc.selector, user.DisplayName, v)
}

// Display converts a value to the text it contributes to the output.
func (rc *RuntimeContext) Display(v Value) string {
	switch val := v.(type) {
	case StringValue:
		return string(val)
	case User:
		return val.String()
	case PronounID:
		return string(val)
	case PronounVariable:
		return rc.DisplayPronouns(rc.sender, val)
	default:
		return ""
	}
}
