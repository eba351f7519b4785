package quip

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Role marks a directory user as one of the host identities
type Role string

// Directory roles
const (
	RoleNone        Role = ""
	RoleBroadcaster Role = "broadcaster"
	RoleBot         Role = "bot"
)

// DirectoryUser is a user record held by a directory.
type DirectoryUser struct {
	User
	// Activity is what the user is currently doing, e.g. the game being streamed
	Activity string
	// Pronouns is the user's pronoun id; PronounIDUnset renders nounself forms
	Pronouns PronounID
	// Role marks the broadcaster and the bot
	Role Role
}

// Directory is a Host backed by a user store.
type Directory interface {
	Host
	// SaveUser creates or replaces a user record
	SaveUser(ctx context.Context, u DirectoryUser) error
	// Close releases resources held by the directory
	Close() error
}

// directoryKey normalises a login name for lookup
func directoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// validateDirectoryUser checks the fields every directory requires
func validateDirectoryUser(u DirectoryUser) error {
	if directoryKey(u.Name) == "" {
		return NewDirectoryError(ErrMsgDirectoryInvalidUser, u.ID, nil)
	}
	if _, ok := ParsePronounID(string(u.Pronouns)); !ok {
		return NewDirectoryError(ErrMsgDirectoryInvalidPronouns, u.Name, nil)
	}
	return nil
}

// MemoryDirectory is an in-memory Directory.
// It is safe for concurrent use.
type MemoryDirectory struct {
	users       map[string]DirectoryUser
	broadcaster string
	bot         string
	mu          sync.RWMutex
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		users: make(map[string]DirectoryUser),
	}
}

// SaveUser creates or replaces a user. A user saved with a role becomes the
// broadcaster or bot.
func (d *MemoryDirectory) SaveUser(_ context.Context, u DirectoryUser) error {
	if err := validateDirectoryUser(u); err != nil {
		return err
	}
	id, _ := ParsePronounID(string(u.Pronouns))
	u.Pronouns = id

	key := directoryKey(u.Name)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.users[key] = u
	if d.broadcaster == key {
		d.broadcaster = ""
	}
	if d.bot == key {
		d.bot = ""
	}
	switch u.Role {
	case RoleBroadcaster:
		d.broadcaster = key
	case RoleBot:
		d.bot = key
	}
	return nil
}

// MustSaveUser saves a user and panics on error.
func (d *MemoryDirectory) MustSaveUser(u DirectoryUser) {
	if err := d.SaveUser(context.Background(), u); err != nil {
		panic(err)
	}
}

// SetActivity updates a known user's current activity.
func (d *MemoryDirectory) SetActivity(name, activity string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.users[directoryKey(name)]
	if ok {
		u.Activity = activity
		d.users[directoryKey(name)] = u
	}
	return ok
}

// lookup returns the record for name
func (d *MemoryDirectory) lookup(name string) (DirectoryUser, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[directoryKey(name)]
	return u, ok
}

// Broadcaster returns the user saved with RoleBroadcaster.
func (d *MemoryDirectory) Broadcaster() User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.users[d.broadcaster].User
}

// Bot returns the user saved with RoleBot.
func (d *MemoryDirectory) Bot() User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.users[d.bot].User
}

// UserByName looks a user up by login name, case-insensitively.
func (d *MemoryDirectory) UserByName(_ context.Context, name string) (User, bool) {
	u, ok := d.lookup(name)
	return u.User, ok
}

// CurrentActivity returns the user's activity, if one is set.
func (d *MemoryDirectory) CurrentActivity(_ context.Context, user User) (string, bool) {
	u, ok := d.lookup(user.Name)
	if !ok || u.Activity == "" {
		return "", false
	}
	return u.Activity, true
}

// Pronouns returns the user's pronoun id.
func (d *MemoryDirectory) Pronouns(_ context.Context, user User) PronounID {
	u, _ := d.lookup(user.Name)
	return u.Pronouns
}

// Users returns all records sorted by name.
func (d *MemoryDirectory) Users() []DirectoryUser {
	d.mu.RLock()
	defer d.mu.RUnlock()

	users := make([]DirectoryUser, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return directoryKey(users[i].Name) < directoryKey(users[j].Name)
	})
	return users
}

// Len returns the number of users.
func (d *MemoryDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// Close is a no-op.
func (d *MemoryDirectory) Close() error {
	return nil
}
