package liquidsim

import (
	"sort"
	"strings"
	"sync"

	"github.com/itsatony/go-liquidsim/internal"
)

// Scope is the variable environment a template renders against.
// Lookups walk the parent chain; writes only touch the scope itself.
// An isolated scope has no parent, so names bound outside of it are
// invisible. The only exception are exposed globals, which are held in a
// separate read-only map.
type Scope struct {
	data     map[string]any
	parent   *Scope
	exposed  map[string]any
	isolated bool
	mu       sync.RWMutex
}

// NewScope creates a root scope holding a shallow copy of data.
// If data is nil, an empty map is used.
func NewScope(data map[string]any) *Scope {
	return &Scope{data: copyData(data)}
}

// NewIsolatedScope creates a parentless scope holding exactly vars.
// exposed is consulted read-only when a name is not bound in vars.
func NewIsolatedScope(vars map[string]any, exposed map[string]any) *Scope {
	return &Scope{
		data:     copyData(vars),
		exposed:  exposed,
		isolated: true,
	}
}

// Child creates a scope that inherits lookups from s.
func (s *Scope) Child(data map[string]any) *Scope {
	return &Scope{
		data:   copyData(data),
		parent: s,
	}
}

// Parent returns the parent scope, or nil for root and isolated scopes.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Isolated reports whether the scope was created by NewIsolatedScope.
func (s *Scope) Isolated() bool {
	return s.isolated
}

// Lookup resolves a top-level name through the scope chain.
func (s *Scope) Lookup(name string) (any, bool) {
	s.mu.RLock()
	val, ok := s.data[name]
	s.mu.RUnlock()
	if ok {
		return val, true
	}

	if s.parent != nil {
		return s.parent.Lookup(name)
	}
	if s.exposed != nil {
		val, ok = s.exposed[name]
		return val, ok
	}
	return nil, false
}

// Get retrieves a value by dot-notation path (e.g., "user.profile.name").
func (s *Scope) Get(path string) (any, bool) {
	if path == StringValueEmpty {
		return nil, false
	}

	parts := strings.Split(path, PathSeparator)
	current, ok := s.Lookup(parts[0])
	if !ok {
		return nil, false
	}

	for _, part := range parts[1:] {
		if part == StringValueEmpty {
			continue
		}
		current = internal.LookupProperty(current, part, true)
		if current == nil {
			return nil, false
		}
	}
	return current, true
}

// Has checks if a value exists at the given path.
func (s *Scope) Has(path string) bool {
	_, ok := s.Get(path)
	return ok
}

// Set binds name in this scope, replacing any earlier binding.
func (s *Scope) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = value
}

// Names returns the names bound directly in this scope in sorted order.
func (s *Scope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Data returns a copy of the scope's direct data (not including parent).
func (s *Scope) Data() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyData(s.data)
}

func copyData(data map[string]any) map[string]any {
	result := make(map[string]any, len(data))
	for k, v := range data {
		result[k] = v
	}
	return result
}
