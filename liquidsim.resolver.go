package liquidsim

import (
	"context"
	"sort"
	"sync"
)

// SnippetResolver supplies snippet sources to the render tag.
// found is false for an unknown snippet; err is reserved for lookup
// failures such as I/O or database errors.
type SnippetResolver interface {
	ResolveSnippet(ctx context.Context, name string) (source string, found bool, err error)
}

// SnippetResolverFunc adapts a function to the SnippetResolver interface.
type SnippetResolverFunc func(ctx context.Context, name string) (string, bool, error)

// ResolveSnippet calls f.
func (f SnippetResolverFunc) ResolveSnippet(ctx context.Context, name string) (string, bool, error) {
	return f(ctx, name)
}

// MapResolver resolves snippets from an in-memory map.
// It is safe for concurrent use.
type MapResolver struct {
	snippets map[string]string
	mu       sync.RWMutex
}

// NewMapResolver creates a resolver holding a copy of snippets.
func NewMapResolver(snippets map[string]string) *MapResolver {
	r := &MapResolver{snippets: make(map[string]string, len(snippets))}
	for name, source := range snippets {
		r.snippets[name] = source
	}
	return r
}

// ResolveSnippet returns the snippet registered under name.
func (r *MapResolver) ResolveSnippet(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return StringValueEmpty, false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	source, ok := r.snippets[name]
	return source, ok, nil
}

// Set adds or replaces a snippet.
func (r *MapResolver) Set(name, source string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snippets[name] = source
}

// Delete removes a snippet. Returns true if it existed.
func (r *MapResolver) Delete(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.snippets[name]; !ok {
		return false
	}
	delete(r.snippets, name)
	return true
}

// Names returns all snippet names in sorted order.
func (r *MapResolver) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.snippets))
	for name := range r.snippets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
