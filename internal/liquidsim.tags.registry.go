package internal

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// CompiledTag is a tag whose arguments were parsed at compile time.
// It must be safe for concurrent use by multiple renders.
type CompiledTag interface {
	Execute(ctx context.Context, frame *Frame) (string, error)
}

// TagDefinition mirrors the public tag handler for internal use.
// This allows the internal package to compile tags without import cycles.
type TagDefinition interface {
	TagName() string
	IsBlock() bool
	Compile(markup string) (CompiledTag, error)
}

// TagLookup is the read side of the registry used by the parser
type TagLookup interface {
	Get(tagName string) (TagDefinition, bool)
}

// Registry manages tag registration with first-come-wins semantics.
// It is thread-safe for concurrent read/write access.
type Registry struct {
	tags   map[string]TagDefinition
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewRegistry creates a new tag registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry{
		tags:   make(map[string]TagDefinition),
		logger: logger,
	}
}

// Register adds a tag definition to the registry.
// Names handled by the parser itself (if, unless, elsif, else and end tags)
// are rejected, as is any name already registered.
func (r *Registry) Register(def TagDefinition) error {
	if def == nil {
		return NewRegistryError(ErrMsgNilTag, "")
	}

	tagName := def.TagName()
	if tagName == StringValueEmpty {
		return NewRegistryError(ErrMsgEmptyTagName, "")
	}
	if name, rest, ok := splitTagContent(tagName); !ok || name != tagName || rest != StringValueEmpty {
		return NewRegistryError(ErrMsgInvalidTagNameReg, tagName)
	}
	if IsReservedTagName(tagName) {
		return NewRegistryError(ErrMsgReservedTagName, tagName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tags[tagName]; exists {
		r.logger.Warn(LogMsgTagCollision, zap.String(LogFieldTag, tagName))
		return NewRegistryError(ErrMsgTagAlreadyExists, tagName)
	}

	r.tags[tagName] = def
	r.logger.Debug(LogMsgTagRegistered, zap.String(LogFieldTag, tagName), zap.Bool(LogFieldBlock, def.IsBlock()))
	return nil
}

// MustRegister adds a tag definition and panics if registration fails.
// Use this for built-in tags that must always be available.
func (r *Registry) MustRegister(def TagDefinition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get retrieves a tag definition by name.
func (r *Registry) Get(tagName string) (TagDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.tags[tagName]
	return def, exists
}

// Has checks if a tag is registered under the given name.
func (r *Registry) Has(tagName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.tags[tagName]
	return exists
}

// List returns all registered tag names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tags))
	for name := range r.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tags.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tags)
}

// IsReservedTagName reports whether the parser handles the name itself
func IsReservedTagName(name string) bool {
	switch name {
	case TagNameIf, TagNameUnless, TagNameElsif, TagNameElse:
		return true
	}
	return strings.HasPrefix(name, EndTagPrefix)
}

// RegistryError represents a registry operation error
type RegistryError struct {
	Message string
	TagName string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message, tagName string) *RegistryError {
	return &RegistryError{
		Message: message,
		TagName: tagName,
	}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.TagName != StringValueEmpty {
		return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.TagName)
	}
	return e.Message
}

// Registry error message constants
const (
	ErrMsgNilTag            = "tag definition cannot be nil"
	ErrMsgEmptyTagName      = "tag name cannot be empty"
	ErrMsgInvalidTagNameReg = "tag name must be a single identifier"
	ErrMsgReservedTagName   = "tag name is reserved"
	ErrMsgTagAlreadyExists  = "tag already registered"
)

// Additional log field constants for registry
const (
	LogFieldBlock = "block"
)
