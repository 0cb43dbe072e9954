package internal

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Filter represents a named output filter: input | name: args
type Filter struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for variadic
	Fn      func(input any, args []any) (any, error)
}

// FilterRegistry manages registered filters
type FilterRegistry struct {
	filters map[string]*Filter
	mu      sync.RWMutex
}

// NewFilterRegistry creates a new, empty filter registry
func NewFilterRegistry() *FilterRegistry {
	return &FilterRegistry{
		filters: make(map[string]*Filter),
	}
}

// Register adds a filter to the registry
func (r *FilterRegistry) Register(f *Filter) error {
	if f == nil || f.Fn == nil {
		return NewFilterRegistryError(ErrMsgFilterNil, "")
	}
	if f.Name == StringValueEmpty {
		return NewFilterRegistryError(ErrMsgFilterEmptyName, "")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.filters[f.Name]; exists {
		return NewFilterRegistryError(ErrMsgFilterAlreadyExists, f.Name)
	}

	r.filters[f.Name] = f
	return nil
}

// MustRegister adds a filter and panics on error
func (r *FilterRegistry) MustRegister(f *Filter) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Has checks if a filter is registered
func (r *FilterRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.filters[name]
	return ok
}

// Apply invokes a filter by name
func (r *FilterRegistry) Apply(name string, input any, args []any) (any, error) {
	r.mu.RLock()
	f, ok := r.filters[name]
	r.mu.RUnlock()

	if !ok {
		return nil, NewFilterError(ErrMsgFilterNotFound, name, nil)
	}

	argCount := len(args)
	if argCount < f.MinArgs {
		return nil, NewFilterError(fmt.Sprintf(ErrFmtFilterArgCount, ErrMsgFilterTooFewArgs, f.MinArgs, argCount), name, nil)
	}
	if f.MaxArgs >= 0 && argCount > f.MaxArgs {
		return nil, NewFilterError(fmt.Sprintf(ErrFmtFilterArgCount, ErrMsgFilterTooManyArgs, f.MaxArgs, argCount), name, nil)
	}

	result, err := f.Fn(input, args)
	if err != nil {
		return nil, NewFilterError(ErrMsgFilterFailed, name, err)
	}
	return result, nil
}

// List returns all registered filter names in sorted order
func (r *FilterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Built-in filter names
const (
	FilterNameUpcase   = "upcase"
	FilterNameDowncase = "downcase"
	FilterNameSize     = "size"
	FilterNameDefault  = "default"
	FilterNameAppend   = "append"
	FilterNamePrepend  = "prepend"
)

// RegisterBuiltinFilters registers the host's built-in filters
func RegisterBuiltinFilters(r *FilterRegistry) {
	r.MustRegister(&Filter{
		Name: FilterNameUpcase, MinArgs: 0, MaxArgs: 0,
		Fn: func(input any, _ []any) (any, error) {
			return strings.ToUpper(ToLiquidString(input)), nil
		},
	})
	r.MustRegister(&Filter{
		Name: FilterNameDowncase, MinArgs: 0, MaxArgs: 0,
		Fn: func(input any, _ []any) (any, error) {
			return strings.ToLower(ToLiquidString(input)), nil
		},
	})
	r.MustRegister(&Filter{
		Name: FilterNameSize, MinArgs: 0, MaxArgs: 0,
		Fn: func(input any, _ []any) (any, error) {
			return Size(input), nil
		},
	})
	r.MustRegister(&Filter{
		Name: FilterNameDefault, MinArgs: 1, MaxArgs: 1,
		Fn: func(input any, args []any) (any, error) {
			if input == nil || input == false || input == StringValueEmpty {
				return args[0], nil
			}
			return input, nil
		},
	})
	r.MustRegister(&Filter{
		Name: FilterNameAppend, MinArgs: 1, MaxArgs: 1,
		Fn: func(input any, args []any) (any, error) {
			return ToLiquidString(input) + ToLiquidString(args[0]), nil
		},
	})
	r.MustRegister(&Filter{
		Name: FilterNamePrepend, MinArgs: 1, MaxArgs: 1,
		Fn: func(input any, args []any) (any, error) {
			return ToLiquidString(args[0]) + ToLiquidString(input), nil
		},
	})
}

// FilterRegistryError represents a filter registration error
type FilterRegistryError struct {
	Message    string
	FilterName string
}

// NewFilterRegistryError creates a new filter registry error
func NewFilterRegistryError(message, filterName string) *FilterRegistryError {
	return &FilterRegistryError{
		Message:    message,
		FilterName: filterName,
	}
}

// Error implements the error interface
func (e *FilterRegistryError) Error() string {
	if e.FilterName != StringValueEmpty {
		return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.FilterName)
	}
	return e.Message
}

// FilterError represents a failure while applying a filter
type FilterError struct {
	Message    string
	FilterName string
	Cause      error
}

// NewFilterError creates a new filter application error
func NewFilterError(message, filterName string, cause error) *FilterError {
	return &FilterError{
		Message:    message,
		FilterName: filterName,
		Cause:      cause,
	}
}

// Error implements the error interface
func (e *FilterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf(ErrFmtFilterWithCause, e.Message, e.FilterName, e.Cause)
	}
	return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.FilterName)
}

// Unwrap returns the underlying error
func (e *FilterError) Unwrap() error {
	return e.Cause
}

// Filter error messages
const (
	ErrMsgFilterNil           = "filter cannot be nil"
	ErrMsgFilterEmptyName     = "filter name cannot be empty"
	ErrMsgFilterAlreadyExists = "filter already registered"
	ErrMsgFilterNotFound      = "unknown filter"
	ErrMsgFilterTooFewArgs    = "too few filter arguments"
	ErrMsgFilterTooManyArgs   = "too many filter arguments"
	ErrMsgFilterFailed        = "filter failed"
	ErrFmtFilterArgCount      = "%s (expected %d, got %d)"
	ErrFmtFilterWithCause     = "%s: %s: %v"
)
