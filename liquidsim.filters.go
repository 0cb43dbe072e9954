package liquidsim

import (
	"github.com/itsatony/go-cuserr"
	"github.com/itsatony/go-liquidsim/internal"
	"go.uber.org/zap"
)

// Filter represents an output filter applied with `value | name: args`.
type Filter struct {
	// Name is the filter identifier used in templates (e.g., "md5" for {{ x | md5 }})
	Name string
	// MinArgs is the minimum number of arguments after the colon
	MinArgs int
	// MaxArgs is the maximum number of arguments allowed (-1 for variadic)
	MaxArgs int
	// Fn receives the piped value and the evaluated arguments
	Fn func(input any, args []any) (any, error)
}

// RegisterFilter registers an output filter.
//
// Example:
//
//	engine.RegisterFilter(&liquidsim.Filter{
//	    Name:    "shout",
//	    MinArgs: 0,
//	    MaxArgs: 0,
//	    Fn: func(input any, _ []any) (any, error) {
//	        return strings.ToUpper(fmt.Sprint(input)) + "!", nil
//	    },
//	})
//
// The filter can then be used in templates:
//
//	{{ greeting | shout }}
func (e *Engine) RegisterFilter(f *Filter) error {
	if f == nil {
		return cuserr.NewValidationError(ErrCodeRegistry, ErrMsgFilterRegistration)
	}

	internalFilter := &internal.Filter{
		Name:    f.Name,
		MinArgs: f.MinArgs,
		MaxArgs: f.MaxArgs,
		Fn:      f.Fn,
	}
	if err := e.filters.Register(internalFilter); err != nil {
		return NewRegistryError(ErrMsgFilterRegistration, f.Name, err)
	}

	e.logger.Debug(LogMsgFilterRegistered, zap.String(LogFieldFilter, f.Name))
	return nil
}

// MustRegisterFilter registers a filter and panics on error.
func (e *Engine) MustRegisterFilter(f *Filter) {
	if err := e.RegisterFilter(f); err != nil {
		panic(err)
	}
}

// HasFilter checks if a filter is registered.
func (e *Engine) HasFilter(name string) bool {
	return e.filters.Has(name)
}

// ListFilters returns all registered filter names in sorted order.
func (e *Engine) ListFilters() []string {
	return e.filters.List()
}
