package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterRegistry_Register(t *testing.T) {
	r := NewFilterRegistry()

	err := r.Register(&Filter{Name: "twice", MinArgs: 0, MaxArgs: 0, Fn: func(input any, _ []any) (any, error) {
		s := ToLiquidString(input)
		return s + s, nil
	}})
	require.NoError(t, err)
	assert.True(t, r.Has("twice"))

	var regErr *FilterRegistryError
	err = r.Register(&Filter{Name: "twice", Fn: func(any, []any) (any, error) { return nil, nil }})
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, ErrMsgFilterAlreadyExists, regErr.Message)

	err = r.Register(nil)
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, ErrMsgFilterNil, regErr.Message)

	err = r.Register(&Filter{Name: "", Fn: func(any, []any) (any, error) { return nil, nil }})
	require.ErrorAs(t, err, &regErr)
	assert.Equal(t, ErrMsgFilterEmptyName, regErr.Message)

	result, err := r.Apply("twice", "ab", nil)
	require.NoError(t, err)
	assert.Equal(t, "abab", result)
}

func TestFilterRegistry_Apply_Errors(t *testing.T) {
	r := newTestFilters()
	cause := errors.New("nope")
	r.MustRegister(&Filter{Name: "broken", MinArgs: 0, MaxArgs: -1, Fn: func(any, []any) (any, error) {
		return nil, cause
	}})

	var filterErr *FilterError

	_, err := r.Apply("missing", "x", nil)
	require.ErrorAs(t, err, &filterErr)
	assert.Equal(t, ErrMsgFilterNotFound, filterErr.Message)

	_, err = r.Apply(FilterNameAppend, "x", nil)
	require.ErrorAs(t, err, &filterErr)
	assert.Contains(t, filterErr.Message, ErrMsgFilterTooFewArgs)

	_, err = r.Apply(FilterNameUpcase, "x", []any{1})
	require.ErrorAs(t, err, &filterErr)
	assert.Contains(t, filterErr.Message, ErrMsgFilterTooManyArgs)

	_, err = r.Apply("broken", "x", []any{1, 2, 3})
	require.ErrorAs(t, err, &filterErr)
	assert.ErrorIs(t, err, cause)
}

func TestBuiltinFilters(t *testing.T) {
	r := newTestFilters()

	tests := []struct {
		filter   string
		input    any
		args     []any
		expected any
	}{
		{filter: FilterNameUpcase, input: "abc", expected: "ABC"},
		{filter: FilterNameDowncase, input: "AbC", expected: "abc"},
		{filter: FilterNameSize, input: "héllo", expected: 5},
		{filter: FilterNameSize, input: []any{1, 2}, expected: 2},
		{filter: FilterNameSize, input: map[string]any{"a": 1}, expected: 1},
		{filter: FilterNameSize, input: 42, expected: 0},
		{filter: FilterNameDefault, input: nil, args: []any{"d"}, expected: "d"},
		{filter: FilterNameDefault, input: false, args: []any{"d"}, expected: "d"},
		{filter: FilterNameDefault, input: "", args: []any{"d"}, expected: "d"},
		{filter: FilterNameDefault, input: "v", args: []any{"d"}, expected: "v"},
		{filter: FilterNameDefault, input: 0, args: []any{"d"}, expected: 0},
		{filter: FilterNameAppend, input: "a", args: []any{1}, expected: "a1"},
		{filter: FilterNamePrepend, input: "a", args: []any{"b"}, expected: "ba"},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			result, err := r.Apply(tt.filter, tt.input, tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	assert.Equal(t, []string{"append", "default", "downcase", "prepend", "size", "upcase"}, r.List())
}
