package liquidsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForloopMetadata(t *testing.T) {
	tests := []struct {
		name     string
		index0   int
		length   int
		expected ForloopMetadata
	}{
		{name: "single", index0: 0, length: 1, expected: ForloopMetadata{Index: 1, Index0: 0, First: true, Last: true, Length: 1, Rindex: 1, Rindex0: 0}},
		{name: "first of three", index0: 0, length: 3, expected: ForloopMetadata{Index: 1, Index0: 0, First: true, Last: false, Length: 3, Rindex: 3, Rindex0: 2}},
		{name: "middle of three", index0: 1, length: 3, expected: ForloopMetadata{Index: 2, Index0: 1, First: false, Last: false, Length: 3, Rindex: 2, Rindex0: 1}},
		{name: "last of three", index0: 2, length: 3, expected: ForloopMetadata{Index: 3, Index0: 2, First: false, Last: true, Length: 3, Rindex: 1, Rindex0: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewForloopMetadata(tt.index0, tt.length))
		})
	}
}

func TestForloopMetadata_Invariants(t *testing.T) {
	for n := 1; n <= 8; n++ {
		for p := 0; p < n; p++ {
			m := NewForloopMetadata(p, n)
			assert.Equal(t, m.Index0+1, m.Index)
			assert.Equal(t, m.Rindex0+1, m.Rindex)
			assert.Equal(t, n, m.Index+m.Rindex0)
			assert.Equal(t, m.Index0 == 0, m.First)
			assert.Equal(t, m.Rindex0 == 0, m.Last)
		}
	}
}

func TestForloopMetadata_ToMap(t *testing.T) {
	m := NewForloopMetadata(1, 3).ToMap()
	assert.Equal(t, map[string]any{
		"index":   2,
		"index0":  1,
		"first":   false,
		"last":    false,
		"length":  3,
		"rindex":  2,
		"rindex0": 1,
	}, m)
}

func TestLoopIterator(t *testing.T) {
	it, err := NewLoopIterator([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, it.Len())

	elem, meta, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "a", elem)
	assert.True(t, meta.First)

	elem, meta, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, "b", elem)
	assert.True(t, meta.Last)

	_, _, ok = it.Next()
	assert.False(t, ok)
	_, _, ok = it.Next()
	assert.False(t, ok)
}

func TestLoopIterator_Snapshot(t *testing.T) {
	items := []any{1, 2}
	it, err := NewLoopIterator(items)
	require.NoError(t, err)
	items[0] = 99

	elem, _, _ := it.Next()
	assert.Equal(t, 1, elem)
}

func TestLoopIterator_Collections(t *testing.T) {
	tests := []struct {
		name       string
		collection any
		expected   []any
	}{
		{name: "empty", collection: []any{}, expected: []any{}},
		{name: "ints", collection: []int{3, 1}, expected: []any{3, 1}},
		{name: "array", collection: [3]string{"x", "y", "z"}, expected: []any{"x", "y", "z"}},
		{name: "map", collection: map[string]int{"b": 2, "a": 1}, expected: []any{[]any{"a", 1}, []any{"b", 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it, err := NewLoopIterator(tt.collection)
			require.NoError(t, err)

			got := []any{}
			for elem, _, ok := it.Next(); ok; elem, _, ok = it.Next() {
				got = append(got, elem)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLoopIterator_NotIterable(t *testing.T) {
	for _, value := range []any{nil, "abc", 42, 3.5, true, struct{}{}} {
		_, err := NewLoopIterator(value)
		require.Error(t, err)
		assert.True(t, IsTypeError(err), "%v", value)
		assert.Contains(t, err.Error(), ErrMsgNotIterable)
	}
}
