package liquidsim

import (
	"fmt"
	"reflect"
	"sort"
)

// ForloopMetadata describes an element's position within a render loop.
// A fresh value is built for every element.
type ForloopMetadata struct {
	Index   int
	Index0  int
	First   bool
	Last    bool
	Length  int
	Rindex  int
	Rindex0 int
}

// NewForloopMetadata computes the metadata for zero-based position index0
// in a collection of the given length.
func NewForloopMetadata(index0, length int) ForloopMetadata {
	return ForloopMetadata{
		Index:   index0 + 1,
		Index0:  index0,
		First:   index0 == 0,
		Last:    index0 == length-1,
		Length:  length,
		Rindex:  length - index0,
		Rindex0: length - index0 - 1,
	}
}

// ToMap returns the metadata as templates see it under `forloop`.
func (m ForloopMetadata) ToMap() map[string]any {
	return map[string]any{
		ForloopFieldIndex:   m.Index,
		ForloopFieldIndex0:  m.Index0,
		ForloopFieldFirst:   m.First,
		ForloopFieldLast:    m.Last,
		ForloopFieldLength:  m.Length,
		ForloopFieldRindex:  m.Rindex,
		ForloopFieldRindex0: m.Rindex0,
	}
}

// LoopIterator yields the elements of a collection once, in order, each
// paired with its ForloopMetadata. It cannot be restarted.
type LoopIterator struct {
	items []any
	next  int
}

// NewLoopIterator snapshots collection for iteration. Slices and arrays keep
// their order; maps yield [key, value] pairs sorted by key. Anything else,
// including nil and strings, is a TypeError.
func NewLoopIterator(collection any) (*LoopIterator, error) {
	items, ok := collectionItems(collection)
	if !ok {
		return nil, NewTypeError(ErrMsgNotIterable, TagNameRender, collection)
	}
	return &LoopIterator{items: items}, nil
}

// Len returns the number of elements in the collection.
func (it *LoopIterator) Len() int {
	return len(it.items)
}

// Next returns the next element and its metadata. ok is false once the
// collection is exhausted.
func (it *LoopIterator) Next() (element any, meta ForloopMetadata, ok bool) {
	if it.next >= len(it.items) {
		return nil, ForloopMetadata{}, false
	}
	index0 := it.next
	it.next++
	return it.items[index0], NewForloopMetadata(index0, len(it.items)), true
}

func collectionItems(collection any) ([]any, bool) {
	switch c := collection.(type) {
	case nil, string:
		return nil, false
	case []any:
		items := make([]any, len(c))
		copy(items, c)
		return items, true
	}

	rv := reflect.ValueOf(collection)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, true
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		items := make([]any, len(keys))
		for i, key := range keys {
			items[i] = []any{key.Interface(), rv.MapIndex(key).Interface()}
		}
		return items, true
	}
	return nil, false
}
