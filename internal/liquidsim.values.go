package internal

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Numeric formatting constants
const (
	FloatFormatFlag   = 'f'
	FloatPrecisionAll = -1
	FloatBitSize64    = 64
	IntBase10         = 10
)

// Pseudo-properties resolved on collections and strings
const (
	PropertySize  = "size"
	PropertyFirst = "first"
	PropertyLast  = "last"
)

// ToLiquidString renders a value the way output tags print it.
// nil renders as the empty string and arrays are concatenated.
func ToLiquidString(v any) string {
	if v == nil {
		return StringValueEmpty
	}
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return StringValueTrue
		}
		return StringValueFalse
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, IntBase10)
	case int32:
		return strconv.FormatInt(int64(val), IntBase10)
	case uint:
		return strconv.FormatUint(uint64(val), IntBase10)
	case uint64:
		return strconv.FormatUint(val, IntBase10)
	case float64:
		return strconv.FormatFloat(val, FloatFormatFlag, FloatPrecisionAll, FloatBitSize64)
	case float32:
		return strconv.FormatFloat(float64(val), FloatFormatFlag, FloatPrecisionAll, 32)
	case []any:
		var sb strings.Builder
		for _, item := range val {
			sb.WriteString(ToLiquidString(item))
		}
		return sb.String()
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		var sb strings.Builder
		for i := 0; i < rv.Len(); i++ {
			sb.WriteString(ToLiquidString(rv.Index(i).Interface()))
		}
		return sb.String()
	}
	return fmt.Sprint(v)
}

// IsTruthy applies Liquid truthiness: only nil and false are falsy
func IsTruthy(v any) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// ToInt converts numeric values and numeric strings to int
func ToInt(v any) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	case int32:
		return int(val), true
	case float64:
		return int(val), true
	case float32:
		return int(val), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// toNumber attempts to convert a value to float64
func toNumber(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case int32:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float64:
		return val, true
	case float32:
		return float64(val), true
	default:
		return 0, false
	}
}

// Size returns the Liquid size of a value: string length, collection length, else 0
func Size(v any) int {
	if v == nil {
		return 0
	}
	if s, ok := v.(string); ok {
		return len([]rune(s))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	default:
		return 0
	}
}

// LookupProperty resolves target[key]. Missing keys and out-of-range indexes
// resolve to nil. Dotted access additionally supports size, first and last.
func LookupProperty(target, key any, dotted bool) any {
	if target == nil {
		return nil
	}

	rv := reflect.ValueOf(target)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			name, ok := key.(string)
			if !ok {
				name = ToLiquidString(key)
			}
			val := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
			if val.IsValid() {
				return val.Interface()
			}
		}
		if dotted && key == PropertySize {
			return rv.Len()
		}
		return nil

	case reflect.Slice, reflect.Array:
		if idx, ok := key.(int); ok {
			if idx < 0 {
				idx += rv.Len()
			}
			if idx < 0 || idx >= rv.Len() {
				return nil
			}
			return rv.Index(idx).Interface()
		}
		if !dotted {
			return nil
		}
		switch key {
		case PropertySize:
			return rv.Len()
		case PropertyFirst:
			if rv.Len() == 0 {
				return nil
			}
			return rv.Index(0).Interface()
		case PropertyLast:
			if rv.Len() == 0 {
				return nil
			}
			return rv.Index(rv.Len() - 1).Interface()
		}
		return nil

	case reflect.String:
		if dotted && key == PropertySize {
			return len([]rune(rv.String()))
		}
		return nil

	default:
		return nil
	}
}

// CompareEqual checks Liquid equality. Numbers compare by value across types.
func CompareEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	aNum, aIsNum := toNumber(a)
	bNum, bIsNum := toNumber(b)
	if aIsNum && bIsNum {
		return aNum == bNum
	}

	aStr, aIsStr := a.(string)
	bStr, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return aStr == bStr
	}

	aBool, aIsBool := a.(bool)
	bBool, bIsBool := b.(bool)
	if aIsBool && bIsBool {
		return aBool == bBool
	}

	return reflect.DeepEqual(a, b)
}

// compareOrder returns -1, 0 or 1 for ordered comparison of numbers or strings
func compareOrder(a, b any) (int, error) {
	aNum, aIsNum := toNumber(a)
	bNum, bIsNum := toNumber(b)
	if aIsNum && bIsNum {
		switch {
		case aNum < bNum:
			return -1, nil
		case aNum > bNum:
			return 1, nil
		default:
			return 0, nil
		}
	}

	aStr, aIsStr := a.(string)
	bStr, bIsStr := b.(string)
	if aIsStr && bIsStr {
		return strings.Compare(aStr, bStr), nil
	}

	return 0, NewExprEvalError(ErrMsgExprTypeMismatch, fmt.Sprintf("cannot compare %T and %T", a, b))
}

// Contains checks substring membership for strings and element membership
// for collections. Maps are checked for a matching key.
func Contains(haystack, needle any) bool {
	if haystack == nil {
		return false
	}
	if s, ok := haystack.(string); ok {
		return strings.Contains(s, ToLiquidString(needle))
	}

	rv := reflect.ValueOf(haystack)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if CompareEqual(rv.Index(i).Interface(), needle) {
				return true
			}
		}
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			name, ok := needle.(string)
			if ok && rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key())).IsValid() {
				return true
			}
		}
	}
	return false
}
