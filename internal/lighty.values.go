package internal

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// ToString converts any value to its output representation
func ToString(v any) string {
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
	case float64:
		return strconv.FormatFloat(val, FloatFormatFlag, FloatPrecisionAll, FloatBitSize64)
	case float32:
		return strconv.FormatFloat(float64(val), FloatFormatFlag, FloatPrecisionAll, 32)
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// IsTruthy determines the truthiness of a value
// Truthiness rules:
// - nil -> false
// - bool -> value
// - string -> len(s) > 0
// - numbers -> n != 0
// - slice/array/map -> len(x) > 0
// - nil pointers and interfaces -> false
func IsTruthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return len(val) > 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String, reflect.Chan:
		return rv.Len() > 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return !rv.IsNil()
	default:
		return true
	}
}

// ToFloat converts numbers and numeric strings to float64
func ToFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), FloatBitSize64)
		return f, err == nil
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// ToInt converts numbers and numeric strings to int
func ToInt(v any) (int, bool) {
	if s, ok := v.(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		return n, err == nil
	}
	f, ok := ToFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Iterate expands an iterable value into its items. Maps yield their keys in
// sorted order, strings yield their characters.
func Iterate(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case string:
		items := make([]any, 0, len(val))
		for _, r := range val {
			items = append(items, string(r))
		}
		return items, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, true
	case reflect.Map:
		keys := rv.MapKeys()
		items := make([]any, len(keys))
		for i, k := range keys {
			items[i] = k.Interface()
		}
		SortValues(items)
		return items, true
	}
	return nil, false
}

// SortedMapValues returns the values of a map ordered by their sorted keys
func SortedMapValues(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	keys, _ := Iterate(v)
	values := make([]any, len(keys))
	for i, k := range keys {
		values[i] = rv.MapIndex(reflect.ValueOf(k)).Interface()
	}
	return values, true
}

// Length returns the length of a string, slice, array or map
func Length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return len([]rune(s)), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	return 0, false
}

// Compare orders two values: numerically when both are numbers, otherwise by
// their string representation.
func Compare(a, b any) int {
	fa, okA := ToFloat(a)
	fb, okB := ToFloat(b)
	_, strA := a.(string)
	_, strB := b.(string)
	if okA && okB && !strA && !strB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(ToString(a), ToString(b))
}

// SortValues sorts items in place using Compare
func SortValues(items []any) {
	sort.SliceStable(items, func(i, j int) bool {
		return Compare(items[i], items[j]) < 0
	})
}

// TypeName returns a readable type name for error messages
func TypeName(v any) string {
	if v == nil {
		return StringValueNil
	}
	return reflect.TypeOf(v).String()
}
