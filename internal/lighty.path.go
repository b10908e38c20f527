package internal

import (
	"reflect"
	"strconv"
	"strings"
)

// SplitPath splits a dotted path into its segments
func SplitPath(path string) []string {
	return strings.Split(path, PathSeparator)
}

// Field looks up one path segment on obj. Maps are indexed by key, structs by
// exported field (exact name first, then case-insensitive), zero-argument
// methods are called, and slices, arrays and strings are indexed when the
// segment is an integer.
func Field(obj any, name string) (any, bool) {
	if obj == nil {
		return nil, false
	}

	// Fast paths for the shapes decoded JSON/YAML produces
	switch v := obj.(type) {
	case map[string]any:
		val, ok := v[name]
		return val, ok
	case map[string]string:
		val, ok := v[name]
		return val, ok
	}

	rv := reflect.ValueOf(obj)
	if val, ok := callMethod(rv, name); ok {
		return val, true
	}

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		return mapIndex(rv, name)
	case reflect.Struct:
		return structField(rv, name)
	case reflect.Slice, reflect.Array, reflect.String:
		return sequenceIndex(rv, name)
	}
	return nil, false
}

// Resolve walks segments starting at root. On failure it returns the index of
// the segment that could not be resolved.
func Resolve(root any, segments []string) (any, int, bool) {
	current := root
	for i, segment := range segments {
		next, ok := Field(current, segment)
		if !ok {
			return nil, i, false
		}
		current = next
	}
	return current, len(segments), true
}

func mapIndex(rv reflect.Value, name string) (any, bool) {
	keyType := rv.Type().Key()
	var key reflect.Value
	switch keyType.Kind() {
	case reflect.String:
		key = reflect.ValueOf(name).Convert(keyType)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(name, IntBase10, 64)
		if err != nil {
			return nil, false
		}
		key = reflect.New(keyType).Elem()
		key.SetInt(n)
	default:
		return nil, false
	}
	val := rv.MapIndex(key)
	if !val.IsValid() {
		return nil, false
	}
	return val.Interface(), true
}

func structField(rv reflect.Value, name string) (any, bool) {
	typ := rv.Type()
	if f, ok := typ.FieldByName(name); ok && f.IsExported() {
		return rv.FieldByIndex(f.Index).Interface(), true
	}
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.IsExported() && strings.EqualFold(f.Name, name) {
			return rv.Field(i).Interface(), true
		}
	}
	return nil, false
}

func sequenceIndex(rv reflect.Value, name string) (any, bool) {
	idx, err := strconv.Atoi(name)
	if err != nil {
		return nil, false
	}
	if rv.Kind() == reflect.String {
		runes := []rune(rv.String())
		if idx, ok := normalizeIndex(idx, len(runes)); ok {
			return string(runes[idx]), true
		}
		return nil, false
	}
	if idx, ok := normalizeIndex(idx, rv.Len()); ok {
		return rv.Index(idx).Interface(), true
	}
	return nil, false
}

// normalizeIndex maps a negative index from the end and checks bounds
func normalizeIndex(idx, length int) (int, bool) {
	if idx < 0 {
		idx += length
	}
	return idx, idx >= 0 && idx < length
}

// callMethod calls an exported zero-argument method returning one value, or
// a value and an error (a non-nil error counts as not found).
func callMethod(rv reflect.Value, name string) (any, bool) {
	if !rv.IsValid() || name == StringValueEmpty {
		return nil, false
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	method := rv.MethodByName(name)
	if !method.IsValid() {
		method = rv.MethodByName(strings.ToUpper(name[:1]) + name[1:])
	}
	if !method.IsValid() {
		return nil, false
	}
	mt := method.Type()
	if mt.NumIn() != 0 {
		return nil, false
	}
	switch mt.NumOut() {
	case 1:
		return method.Call(nil)[0].Interface(), true
	case 2:
		if !mt.Out(1).Implements(errorType) {
			return nil, false
		}
		out := method.Call(nil)
		if !out[1].IsNil() {
			return nil, false
		}
		return out[0].Interface(), true
	}
	return nil, false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()
