package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtin(t *testing.T, name string) BuiltinFilter {
	t.Helper()
	for _, f := range Builtins() {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("builtin filter %q not found", name)
	return BuiltinFilter{}
}

func apply(t *testing.T, name string, value any, args ...any) (any, error) {
	t.Helper()
	return builtin(t, name).Fn(value, args)
}

func TestBuiltins_Table(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Builtins() {
		assert.False(t, seen[f.Name], "duplicate filter %s", f.Name)
		seen[f.Name] = true
		assert.NotNil(t, f.Fn, f.Name)
		if f.MaxArgs >= 0 {
			assert.LessOrEqual(t, f.MinArgs, f.MaxArgs, f.Name)
		}
	}
	assert.Len(t, seen, 18)
}

func TestFilter_Sum(t *testing.T) {
	result, err := apply(t, FilterNameSum, 1, int64(2), 3.5)
	require.NoError(t, err)
	assert.Equal(t, 6.5, result)

	result, err = apply(t, FilterNameSum, "4")
	require.NoError(t, err)
	assert.Equal(t, 4.0, result)

	_, err = apply(t, FilterNameSum, 1, "x")
	var fErr *FilterError
	require.True(t, errors.As(err, &fErr))
	assert.Equal(t, ArgIndexFirst, fErr.ArgIndex)

	_, err = apply(t, FilterNameSum, "x")
	require.True(t, errors.As(err, &fErr))
	assert.Equal(t, ArgIndexValue, fErr.ArgIndex)
}

func TestFilter_FloatFormat(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		args     []any
		expected string
	}{
		{"default", "12.45", nil, "12"},
		{"one digit", "12.45", []any{int64(1)}, "12.4"},
		{"padded", "12.45", []any{int64(4)}, "12.4500"},
		{"negative strips zeros", "12.45", []any{int64(-4)}, "12.45"},
		{"negative whole", "12.00", []any{int64(-2)}, "12"},
		{"float value", 3.14159, []any{int64(2)}, "3.14"},
		{"negative zero", "-0.04", []any{int64(1)}, "0.0"},
		{"string digits", "1.5", []any{"2"}, "1.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := apply(t, FilterNameFloatFormat, tt.value, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	_, err := apply(t, FilterNameFloatFormat, "abc")
	assert.Error(t, err)
	_, err = apply(t, FilterNameFloatFormat, "1.5", "x")
	assert.Error(t, err)
}

func TestFilter_FloatRound(t *testing.T) {
	result, err := apply(t, FilterNameFloatRound, "12.45")
	require.NoError(t, err)
	assert.Equal(t, "12", result)

	result, err = apply(t, FilterNameFloatRound, "12.45", int64(1))
	require.NoError(t, err)
	assert.Equal(t, "12.5", result)

	result, err = apply(t, FilterNameFloatRound, 2.675, int64(2))
	require.NoError(t, err)
	assert.Equal(t, "2.68", result)
}

func TestFilter_Strings(t *testing.T) {
	tests := []struct {
		name     string
		filter   string
		value    any
		args     []any
		expected any
	}{
		{"upper", FilterNameUpper, "hello", nil, "HELLO"},
		{"lower", FilterNameLower, "HeLLo", nil, "hello"},
		{"capfirst", FilterNameCapFirst, "élan vital", nil, "Élan vital"},
		{"capfirst empty", FilterNameCapFirst, "", nil, ""},
		{"addslashes", FilterNameAddSlashes, `I'm "here" \o/`, nil, `I\'m \"here\" \\o/`},
		{"stringformat float", FilterNameStringFormat, 3.14159, []any{".2f"}, "3.14"},
		{"stringformat numeric string", FilterNameStringFormat, "2.5", []any{".1f"}, "2.5"},
		{"stringformat int verb", FilterNameStringFormat, 7.0, []any{"03d"}, "007"},
		{"stringformat string to int", FilterNameStringFormat, "255", []any{"x"}, "ff"},
		{"stringformat string", FilterNameStringFormat, "go", []any{"5s"}, "   go"},
		{"striptags", FilterNameStripTags, "<p>Hello <b>World</b></p>", nil, "Hello World"},
		{"upper non string", FilterNameUpper, true, nil, "TRUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := apply(t, tt.filter, tt.value, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	_, err := apply(t, FilterNameStringFormat, "x", "")
	assert.Error(t, err)

	for _, format := range []string{"*d", "d%d", "z"} {
		_, err = apply(t, FilterNameStringFormat, 7, format)
		var filterErr *FilterError
		require.ErrorAs(t, err, &filterErr, format)
		assert.Equal(t, ErrMsgFilterBadFormat, filterErr.Message)
	}

	// fmt markers already in the value are not verb errors
	result, err := apply(t, FilterNameStringFormat, "50%!", "s")
	require.NoError(t, err)
	assert.Equal(t, "50%!", result)
}

func TestFilter_Collections(t *testing.T) {
	list := []any{"b", "c", "a"}
	mapping := map[string]any{"y": 2, "x": 1}

	tests := []struct {
		name     string
		filter   string
		value    any
		args     []any
		expected any
	}{
		{"first", FilterNameFirst, list, nil, "b"},
		{"last", FilterNameLast, list, nil, "a"},
		{"first of string", FilterNameFirst, "xyz", nil, "x"},
		{"first of map", FilterNameFirst, mapping, nil, 1},
		{"get", FilterNameGet, list, []any{int64(1)}, "c"},
		{"get negative", FilterNameGet, list, []any{int64(-1)}, "a"},
		{"get map by sorted key", FilterNameGet, mapping, []any{int64(1)}, 2},
		{"join", FilterNameJoin, []int{1, 2, 3}, []any{", "}, "1, 2, 3"},
		{"length", FilterNameLength, list, nil, 3},
		{"length string", FilterNameLength, "héllo", nil, 5},
		{"length map", FilterNameLength, mapping, nil, 2},
		{"sort", FilterNameSort, list, nil, []any{"a", "b", "c"}},
		{"sort reverse", FilterNameSort, []any{2, 10, 1}, []any{"reverse"}, []any{10, 2, 1}},
		{"sort map keys", FilterNameSort, mapping, nil, []any{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := apply(t, tt.filter, tt.value, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}

	// sort returns a copy
	assert.Equal(t, []any{"b", "c", "a"}, list)
}

func TestFilter_CollectionErrors(t *testing.T) {
	tests := []struct {
		name    string
		filter  string
		value   any
		args    []any
		message string
	}{
		{"first empty", FilterNameFirst, []any{}, nil, ErrMsgFilterEmptySequence},
		{"last not sequence", FilterNameLast, 42, nil, ErrMsgFilterExpectedSequence},
		{"get out of range", FilterNameGet, []any{1}, []any{int64(4)}, ErrMsgFilterIndexRange},
		{"get bad index", FilterNameGet, []any{1}, []any{"x"}, ErrMsgFilterExpectedInteger},
		{"join not sequence", FilterNameJoin, 1, []any{","}, ErrMsgFilterExpectedSequence},
		{"length not sequence", FilterNameLength, 1.5, nil, ErrMsgFilterExpectedSequence},
		{"random empty", FilterNameRandom, []any{}, nil, ErrMsgFilterEmptySequence},
		{"sort not sequence", FilterNameSort, 1, nil, ErrMsgFilterExpectedSequence},
		{"dictsort missing key", FilterNameDictSort, []any{map[string]any{"a": 1}}, []any{"b"}, ErrMsgFilterMissingKey},
		{"date not time", FilterNameDate, 12, []any{"%Y"}, ErrMsgFilterExpectedTime},
		{"date bad string", FilterNameDate, "yesterday", []any{"%Y"}, ErrMsgFilterExpectedTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := apply(t, tt.filter, tt.value, tt.args...)
			require.Error(t, err)

			var fErr *FilterError
			require.True(t, errors.As(err, &fErr))
			assert.Equal(t, tt.message, fErr.Message)
			assert.Equal(t, tt.filter, fErr.Filter)
		})
	}
}

func TestFilter_Random(t *testing.T) {
	list := []any{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		result, err := apply(t, FilterNameRandom, list)
		require.NoError(t, err)
		assert.Contains(t, list, result)
	}
}

func TestFilter_SortDescendingIsStable(t *testing.T) {
	result, err := apply(t, FilterNameSort, []any{1, 2, 1.0}, "desc")
	require.NoError(t, err)
	assert.Equal(t, []any{2, 1, 1.0}, result)
}

func TestFilter_DictSort(t *testing.T) {
	type person struct {
		Name string
		Age  int
	}
	people := []any{
		map[string]any{"name": "Carol", "age": 35},
		map[string]any{"name": "alice", "age": 30},
		map[string]any{"name": "Bob", "age": 30},
	}

	result, err := apply(t, FilterNameDictSort, people, "age")
	require.NoError(t, err)
	sorted := result.([]any)
	names := []any{
		sorted[0].(map[string]any)["name"],
		sorted[1].(map[string]any)["name"],
		sorted[2].(map[string]any)["name"],
	}
	// stable: equal ages keep input order
	assert.Equal(t, []any{"alice", "Bob", "Carol"}, names)

	// descending keeps equal ages in input order too
	result, err = apply(t, FilterNameDictSort, people, "age", "desc")
	require.NoError(t, err)
	sorted = result.([]any)
	names = []any{
		sorted[0].(map[string]any)["name"],
		sorted[1].(map[string]any)["name"],
		sorted[2].(map[string]any)["name"],
	}
	assert.Equal(t, []any{"Carol", "alice", "Bob"}, names)

	result, err = apply(t, FilterNameDictSort, []person{{"Zed", 1}, {"Amy", 2}}, "name", "desc")
	require.NoError(t, err)
	assert.Equal(t, []any{person{"Zed", 1}, person{"Amy", 2}}, result)
}

func TestFilter_Date(t *testing.T) {
	ts := time.Date(2023, time.December, 24, 18, 30, 0, 0, time.UTC)

	result, err := apply(t, FilterNameDate, ts, "%d/%m/%Y %H:%M")
	require.NoError(t, err)
	assert.Equal(t, "24/12/2023 18:30", result)

	result, err = apply(t, FilterNameDate, &ts, "%Y")
	require.NoError(t, err)
	assert.Equal(t, "2023", result)

	result, err = apply(t, FilterNameDate, "2023-12-24T18:30:00Z", "%B %d")
	require.NoError(t, err)
	assert.Equal(t, "December 24", result)

	var nilTime *time.Time
	_, err = apply(t, FilterNameDate, nilTime, "%Y")
	assert.Error(t, err)
}

func TestFilterError_Error(t *testing.T) {
	assert.Equal(t, "expected number: sum (value)",
		NewFilterError(ErrMsgFilterExpectedNumber, FilterNameSum, ArgIndexValue).Error())
	assert.Equal(t, "expected integer: get (argument 0)",
		NewFilterError(ErrMsgFilterExpectedInteger, FilterNameGet, ArgIndexFirst).Error())
}
