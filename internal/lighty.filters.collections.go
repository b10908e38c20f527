package internal

import (
	"math/rand"
	"sort"
	"strings"
	"time"
)

// items returns the values of a sequence, or of a mapping in sorted key order
func items(filter string, value any) ([]any, error) {
	if values, ok := SortedMapValues(value); ok {
		return values, nil
	}
	if seq, ok := Iterate(value); ok {
		return seq, nil
	}
	return nil, NewFilterError(ErrMsgFilterExpectedSequence, filter, ArgIndexValue)
}

func itemAt(filter string, value any, index int) (any, error) {
	seq, err := items(filter, value)
	if err != nil {
		return nil, err
	}
	if len(seq) == 0 {
		return nil, NewFilterError(ErrMsgFilterEmptySequence, filter, ArgIndexValue)
	}
	if index < 0 {
		index += len(seq)
	}
	if index < 0 || index >= len(seq) {
		return nil, NewFilterError(ErrMsgFilterIndexRange, filter, ArgIndexFirst)
	}
	return seq[index], nil
}

// sortDirection is -1 when an order argument is given, 1 otherwise.
// Any non-empty order argument sorts descending; equal items keep their order.
func sortDirection(args []any, index int) int {
	if len(args) > index && ToString(args[index]) != StringValueEmpty {
		return -1
	}
	return 1
}

// filterGet returns the item at index; mappings are indexed by sorted key
func filterGet(value any, args []any) (any, error) {
	index, ok := ToInt(args[ArgIndexFirst])
	if !ok {
		return nil, NewFilterError(ErrMsgFilterExpectedInteger, FilterNameGet, ArgIndexFirst)
	}
	return itemAt(FilterNameGet, value, index)
}

func filterFirst(value any, _ []any) (any, error) {
	return itemAt(FilterNameFirst, value, 0)
}

func filterLast(value any, _ []any) (any, error) {
	return itemAt(FilterNameLast, value, -1)
}

// filterJoin joins the items of a sequence with the separator
func filterJoin(value any, args []any) (any, error) {
	seq, ok := Iterate(value)
	if !ok {
		return nil, NewFilterError(ErrMsgFilterExpectedSequence, FilterNameJoin, ArgIndexValue)
	}
	parts := make([]string, len(seq))
	for i, item := range seq {
		parts[i] = ToString(item)
	}
	return strings.Join(parts, ToString(args[ArgIndexFirst])), nil
}

func filterLength(value any, _ []any) (any, error) {
	n, ok := Length(value)
	if !ok {
		return nil, NewFilterError(ErrMsgFilterExpectedSequence, FilterNameLength, ArgIndexValue)
	}
	return n, nil
}

func filterRandom(value any, _ []any) (any, error) {
	n, ok := Length(value)
	if !ok {
		return nil, NewFilterError(ErrMsgFilterExpectedSequence, FilterNameRandom, ArgIndexValue)
	}
	if n == 0 {
		return nil, NewFilterError(ErrMsgFilterEmptySequence, FilterNameRandom, ArgIndexValue)
	}
	return itemAt(FilterNameRandom, value, rand.Intn(n))
}

// filterSort returns a sorted copy; any order argument sorts descending
func filterSort(value any, args []any) (any, error) {
	seq, ok := Iterate(value)
	if !ok {
		return nil, NewFilterError(ErrMsgFilterExpectedSequence, FilterNameSort, ArgIndexValue)
	}
	sorted := append([]any(nil), seq...)
	dir := sortDirection(args, ArgIndexFirst)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dir*Compare(sorted[i], sorted[j]) < 0
	})
	return sorted, nil
}

// filterDictSort sorts a sequence of mappings or structs by one key
func filterDictSort(value any, args []any) (any, error) {
	seq, ok := Iterate(value)
	if !ok {
		return nil, NewFilterError(ErrMsgFilterExpectedSequence, FilterNameDictSort, ArgIndexValue)
	}
	key := ToString(args[ArgIndexFirst])
	keys := make([]any, len(seq))
	for i, item := range seq {
		k, ok := Field(item, key)
		if !ok {
			return nil, NewFilterError(ErrMsgFilterMissingKey, FilterNameDictSort, ArgIndexFirst)
		}
		keys[i] = k
	}

	order := make([]int, len(seq))
	for i := range order {
		order[i] = i
	}
	dir := sortDirection(args, ArgIndexSecond)
	sort.SliceStable(order, func(a, b int) bool {
		return dir*Compare(keys[order[a]], keys[order[b]]) < 0
	})
	sorted := make([]any, len(seq))
	for i, idx := range order {
		sorted[i] = seq[idx]
	}
	return sorted, nil
}

// filterDate formats a time with a strftime format string
func filterDate(value any, args []any) (any, error) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return nil, NewFilterError(ErrMsgFilterExpectedTime, FilterNameDate, ArgIndexValue)
		}
		t = *v
	case string:
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, NewFilterError(ErrMsgFilterExpectedTime, FilterNameDate, ArgIndexValue)
		}
		t = parsed
	default:
		return nil, NewFilterError(ErrMsgFilterExpectedTime, FilterNameDate, ArgIndexValue)
	}
	return Strftime(t, ToString(args[ArgIndexFirst])), nil
}
