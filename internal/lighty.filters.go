package internal

import "fmt"

// FilterFn is the signature of a filter implementation: the piped value
// followed by the resolved filter arguments.
type FilterFn func(value any, args []any) (any, error)

// BuiltinFilter describes one built-in filter
type BuiltinFilter struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 for variadic
	Fn      FilterFn
}

// Built-in filter names
const (
	FilterNameSum          = "sum"
	FilterNameFloatFormat  = "floatformat"
	FilterNameFloatRound   = "floatround"
	FilterNameAddSlashes   = "addslashes"
	FilterNameCapFirst     = "capfirst"
	FilterNameStringFormat = "stringformat"
	FilterNameUpper        = "upper"
	FilterNameLower        = "lower"
	FilterNameStripTags    = "striptags"
	FilterNameDictSort     = "dictsort"
	FilterNameGet          = "get"
	FilterNameFirst        = "first"
	FilterNameJoin         = "join"
	FilterNameLast         = "last"
	FilterNameLength       = "length"
	FilterNameRandom       = "random"
	FilterNameSort         = "sort"
	FilterNameDate         = "date"
)

// Argument index constants for error reporting
const (
	ArgIndexValue  = -1
	ArgIndexFirst  = 0
	ArgIndexSecond = 1
)

// Filter error messages
const (
	ErrMsgFilterExpectedNumber   = "expected number"
	ErrMsgFilterExpectedInteger  = "expected integer"
	ErrMsgFilterExpectedString   = "expected string"
	ErrMsgFilterExpectedSequence = "expected sequence or mapping"
	ErrMsgFilterExpectedTime     = "expected time value"
	ErrMsgFilterIndexRange       = "index out of range"
	ErrMsgFilterEmptySequence    = "empty sequence"
	ErrMsgFilterMissingKey       = "item has no key"
	ErrMsgFilterBadFormat        = "invalid format verb"
)

// fmtErrorMarker prefixes the text fmt writes for a bad verb, width or operand
const fmtErrorMarker = "%!"

// Builtins returns the built-in filter table
func Builtins() []BuiltinFilter {
	return []BuiltinFilter{
		// numbers
		{Name: FilterNameSum, MinArgs: 0, MaxArgs: -1, Fn: filterSum},
		{Name: FilterNameFloatFormat, MinArgs: 0, MaxArgs: 1, Fn: filterFloatFormat},
		{Name: FilterNameFloatRound, MinArgs: 0, MaxArgs: 1, Fn: filterFloatRound},

		// strings
		{Name: FilterNameAddSlashes, MinArgs: 0, MaxArgs: 0, Fn: filterAddSlashes},
		{Name: FilterNameCapFirst, MinArgs: 0, MaxArgs: 0, Fn: filterCapFirst},
		{Name: FilterNameStringFormat, MinArgs: 1, MaxArgs: 1, Fn: filterStringFormat},
		{Name: FilterNameUpper, MinArgs: 0, MaxArgs: 0, Fn: filterUpper},
		{Name: FilterNameLower, MinArgs: 0, MaxArgs: 0, Fn: filterLower},
		{Name: FilterNameStripTags, MinArgs: 0, MaxArgs: 0, Fn: filterStripTags},

		// collections
		{Name: FilterNameDictSort, MinArgs: 1, MaxArgs: 2, Fn: filterDictSort},
		{Name: FilterNameGet, MinArgs: 1, MaxArgs: 1, Fn: filterGet},
		{Name: FilterNameFirst, MinArgs: 0, MaxArgs: 0, Fn: filterFirst},
		{Name: FilterNameJoin, MinArgs: 1, MaxArgs: 1, Fn: filterJoin},
		{Name: FilterNameLast, MinArgs: 0, MaxArgs: 0, Fn: filterLast},
		{Name: FilterNameLength, MinArgs: 0, MaxArgs: 0, Fn: filterLength},
		{Name: FilterNameRandom, MinArgs: 0, MaxArgs: 0, Fn: filterRandom},
		{Name: FilterNameSort, MinArgs: 0, MaxArgs: 1, Fn: filterSort},

		// dates
		{Name: FilterNameDate, MinArgs: 1, MaxArgs: 1, Fn: filterDate},
	}
}

// FilterError represents a filter failure on a specific argument
type FilterError struct {
	Message  string
	Filter   string
	ArgIndex int // ArgIndexValue for the piped value
}

// NewFilterError creates a new filter error
func NewFilterError(message, filter string, argIndex int) *FilterError {
	return &FilterError{
		Message:  message,
		Filter:   filter,
		ArgIndex: argIndex,
	}
}

// Error implements the error interface
func (e *FilterError) Error() string {
	if e.ArgIndex == ArgIndexValue {
		return fmt.Sprintf("%s: %s (value)", e.Message, e.Filter)
	}
	return fmt.Sprintf("%s: %s (argument %d)", e.Message, e.Filter, e.ArgIndex)
}
