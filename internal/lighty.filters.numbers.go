package internal

import (
	"strings"
)

// filterSum adds the value and every argument as floats.
// {{ 1|sum:2 3 4 }} -> 10
func filterSum(value any, args []any) (any, error) {
	total, ok := ToFloat(value)
	if !ok {
		return nil, NewFilterError(ErrMsgFilterExpectedNumber, FilterNameSum, ArgIndexValue)
	}
	for i, arg := range args {
		f, ok := ToFloat(arg)
		if !ok {
			return nil, NewFilterError(ErrMsgFilterExpectedNumber, FilterNameSum, i)
		}
		total += f
	}
	return total, nil
}

// floatArgs parses the shared (value, digits) arguments of floatformat/floatround
func floatArgs(filter string, value any, args []any) (decimal, int, string, error) {
	format := DefaultFloatDigits
	if len(args) > 0 {
		format = strings.TrimSpace(ToString(args[ArgIndexFirst]))
	}
	digits, ok := ToInt(format)
	if !ok {
		return decimal{}, 0, format, NewFilterError(ErrMsgFilterExpectedInteger, filter, ArgIndexFirst)
	}
	if digits < 0 {
		digits = -digits
	}
	d, ok := parseDecimal(value)
	if !ok {
		return decimal{}, 0, format, NewFilterError(ErrMsgFilterExpectedNumber, filter, ArgIndexValue)
	}
	return d, digits, format, nil
}

// filterFloatFormat truncates a number to the given count of fractional
// digits. A negative count also strips trailing zeros.
//
//	"12.45"|floatformat     -> 12
//	"12.45"|floatformat:1   -> 12.4
//	"12.45"|floatformat:4   -> 12.4500
//	"12.45"|floatformat:-4  -> 12.45
func filterFloatFormat(value any, args []any) (any, error) {
	d, digits, format, err := floatArgs(FilterNameFloatFormat, value, args)
	if err != nil {
		return nil, err
	}
	result := d.truncate(digits)
	if result.isZero() {
		result.negative = false
	}
	out := result.String()
	if strings.HasPrefix(format, "-") && strings.Contains(out, ".") {
		out = strings.TrimRight(out, "0")
		out = strings.TrimSuffix(out, ".")
	}
	return out, nil
}

// filterFloatRound rounds a number half up to the given count of fractional digits.
//
//	"12.45"|floatround    -> 12
//	"12.45"|floatround:1  -> 12.5
func filterFloatRound(value any, args []any) (any, error) {
	d, digits, _, err := floatArgs(FilterNameFloatRound, value, args)
	if err != nil {
		return nil, err
	}
	result := d.roundHalfUp(digits)
	if result.isZero() {
		result.negative = false
	}
	return result.String(), nil
}
