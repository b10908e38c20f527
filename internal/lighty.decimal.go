package internal

import (
	"strconv"
	"strings"
)

// decimal is an exact base-10 number split into its digit strings
type decimal struct {
	negative bool
	integer  string // at least one digit
	fraction string
}

// parseDecimal reads a value as an exact decimal. Strings are parsed as
// written; other numbers go through their shortest round-trip representation.
func parseDecimal(v any) (decimal, bool) {
	var s string
	switch val := v.(type) {
	case string:
		s = strings.TrimSpace(val)
	default:
		f, ok := ToFloat(v)
		if !ok {
			return decimal{}, false
		}
		s = strconv.FormatFloat(f, FloatFormatFlag, FloatPrecisionAll, FloatBitSize64)
	}
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, FloatBitSize64)
		if err != nil {
			return decimal{}, false
		}
		s = strconv.FormatFloat(f, FloatFormatFlag, FloatPrecisionAll, FloatBitSize64)
	}

	var d decimal
	switch {
	case strings.HasPrefix(s, "-"):
		d.negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == StringValueEmpty && fracPart == StringValueEmpty {
		return decimal{}, false
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return decimal{}, false
	}
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == StringValueEmpty {
		intPart = "0"
	}
	d.integer = intPart
	d.fraction = fracPart
	return d, true
}

// truncate keeps exactly digits fractional digits, dropping the rest
func (d decimal) truncate(digits int) decimal {
	d.fraction = padFraction(d.fraction, digits)
	return d
}

// roundHalfUp keeps exactly digits fractional digits, rounding half away from zero
func (d decimal) roundHalfUp(digits int) decimal {
	if len(d.fraction) <= digits {
		d.fraction = padFraction(d.fraction, digits)
		return d
	}
	roundUp := d.fraction[digits] >= '5'
	d.fraction = d.fraction[:digits]
	if !roundUp {
		return d
	}

	all := []byte(d.integer + d.fraction)
	i := len(all) - 1
	for ; i >= 0; i-- {
		if all[i] == '9' {
			all[i] = '0'
			continue
		}
		all[i]++
		break
	}
	if i < 0 {
		all = append([]byte{'1'}, all...)
	}
	split := len(all) - digits
	d.integer = string(all[:split])
	d.fraction = string(all[split:])
	return d
}

// isZero reports whether every digit is zero
func (d decimal) isZero() bool {
	return strings.Trim(d.integer+d.fraction, "0") == StringValueEmpty
}

// String renders the decimal; negative zero keeps its sign
func (d decimal) String() string {
	var sb strings.Builder
	if d.negative {
		sb.WriteByte('-')
	}
	sb.WriteString(d.integer)
	if d.fraction != StringValueEmpty {
		sb.WriteByte('.')
		sb.WriteString(d.fraction)
	}
	return sb.String()
}

func padFraction(fraction string, digits int) string {
	if len(fraction) >= digits {
		return fraction[:digits]
	}
	return fraction + strings.Repeat("0", digits-len(fraction))
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
