package internal

import (
	"strconv"
	"strings"
	"time"
)

// strftimeLayouts maps strftime directives to Go reference layouts
var strftimeLayouts = map[byte]string{
	'a': "Mon",
	'A': "Monday",
	'b': "Jan",
	'B': "January",
	'd': "02",
	'H': "15",
	'I': "03",
	'm': "01",
	'M': "04",
	'p': "PM",
	'S': "05",
	'y': "06",
	'Y': "2006",
	'z': "-0700",
	'Z': "MST",
}

// Strftime formats t with a C-style format string such as "%Y-%m-%dT%H:%M:%S".
// Unknown directives are written through unchanged.
func Strftime(t time.Time, format string) string {
	var sb strings.Builder
	for i := 0; i < len(format); i++ {
		ch := format[i]
		if ch != '%' || i == len(format)-1 {
			sb.WriteByte(ch)
			continue
		}
		i++
		directive := format[i]
		if layout, ok := strftimeLayouts[directive]; ok {
			sb.WriteString(t.Format(layout))
			continue
		}
		switch directive {
		case '%':
			sb.WriteByte('%')
		case 'f':
			sb.WriteString(padInt(t.Nanosecond()/int(time.Microsecond), 6))
		case 'j':
			sb.WriteString(padInt(t.YearDay(), 3))
		case 'w':
			sb.WriteString(strconv.Itoa(int(t.Weekday())))
		default:
			sb.WriteByte('%')
			sb.WriteByte(directive)
		}
	}
	return sb.String()
}

func padInt(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
