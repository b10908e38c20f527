package internal

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripTagsOnce   sync.Once
	stripTagsPolicy *bluemonday.Policy
)

// stripTagsSanitizer returns the shared strict policy; a Policy is safe for
// concurrent use once built.
func stripTagsSanitizer() *bluemonday.Policy {
	stripTagsOnce.Do(func() {
		stripTagsPolicy = bluemonday.StrictPolicy()
	})
	return stripTagsPolicy
}

var slashReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `'`, `\'`)

func filterAddSlashes(value any, _ []any) (any, error) {
	return slashReplacer.Replace(ToString(value)), nil
}

func filterCapFirst(value any, _ []any) (any, error) {
	s := ToString(value)
	if s == StringValueEmpty {
		return s, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:], nil
}

// filterStringFormat formats the value with a printf verb minus its leading
// percent sign: {{ pi|stringformat:".2f" }}. Numeric strings are converted
// for numeric verbs.
func filterStringFormat(value any, args []any) (any, error) {
	format := ToString(args[ArgIndexFirst])
	if format == StringValueEmpty {
		return nil, NewFilterError(ErrMsgFilterExpectedString, FilterNameStringFormat, ArgIndexFirst)
	}
	verb := format[len(format)-1]
	if s, ok := value.(string); ok {
		switch {
		case strings.IndexByte("feEgG", verb) >= 0:
			if f, ok := ToFloat(s); ok {
				value = f
			}
		case strings.IndexByte("dxXob", verb) >= 0:
			if n, ok := ToInt(s); ok {
				value = n
			}
		}
	}
	if f, ok := value.(float64); ok && strings.IndexByte("dxXob", verb) >= 0 {
		value = int64(f)
	}
	out := fmt.Sprintf("%"+format, value)
	if strings.Count(out, fmtErrorMarker) > strings.Count(ToString(value), fmtErrorMarker) {
		return nil, NewFilterError(ErrMsgFilterBadFormat, FilterNameStringFormat, ArgIndexFirst)
	}
	return out, nil
}

func filterUpper(value any, _ []any) (any, error) {
	return strings.ToUpper(ToString(value)), nil
}

func filterLower(value any, _ []any) (any, error) {
	return strings.ToLower(ToString(value)), nil
}

// filterStripTags removes every HTML tag from the value
func filterStripTags(value any, _ []any) (any, error) {
	return stripTagsSanitizer().Sanitize(ToString(value)), nil
}
