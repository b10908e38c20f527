package internal

import (
	"strconv"
	"strings"
)

// WordKind classifies a word produced by ParseToken
type WordKind int

// Word kinds
const (
	WordBare   WordKind = iota // variable reference or keyword
	WordQuoted                 // quoted string or sentence
	WordNumber                 // numeric literal
)

// Word is one token of a tag or filter argument string
type Word struct {
	Value string
	Kind  WordKind
}

// Literal reports whether the word is used verbatim rather than resolved
// against the render context.
func (w Word) Literal() bool {
	return w.Kind != WordBare
}

// ParseToken splits a tag argument string into words. Single or double quotes
// group several words into one sentence: `a as "Let me in"` yields a, as and
// the sentence "Let me in". A quote that is never closed is an error.
func ParseToken(token string) ([]Word, error) {
	fields := strings.Fields(token)
	words := make([]Word, 0, len(fields))

	var (
		quote    byte
		sentence []string
	)
	for _, field := range fields {
		if quote != 0 {
			if strings.HasSuffix(field, string(quote)) {
				sentence = append(sentence, field[:len(field)-1])
				words = append(words, Word{Value: strings.Join(sentence, " "), Kind: WordQuoted})
				quote, sentence = 0, nil
				continue
			}
			sentence = append(sentence, field)
			continue
		}

		first := field[0]
		if first != CharDoubleQuote && first != CharSingleQuote {
			words = append(words, bareWord(field))
			continue
		}
		if len(field) > 1 && field[len(field)-1] == first {
			words = append(words, Word{Value: field[1 : len(field)-1], Kind: WordQuoted})
			continue
		}
		quote = first
		sentence = []string{field[1:]}
	}

	if quote != 0 {
		return nil, &TokenError{Message: ErrMsgUnterminatedQuote, Token: token}
	}
	return words, nil
}

// bareWord classifies an unquoted word as a number or a reference
func bareWord(field string) Word {
	if _, ok := ParseNumber(field); ok {
		return Word{Value: field, Kind: WordNumber}
	}
	return Word{Value: field, Kind: WordBare}
}

// Values returns the plain word values
func Values(words []Word) []string {
	values := make([]string, len(words))
	for i, w := range words {
		values[i] = w.Value
	}
	return values
}

// ParseNumber parses a decimal literal, preferring an integer representation
func ParseNumber(s string) (any, bool) {
	// ParseFloat also accepts "inf" and "nan", which are valid variable names here
	if s == StringValueEmpty || !strings.ContainsRune(numberLeadChars, rune(s[0])) {
		return nil, false
	}
	if n, err := strconv.ParseInt(s, IntBase10, 64); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, FloatBitSize64); err == nil {
		return f, true
	}
	return nil, false
}

const numberLeadChars = "0123456789+-."

// TokenError reports a malformed tag argument string
type TokenError struct {
	Message string
	Token   string
}

func (e *TokenError) Error() string {
	return e.Message + ": " + strconv.Quote(e.Token)
}
