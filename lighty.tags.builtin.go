package lighty

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/itsatony/go-lighty/internal"
)

// Tag argument errors reported through NewTagSyntaxError
var (
	ErrExpectedOneArgument = errors.New("expected exactly one argument")
	ErrExpectedNoArguments = errors.New("expected no arguments")
	ErrInvalidForSyntax    = errors.New("expected: for <name> in <source>")
	ErrInvalidWithSyntax   = errors.New("expected: with <expr> as <name>")
)

// LoopState is exposed to a for loop body as forloop
type LoopState struct {
	Counter  int // 1-based
	Counter0 int // 0-based
	First    bool
	Last     bool
	Total    int
}

// registerBuiltinTags adds the built-in tags to r
func registerBuiltinTags(r *TagRegistry) {
	r.MustRegister(TagSpec{
		Name:         TagNameIf,
		Handler:      ifTag,
		Block:        true,
		Lazy:         true,
		NeedsContext: true,
		Validate:     validateOneWord,
	})
	r.MustRegister(TagSpec{
		Name:         TagNameFor,
		Handler:      forTag,
		Block:        true,
		Lazy:         true,
		NeedsContext: true,
		Validate:     validateFor,
	})
	r.MustRegister(TagSpec{
		Name:         TagNameWith,
		Handler:      withTag,
		Block:        true,
		Lazy:         true,
		NeedsContext: true,
		Validate:     validateWith,
	})
	r.MustRegister(TagSpec{
		Name:         TagNameSpaceless,
		Handler:      spacelessTag,
		Block:        true,
		Lazy:         true,
		NeedsContext: true,
		Validate:     validateNoWords,
	})
	r.MustRegister(TagSpec{
		Name:         TagNameInclude,
		Handler:      includeTag,
		Lazy:         true,
		NeedsContext: true,
		NeedsLoader:  true,
		Validate:     validateOneWord,
	})
	r.MustRegister(TagSpec{
		Name:          TagNameBlock,
		Handler:       blockTag,
		Block:         true,
		NeedsTemplate: true,
		NeedsLoader:   true,
		Validate:      validateOneWord,
	})
	r.MustRegister(TagSpec{
		Name:          TagNameExtend,
		Handler:       extendTag,
		NeedsTemplate: true,
		NeedsLoader:   true,
		Validate:      validateOneWord,
	})
}

// {% if a %}...{% endif %}
func ifTag(ctx context.Context, args *TagArgs) (any, error) {
	words, err := internal.ParseToken(args.Token)
	if err != nil {
		return nil, err
	}
	value, err := wordOperand(words[0]).resolve(args.Context)
	if err != nil {
		return nil, err
	}
	if !internal.IsTruthy(value) {
		return "", nil
	}
	return args.RenderBlock(ctx, args.Context)
}

// {% for item in items %}...{% endfor %}
func forTag(ctx context.Context, args *TagArgs) (any, error) {
	words, err := internal.ParseToken(args.Token)
	if err != nil {
		return nil, err
	}
	name, source := words[0].Value, words[2]

	value, err := wordOperand(source).resolve(args.Context)
	if err != nil {
		return nil, err
	}
	items, ok := internal.Iterate(value)
	if !ok {
		return nil, NewNotIterableError(source.Value, value)
	}

	var sb strings.Builder
	for i, item := range items {
		child := args.Context.Child(map[string]any{
			name: item,
			LoopVarName: LoopState{
				Counter:  i + 1,
				Counter0: i,
				First:    i == 0,
				Last:     i == len(items)-1,
				Total:    len(items),
			},
		})
		out, err := args.RenderBlock(ctx, child)
		if err != nil {
			return nil, err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

// {% with user.profile.name as name %}...{% endwith %}
func withTag(ctx context.Context, args *TagArgs) (any, error) {
	words, err := internal.ParseToken(args.Token)
	if err != nil {
		return nil, err
	}
	value, err := wordOperand(words[0]).resolve(args.Context)
	if err != nil {
		return nil, err
	}
	return args.RenderBlock(ctx, args.Context.Child(map[string]any{words[2].Value: value}))
}

// {% spaceless %}...{% endspaceless %} strips leading whitespace from every
// line of the body and joins the lines.
func spacelessTag(ctx context.Context, args *TagArgs) (any, error) {
	out, err := args.RenderBlock(ctx, args.Context)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimLeftFunc(line, unicode.IsSpace)
	}
	return strings.Join(lines, ""), nil
}

type includeDepthKey struct{}

// {% include "header.html" %} renders another template with the current context.
// A bare word names a variable holding the template name.
func includeTag(ctx context.Context, args *TagArgs) (any, error) {
	words, err := internal.ParseToken(args.Token)
	if err != nil {
		return nil, err
	}
	nameValue, err := wordOperand(words[0]).resolve(args.Context)
	if err != nil {
		return nil, err
	}
	name := internal.ToString(nameValue)

	depth, _ := ctx.Value(includeDepthKey{}).(int)
	if depth >= DefaultMaxIncludeDepth {
		return nil, NewIncludeDepthError(name, DefaultMaxIncludeDepth)
	}

	t, err := args.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	return t.ExecuteContext(context.WithValue(ctx, includeDepthKey{}, depth+1), args.Context)
}

func validateOneWord(token string) error {
	words, err := internal.ParseToken(token)
	if err != nil {
		return err
	}
	if len(words) != 1 {
		return ErrExpectedOneArgument
	}
	return nil
}

func validateNoWords(token string) error {
	if strings.TrimSpace(token) != "" {
		return ErrExpectedNoArguments
	}
	return nil
}

func validateFor(token string) error {
	words, err := internal.ParseToken(token)
	if err != nil {
		return err
	}
	if len(words) != 3 || !isName(words[0]) || words[1].Literal() || words[1].Value != KeywordIn {
		return ErrInvalidForSyntax
	}
	return nil
}

func validateWith(token string) error {
	words, err := internal.ParseToken(token)
	if err != nil {
		return err
	}
	if len(words) != 3 || words[1].Literal() || words[1].Value != KeywordAs || !isName(words[2]) {
		return ErrInvalidWithSyntax
	}
	return nil
}

// isName reports whether w can be bound as a context variable
func isName(w internal.Word) bool {
	return !w.Literal() && !strings.Contains(w.Value, PathSeparator)
}
