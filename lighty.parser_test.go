package lighty

import (
	"context"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, source string) (*Template, error) {
	t.Helper()
	return NewLoader(nil, nil, nil).Parse(DefaultTemplateName, source)
}

func render(t *testing.T, source string, data map[string]any) string {
	t.Helper()
	tmpl, err := parseString(t, source)
	require.NoError(t, err)
	out, err := tmpl.Execute(context.Background(), data)
	require.NoError(t, err)
	return out
}

func metadata(t *testing.T, err error, key string) string {
	t.Helper()
	var customErr *cuserr.CustomError
	require.ErrorAs(t, err, &customErr)
	value, _ := customErr.GetMetadata(key)
	return value
}

func TestParser_CommandKinds(t *testing.T) {
	tmpl, err := parseString(t, `a{{ b }}{{ c|upper }}{{ "d" }}{% if e %}f{% endif %}`)
	require.NoError(t, err)

	cmds := tmpl.Commands()
	require.Len(t, cmds, 5)
	assert.IsType(t, constantCommand(""), cmds[0])
	assert.IsType(t, &variableCommand{}, cmds[1])
	assert.IsType(t, &filteredCommand{}, cmds[2])
	assert.Equal(t, constantCommand("d"), cmds[3])
	require.IsType(t, &tagCommand{}, cmds[4])

	tag := cmds[4].(*tagCommand)
	assert.Equal(t, TagNameIf, tag.spec.Name)
	assert.Equal(t, "e", tag.token)
	assert.Equal(t, []Command{constantCommand("f")}, tag.block)
}

func TestParser_NestedBlocks(t *testing.T) {
	out := render(t,
		`{% for row in rows %}[{% for cell in row %}{% if cell %}{{ cell }}{% endif %}{% endfor %}]{% endfor %}`,
		map[string]any{"rows": [][]any{{1, 0, 2}, {"", "x"}}},
	)
	assert.Equal(t, "[12][x]", out)
}

func TestParser_TagArgumentWhitespace(t *testing.T) {
	out := render(t, "{%   if    a   %}yes{%endif%}", map[string]any{"a": true})
	assert.Equal(t, "yes", out)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		code    string
		message string
	}{
		{"unterminated echo", "{{ a ", ErrCodeParse, "unterminated tag"},
		{"unterminated tag", "{% if a ", ErrCodeParse, "unterminated tag"},
		{"bad close delimiter", "{{ a }x", ErrCodeParse, "unexpected character"},
		{"empty expression", "{{ }}", ErrCodeParse, "empty expression"},
		{"mismatched close", "{% if a %}{% endfor %}", ErrCodeParse, ErrMsgMismatchedTag},
		{"close without open", "{% endif %}", ErrCodeParse, ErrMsgUnexpectedCloseTag},
		{"unclosed", "{% for a in b %}{% if a %}{% endif %}", ErrCodeParse, ErrMsgUnclosedTag},
		{"unknown tag", "{% iff a %}{% endiff %}", ErrCodeLookup, "Did you mean 'if'?"},
		{"unknown filter", "{{ a|uper }}", ErrCodeLookup, "Did you mean 'upper'?"},
		{"malformed literal", `{{ "abc }}`, ErrCodeParse, ErrMsgMalformedLiteral},
		{"empty filter name", "{{ a| }}", ErrCodeParse, ErrMsgEmptyFilterName},
		{"filter arg count", "{{ a|upper:1 }}", ErrCodeParse, ErrMsgFilterArgCount},
		{"for syntax", "{% for a of b %}{% endfor %}", ErrCodeParse, ErrMsgInvalidTagArgs},
		{"for dotted name", "{% for a.b in c %}{% endfor %}", ErrCodeParse, ErrMsgInvalidTagArgs},
		{"with syntax", "{% with a b %}{% endwith %}", ErrCodeParse, ErrMsgInvalidTagArgs},
		{"if without argument", "{% if %}{% endif %}", ErrCodeParse, ErrMsgInvalidTagArgs},
		{"spaceless with argument", "{% spaceless x %}{% endspaceless %}", ErrCodeParse, ErrMsgInvalidTagArgs},
		{"unterminated quote", `{% include "a b %}`, ErrCodeParse, ErrMsgInvalidTagArgs},
		{"nested extend", `{% if a %}{% extend "b" %}{% endif %}`, ErrCodeParse, ErrMsgNestedExtend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseString(t, tt.source)
			require.Error(t, err)
			assert.Equal(t, tt.code, Code(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParser_ErrorPosition(t *testing.T) {
	_, err := parseString(t, "line one\n  {% endif %}")
	require.Error(t, err)

	assert.Equal(t, "2", metadata(t, err, MetaKeyLine))
	assert.Equal(t, "3", metadata(t, err, MetaKeyColumn))
	assert.Equal(t, DefaultTemplateName, metadata(t, err, MetaKeyTemplate))
}

func TestParser_MismatchMetadata(t *testing.T) {
	_, err := parseString(t, "{% if a %}{% endfor %}")
	require.Error(t, err)

	assert.Equal(t, "endif", metadata(t, err, MetaKeyExpected))
	assert.Equal(t, "endfor", metadata(t, err, MetaKeyActual))
}

func TestParser_EagerTagResult(t *testing.T) {
	tags := NewTagRegistry(nil)
	registerBuiltinTags(tags)
	tags.MustRegister(TagSpec{
		Name: "stamp",
		Handler: func(_ context.Context, args *TagArgs) (any, error) {
			return "<" + args.Token + ">", nil
		},
	})
	tags.MustRegister(TagSpec{
		Name: "broken",
		Handler: func(context.Context, *TagArgs) (any, error) {
			return 42, nil
		},
	})
	l := NewLoader(tags, nil, nil)

	tmpl, err := l.Parse("a", `x{% stamp v1 %}y`)
	require.NoError(t, err)
	assert.Equal(t, []Command{constantCommand("x"), constantCommand("<v1>"), constantCommand("y")}, tmpl.Commands())

	_, err = l.Parse("b", `{% broken %}`)
	require.Error(t, err)
	assert.Equal(t, ErrCodeExec, Code(err))
	assert.False(t, l.Has("b"))
}

func TestSplitTag(t *testing.T) {
	name, token := splitTag("for a in  b ")
	assert.Equal(t, "for", name)
	assert.Equal(t, "a in  b", token)

	name, token = splitTag("endfor")
	assert.Equal(t, "endfor", name)
	assert.Equal(t, "", token)

	name, token = splitTag("if\ta")
	assert.Equal(t, "if", name)
	assert.Equal(t, "a", token)
}
