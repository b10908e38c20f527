package lighty

import (
	"context"
	"strings"

	"github.com/itsatony/go-lighty/internal"
)

// operand is a literal value or a dotted path resolved at render time
type operand struct {
	literal bool
	value   any    // literal value
	path    string // variable path when not literal
}

func (o operand) resolve(data *Context) (any, error) {
	if o.literal {
		return o.value, nil
	}
	return data.Get(o.path)
}

// wordOperand converts a tag or filter argument word into an operand
func wordOperand(w internal.Word) operand {
	switch w.Kind {
	case internal.WordQuoted:
		return operand{literal: true, value: w.Value}
	case internal.WordNumber:
		n, _ := internal.ParseNumber(w.Value)
		return operand{literal: true, value: n}
	default:
		return operand{path: w.Value}
	}
}

// variableCommand renders a context value
type variableCommand struct {
	path string
}

func (c *variableCommand) Render(_ context.Context, data *Context) (string, error) {
	val, err := data.Get(c.path)
	if err != nil {
		return "", err
	}
	return internal.ToString(val), nil
}

// filterCall is one stage of a filter pipeline
type filterCall struct {
	filter *Filter
	args   []operand
}

// filteredCommand threads its base value through a filter pipeline
type filteredCommand struct {
	base    operand
	filters []filterCall
}

func (c *filteredCommand) Render(_ context.Context, data *Context) (string, error) {
	value, err := c.base.resolve(data)
	if err != nil {
		return "", err
	}
	for _, call := range c.filters {
		args := make([]any, len(call.args))
		for i, arg := range call.args {
			if args[i], err = arg.resolve(data); err != nil {
				return "", err
			}
		}
		if value, err = call.filter.Apply(value, args); err != nil {
			return "", err
		}
	}
	return internal.ToString(value), nil
}

// exprCompiler compiles echo and filter expressions for one template
type exprCompiler struct {
	template string
	filters  *FilterRegistry
}

// compile turns an expression such as `name|join:", "` into a command
func (c *exprCompiler) compile(expr string, pos Position) (Command, error) {
	parts := splitUnquoted(expr, FilterSeparator)

	base, err := c.compileBase(strings.TrimSpace(parts[0]), expr, pos)
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		if base.literal {
			return constantCommand(internal.ToString(base.value)), nil
		}
		return &variableCommand{path: base.path}, nil
	}

	cmd := &filteredCommand{base: base, filters: make([]filterCall, 0, len(parts)-1)}
	for _, part := range parts[1:] {
		call, err := c.compileFilter(strings.TrimSpace(part), expr, pos)
		if err != nil {
			return nil, err
		}
		cmd.filters = append(cmd.filters, call)
	}
	return cmd, nil
}

// compileBase parses the value a pipeline starts from: a quoted string, a
// number or a variable path.
func (c *exprCompiler) compileBase(base, expr string, pos Position) (operand, error) {
	if base == "" {
		return operand{}, NewExpressionError(c.template, ErrMsgEmptyExpression, expr, pos)
	}
	if quote := base[0]; quote == internal.CharDoubleQuote || quote == internal.CharSingleQuote {
		if len(base) < 2 || base[len(base)-1] != quote {
			return operand{}, NewExpressionError(c.template, ErrMsgMalformedLiteral, expr, pos)
		}
		return operand{literal: true, value: base[1 : len(base)-1]}, nil
	}
	if n, ok := internal.ParseNumber(base); ok {
		return operand{literal: true, value: n}, nil
	}
	return operand{path: base}, nil
}

// compileFilter parses one `name:args` stage and checks it against the registry
func (c *exprCompiler) compileFilter(part, expr string, pos Position) (filterCall, error) {
	name, argText, _ := strings.Cut(part, string(ArgSeparator))
	name = strings.TrimSpace(name)
	if name == "" {
		return filterCall{}, NewExpressionError(c.template, ErrMsgEmptyFilterName, expr, pos)
	}

	filter, ok := c.filters.Get(name)
	if !ok {
		return filterCall{}, NewUnknownFilterError(c.template, name, pos, c.filters.List())
	}

	words, err := internal.ParseToken(argText)
	if err != nil {
		return filterCall{}, NewParseError(c.template, ErrMsgMalformedLiteral, pos, err)
	}
	if !filter.AcceptsArgs(len(words)) {
		return filterCall{}, NewFilterArgCountError(c.template, name, len(words), filter.MinArgs, filter.MaxArgs, pos)
	}

	call := filterCall{filter: filter, args: make([]operand, len(words))}
	for i, w := range words {
		call.args[i] = wordOperand(w)
	}
	return call, nil
}

// splitUnquoted splits s on sep, ignoring separators inside quoted strings
func splitUnquoted(s string, sep byte) []string {
	var (
		parts []string
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == internal.CharDoubleQuote || ch == internal.CharSingleQuote:
			quote = ch
		case ch == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
