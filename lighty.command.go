package lighty

import (
	"context"
	"fmt"
	"strings"
)

// Command is one unit of a parsed template. Rendering a template renders its
// commands in order and concatenates the results.
type Command interface {
	Render(ctx context.Context, data *Context) (string, error)
}

// CommandFunc adapts a function to the Command interface
type CommandFunc func(ctx context.Context, data *Context) (string, error)

// Render calls f
func (f CommandFunc) Render(ctx context.Context, data *Context) (string, error) {
	return f(ctx, data)
}

// Text returns a command that always renders text
func Text(text string) Command {
	return constantCommand(text)
}

// RenderCommands renders cmds against data and concatenates the output
func RenderCommands(ctx context.Context, cmds []Command, data *Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, cmd := range cmds {
		out, err := cmd.Render(ctx, data)
		if err != nil {
			return "", err
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

// constantCommand renders literal template text
type constantCommand string

func (c constantCommand) Render(context.Context, *Context) (string, error) {
	return string(c), nil
}

// tagCommand invokes a lazy tag on every render
type tagCommand struct {
	spec     *TagSpec
	token    string
	block    []Command
	template *Template
	pos      Position
}

func (c *tagCommand) Render(ctx context.Context, data *Context) (string, error) {
	args := &TagArgs{
		Name:     c.spec.Name,
		Token:    c.token,
		Block:    c.block,
		Context:  data,
		Template: c.template,
		Loader:   c.template.loader,
		Position: c.pos,
	}
	result, err := c.spec.Handler(ctx, args)
	if err != nil {
		return "", NewTagError(c.spec.Name, err)
	}
	return renderTagResult(ctx, c.spec.Name, result, data)
}

// renderTagResult turns a lazy tag handler result into output
func renderTagResult(ctx context.Context, tag string, result any, data *Context) (string, error) {
	switch v := result.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case Command:
		return v.Render(ctx, data)
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", NewUnsupportedTagResultError(tag, result)
	}
}
