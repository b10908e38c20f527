package lighty

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/itsatony/go-lighty/internal"
	"go.uber.org/zap"
)

// parser builds a template's command list from scanned segments. While block
// tags are open it keeps three parallel stacks: the enclosing scope's
// commands, the open tag names and their argument tokens.
type parser struct {
	tmpl   *Template
	tags   *TagRegistry
	expr   *exprCompiler
	logger *zap.Logger
	chain  []string

	commands   []Command
	cmdStack   [][]Command
	nameStack  []string
	tokenStack []string
	posStack   []Position
}

func newParser(tmpl *Template, chain []string) *parser {
	l := tmpl.loader
	return &parser{
		tmpl:   tmpl,
		tags:   l.tags,
		expr:   &exprCompiler{template: tmpl.name, filters: l.filters},
		logger: l.logger,
		chain:  chain,
	}
}

// parse scans source and fills the template's commands
func (p *parser) parse(source string) error {
	p.logger.Debug(LogMsgParseStart, zap.String(LogFieldTemplate, p.tmpl.name))

	segments, err := internal.NewScanner(source, p.logger).Scan()
	if err != nil {
		var scanErr *internal.ScanError
		if errors.As(err, &scanErr) {
			return newScanError(p.tmpl.name, scanErr)
		}
		return NewParseError(p.tmpl.name, ErrMsgParseFailed, Position{}, err)
	}

	for _, seg := range segments {
		if err := p.segment(seg); err != nil {
			return err
		}
	}

	if n := len(p.nameStack); n > 0 {
		return NewUnclosedTagError(p.tmpl.name, p.nameStack[n-1], p.posStack[n-1])
	}

	p.tmpl.commands = p.commands
	p.logger.Debug(LogMsgParseEnd,
		zap.String(LogFieldTemplate, p.tmpl.name),
		zap.Int(LogFieldSegments, len(segments)),
		zap.Int(LogFieldCommands, len(p.commands)),
	)
	return nil
}

func (p *parser) segment(seg internal.Segment) error {
	switch seg.Kind {
	case internal.SegmentText:
		p.commands = append(p.commands, constantCommand(seg.Value))
	case internal.SegmentEcho, internal.SegmentFilter:
		cmd, err := p.expr.compile(seg.Value, seg.Position)
		if err != nil {
			return err
		}
		p.commands = append(p.commands, cmd)
	case internal.SegmentTag:
		return p.tag(seg.Value, seg.Position)
	}
	return nil
}

// tag handles the inner text of {% ... %}
func (p *parser) tag(text string, pos Position) error {
	name, token := splitTag(text)

	if strings.HasPrefix(name, EndTagPrefix) {
		return p.closeTag(name, pos)
	}

	spec, ok := p.tags.Get(name)
	if !ok {
		return NewUnknownTagError(p.tmpl.name, name, pos, p.tags.List())
	}
	if spec.Validate != nil {
		if err := spec.Validate(token); err != nil {
			return NewTagSyntaxError(p.tmpl.name, name, token, pos, err)
		}
	}

	if spec.Block {
		p.cmdStack = append(p.cmdStack, p.commands)
		p.nameStack = append(p.nameStack, name)
		p.tokenStack = append(p.tokenStack, token)
		p.posStack = append(p.posStack, pos)
		p.commands = nil
		return nil
	}
	return p.finishTag(spec, token, nil, pos)
}

// closeTag pops the innermost open block tag and checks it matches name
func (p *parser) closeTag(name string, pos Position) error {
	n := len(p.nameStack)
	if n == 0 {
		return NewUnexpectedCloseTagError(p.tmpl.name, name, pos)
	}
	open := p.nameStack[n-1]
	if open != strings.TrimPrefix(name, EndTagPrefix) {
		return NewMismatchedTagError(p.tmpl.name, open, name, pos)
	}

	block := p.commands
	token := p.tokenStack[n-1]
	openPos := p.posStack[n-1]
	p.commands = p.cmdStack[n-1]
	p.cmdStack = p.cmdStack[:n-1]
	p.nameStack = p.nameStack[:n-1]
	p.tokenStack = p.tokenStack[:n-1]
	p.posStack = p.posStack[:n-1]

	spec, ok := p.tags.Get(open)
	if !ok {
		return NewUnknownTagError(p.tmpl.name, open, openPos, p.tags.List())
	}
	return p.finishTag(spec, token, block, openPos)
}

// finishTag appends a lazy tag command, or runs an eager tag immediately
func (p *parser) finishTag(spec *TagSpec, token string, block []Command, pos Position) error {
	if spec.Lazy {
		p.commands = append(p.commands, &tagCommand{
			spec:     spec,
			token:    token,
			block:    block,
			template: p.tmpl,
			pos:      pos,
		})
		return nil
	}

	// Eager handlers see and may rewrite the template's top-level commands
	p.tmpl.commands = p.topLevel()
	var enclosing string
	if n := len(p.nameStack); n > 0 {
		enclosing = p.nameStack[n-1]
	}
	result, err := spec.Handler(context.Background(), &TagArgs{
		Name:      spec.Name,
		Token:     token,
		Block:     block,
		Template:  p.tmpl,
		Loader:    p.tmpl.loader,
		Position:  pos,
		Nested:    enclosing != "",
		Enclosing: enclosing,
		parsing:   true,
		chain:     p.chain,
	})
	p.setTopLevel(p.tmpl.commands)
	if err != nil {
		return NewTagError(spec.Name, err)
	}

	switch v := result.(type) {
	case nil:
	case Command:
		p.commands = append(p.commands, v)
	case string:
		p.commands = append(p.commands, constantCommand(v))
	default:
		return NewUnsupportedTagResultError(spec.Name, result)
	}
	return nil
}

// topLevel returns the outermost scope's command list
func (p *parser) topLevel() []Command {
	if len(p.cmdStack) == 0 {
		return p.commands
	}
	return p.cmdStack[0]
}

func (p *parser) setTopLevel(cmds []Command) {
	if len(p.cmdStack) == 0 {
		p.commands = cmds
		return
	}
	p.cmdStack[0] = cmds
}

// splitTag splits tag text on the first whitespace into name and arguments
func splitTag(text string) (string, string) {
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i:])
}
