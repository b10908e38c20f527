package lighty

import (
	"context"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"
)

// Template is a named, parsed command list owned by a Loader.
//
// A lazy template stores its source and parses on first use. The transition
// from unparsed to parsed (or failed) happens exactly once; a failed parse is
// sticky and returned by every later Execute. Once parsed a template is
// read-only and safe for concurrent rendering.
type Template struct {
	name   string
	source string
	loader *Loader

	parsed   atomic.Bool
	parsing  bool // guarded by loader.parseMu
	parseErr error

	commands []Command
	blocks   map[string]*Template
	parent   *Template
}

func newTemplate(name, source string, loader *Loader) *Template {
	return &Template{
		name:   name,
		source: source,
		loader: loader,
		blocks: make(map[string]*Template),
	}
}

// newFragment creates an already parsed block sub-template
func newFragment(name string, commands []Command, loader *Loader) *Template {
	t := newTemplate(name, "", loader)
	t.commands = commands
	t.parsed.Store(true)
	return t
}

// Name returns the template name
func (t *Template) Name() string {
	return t.name
}

// Source returns the template source text; empty for block fragments
func (t *Template) Source() string {
	return t.source
}

// Parsed reports whether the template has been parsed (successfully or not)
func (t *Template) Parsed() bool {
	return t.parsed.Load()
}

// Err returns the parse error of a parsed template, forcing a lazy parse
func (t *Template) Err() error {
	return t.ensureParsed()
}

// Parent returns the template this one extends, or nil
func (t *Template) Parent() *Template {
	if t.ensureParsed() != nil {
		return nil
	}
	return t.parent
}

// Blocks returns the names of the template's blocks in sorted order
func (t *Template) Blocks() []string {
	if t.ensureParsed() != nil {
		return nil
	}
	names := make([]string, 0, len(t.blocks))
	for name := range t.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Block returns the named block fragment
func (t *Template) Block(name string) (*Template, bool) {
	if t.ensureParsed() != nil {
		return nil, false
	}
	b, ok := t.blocks[name]
	return b, ok
}

// Commands returns a copy of the template's top-level command list
func (t *Template) Commands() []Command {
	if t.ensureParsed() != nil {
		return nil
	}
	out := make([]Command, len(t.commands))
	copy(out, t.commands)
	return out
}

// Execute renders the template with data
func (t *Template) Execute(ctx context.Context, data map[string]any) (string, error) {
	return t.ExecuteContext(ctx, NewContext(data))
}

// ExecuteContext renders the template against an existing context
func (t *Template) ExecuteContext(ctx context.Context, data *Context) (string, error) {
	if err := t.ensureParsed(); err != nil {
		return "", err
	}
	if data == nil {
		data = NewContext(nil)
	}
	return RenderCommands(ctx, t.commands, data)
}

// Render implements Command so block fragments can sit in a command list
func (t *Template) Render(ctx context.Context, data *Context) (string, error) {
	return t.ExecuteContext(ctx, data)
}

// ensureParsed parses a lazy template on first use
func (t *Template) ensureParsed() error {
	if t.parsed.Load() {
		return t.parseErr
	}
	t.loader.parseMu.Lock()
	defer t.loader.parseMu.Unlock()
	return t.parseLocked(nil)
}

// parseLocked parses the template; the caller holds loader.parseMu. chain
// lists the templates whose parse is in progress, outermost first.
func (t *Template) parseLocked(chain []string) error {
	if t.parsed.Load() {
		return t.parseErr
	}
	chain = append(chain[:len(chain):len(chain)], t.name)
	if t.parsing {
		return NewCircularExtendError(chain)
	}

	t.parsing = true
	err := newParser(t, chain).parse(t.source)
	t.parsing = false

	if err != nil {
		t.commands = nil
		t.blocks = make(map[string]*Template)
		t.parent = nil
		t.loader.logger.Debug(LogMsgParseFailed,
			zap.String(LogFieldTemplate, t.name),
			zap.Error(err),
		)
	}
	t.parseErr = err
	t.parsed.Store(true)
	return err
}

// overrideBlock replaces every placement of the named block, including
// placements nested in other blocks, with fragment.
func (t *Template) overrideBlock(name string, fragment *Template) {
	t.commands, _ = replaceBlock(t.commands, name, fragment)
	for other, b := range t.blocks {
		if other == name {
			continue
		}
		if cmds, changed := replaceBlock(b.commands, name, fragment); changed {
			t.blocks[other] = newFragment(other, cmds, b.loader)
		}
	}
	t.blocks[name] = fragment
	t.loader.logger.Debug(LogMsgBlockOverridden,
		zap.String(LogFieldTemplate, t.name),
		zap.String(LogFieldBlock, name),
	)
}

// replaceBlock returns cmds with each fragment named name swapped for
// replacement. Only containers on the path to a match are copied, so a
// parent template's commands are never modified.
func replaceBlock(cmds []Command, name string, replacement *Template) ([]Command, bool) {
	var out []Command
	for i, cmd := range cmds {
		next, changed := replaceIn(cmd, name, replacement)
		if !changed {
			if out != nil {
				out = append(out, cmd)
			}
			continue
		}
		if out == nil {
			out = make([]Command, i, len(cmds))
			copy(out, cmds[:i])
		}
		out = append(out, next)
	}
	if out == nil {
		return cmds, false
	}
	return out, true
}

func replaceIn(cmd Command, name string, replacement *Template) (Command, bool) {
	switch c := cmd.(type) {
	case *Template:
		if c.name == name {
			return replacement, true
		}
		cmds, changed := replaceBlock(c.commands, name, replacement)
		if !changed {
			return c, false
		}
		return newFragment(c.name, cmds, c.loader), true
	case *tagCommand:
		block, changed := replaceBlock(c.block, name, replacement)
		if !changed {
			return c, false
		}
		cp := *c
		cp.block = block
		return &cp, true
	}
	return cmd, false
}
