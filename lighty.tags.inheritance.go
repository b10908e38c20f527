package lighty

import (
	"context"
	"sort"

	"github.com/itsatony/go-lighty/internal"
	"go.uber.org/zap"
)

// blockTag defines a named, overridable region.
//
// The first definition of a name registers the region and leaves it in place.
// A later definition of the same name, typically a child overriding a block
// inherited through extend, is substituted at every position the earlier one
// occupied. An override emits nothing where it stands unless it sits directly
// inside another block, where it also stays in place.
func blockTag(_ context.Context, args *TagArgs) (any, error) {
	words, err := internal.ParseToken(args.Token)
	if err != nil {
		return nil, err
	}
	name := words[0].Value
	t := args.Template
	fragment := newFragment(name, args.Block, args.Loader)

	if _, exists := t.blocks[name]; !exists {
		t.blocks[name] = fragment
		args.Loader.logger.Debug(LogMsgBlockDefined,
			zap.String(LogFieldTemplate, t.name),
			zap.String(LogFieldBlock, name),
		)
		return fragment, nil
	}

	t.overrideBlock(name, fragment)
	if args.Enclosing == TagNameBlock {
		return fragment, nil
	}
	return nil, nil
}

// extendTag makes the template inherit from a parent. The parent is parsed
// first if needed and is never modified: the child receives copies of the
// parent's commands and blocks. Blocks the child defined before extend
// override the inherited ones.
func extendTag(_ context.Context, args *TagArgs) (any, error) {
	t := args.Template
	if args.Nested {
		return nil, NewNestedExtendError(t.name)
	}

	words, err := internal.ParseToken(args.Token)
	if err != nil {
		return nil, err
	}
	parentName := words[0].Value
	if t.parent != nil {
		return nil, NewMultipleExtendError(t.name, parentName)
	}

	parent, err := args.LoadTemplate(parentName)
	if err != nil {
		return nil, err
	}

	early := t.blocks
	t.parent = parent
	t.blocks = make(map[string]*Template, len(parent.blocks)+len(early))
	for name, b := range parent.blocks {
		t.blocks[name] = b
	}

	// Early overrides of inherited blocks move to the parent's positions
	commands := make([]Command, 0, len(t.commands)+len(parent.commands))
	for _, cmd := range t.commands {
		if frag, ok := cmd.(*Template); ok {
			if _, inherited := parent.blocks[frag.name]; inherited {
				continue
			}
		}
		commands = append(commands, cmd)
	}
	t.commands = append(commands, parent.commands...)

	names := make([]string, 0, len(early))
	for name := range early {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, inherited := parent.blocks[name]; inherited {
			t.overrideBlock(name, early[name])
			continue
		}
		t.blocks[name] = early[name]
	}

	args.Loader.logger.Debug(LogMsgTemplateExtended,
		zap.String(LogFieldTemplate, t.name),
		zap.String(LogFieldParent, parent.name),
	)
	return nil, nil
}
