package lighty

import (
	"sort"
	"strings"

	"github.com/itsatony/go-lighty/internal"
)

// Context holds the render-time variables a template is evaluated against.
// A Context is never mutated after creation: Child layers new bindings on top
// of an existing context, so concurrent renders sharing a parent never observe
// each other's loop or with variables.
type Context struct {
	data   map[string]any
	parent *Context
}

// NewContext creates a new render context with the given data.
// If data is nil, an empty map is used.
func NewContext(data map[string]any) *Context {
	if data == nil {
		data = make(map[string]any)
	}
	return &Context{data: data}
}

// Child returns a context that resolves vars first and falls back to c
func (c *Context) Child(vars map[string]any) *Context {
	if vars == nil {
		vars = make(map[string]any)
	}
	return &Context{data: vars, parent: c}
}

// Parent returns the context this one was derived from, or nil for a root context
func (c *Context) Parent() *Context {
	return c.parent
}

// Lookup resolves a dotted path ("user.profile.name"). The first segment is
// looked up from the innermost binding outwards; the remaining segments walk
// into the value by map key, struct field, method or index.
func (c *Context) Lookup(path string) (any, bool) {
	val, _, ok := c.resolve(path)
	return val, ok
}

// Get resolves a dotted path like Lookup but reports a lookup error naming
// the path when any segment is missing.
func (c *Context) Get(path string) (any, error) {
	val, failed, ok := c.resolve(path)
	if ok {
		return val, nil
	}
	if failed == 0 {
		segments := internal.SplitPath(path)
		return nil, NewVariableNotFoundError(path, segments[0], c.Keys())
	}
	segments := internal.SplitPath(path)
	return nil, NewVariableNotFoundError(path, segments[failed], nil)
}

// Has reports whether path resolves
func (c *Context) Has(path string) bool {
	_, ok := c.Lookup(path)
	return ok
}

// Keys returns every top-level variable name visible from c, sorted
func (c *Context) Keys() []string {
	seen := make(map[string]struct{})
	for ctx := c; ctx != nil; ctx = ctx.parent {
		for k := range ctx.data {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Data returns a flattened copy of every visible top-level binding
func (c *Context) Data() map[string]any {
	out := make(map[string]any)
	var chain []*Context
	for ctx := c; ctx != nil; ctx = ctx.parent {
		chain = append(chain, ctx)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].data {
			out[k] = v
		}
	}
	return out
}

// resolve returns the value, or the index of the first segment that failed
func (c *Context) resolve(path string) (any, int, bool) {
	if c == nil || strings.TrimSpace(path) == "" {
		return nil, 0, false
	}
	segments := internal.SplitPath(path)

	for ctx := c; ctx != nil; ctx = ctx.parent {
		root, ok := ctx.data[segments[0]]
		if !ok {
			continue
		}
		// The innermost binding shadows outer ones even when the rest of the path fails
		val, failed, ok := internal.Resolve(root, segments[1:])
		if !ok {
			return nil, failed + 1, false
		}
		return val, len(segments), true
	}
	return nil, 0, false
}
