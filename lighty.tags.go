package lighty

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// TagHandler implements a tag. Lazy tags run on every render with the live
// Context; eager tags run once while the template is parsed.
//
// The returned value decides what the tag contributes to the template:
// a string is written as is, a Command is rendered in place (or, for eager
// tags, inserted into the command list) and nil contributes nothing.
type TagHandler func(ctx context.Context, args *TagArgs) (any, error)

// TagSpec is the registration record of a tag
type TagSpec struct {
	Name    string
	Handler TagHandler

	// Block tags consume a body up to the matching {% end<name> %}
	Block bool

	// Lazy tags are invoked per render. Eager tags are invoked at parse time.
	Lazy bool

	// Declared requirements. Every handler receives the full TagArgs; these
	// flags document what it reads and are checked at registration.
	NeedsContext  bool
	NeedsTemplate bool
	NeedsLoader   bool

	// Validate, when set, checks the tag arguments at parse time
	Validate func(token string) error
}

// TagArgs carries everything a tag handler may use
type TagArgs struct {
	Name     string
	Token    string    // argument text after the tag name
	Block    []Command // body of a block tag
	Context  *Context  // live context; nil for eager tags
	Template *Template // template that contains the tag
	Loader   *Loader
	Position Position

	// Nested is true when the tag sits inside another open block tag
	Nested bool
	// Enclosing names the innermost open block tag; empty at the top level
	Enclosing string

	parsing bool     // invoked by the parser, which holds the loader parse lock
	chain   []string // templates being parsed, outermost first
}

// RenderBlock renders the tag body against data
func (a *TagArgs) RenderBlock(ctx context.Context, data *Context) (string, error) {
	return RenderCommands(ctx, a.Block, data)
}

// LoadTemplate looks up a template through the loader. Eager handlers must
// use it instead of Loader.GetTemplate because they run while the loader is
// already parsing.
func (a *TagArgs) LoadTemplate(name string) (*Template, error) {
	if a.Loader == nil {
		return nil, NewTemplateNotFoundError(name, nil)
	}
	if a.parsing {
		return a.Loader.resolveLocked(name, a.chain)
	}
	return a.Loader.GetTemplate(name)
}

// TagRegistry maps tag names to tag specs. Registering an existing name
// replaces it. It is safe for concurrent use.
type TagRegistry struct {
	tags   map[string]*TagSpec
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewTagRegistry creates an empty tag registry
func NewTagRegistry(logger *zap.Logger) *TagRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TagRegistry{
		tags:   make(map[string]*TagSpec),
		logger: logger,
	}
}

// Register adds a tag, replacing any tag with the same name
func (r *TagRegistry) Register(spec TagSpec) error {
	switch {
	case spec.Name == "":
		return NewRegistryError(ErrMsgEmptyTagName, spec.Name)
	case spec.Handler == nil:
		return NewRegistryError(ErrMsgNilTagHandler, spec.Name)
	case strings.HasPrefix(spec.Name, EndTagPrefix):
		return NewRegistryError(ErrMsgReservedTagName, spec.Name)
	case !spec.Lazy && spec.NeedsContext:
		return NewRegistryError(ErrMsgEagerNeedsContext, spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tags[spec.Name]; exists {
		r.logger.Warn(LogMsgTagOverwritten, zap.String(LogFieldTag, spec.Name))
	}
	r.tags[spec.Name] = &spec
	r.logger.Debug(LogMsgTagRegistered,
		zap.String(LogFieldTag, spec.Name),
	)
	return nil
}

// MustRegister adds a tag and panics if registration fails
func (r *TagRegistry) MustRegister(spec TagSpec) {
	if err := r.Register(spec); err != nil {
		panic(err)
	}
}

// Get retrieves a tag spec by name
func (r *TagRegistry) Get(name string) (*TagSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.tags[name]
	return spec, ok
}

// Has reports whether a tag is registered under name
func (r *TagRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns the registered tag names in sorted order
func (r *TagRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tags))
	for name := range r.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tags
func (r *TagRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tags)
}
