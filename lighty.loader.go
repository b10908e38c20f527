package lighty

import (
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Loader is the name-to-template registry used for inheritance and
// inclusion. Names are unique within a loader; registering a name again
// replaces the previous template. A Loader is safe for concurrent use.
type Loader struct {
	tags       *TagRegistry
	filters    *FilterRegistry
	logger     *zap.Logger
	extensions []string

	mu        sync.RWMutex
	templates map[string]*Template

	// parseMu serializes lazy parses so nested extend lookups run on one call stack
	parseMu sync.Mutex
}

// NewLoader creates a loader that parses with the given registries
func NewLoader(tags *TagRegistry, filters *FilterRegistry, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tags == nil {
		tags = NewTagRegistry(logger)
		registerBuiltinTags(tags)
	}
	if filters == nil {
		filters = NewFilterRegistry(logger)
		registerBuiltinFilters(filters)
	}
	logger.Debug(LogMsgLoaderCreated)
	return &Loader{
		tags:      tags,
		filters:   filters,
		logger:    logger,
		templates: make(map[string]*Template),
	}
}

// SetExtensions limits LoadDir and LoadFS to files with one of the given
// suffixes (".html"). An empty list accepts every file.
func (l *Loader) SetExtensions(exts ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.extensions = append([]string(nil), exts...)
}

// Register stores t under name, replacing any existing template
func (l *Loader) Register(name string, t *Template) error {
	if name == "" {
		return NewRegistryError(ErrMsgEmptyTemplateName, name)
	}
	if t == nil {
		return NewRegistryError(ErrMsgNilTemplate, name)
	}

	l.mu.Lock()
	l.templates[name] = t
	l.mu.Unlock()

	l.logger.Debug(LogMsgTemplateRegistered, zap.String(LogFieldTemplate, name))
	return nil
}

// Parse parses source immediately and registers the result under name.
// Nothing is registered when parsing fails.
func (l *Loader) Parse(name, source string) (*Template, error) {
	if name == "" {
		return nil, NewRegistryError(ErrMsgEmptyTemplateName, name)
	}
	t := newTemplate(name, source, l)

	l.parseMu.Lock()
	err := t.parseLocked(nil)
	l.parseMu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := l.Register(name, t); err != nil {
		return nil, err
	}
	return t, nil
}

// MustParse is like Parse but panics on error
func (l *Loader) MustParse(name, source string) *Template {
	t, err := l.Parse(name, source)
	if err != nil {
		panic(err)
	}
	return t
}

// AddLazy registers source under name without parsing it. The template
// parses on first use, which lets a parent be registered after its children.
func (l *Loader) AddLazy(name, source string) (*Template, error) {
	if name == "" {
		return nil, NewRegistryError(ErrMsgEmptyTemplateName, name)
	}
	t := newTemplate(name, source, l)

	l.mu.Lock()
	l.templates[name] = t
	l.mu.Unlock()

	l.logger.Debug(LogMsgTemplateLazy, zap.String(LogFieldTemplate, name))
	return t, nil
}

// GetTemplate returns the named template, parsing it first if it is lazy.
// An unknown name is an error, as is a template whose parse failed.
//
// Eager tag handlers run while the loader is parsing; they must use
// TagArgs.LoadTemplate instead.
func (l *Loader) GetTemplate(name string) (*Template, error) {
	t, err := l.lookup(name)
	if err != nil {
		return nil, err
	}
	if err := t.ensureParsed(); err != nil {
		return nil, err
	}
	return t, nil
}

// Has reports whether a template is registered under name
func (l *Loader) Has(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.templates[name]
	return ok
}

// List returns the registered template names in sorted order
func (l *Loader) List() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.templates))
	for name := range l.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered templates
func (l *Loader) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.templates)
}

// ParseAll parses every registered template in name order and returns the
// first failure, annotated with the template name.
func (l *Loader) ParseAll() error {
	l.logger.Debug(LogMsgPreloadStart, zap.Int(LogFieldCount, l.Count()))
	for _, name := range l.List() {
		t, err := l.lookup(name)
		if err != nil {
			return err
		}
		if err := t.ensureParsed(); err != nil {
			return NewPreloadError(name, err)
		}
	}
	return nil
}

// Validate parses every registered template and returns the failures by name
func (l *Loader) Validate() map[string]error {
	failures := make(map[string]error)
	for _, name := range l.List() {
		t, err := l.lookup(name)
		if err != nil {
			failures[name] = err
			continue
		}
		if err := t.ensureParsed(); err != nil {
			failures[name] = err
		}
	}
	return failures
}

// LoadDir registers every file below each root as a lazy template named by
// its slash-separated path relative to the root.
func (l *Loader) LoadDir(roots ...string) error {
	for _, root := range roots {
		if err := l.LoadFS(os.DirFS(root)); err != nil {
			return NewTemplateLoadError(ErrMsgLoadDirFailed, root, err)
		}
		l.logger.Debug(LogMsgDirScanned, zap.String(LogFieldRoot, root))
	}
	return nil
}

// LoadFS registers every matching file of fsys as a lazy template
func (l *Loader) LoadFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !l.acceptsFile(p) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return NewTemplateLoadError(ErrMsgReadFailed, p, err)
		}
		_, err = l.AddLazy(path.Clean(p), string(data))
		return err
	})
}

func (l *Loader) acceptsFile(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.extensions) == 0 {
		return true
	}
	for _, ext := range l.extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

func (l *Loader) lookup(name string) (*Template, error) {
	l.mu.RLock()
	t, ok := l.templates[name]
	l.mu.RUnlock()

	if !ok {
		return nil, NewTemplateNotFoundError(name, l.List())
	}
	return t, nil
}

// resolveLocked returns the named template parsed; the caller holds parseMu
func (l *Loader) resolveLocked(name string, chain []string) (*Template, error) {
	t, err := l.lookup(name)
	if err != nil {
		return nil, err
	}
	if err := t.parseLocked(chain); err != nil {
		return nil, err
	}
	return t, nil
}
