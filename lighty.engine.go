package lighty

import (
	"context"

	"go.uber.org/zap"
)

// Engine owns the tag and filter registries and creates loaders bound to
// them. Built-in tags and filters are registered when the engine is created;
// there is no process-wide registry.
type Engine struct {
	tags    *TagRegistry
	filters *FilterRegistry
	config  *engineConfig
	logger  *zap.Logger
}

// New creates a new lighty Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tags := NewTagRegistry(logger)
	registerBuiltinTags(tags)
	for _, spec := range config.tags {
		if err := tags.Register(spec); err != nil {
			return nil, err
		}
	}

	filters := NewFilterRegistry(logger)
	registerBuiltinFilters(filters)
	for _, f := range config.filters {
		if err := filters.Register(f); err != nil {
			return nil, err
		}
	}

	logger.Debug(LogMsgEngineCreated,
		zap.Int(LogFieldCount, tags.Count()+filters.Count()),
	)
	return &Engine{
		tags:    tags,
		filters: filters,
		config:  config,
		logger:  logger,
	}, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Tags returns the engine's tag registry
func (e *Engine) Tags() *TagRegistry {
	return e.tags
}

// Filters returns the engine's filter registry
func (e *Engine) Filters() *FilterRegistry {
	return e.filters
}

// RegisterFilter is shorthand for Filters().RegisterFunc
func (e *Engine) RegisterFilter(name string, fn FilterFunc) error {
	return e.filters.RegisterFunc(name, fn)
}

// RegisterTag is shorthand for Tags().Register
func (e *Engine) RegisterTag(spec TagSpec) error {
	return e.tags.Register(spec)
}

// NewLoader returns an empty loader bound to the engine's registries
func (e *Engine) NewLoader() *Loader {
	l := NewLoader(e.tags, e.filters, e.logger)
	l.SetExtensions(e.config.extensions...)
	return l
}

// Load returns a loader holding every template of the configured roots.
// With preload enabled every template is parsed before Load returns.
func (e *Engine) Load() (*Loader, error) {
	l := e.NewLoader()
	if err := l.LoadDir(e.config.roots...); err != nil {
		return nil, err
	}
	if e.config.preload {
		if err := l.ParseAll(); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Parse parses a one-off template. It lives in a private loader, so it
// cannot extend or include other templates.
func (e *Engine) Parse(source string) (*Template, error) {
	return e.NewLoader().Parse(DefaultTemplateName, source)
}

// Execute is a convenience method that parses and executes in one step.
// For templates that will be executed multiple times, use Parse() instead.
func (e *Engine) Execute(ctx context.Context, source string, data map[string]any) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return tmpl.Execute(ctx, data)
}
