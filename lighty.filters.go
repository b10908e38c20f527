package lighty

import (
	"sort"
	"sync"

	"github.com/itsatony/go-lighty/internal"
	"go.uber.org/zap"
)

// VariadicArgs as Filter.MaxArgs accepts any number of arguments
const VariadicArgs = -1

// FilterFunc transforms a piped value. args holds the resolved filter
// arguments in order: {{ price|floatformat:2 }} calls fn(price, 2).
type FilterFunc func(value any, args ...any) (any, error)

// Filter is one registered filter
type Filter struct {
	Name    string
	MinArgs int
	MaxArgs int // VariadicArgs for no upper bound
	Fn      FilterFunc
}

// AcceptsArgs reports whether n arguments satisfy the declared bounds
func (f *Filter) AcceptsArgs(n int) bool {
	if n < f.MinArgs {
		return false
	}
	return f.MaxArgs == VariadicArgs || n <= f.MaxArgs
}

// Apply calls the filter and wraps any failure with the filter name
func (f *Filter) Apply(value any, args []any) (any, error) {
	result, err := f.Fn(value, args...)
	if err != nil {
		return nil, NewFilterError(f.Name, err)
	}
	return result, nil
}

// FilterRegistry maps filter names to filters. Registering an existing name
// replaces it. It is safe for concurrent use.
type FilterRegistry struct {
	filters map[string]*Filter
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewFilterRegistry creates an empty filter registry
func NewFilterRegistry(logger *zap.Logger) *FilterRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FilterRegistry{
		filters: make(map[string]*Filter),
		logger:  logger,
	}
}

// Register adds a filter, replacing any filter with the same name
func (r *FilterRegistry) Register(f Filter) error {
	if f.Name == "" {
		return NewRegistryError(ErrMsgEmptyFilterNameReg, f.Name)
	}
	if f.Fn == nil {
		return NewRegistryError(ErrMsgNilFilterFunc, f.Name)
	}
	if f.MaxArgs != VariadicArgs && f.MaxArgs < f.MinArgs {
		return NewRegistryError(ErrMsgInvalidArgRange, f.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.filters[f.Name]; exists {
		r.logger.Warn(LogMsgFilterOverwritten, zap.String(LogFieldFilter, f.Name))
	}
	r.filters[f.Name] = &f
	r.logger.Debug(LogMsgFilterRegistered, zap.String(LogFieldFilter, f.Name))
	return nil
}

// MustRegister adds a filter and panics if registration fails
func (r *FilterRegistry) MustRegister(f Filter) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// RegisterFunc adds a filter that accepts any number of arguments
func (r *FilterRegistry) RegisterFunc(name string, fn FilterFunc) error {
	return r.Register(Filter{Name: name, MinArgs: 0, MaxArgs: VariadicArgs, Fn: fn})
}

// Get retrieves a filter by name
func (r *FilterRegistry) Get(name string) (*Filter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.filters[name]
	return f, ok
}

// Has reports whether a filter is registered under name
func (r *FilterRegistry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// List returns the registered filter names in sorted order
func (r *FilterRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered filters
func (r *FilterRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.filters)
}

// registerBuiltinFilters adds the built-in filter library to r
func registerBuiltinFilters(r *FilterRegistry) {
	for _, b := range internal.Builtins() {
		fn := b.Fn
		r.MustRegister(Filter{
			Name:    b.Name,
			MinArgs: b.MinArgs,
			MaxArgs: b.MaxArgs,
			Fn: func(value any, args ...any) (any, error) {
				return fn(value, args)
			},
		})
	}
}
