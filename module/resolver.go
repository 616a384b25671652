package module

import (
	"context"
	"sort"
	"sync"

	"github.com/kbukum/aliasdi/errors"
)

// Resolver turns a module specifier into a runtime value.
type Resolver interface {
	Resolve(ctx context.Context, specifier string) (any, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, specifier string) (any, error)

// Resolve calls f(ctx, specifier).
func (f ResolverFunc) Resolve(ctx context.Context, specifier string) (any, error) {
	return f(ctx, specifier)
}

// Loader produces a module value on first use.
type Loader func(ctx context.Context) (any, error)

type tableEntry struct {
	loader Loader
	mu     sync.Mutex
	done   bool
	value  any
}

// load runs the loader until it succeeds once. Failures are not kept, so a
// load that failed under a cancelled context can be retried.
func (e *tableEntry) load(ctx context.Context) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done {
		return e.value, nil
	}
	value, err := e.loader(ctx)
	if err != nil {
		return nil, err
	}
	e.value, e.done = value, true
	return value, nil
}

// Table is an in-memory Resolver. A loader runs until its first successful
// load; that value is remembered like a module cache.
type Table struct {
	mu      sync.RWMutex
	entries map[string]*tableEntry
}

// NewTable creates an empty module table.
func NewTable() *Table {
	return &Table{entries: make(map[string]*tableEntry)}
}

// Define registers a ready module value under specifier, replacing any
// previous definition.
func (t *Table) Define(specifier string, value any) {
	t.DefineLoader(specifier, func(context.Context) (any, error) { return value, nil })
}

// DefineLoader registers a lazily loaded module under specifier.
func (t *Table) DefineLoader(specifier string, loader Loader) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[specifier] = &tableEntry{loader: loader}
}

// Resolve implements Resolver.
func (t *Table) Resolve(ctx context.Context, specifier string) (any, error) {
	t.mu.RLock()
	entry, ok := t.entries[specifier]
	t.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("module", specifier)
	}

	return entry.load(ctx)
}

// Specifiers returns the defined specifiers in sorted order.
func (t *Table) Specifiers() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
