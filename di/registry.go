package di

import (
	"sort"
	"sync"
)

// AliasRegistry holds the merged alias entries of a container.
type AliasRegistry struct {
	mu      sync.RWMutex
	entries map[string]AliasEntry
}

// NewAliasRegistry creates an empty registry.
func NewAliasRegistry() *AliasRegistry {
	return &AliasRegistry{entries: make(map[string]AliasEntry)}
}

// Merge stores entries alias by alias. An existing entry is replaced as a
// whole; fields are never merged.
func (r *AliasRegistry) Merge(entries map[string]AliasEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for alias, entry := range entries {
		r.entries[alias] = entry
	}
}

// Entry returns the entry registered for alias.
func (r *AliasRegistry) Entry(alias string) (AliasEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[alias]
	return entry, ok
}

// Aliases returns the registered aliases in sorted order.
func (r *AliasRegistry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	aliases := make([]string, 0, len(r.entries))
	for alias := range r.entries {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Len returns the number of registered aliases.
func (r *AliasRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
