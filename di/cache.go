package di

import (
	"context"
	"sync"

	"github.com/kbukum/aliasdi/errors"
)

// call is one resolution of an alias. done is closed once value and err
// are final.
type call struct {
	done  chan struct{}
	value any
	err   error
	// waitingOn is the alias this call's resolver is currently blocked on.
	waitingOn string
}

type acquireState int

const (
	stateCached acquireState = iota
	stateJoined
	stateOwned
)

// InstanceCache memoizes resolved values per alias and tracks resolutions
// in flight so concurrent callers share one.
type InstanceCache struct {
	mu      sync.Mutex
	values  map[string]*call
	order   []string
	pending map[string]*call
}

// NewInstanceCache creates an empty cache.
func NewInstanceCache() *InstanceCache {
	return &InstanceCache{
		values:  make(map[string]*call),
		pending: make(map[string]*call),
	}
}

// Lookup returns the cached value of alias.
func (ic *InstanceCache) Lookup(alias string) (any, bool) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	c, ok := ic.values[alias]
	if !ok {
		return nil, false
	}
	return c.value, true
}

// Cached reports whether alias has a final value.
func (ic *InstanceCache) Cached(alias string) bool {
	_, ok := ic.Lookup(alias)
	return ok
}

// Order returns the cached aliases in the order their resolution finished.
func (ic *InstanceCache) Order() []string {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	return append([]string(nil), ic.order...)
}

// acquire finds the call for alias on behalf of a resolver whose current
// path is chain. A request that would close a loop, either on the path
// itself or through resolutions other goroutines are blocked on, fails with
// a cyclic dependency error instead of blocking forever.
func (ic *InstanceCache) acquire(alias string, chain []string) (*call, acquireState, error) {
	ic.mu.Lock()
	defer ic.mu.Unlock()

	if c, ok := ic.values[alias]; ok {
		return c, stateCached, nil
	}
	if contains(chain, alias) {
		return nil, 0, errors.CyclicDependency(append(append([]string(nil), chain...), alias))
	}

	if c, ok := ic.pending[alias]; ok {
		if loop := ic.waitLoop(alias, chain); loop != nil {
			return nil, 0, errors.CyclicDependency(loop)
		}
		ic.markWaiting(chain, alias)
		return c, stateJoined, nil
	}

	c := &call{done: make(chan struct{})}
	ic.pending[alias] = c
	ic.markWaiting(chain, alias)
	return c, stateOwned, nil
}

// waitLoop follows what the resolver of alias is blocked on. If that walk
// reaches an alias on chain, waiting would deadlock; the loop is returned.
func (ic *InstanceCache) waitLoop(alias string, chain []string) []string {
	path := []string{alias}
	seen := map[string]bool{alias: true}
	for cur := alias; ; {
		c, ok := ic.pending[cur]
		if !ok || c.waitingOn == "" {
			return nil
		}
		next := c.waitingOn
		path = append(path, next)
		if contains(chain, next) {
			return append(append([]string(nil), chain...), path...)
		}
		if seen[next] {
			return nil
		}
		seen[next] = true
		cur = next
	}
}

func (ic *InstanceCache) markWaiting(chain []string, alias string) {
	if len(chain) == 0 {
		return
	}
	if parent, ok := ic.pending[last(chain)]; ok {
		parent.waitingOn = alias
	}
}

// release clears the blocked-on marker of the resolver at the end of chain.
func (ic *InstanceCache) release(chain []string) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if len(chain) == 0 {
		return
	}
	if parent, ok := ic.pending[last(chain)]; ok {
		parent.waitingOn = ""
	}
}

// complete publishes the outcome of an owned call. Failures are not cached:
// the alias goes back to uncached and the next Get starts over.
func (ic *InstanceCache) complete(alias string, c *call, value any, err error) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	delete(ic.pending, alias)
	c.value, c.err = value, err
	if err == nil {
		ic.values[alias] = c
		ic.order = append(ic.order, alias)
	}
	close(c.done)
}

// wait blocks until c completes or ctx ends.
func (c *call) wait(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		return c.value, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
