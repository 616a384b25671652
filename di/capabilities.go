package di

import "context"

// Dependent is implemented by values that declare the aliases they need.
// The returned order is the order in which they are resolved.
type Dependent interface {
	Needs() []string
}

// Initializer is implemented by values with an asynchronous init step.
// A non-nil result replaces the value that is cached and returned.
type Initializer interface {
	Init(ctx context.Context, params any) (any, error)
}

// ScopeReceiver is implemented by values that store their dependency scope
// themselves. name is the container's configured scope name.
type ScopeReceiver interface {
	ReceiveScope(name string, scope Scope)
}

// Locator is the view of the container handed to resolved values.
//
// Get calls made from Construct or Init must pass on the ctx those methods
// received. The ctx carries the chain of aliases being resolved; a lookup
// of an ancestor under a fresh context.Background() is not seen as a cycle
// and waits for its own pending resolution forever.
type Locator interface {
	Get(ctx context.Context, alias string) (any, error)
	Register(raw any) error
}

// LocatorAware is implemented by values that want to look up or register
// further aliases at runtime. UseLocator runs before Init.
type LocatorAware interface {
	UseLocator(l Locator)
}
