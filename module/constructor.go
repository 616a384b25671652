package module

import (
	"context"
)

// Constructor is implemented by module values that can produce new
// instances. params is nil when the alias declares none.
type Constructor interface {
	Construct(ctx context.Context, params any) (any, error)
}

// ConstructorFunc adapts a function to the Constructor interface.
type ConstructorFunc func(ctx context.Context, params any) (any, error)

// Construct calls f(ctx, params).
func (f ConstructorFunc) Construct(ctx context.Context, params any) (any, error) {
	return f(ctx, params)
}

// AsConstructor reports whether v is constructible.
func AsConstructor(v any) (Constructor, bool) {
	c, ok := v.(Constructor)
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}
