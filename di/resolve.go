package di

import (
	"context"
	"fmt"
)

// Resolve gets alias from the container as T.
//
// Example:
//
//	store, err := di.Resolve[*postgres.Store](ctx, c, "store")
//	if err != nil {
//	    return fmt.Errorf("failed to get store: %w", err)
//	}
func Resolve[T any](ctx context.Context, l Locator, alias string) (T, error) {
	var zero T
	v, err := l.Get(ctx, alias)
	if err != nil {
		return zero, err
	}
	result, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("di: %s is %T, expected %T", alias, v, zero)
	}
	return result, nil
}

// MustResolve is Resolve that panics on failure.
func MustResolve[T any](ctx context.Context, l Locator, alias string) T {
	result, err := Resolve[T](ctx, l, alias)
	if err != nil {
		panic(fmt.Sprintf("di: failed to resolve %s: %v", alias, err))
	}
	return result
}

// TryResolve returns the zero value and false when alias cannot be
// resolved as T. Use it for optional dependencies.
//
//	if metrics, ok := di.TryResolve[Metrics](ctx, c, "metrics"); ok {
//	    metrics.Count("boot")
//	}
func TryResolve[T any](ctx context.Context, l Locator, alias string) (T, bool) {
	result, err := Resolve[T](ctx, l, alias)
	if err != nil {
		var zero T
		return zero, false
	}
	return result, true
}
