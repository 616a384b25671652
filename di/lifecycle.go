package di

import (
	"context"
	"fmt"

	"github.com/kbukum/aliasdi/errors"
)

// runLifecycle hands the container to LocatorAware values, then runs Init
// with a fresh copy of the entry params. A non-nil Init result replaces value.
func (c *Container) runLifecycle(ctx context.Context, alias string, value any, entry AliasEntry) (any, error) {
	if aware, ok := value.(LocatorAware); ok {
		aware.UseLocator(c)
	}

	initializer, ok := value.(Initializer)
	if !ok {
		return value, nil
	}

	result, err := initializer.Init(ctx, entry.paramsCopy())
	if err != nil {
		if errors.IsCyclicDependency(err) {
			return nil, err
		}
		return nil, errors.Resolution(alias, fmt.Sprintf("%s: init failed", alias)).WithCause(err)
	}
	if isNil(result) {
		return value, nil
	}
	return result, nil
}
