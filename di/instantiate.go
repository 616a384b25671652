package di

import (
	"context"
	"fmt"

	"github.com/kbukum/aliasdi/errors"
	"github.com/kbukum/aliasdi/module"
)

// Instance is the output of the Instantiator. Class is the constructible
// value an instance was built from; it is nil for strategies that do not
// construct.
type Instance struct {
	Value    any
	Class    any
	Strategy Strategy
}

// Instantiator executes the load/construct strategy of one alias entry.
type Instantiator struct {
	resolver module.Resolver
}

// NewInstantiator creates an Instantiator that loads modules through resolver.
func NewInstantiator(resolver module.Resolver) *Instantiator {
	return &Instantiator{resolver: resolver}
}

// Instantiate loads the module of entry and applies its strategy:
//
//	className  instantiate  result
//	yes        yes          construct the named export with params
//	no         yes          construct the module with params
//	yes        no           the named export
//	no         no           the module
//
// A missing or empty result is a resolution error. Constructibility is
// checked before anything is constructed.
func (in *Instantiator) Instantiate(ctx context.Context, alias string, entry AliasEntry) (Instance, error) {
	strategy := entry.Strategy()

	mod, err := in.resolver.Resolve(ctx, entry.Module)
	if err != nil {
		return Instance{}, errors.Resolution(alias,
			fmt.Sprintf("%s: cannot load module %q", alias, entry.Module)).WithCause(err)
	}

	target := mod
	if entry.ClassName != "" {
		export, ok := module.Export(mod, entry.ClassName)
		if !ok {
			return Instance{}, errors.EmptyResult(alias).WithDetail("export", entry.ClassName)
		}
		target = export
	}
	if isFalsy(target) {
		return Instance{}, errors.EmptyResult(alias)
	}

	if !entry.Instantiate {
		return Instance{Value: target, Strategy: strategy}, nil
	}

	ctor, ok := module.AsConstructor(target)
	if !ok {
		return Instance{}, errors.Instantiation(alias, target)
	}
	value, err := ctor.Construct(ctx, entry.paramsCopy())
	if err != nil {
		return Instance{}, errors.Resolution(alias,
			fmt.Sprintf("%s: construction failed", alias)).WithCause(err)
	}
	if isFalsy(value) {
		return Instance{}, errors.EmptyResult(alias)
	}

	return Instance{Value: value, Class: target, Strategy: strategy}, nil
}
