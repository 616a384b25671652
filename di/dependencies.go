package di

import (
	"context"
	"fmt"

	"github.com/kbukum/aliasdi/errors"
)

// declaredNeeds asks the class first and the value second for the aliases
// they need.
func declaredNeeds(class, value any) []string {
	if dep, ok := class.(Dependent); ok {
		return dep.Needs()
	}
	if dep, ok := value.(Dependent); ok {
		return dep.Needs()
	}
	return nil
}

// wireDependencies resolves every declared dependency of inst, one after
// the other in declared order, into a fresh scope attached to the value.
func (c *Container) wireDependencies(ctx context.Context, alias string, inst Instance) error {
	needs := declaredNeeds(inst.Class, inst.Value)
	if len(needs) == 0 {
		return nil
	}

	scope := make(Scope, len(needs))
	if err := attachScope(inst.Value, c.scopeName, scope); err != nil {
		return errors.Resolution(alias, fmt.Sprintf("%s: %v", alias, err))
	}

	for _, dep := range needs {
		value, err := c.Get(ctx, dep)
		if err != nil {
			if errors.IsCyclicDependency(err) {
				return err
			}
			return errors.Resolution(alias,
				fmt.Sprintf("%s: dependency %q failed", alias, dep)).WithCause(err)
		}
		scope[dep] = value
	}
	return nil
}
