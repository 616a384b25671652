// Package module defines the boundary between the container and whatever
// turns a module specifier into a runtime value.
//
// The container only ever talks to a Resolver. Table is the in-memory
// Resolver used by applications that register their modules up front, and
// doubles as the test double for the container.
//
//	table := module.NewTable()
//	table.Define("store/postgres", module.Exports{
//	    "Store": module.ConstructorFunc(func(ctx context.Context, params any) (any, error) {
//	        return postgres.New(params)
//	    }),
//	})
//
// A module value exposes named exports through Exporter, a map[string]any,
// or the exported fields and methods of a struct. A value is constructible
// when it implements Constructor.
package module
