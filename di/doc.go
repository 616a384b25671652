// Package di is an alias-keyed dependency injection container.
//
// A configuration maps aliases to module descriptors. Register validates
// and merges it; Get lazily resolves an alias, wires the dependencies the
// value declares through Needs, runs its Init hook and caches the final
// value for the life of the container.
//
// # Registration
//
//	c, err := di.New(di.WithResolver(table), di.WithConfig(map[string]any{
//	    "config": "app/config",
//	    "store": map[string]any{
//	        "module":      "store/postgres",
//	        "className":   "Store",
//	        "instantiate": true,
//	        "params":      map[string]any{"dsn": "postgres://localhost/app"},
//	    },
//	}))
//
// # Resolution
//
//	store, err := di.Resolve[*postgres.Store](ctx, c, "store")
//
// # Dependencies
//
// A value that implements Dependent receives a Scope holding every alias it
// needs, resolved in declared order, before its Init runs:
//
//	func (s *Service) Needs() []string { return []string{"config", "store"} }
//
//	func (s *Service) Init(ctx context.Context, params any) (any, error) {
//	    store, _ := di.ScopeValue[*postgres.Store](s.Ext, "store")
//	    ...
//	}
package di
