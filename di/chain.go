package di

import "context"

type chainKey struct{}

// chainFrom returns the aliases being resolved on the current call path,
// outermost first.
func chainFrom(ctx context.Context) []string {
	chain, _ := ctx.Value(chainKey{}).([]string)
	return chain
}

func withAlias(ctx context.Context, chain []string, alias string) context.Context {
	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	return context.WithValue(ctx, chainKey{}, append(next, alias))
}

func contains(chain []string, alias string) bool {
	for _, a := range chain {
		if a == alias {
			return true
		}
	}
	return false
}

func last(chain []string) string {
	if len(chain) == 0 {
		return ""
	}
	return chain[len(chain)-1]
}
