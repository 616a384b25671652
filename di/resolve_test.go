package di

import (
	"context"
	"testing"

	"github.com/kbukum/aliasdi/module"
)

func TestTypedResolve(t *testing.T) {
	table := module.NewTable()
	table.Define("S", &serviceClass{name: "s"})
	c := newTestContainer(t, table, WithConfig(map[string]any{"s": constructed("S")}))
	ctx := context.Background()

	s, err := Resolve[*service](ctx, c, "s")
	if err != nil || s.Name != "s" {
		t.Fatalf("Resolve failed: %v", err)
	}

	if _, err := Resolve[string](ctx, c, "s"); err == nil {
		t.Error("expected type mismatch error")
	}
	if _, ok := TryResolve[*service](ctx, c, "missing"); ok {
		t.Error("expected TryResolve to report false for missing alias")
	}
	if got := MustResolve[*service](ctx, c, "s"); got != s {
		t.Error("expected MustResolve to return the cached instance")
	}

	defer func() {
		if recover() == nil {
			t.Error("expected MustResolve to panic on type mismatch")
		}
	}()
	MustResolve[int](ctx, c, "s")
}
