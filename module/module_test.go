package module

import (
	"context"
	"fmt"
	"testing"

	"github.com/kbukum/aliasdi/errors"
)

type greeter struct {
	Name   string
	hidden string
}

func (g *greeter) Hello() string { return "hello " + g.Name }

type Settings struct {
	Port int
}

type server struct {
	*Settings
}

func TestTableDefineAndResolve(t *testing.T) {
	table := NewTable()
	table.Define("m", Exports{"A": 1})

	v, err := table.Resolve(context.Background(), "m")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, ok := v.(Exports); !ok {
		t.Errorf("expected Exports, got %T", v)
	}
}

func TestTableResolveUnknown(t *testing.T) {
	_, err := NewTable().Resolve(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for unknown specifier")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestTableLoaderRunsOnce(t *testing.T) {
	table := NewTable()
	calls := 0
	table.DefineLoader("lazy", func(context.Context) (any, error) {
		calls++
		return fmt.Sprintf("load-%d", calls), nil
	})

	first, _ := table.Resolve(context.Background(), "lazy")
	second, _ := table.Resolve(context.Background(), "lazy")
	if calls != 1 {
		t.Errorf("expected loader to run once, ran %d times", calls)
	}
	if first != second {
		t.Errorf("expected identical module values, got %v and %v", first, second)
	}
}

func TestTableRetriesFailedLoad(t *testing.T) {
	table := NewTable()
	calls := 0
	table.DefineLoader("lazy", func(ctx context.Context) (any, error) {
		calls++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return "loaded", nil
	})

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := table.Resolve(cancelled, "lazy"); err == nil {
		t.Fatal("expected the cancelled load to fail")
	}

	v, err := table.Resolve(context.Background(), "lazy")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if v != "loaded" {
		t.Errorf("expected loaded, got %v", v)
	}
	if _, err := table.Resolve(context.Background(), "lazy"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected the successful load to be remembered, loader ran %d times", calls)
	}
}

func TestTableSpecifiersSorted(t *testing.T) {
	table := NewTable()
	table.Define("b", 1)
	table.Define("a", 2)
	got := table.Specifiers()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestResolverFunc(t *testing.T) {
	r := ResolverFunc(func(_ context.Context, specifier string) (any, error) { return specifier + "!", nil })
	v, err := r.Resolve(context.Background(), "x")
	if err != nil || v != "x!" {
		t.Errorf("unexpected result %v, %v", v, err)
	}
}

func TestExport(t *testing.T) {
	g := &greeter{Name: "go", hidden: "no"}
	tests := []struct {
		name   string
		mod    any
		export string
		wantOK bool
	}{
		{"exports hit", Exports{"A": 1}, "A", true},
		{"exports miss", Exports{"A": 1}, "B", false},
		{"plain map", map[string]any{"A": 1}, "A", true},
		{"struct field", g, "Name", true},
		{"unexported field", g, "hidden", false},
		{"method", g, "Hello", true},
		{"nil module", nil, "A", false},
		{"scalar module", 42, "A", false},
		{"nil pointer", (*greeter)(nil), "Name", false},
		{"promoted field", &server{Settings: &Settings{Port: 80}}, "Port", true},
		{"promoted through nil embedded pointer", &server{}, "Port", false},
		{"embedded pointer itself", &server{}, "Settings", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Export(tc.mod, tc.export)
			if ok != tc.wantOK {
				t.Errorf("Export(%T, %q) ok = %v, want %v", tc.mod, tc.export, ok, tc.wantOK)
			}
		})
	}

	v, _ := Export(g, "Hello")
	if hello, ok := v.(func() string); !ok || hello() != "hello go" {
		t.Errorf("expected bound method value, got %T", v)
	}
}

func TestAsConstructor(t *testing.T) {
	ctor := ConstructorFunc(func(_ context.Context, params any) (any, error) { return params, nil })
	c, ok := AsConstructor(ctor)
	if !ok {
		t.Fatal("expected ConstructorFunc to be constructible")
	}
	v, err := c.Construct(context.Background(), 7)
	if err != nil || v != 7 {
		t.Errorf("unexpected result %v, %v", v, err)
	}

	if _, ok := AsConstructor("not a constructor"); ok {
		t.Error("expected string to be non-constructible")
	}
	if _, ok := AsConstructor(nil); ok {
		t.Error("expected nil to be non-constructible")
	}
}
