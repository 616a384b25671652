package di

import (
	"context"
	"testing"

	"github.com/kbukum/aliasdi/errors"
	"github.com/kbukum/aliasdi/module"
)

type receiver struct {
	name  string
	scope Scope
}

func (r *receiver) Needs() []string { return []string{"dep"} }

func (r *receiver) ReceiveScope(name string, scope Scope) {
	r.name = name
	r.scope = scope
}

type mapValue map[string]any

func (m mapValue) Needs() []string { return []string{"dep"} }

type lowerField struct {
	Deps map[string]any
}

func (l *lowerField) Needs() []string { return []string{"dep"} }

type noField struct{ Other string }

func (n *noField) Needs() []string { return []string{"dep"} }

type wrongType struct{ Deps []string }

func (w *wrongType) Needs() []string { return []string{"dep"} }

func TestScopeAttachment(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		scope   func(v any) Scope
		wantErr bool
	}{
		{
			name:  "scope receiver",
			value: &receiver{},
			scope: func(v any) Scope {
				r := v.(*receiver)
				if r.name != "deps" {
					t.Errorf("expected scope name deps, got %q", r.name)
				}
				return r.scope
			},
		},
		{
			name:  "string keyed map",
			value: mapValue{},
			scope: func(v any) Scope {
				s, _ := v.(mapValue)["deps"].(Scope)
				return s
			},
		},
		{
			name:  "struct field matched case-insensitively",
			value: &lowerField{},
			scope: func(v any) Scope { return Scope(v.(*lowerField).Deps) },
		},
		{name: "no matching field", value: &noField{}, wantErr: true},
		{name: "field of wrong type", value: &wrongType{}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			table := module.NewTable()
			table.Define("V", module.Exports{"Value": tc.value})
			table.Define("D", "dependency")
			c := newTestContainer(t, table, WithScopeName("deps"), WithConfig(map[string]any{
				"v":   map[string]any{"module": "V", "className": "Value"},
				"dep": "D",
			}))

			v, err := c.Get(context.Background(), "v")
			if tc.wantErr {
				if !errors.IsResolution(err) {
					t.Fatalf("expected resolution error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			scope := tc.scope(v)
			if scope["dep"] != "dependency" {
				t.Errorf("expected dep in scope, got %v", scope)
			}
		})
	}
}

func TestScopeIsPerInstance(t *testing.T) {
	table := module.NewTable()
	table.Define("S", &serviceClass{name: "s", deps: []string{"d"}})
	table.Define("D", "dep")
	c := newTestContainer(t, table, WithConfig(map[string]any{
		"one": constructed("S"),
		"two": constructed("S"),
		"d":   "D",
	}))

	one := mustGet(t, c, "one").(*service)
	two := mustGet(t, c, "two").(*service)
	one.Ext["extra"] = true
	if _, leaked := two.Ext["extra"]; leaked {
		t.Error("expected each instance to get its own scope")
	}
}

func TestScopeValue(t *testing.T) {
	s := Scope{"n": 3, "name": "db"}

	if n, ok := ScopeValue[int](s, "n"); !ok || n != 3 {
		t.Errorf("expected 3, got %v %v", n, ok)
	}
	if _, ok := ScopeValue[int](s, "name"); ok {
		t.Error("expected type mismatch to report false")
	}
	if _, ok := ScopeValue[string](s, "missing"); ok {
		t.Error("expected missing alias to report false")
	}
	if v, ok := s.Get("name"); !ok || v != "db" {
		t.Errorf("expected db, got %v", v)
	}
}
