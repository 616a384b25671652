package di

import (
	"fmt"
	"reflect"
	"strings"
)

// DefaultScopeName is the name under which dependency scopes are attached.
const DefaultScopeName = "ext"

// Scope maps a dependency alias to its resolved value.
type Scope map[string]any

// Get returns the value resolved for alias.
func (s Scope) Get(alias string) (any, bool) {
	v, ok := s[alias]
	return v, ok
}

// ScopeValue returns the value resolved for alias as T.
func ScopeValue[T any](s Scope, alias string) (T, bool) {
	var zero T
	v, ok := s[alias]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

var (
	scopeType = reflect.TypeOf(Scope(nil))
	mapType   = reflect.TypeOf(map[string]any(nil))
)

// attachScope stores scope on value under name. Supported targets, in
// order: a ScopeReceiver, a string-keyed map, or a pointer to a struct with
// an exported Scope or map[string]any field whose name matches name
// case-insensitively.
func attachScope(value any, name string, scope Scope) error {
	switch v := value.(type) {
	case ScopeReceiver:
		v.ReceiveScope(name, scope)
		return nil
	case map[string]any:
		v[name] = scope
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String && !rv.IsNil() &&
		reflect.TypeOf(scope).AssignableTo(rv.Type().Elem()) {
		rv.SetMapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()), reflect.ValueOf(scope))
		return nil
	}

	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("cannot attach scope %q to %T", name, value)
	}
	st := rv.Elem()
	for i := 0; i < st.NumField(); i++ {
		field := st.Type().Field(i)
		if !field.IsExported() || !strings.EqualFold(field.Name, name) {
			continue
		}
		switch field.Type {
		case scopeType:
			st.Field(i).Set(reflect.ValueOf(scope))
			return nil
		case mapType:
			st.Field(i).Set(reflect.ValueOf(map[string]any(scope)))
			return nil
		}
		return fmt.Errorf("field %s of %T has type %s, want di.Scope", field.Name, value, field.Type)
	}
	return fmt.Errorf("cannot attach scope %q to %T", name, value)
}
