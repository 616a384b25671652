package module

import (
	"reflect"
)

// Exporter is implemented by module values that resolve their own named exports.
type Exporter interface {
	Export(name string) (any, bool)
}

// Exports is a module value made of named exports.
type Exports map[string]any

// Export implements Exporter.
func (e Exports) Export(name string) (any, bool) {
	v, ok := e[name]
	return v, ok
}

// Export looks up the named export of mod. Lookup order: Exporter, a
// map keyed by string, then an exported struct field or method of that name.
func Export(mod any, name string) (any, bool) {
	switch m := mod.(type) {
	case nil:
		return nil, false
	case Exporter:
		return m.Export(name)
	case map[string]any:
		v, ok := m[name]
		return v, ok
	}

	rv := reflect.ValueOf(mod)
	if method := rv.MethodByName(name); method.IsValid() {
		return method.Interface(), true
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	field, ok := rv.Type().FieldByName(name)
	if !ok || !field.IsExported() {
		return nil, false
	}
	// Promoted fields of a nil embedded pointer have no value.
	fv, err := rv.FieldByIndexErr(field.Index)
	if err != nil {
		return nil, false
	}
	return fv.Interface(), true
}
