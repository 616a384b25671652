package di

import (
	"math"
	"reflect"

	clone "github.com/huandu/go-clone"
)

// Strategy names one of the four load/construct combinations.
type Strategy string

const (
	// StrategyModule returns the loaded module itself.
	StrategyModule Strategy = "module"
	// StrategyExport returns a named export of the module.
	StrategyExport Strategy = "export"
	// StrategyConstruct constructs the module itself.
	StrategyConstruct Strategy = "construct"
	// StrategyConstructExport constructs a named export of the module.
	StrategyConstructExport Strategy = "construct_export"
)

// AliasEntry is the normalized registration of one alias. An empty
// ClassName means the module itself is the target.
type AliasEntry struct {
	Module      string `json:"module" yaml:"module"`
	ClassName   string `json:"className,omitempty" yaml:"className,omitempty"`
	Instantiate bool   `json:"instantiate" yaml:"instantiate"`
	Params      any    `json:"params,omitempty" yaml:"params,omitempty"`
	HasParams   bool   `json:"-" yaml:"-"`
}

// Strategy returns the load/construct strategy selected by the entry.
func (e AliasEntry) Strategy() Strategy {
	switch {
	case e.ClassName != "" && e.Instantiate:
		return StrategyConstructExport
	case e.Instantiate:
		return StrategyConstruct
	case e.ClassName != "":
		return StrategyExport
	default:
		return StrategyModule
	}
}

// paramsCopy returns a deep copy of the params so no two resolutions share
// mutable parameter state.
func (e AliasEntry) paramsCopy() any {
	return deepCopy(e.Params)
}

func deepCopy(v any) any {
	if v == nil {
		return nil
	}
	return clone.Clone(v)
}

// isFalsy reports whether v counts as "no value": nil, a nil reference,
// false, the empty string or a numeric zero.
func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// isNil reports whether v is nil or a nil reference.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
