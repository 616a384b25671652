// Package validation validates configuration structs.
//
// Struct tag validation uses the go-playground validator with one extra
// tag, ident, for names that end up as map keys or struct field names:
//
//	type Settings struct {
//	    Scope string `mapstructure:"scope" validate:"omitempty,ident"`
//	}
//	err := validation.Validate(settings)
//
// Checks that depend on more than one field use the collecting Validator:
//
//	v := validation.New()
//	v.OneOf("environment", cfg.Environment, environments)
//	err := v.Err()
//
// Both return an *errors.AppError with code INVALID_INPUT and the failing
// fields under the "fields" detail.
package validation
