// Package validation checks task submissions and request payloads.
//
// The task form rules (title, description, email) live in FieldValidator and
// produce a Result with one localized message per failing field. Request DTOs
// use go-playground/validator struct tags through BindAndValidate. Both paths
// end up as errs.FieldError slices so clients see a single error shape.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared by every check in this package. validator caches struct
// metadata per instance, so one instance is kept for the whole process.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report json names ("title") instead of Go field names ("Title").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return validate.Struct(s)
}
