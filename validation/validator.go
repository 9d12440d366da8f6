// Package validation wraps go-playground/validator with a shared instance
// and readable error messages for request payloads.
//
//	if verr := validation.ValidateStruct(&input); verr != nil {
//	    writeError(w, http.StatusBadRequest, verr.Error())
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/satheeshds/invoicing/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// RequestValidationError collects every failed rule of one payload.
type RequestValidationError struct {
	Fields []FieldError
}

func (e *RequestValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return strings.Join(msgs, "; ")
}

// Get returns the shared validator. Field names in messages come from the
// json tag so they match what the client sent.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
		validate.RegisterCustomTypeFunc(optionalValue[string], models.Optional[string]{})
		validate.RegisterCustomTypeFunc(optionalValue[int], models.Optional[int]{})
		validate.RegisterCustomTypeFunc(optionalValue[float64], models.Optional[float64]{})
		validate.RegisterCustomTypeFunc(optionalValue[bool], models.Optional[bool]{})
	})
	return validate
}

// optionalValue exposes a models.Optional to the validator as a pointer:
// nil when unset, so "omitnil" skips it, otherwise a pointer to the value.
func optionalValue[T any](field reflect.Value) any {
	o, ok := field.Interface().(models.Optional[T])
	if !ok || !o.Set {
		return (*T)(nil)
	}
	v := o.Value
	return &v
}

// ValidateStruct returns nil or a *RequestValidationError.
func ValidateStruct(s any) *RequestValidationError {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &RequestValidationError{Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}}
	}

	out := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translate(fe),
		}
	}
	return &RequestValidationError{Fields: out}
}

// ValidateVar checks a single value against tag, naming it field in messages.
func ValidateVar(field string, value any, tag string) *RequestValidationError {
	err := Get().Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &RequestValidationError{Fields: []FieldError{{Field: field, Tag: "unknown", Message: err.Error()}}}
	}
	fe := verrs[0]
	return &RequestValidationError{Fields: []FieldError{{
		Field:   field,
		Tag:     fe.Tag(),
		Param:   fe.Param(),
		Message: message(field, fe),
	}}}
}

// fieldPath drops the root struct name: "InvoiceInput.products[0].quantity"
// becomes "products[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func translate(fe validator.FieldError) string {
	return message(fieldPath(fe), fe)
}

var templates = map[string]string{
	"required":    "%s is required",
	"datetime":    "%s must be a date in YYYY-MM-DD format",
	"hexadecimal": "%s must be hexadecimal",
	"notblank":    "%s cannot be empty",
}

var paramTemplates = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
	"len":   "%s must have length %s",
}

func message(field string, fe validator.FieldError) string {
	if t, ok := templates[fe.Tag()]; ok {
		return fmt.Sprintf(t, field)
	}
	if t, ok := paramTemplates[fe.Tag()]; ok {
		return fmt.Sprintf(t, field, fe.Param())
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}
