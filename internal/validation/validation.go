// Package validation turns untrusted request shapes into checked values,
// reporting the first offending field with a German message.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stinex/backend/internal/model"
)

// ValidationError names the field that violated a constraint.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewError creates a ValidationError for field.
func NewError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Validator wraps validator/v10 configured to report JSON field names.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates a create shape.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return NewError(fe.Field(), message(fe.Field(), fe.Tag(), fe.Kind(), fe.Param()))
}

// Patch validates the present fields of a patch shape; absent fields are
// skipped.
func (v *Validator) Patch(patch any) error {
	for _, f := range model.PatchFields(patch) {
		if !f.Field.IsSet() || f.Tag == "" {
			continue
		}
		if err := v.Var(f.Name, f.Field.Any(), f.Tag); err != nil {
			return err
		}
	}
	return nil
}

// Var validates a single value against tag, attributing failures to field.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return NewError(field, message(field, fe.Tag(), fe.Kind(), fe.Param()))
}

func message(field, tag string, kind reflect.Kind, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("Das Feld '%s' ist erforderlich.", field)
	case "email":
		return "Bitte geben Sie eine gültige E-Mail-Adresse ein."
	case "oneof":
		return fmt.Sprintf("Ungültiger Wert für '%s'. Erlaubt sind: %s.", field, strings.Join(strings.Fields(param), ", "))
	case "min", "max":
		return boundMessage(field, tag, kind, param)
	}
	return fmt.Sprintf("Ungültiger Wert für das Feld '%s'.", field)
}

func boundMessage(field, tag string, kind reflect.Kind, param string) string {
	bound := "muss mindestens"
	if tag == "max" {
		bound = "darf höchstens"
	}
	switch kind {
	case reflect.String:
		if tag == "min" && param == "1" {
			return fmt.Sprintf("Das Feld '%s' darf nicht leer sein.", field)
		}
		return fmt.Sprintf("Das Feld '%s' %s %s Zeichen enthalten.", field, bound, param)
	case reflect.Slice, reflect.Array:
		unit := "Einträge"
		if param == "1" {
			unit = "Eintrag"
		}
		return fmt.Sprintf("Das Feld '%s' %s %s %s enthalten.", field, bound, param, unit)
	}
	if tag == "max" {
		return fmt.Sprintf("Der Wert von '%s' darf höchstens %s sein.", field, param)
	}
	return fmt.Sprintf("Der Wert von '%s' muss mindestens %s sein.", field, param)
}
