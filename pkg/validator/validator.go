// Package validator valida DTOs con go-playground/validator y traduce los
// fallos a mensajes por campo, indexados por el nombre JSON (o de query).
package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// emailSuffix exige un dominio de primer nivel alfabético (.com, .io, ...).
var emailSuffix = regexp.MustCompile(`\.[a-zA-Z]{2,}$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(fieldName)
	_ = validate.RegisterValidation("email_suffix", func(fl validator.FieldLevel) bool {
		return emailSuffix.MatchString(fl.Field().String())
	})
}

// messages mensaje por etiqueta de validación.
var messages = map[string]string{
	"required":     "field is required",
	"email":        "invalid email value",
	"email_suffix": "invalid email format",
	"min":          "invalid field length",
	"max":          "invalid field length",
	"len":          "invalid field length",
	"gte":          "invalid range value",
	"lte":          "invalid range value",
	"eqfield":      "not match with new password",
	"oneof":        "invalid value",
	"uuid":         "invalid value",
	"url":          "invalid value",
	"datetime":     "invalid date value",
}

const defaultMessage = "invalid value"

// fieldName usa la etiqueta json y, si no hay, la de query.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name := strings.Split(f.Tag.Get(tag), ",")[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct valida s y devuelve un mensaje por campo, o nil si es válido.
// Con varios fallos en un mismo campo se conserva el primero.
func Struct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, e := range verrs {
		if _, seen := out[e.Field()]; seen {
			continue
		}
		out[e.Field()] = message(e.Tag())
	}
	return out
}

func message(tag string) string {
	if m, ok := messages[tag]; ok {
		return m
	}
	return defaultMessage
}
