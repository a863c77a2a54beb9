// Package bind decodes request bodies and validates them with go-playground/validator
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "addressbook/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps how much of a request body ParseJSON reads
const MaxBody = 1 << 20

type engine struct {
	v  *validator.Validate
	tr ut.Translator
}

var shared = sync.OnceValue(func() engine {
	loc := en.New()
	tr, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = entrans.RegisterDefaultTranslations(v, tr)
	_ = v.RegisterTranslation("max", tr,
		func(t ut.Translator) error { return t.Add("max", "{0} must be at most {1} characters", true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
	return engine{v: v, tr: tr}
})

// jsonName reports fields by their wire name so errors match the payload
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// ParseJSON decodes exactly one JSON object into T and validates it
// unknown fields, empty bodies and trailing data are ErrorCodeJSON
func ParseJSON[T any](r *http.Request) (T, error) {
	var out T
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return out, perr.JSONErrf("empty body")
		}
		return out, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return out, perr.JSONErrf("unexpected trailing data")
	}
	return out, Validate(out)
}

// Validate checks the validate tags on v; the first failure becomes an
// ErrorCodeValidation error naming the json field
func Validate(v any) error {
	err := shared().v.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
	}
	fe := fields[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(shared().tr)), fe.Field())
}
