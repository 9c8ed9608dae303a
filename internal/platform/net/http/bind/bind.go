// Package bind validates decoded request input and turns failures into coded errors
package bind

import (
	stderrs "errors"
	"reflect"
	"strings"
	"sync"

	perr "streaks/internal/platform/errors"
	"streaks/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entr "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel is what custom tag funcs receive
type FieldLevel = validator.FieldLevel

type engine struct {
	v  *validator.Validate
	tr ut.Translator
}

var shared = sync.OnceValue(func() *engine {
	loc := en.New()
	tr, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = entr.RegisterDefaultTranslations(v, tr)

	e := &engine{v: v, tr: tr}
	e.message("min", "{0} must be at least {1}")
	e.message("max", "{0} must be at most {1}")
	return e
})

// jsonName reports fields by their json key, the Go name when there is none
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// message overrides the text for tag, {0} is the field and {1} the tag param
func (e *engine) message(tag, text string) {
	_ = e.v.RegisterTranslation(tag, e.tr,
		func(tr ut.Translator) error { return tr.Add(tag, text, true) },
		func(tr ut.Translator, fe validator.FieldError) string {
			s, _ := tr.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// RegisterTag adds a custom validate tag with its message, registering a tag twice replaces it
func RegisterTag(tag string, fn validator.Func, message string) error {
	e := shared()
	if err := e.v.RegisterValidation(tag, fn); err != nil {
		return err
	}
	e.message(tag, message)
	return nil
}

// Validate checks v's validate tags
// the first failing field becomes a Validation error carrying that field's json name
func Validate(v any) error {
	e := shared()
	err := e.v.Struct(v)
	if err == nil {
		return nil
	}

	var fails validator.ValidationErrors
	if !stderrs.As(err, &fails) || len(fails) == 0 {
		// a non struct argument is a programming error, not bad input
		logger.Get().Error().Err(err).Type("arg", v).Msg("validator misuse")
		return perr.Internalf("validation error")
	}
	first := fails[0]
	return perr.WithField(perr.Validationf("%s", first.Translate(e.tr)), first.Field())
}
