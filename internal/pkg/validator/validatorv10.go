package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/otpgate/internal/pkg/strcase"
)

var (
	reOTPCode  = regexp.MustCompile(`^[0-9]{6}$`)
	rePhone    = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)
	reInterest = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,31}$`)
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// Validator validates request and domain structs.
type Validator interface {
	Validate(data any) error
}

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError maps snake_case field names to messages.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	enTrans, ok := ut.New(enLang, enLang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	if err := registerCustom(validate, enTrans); err != nil {
		return nil, err
	}

	return &V10Validator{validate: validate, translator: enTrans}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var validateErrs validator.ValidationErrors
	if !errors.As(err, &validateErrs) {
		return err
	}

	errV10 := make(V10ValidationError, len(validateErrs))
	for _, fe := range validateErrs {
		errV10[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
	}

	return errV10
}

type rule struct {
	tag     string
	message string
	fn      validator.Func
}

func stringRule(re *regexp.Regexp, normalize func(string) string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		if normalize != nil {
			s = normalize(s)
		}
		return re.MatchString(s)
	}
}

func registerCustom(validate *validator.Validate, enTrans ut.Translator) error {
	rules := []rule{
		{
			tag:     "password",
			message: "{0} must be at least 6 characters",
			fn: func(fl validator.FieldLevel) bool {
				p, ok := fl.Field().Interface().(string)
				return ok && len([]rune(p)) >= 6 && len(p) <= 256
			},
		},
		{
			tag:     "otpcode",
			message: "{0} must be a 6-digit code",
			fn:      stringRule(reOTPCode, nil),
		},
		{
			tag:     "phone",
			message: "{0} must be a valid phone number",
			fn: stringRule(rePhone, func(s string) string {
				return strings.Join(strings.Fields(s), "")
			}),
		},
		{
			tag:     "interest",
			message: "{0} must be a lowercase tag",
			fn:      stringRule(reInterest, nil),
		},
	}

	for _, r := range rules {
		if err := validate.RegisterValidation(r.tag, r.fn); err != nil {
			return err
		}

		err := validate.RegisterTranslation(r.tag, enTrans,
			func(trans ut.Translator) error {
				return trans.Add(r.tag, r.message, false)
			},
			func(trans ut.Translator, fe validator.FieldError) string {
				t, err := trans.T(fe.Tag(), fe.Field())
				if err != nil {
					return fe.Error()
				}
				return t
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}
