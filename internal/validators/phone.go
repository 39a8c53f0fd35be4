package validators

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const minPhoneDigits = 8

// IsPhoneValid accepts digits with an optional leading "+" and the usual
// separators: spaces, dashes and parentheses.
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	digits := 0
	for i, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ', r == '-', r == '(', r == ')':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}

// NormalizePhone strips everything but digits and a leading "+".
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		if unicode.IsDigit(r) || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// rules are the project's custom validation tags.
var rules = map[string]validator.Func{
	"phone": func(fl validator.FieldLevel) bool {
		return IsPhoneValid(fl.Field().String())
	},
}

func register(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return nil
}

// Register adds the custom rules to v.
func Register(v *validator.Validate) error {
	return register(v, rules)
}

// New returns a validator with the project's custom rules registered and
// field names reported by their json tag. It panics when a rule cannot be
// registered, since every tag using it would otherwise fail silently.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	if err := Register(v); err != nil {
		panic(err)
	}

	return v
}
