package resource

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/BruksfildServices01/certhub/internal/httperr"
)

// Violation describes one failed rule on one payload field.
type Violation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

var (
	validate = newValidator()

	fieldNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "minwords", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(strings.Fields(fl.Field().String())) >= n
	})
	mustRegister(v, "maxwords", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(strings.Fields(fl.Field().String())) <= n
	})

	mustRegister(v, "fieldname", func(fl validator.FieldLevel) bool {
		return fieldNamePattern.MatchString(fl.Field().String())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(errors.Wrapf(err, "register %s", tag))
	}
}

// Validate normalizes p and checks it against its type's rules.
func Validate(p Payload) error {
	p.Normalize()

	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate payload")
	}

	violations := make([]Violation, 0, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), structName(p)+".")
		violations = append(violations, Violation{Field: field, Rule: fe.Tag(), Param: fe.Param()})
		parts = append(parts, field+" failed "+fe.Tag())
	}

	return httperr.WithDetails(
		httperr.CodeValidation,
		string(p.ResourceType())+" "+strings.Join(parts, "; "),
		violations,
	)
}

func structName(p Payload) string {
	t := reflect.TypeOf(p)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
