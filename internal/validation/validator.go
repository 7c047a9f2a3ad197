package validation

import (
	errs "errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"workclock/internal/clock"
)

// MaxUserIDLength bounds user ids, which end up inside store keys.
const MaxUserIDLength = 128

var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9@.:+\-_]+$`)

// Validator checks inbound requests with go-playground/validator and custom
// tags for user ids and calendar bounds.
type Validator struct {
	validate *validator.Validate
	bucketer *clock.Bucketer
}

// NewValidator creates a new validator instance bucketing instants with bucketer
func NewValidator(bucketer *clock.Bucketer) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)

	vd := &Validator{validate: v, bucketer: bucketer}
	mustRegister(v, "userid", isUserID)
	mustRegister(v, "daybound", vd.isDayBound)
	return vd
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// fieldName reports fields by their json or form name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func isUserID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	return len(id) <= MaxUserIDLength && userIDPattern.MatchString(id)
}

func (v *Validator) isDayBound(fl validator.FieldLevel) bool {
	_, err := v.DayKeyFor(fl.Field().String())
	return err == nil
}

// IsValidUserID reports whether id can be used as a user id
func (v *Validator) IsValidUserID(id string) bool {
	return v.validate.Var(id, "required,userid") == nil
}

// DayKeyFor converts a calendar bound to a day key. Bounds are either day
// keys already or RFC 3339 instants, bucketed into the local day.
func (v *Validator) DayKeyFor(bound string) (string, error) {
	if v.bucketer.IsDayKey(bound) {
		return bound, nil
	}
	t, err := time.Parse(time.RFC3339Nano, bound)
	if err != nil {
		return "", err
	}
	return v.bucketer.DayKey(t), nil
}

// Struct validates s and converts failures into a *ValidationError.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errs.As(err, &fieldErrs) {
		return err
	}

	ve := NewValidationError()
	for _, fe := range fieldErrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			ve.AddRequiredError(field)
		case "oneof":
			ve.AddInvalidValueError(field, fe.Value(), "must be one of "+strings.ReplaceAll(fe.Param(), " ", ", "))
		case "userid":
			ve.AddInvalidFormatError(field, fe.Value(), fmt.Sprintf("letters, digits or @.:+-_ up to %d characters", MaxUserIDLength))
		case "daybound":
			ve.AddInvalidFormatError(field, fe.Value(), "YYYY-MM-DD or an RFC 3339 instant")
		default:
			ve.AddInvalidValueError(field, fe.Value(), fe.Tag())
		}
	}
	return ve
}
