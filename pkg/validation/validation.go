package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/DSACMS/enrollment-form-api/pkg/candidate"
	"github.com/go-playground/validator/v10"
)

var (
	mobilePattern  = regexp.MustCompile(`^[6-9]\d{9}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// Fields covered by Validate, in display order.
var Fields = []string{
	candidate.FieldContactNumber,
	candidate.FieldAlternateNumber,
	candidate.FieldEmail,
	candidate.FieldAadharCard,
	candidate.FieldPanCard,
}

var messages = map[string]string{
	candidate.FieldContactNumber:   "Contact number must start with 6-9 and be 10 digits",
	candidate.FieldAlternateNumber: "Alternate number must start with 6-9 and be 10 digits",
	candidate.FieldEmail:           "Invalid email address",
	candidate.FieldAadharCard:      "Aadhar card must be 12 digits",
	candidate.FieldPanCard:         "Invalid PAN card format (e.g., ABCDE1234F)",
}

// checked mirrors the validated part of a candidate record. Rules are
// independent, there are no cross-field checks.
type checked struct {
	ContactNumber   string `json:"contactNumber" validate:"mobile"`
	AlternateNumber string `json:"alternateNumber" validate:"omitempty,mobile"`
	Email           string `json:"email" validate:"omitempty,email_shape"`
	AadharCard      string `json:"aadharCard" validate:"aadhaar"`
	PanCard         string `json:"panCard" validate:"pan"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})

	for tag, pattern := range map[string]*regexp.Regexp{
		"mobile":      mobilePattern,
		"email_shape": emailPattern,
		"aadhaar":     aadhaarPattern,
		"pan":         panPattern,
	} {
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return pattern.MatchString(fl.Field().String())
		})
		if err != nil {
			panic(err)
		}
	}

	return v
}

// Errors maps each validated field to its message. An empty message means
// the field is valid.
type Errors map[string]string

func NewErrors() Errors {
	errs := make(Errors, len(Fields))
	for _, field := range Fields {
		errs[field] = ""
	}
	return errs
}

func (e Errors) Valid() bool {
	for _, msg := range e {
		if msg != "" {
			return false
		}
	}
	return true
}

// Invalid returns the failing field names in display order.
func (e Errors) Invalid() []string {
	var out []string
	for _, field := range Fields {
		if e[field] != "" {
			out = append(out, field)
		}
	}
	return out
}

// Validate checks the five formatted fields of rec. It upper-cases the PAN
// in rec whatever the outcome; calling it again gives the same result.
func Validate(rec *candidate.Record) (Errors, bool) {
	rec.PanCard = strings.ToUpper(rec.PanCard)

	errs := NewErrors()

	err := validate.Struct(checked{
		ContactNumber:   rec.ContactNumber,
		AlternateNumber: rec.AlternateNumber,
		Email:           rec.Email,
		AadharCard:      rec.AadharCard,
		PanCard:         rec.PanCard,
	})

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			errs[fe.Field()] = messages[fe.Field()]
		}
	} else if err != nil {
		// validator only returns InvalidValidationError for non-struct input
		panic(err)
	}

	return errs, errs.Valid()
}
