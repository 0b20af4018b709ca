package candidate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	FieldContactNumber      = "contactNumber"
	FieldAlternateNumber    = "alternateNumber"
	FieldEmail              = "email"
	FieldAadharCard         = "aadharCard"
	FieldPanCard            = "panCard"
	FieldPaymentType        = "paymentType"
	FieldPaymentMode        = "paymentMode"
	FieldPartialPaidAmount  = "partialPaidAmount"
	FieldSelectedCourse     = "selectedCourse"
	FieldTotalPayableAmount = "totalPayableAmount"
	FieldRemainingAmount    = "remainingAmount"

	phoneDigits = 10
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrDerivedField  = errors.New("field is derived and cannot be edited")
	ErrInvalidOption = errors.New("invalid option")
	ErrPhoneTooLong  = errors.New("phone number longer than 10 digits")
)

// textFields maps the editable free-text fields to their storage.
var textFields = map[string]func(*Record) *string{
	"fullName":                func(r *Record) *string { return &r.FullName },
	"dob":                     func(r *Record) *string { return &r.DOB },
	"gender":                  func(r *Record) *string { return &r.Gender },
	FieldContactNumber:        func(r *Record) *string { return &r.ContactNumber },
	FieldAlternateNumber:      func(r *Record) *string { return &r.AlternateNumber },
	FieldEmail:                func(r *Record) *string { return &r.Email },
	"currentAddress":          func(r *Record) *string { return &r.CurrentAddress },
	"permanentAddress":        func(r *Record) *string { return &r.PermanentAddress },
	"fatherName":              func(r *Record) *string { return &r.FatherName },
	"motherName":              func(r *Record) *string { return &r.MotherName },
	FieldAadharCard:           func(r *Record) *string { return &r.AadharCard },
	FieldPanCard:              func(r *Record) *string { return &r.PanCard },
	"reference":               func(r *Record) *string { return &r.Reference },
	"degree":                  func(r *Record) *string { return &r.Degree },
	"universityCollegeName":   func(r *Record) *string { return &r.UniversityCollegeName },
	"yearOfPassing":           func(r *Record) *string { return (*string)(&r.YearOfPassing) },
	"specializationMajor":     func(r *Record) *string { return &r.SpecializationMajor },
	"percentageCgpa":          func(r *Record) *string { return (*string)(&r.PercentageCgpa) },
	"highestDegree":           func(r *Record) *string { return &r.HighestDegree },
	"pgUniversityCollegeName": func(r *Record) *string { return &r.PGUniversityCollegeName },
	"pgYearOfPassing":         func(r *Record) *string { return (*string)(&r.PGYearOfPassing) },
	"pgSpecializationMajor":   func(r *Record) *string { return &r.PGSpecializationMajor },
	"pgPercentageCgpa":        func(r *Record) *string { return (*string)(&r.PGPercentageCgpa) },
}

// IsPricingField reports whether editing name changes the derived totals.
func IsPricingField(name string) bool {
	switch name {
	case FieldPaymentType, FieldPaymentMode, FieldPartialPaidAmount, FieldSelectedCourse:
		return true
	}
	return false
}

// Set applies one edit from the dashboard. Phone fields keep digits only and
// reject edits longer than ten digits, the PAN is upper-cased. Selection
// fields other than the payment radios have dedicated operations.
func (r *Record) Set(name, value string) error {
	switch name {
	case FieldTotalPayableAmount, FieldRemainingAmount:
		return fmt.Errorf("%w: %s", ErrDerivedField, name)
	case FieldPaymentType:
		pt := PaymentType(value)
		if pt != "" && pt != FullPayment && pt != PartialPayment {
			return fmt.Errorf("%w: %s %q", ErrInvalidOption, name, value)
		}
		r.PaymentType = pt
		return nil
	case FieldPaymentMode:
		pm := PaymentMode(value)
		if pm != "" && pm != Online && pm != Cash {
			return fmt.Errorf("%w: %s %q", ErrInvalidOption, name, value)
		}
		r.PaymentMode = pm
		return nil
	case FieldContactNumber, FieldAlternateNumber:
		digits, ok := SanitizePhone(value)
		if !ok {
			return ErrPhoneTooLong
		}
		value = digits
	case FieldPanCard:
		value = strings.ToUpper(value)
	}

	field, ok := textFields[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	*field(r) = value
	return nil
}

// Get returns the current text value of an editable field.
func (r *Record) Get(name string) (string, bool) {
	switch name {
	case FieldPaymentType:
		return string(r.PaymentType), true
	case FieldPaymentMode:
		return string(r.PaymentMode), true
	}

	field, ok := textFields[name]
	if !ok {
		return "", false
	}
	return *field(r), true
}

// SanitizePhone strips everything but digits. ok is false when the result
// is longer than ten digits.
func SanitizePhone(value string) (digits string, ok bool) {
	var b strings.Builder
	for _, ch := range value {
		if ch <= unicode.MaxASCII && unicode.IsDigit(ch) {
			b.WriteRune(ch)
		}
	}

	digits = b.String()
	return digits, len(digits) <= phoneDigits
}
