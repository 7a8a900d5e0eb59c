package contact

// errors.go defines the field-level error vocabulary for record building.
//
// Every failing check produces one FieldError; a row accumulates all of
// them in a FieldErrors list so a rejected row reports every problem at
// once, never just the first.

import (
	"fmt"
	"strings"
)

// ErrorKind classifies why a field failed validation.
type ErrorKind string

const (
	// KindRequired means the field was empty.
	KindRequired ErrorKind = "required"
	// KindFormat means the field was present but failed a pattern or
	// semantic check.
	KindFormat ErrorKind = "format"
	// KindDateFormat means a date field was present but not a valid
	// ISO 8601 calendar date.
	KindDateFormat ErrorKind = "date_format"
	// KindConflict means the record store rejected the field at commit
	// time because of a uniqueness constraint.
	KindConflict ErrorKind = "conflict"
	// KindCreditCard means the card number had an unknown brand or
	// failed its checksum.
	KindCreditCard ErrorKind = "credit_card"
)

// Validation message copy, shared between validators and the builder.
const (
	msgBlank        = "can't be blank"
	msgNameFormat   = "no special characters, only letters and numbers"
	msgEmailFormat  = "is invalid"
	msgPhoneFormat  = "phone numbers must be in '(+00) 000 000 00 00' or '(+00) 000-000-00-00' formats"
	msgDateFormat   = "invalid ISO 8601 date"
	msgCreditCard   = "invalid credit card"
	msgAlreadyTaken = "has already been taken"
)

// FieldError describes one validation failure on one field.
type FieldError struct {
	Field   string
	Kind    ErrorKind
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", displayName(e.Field), e.Message)
}

// FieldErrors is an ordered list of validation failures for one row.
type FieldErrors []FieldError

func (errs FieldErrors) Error() string {
	return errs.Join()
}

// Join concatenates all failure descriptions into one human-readable
// message, e.g. "Email is invalid, Email can't be blank".
func (errs FieldErrors) Join() string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, ", ")
}

// Conflict builds the error list for a commit-time uniqueness
// violation on one field.
func Conflict(field string) FieldErrors {
	return FieldErrors{{Field: field, Kind: KindConflict, Message: msgAlreadyTaken}}
}

// Has reports whether any error of the given kind exists for the field.
func (errs FieldErrors) Has(field string, kind ErrorKind) bool {
	for _, e := range errs {
		if e.Field == field && e.Kind == kind {
			return true
		}
	}
	return false
}

// ByField returns all errors recorded for one field.
func (errs FieldErrors) ByField(field string) FieldErrors {
	var out FieldErrors
	for _, e := range errs {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// displayName renders a field key for human-readable messages:
// "birth_date" -> "Birth date".
func displayName(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
