package contact

// validators.go holds the pure per-field checks. Each one inspects a
// single raw value and reports at most one failure; none of them keeps
// state, so a row can run every check and collect all failures.

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Pre-compiled field patterns.
var (
	// Whitelist over the whole value: letters, digits, whitespace and
	// hyphen only. The empty string matches; presence is checked
	// separately.
	nameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s-]*$`)

	// Unanchored: the value must contain "(+NN) NNN" followed by three
	// digit groups (3-2-2) each preceded by either a hyphen or a single
	// space. Separator positions match independently, so mixed
	// separators are accepted.
	phoneRegex = regexp.MustCompile(`\(\+[0-9]{2}\) [0-9]{3}(-| )[0-9]{3}(-| )[0-9]{2}(-| )[0-9]{2}`)
)

// validate backs the email grammar check. go-playground's "email" rule
// rejects the empty string, so an empty email reports both a format and
// a presence failure, matching the record-level behavior.
var validate = validator.New()

// ValidateName fails unless s contains only letters, digits,
// whitespace and hyphens. Empty values pass; see ValidateRequired.
func ValidateName(s string) *FieldError {
	if !nameRegex.MatchString(s) {
		return &FieldError{Field: FieldName, Kind: KindFormat, Message: msgNameFormat}
	}
	return nil
}

// ValidateEmail fails unless s is a syntactically valid email address.
func ValidateEmail(s string) *FieldError {
	if err := validate.Var(s, "email"); err != nil {
		return &FieldError{Field: FieldEmail, Kind: KindFormat, Message: msgEmailFormat}
	}
	return nil
}

// ValidatePhone fails unless s matches one of the accepted phone
// layouts, e.g. "(+12) 345-678-90-12" or "(+12) 345 678 90 12".
func ValidatePhone(s string) *FieldError {
	if !phoneRegex.MatchString(s) {
		return &FieldError{Field: FieldPhone, Kind: KindFormat, Message: msgPhoneFormat}
	}
	return nil
}

// ValidateRequired fails when the value is empty. It reports against
// the given logical field key.
func ValidateRequired(field, s string) *FieldError {
	if s == "" {
		return &FieldError{Field: field, Kind: KindRequired, Message: msgBlank}
	}
	return nil
}

// ParseBirthDate parses an ISO 8601 calendar date (YYYY-MM-DD).
// An empty value is not an error here: presence is reported separately
// so an empty date yields "can't be blank" and never "invalid".
func ParseBirthDate(s string) (time.Time, *FieldError) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, &FieldError{Field: FieldBirthDate, Kind: KindDateFormat, Message: msgDateFormat}
	}
	return t, nil
}
