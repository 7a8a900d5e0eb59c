package contact

// builder.go maps one raw row into a validated Contact or a structured
// rejection. All field tracks run unconditionally and their failures
// are merged into one ordered list; nothing short-circuits, so a row
// with several problems reports all of them in a single pass.

import (
	"github.com/google/uuid"

	"contact-importer/internal/card"
)

// BuildResult is the outcome of validating one raw row.
type BuildResult struct {
	Valid   bool
	Contact *Contact
	Errors  FieldErrors
}

// Build validates and normalizes one raw row for the given owner.
//
// Error order is stable: format/semantic failures first (birth date,
// credit card, name, phone, email), then presence failures in field
// order, with franchise presence last.
func Build(raw RawRecord, ownerID uuid.UUID) BuildResult {
	var errs FieldErrors

	// Birth date track. A malformed non-empty value reports exactly one
	// date error; an empty one reports only "can't be blank" below.
	birthDate, dateErr := ParseBirthDate(raw[FieldBirthDate])
	if dateErr != nil {
		errs = append(errs, *dateErr)
	}

	// Credit card track. Brand detection and masking both run on the
	// raw number regardless of validity: an invalid card is still
	// persisted masked in the rejection log, never in clear text.
	rawNumber := raw[FieldCreditCard]
	detected := card.Detect(rawNumber)
	franchise := string(detected.Brand)
	if detected.Brand == card.BrandUnknown || !detected.LuhnValid {
		errs = append(errs, FieldError{Field: FieldCreditCard, Kind: KindCreditCard, Message: msgCreditCard})
	}
	masked := MaskNumber(rawNumber)

	// Format tracks on the raw strings.
	if e := ValidateName(raw[FieldName]); e != nil {
		errs = append(errs, *e)
	}
	if e := ValidatePhone(raw[FieldPhone]); e != nil {
		errs = append(errs, *e)
	}
	if e := ValidateEmail(raw[FieldEmail]); e != nil {
		errs = append(errs, *e)
	}

	// Presence track, including the derived franchise.
	presence := []struct {
		field string
		value string
	}{
		{FieldName, raw[FieldName]},
		{FieldEmail, raw[FieldEmail]},
		{FieldBirthDate, raw[FieldBirthDate]},
		{FieldPhone, raw[FieldPhone]},
		{FieldAddress, raw[FieldAddress]},
		{FieldCreditCard, rawNumber},
		{FieldFranchise, franchise},
	}
	for _, p := range presence {
		if e := ValidateRequired(p.field, p.value); e != nil {
			errs = append(errs, *e)
		}
	}

	if len(errs) > 0 {
		return BuildResult{Errors: errs}
	}

	return BuildResult{
		Valid: true,
		Contact: &Contact{
			Name:       raw[FieldName],
			Email:      raw[FieldEmail],
			BirthDate:  birthDate,
			Phone:      raw[FieldPhone],
			Address:    raw[FieldAddress],
			CreditCard: masked,
			Franchise:  franchise,
			OwnerID:    ownerID,
		},
	}
}
