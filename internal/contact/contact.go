// Package contact provides the contact record model and the validation
// pipeline that turns one raw import row into either a normalized
// Contact or a structured list of field errors.
package contact

import (
	"time"

	"github.com/google/uuid"
)

// Logical field keys of an import row, in validation order.
const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldBirthDate  = "birth_date"
	FieldPhone      = "phone"
	FieldAddress    = "address"
	FieldCreditCard = "credit_card"
	FieldFranchise  = "franchise"
)

// Fields lists the logical columns an import file provides, in order.
// Franchise is derived from the card number and never read from the file.
var Fields = []string{
	FieldName,
	FieldEmail,
	FieldBirthDate,
	FieldPhone,
	FieldAddress,
	FieldCreditCard,
}

// RawRecord is one unvalidated row: logical field key -> cell value.
type RawRecord map[string]string

// Contact is a validated, normalized contact record.
// CreditCard holds the masked display value; the raw number is never
// stored. Franchise is the brand detected from the raw number.
type Contact struct {
	ID         int64
	Name       string
	Email      string
	BirthDate  time.Time
	Phone      string
	Address    string
	CreditCard string
	Franchise  string
	OwnerID    uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// MaskNumber obscures all but the last 4 characters of a card number
// with '*'. Inputs of 4 characters or fewer are returned unchanged.
func MaskNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	masked := make([]byte, len(number))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(masked)-4:], number[len(number)-4:])
	return string(masked)
}
